package cmd

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"coinsim/market"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Follow an account's net worth as prices refresh",
	Long: `Log in to an account and poll the price feed on the configured
interval, printing the portfolio valuation after every refresh.

The poll loop and any in-flight feed request are cancelled when the
session ends (Ctrl-C).`,
	RunE: runWatch,
}

var watchAccount string

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().StringVarP(&watchAccount, "account", "a", "", "account id (required)")
	watchCmd.MarkFlagRequired("account")
}

func runWatch(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := a.login(ctx, watchAccount); err != nil {
		return err
	}
	defer a.engine.Logout()

	interval, err := a.cfg.Feed.ParseInterval()
	if err != nil {
		return err
	}

	poller := market.NewPoller(a.feed, a.snaps, interval, a.log)
	poller.SetUpdateHook(func(snap *market.Snapshot) {
		a.engine.OnSnapshot(snap)
		v := a.engine.Valuation()
		staleMark := ""
		if v.Stale {
			staleMark = " (stale)"
		}
		fmt.Printf("[%s] cash $%.2f  holdings $%.2f%s  net worth $%.2f\n",
			snap.Taken().Format("15:04:05"), v.Cash, v.Holdings, staleMark, v.NetWorth)
	})

	if err := poller.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
