package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var portfolioCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Show an account's holdings and net worth",
	RunE:  runPortfolio,
}

var portfolioAccount string

func init() {
	rootCmd.AddCommand(portfolioCmd)
	portfolioCmd.Flags().StringVarP(&portfolioAccount, "account", "a", "", "account id (required)")
	portfolioCmd.MarkFlagRequired("account")
}

func runPortfolio(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	ctx := cmd.Context()
	if err := a.refresh(ctx); err != nil {
		return err
	}
	if err := a.login(ctx, portfolioAccount); err != nil {
		return err
	}

	sess, _ := a.engine.Session()
	fmt.Printf("Portfolio for %s\n\n", sess.Name)

	snap := a.snaps.Current()
	fmt.Printf("%-8s %-24s %16s %14s\n", "SYMBOL", "NAME", "UNITS", "VALUE")
	for _, pos := range a.engine.Positions() {
		value := 0.0
		if asset, ok := snap.Lookup(pos.Symbol); ok {
			value = pos.Value(asset.CurrentPrice)
		}
		fmt.Printf("%-8s %-24s %16.6f %14.2f\n", pos.Symbol, pos.Name, pos.Units, value)
	}

	v := a.engine.Valuation()
	fmt.Printf("\nCash: $%.2f  Holdings: $%.2f  Net worth: $%.2f  Invested: $%.2f\n",
		v.Cash, v.Holdings, v.NetWorth, v.Investment)
	return nil
}
