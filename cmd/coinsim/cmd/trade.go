package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"coinsim/sim"
)

var buyCmd = &cobra.Command{
	Use:   "buy",
	Short: "Buy an asset at its current market price",
	Long: `Spend a cash amount on an asset at its live price.

Example:
  coinsim buy --account 01J... --symbol btc --amount 200`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTrade(cmd, sim.SideBuy)
	},
}

var sellCmd = &cobra.Command{
	Use:   "sell",
	Short: "Sell a held position at its current market price",
	Long: `Convert a cash amount of a held position back into cash.

Selling the full market value of a position closes it entirely.

Example:
  coinsim sell --account 01J... --symbol btc --amount 150`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTrade(cmd, sim.SideSell)
	},
}

var (
	tradeAccount string
	tradeSymbol  string
	tradeAmount  float64
)

func init() {
	for _, c := range []*cobra.Command{buyCmd, sellCmd} {
		rootCmd.AddCommand(c)
		c.Flags().StringVarP(&tradeAccount, "account", "a", "", "account id (required)")
		c.Flags().StringVarP(&tradeSymbol, "symbol", "s", "", "asset symbol, e.g. btc (required)")
		c.Flags().Float64VarP(&tradeAmount, "amount", "m", 0, "cash amount to trade (required)")
		c.MarkFlagRequired("account")
		c.MarkFlagRequired("symbol")
		c.MarkFlagRequired("amount")
	}
}

func runTrade(cmd *cobra.Command, side sim.Side) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	ctx := cmd.Context()
	if err := a.refresh(ctx); err != nil {
		return err
	}
	if err := a.login(ctx, tradeAccount); err != nil {
		return err
	}

	var receipt sim.TradeReceipt
	if side == sim.SideBuy {
		receipt, err = a.engine.Buy(tradeAmount, tradeSymbol)
	} else {
		receipt, err = a.engine.Sell(tradeAmount, tradeSymbol)
	}
	if err != nil {
		return err
	}

	fmt.Printf("Cash: $%.2f  Net worth: $%.2f\n", receipt.Cash, receipt.NetWorth)
	return nil
}
