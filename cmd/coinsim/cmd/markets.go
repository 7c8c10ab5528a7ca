package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var marketsCmd = &cobra.Command{
	Use:   "markets",
	Short: "Show the current tradable assets and prices",
	RunE:  runMarkets,
}

func init() {
	rootCmd.AddCommand(marketsCmd)
}

func runMarkets(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.refresh(cmd.Context()); err != nil {
		return err
	}

	snap := a.snaps.Current()
	fmt.Printf("%-8s %-24s %14s %8s %8s %8s\n", "SYMBOL", "NAME", "PRICE", "1H%", "24H%", "7D%")
	for _, asset := range snap.Assets() {
		fmt.Printf("%-8s %-24s %14.2f %8.2f %8.2f %8.2f\n",
			asset.Symbol, asset.Name, asset.CurrentPrice,
			asset.Change1h, asset.Change24h, asset.Change7d)
	}
	return nil
}
