package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "coinsim",
	Short: "A simulated cryptocurrency trading application",
	Long: `Coinsim is a paper-trading application for cryptocurrencies.

Register an account, receive virtual cash, and buy or sell positions at
live CoinGecko prices. Portfolio state is persisted to a local sqlite
database or a Firebase Realtime Database.

Commands:
  - register: create a new account with starting cash
  - markets:  show the current tradable assets and prices
  - buy/sell: execute a market order against live prices
  - deposit:  add simulated funds to an account
  - watch:    follow an account's net worth as prices refresh`,
	SilenceUsage: true,
}

var (
	cfgPath string
	verbose bool
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to config file (YAML or JSON)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}
