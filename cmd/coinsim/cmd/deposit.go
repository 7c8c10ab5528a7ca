package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var depositCmd = &cobra.Command{
	Use:   "deposit",
	Short: "Add simulated funds to an account",
	RunE:  runDeposit,
}

var (
	depositAccount string
	depositAmount  float64
)

func init() {
	rootCmd.AddCommand(depositCmd)
	depositCmd.Flags().StringVarP(&depositAccount, "account", "a", "", "account id (required)")
	depositCmd.Flags().Float64VarP(&depositAmount, "amount", "m", 0, "cash amount to add (required)")
	depositCmd.MarkFlagRequired("account")
	depositCmd.MarkFlagRequired("amount")
}

func runDeposit(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.login(cmd.Context(), depositAccount); err != nil {
		return err
	}
	if err := a.engine.Deposit(depositAmount); err != nil {
		return err
	}

	v := a.engine.Valuation()
	fmt.Printf("Deposited $%.2f  Cash: $%.2f  Investment: $%.2f\n",
		depositAmount, v.Cash, v.Investment)
	return nil
}
