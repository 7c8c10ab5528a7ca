package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"coinsim/internal/id"
	"coinsim/store"
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new account with starting cash",
	Long: `Create a new account record in the configured store.

The account receives the configured starting cash as both its balance and
its initial investment. The printed account id is used by the other
commands.`,
	RunE: runRegister,
}

var registerName string

func init() {
	rootCmd.AddCommand(registerCmd)
	registerCmd.Flags().StringVarP(&registerName, "name", "n", "", "display name for the account")
}

func runRegister(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	name := registerName
	if name == "" {
		name = a.cfg.Account.Name
	}

	accountID := id.New()
	rec := store.AccountRecord{
		Name:             name,
		InvestmentAmount: a.cfg.Account.StartingCash,
		Cash:             a.cfg.Account.StartingCash,
	}
	if err := a.store.Create(cmd.Context(), accountID, rec); err != nil {
		return fmt.Errorf("create account: %w", err)
	}

	fmt.Printf("Registered %q with $%.2f\n", name, rec.Cash)
	fmt.Printf("Account id: %s\n", accountID)
	return nil
}
