package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func transferCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "transfer <recipient> <amount>",
		Short: "Transfer money to another account",
		Long: `Transfer money to another account. Both sides are journaled as
Transfer Out and Transfer In entries. Child accounts cannot transfer.`,
		Args: cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			recipient := args[0]
			amount, err := parseAmount(args[1])
			if err != nil {
				return err
			}
			if strings.EqualFold(recipient, viper.GetString("user")) {
				return fmt.Errorf("cannot transfer to your own account")
			}

			s, err := loginSession()
			if err != nil {
				return err
			}

			receiver := s.Registry.Find(recipient)
			if receiver == nil {
				return fmt.Errorf("no account named %q", strings.ToLower(recipient))
			}

			res, logErr := s.Ledger.Transfer(s.Account, receiver, amount)
			return finishMutation(s, res, logErr)
		},
	}
}
