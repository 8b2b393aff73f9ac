package main

import (
	"github.com/spf13/cobra"
)

func incomeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "income <amount>",
		Short: "Add income to the account",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			amount, err := parseAmount(args[0])
			if err != nil {
				return err
			}

			s, err := loginSession()
			if err != nil {
				return err
			}

			res, logErr := s.Ledger.AddIncome(s.Account, amount)
			return finishMutation(s, res, logErr)
		},
	}
}
