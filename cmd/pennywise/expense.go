package main

import (
	"github.com/spf13/cobra"
)

func expenseCmd() *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "expense <amount>",
		Short: "Record an expense",
		Long: `Record an expense against a category. Exceeding the budget
produces a warning but never blocks the expense.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			amount, err := parseAmount(args[0])
			if err != nil {
				return err
			}

			s, err := loginSession()
			if err != nil {
				return err
			}

			res, logErr := s.Ledger.Withdraw(s.Account, amount, category)
			return finishMutation(s, res, logErr)
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "General", "expense category")
	return cmd
}
