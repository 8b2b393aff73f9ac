package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"pennywise/internal/cli"
)

func budgetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "budget",
		Short: "Manage the advisory spending budget",
		Long: `Set or inspect the budget ceiling. The budget is advisory: spending
past it produces warnings, never rejections. Spend tracking never
resets, so the ceiling applies to lifetime spend since the account was
created.`,
	}

	cmd.AddCommand(budgetSetCmd())
	cmd.AddCommand(budgetStatusCmd())
	return cmd
}

func budgetSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <amount>",
		Short: "Set the budget ceiling (0 clears it)",
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

			res := s.Ledger.SetBudget(s.Account, amount)
			return finishMutation(s, res, nil)
		},
	}
}

func budgetStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show budget and remaining headroom",
		RunE: func(_ *cobra.Command, _ []string) error {
			s, err := loginSession()
			if err != nil {
				return err
			}
			a := s.Account

			if !a.BudgetSet() {
				fmt.Println(cli.FormatInfo("no budget set"))
				return nil
			}
			remaining := a.BudgetRemaining()
			line := fmt.Sprintf("budget %s, spent %s, remaining %s",
				a.Budget.StringFixed(2), a.TotalSpent.StringFixed(2), remaining.StringFixed(2))
			if remaining.IsNegative() {
				fmt.Println(cli.FormatWarning(line + " (over budget)"))
			} else {
				fmt.Println(cli.FormatInfo(line))
			}
			return nil
		},
	}
}
