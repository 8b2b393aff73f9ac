package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"pennywise/internal/cli"
)

func balanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "balance",
		Short: "Show balance, budget and outstanding loan",
		RunE: func(_ *cobra.Command, _ []string) error {
			s, err := loginSession()
			if err != nil {
				return err
			}
			a := s.Account

			fmt.Println(cli.TitleStyle.Render(fmt.Sprintf("Account %s", a.Username)))

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintf(w, "Balance:\t%s\n", a.Balance.StringFixed(2))
			fmt.Fprintf(w, "Outstanding loan:\t%s\n", a.Loans.StringFixed(2))
			if a.BudgetSet() {
				fmt.Fprintf(w, "Budget:\t%s\n", a.Budget.StringFixed(2))
				fmt.Fprintf(w, "Spent so far:\t%s\n", a.TotalSpent.StringFixed(2))
				fmt.Fprintf(w, "Budget remaining:\t%s\n", a.BudgetRemaining().StringFixed(2))
			} else {
				fmt.Fprintf(w, "Budget:\t%s\n", cli.SubtleStyle.Render("not set"))
			}
			return nil
		},
	}
}
