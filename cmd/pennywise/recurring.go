package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"pennywise/internal/cli"
	"pennywise/internal/model"
)

func recurringCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recurring",
		Short: "Manage recurring expenses",
		Long: `Schedule and list recurring expenses. Overdue charges are caught up
automatically on every login: each missed occurrence is charged in
order, and occurrences the balance cannot cover are recorded as failed
and skipped for good.`,
	}

	cmd.AddCommand(recurringAddCmd())
	cmd.AddCommand(recurringListCmd())
	return cmd
}

func recurringAddCmd() *cobra.Command {
	var (
		category string
		every    int
	)

	cmd := &cobra.Command{
		Use:   "add <amount>",
		Short: "Schedule a recurring expense",
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

			res := s.Ledger.ScheduleRecurring(s.Account, amount, category, every)
			return finishMutation(s, res, nil)
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "General", "expense category")
	cmd.Flags().IntVar(&every, "every", 30, "frequency in days")
	return cmd
}

func recurringListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List scheduled recurring expenses",
		RunE: func(_ *cobra.Command, _ []string) error {
			s, err := loginSession()
			if err != nil {
				return err
			}

			rules := s.Account.Recurring
			if len(rules) == 0 {
				fmt.Println(cli.FormatInfo("no recurring expenses scheduled"))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				cli.BoldStyle.Render("Amount"),
				cli.BoldStyle.Render("Category"),
				cli.BoldStyle.Render("Every"),
				cli.BoldStyle.Render("Last charged through"))
			for _, r := range rules {
				fmt.Fprintf(w, "%s\t%s\t%d days\t%s\n",
					r.Amount.StringFixed(2),
					r.Category,
					r.FrequencyDays,
					r.LastProcessed.Format(model.TimeLayout))
			}
			return nil
		},
	}
}
