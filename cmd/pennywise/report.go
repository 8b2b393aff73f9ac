package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"pennywise/internal/cli"
	"pennywise/internal/report"
)

func reportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Show a financial activity summary",
		Long: `Summarize the account's journal: total inflow, total outflow, net
cash flow, and spending broken down by category.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			s, err := loginSession()
			if err != nil {
				return err
			}

			records, err := s.Journal.ReadUser(s.Account.Username)
			if err != nil {
				return err
			}

			summary := report.Summarize(records)
			if summary.Empty() {
				fmt.Println(cli.FormatInfo("no transaction data available"))
				return nil
			}

			fmt.Println(cli.TitleStyle.Render(fmt.Sprintf("Financial Activity Summary for %s", s.Account.Username)))

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "Total inflow:\t%s\n", summary.Inflow.StringFixed(2))
			fmt.Fprintf(w, "Total outflow:\t%s\n", summary.Outflow.StringFixed(2))
			fmt.Fprintf(w, "Net cash flow:\t%s\n", summary.Net().StringFixed(2))
			if err := w.Flush(); err != nil {
				return err
			}

			if len(summary.ByCategory) > 0 {
				fmt.Println()
				fmt.Println(cli.BoldStyle.Render("Expense breakdown by category"))
				bw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
				for _, ct := range summary.ByCategory {
					fmt.Fprintf(bw, "%s\t%s\n", ct.Category, ct.Total.StringFixed(2))
				}
				if err := bw.Flush(); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
