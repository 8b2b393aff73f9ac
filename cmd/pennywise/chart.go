package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"pennywise/internal/chart"
	"pennywise/internal/cli"
)

func chartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chart",
		Short: "Render monthly trend and expense breakdown charts",
		Long: `Render PNG charts into the data directory: a monthly net cash-flow
trend and an expense-by-category pie. Files are keyed by username and
replaced on every run.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			s, err := loginSession()
			if err != nil {
				return err
			}

			records, err := s.Journal.ReadUser(s.Account.Username)
			if err != nil {
				return err
			}

			trendPath := chart.MonthlyTrendPath(s.DataDir, s.Account.Username)
			switch err := chart.MonthlyTrend(records, trendPath); {
			case errors.Is(err, chart.ErrNoData):
				fmt.Println(cli.FormatInfo("no transaction data to chart"))
			case err != nil:
				return err
			default:
				fmt.Println(cli.FormatSuccess(fmt.Sprintf("monthly trend written to %s", trendPath)))
			}

			piePath := chart.ExpensePiePath(s.DataDir, s.Account.Username)
			switch err := chart.ExpensePie(records, piePath); {
			case errors.Is(err, chart.ErrNoData):
				fmt.Println(cli.FormatInfo("no expense data for a category breakdown"))
			case err != nil:
				return err
			default:
				fmt.Println(cli.FormatSuccess(fmt.Sprintf("expense breakdown written to %s", piePath)))
			}
			return nil
		},
	}
}
