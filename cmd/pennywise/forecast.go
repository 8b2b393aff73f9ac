package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"pennywise/internal/chart"
	"pennywise/internal/cli"
	"pennywise/internal/config"
	"pennywise/internal/forecast"
)

func forecastCmd() *cobra.Command {
	var horizon int

	cmd := &cobra.Command{
		Use:   "forecast",
		Short: "Project future spending from historical expenses",
		Long: `Fit a linear trend to cumulative historical expense, predict next
month's total spend, and render a chart of the historical and projected
curves. Needs at least two expenses on at least two different days.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			s, err := loginSession()
			if err != nil {
				return err
			}

			records, err := s.Journal.ReadUser(s.Account.Username)
			if err != nil {
				return err
			}

			m, err := forecast.Fit(records)
			if errors.Is(err, forecast.ErrInsufficientData) {
				fmt.Println(cli.FormatInfo("not enough expense data to make a prediction (need at least 2 expense records on different days)"))
				return nil
			}
			if err != nil {
				return err
			}

			if horizon <= 0 {
				horizon = config.ForecastHorizonDays()
			}
			projection := m.Project(horizon)

			total, month := m.NextMonthTotal(time.Now())
			fmt.Println(cli.FormatInfo(fmt.Sprintf("predicted expense for %s: %.2f", month, total)))

			path := chart.ForecastPath(s.DataDir, s.Account.Username)
			if err := chart.Forecast(m, projection, path); err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("forecast chart written to %s", path)))
			return nil
		},
	}

	cmd.Flags().IntVar(&horizon, "days", 0, "projection window in days (default 30)")
	return cmd
}
