// Package chart renders PNG charts from journal records: a monthly net
// cash-flow trend, an expense-by-category pie, and the historical plus
// projected cumulative-expense curve. Chart files are keyed by username
// and overwritten on each render; a render with no data removes any
// stale file instead.
package chart

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"pennywise/internal/forecast"
	"pennywise/internal/model"
)

// ErrNoData is returned when there is nothing to plot. Any previously
// rendered file at the target path has been removed by then.
var ErrNoData = errors.New("no data to chart")

// MonthlyTrendPath returns the monthly trend chart path for a user
// inside dir.
func MonthlyTrendPath(dir, username string) string {
	return filepath.Join(dir, username+"_monthly_trend.png")
}

// ExpensePiePath returns the expense pie chart path for a user inside
// dir.
func ExpensePiePath(dir, username string) string {
	return filepath.Join(dir, username+"_expense_pie.png")
}

// ForecastPath returns the forecast chart path for a user inside dir.
func ForecastPath(dir, username string) string {
	return filepath.Join(dir, username+"_forecast.png")
}

// MonthlyTrend renders net cash flow per calendar month as a line
// chart. Outflow amounts count negative.
func MonthlyTrend(records []model.TransactionRecord, path string) error {
	totals := make(map[time.Time]float64)
	for _, rec := range records {
		amt, _ := rec.Amount.Float64()
		switch {
		case rec.Type.IsOutflow():
			amt = -amt
		case !rec.Type.IsInflow():
			continue
		}
		month := time.Date(rec.Timestamp.Year(), rec.Timestamp.Month(), 1, 0, 0, 0, 0, time.UTC)
		totals[month] += amt
	}
	if len(totals) == 0 {
		return removeStale(path)
	}

	months := make([]time.Time, 0, len(totals))
	for m := range totals {
		months = append(months, m)
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Before(months[j]) })

	values := make([]float64, len(months))
	for i, m := range months {
		values[i] = totals[m]
	}

	graph := chart.Chart{
		Title:  "Monthly Net Cash Flow",
		Width:  1000,
		Height: 600,
		XAxis:  chart.XAxis{Name: "Month", ValueFormatter: chart.TimeValueFormatterWithFormat("2006-01")},
		YAxis:  chart.YAxis{Name: "Net Amount"},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    "Net flow",
				XValues: months,
				YValues: values,
				Style:   chart.Style{StrokeColor: drawing.ColorBlue, DotColor: drawing.ColorBlue, DotWidth: 3},
			},
		},
	}
	return render(graph.Render, path)
}

// ExpensePie renders actual spending (Expense and Recurring Expense)
// grouped by category. Categories with non-positive totals are dropped.
func ExpensePie(records []model.TransactionRecord, path string) error {
	totals := make(map[string]float64)
	for _, rec := range records {
		if !rec.Type.IsExpense() {
			continue
		}
		amt, _ := rec.Amount.Float64()
		totals[rec.Category] += amt
	}

	var values []chart.Value
	for category, total := range totals {
		if total > 0 {
			values = append(values, chart.Value{Label: category, Value: total})
		}
	}
	if len(values) == 0 {
		return removeStale(path)
	}
	sort.Slice(values, func(i, j int) bool { return values[i].Value > values[j].Value })

	pie := chart.PieChart{
		Title:  "Expense Breakdown",
		Width:  800,
		Height: 800,
		Values: values,
	}
	return render(pie.Render, path)
}

// Forecast renders the historical cumulative-expense series together
// with the projected curve.
func Forecast(m *forecast.Model, p forecast.Projection, path string) error {
	graph := chart.Chart{
		Title:  "Historical and Predicted Cumulative Expense",
		Width:  1000,
		Height: 600,
		XAxis:  chart.XAxis{Name: "Days Since First Expense"},
		YAxis:  chart.YAxis{Name: "Cumulative Expense"},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Historical",
				XValues: m.Days,
				YValues: m.Cumulative,
				Style:   chart.Style{StrokeColor: drawing.ColorBlue, DotColor: drawing.ColorBlue, DotWidth: 3},
			},
			chart.ContinuousSeries{
				Name:    "Projected",
				XValues: p.Days,
				YValues: p.Cumulative,
				Style: chart.Style{
					StrokeColor:     drawing.ColorRed,
					StrokeDashArray: []float64{5.0, 5.0},
				},
			},
		},
	}
	return render(graph.Render, path)
}

func render(renderFn func(chart.RendererProvider, io.Writer) error, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}
	if err := renderFn(chart.PNG, f); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return fmt.Errorf("failed to render chart: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close chart file: %w", err)
	}
	return nil
}

func removeStale(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove stale chart: %w", err)
	}
	return ErrNoData
}
