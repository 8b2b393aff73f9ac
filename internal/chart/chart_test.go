package chart

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pennywise/internal/forecast"
	"pennywise/internal/model"
)

func rec(ts time.Time, amount string, txType model.TxType, category string) model.TransactionRecord {
	return model.TransactionRecord{
		Username:  "alice",
		Timestamp: ts,
		Amount:    decimal.RequireFromString(amount),
		Type:      txType,
		Category:  category,
	}
}

func sampleRecords() []model.TransactionRecord {
	base := time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC)
	return []model.TransactionRecord{
		rec(base, "1000", model.TxIncome, "General"),
		rec(base.AddDate(0, 0, 3), "200", model.TxExpense, "Rent"),
		rec(base.AddDate(0, 1, 0), "150", model.TxExpense, "Food"),
		rec(base.AddDate(0, 1, 10), "50", model.TxRecurring, "Gym"),
	}
}

func assertPNG(t *testing.T, path string) {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Greater(t, len(data), 8)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, data[:4])
}

func TestMonthlyTrend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "alice_monthly_trend.png")
	require.NoError(t, MonthlyTrend(sampleRecords(), path))
	assertPNG(t, path)
}

func TestMonthlyTrendNoData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "alice_monthly_trend.png")
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0o600))

	err := MonthlyTrend(nil, path)
	assert.ErrorIs(t, err, ErrNoData)

	// The stale chart from a previous render is gone.
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestExpensePie(t *testing.T) {
	path := filepath.Join(t.TempDir(), "alice_expense_pie.png")
	require.NoError(t, ExpensePie(sampleRecords(), path))
	assertPNG(t, path)
}

func TestExpensePieOnlyInflows(t *testing.T) {
	base := time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC)
	records := []model.TransactionRecord{
		rec(base, "1000", model.TxIncome, "General"),
		rec(base, "40", model.TxRecurringFailed, "Gym"),
	}
	path := filepath.Join(t.TempDir(), "alice_expense_pie.png")
	err := ExpensePie(records, path)
	assert.ErrorIs(t, err, ErrNoData)
}

func TestForecastChart(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	records := []model.TransactionRecord{
		rec(base, "10", model.TxExpense, "Food"),
		rec(base.AddDate(0, 0, 1), "10", model.TxExpense, "Food"),
		rec(base.AddDate(0, 0, 2), "10", model.TxExpense, "Food"),
	}
	m, err := forecast.Fit(records)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "alice_forecast.png")
	require.NoError(t, Forecast(m, m.Project(30), path))
	assertPNG(t, path)
}

func TestChartPaths(t *testing.T) {
	assert.Equal(t, "/data/alice_monthly_trend.png", MonthlyTrendPath("/data", "alice"))
	assert.Equal(t, "/data/alice_expense_pie.png", ExpensePiePath("/data", "alice"))
	assert.Equal(t, "/data/alice_forecast.png", ForecastPath("/data", "alice"))
}
