package report

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pennywise/internal/model"
)

func rec(amount string, txType model.TxType, category string) model.TransactionRecord {
	return model.TransactionRecord{
		Username:  "alice",
		Timestamp: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
		Amount:    decimal.RequireFromString(amount),
		Type:      txType,
		Category:  category,
	}
}

func TestSummarize(t *testing.T) {
	records := []model.TransactionRecord{
		rec("1000", model.TxIncome, "General"),
		rec("200", model.TxLoanReceived, "Bank"),
		rec("50", model.TxTransferIn, "bob"),
		rec("300", model.TxExpense, "Rent"),
		rec("120", model.TxExpense, "Food"),
		rec("80", model.TxRecurring, "Food"),
		rec("40", model.TxRecurringFailed, "Gym"),
		rec("60", model.TxLoanRepayment, "Bank"),
		rec("30", model.TxTransferOut, "bob"),
	}

	s := Summarize(records)
	assert.True(t, s.Inflow.Equal(decimal.RequireFromString("1250")), "inflow: got %s", s.Inflow)
	assert.True(t, s.Outflow.Equal(decimal.RequireFromString("630")), "outflow: got %s", s.Outflow)
	assert.True(t, s.Net().Equal(decimal.RequireFromString("620")))

	// Breakdown covers actual spending only, sorted descending.
	require.Len(t, s.ByCategory, 2)
	assert.Equal(t, "Rent", s.ByCategory[0].Category)
	assert.True(t, s.ByCategory[0].Total.Equal(decimal.RequireFromString("300")))
	assert.Equal(t, "Food", s.ByCategory[1].Category)
	assert.True(t, s.ByCategory[1].Total.Equal(decimal.RequireFromString("200")))
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	assert.True(t, s.Empty())
	assert.True(t, s.Net().IsZero())
}

func TestSummarizeTiesBreakAlphabetically(t *testing.T) {
	records := []model.TransactionRecord{
		rec("100", model.TxExpense, "Zoo"),
		rec("100", model.TxExpense, "Aquarium"),
	}
	s := Summarize(records)
	require.Len(t, s.ByCategory, 2)
	assert.Equal(t, "Aquarium", s.ByCategory[0].Category)
	assert.Equal(t, "Zoo", s.ByCategory[1].Category)
}
