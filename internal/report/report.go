// Package report aggregates a user's journal records into a financial
// activity summary: total inflow, total outflow, net cash flow, and an
// expense breakdown by category.
package report

import (
	"sort"

	"github.com/shopspring/decimal"

	"pennywise/internal/model"
)

// CategoryTotal is one line of the expense breakdown.
type CategoryTotal struct {
	Category string
	Total    decimal.Decimal
}

// Summary is a user's aggregated financial activity.
type Summary struct {
	Inflow     decimal.Decimal
	Outflow    decimal.Decimal
	ByCategory []CategoryTotal
}

// Net returns inflow minus outflow.
func (s Summary) Net() decimal.Decimal {
	return s.Inflow.Sub(s.Outflow)
}

// Empty reports whether no records contributed to the summary.
func (s Summary) Empty() bool {
	return s.Inflow.IsZero() && s.Outflow.IsZero() && len(s.ByCategory) == 0
}

// Summarize tallies records into a Summary. Inflow counts Income, Loan
// Received and Transfer In; outflow counts Expense, Loan Repayment,
// Transfer Out and recurring charges (failed ones included, as they
// have always been tallied). The category breakdown covers actual
// spending only and is sorted by total descending.
func Summarize(records []model.TransactionRecord) Summary {
	var s Summary
	byCategory := make(map[string]decimal.Decimal)

	for _, rec := range records {
		switch {
		case rec.Type.IsInflow():
			s.Inflow = s.Inflow.Add(rec.Amount)
		case rec.Type.IsOutflow():
			s.Outflow = s.Outflow.Add(rec.Amount)
		}
		if rec.Type.IsExpense() {
			byCategory[rec.Category] = byCategory[rec.Category].Add(rec.Amount)
		}
	}

	for category, total := range byCategory {
		s.ByCategory = append(s.ByCategory, CategoryTotal{Category: category, Total: total})
	}
	sort.Slice(s.ByCategory, func(i, j int) bool {
		if !s.ByCategory[i].Total.Equal(s.ByCategory[j].Total) {
			return s.ByCategory[i].Total.GreaterThan(s.ByCategory[j].Total)
		}
		return s.ByCategory[i].Category < s.ByCategory[j].Category
	})
	return s
}
