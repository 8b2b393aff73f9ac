package ledger

import (
	"fmt"
	"log/slog"
	"time"

	"pennywise/internal/model"
)

const day = 24 * time.Hour

// ReplaySummary reports what a recurring catch-up did.
type ReplaySummary struct {
	Charged int
	Failed  int
}

// Total returns the number of occurrences examined, charged or not.
func (s ReplaySummary) Total() int {
	return s.Charged + s.Failed
}

// ReplayRecurring catches up every overdue recurring rule on the
// account as of now. Occurrences are processed strictly in
// chronological order per rule so each sufficiency check sees the
// debits of the occurrences before it. An occurrence the balance cannot
// cover is journaled as failed and skipped for good, never retried.
// LastProcessed advances by whole periods regardless of individual
// occurrence success, which makes replay idempotent for a fixed now.
//
// All occurrences are journaled as one batch append after every rule
// has been processed; the caller persists the snapshot afterwards.
func (l *Ledger) ReplayRecurring(a *model.Account, now time.Time) (ReplaySummary, error) {
	var summary ReplaySummary
	var entries []model.TransactionRecord

	for i := range a.Recurring {
		rule := &a.Recurring[i]

		daysElapsed := int(now.Sub(rule.LastProcessed) / day)
		if daysElapsed < 0 {
			// Clock moved backwards since the rule was touched.
			daysElapsed = 0
		}
		if daysElapsed < rule.FrequencyDays {
			continue
		}

		occurrences := daysElapsed / rule.FrequencyDays
		for n := 1; n <= occurrences; n++ {
			occurredAt := rule.LastProcessed.Add(time.Duration(n*rule.FrequencyDays) * day)
			rec := model.TransactionRecord{
				Username:  a.Username,
				Timestamp: occurredAt,
				Amount:    rule.Amount,
				Category:  rule.Category,
			}
			if a.Balance.GreaterThanOrEqual(rule.Amount) {
				a.Balance = a.Balance.Sub(rule.Amount)
				a.TotalSpent = a.TotalSpent.Add(rule.Amount)
				rec.Type = model.TxRecurring
				summary.Charged++
			} else {
				slog.Warn("insufficient funds for recurring expense, skipping occurrence",
					"username", a.Username,
					"category", rule.Category,
					"amount", rule.Amount,
					"balance", a.Balance)
				rec.Type = model.TxRecurringFailed
				summary.Failed++
			}
			entries = append(entries, rec)
		}

		rule.LastProcessed = rule.LastProcessed.Add(time.Duration(occurrences*rule.FrequencyDays) * day)
	}

	if len(entries) == 0 {
		return summary, nil
	}
	if err := l.journal.AppendAll(entries); err != nil {
		return summary, fmt.Errorf("failed to journal recurring occurrences: %w", err)
	}
	slog.Debug("replayed recurring expenses",
		"username", a.Username,
		"charged", summary.Charged,
		"failed", summary.Failed)
	return summary, nil
}
