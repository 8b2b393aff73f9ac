package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TimeLayout is the fixed-width timestamp format used in the account
// snapshot and the transaction journal. Consumers must round-trip it
// exactly.
const TimeLayout = "2006-01-02 15:04:05"

const (
	ruleSep  = ";"
	fieldSep = "|"
)

// RecurringRule is a scheduled repeating expense. LastProcessed advances
// only through replay; rules are never deleted automatically.
type RecurringRule struct {
	Amount        decimal.Decimal
	Category      string
	FrequencyDays int
	LastProcessed time.Time
}

// Encode renders the rule in its snapshot wire form:
// amount|category|frequency_days|last_processed.
func (r RecurringRule) Encode() string {
	return strings.Join([]string{
		r.Amount.String(),
		r.Category,
		strconv.Itoa(r.FrequencyDays),
		r.LastProcessed.Format(TimeLayout),
	}, fieldSep)
}

// DecodeRecurringRule parses a single encoded rule.
func DecodeRecurringRule(s string) (RecurringRule, error) {
	parts := strings.Split(s, fieldSep)
	if len(parts) != 4 {
		return RecurringRule{}, fmt.Errorf("recurring rule %q: want 4 fields, got %d", s, len(parts))
	}
	amount, err := decimal.NewFromString(parts[0])
	if err != nil {
		return RecurringRule{}, fmt.Errorf("recurring rule %q: bad amount: %w", s, err)
	}
	freq, err := strconv.Atoi(parts[2])
	if err != nil {
		return RecurringRule{}, fmt.Errorf("recurring rule %q: bad frequency: %w", s, err)
	}
	last, err := time.Parse(TimeLayout, parts[3])
	if err != nil {
		return RecurringRule{}, fmt.Errorf("recurring rule %q: bad timestamp: %w", s, err)
	}
	return RecurringRule{
		Amount:        amount,
		Category:      parts[1],
		FrequencyDays: freq,
		LastProcessed: last,
	}, nil
}

// EncodeRecurring joins a rule sequence with ";" for the snapshot's
// recurring column. An empty sequence encodes as the empty string.
func EncodeRecurring(rules []RecurringRule) string {
	if len(rules) == 0 {
		return ""
	}
	encoded := make([]string, len(rules))
	for i, r := range rules {
		encoded[i] = r.Encode()
	}
	return strings.Join(encoded, ruleSep)
}

// DecodeRecurring parses the snapshot's recurring column. Malformed
// items are skipped individually; the error reports the first problem
// encountered while the valid remainder is still returned.
func DecodeRecurring(s string) ([]RecurringRule, error) {
	if s == "" {
		return nil, nil
	}
	var rules []RecurringRule
	var firstErr error
	for _, item := range strings.Split(s, ruleSep) {
		rule, err := DecodeRecurringRule(item)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		rules = append(rules, rule)
	}
	return rules, firstErr
}
