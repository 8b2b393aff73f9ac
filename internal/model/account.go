// Package model defines the core domain types: accounts, recurring rules,
// transaction records, and operation results.
package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

// AccountKind distinguishes account variants with different capabilities.
type AccountKind string

const (
	// KindStandard is a full-capability account.
	KindStandard AccountKind = "standard"
	// KindChild is a restricted account: no transfers, no loans.
	KindChild AccountKind = "child"
)

// ParseAccountKind maps free-form input to an AccountKind, defaulting to
// standard for anything unrecognized.
func ParseAccountKind(s string) AccountKind {
	if strings.EqualFold(strings.TrimSpace(s), string(KindChild)) {
		return KindChild
	}
	return KindStandard
}

// CanTransfer reports whether accounts of this kind may send transfers.
func (k AccountKind) CanTransfer() bool {
	return k != KindChild
}

// CanRequestLoan reports whether accounts of this kind may take loans.
func (k AccountKind) CanRequestLoan() bool {
	return k != KindChild
}

// Account is a user's financial profile. Balance, Budget, TotalSpent and
// Loans are cached views derived from the operations applied to the
// account; the transaction journal is the source of truth for reporting.
type Account struct {
	Username   string
	Password   string
	Balance    decimal.Decimal
	Budget     decimal.Decimal
	TotalSpent decimal.Decimal
	Loans      decimal.Decimal
	Recurring  []RecurringRule
	Kind       AccountKind
}

// NewAccount creates an account with the given opening balance. The
// username is normalized to lowercase; usernames are case-insensitive
// everywhere.
func NewAccount(username, password string, opening decimal.Decimal, kind AccountKind) *Account {
	return &Account{
		Username: strings.ToLower(username),
		Password: password,
		Balance:  opening,
		Kind:     kind,
	}
}

// CredentialsValid reports whether the supplied password matches.
// Secrets are stored and compared verbatim.
func (a *Account) CredentialsValid(password string) bool {
	return a.Password == password
}

// BudgetSet reports whether a budget ceiling is configured. A zero
// budget means "unset"; budgets are advisory, never blocking.
func (a *Account) BudgetSet() bool {
	return a.Budget.IsPositive()
}

// BudgetRemaining returns budget minus lifetime spend. Only meaningful
// when BudgetSet is true.
func (a *Account) BudgetRemaining() decimal.Decimal {
	return a.Budget.Sub(a.TotalSpent)
}
