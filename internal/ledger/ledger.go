// Package ledger implements the account engine: every balance mutation
// (income, expense, transfer, loan, budget, recurring) plus the catch-up
// replay of overdue recurring charges.
//
// Operations return a model.Result carrying the business outcome and a
// separate error for storage failures. A journal-append failure is
// reported but never rolls back the in-memory mutation; the caller
// persists the registry snapshot after every mutating result.
package ledger

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"pennywise/internal/model"
)

// Appender is the journal surface the engine writes to.
type Appender interface {
	Append(model.TransactionRecord) error
	AppendAll([]model.TransactionRecord) error
}

// Loan eligibility thresholds.
var (
	loanMinBalance    = decimal.NewFromInt(100)
	loanLeverageFloor = decimal.NewFromInt(500)
	loanLeverageRatio = decimal.NewFromInt(2)
)

// Ledger applies operations to accounts and records them in the journal.
type Ledger struct {
	journal Appender
	now     func() time.Time
}

// New creates a ledger writing to the given journal. The clock defaults
// to time.Now and is injectable for tests.
func New(journal Appender) *Ledger {
	return &Ledger{journal: journal, now: time.Now}
}

// NewWithClock creates a ledger with an explicit clock.
func NewWithClock(journal Appender, now func() time.Time) *Ledger {
	return &Ledger{journal: journal, now: now}
}

// SetBudget sets the account's advisory budget ceiling. Zero clears it.
func (l *Ledger) SetBudget(a *model.Account, budget decimal.Decimal) model.Result {
	if budget.IsNegative() {
		return model.Reject(model.ReasonNegativeBudget, "budget cannot be negative")
	}
	a.Budget = budget
	return model.Succeed(fmt.Sprintf("budget set to %s", budget.StringFixed(2)))
}

// AddIncome credits the account and journals an Income entry.
func (l *Ledger) AddIncome(a *model.Account, amount decimal.Decimal) (model.Result, error) {
	if !amount.IsPositive() {
		return model.Reject(model.ReasonInvalidAmount, "income amount must be positive"), nil
	}
	a.Balance = a.Balance.Add(amount)
	err := l.log(a, l.now(), amount, model.TxIncome, "General")
	msg := fmt.Sprintf("income of %s added, balance now %s", amount.StringFixed(2), a.Balance.StringFixed(2))
	return model.Succeed(msg), err
}

// Withdraw records an expense against a category. Exceeding the budget
// downgrades the result to a warning; the budget is advisory and the
// withdrawal still completes.
func (l *Ledger) Withdraw(a *model.Account, amount decimal.Decimal, category string) (model.Result, error) {
	if !amount.IsPositive() {
		return model.Reject(model.ReasonInvalidAmount, "expense amount must be positive"), nil
	}
	if amount.GreaterThan(a.Balance) {
		return model.Reject(model.ReasonInsufficientFunds, "insufficient funds"), nil
	}

	overBudget := a.BudgetSet() && a.TotalSpent.Add(amount).GreaterThan(a.Budget)

	a.Balance = a.Balance.Sub(amount)
	a.TotalSpent = a.TotalSpent.Add(amount)
	err := l.log(a, l.now(), amount, model.TxExpense, category)

	if overBudget {
		msg := fmt.Sprintf("withdrew %s for %q and went over budget, balance now %s",
			amount.StringFixed(2), category, a.Balance.StringFixed(2))
		return model.Warn(model.ReasonOverBudget, msg), err
	}
	msg := fmt.Sprintf("withdrew %s for %q, balance now %s",
		amount.StringFixed(2), category, a.Balance.StringFixed(2))
	return model.Succeed(msg), err
}

// Transfer moves money from a to receiver and journals both sides.
// Child accounts cannot transfer. Preventing self-transfer is the
// caller's job. The two journal writes are not transactional: if the
// receiver's entry fails after the sender's was written, the books
// disagree and the error says so.
func (l *Ledger) Transfer(a, receiver *model.Account, amount decimal.Decimal) (model.Result, error) {
	if !a.Kind.CanTransfer() {
		return model.Reject(model.ReasonChildRestricted, "transfers are not available on child accounts"), nil
	}
	if !amount.IsPositive() {
		return model.Reject(model.ReasonInvalidAmount, "transfer amount must be positive"), nil
	}
	if amount.GreaterThan(a.Balance) {
		return model.Reject(model.ReasonInsufficientFunds, "insufficient funds for transfer"), nil
	}

	now := l.now()
	a.Balance = a.Balance.Sub(amount)
	receiver.Balance = receiver.Balance.Add(amount)

	err := l.log(a, now, amount, model.TxTransferOut, receiver.Username)
	if rerr := l.log(receiver, now, amount, model.TxTransferIn, a.Username); rerr != nil {
		if err == nil {
			rerr = fmt.Errorf("sender entry written but receiver entry failed: %w", rerr)
		}
		err = rerr
	}

	msg := fmt.Sprintf("transferred %s to %s, balance now %s",
		amount.StringFixed(2), receiver.Username, a.Balance.StringFixed(2))
	return model.Succeed(msg), err
}

// RequestLoan credits the account and raises its outstanding loan.
// Child accounts are ineligible. A new borrower needs a minimum balance;
// a borrower already holding a substantial loan cannot more than double
// their exposure.
func (l *Ledger) RequestLoan(a *model.Account, amount decimal.Decimal) (model.Result, error) {
	if !a.Kind.CanRequestLoan() {
		return model.Reject(model.ReasonChildRestricted, "loans are not available on child accounts"), nil
	}
	if !amount.IsPositive() {
		return model.Reject(model.ReasonInvalidAmount, "loan amount must be positive"), nil
	}
	if a.Balance.LessThan(loanMinBalance) && a.Loans.IsZero() {
		msg := fmt.Sprintf("not eligible: maintain a minimum balance of %s", loanMinBalance.StringFixed(2))
		return model.Reject(model.ReasonLoanIneligible, msg), nil
	}
	if a.Loans.IsPositive() && a.Loans.GreaterThan(loanLeverageFloor) &&
		amount.GreaterThan(a.Loans.Mul(loanLeverageRatio)) {
		return model.Reject(model.ReasonLoanOverLeveraged,
			"cannot take a new loan more than double the current outstanding loan"), nil
	}

	a.Balance = a.Balance.Add(amount)
	a.Loans = a.Loans.Add(amount)
	err := l.log(a, l.now(), amount, model.TxLoanReceived, "Bank")
	msg := fmt.Sprintf("loan of %s approved, outstanding loan now %s",
		amount.StringFixed(2), a.Loans.StringFixed(2))
	return model.Succeed(msg), err
}

// RepayLoan pays down the outstanding loan from the account balance.
func (l *Ledger) RepayLoan(a *model.Account, amount decimal.Decimal) (model.Result, error) {
	if !amount.IsPositive() {
		return model.Reject(model.ReasonInvalidAmount, "repayment amount must be positive"), nil
	}
	if amount.GreaterThan(a.Balance) {
		return model.Reject(model.ReasonInsufficientFunds, "insufficient funds"), nil
	}
	if amount.GreaterThan(a.Loans) {
		msg := fmt.Sprintf("cannot repay more than the outstanding loan of %s", a.Loans.StringFixed(2))
		return model.Reject(model.ReasonRepayExceedsLoan, msg), nil
	}

	a.Balance = a.Balance.Sub(amount)
	a.Loans = a.Loans.Sub(amount)
	err := l.log(a, l.now(), amount, model.TxLoanRepayment, "Bank")
	msg := fmt.Sprintf("repaid %s, remaining loan %s", amount.StringFixed(2), a.Loans.StringFixed(2))
	return model.Succeed(msg), err
}

// ScheduleRecurring appends a recurring rule with LastProcessed set to
// the current time, so the first charge falls one full period from now.
func (l *Ledger) ScheduleRecurring(a *model.Account, amount decimal.Decimal, category string, frequencyDays int) model.Result {
	if !amount.IsPositive() {
		return model.Reject(model.ReasonInvalidAmount, "recurring amount must be positive")
	}
	if frequencyDays <= 0 {
		return model.Reject(model.ReasonInvalidFrequency, "frequency must be a positive number of days")
	}
	a.Recurring = append(a.Recurring, model.RecurringRule{
		Amount:        amount,
		Category:      category,
		FrequencyDays: frequencyDays,
		LastProcessed: l.now(),
	})
	msg := fmt.Sprintf("recurring expense of %s for %q scheduled every %d days",
		amount.StringFixed(2), category, frequencyDays)
	return model.Succeed(msg)
}

func (l *Ledger) log(a *model.Account, ts time.Time, amount decimal.Decimal, t model.TxType, category string) error {
	return l.journal.Append(model.TransactionRecord{
		Username:  a.Username,
		Timestamp: ts,
		Amount:    amount,
		Type:      t,
		Category:  category,
	})
}
