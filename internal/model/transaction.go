package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TxType is the fixed vocabulary of journal entry types.
type TxType string

const (
	TxIncome          TxType = "Income"
	TxExpense         TxType = "Expense"
	TxTransferOut     TxType = "Transfer Out"
	TxTransferIn      TxType = "Transfer In"
	TxLoanReceived    TxType = "Loan Received"
	TxLoanRepayment   TxType = "Loan Repayment"
	TxRecurring       TxType = "Recurring Expense"
	TxRecurringFailed TxType = "Recurring Expense Failed"
)

// IsInflow reports whether the type adds money to the account.
func (t TxType) IsInflow() bool {
	switch t {
	case TxIncome, TxLoanReceived, TxTransferIn:
		return true
	}
	return false
}

// IsOutflow reports whether the type removes money from the account.
// Failed recurring charges count as outflow for net-flow reporting,
// matching how they were always tallied.
func (t TxType) IsOutflow() bool {
	switch t {
	case TxExpense, TxLoanRepayment, TxTransferOut, TxRecurring, TxRecurringFailed:
		return true
	}
	return false
}

// IsExpense reports whether the type represents actual spending,
// the subset used for category breakdowns and forecasting.
func (t TxType) IsExpense() bool {
	return t == TxExpense || t == TxRecurring
}

// TransactionRecord is one immutable row of the append-only journal.
type TransactionRecord struct {
	Username  string
	Timestamp time.Time
	Amount    decimal.Decimal
	Type      TxType
	Category  string
}
