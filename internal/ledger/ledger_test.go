package ledger

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pennywise/internal/model"
)

// memJournal collects appended records in memory. Setting failOn makes
// any append containing that entry type fail, for storage-failure paths.
type memJournal struct {
	entries []model.TransactionRecord
	failOn  model.TxType
}

func (m *memJournal) Append(rec model.TransactionRecord) error {
	return m.AppendAll([]model.TransactionRecord{rec})
}

func (m *memJournal) AppendAll(recs []model.TransactionRecord) error {
	for _, rec := range recs {
		if m.failOn != "" && rec.Type == m.failOn {
			return errors.New("disk full")
		}
	}
	m.entries = append(m.entries, recs...)
	return nil
}

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func newTestLedger() (*Ledger, *memJournal) {
	jnl := &memJournal{}
	return NewWithClock(jnl, fixedClock(time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC))), jnl
}

func standardAccount(balance string) *model.Account {
	return model.NewAccount("alice", "secret", d(balance), model.KindStandard)
}

func TestWithdraw(t *testing.T) {
	tests := []struct {
		name          string
		balance       string
		budget        string
		spent         string
		amount        string
		wantOutcome   model.Outcome
		wantReason    model.Reason
		wantBalance   string
		wantSpent     string
		wantJournaled int
	}{
		{
			name:          "reduces balance and total spent by exactly the amount",
			balance:       "200",
			amount:        "75.50",
			wantOutcome:   model.OutcomeSuccess,
			wantBalance:   "124.5",
			wantSpent:     "75.5",
			wantJournaled: 1,
		},
		{
			name:        "zero amount rejected",
			balance:     "200",
			amount:      "0",
			wantOutcome: model.OutcomeRejected,
			wantReason:  model.ReasonInvalidAmount,
			wantBalance: "200",
			wantSpent:   "0",
		},
		{
			name:        "negative amount rejected",
			balance:     "200",
			amount:      "-5",
			wantOutcome: model.OutcomeRejected,
			wantReason:  model.ReasonInvalidAmount,
			wantBalance: "200",
			wantSpent:   "0",
		},
		{
			name:        "amount over balance rejected",
			balance:     "50",
			amount:      "50.01",
			wantOutcome: model.OutcomeRejected,
			wantReason:  model.ReasonInsufficientFunds,
			wantBalance: "50",
			wantSpent:   "0",
		},
		{
			name:          "exact balance allowed",
			balance:       "50",
			amount:        "50",
			wantOutcome:   model.OutcomeSuccess,
			wantBalance:   "0",
			wantSpent:     "50",
			wantJournaled: 1,
		},
		{
			name:          "over budget warns but still completes",
			balance:       "500",
			budget:        "100",
			spent:         "80",
			amount:        "30",
			wantOutcome:   model.OutcomeWarning,
			wantReason:    model.ReasonOverBudget,
			wantBalance:   "470",
			wantSpent:     "110",
			wantJournaled: 1,
		},
		{
			name:          "spending exactly to the budget is not a warning",
			balance:       "500",
			budget:        "100",
			spent:         "80",
			amount:        "20",
			wantOutcome:   model.OutcomeSuccess,
			wantBalance:   "480",
			wantSpent:     "100",
			wantJournaled: 1,
		},
		{
			name:          "no budget set never warns",
			balance:       "500",
			spent:         "9999",
			amount:        "30",
			wantOutcome:   model.OutcomeSuccess,
			wantBalance:   "470",
			wantSpent:     "10029",
			wantJournaled: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, jnl := newTestLedger()
			a := standardAccount(tt.balance)
			if tt.budget != "" {
				a.Budget = d(tt.budget)
			}
			if tt.spent != "" {
				a.TotalSpent = d(tt.spent)
			}

			res, err := l.Withdraw(a, d(tt.amount), "Groceries")
			require.NoError(t, err)
			assert.Equal(t, tt.wantOutcome, res.Outcome)
			assert.Equal(t, tt.wantReason, res.Reason)
			assert.True(t, a.Balance.Equal(d(tt.wantBalance)), "balance: got %s", a.Balance)
			assert.True(t, a.TotalSpent.Equal(d(tt.wantSpent)), "total spent: got %s", a.TotalSpent)
			assert.Len(t, jnl.entries, tt.wantJournaled)
			if tt.wantJournaled > 0 {
				assert.Equal(t, model.TxExpense, jnl.entries[0].Type)
				assert.Equal(t, "Groceries", jnl.entries[0].Category)
			}
		})
	}
}

func TestAddIncome(t *testing.T) {
	l, jnl := newTestLedger()
	a := standardAccount("10")

	res, err := l.AddIncome(a, d("90"))
	require.NoError(t, err)
	assert.Equal(t, model.OutcomeSuccess, res.Outcome)
	assert.True(t, a.Balance.Equal(d("100")))
	require.Len(t, jnl.entries, 1)
	assert.Equal(t, model.TxIncome, jnl.entries[0].Type)

	res, err = l.AddIncome(a, d("0"))
	require.NoError(t, err)
	assert.Equal(t, model.OutcomeRejected, res.Outcome)
	assert.True(t, a.Balance.Equal(d("100")))
	assert.Len(t, jnl.entries, 1)
}

func TestTransfer(t *testing.T) {
	t.Run("conserves total balance", func(t *testing.T) {
		l, jnl := newTestLedger()
		sender := standardAccount("300")
		receiver := model.NewAccount("bob", "pw", d("50"), model.KindStandard)

		res, err := l.Transfer(sender, receiver, d("120"))
		require.NoError(t, err)
		assert.Equal(t, model.OutcomeSuccess, res.Outcome)
		assert.True(t, sender.Balance.Equal(d("180")))
		assert.True(t, receiver.Balance.Equal(d("170")))
		assert.True(t, sender.Balance.Add(receiver.Balance).Equal(d("350")))

		require.Len(t, jnl.entries, 2)
		assert.Equal(t, model.TxTransferOut, jnl.entries[0].Type)
		assert.Equal(t, "bob", jnl.entries[0].Category)
		assert.Equal(t, model.TxTransferIn, jnl.entries[1].Type)
		assert.Equal(t, "alice", jnl.entries[1].Category)
	})

	t.Run("transfer does not touch total spent", func(t *testing.T) {
		l, _ := newTestLedger()
		sender := standardAccount("300")
		receiver := model.NewAccount("bob", "pw", d("0"), model.KindStandard)

		_, err := l.Transfer(sender, receiver, d("100"))
		require.NoError(t, err)
		assert.True(t, sender.TotalSpent.IsZero())
	})

	t.Run("child account rejected unconditionally", func(t *testing.T) {
		l, jnl := newTestLedger()
		sender := model.NewAccount("kid", "pw", d("500"), model.KindChild)
		receiver := standardAccount("0")

		res, err := l.Transfer(sender, receiver, d("10"))
		require.NoError(t, err)
		assert.Equal(t, model.OutcomeRejected, res.Outcome)
		assert.Equal(t, model.ReasonChildRestricted, res.Reason)
		assert.True(t, sender.Balance.Equal(d("500")))
		assert.True(t, receiver.Balance.IsZero())
		assert.Empty(t, jnl.entries)
	})

	t.Run("insufficient funds rejected", func(t *testing.T) {
		l, _ := newTestLedger()
		sender := standardAccount("10")
		receiver := model.NewAccount("bob", "pw", d("0"), model.KindStandard)

		res, err := l.Transfer(sender, receiver, d("10.01"))
		require.NoError(t, err)
		assert.Equal(t, model.OutcomeRejected, res.Outcome)
		assert.Equal(t, model.ReasonInsufficientFunds, res.Reason)
	})

	t.Run("receiver journal failure reported after both balances moved", func(t *testing.T) {
		jnl := &memJournal{failOn: model.TxTransferIn}
		l := NewWithClock(jnl, fixedClock(time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)))
		sender := standardAccount("100")
		receiver := model.NewAccount("bob", "pw", d("0"), model.KindStandard)

		res, err := l.Transfer(sender, receiver, d("40"))
		assert.Error(t, err)
		assert.Equal(t, model.OutcomeSuccess, res.Outcome)
		// The books disagree: both balances moved, only the sender's
		// entry made it into the journal.
		assert.True(t, sender.Balance.Equal(d("60")))
		assert.True(t, receiver.Balance.Equal(d("40")))
		require.Len(t, jnl.entries, 1)
		assert.Equal(t, model.TxTransferOut, jnl.entries[0].Type)
	})
}

func TestRequestLoan(t *testing.T) {
	tests := []struct {
		name        string
		kind        model.AccountKind
		balance     string
		loans       string
		amount      string
		wantOutcome model.Outcome
		wantReason  model.Reason
		wantBalance string
		wantLoans   string
	}{
		{
			name:        "zero-loan account below minimum balance rejected",
			kind:        model.KindStandard,
			balance:     "50",
			loans:       "0",
			amount:      "10",
			wantOutcome: model.OutcomeRejected,
			wantReason:  model.ReasonLoanIneligible,
			wantBalance: "50",
			wantLoans:   "0",
		},
		{
			name:        "sufficient balance approves loan",
			kind:        model.KindStandard,
			balance:     "150",
			loans:       "0",
			amount:      "100",
			wantOutcome: model.OutcomeSuccess,
			wantBalance: "250",
			wantLoans:   "100",
		},
		{
			name:        "existing loan bypasses minimum balance",
			kind:        model.KindStandard,
			balance:     "10",
			loans:       "200",
			amount:      "100",
			wantOutcome: model.OutcomeSuccess,
			wantBalance: "110",
			wantLoans:   "300",
		},
		{
			name:        "substantial loan caps new borrowing at double",
			kind:        model.KindStandard,
			balance:     "1000",
			loans:       "600",
			amount:      "1201",
			wantOutcome: model.OutcomeRejected,
			wantReason:  model.ReasonLoanOverLeveraged,
			wantBalance: "1000",
			wantLoans:   "600",
		},
		{
			name:        "double the outstanding loan is still allowed",
			kind:        model.KindStandard,
			balance:     "1000",
			loans:       "600",
			amount:      "1200",
			wantOutcome: model.OutcomeSuccess,
			wantBalance: "2200",
			wantLoans:   "1800",
		},
		{
			name:        "small outstanding loan is not leverage-capped",
			kind:        model.KindStandard,
			balance:     "1000",
			loans:       "500",
			amount:      "5000",
			wantOutcome: model.OutcomeSuccess,
			wantBalance: "6000",
			wantLoans:   "5500",
		},
		{
			name:        "negative amount rejected",
			kind:        model.KindStandard,
			balance:     "1000",
			loans:       "0",
			amount:      "-1",
			wantOutcome: model.OutcomeRejected,
			wantReason:  model.ReasonInvalidAmount,
			wantBalance: "1000",
			wantLoans:   "0",
		},
		{
			name:        "child account rejected",
			kind:        model.KindChild,
			balance:     "1000",
			loans:       "0",
			amount:      "100",
			wantOutcome: model.OutcomeRejected,
			wantReason:  model.ReasonChildRestricted,
			wantBalance: "1000",
			wantLoans:   "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, _ := newTestLedger()
			a := model.NewAccount("alice", "secret", d(tt.balance), tt.kind)
			a.Loans = d(tt.loans)

			res, err := l.RequestLoan(a, d(tt.amount))
			require.NoError(t, err)
			assert.Equal(t, tt.wantOutcome, res.Outcome)
			assert.Equal(t, tt.wantReason, res.Reason)
			assert.True(t, a.Balance.Equal(d(tt.wantBalance)), "balance: got %s", a.Balance)
			assert.True(t, a.Loans.Equal(d(tt.wantLoans)), "loans: got %s", a.Loans)
		})
	}
}

func TestRepayLoan(t *testing.T) {
	tests := []struct {
		name        string
		balance     string
		loans       string
		amount      string
		wantOutcome model.Outcome
		wantReason  model.Reason
		wantBalance string
		wantLoans   string
	}{
		{
			name:        "partial repayment",
			balance:     "300",
			loans:       "200",
			amount:      "50",
			wantOutcome: model.OutcomeSuccess,
			wantBalance: "250",
			wantLoans:   "150",
		},
		{
			name:        "full repayment",
			balance:     "300",
			loans:       "200",
			amount:      "200",
			wantOutcome: model.OutcomeSuccess,
			wantBalance: "100",
			wantLoans:   "0",
		},
		{
			name:        "repaying more than the loan rejected",
			balance:     "300",
			loans:       "200",
			amount:      "201",
			wantOutcome: model.OutcomeRejected,
			wantReason:  model.ReasonRepayExceedsLoan,
			wantBalance: "300",
			wantLoans:   "200",
		},
		{
			name:        "repaying more than the balance rejected",
			balance:     "100",
			loans:       "200",
			amount:      "150",
			wantOutcome: model.OutcomeRejected,
			wantReason:  model.ReasonInsufficientFunds,
			wantBalance: "100",
			wantLoans:   "200",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, _ := newTestLedger()
			a := standardAccount(tt.balance)
			a.Loans = d(tt.loans)

			res, err := l.RepayLoan(a, d(tt.amount))
			require.NoError(t, err)
			assert.Equal(t, tt.wantOutcome, res.Outcome)
			assert.Equal(t, tt.wantReason, res.Reason)
			assert.True(t, a.Balance.Equal(d(tt.wantBalance)))
			assert.True(t, a.Loans.Equal(d(tt.wantLoans)))
		})
	}
}

func TestSetBudget(t *testing.T) {
	l, _ := newTestLedger()
	a := standardAccount("0")

	res := l.SetBudget(a, d("-1"))
	assert.Equal(t, model.OutcomeRejected, res.Outcome)
	assert.True(t, a.Budget.IsZero())

	res = l.SetBudget(a, d("500"))
	assert.Equal(t, model.OutcomeSuccess, res.Outcome)
	assert.True(t, a.Budget.Equal(d("500")))

	res = l.SetBudget(a, d("0"))
	assert.Equal(t, model.OutcomeSuccess, res.Outcome)
	assert.False(t, a.BudgetSet())
}

func TestScheduleRecurring(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	l := NewWithClock(&memJournal{}, fixedClock(now))
	a := standardAccount("100")

	res := l.ScheduleRecurring(a, d("25"), "Streaming", 30)
	assert.Equal(t, model.OutcomeSuccess, res.Outcome)
	require.Len(t, a.Recurring, 1)
	assert.Equal(t, now, a.Recurring[0].LastProcessed)
	assert.Equal(t, 30, a.Recurring[0].FrequencyDays)

	res = l.ScheduleRecurring(a, d("25"), "Streaming", 0)
	assert.Equal(t, model.OutcomeRejected, res.Outcome)
	assert.Equal(t, model.ReasonInvalidFrequency, res.Reason)
	assert.Len(t, a.Recurring, 1)

	res = l.ScheduleRecurring(a, d("0"), "Streaming", 7)
	assert.Equal(t, model.OutcomeRejected, res.Outcome)
	assert.Equal(t, model.ReasonInvalidAmount, res.Reason)
	assert.Len(t, a.Recurring, 1)
}
