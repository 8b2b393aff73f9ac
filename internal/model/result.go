package model

// Outcome classifies the result of a business operation.
type Outcome int

const (
	// OutcomeSuccess means the operation completed and state changed.
	OutcomeSuccess Outcome = iota
	// OutcomeWarning means the operation completed but crossed an
	// advisory threshold; state changed and must still be persisted.
	OutcomeWarning
	// OutcomeRejected means a business rule refused the operation;
	// state is unchanged.
	OutcomeRejected
)

// Reason is a machine-readable code for rejections and warnings.
type Reason string

const (
	ReasonNone              Reason = ""
	ReasonInvalidAmount     Reason = "invalid_amount"
	ReasonInsufficientFunds Reason = "insufficient_funds"
	ReasonOverBudget        Reason = "over_budget"
	ReasonChildRestricted   Reason = "child_restricted"
	ReasonLoanIneligible    Reason = "loan_ineligible"
	ReasonLoanOverLeveraged Reason = "loan_over_leveraged"
	ReasonRepayExceedsLoan  Reason = "repay_exceeds_loan"
	ReasonNegativeBudget    Reason = "negative_budget"
	ReasonInvalidFrequency  Reason = "invalid_frequency"
	ReasonEmptyCredentials  Reason = "empty_credentials"
	ReasonDuplicateUsername Reason = "duplicate_username"
	ReasonNegativeOpening   Reason = "negative_opening_balance"
	ReasonUnknownAccount    Reason = "unknown_account"
	ReasonBadCredentials    Reason = "bad_credentials"
)

// Result is the structured outcome of every account operation. Business
// rule violations never surface as Go errors; they come back as Rejected
// results with the state untouched.
type Result struct {
	Outcome Outcome
	Reason  Reason
	Message string
}

// Succeed builds a success result.
func Succeed(message string) Result {
	return Result{Outcome: OutcomeSuccess, Message: message}
}

// Warn builds a warning result: the operation went through but crossed
// an advisory threshold.
func Warn(reason Reason, message string) Result {
	return Result{Outcome: OutcomeWarning, Reason: reason, Message: message}
}

// Reject builds a rejection result.
func Reject(reason Reason, message string) Result {
	return Result{Outcome: OutcomeRejected, Reason: reason, Message: message}
}

// Mutated reports whether the operation changed account state and the
// registry snapshot therefore needs to be saved.
func (r Result) Mutated() bool {
	return r.Outcome != OutcomeRejected
}

// Rejected reports whether the operation was refused.
func (r Result) Rejected() bool {
	return r.Outcome == OutcomeRejected
}
