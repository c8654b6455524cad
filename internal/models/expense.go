package models

// Split modes for an expense.
const (
	SplitEqual  = "equal"
	SplitCustom = "custom"
)

// Expense represents a single cost paid by one trip member and split among
// members. The splits always sum to Amount within 0.01 currency units; the
// calculator package enforces this at creation time.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string `json:"id"`

	// TripID is the trip this expense belongs to.
	TripID string `json:"tripId"`

	// PaidBy is the user ID of the member who paid. Only this user may
	// edit or delete the expense.
	PaidBy string `json:"paidBy"`

	// Amount is the total expense amount. Always positive.
	Amount float64 `json:"amount"`

	// Description is what the money was spent on.
	Description string `json:"description"`

	// Category is a free-form grouping label (e.g., "food", "transport").
	Category string `json:"category"`

	// Date is the Unix timestamp of when the expense occurred.
	Date int64 `json:"date"`

	// Splits records each participant's share of the amount. No user ID
	// appears twice.
	Splits []ExpenseSplit `json:"splits"`

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64 `json:"createdAt"`

	// UpdatedAt is the Unix timestamp of the last modification.
	UpdatedAt int64 `json:"updatedAt"`
}

// ExpenseSplit is one member's obligation for one expense.
type ExpenseSplit struct {
	UserID string  `json:"userId"`
	Amount float64 `json:"amount"`

	// Settled marks the obligation as paid back. Stored but never mutated:
	// there is no settlement workflow.
	Settled bool `json:"settled"`
}

// CanModify reports whether the given user may edit or delete this expense.
// Only the payer can; trip admins get no override.
func (e *Expense) CanModify(userID string) bool {
	return e.PaidBy == userID
}

// SplitFor returns the given user's split amount, or 0 if the user has no
// split entry on this expense.
func (e *Expense) SplitFor(userID string) float64 {
	for _, s := range e.Splits {
		if s.UserID == userID {
			return s.Amount
		}
	}
	return 0
}

// BalanceReport summarizes one user's financial position across a trip's
// expenses. Computed by the calculator package, never persisted.
type BalanceReport struct {
	// TotalSpend is the sum of all expense amounts in the trip.
	TotalSpend float64 `json:"totalSpend"`

	// AmountPaid is the sum of amounts for expenses the user paid.
	AmountPaid float64 `json:"amountPaid"`

	// AmountOwed is the sum of the user's split amounts across all
	// expenses.
	AmountOwed float64 `json:"amountOwed"`
}
