package models

import "time"

// ExpenseShare is the amount one actor owes for one expense. Shares exist
// only inside an Expense and are never persisted independently.
type ExpenseShare struct {
	// ActorID references an existing Actor.
	ActorID int64

	// Amount is this actor's share of the expense total, non-negative.
	Amount float64
}

// Expense represents one recorded bill. The payer always appears among the
// shares: callers that omit themselves are added before share computation.
type Expense struct {
	// ID is assigned by the store, monotonically increasing from 1.
	ID int64

	// Description is the human-readable label for the expense.
	Description string

	// TotalAmount is the full amount paid, strictly positive.
	TotalAmount float64

	// Method is the split algorithm the shares were derived with.
	Method SplitMethod

	// PayerID is the actor who paid the total.
	PayerID int64

	// CreatedAt is when the expense was recorded, at second precision
	// (the record encoding carries no finer resolution).
	CreatedAt time.Time

	// Shares holds the per-participant amounts, in participant order.
	// Their sum matches TotalAmount within the 0.01 tolerance.
	Shares []ExpenseShare
}

// ShareFor returns the share amount for the given actor and whether the
// actor participates in this expense.
func (e *Expense) ShareFor(actorID int64) (float64, bool) {
	for _, s := range e.Shares {
		if s.ActorID == actorID {
			return s.Amount, true
		}
	}
	return 0, false
}

// Involves reports whether the actor is the payer or a listed participant.
func (e *Expense) Involves(actorID int64) bool {
	if e.PayerID == actorID {
		return true
	}
	_, ok := e.ShareFor(actorID)
	return ok
}
