package calculator

import (
	"math"

	"github.com/splitkeeper/splitkeeper/internal/models"
)

// ComputeBalances folds the full expense history into net amounts between
// the viewpoint actor and every counterparty it shares an expense with.
//
// Positive = counterparty owes the viewpoint; negative = the viewpoint owes
// the counterparty. The fold is commutative and associative under addition,
// so the order of the history does not affect the result. Balances are
// recomputed on every query; there is no cached state.
func ComputeBalances(viewpointID int64, history []*models.Expense) map[int64]float64 {
	balances := make(map[int64]float64)

	for _, expense := range history {
		for _, share := range expense.Shares {
			switch {
			case expense.PayerID == viewpointID && share.ActorID != viewpointID:
				// The viewpoint fronted this share.
				balances[share.ActorID] += share.Amount
			case share.ActorID == viewpointID && expense.PayerID != viewpointID:
				// Someone else fronted the viewpoint's share.
				balances[expense.PayerID] -= share.Amount
			}
		}
	}

	return balances
}

// Settled reports whether a balance is within Tolerance of zero. Settled
// balances stay in the raw mapping but are suppressed from display.
func Settled(amount float64) bool {
	return math.Abs(amount) <= Tolerance
}
