// Package calculator computes expense splits and net balances. Everything
// here is pure computation over its inputs: no storage, no mutation.
package calculator

import (
	"errors"
	"math"

	"github.com/splitkeeper/splitkeeper/internal/models"
)

// Tolerance is the absolute amount within which share sums must match the
// expense total. It absorbs the sub-cent division remainder of EQUAL and
// PERCENTAGE splits; EXACT and PERCENTAGE inputs are validated against it
// before any share is produced.
const Tolerance = 0.01

var (
	ErrInvalidAmount         = errors.New("total amount must be greater than zero")
	ErrEmptyParticipants     = errors.New("at least one participant is required")
	ErrShareCountMismatch    = errors.New("number of shares does not match participants")
	ErrShareSumMismatch      = errors.New("shares do not sum to the total amount")
	ErrPercentageSumMismatch = errors.New("percentages do not sum to 100")
	ErrNegativeShare         = errors.New("share amounts must not be negative")
)

// Split dispatches to the split function for the given method. For EQUAL the
// rawInputs are ignored; for EXACT they are per-participant amounts and for
// PERCENTAGE per-participant percentages on the 0-100 scale, in participant
// order.
func Split(method models.SplitMethod, totalAmount float64, participantIDs []int64, rawInputs []float64) ([]models.ExpenseShare, error) {
	switch method {
	case models.Exact:
		return ExactSplit(totalAmount, participantIDs, rawInputs)
	case models.Percentage:
		return PercentageSplit(totalAmount, participantIDs, rawInputs)
	default:
		return EqualSplit(totalAmount, participantIDs)
	}
}

// EqualSplit gives every participant the uniform quotient totalAmount/n.
//
// The quotient is computed once and applied as-is: no largest-remainder
// redistribution is performed, so the sum of shares may differ from the
// total by the floating division error times the participant count. Once
// persisted at cent precision the undershoot can reach one cent per
// participant beyond the first; both stay well inside Tolerance for
// realistic group sizes.
func EqualSplit(totalAmount float64, participantIDs []int64) ([]models.ExpenseShare, error) {
	if totalAmount <= 0 {
		return nil, ErrInvalidAmount
	}
	if len(participantIDs) == 0 {
		return nil, ErrEmptyParticipants
	}

	share := totalAmount / float64(len(participantIDs))
	shares := make([]models.ExpenseShare, len(participantIDs))
	for i, id := range participantIDs {
		shares[i] = models.ExpenseShare{ActorID: id, Amount: share}
	}
	return shares, nil
}

// ExactSplit takes each participant's share verbatim from amounts. The
// amounts must sum to totalAmount within Tolerance; the comparison is
// strictly-greater, so a difference exceeding 0.01 by any representable
// margin rejects. Note that nominal-cent differences like 50.00 vs
// 20.00+29.99 reject too: the float64 difference lands just above 0.01.
func ExactSplit(totalAmount float64, participantIDs []int64, amounts []float64) ([]models.ExpenseShare, error) {
	if totalAmount <= 0 {
		return nil, ErrInvalidAmount
	}
	if len(participantIDs) == 0 {
		return nil, ErrEmptyParticipants
	}
	if len(amounts) != len(participantIDs) {
		return nil, ErrShareCountMismatch
	}

	var sum float64
	for _, a := range amounts {
		// Shares are non-negative by construction; a negative amount
		// here would round-trip as a malformed record.
		if a < 0 {
			return nil, ErrNegativeShare
		}
		sum += a
	}
	if math.Abs(sum-totalAmount) > Tolerance {
		return nil, ErrShareSumMismatch
	}

	shares := make([]models.ExpenseShare, len(participantIDs))
	for i, id := range participantIDs {
		shares[i] = models.ExpenseShare{ActorID: id, Amount: amounts[i]}
	}
	return shares, nil
}

// PercentageSplit derives each share as totalAmount * pct/100. The
// percentages must sum to 100 within Tolerance, with the same
// strictly-greater boundary as ExactSplit.
func PercentageSplit(totalAmount float64, participantIDs []int64, percentages []float64) ([]models.ExpenseShare, error) {
	if totalAmount <= 0 {
		return nil, ErrInvalidAmount
	}
	if len(participantIDs) == 0 {
		return nil, ErrEmptyParticipants
	}
	if len(percentages) != len(participantIDs) {
		return nil, ErrShareCountMismatch
	}

	var totalPct float64
	for _, p := range percentages {
		if p < 0 {
			return nil, ErrNegativeShare
		}
		totalPct += p
	}
	if math.Abs(totalPct-100.0) > Tolerance {
		return nil, ErrPercentageSumMismatch
	}

	shares := make([]models.ExpenseShare, len(participantIDs))
	for i, id := range participantIDs {
		shares[i] = models.ExpenseShare{ActorID: id, Amount: totalAmount * (percentages[i] / 100.0)}
	}
	return shares, nil
}
