package calculator

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/splitkeeper/splitkeeper/internal/models"
)

func expense(id, payerID int64, total float64, shares ...models.ExpenseShare) *models.Expense {
	return &models.Expense{
		ID:          id,
		Description: "test",
		TotalAmount: total,
		Method:      models.Equal,
		PayerID:     payerID,
		CreatedAt:   time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		Shares:      shares,
	}
}

func TestComputeBalances_DinnerScenario(t *testing.T) {
	// Actor 1 pays $100.00 split EQUAL among {1,2,3}.
	third := 100.0 / 3.0
	history := []*models.Expense{
		expense(1, 1, 100.00,
			models.ExpenseShare{ActorID: 1, Amount: third},
			models.ExpenseShare{ActorID: 2, Amount: third},
			models.ExpenseShare{ActorID: 3, Amount: third},
		),
	}

	fromPayer := ComputeBalances(1, history)
	if len(fromPayer) != 2 {
		t.Fatalf("payer viewpoint: got %d counterparties, want 2", len(fromPayer))
	}
	for _, counterparty := range []int64{2, 3} {
		if math.Abs(fromPayer[counterparty]-33.33) > 0.01 {
			t.Errorf("balance[%d] = %v, want ~33.33", counterparty, fromPayer[counterparty])
		}
	}

	fromParticipant := ComputeBalances(2, history)
	if len(fromParticipant) != 1 {
		t.Fatalf("participant viewpoint: got %d counterparties, want 1", len(fromParticipant))
	}
	if math.Abs(fromParticipant[1]-(-33.33)) > 0.01 {
		t.Errorf("balance[1] = %v, want ~-33.33", fromParticipant[1])
	}
}

func TestComputeBalances_PayerOnlyExpenseHasNoEffect(t *testing.T) {
	history := []*models.Expense{
		expense(1, 1, 20.00, models.ExpenseShare{ActorID: 1, Amount: 20.00}),
	}

	for _, viewpoint := range []int64{1, 2} {
		balances := ComputeBalances(viewpoint, history)
		if len(balances) != 0 {
			t.Errorf("viewpoint %d: got %d entries, want none", viewpoint, len(balances))
		}
	}
}

func multiExpenseHistory() []*models.Expense {
	return []*models.Expense{
		expense(1, 1, 100.00,
			models.ExpenseShare{ActorID: 1, Amount: 100.0 / 3},
			models.ExpenseShare{ActorID: 2, Amount: 100.0 / 3},
			models.ExpenseShare{ActorID: 3, Amount: 100.0 / 3},
		),
		expense(2, 2, 60.00,
			models.ExpenseShare{ActorID: 1, Amount: 20.00},
			models.ExpenseShare{ActorID: 2, Amount: 25.00},
			models.ExpenseShare{ActorID: 3, Amount: 15.00},
		),
		expense(3, 3, 42.00,
			models.ExpenseShare{ActorID: 3, Amount: 30.00},
			models.ExpenseShare{ActorID: 1, Amount: 12.00},
		),
		expense(4, 1, 18.00,
			models.ExpenseShare{ActorID: 2, Amount: 9.00},
			models.ExpenseShare{ActorID: 1, Amount: 9.00},
		),
	}
}

func TestComputeBalances_Antisymmetry(t *testing.T) {
	history := multiExpenseHistory()
	actors := []int64{1, 2, 3}

	for _, a := range actors {
		for _, b := range actors {
			if a == b {
				continue
			}
			ab := ComputeBalances(a, history)[b]
			ba := ComputeBalances(b, history)[a]
			if math.Abs(ab+ba) > 1e-9 {
				t.Errorf("balance(%d)[%d]=%v and balance(%d)[%d]=%v are not negations",
					a, b, ab, b, a, ba)
			}
		}
	}
}

func TestComputeBalances_OrderIndependence(t *testing.T) {
	history := multiExpenseHistory()
	rng := rand.New(rand.NewSource(1))

	for _, viewpoint := range []int64{1, 2, 3} {
		want := ComputeBalances(viewpoint, history)

		for trial := 0; trial < 10; trial++ {
			shuffled := append([]*models.Expense(nil), history...)
			rng.Shuffle(len(shuffled), func(i, j int) {
				shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
			})

			got := ComputeBalances(viewpoint, shuffled)
			if len(got) != len(want) {
				t.Fatalf("viewpoint %d: entry count changed under permutation", viewpoint)
			}
			for id, amount := range want {
				if math.Abs(got[id]-amount) > 1e-9 {
					t.Errorf("viewpoint %d: balance[%d] = %v after shuffle, want %v",
						viewpoint, id, got[id], amount)
				}
			}
		}
	}
}

func TestSettled(t *testing.T) {
	tests := []struct {
		amount float64
		want   bool
	}{
		{0, true},
		{0.005, true},
		{-0.005, true},
		{0.01, true},
		{0.02, false},
		{-33.33, false},
	}

	for _, tt := range tests {
		if got := Settled(tt.amount); got != tt.want {
			t.Errorf("Settled(%v) = %v, want %v", tt.amount, got, tt.want)
		}
	}
}
