package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/splitkeeper/splitkeeper/internal/models"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStore(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	actors := []*models.Actor{
		{ID: 1, Name: "Alice", Email: "alice@example.com", Phone: "5551234567", Credential: "hash-a"},
		{ID: 3, Name: "Bob", Email: "bob@example.com", Phone: "5559876543", Credential: "hash-b"},
	}
	expenses := []*models.Expense{
		{
			ID:          2,
			Description: "Dinner",
			TotalAmount: 100.00,
			Method:      models.Percentage,
			PayerID:     1,
			CreatedAt:   time.Date(2024, 3, 14, 19, 30, 5, 0, time.UTC),
			Shares: []models.ExpenseShare{
				{ActorID: 1, Amount: 60.00},
				{ActorID: 3, Amount: 40.00},
			},
		},
	}

	t.Run("empty database loads empty snapshot", func(t *testing.T) {
		snap, err := store.Load(ctx)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if len(snap.Actors) != 0 || len(snap.Expenses) != 0 {
			t.Errorf("expected empty snapshot, got %d actors, %d expenses", len(snap.Actors), len(snap.Expenses))
		}
		if snap.NextActorID != 1 || snap.NextExpenseID != 1 {
			t.Errorf("expected next ids 1/1, got %d/%d", snap.NextActorID, snap.NextExpenseID)
		}
	})

	t.Run("save and load round trip", func(t *testing.T) {
		if err := store.Save(ctx, actors, expenses); err != nil {
			t.Fatalf("Save failed: %v", err)
		}

		snap, err := store.Load(ctx)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}

		if len(snap.Actors) != 2 {
			t.Fatalf("actors: got %d, want 2", len(snap.Actors))
		}
		for i, actor := range snap.Actors {
			if *actor != *actors[i] {
				t.Errorf("actor %d: got %+v, want %+v", i, actor, actors[i])
			}
		}

		if len(snap.Expenses) != 1 {
			t.Fatalf("expenses: got %d, want 1", len(snap.Expenses))
		}
		got := snap.Expenses[0]
		if got.Method != models.Percentage {
			t.Errorf("method: got %v, want %v", got.Method, models.Percentage)
		}
		if !got.CreatedAt.Equal(expenses[0].CreatedAt) {
			t.Errorf("created_at: got %v, want %v", got.CreatedAt, expenses[0].CreatedAt)
		}
		if len(got.Shares) != 2 || got.Shares[0].ActorID != 1 || got.Shares[1].ActorID != 3 {
			t.Errorf("shares lost order or content: %+v", got.Shares)
		}

		// Id counters recover past the stored gap.
		if snap.NextActorID != 4 {
			t.Errorf("NextActorID: got %d, want 4", snap.NextActorID)
		}
		if snap.NextExpenseID != 3 {
			t.Errorf("NextExpenseID: got %d, want 3", snap.NextExpenseID)
		}
	})

	t.Run("undecodable rows are discarded, not fatal", func(t *testing.T) {
		// Rows written by older or foreign tooling can carry tags this
		// build does not know; Load must drop them and keep the rest.
		_, err := store.db.Exec(
			"INSERT INTO expenses (id, description, total_amount, method, payer_id, created_at) VALUES (?, ?, ?, ?, ?, ?)",
			90, "Unknown method", 10.00, "WEIGHTED", 1, "2024-03-14 19:31:00",
		)
		if err != nil {
			t.Fatalf("failed to insert bad row: %v", err)
		}
		_, err = store.db.Exec(
			"INSERT INTO expenses (id, description, total_amount, method, payer_id, created_at) VALUES (?, ?, ?, ?, ?, ?)",
			91, "Bad timestamp", 10.00, "EQUAL", 1, "yesterday",
		)
		if err != nil {
			t.Fatalf("failed to insert bad row: %v", err)
		}

		snap, err := store.Load(ctx)
		if err != nil {
			t.Fatalf("Load must not fail on undecodable rows: %v", err)
		}
		if len(snap.Expenses) != 1 {
			t.Errorf("expenses: got %d, want 1 (bad rows discarded)", len(snap.Expenses))
		}
		for _, e := range snap.Expenses {
			if e.ID == 90 || e.ID == 91 {
				t.Errorf("undecodable expense %d survived load", e.ID)
			}
		}
		// Discarded rows do not feed the id counter.
		if snap.NextExpenseID != 3 {
			t.Errorf("NextExpenseID: got %d, want 3", snap.NextExpenseID)
		}

		if _, err := store.db.Exec("DELETE FROM expenses WHERE id IN (90, 91)"); err != nil {
			t.Fatalf("failed to clean up bad rows: %v", err)
		}
	})

	t.Run("save replaces prior content", func(t *testing.T) {
		if err := store.Save(ctx, actors[:1], nil); err != nil {
			t.Fatalf("Save failed: %v", err)
		}

		snap, err := store.Load(ctx)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if len(snap.Actors) != 1 {
			t.Errorf("actors: got %d, want 1 after rewrite", len(snap.Actors))
		}
		if len(snap.Expenses) != 0 {
			t.Errorf("expenses: got %d, want 0 after rewrite", len(snap.Expenses))
		}
	})
}
