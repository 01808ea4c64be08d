// Package storage provides abstractions for persistent ledger storage.
package storage

import (
	"context"
	"errors"

	"github.com/splitkeeper/splitkeeper/internal/models"
)

// ErrWriteFailure marks a save that could not complete. It is distinct from
// every validation error: by the time it occurs the in-memory mutation has
// already committed, so the caller's input was accepted but durable state
// may lag the model.
var ErrWriteFailure = errors.New("snapshot write failed")

// Snapshot is the full ledger state as loaded from durable storage.
type Snapshot struct {
	Actors   []*models.Actor
	Expenses []*models.Expense

	// NextActorID and NextExpenseID are recovered as max(decoded ids)+1,
	// or 1 when no records decoded. Gaps in the id sequence are permitted.
	NextActorID   int64
	NextExpenseID int64
}

// Store defines the interface for ledger persistence. The ledger reads the
// whole model in once at startup and writes the whole model out after each
// mutation; a Store never owns partial state. This abstraction allows
// swapping backends (text snapshot, SQLite) without changing the service
// layer.
type Store interface {
	// Load reads the full model. Records that fail to decode are
	// discarded, not surfaced: Load only errors when the backend itself
	// is unreadable.
	Load(ctx context.Context) (*Snapshot, error)

	// Save replaces the entire durable state with the given model.
	// Failures wrap ErrWriteFailure.
	Save(ctx context.Context, actors []*models.Actor, expenses []*models.Expense) error

	// Close releases any resources held by the store.
	Close() error
}
