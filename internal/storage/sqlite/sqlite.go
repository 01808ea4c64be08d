// Package sqlite provides a SQLite-backed implementation of the
// storage.Store interface. It honors the same full-snapshot contract as the
// text store: Save replaces all rows inside one transaction.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/splitkeeper/splitkeeper/internal/metrics"
	"github.com/splitkeeper/splitkeeper/internal/models"
	"github.com/splitkeeper/splitkeeper/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Load reads the full model, recovering the id counters from the highest
// stored ids.
func (s *SQLiteStore) Load(ctx context.Context) (*storage.Snapshot, error) {
	snap := &storage.Snapshot{NextActorID: 1, NextExpenseID: 1}

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, email, phone, credential FROM actors ORDER BY id",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load actors: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		actor := &models.Actor{}
		if err := rows.Scan(&actor.ID, &actor.Name, &actor.Email, &actor.Phone, &actor.Credential); err != nil {
			return nil, fmt.Errorf("failed to scan actor: %w", err)
		}
		snap.Actors = append(snap.Actors, actor)
		if actor.ID >= snap.NextActorID {
			snap.NextActorID = actor.ID + 1
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate actors: %w", err)
	}

	expenseRows, err := s.db.QueryContext(ctx,
		"SELECT id, description, total_amount, method, payer_id, created_at FROM expenses ORDER BY id",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load expenses: %w", err)
	}
	defer expenseRows.Close()

	for expenseRows.Next() {
		var (
			expense   models.Expense
			methodTag string
			createdAt string
		)
		if err := expenseRows.Scan(&expense.ID, &expense.Description, &expense.TotalAmount,
			&methodTag, &expense.PayerID, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		// Undecodable rows are discarded like the textfile backend's
		// malformed lines; Load only fails when the database itself is
		// unreadable.
		if expense.Method, err = models.ParseSplitMethod(methodTag); err != nil {
			discard(expense.ID, err)
			continue
		}
		if expense.CreatedAt, err = time.Parse(models.TimeLayout, createdAt); err != nil {
			discard(expense.ID, fmt.Errorf("%w: timestamp %q", models.ErrMalformedRecord, createdAt))
			continue
		}

		snap.Expenses = append(snap.Expenses, &expense)
		if expense.ID >= snap.NextExpenseID {
			snap.NextExpenseID = expense.ID + 1
		}
	}
	if err := expenseRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	for _, expense := range snap.Expenses {
		shareRows, err := s.db.QueryContext(ctx,
			"SELECT actor_id, amount FROM expense_shares WHERE expense_id = ? ORDER BY position",
			expense.ID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to load shares: %w", err)
		}

		for shareRows.Next() {
			var share models.ExpenseShare
			if err := shareRows.Scan(&share.ActorID, &share.Amount); err != nil {
				shareRows.Close()
				return nil, fmt.Errorf("failed to scan share: %w", err)
			}
			expense.Shares = append(expense.Shares, share)
		}
		if err := shareRows.Err(); err != nil {
			shareRows.Close()
			return nil, fmt.Errorf("failed to iterate shares: %w", err)
		}
		shareRows.Close()
	}

	return snap, nil
}

func discard(expenseID int64, err error) {
	metrics.DiscardedRecords.Inc()
	slog.Warn("Discarding undecodable record", "expense_id", expenseID, "error", err)
}

// Save replaces the entire database content with the given model in a
// single transaction.
func (s *SQLiteStore) Save(ctx context.Context, actors []*models.Actor, expenses []*models.Expense) error {
	if err := s.save(ctx, actors, expenses); err != nil {
		metrics.SnapshotSaveFailures.Inc()
		return fmt.Errorf("%w: %v", storage.ErrWriteFailure, err)
	}
	metrics.SnapshotSaves.Inc()
	return nil
}

func (s *SQLiteStore) save(ctx context.Context, actors []*models.Actor, expenses []*models.Expense) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"expense_shares", "expenses", "actors"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	for _, actor := range actors {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO actors (id, name, email, phone, credential) VALUES (?, ?, ?, ?, ?)",
			actor.ID, actor.Name, actor.Email, actor.Phone, actor.Credential,
		)
		if err != nil {
			return fmt.Errorf("failed to insert actor: %w", err)
		}
	}

	for _, expense := range expenses {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO expenses (id, description, total_amount, method, payer_id, created_at) VALUES (?, ?, ?, ?, ?, ?)",
			expense.ID, expense.Description, expense.TotalAmount,
			expense.Method.String(), expense.PayerID, expense.CreatedAt.Format(models.TimeLayout),
		)
		if err != nil {
			return fmt.Errorf("failed to insert expense: %w", err)
		}

		for i, share := range expense.Shares {
			_, err := tx.ExecContext(ctx,
				"INSERT INTO expense_shares (expense_id, position, actor_id, amount) VALUES (?, ?, ?, ?)",
				expense.ID, i, share.ActorID, share.Amount,
			)
			if err != nil {
				return fmt.Errorf("failed to insert share: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
