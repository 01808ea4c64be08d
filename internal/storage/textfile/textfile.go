// Package textfile provides a Store backed by two line-record text files,
// one per record stream: actors.txt and expenses.txt.
package textfile

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/splitkeeper/splitkeeper/internal/metrics"
	"github.com/splitkeeper/splitkeeper/internal/models"
	"github.com/splitkeeper/splitkeeper/internal/storage"
)

const (
	actorsFile   = "actors.txt"
	expensesFile = "expenses.txt"
)

// Ensure Store implements storage.Store
var _ storage.Store = (*Store)(nil)

// Store implements storage.Store over flat text files. Every Save is a full
// rewrite of both streams, written to a temp file and renamed into place so
// a crash mid-write cannot truncate the previous snapshot.
type Store struct {
	dir string
}

// New creates a text snapshot store rooted at dir, creating the directory
// if needed.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Close is a no-op; the store holds no open handles between calls.
func (s *Store) Close() error {
	return nil
}

// Load reads both record streams. Blank lines are skipped and undecodable
// records are discarded with a warning; a missing file is an empty stream.
func (s *Store) Load(ctx context.Context) (*storage.Snapshot, error) {
	snap := &storage.Snapshot{NextActorID: 1, NextExpenseID: 1}

	err := s.readLines(actorsFile, func(lineNo int, line string) {
		actor, err := models.ParseActorRecord(line)
		if err != nil {
			s.discard(actorsFile, lineNo, err)
			return
		}
		snap.Actors = append(snap.Actors, actor)
		if actor.ID >= snap.NextActorID {
			snap.NextActorID = actor.ID + 1
		}
	})
	if err != nil {
		return nil, err
	}

	err = s.readLines(expensesFile, func(lineNo int, line string) {
		expense, err := models.ParseExpenseRecord(line)
		if err != nil {
			s.discard(expensesFile, lineNo, err)
			return
		}
		snap.Expenses = append(snap.Expenses, expense)
		if expense.ID >= snap.NextExpenseID {
			snap.NextExpenseID = expense.ID + 1
		}
	})
	if err != nil {
		return nil, err
	}

	return snap, nil
}

// Save rewrites both streams in full.
func (s *Store) Save(ctx context.Context, actors []*models.Actor, expenses []*models.Expense) error {
	actorLines := make([]string, len(actors))
	for i, a := range actors {
		actorLines[i] = a.Record()
	}
	if err := s.writeLines(actorsFile, actorLines); err != nil {
		metrics.SnapshotSaveFailures.Inc()
		return err
	}

	expenseLines := make([]string, len(expenses))
	for i, e := range expenses {
		expenseLines[i] = e.Record()
	}
	if err := s.writeLines(expensesFile, expenseLines); err != nil {
		metrics.SnapshotSaveFailures.Inc()
		return err
	}

	metrics.SnapshotSaves.Inc()
	return nil
}

func (s *Store) readLines(name string, handle func(lineNo int, line string)) error {
	f, err := os.Open(filepath.Join(s.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to open %s: %w", name, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		handle(lineNo, line)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	return nil
}

// writeLines writes the stream to a temp file in the same directory and
// renames it over the target, so readers only ever see a complete snapshot.
func (s *Store) writeLines(name string, lines []string) error {
	tmp, err := os.CreateTemp(s.dir, name+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: %v", storage.ErrWriteFailure, err)
	}
	defer os.Remove(tmp.Name())

	w := bufio.NewWriter(tmp)
	for _, line := range lines {
		if _, err := w.WriteString(line + "\n"); err != nil {
			tmp.Close()
			return fmt.Errorf("%w: %v", storage.ErrWriteFailure, err)
		}
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: %v", storage.ErrWriteFailure, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: %v", storage.ErrWriteFailure, err)
	}

	if err := os.Rename(tmp.Name(), filepath.Join(s.dir, name)); err != nil {
		return fmt.Errorf("%w: %v", storage.ErrWriteFailure, err)
	}
	return nil
}

func (s *Store) discard(file string, lineNo int, err error) {
	metrics.DiscardedRecords.Inc()
	slog.Warn("Discarding undecodable record", "file", file, "line", lineNo, "error", err)
}
