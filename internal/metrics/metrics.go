// Package metrics holds the process-wide prometheus counters.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ExpensesRecorded counts expenses accepted into the ledger.
	ExpensesRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "splitkeeper_expenses_recorded_total",
		Help: "Number of expenses accepted into the ledger.",
	})

	// SnapshotSaves counts completed full-snapshot writes.
	SnapshotSaves = promauto.NewCounter(prometheus.CounterOpts{
		Name: "splitkeeper_snapshot_saves_total",
		Help: "Number of completed snapshot writes.",
	})

	// SnapshotSaveFailures counts snapshot writes that did not complete.
	// A failure after an in-memory mutation means durable state may lag
	// the model.
	SnapshotSaveFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "splitkeeper_snapshot_save_failures_total",
		Help: "Number of snapshot writes that failed.",
	})

	// DiscardedRecords counts records dropped during load because they
	// failed to decode. Discards are logged but never surfaced to callers.
	DiscardedRecords = promauto.NewCounter(prometheus.CounterOpts{
		Name: "splitkeeper_discarded_records_total",
		Help: "Number of undecodable records discarded during load.",
	})
)
