// Package models defines the core domain records for Splitkeeper.
//
// # Models
//
//   - Actor: a registered participant, identified by a unique id and email
//   - Expense: one recorded bill with a payer, a split method, and the
//     per-participant shares derived from it
//   - ExpenseShare: the amount one actor owes for one expense
//
// Records are immutable after construction: actors and expenses are created
// once and never edited or deleted. The package also owns the canonical
// line-record encoding used by the text snapshot store, so that the durable
// format and the model can never drift apart.
//
// # Design Principles
//
//  1. No behavior beyond field access and encoding/decoding
//  2. Integer ids assigned by the store, monotonically increasing from 1
//  3. Relationships by id, never by pointer
package models
