// Package service exposes the collaborator-facing ledger operations:
// registration, authentication, expense recording, balance queries, and
// the export projection. It owns the in-memory entity model for the
// process lifetime.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/splitkeeper/splitkeeper/internal/auth"
	"github.com/splitkeeper/splitkeeper/internal/calculator"
	"github.com/splitkeeper/splitkeeper/internal/metrics"
	"github.com/splitkeeper/splitkeeper/internal/models"
	"github.com/splitkeeper/splitkeeper/internal/storage"
)

var (
	ErrNotAuthenticated    = errors.New("authentication required")
	ErrParticipantNotFound = errors.New("participant does not exist")
)

// Ledger is the service façade over the entity model. All mutating and
// querying operations take an explicit session; nothing here keeps a
// current-user pointer. Mutations commit in memory first, then trigger a
// full snapshot save: a returned storage.ErrWriteFailure means the input
// was accepted but durable state may lag.
type Ledger struct {
	store    storage.Store
	sessions *auth.Manager
	logger   *slog.Logger

	actors        map[int64]*models.Actor
	actorIDByMail map[string]int64
	actorOrder    []int64
	expenses      []*models.Expense
	nextActorID   int64
	nextExpenseID int64
}

// New loads the full model from the store and builds the id indexes.
func New(ctx context.Context, store storage.Store, sessions *auth.Manager, logger *slog.Logger) (*Ledger, error) {
	snap, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}

	l := &Ledger{
		store:         store,
		sessions:      sessions,
		logger:        logger,
		actors:        make(map[int64]*models.Actor, len(snap.Actors)),
		actorIDByMail: make(map[string]int64, len(snap.Actors)),
		expenses:      snap.Expenses,
		nextActorID:   snap.NextActorID,
		nextExpenseID: snap.NextExpenseID,
	}
	for _, actor := range snap.Actors {
		l.actors[actor.ID] = actor
		l.actorIDByMail[actor.Email] = actor.ID
		l.actorOrder = append(l.actorOrder, actor.ID)
	}

	logger.Info("Ledger loaded",
		"actors", len(snap.Actors),
		"expenses", len(snap.Expenses),
		"next_actor_id", l.nextActorID,
		"next_expense_id", l.nextExpenseID,
	)
	return l, nil
}

// Register creates a new actor. Email uniqueness is enforced here; syntax
// validation of email and phone is the caller's responsibility. On a
// storage.ErrWriteFailure the actor is still returned: it exists in the
// model but may not be durable.
func (l *Ledger) Register(ctx context.Context, name, email, phone, credential string) (*models.Actor, error) {
	if _, exists := l.actorIDByMail[email]; exists {
		return nil, auth.ErrEmailExists
	}

	hash, err := auth.HashCredential(credential)
	if err != nil {
		return nil, err
	}

	actor := &models.Actor{
		ID:         l.nextActorID,
		Name:       name,
		Email:      email,
		Phone:      phone,
		Credential: hash,
	}
	l.nextActorID++
	l.actors[actor.ID] = actor
	l.actorIDByMail[actor.Email] = actor.ID
	l.actorOrder = append(l.actorOrder, actor.ID)

	l.logger.Info("Actor registered", "actor_id", actor.ID, "email", actor.Email)
	return actor, l.save(ctx)
}

// Authenticate verifies the email and credential and begins a session.
func (l *Ledger) Authenticate(ctx context.Context, email, credential string) (auth.Session, error) {
	id, ok := l.actorIDByMail[email]
	if !ok {
		return auth.Session{}, auth.ErrInvalidCredentials
	}
	actor := l.actors[id]
	if err := auth.CheckCredential(actor.Credential, credential); err != nil {
		l.logger.Warn("Authentication failed", "email", email)
		return auth.Session{}, err
	}

	session, err := l.sessions.Begin(actor.ID, actor.Email)
	if err != nil {
		return auth.Session{}, err
	}
	l.logger.Info("Actor authenticated", "actor_id", actor.ID, "session_id", session.ID)
	return session, nil
}

// SignOut ends the session. Subsequent calls with it fail verification.
func (l *Ledger) SignOut(session auth.Session) {
	l.sessions.End(session)
	l.logger.Info("Session ended", "actor_id", session.ActorID, "session_id", session.ID)
}

// RecordExpense validates, computes shares, and appends a new expense.
// The payer is implicitly added to the participants before share
// computation when absent. All validation happens before any mutation:
// a rejected split never leaves a partial expense behind.
func (l *Ledger) RecordExpense(ctx context.Context, session auth.Session, description string,
	totalAmount float64, method models.SplitMethod, participantIDs []int64, rawInputs []float64,
) (*models.Expense, error) {
	payerID, err := l.authorize(session)
	if err != nil {
		return nil, err
	}
	if totalAmount <= 0 {
		return nil, calculator.ErrInvalidAmount
	}

	participants := withPayer(participantIDs, payerID)
	for _, id := range participants {
		if _, ok := l.actors[id]; !ok {
			return nil, fmt.Errorf("%w: actor %d", ErrParticipantNotFound, id)
		}
	}

	shares, err := calculator.Split(method, totalAmount, participants, rawInputs)
	if err != nil {
		l.logger.Warn("Expense rejected",
			"payer_id", payerID,
			"method", method.String(),
			"error", err,
		)
		return nil, err
	}

	expense := &models.Expense{
		ID:          l.nextExpenseID,
		Description: description,
		TotalAmount: totalAmount,
		Method:      method,
		PayerID:     payerID,
		CreatedAt:   time.Now().Truncate(time.Second),
		Shares:      shares,
	}
	l.nextExpenseID++
	l.expenses = append(l.expenses, expense)
	metrics.ExpensesRecorded.Inc()

	l.logger.Info("Expense recorded",
		"expense_id", expense.ID,
		"payer_id", payerID,
		"method", method.String(),
		"total", totalAmount,
		"participants", len(shares),
	)
	return expense, l.save(ctx)
}

// Balances returns the raw net balance of the session actor against every
// counterparty. Settled entries (magnitude within 0.01) are retained;
// suppressing them is the display layer's concern.
func (l *Ledger) Balances(session auth.Session) (map[int64]float64, error) {
	actorID, err := l.authorize(session)
	if err != nil {
		return nil, err
	}
	return calculator.ComputeBalances(actorID, l.expenses), nil
}

// ExportRow is one flat (expense, participant) pair of the export
// projection. Formatting it (CSV or otherwise) is the caller's concern.
type ExportRow struct {
	ExpenseID       int64
	Description     string
	TotalAmount     float64
	PayerID         int64
	PayerName       string
	ParticipantID   int64
	ParticipantName string
	Share           float64
	CreatedAt       time.Time
}

// ExportLedger returns one row per (expense, participant) pair across every
// expense the session actor is involved in, in history order.
func (l *Ledger) ExportLedger(session auth.Session) ([]ExportRow, error) {
	actorID, err := l.authorize(session)
	if err != nil {
		return nil, err
	}

	var rows []ExportRow
	for _, expense := range l.expenses {
		if !expense.Involves(actorID) {
			continue
		}
		for _, share := range expense.Shares {
			rows = append(rows, ExportRow{
				ExpenseID:       expense.ID,
				Description:     expense.Description,
				TotalAmount:     expense.TotalAmount,
				PayerID:         expense.PayerID,
				PayerName:       l.actorName(expense.PayerID),
				ParticipantID:   share.ActorID,
				ParticipantName: l.actorName(share.ActorID),
				Share:           share.Amount,
				CreatedAt:       expense.CreatedAt,
			})
		}
	}
	return rows, nil
}

// OwnExpense pairs an expense with the session actor's share of it.
type OwnExpense struct {
	Expense *models.Expense
	Share   float64
}

// ExpensesFor lists every expense in which the session actor holds a share,
// in history order.
func (l *Ledger) ExpensesFor(session auth.Session) ([]OwnExpense, error) {
	actorID, err := l.authorize(session)
	if err != nil {
		return nil, err
	}

	var own []OwnExpense
	for _, expense := range l.expenses {
		if share, ok := expense.ShareFor(actorID); ok {
			own = append(own, OwnExpense{Expense: expense, Share: share})
		}
	}
	return own, nil
}

// AllExpenses lists every recorded expense in history order, including
// those the session actor holds no share in. Callers must not mutate the
// returned expenses.
func (l *Ledger) AllExpenses(session auth.Session) ([]*models.Expense, error) {
	if _, err := l.authorize(session); err != nil {
		return nil, err
	}

	out := make([]*models.Expense, len(l.expenses))
	copy(out, l.expenses)
	return out, nil
}

// ListActors returns the actor directory in registration order, with
// credentials stripped.
func (l *Ledger) ListActors() []models.Actor {
	out := make([]models.Actor, 0, len(l.actorOrder))
	for _, id := range l.actorOrder {
		actor := *l.actors[id]
		actor.Credential = ""
		out = append(out, actor)
	}
	return out
}

// ActorName resolves an actor id for display, "Unknown" when absent.
func (l *Ledger) ActorName(id int64) string {
	return l.actorName(id)
}

func (l *Ledger) actorName(id int64) string {
	if actor, ok := l.actors[id]; ok {
		return actor.Name
	}
	return "Unknown"
}

func (l *Ledger) authorize(session auth.Session) (int64, error) {
	actorID, err := l.sessions.Verify(session)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrNotAuthenticated, err)
	}
	return actorID, nil
}

// save writes the full snapshot after a mutation. The in-memory commit has
// already happened; a failure here is a durability gap, not a rejection.
func (l *Ledger) save(ctx context.Context) error {
	actors := make([]*models.Actor, 0, len(l.actorOrder))
	for _, id := range l.actorOrder {
		actors = append(actors, l.actors[id])
	}
	if err := l.store.Save(ctx, actors, l.expenses); err != nil {
		l.logger.Error("Snapshot save failed", "error", err)
		return err
	}
	return nil
}

// SortedCounterparties returns the counterparty ids of a balance mapping in
// ascending order, for stable display.
func SortedCounterparties(balances map[int64]float64) []int64 {
	ids := make([]int64, 0, len(balances))
	for id := range balances {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// withPayer returns participantIDs with payerID appended when absent.
// The input slice is never modified.
func withPayer(participantIDs []int64, payerID int64) []int64 {
	for _, id := range participantIDs {
		if id == payerID {
			return append([]int64(nil), participantIDs...)
		}
	}
	out := make([]int64, 0, len(participantIDs)+1)
	out = append(out, participantIDs...)
	return append(out, payerID)
}
