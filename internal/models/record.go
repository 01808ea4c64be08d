package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrMalformedRecord is returned when a line record cannot be decoded.
// Loaders discard such records instead of aborting the load.
var ErrMalformedRecord = errors.New("malformed record")

// TimeLayout is the fixed timestamp format used in expense records.
const TimeLayout = "2006-01-02 15:04:05"

// Record encodes the actor as a single line:
//
//	id|name|email|phone|credential
//
// Field values containing '|' are not escaped; such a value corrupts the
// record. This is an accepted limitation of the format.
func (a *Actor) Record() string {
	return fmt.Sprintf("%d|%s|%s|%s|%s", a.ID, a.Name, a.Email, a.Phone, a.Credential)
}

// ParseActorRecord decodes a single actor line. It fails with
// ErrMalformedRecord on fewer than five fields or a non-positive id;
// trailing extra fields are ignored.
func ParseActorRecord(line string) (*Actor, error) {
	parts := strings.Split(line, "|")
	if len(parts) < 5 {
		return nil, fmt.Errorf("%w: actor record has %d fields, want 5", ErrMalformedRecord, len(parts))
	}

	id, err := parseID(parts[0])
	if err != nil {
		return nil, fmt.Errorf("%w: actor id %q", ErrMalformedRecord, parts[0])
	}

	return &Actor{
		ID:         id,
		Name:       parts[1],
		Email:      parts[2],
		Phone:      parts[3],
		Credential: parts[4],
	}, nil
}

// Record encodes the expense as a single line:
//
//	id|description|totalAmount|method|payerId|createdAt|shares
//
// Amounts are formatted with exactly two decimal digits and shares as
// actorId:amount pairs joined by ','. An expense with no shares encodes an
// empty final field.
func (e *Expense) Record() string {
	shares := make([]string, len(e.Shares))
	for i, s := range e.Shares {
		shares[i] = fmt.Sprintf("%d:%.2f", s.ActorID, s.Amount)
	}

	return fmt.Sprintf("%d|%s|%.2f|%s|%d|%s|%s",
		e.ID,
		e.Description,
		e.TotalAmount,
		e.Method,
		e.PayerID,
		e.CreatedAt.Format(TimeLayout),
		strings.Join(shares, ","),
	)
}

// ParseExpenseRecord decodes a single expense line. Any defect makes the
// whole record malformed: fewer than seven fields, a non-positive id, a
// non-numeric amount, an unknown method tag, a bad timestamp, or an
// undecodable share pair.
func ParseExpenseRecord(line string) (*Expense, error) {
	parts := strings.Split(line, "|")
	if len(parts) < 7 {
		return nil, fmt.Errorf("%w: expense record has %d fields, want 7", ErrMalformedRecord, len(parts))
	}

	id, err := parseID(parts[0])
	if err != nil {
		return nil, fmt.Errorf("%w: expense id %q", ErrMalformedRecord, parts[0])
	}

	total, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return nil, fmt.Errorf("%w: expense total %q", ErrMalformedRecord, parts[2])
	}

	method, err := ParseSplitMethod(parts[3])
	if err != nil {
		return nil, err
	}

	payerID, err := parseID(parts[4])
	if err != nil {
		return nil, fmt.Errorf("%w: payer id %q", ErrMalformedRecord, parts[4])
	}

	createdAt, err := time.Parse(TimeLayout, parts[5])
	if err != nil {
		return nil, fmt.Errorf("%w: timestamp %q", ErrMalformedRecord, parts[5])
	}

	shares, err := parseShares(parts[6])
	if err != nil {
		return nil, err
	}

	return &Expense{
		ID:          id,
		Description: parts[1],
		TotalAmount: total,
		Method:      method,
		PayerID:     payerID,
		CreatedAt:   createdAt,
		Shares:      shares,
	}, nil
}

func parseShares(field string) ([]ExpenseShare, error) {
	if field == "" {
		return nil, nil
	}

	pairs := strings.Split(field, ",")
	shares := make([]ExpenseShare, 0, len(pairs))
	for _, pair := range pairs {
		actorPart, amountPart, ok := strings.Cut(pair, ":")
		if !ok {
			return nil, fmt.Errorf("%w: share pair %q", ErrMalformedRecord, pair)
		}
		actorID, err := parseID(actorPart)
		if err != nil {
			return nil, fmt.Errorf("%w: share actor id %q", ErrMalformedRecord, actorPart)
		}
		amount, err := strconv.ParseFloat(amountPart, 64)
		if err != nil || amount < 0 {
			return nil, fmt.Errorf("%w: share amount %q", ErrMalformedRecord, amountPart)
		}
		shares = append(shares, ExpenseShare{ActorID: actorID, Amount: amount})
	}
	return shares, nil
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, fmt.Errorf("non-positive id %d", id)
	}
	return id, nil
}
