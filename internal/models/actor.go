package models

// Actor represents a registered participant.
type Actor struct {
	// ID is assigned by the store, monotonically increasing from 1,
	// never reused.
	ID int64

	// Name is the display name of the actor.
	Name string

	// Email is unique across all actors and used for authentication.
	Email string

	// Phone is the actor's contact number. Shape validation is the
	// caller's concern.
	Phone string

	// Credential is the opaque stored credential (a bcrypt hash).
	// It is round-tripped through the record encoding but never displayed.
	Credential string
}
