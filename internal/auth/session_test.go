package auth

import (
	"errors"
	"testing"
	"time"
)

func TestSessionLifecycle(t *testing.T) {
	m := NewManager("test-secret-key", time.Hour)

	session, err := m.Begin(42, "alice@example.com")
	if err != nil {
		t.Fatalf("Begin failed: %v", err)
	}
	if session.ID == "" || session.Token == "" {
		t.Fatal("expected session id and token to be set")
	}

	actorID, err := m.Verify(session)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if actorID != 42 {
		t.Errorf("Verify returned actor %d, want 42", actorID)
	}

	m.End(session)
	if _, err := m.Verify(session); !errors.Is(err, ErrSessionEnded) {
		t.Errorf("expected ErrSessionEnded after End, got %v", err)
	}

	// Ending twice is harmless.
	m.End(session)
}

func TestVerify_RejectsForeignToken(t *testing.T) {
	issuer := NewManager("secret-one", time.Hour)
	verifier := NewManager("secret-two", time.Hour)

	session, err := issuer.Begin(1, "alice@example.com")
	if err != nil {
		t.Fatalf("Begin failed: %v", err)
	}

	if _, err := verifier.Verify(session); !errors.Is(err, ErrInvalidSession) {
		t.Errorf("expected ErrInvalidSession for foreign token, got %v", err)
	}
}

func TestVerify_RejectsExpiredSession(t *testing.T) {
	m := NewManager("test-secret-key", -time.Minute)

	session, err := m.Begin(1, "alice@example.com")
	if err != nil {
		t.Fatalf("Begin failed: %v", err)
	}

	if _, err := m.Verify(session); !errors.Is(err, ErrInvalidSession) {
		t.Errorf("expected ErrInvalidSession for expired token, got %v", err)
	}
}

func TestCredentials(t *testing.T) {
	hash, err := HashCredential("correct-horse")
	if err != nil {
		t.Fatalf("HashCredential failed: %v", err)
	}
	if hash == "correct-horse" {
		t.Fatal("credential stored unhashed")
	}

	if err := CheckCredential(hash, "correct-horse"); err != nil {
		t.Errorf("CheckCredential rejected the right credential: %v", err)
	}
	if err := CheckCredential(hash, "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}

	if _, err := HashCredential("short"); !errors.Is(err, ErrWeakCredential) {
		t.Errorf("expected ErrWeakCredential, got %v", err)
	}
}
