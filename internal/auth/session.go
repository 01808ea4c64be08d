package auth

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidSession = errors.New("invalid or expired session")
	ErrSessionEnded   = errors.New("session has been signed out")
)

// Session is the explicit value returned by a successful authentication and
// threaded as an argument into every ledger-mutating or querying call.
// There is no process-wide current-session state: any number of sessions
// can coexist in one process.
type Session struct {
	// ID uniquely identifies this session for revocation.
	ID string

	// ActorID is the authenticated actor.
	ActorID int64

	// Email is the authenticated actor's email, for logging.
	Email string

	// Token is the HS256-signed proof carried by the session.
	Token string

	// IssuedAt is when the session began.
	IssuedAt time.Time
}

// sessionClaims are the custom JWT claims carried by a session token.
type sessionClaims struct {
	SessionID string `json:"sid"`
	ActorID   int64  `json:"actor_id"`
	Email     string `json:"email"`
	jwt.RegisteredClaims
}

// Manager issues, verifies, and ends sessions. Tokens are signed with the
// manager's secret; a signed-out session fails verification even while its
// token is otherwise still valid.
type Manager struct {
	secretKey     []byte
	tokenDuration time.Duration

	mu     sync.Mutex
	active map[string]struct{}
}

// NewManager creates a session manager. secretKey should be a strong random
// string; tokenDuration is how long sessions remain valid.
func NewManager(secretKey string, tokenDuration time.Duration) *Manager {
	return &Manager{
		secretKey:     []byte(secretKey),
		tokenDuration: tokenDuration,
		active:        make(map[string]struct{}),
	}
}

// Begin starts a session for the given actor.
func (m *Manager) Begin(actorID int64, email string) (Session, error) {
	now := time.Now()
	id := uuid.New().String()

	claims := &sessionClaims{
		SessionID: id,
		ActorID:   actorID,
		Email:     email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.tokenDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secretKey)
	if err != nil {
		return Session{}, fmt.Errorf("failed to sign session token: %w", err)
	}

	m.mu.Lock()
	m.active[id] = struct{}{}
	m.mu.Unlock()

	return Session{
		ID:       id,
		ActorID:  actorID,
		Email:    email,
		Token:    token,
		IssuedAt: now,
	}, nil
}

// Verify checks the session token and that the session has not been ended,
// returning the authenticated actor id.
func (m *Manager) Verify(s Session) (int64, error) {
	token, err := jwt.ParseWithClaims(s.Token, &sessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secretKey, nil
	})
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}

	claims, ok := token.Claims.(*sessionClaims)
	if !ok || !token.Valid {
		return 0, ErrInvalidSession
	}

	m.mu.Lock()
	_, alive := m.active[claims.SessionID]
	m.mu.Unlock()
	if !alive {
		return 0, ErrSessionEnded
	}

	return claims.ActorID, nil
}

// End signs the session out. Ending an already-ended session is a no-op.
func (m *Manager) End(s Session) {
	m.mu.Lock()
	delete(m.active, s.ID)
	m.mu.Unlock()
}
