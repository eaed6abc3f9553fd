// Package auth resolves opaque session tokens to user identities and
// manages session lifecycle. All state lives in the store; nothing is
// kept in ambient globals.
package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/nhle/todoapp/internal/model"
	"github.com/nhle/todoapp/internal/store"
)

// ErrNoIdentity is returned when a session token resolves to no
// logged-in user, whether the token is empty, unknown, or expired.
var ErrNoIdentity = errors.New("no identity")

// Identity is the resolved caller of a request.
type Identity struct {
	UserID string
}

// SessionManager creates, resolves, and destroys login sessions.
type SessionManager interface {
	Resolve(ctx context.Context, token string) (*Identity, error)
	Create(ctx context.Context, userID string) (string, error)
	Destroy(ctx context.Context, token string) error
}

// StoreSessions is a SessionManager backed by the persistence store.
type StoreSessions struct {
	store store.Store
	ttl   time.Duration
}

// NewStoreSessions returns a store-backed session manager whose
// sessions expire after ttl.
func NewStoreSessions(s store.Store, ttl time.Duration) *StoreSessions {
	return &StoreSessions{store: s, ttl: ttl}
}

// Resolve maps a session token to an identity. Empty, unknown, and
// expired tokens all yield ErrNoIdentity; an expired session row is
// removed on the way out.
func (m *StoreSessions) Resolve(ctx context.Context, token string) (*Identity, error) {
	if token == "" {
		return nil, ErrNoIdentity
	}

	session, err := m.store.GetSession(ctx, token)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNoIdentity
		}
		return nil, err
	}

	if session.Expired(time.Now().UTC()) {
		_ = m.store.DeleteSession(ctx, token)
		return nil, ErrNoIdentity
	}

	return &Identity{UserID: session.UserID}, nil
}

// Create opens a new session for the given user and returns its token.
func (m *StoreSessions) Create(ctx context.Context, userID string) (string, error) {
	now := time.Now().UTC()
	session := model.Session{
		Token:     uuid.New().String(),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}
	if err := m.store.CreateSession(ctx, session); err != nil {
		return "", err
	}
	return session.Token, nil
}

// Destroy invalidates a session token.
func (m *StoreSessions) Destroy(ctx context.Context, token string) error {
	return m.store.DeleteSession(ctx, token)
}
