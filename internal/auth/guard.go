package auth

import "context"

// Guard is the authorization check every service operation runs
// before anything else. It resolves the caller's session and rejects
// unauthenticated calls uniformly, so unauthenticated callers learn
// nothing about field validation.
type Guard struct {
	sessions SessionManager
}

// NewGuard returns a Guard over the given session manager.
func NewGuard(sessions SessionManager) *Guard {
	return &Guard{sessions: sessions}
}

// Require resolves the session token to an identity, returning
// ErrNoIdentity when no identity resolves.
func (g *Guard) Require(ctx context.Context, token string) (*Identity, error) {
	return g.sessions.Resolve(ctx, token)
}
