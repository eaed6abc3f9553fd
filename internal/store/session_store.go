package store

import (
	"context"
	"fmt"
	"time"

	"github.com/nhle/todoapp/internal/model"
)

// CreateSession inserts a new login session row.
func (s *SQLiteStore) CreateSession(ctx context.Context, session model.Session) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sessions (token, user_id, created_at, expires_at)
		VALUES (?, ?, ?, ?)`,
		session.Token, session.UserID, session.CreatedAt, session.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("creating session: %w", err)
	}
	return nil
}

// GetSession retrieves a session by its opaque token.
func (s *SQLiteStore) GetSession(ctx context.Context, token string) (*model.Session, error) {
	var session model.Session
	err := s.db.GetContext(ctx, &session, "SELECT * FROM sessions WHERE token = ?", token)
	if err != nil {
		return nil, notFoundErr(err, "getting session")
	}
	return &session, nil
}

// DeleteSession removes a session by token. Deleting an unknown token
// is not an error; logout must be idempotent.
func (s *SQLiteStore) DeleteSession(ctx context.Context, token string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM sessions WHERE token = ?", token)
	if err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}

// DeleteExpiredSessions removes all sessions past their expiry and
// returns how many were deleted.
func (s *SQLiteStore) DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	result, err := s.db.ExecContext(ctx,
		"DELETE FROM sessions WHERE expires_at <= ?", now.UTC(),
	)
	if err != nil {
		return 0, fmt.Errorf("deleting expired sessions: %w", err)
	}
	rows, _ := result.RowsAffected()
	return rows, nil
}
