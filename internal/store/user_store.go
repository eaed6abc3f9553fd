package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nhle/todoapp/internal/model"
)

// CreateUser inserts a new user. Generates a UUID if ID is empty.
// A duplicate email surfaces as *UniqueConstraintError.
func (s *SQLiteStore) CreateUser(ctx context.Context, user model.User) (*model.User, error) {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, email, name, password, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		user.ID, user.Email, user.Name, user.Password,
		user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if uerr := uniqueViolation(err); uerr != nil {
			return nil, uerr
		}
		return nil, fmt.Errorf("creating user: %w", err)
	}

	return &user, nil
}

// GetUserByID retrieves a single user by ID.
func (s *SQLiteStore) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	err := s.db.GetContext(ctx, &user, "SELECT * FROM users WHERE id = ?", id)
	if err != nil {
		return nil, notFoundErr(err, fmt.Sprintf("getting user %s", id))
	}
	return &user, nil
}

// GetUserByEmail retrieves a single user by canonical email. Callers
// are expected to canonicalize the email before the lookup.
func (s *SQLiteStore) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := s.db.GetContext(ctx, &user, "SELECT * FROM users WHERE email = ?", email)
	if err != nil {
		return nil, notFoundErr(err, fmt.Sprintf("getting user by email %s", email))
	}
	return &user, nil
}

// UpdateUser applies a partial update to a user row. Fields absent
// from the patch are excluded from the write set entirely, so an unset
// three-state name never touches the stored name.
func (s *SQLiteStore) UpdateUser(ctx context.Context, id string, patch UserPatch) error {
	sets := []string{"updated_at = ?"}
	args := []interface{}{time.Now().UTC()}

	if patch.Email != nil {
		sets = append(sets, "email = ?")
		args = append(args, *patch.Email)
	}
	if patch.Name.Set {
		sets = append(sets, "name = ?")
		args = append(args, patch.Name.Ptr())
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE users SET %s WHERE id = ?", strings.Join(sets, ", "))

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		if uerr := uniqueViolation(err); uerr != nil {
			return uerr
		}
		return fmt.Errorf("updating user %s: %w", id, err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// SetUserPassword replaces the stored password hash for a user.
func (s *SQLiteStore) SetUserPassword(ctx context.Context, id string, hash string) error {
	result, err := s.db.ExecContext(ctx,
		"UPDATE users SET password = ?, updated_at = ? WHERE id = ?",
		hash, time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("setting password for user %s: %w", id, err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
