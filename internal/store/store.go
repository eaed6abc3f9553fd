package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nhle/todoapp/internal/model"
)

// ErrNotFound is returned when a lookup by key matches no record.
var ErrNotFound = errors.New("record not found")

// UniqueConstraintError is returned when a write violates a unique
// constraint. Fields lists the column names involved; a composite
// constraint carries all of its columns.
type UniqueConstraintError struct {
	Fields []string
}

func (e *UniqueConstraintError) Error() string {
	return fmt.Sprintf("unique constraint violated on %s", strings.Join(e.Fields, ", "))
}

// Involves reports whether the violated constraint includes the given
// column.
func (e *UniqueConstraintError) Involves(field string) bool {
	for _, f := range e.Fields {
		if f == field {
			return true
		}
	}
	return false
}

// UserPatch is a partial update of a user record. A nil Email leaves
// the email untouched. Name is three-state: unset leaves the stored
// name alone, null clears it, a value replaces it.
type UserPatch struct {
	Email *string
	Name  model.Optional[string]
}

// Store defines the persistence interface for users, todos, and
// login sessions.
type Store interface {
	// === Users ===

	CreateUser(ctx context.Context, user model.User) (*model.User, error)
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	UpdateUser(ctx context.Context, id string, patch UserPatch) error
	SetUserPassword(ctx context.Context, id string, hash string) error

	// === Todos ===

	CreateTodo(ctx context.Context, todo model.Todo) (*model.Todo, error)
	UpdateTodo(ctx context.Context, todo model.Todo) (*model.Todo, error)
	DeleteTodo(ctx context.Context, id string) error
	GetTodoByID(ctx context.Context, id string) (*model.Todo, error)
	GetTodosByOwner(ctx context.Context, userID string) ([]model.Todo, error)

	// === Sessions ===

	CreateSession(ctx context.Context, session model.Session) error
	GetSession(ctx context.Context, token string) (*model.Session, error)
	DeleteSession(ctx context.Context, token string) error
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error)
}
