package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/nhle/todoapp/internal/model"
	"github.com/nhle/todoapp/internal/store"
)

// NewTestStore creates a throwaway SQLiteStore with all migrations
// applied, backed by a file in the test's temp dir so every pooled
// connection sees the same database. It automatically closes the
// store when the test completes.
func NewTestStore(t *testing.T) *store.SQLiteStore {
	t.Helper()

	s, err := store.NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("creating test store: %v", err)
	}

	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("closing test store: %v", err)
		}
	})

	return s
}

// CreateUser inserts a user with the given canonical email and
// optional password hash, failing the test on error.
func CreateUser(t *testing.T, s store.Store, email string, hash *string) *model.User {
	t.Helper()

	user, err := s.CreateUser(context.Background(), model.User{
		Email:    email,
		Password: hash,
	})
	if err != nil {
		t.Fatalf("creating test user %s: %v", email, err)
	}
	return user
}

// CreateTodo inserts a todo owned by the given user, failing the test
// on error.
func CreateTodo(t *testing.T, s store.Store, userID, title string) *model.Todo {
	t.Helper()

	todo, err := s.CreateTodo(context.Background(), model.Todo{
		UserID: userID,
		Title:  title,
	})
	if err != nil {
		t.Fatalf("creating test todo %q: %v", title, err)
	}
	return todo
}
