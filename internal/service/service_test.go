package service_test

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/nhle/todoapp/internal/auth"
	"github.com/nhle/todoapp/internal/model"
	"github.com/nhle/todoapp/internal/service"
	"github.com/nhle/todoapp/internal/store"
	"github.com/nhle/todoapp/internal/view"
	"github.com/nhle/todoapp/tests/testutil"
)

// env wires a full service stack over an in-memory store. Password
// hashing runs at bcrypt.MinCost to keep the tests fast.
type env struct {
	store    *store.SQLiteStore
	sessions *auth.StoreSessions
	guard    *auth.Guard
	tracker  *view.Tracker
	creds    *service.Credentials
	todos    *service.Todos
	profile  *service.Profile
}

func newEnv(t *testing.T) *env {
	t.Helper()

	s := testutil.NewTestStore(t)
	logger := log.New(io.Discard)
	sessions := auth.NewStoreSessions(s, time.Hour)
	guard := auth.NewGuard(sessions)
	tracker := view.NewTracker()

	creds := service.NewCredentials(s, sessions, logger, bcrypt.MinCost)
	return &env{
		store:    s,
		sessions: sessions,
		guard:    guard,
		tracker:  tracker,
		creds:    creds,
		todos:    service.NewTodos(s, guard, tracker, logger),
		profile:  service.NewProfile(s, guard, creds, logger),
	}
}

// signIn creates a user with the given email and password and returns
// the user id and a live session token.
func (e *env) signIn(t *testing.T, email, password string) (string, string) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hashing test password: %v", err)
	}
	hashStr := string(hash)

	user := testutil.CreateUser(t, e.store, email, &hashStr)

	token, err := e.sessions.Create(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("creating test session: %v", err)
	}
	return user.ID, token
}

// kindOf fails the test unless err is a service.Error, returning its kind.
func kindOf(t *testing.T, err error) service.Kind {
	t.Helper()

	serr, ok := service.AsError(err)
	if !ok {
		t.Fatalf("expected service.Error, got %v", err)
	}
	return serr.Kind
}

func modelUser(email string) model.User {
	return model.User{Email: email}
}

// stubStore wraps a real store but lets a test force write failures,
// simulating races that slip past optimistic pre-checks.
type stubStore struct {
	store.Store
	createUserErr error
	updateUserErr error
}

func (s *stubStore) CreateUser(ctx context.Context, user model.User) (*model.User, error) {
	if s.createUserErr != nil {
		return nil, s.createUserErr
	}
	return s.Store.CreateUser(ctx, user)
}

func (s *stubStore) UpdateUser(ctx context.Context, id string, patch store.UserPatch) error {
	if s.updateUserErr != nil {
		return s.updateUserErr
	}
	return s.Store.UpdateUser(ctx, id, patch)
}

func newCredsWithStore(t *testing.T, e *env, s store.Store) *service.Credentials {
	t.Helper()
	return service.NewCredentials(s, e.sessions, log.New(io.Discard), bcrypt.MinCost)
}

func newProfileWithStore(t *testing.T, e *env, s store.Store) *service.Profile {
	t.Helper()
	creds := service.NewCredentials(s, e.sessions, log.New(io.Discard), bcrypt.MinCost)
	return service.NewProfile(s, e.guard, creds, log.New(io.Discard))
}
