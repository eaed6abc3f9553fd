package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/todoapp/internal/model"
	"github.com/nhle/todoapp/internal/store"
	"github.com/nhle/todoapp/tests/testutil"
)

func TestSessionLifecycle(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	user := testutil.CreateUser(t, s, "sess@example.com", nil)

	now := time.Now().UTC()
	session := model.Session{
		Token:     "tok-1",
		UserID:    user.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(time.Hour),
	}
	require.NoError(t, s.CreateSession(ctx, session))

	got, err := s.GetSession(ctx, "tok-1")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.UserID)

	require.NoError(t, s.DeleteSession(ctx, "tok-1"))

	_, err = s.GetSession(ctx, "tok-1")
	assert.ErrorIs(t, err, store.ErrNotFound)

	// Deleting an already-gone token stays silent.
	assert.NoError(t, s.DeleteSession(ctx, "tok-1"))
}

func TestDeleteExpiredSessions(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	user := testutil.CreateUser(t, s, "exp@example.com", nil)

	now := time.Now().UTC()
	require.NoError(t, s.CreateSession(ctx, model.Session{
		Token: "expired", UserID: user.ID,
		CreatedAt: now.Add(-2 * time.Hour), ExpiresAt: now.Add(-time.Hour),
	}))
	require.NoError(t, s.CreateSession(ctx, model.Session{
		Token: "live", UserID: user.ID,
		CreatedAt: now, ExpiresAt: now.Add(time.Hour),
	}))

	deleted, err := s.DeleteExpiredSessions(ctx, now)
	require.NoError(t, err)
	assert.EqualValues(t, 1, deleted)

	_, err = s.GetSession(ctx, "expired")
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = s.GetSession(ctx, "live")
	assert.NoError(t, err)
}
