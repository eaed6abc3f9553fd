package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/todoapp/internal/model"
	"github.com/nhle/todoapp/internal/store"
	"github.com/nhle/todoapp/tests/testutil"
)

func strPtr(s string) *string { return &s }

func TestCreateAndGetUser(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	user, err := s.CreateUser(ctx, model.User{
		Email:    "a@example.com",
		Password: strPtr("hash"),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.False(t, user.CreatedAt.IsZero())

	byID, err := s.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", byID.Email)
	require.NotNil(t, byID.Password)
	assert.Equal(t, "hash", *byID.Password)
	assert.Nil(t, byID.Name)

	byEmail, err := s.GetUserByEmail(ctx, "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	_, err = s.GetUserByEmail(ctx, "missing@example.com")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	_, err := s.CreateUser(ctx, model.User{Email: "dup@example.com"})
	require.NoError(t, err)

	_, err = s.CreateUser(ctx, model.User{Email: "dup@example.com"})
	require.Error(t, err)

	var uerr *store.UniqueConstraintError
	require.True(t, errors.As(err, &uerr), "expected UniqueConstraintError, got %v", err)
	assert.Equal(t, []string{"email"}, uerr.Fields)
	assert.True(t, uerr.Involves("email"))
	assert.False(t, uerr.Involves("name"))
}

func TestUpdateUserPatch(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	user := testutil.CreateUser(t, s, "patch@example.com", nil)

	// Set a name.
	err := s.UpdateUser(ctx, user.ID, store.UserPatch{Name: model.Some("Ada")})
	require.NoError(t, err)
	got, err := s.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Name)
	assert.Equal(t, "Ada", *got.Name)

	// An unset name leaves the stored name untouched.
	err = s.UpdateUser(ctx, user.ID, store.UserPatch{Email: strPtr("new@example.com")})
	require.NoError(t, err)
	got, err = s.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", got.Email)
	require.NotNil(t, got.Name)
	assert.Equal(t, "Ada", *got.Name)

	// An explicit null clears it.
	err = s.UpdateUser(ctx, user.ID, store.UserPatch{Name: model.Null[string]()})
	require.NoError(t, err)
	got, err = s.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Name)
}

func TestUpdateUserUniqueEmailConflict(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	testutil.CreateUser(t, s, "taken@example.com", nil)
	user := testutil.CreateUser(t, s, "mine@example.com", nil)

	err := s.UpdateUser(ctx, user.ID, store.UserPatch{Email: strPtr("taken@example.com")})
	var uerr *store.UniqueConstraintError
	require.True(t, errors.As(err, &uerr), "expected UniqueConstraintError, got %v", err)
	assert.True(t, uerr.Involves("email"))
}

func TestUpdateUserNotFound(t *testing.T) {
	s := testutil.NewTestStore(t)

	err := s.UpdateUser(context.Background(), "no-such-id", store.UserPatch{Email: strPtr("x@example.com")})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSetUserPassword(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	user := testutil.CreateUser(t, s, "pw@example.com", nil)

	require.NoError(t, s.SetUserPassword(ctx, user.ID, "newhash"))

	got, err := s.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Password)
	assert.Equal(t, "newhash", *got.Password)

	assert.ErrorIs(t, s.SetUserPassword(ctx, "no-such-id", "h"), store.ErrNotFound)
}
