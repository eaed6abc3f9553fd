package service

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"

	"github.com/nhle/todoapp/internal/auth"
	"github.com/nhle/todoapp/internal/store"
	"github.com/nhle/todoapp/internal/validate"
)

const msgEmailInUse = "this email address is already in use"

// Profile is the profile mutation service: display name, email, and
// password changes for the logged-in user.
type Profile struct {
	store store.Store
	guard *auth.Guard
	creds *Credentials
	log   *log.Logger
}

// NewProfile returns the profile service.
func NewProfile(s store.Store, guard *auth.Guard, creds *Credentials, logger *log.Logger) *Profile {
	return &Profile{store: s, guard: guard, creds: creds, log: logger}
}

// UpdateProfile changes the caller's display name and email. The name
// is three-state: omitted leaves the stored name untouched, null or
// blank clears it. Email uniqueness is enforced twice — an optimistic
// pre-check here plus the write-time unique constraint — because
// another request can insert a conflicting email between the two.
// Unexpected (non-uniqueness) store errors propagate to the caller
// unwrapped.
func (s *Profile) UpdateProfile(ctx context.Context, token string, in validate.ProfileInput) error {
	ident, err := require(ctx, s.guard, token, s.log)
	if err != nil {
		return err
	}

	in, issues := validate.Profile(in)
	if len(issues) > 0 {
		return validationErr(issues.First())
	}
	in = validate.NormalizeProfile(in)

	// Pre-check: does any other user hold this canonical email?
	// Matching our own row is a no-op success, not a conflict.
	existing, err := s.store.GetUserByEmail(ctx, in.Email)
	if err == nil && existing.ID != ident.UserID {
		return conflictErr(msgEmailInUse)
	}
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return err
	}

	patch := store.UserPatch{
		Email: &in.Email,
		Name:  in.Name,
	}

	if err := s.store.UpdateUser(ctx, ident.UserID, patch); err != nil {
		var uerr *store.UniqueConstraintError
		if errors.As(err, &uerr) {
			if uerr.Involves("email") {
				return conflictErr(msgEmailInUse)
			}
			return conflictErr("a uniqueness conflict occurred")
		}
		return err
	}

	return nil
}

// ChangePassword verifies the caller's current password and replaces
// it with a new one. The current session stays valid.
func (s *Profile) ChangePassword(ctx context.Context, token string, in validate.ChangePasswordInput) error {
	ident, err := require(ctx, s.guard, token, s.log)
	if err != nil {
		return err
	}

	if issues := validate.ChangePassword(in); len(issues) > 0 {
		return validationErr(issues.First())
	}

	if err := s.creds.VerifyPassword(ctx, ident.UserID, in.CurrentPassword); err != nil {
		return err
	}

	return s.creds.SetPassword(ctx, ident.UserID, in.NewPassword)
}
