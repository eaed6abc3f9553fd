package service

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/nhle/todoapp/internal/auth"
	"github.com/nhle/todoapp/internal/model"
	"github.com/nhle/todoapp/internal/store"
	"github.com/nhle/todoapp/internal/validate"
)

// DefaultBcryptCost is the work factor used for password hashes.
const DefaultBcryptCost = 12

// Credentials handles account creation, password verification, and
// session establishment.
type Credentials struct {
	store    store.Store
	sessions auth.SessionManager
	log      *log.Logger
	cost     int
}

// NewCredentials returns a credential service. A cost of 0 selects
// DefaultBcryptCost; tests pass bcrypt.MinCost.
func NewCredentials(s store.Store, sessions auth.SessionManager, logger *log.Logger, cost int) *Credentials {
	if cost == 0 {
		cost = DefaultBcryptCost
	}
	return &Credentials{store: s, sessions: sessions, log: logger, cost: cost}
}

// Register creates a new account and opens a session for it, returning
// the created user and the session token. The canonical email must not
// belong to an existing user; the pre-check is backed by the unique
// constraint on the users table, so a racing signup still fails
// cleanly.
func (c *Credentials) Register(ctx context.Context, in validate.SignupInput) (*model.User, string, error) {
	if issues := validate.Signup(in); len(issues) > 0 {
		return nil, "", validationErr(issues.First())
	}

	email := validate.CanonicalEmail(in.Email)

	_, err := c.store.GetUserByEmail(ctx, email)
	if err == nil {
		return nil, "", conflictErr("this email address is already registered")
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), c.cost)
	if err != nil {
		return nil, "", err
	}

	hashStr := string(hash)
	user, err := c.store.CreateUser(ctx, model.User{
		Email:    email,
		Password: &hashStr,
	})
	if err != nil {
		var uerr *store.UniqueConstraintError
		if errors.As(err, &uerr) && uerr.Involves("email") {
			return nil, "", conflictErr("this email address is already registered")
		}
		return nil, "", err
	}

	token, err := c.sessions.Create(ctx, user.ID)
	if err != nil {
		c.log.Error("creating session after signup", "user_id", user.ID, "error", err)
		return nil, "", failedErr("login failed, please try again")
	}

	return user, token, nil
}

// Authenticate verifies an email/password pair and opens a session.
// Unknown email, wrong password, and passwordless accounts all yield
// the same generic message so callers cannot probe which emails exist.
func (c *Credentials) Authenticate(ctx context.Context, in validate.LoginInput) (string, error) {
	if issues := validate.Login(in); len(issues) > 0 {
		return "", validationErr(issues.First())
	}

	invalid := validationErr("incorrect email or password")

	user, err := c.store.GetUserByEmail(ctx, validate.CanonicalEmail(in.Email))
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			c.log.Error("looking up user at login", "error", err)
		}
		return "", invalid
	}

	if !user.HasPassword() {
		return "", invalid
	}
	if bcrypt.CompareHashAndPassword([]byte(*user.Password), []byte(in.Password)) != nil {
		return "", invalid
	}

	token, err := c.sessions.Create(ctx, user.ID)
	if err != nil {
		c.log.Error("creating session at login", "user_id", user.ID, "error", err)
		return "", invalid
	}

	return token, nil
}

// VerifyPassword checks a plaintext password against the stored hash
// for the given user. Accounts without a local password (external
// identity provider) cannot verify.
func (c *Credentials) VerifyPassword(ctx context.Context, userID, plaintext string) error {
	user, err := c.store.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return validationErr("password is not set")
		}
		return err
	}

	if !user.HasPassword() {
		return validationErr("password is not set")
	}
	if bcrypt.CompareHashAndPassword([]byte(*user.Password), []byte(plaintext)) != nil {
		return validationErr("current password is incorrect")
	}
	return nil
}

// SetPassword hashes and persists a new password for the given user.
func (c *Credentials) SetPassword(ctx context.Context, userID, plaintext string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), c.cost)
	if err != nil {
		return err
	}
	return c.store.SetUserPassword(ctx, userID, string(hash))
}

// Logout invalidates the given session token.
func (c *Credentials) Logout(ctx context.Context, token string) error {
	return c.sessions.Destroy(ctx, token)
}
