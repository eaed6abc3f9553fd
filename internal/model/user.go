package model

import "time"

// User is a registered account. Email is stored in canonical form
// (trimmed, lower-cased) and is unique across all users.
type User struct {
	ID    string  `json:"id" db:"id"`
	Email string  `json:"email" db:"email"`
	Name  *string `json:"name,omitempty" db:"name"`

	// Password is the bcrypt hash of the account password. It is nil
	// for accounts that authenticate through an external identity
	// provider and never appears in JSON.
	Password *string `json:"-" db:"password"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// HasPassword reports whether the account has a local password set.
func (u *User) HasPassword() bool {
	return u.Password != nil && *u.Password != ""
}
