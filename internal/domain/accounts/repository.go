package accounts

import (
	"context"
	"time"
)

// CreateParams are the fields persisted for a new account. ID is minted by
// the caller; the store never generates identity.
type CreateParams struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	Status       Status
}

// Repository is the credential store: role-scoped lookup, insert, and the
// field-level mutations login performs.
type Repository interface {
	// FindByEmail returns the account for email within role's collection,
	// or ErrNotFound.
	FindByEmail(ctx context.Context, role Role, email string) (*Account, error)

	// Insert persists a new account with login_attempts zero and a null
	// last_login.
	Insert(ctx context.Context, params CreateParams) (*Account, error)

	// IncrementLoginAttempts adds one to the account's failed-login counter
	// in a single atomic statement and returns the new count.
	IncrementLoginAttempts(ctx context.Context, role Role, email string) (int, error)

	// ResetLoginAttempts zeroes the failed-login counter.
	ResetLoginAttempts(ctx context.Context, role Role, email string) error

	// SetLastLogin records the moment of a successful login.
	SetLastLogin(ctx context.Context, role Role, email string, at time.Time) error
}
