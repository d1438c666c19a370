package accounts

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when no account exists for an email within a
	// role's collection.
	ErrNotFound = errors.New("account not found")

	// ErrAccountLocked is returned when a login is rejected up front because
	// the account already sits at the failed-attempt threshold.
	ErrAccountLocked = errors.New("account locked")

	// ErrAccountNowLocked is returned when the failed login being processed
	// is the one that pushed the account over the threshold.
	ErrAccountNowLocked = errors.New("account locked by this attempt")

	// ErrAccountInactive is returned when the stored status is not Active.
	ErrAccountInactive = errors.New("account inactive")

	// ErrInvalidRecord is returned when a stored account is missing its
	// password hash or email. This is an internal consistency failure, not
	// a credential problem.
	ErrInvalidRecord = errors.New("stored account record is incomplete")
)

// ValidationError carries the user-facing message for a registration or
// login input that failed validation.
type ValidationError struct {
	Message string
}

func (e ValidationError) Error() string {
	return e.Message
}

// UnknownEmailError is returned when no account exists for the login email.
type UnknownEmailError struct {
	Email string
}

func (e UnknownEmailError) Error() string {
	return fmt.Sprintf("no account found with email %s", e.Email)
}

// InvalidPasswordError is returned on a password mismatch that did not lock
// the account. Remaining is how many more failures the account can absorb.
type InvalidPasswordError struct {
	Remaining int
}

func (e InvalidPasswordError) Error() string {
	return fmt.Sprintf("invalid password, %d attempts remaining", e.Remaining)
}
