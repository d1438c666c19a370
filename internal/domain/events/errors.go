package events

import "errors"

var (
	// ErrAdminRequired is returned when the caller's account is missing or
	// not an admin.
	ErrAdminRequired = errors.New("admin access required")

	// ErrCallerNotFound is returned by listing when no account exists for
	// the token's identity.
	ErrCallerNotFound = errors.New("caller account not found")

	// ErrDescriptionGeneration is returned when the generator fails or
	// produces nothing.
	ErrDescriptionGeneration = errors.New("description generation failed")
)

// ValidationError carries the user-facing message for rejected event input.
type ValidationError struct {
	Message string
}

func (e ValidationError) Error() string {
	return e.Message
}
