package accounts

import "time"

// Role selects which account collection an email lives in. The admin and
// user namespaces are independent: the same email may exist once in each.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Valid reports whether the role is one of the two known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

type Status string

const (
	StatusActive   Status = "Active"
	StatusInactive Status = "Inactive"
)

// MaxLoginAttempts is the failed-login threshold at which an account locks.
// A locked account rejects every subsequent login, correct password or not,
// until the counter is reset out of band.
const MaxLoginAttempts = 3

// Account is a stored admin or user identity with credentials and lockout
// state. PasswordHash is a bcrypt hash and is never returned to callers.
type Account struct {
	ID            string
	Name          string
	Email         string
	PasswordHash  string
	Role          Role
	Status        Status
	CreatedAt     time.Time
	LastLogin     *time.Time
	LoginAttempts int
}

// Locked reports whether the account has hit the failed-login threshold.
// This gate is independent of Status: either can block login on its own.
func (a *Account) Locked() bool {
	return a.LoginAttempts >= MaxLoginAttempts
}
