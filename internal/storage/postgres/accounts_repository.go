package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/eventorbit/server/internal/domain/accounts"
)

var _ accounts.Repository = (*AccountRepository)(nil)

type accountRow struct {
	ID            string
	Name          string
	Email         string
	PasswordHash  string
	Role          string
	Status        string
	CreatedAt     pgtype.Timestamptz
	LastLogin     pgtype.Timestamptz
	LoginAttempts int
}

func (row accountRow) toAccount() *accounts.Account {
	account := &accounts.Account{
		ID:            row.ID,
		Name:          row.Name,
		Email:         row.Email,
		PasswordHash:  row.PasswordHash,
		Role:          accounts.Role(row.Role),
		Status:        accounts.Status(row.Status),
		LoginAttempts: row.LoginAttempts,
	}
	if row.CreatedAt.Valid {
		account.CreatedAt = row.CreatedAt.Time
	}
	if row.LastLogin.Valid {
		lastLogin := row.LastLogin.Time
		account.LastLogin = &lastLogin
	}
	return account
}

func (r *AccountRepository) FindByEmail(ctx context.Context, role accounts.Role, email string) (*accounts.Account, error) {
	row := r.queryer().QueryRow(ctx, `
SELECT id, name, email, password_hash, role, status, created_at, last_login, login_attempts
  FROM accounts
 WHERE role = $1 AND email = $2
 LIMIT 1
`, string(role), email)

	var data accountRow
	if err := row.Scan(
		&data.ID,
		&data.Name,
		&data.Email,
		&data.PasswordHash,
		&data.Role,
		&data.Status,
		&data.CreatedAt,
		&data.LastLogin,
		&data.LoginAttempts,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, accounts.ErrNotFound
		}
		return nil, fmt.Errorf("find account: %w", err)
	}
	return data.toAccount(), nil
}

func (r *AccountRepository) Insert(ctx context.Context, params accounts.CreateParams) (*accounts.Account, error) {
	row := r.queryer().QueryRow(ctx, `
INSERT INTO accounts (id, name, email, password_hash, role, status, created_at, last_login, login_attempts)
VALUES ($1, $2, $3, $4, $5, $6, now(), NULL, 0)
RETURNING id, name, email, password_hash, role, status, created_at, last_login, login_attempts
`, params.ID, params.Name, params.Email, params.PasswordHash, string(params.Role), string(params.Status))

	var data accountRow
	if err := row.Scan(
		&data.ID,
		&data.Name,
		&data.Email,
		&data.PasswordHash,
		&data.Role,
		&data.Status,
		&data.CreatedAt,
		&data.LastLogin,
		&data.LoginAttempts,
	); err != nil {
		return nil, fmt.Errorf("insert account: %w", err)
	}
	return data.toAccount(), nil
}

// IncrementLoginAttempts bumps the counter in one statement so concurrent
// failed logins cannot lose an increment to a read-modify-write race.
func (r *AccountRepository) IncrementLoginAttempts(ctx context.Context, role accounts.Role, email string) (int, error) {
	row := r.queryer().QueryRow(ctx, `
UPDATE accounts
   SET login_attempts = login_attempts + 1
 WHERE role = $1 AND email = $2
RETURNING login_attempts
`, string(role), email)

	var attempts int
	if err := row.Scan(&attempts); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, accounts.ErrNotFound
		}
		return 0, fmt.Errorf("increment login attempts: %w", err)
	}
	return attempts, nil
}

func (r *AccountRepository) ResetLoginAttempts(ctx context.Context, role accounts.Role, email string) error {
	_, err := r.queryer().Exec(ctx, `
UPDATE accounts SET login_attempts = 0 WHERE role = $1 AND email = $2
`, string(role), email)
	if err != nil {
		return fmt.Errorf("reset login attempts: %w", err)
	}
	return nil
}

func (r *AccountRepository) SetLastLogin(ctx context.Context, role accounts.Role, email string, at time.Time) error {
	_, err := r.queryer().Exec(ctx, `
UPDATE accounts SET last_login = $3 WHERE role = $1 AND email = $2
`, string(role), email, at)
	if err != nil {
		return fmt.Errorf("set last login: %w", err)
	}
	return nil
}
