package postgres

import (
	"testing"
	"time"

	"github.com/eventorbit/server/internal/domain/accounts"
	"github.com/eventorbit/server/internal/domain/events"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/require"
)

func TestAccountRowMapping(t *testing.T) {
	created := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	lastLogin := time.Date(2026, 8, 15, 9, 30, 0, 0, time.UTC)

	row := accountRow{
		ID:            "01JC0000000000000000000000",
		Name:          "Ada Lovelace",
		Email:         "ada@example.com",
		PasswordHash:  "hash",
		Role:          "admin",
		Status:        "Active",
		CreatedAt:     pgtype.Timestamptz{Time: created, Valid: true},
		LastLogin:     pgtype.Timestamptz{Time: lastLogin, Valid: true},
		LoginAttempts: 2,
	}

	account := row.toAccount()
	require.Equal(t, accounts.RoleAdmin, account.Role)
	require.Equal(t, accounts.StatusActive, account.Status)
	require.Equal(t, created, account.CreatedAt)
	require.NotNil(t, account.LastLogin)
	require.Equal(t, lastLogin, *account.LastLogin)
	require.Equal(t, 2, account.LoginAttempts)
	require.False(t, account.Locked())
}

func TestAccountRowNullLastLogin(t *testing.T) {
	row := accountRow{
		ID:     "01JC0000000000000000000001",
		Email:  "grace@example.com",
		Role:   "user",
		Status: "Active",
	}

	account := row.toAccount()
	require.Nil(t, account.LastLogin)
	require.True(t, account.CreatedAt.IsZero())
}

func TestEventRowMapping(t *testing.T) {
	created := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)

	row := eventRow{
		ID:          "01JC0000000000000000000002",
		Title:       "Tech Meetup",
		Venue:       "Community Hall",
		StartDate:   "2026-09-01",
		StartTime:   "18:00",
		EndDate:     "2026-09-01",
		EndTime:     "21:00",
		Cost:        "250",
		Image:       "aGVsbG8=",
		Description: "d",
		CreatedBy:   "admin@example.com",
		CreatedAt:   pgtype.Timestamptz{Time: created, Valid: true},
		Status:      "Active",
	}

	event := row.toEvent()
	require.Equal(t, events.StatusActive, event.Status)
	require.Equal(t, created, event.CreatedAt)
	require.Equal(t, "aGVsbG8=", event.Image)
}

func TestNewRepositoryRejectsNilPool(t *testing.T) {
	repo, err := NewRepository(nil)
	require.Error(t, err)
	require.Nil(t, repo)
}
