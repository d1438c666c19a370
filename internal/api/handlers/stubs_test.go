package handlers

import (
	"context"
	"testing"
	"time"

	"github.com/eventorbit/server/internal/auth"
	"github.com/eventorbit/server/internal/domain/accounts"
	"github.com/eventorbit/server/internal/domain/events"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

type stubAccountsRepo struct {
	byRole map[accounts.Role]map[string]*accounts.Account
}

func newStubAccountsRepo() *stubAccountsRepo {
	return &stubAccountsRepo{
		byRole: map[accounts.Role]map[string]*accounts.Account{
			accounts.RoleAdmin: {},
			accounts.RoleUser:  {},
		},
	}
}

func (s *stubAccountsRepo) FindByEmail(_ context.Context, role accounts.Role, email string) (*accounts.Account, error) {
	if account, ok := s.byRole[role][email]; ok {
		copied := *account
		return &copied, nil
	}
	return nil, accounts.ErrNotFound
}

func (s *stubAccountsRepo) Insert(_ context.Context, params accounts.CreateParams) (*accounts.Account, error) {
	account := &accounts.Account{
		ID:           params.ID,
		Name:         params.Name,
		Email:        params.Email,
		PasswordHash: params.PasswordHash,
		Role:         params.Role,
		Status:       params.Status,
		CreatedAt:    time.Now(),
	}
	s.byRole[params.Role][params.Email] = account
	return account, nil
}

func (s *stubAccountsRepo) IncrementLoginAttempts(_ context.Context, role accounts.Role, email string) (int, error) {
	account, ok := s.byRole[role][email]
	if !ok {
		return 0, accounts.ErrNotFound
	}
	account.LoginAttempts++
	return account.LoginAttempts, nil
}

func (s *stubAccountsRepo) ResetLoginAttempts(_ context.Context, role accounts.Role, email string) error {
	account, ok := s.byRole[role][email]
	if !ok {
		return accounts.ErrNotFound
	}
	account.LoginAttempts = 0
	return nil
}

func (s *stubAccountsRepo) SetLastLogin(_ context.Context, role accounts.Role, email string, at time.Time) error {
	account, ok := s.byRole[role][email]
	if !ok {
		return accounts.ErrNotFound
	}
	account.LastLogin = &at
	return nil
}

func (s *stubAccountsRepo) seed(t *testing.T, role accounts.Role, email, password string) *accounts.Account {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	account := &accounts.Account{
		ID:           "01JC0000000000000000000000",
		Name:         "Seed Account",
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Status:       accounts.StatusActive,
		CreatedAt:    time.Now(),
	}
	s.byRole[role][email] = account
	return account
}

type stubEventsRepo struct {
	inserted []events.CreateParams
	active   []events.Event
}

func (s *stubEventsRepo) Insert(_ context.Context, params events.CreateParams) (*events.Event, error) {
	s.inserted = append(s.inserted, params)
	event := &events.Event{
		ID:          params.ID,
		Title:       params.Title,
		Venue:       params.Venue,
		StartDate:   params.StartDate,
		StartTime:   params.StartTime,
		EndDate:     params.EndDate,
		EndTime:     params.EndTime,
		Cost:        params.Cost,
		Image:       params.Image,
		Description: params.Description,
		CreatedBy:   params.CreatedBy,
		CreatedAt:   time.Now(),
		Status:      params.Status,
	}
	s.active = append(s.active, *event)
	return event, nil
}

func (s *stubEventsRepo) ListActive(_ context.Context) ([]events.Event, error) {
	return s.active, nil
}

type stubGenerator struct {
	description string
	err         error
}

func (s *stubGenerator) Generate(_ context.Context, _ string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.description, nil
}

func newTestTokens() *auth.JWTManager {
	return auth.NewJWTManager("test-secret", time.Hour, 24*time.Hour, "eventorbit")
}

func newTestAccountsService(repo accounts.Repository) *accounts.Service {
	return accounts.NewService(repo, newTestTokens(), zerolog.Nop())
}
