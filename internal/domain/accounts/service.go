// Package accounts implements registration, login, and the account-lockout
// state machine for the two flat roles (admin, user).
//
// Lockout: each failed login increments a per-account counter. At three the
// account is locked and every later login fails with the lockout error, even
// with the correct password, until ResetLoginAttempts is run out of band.
// Locking never touches the status field; status and the attempt counter are
// two independent gates and either can block login on its own.
package accounts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/eventorbit/server/internal/auth"
	"github.com/eventorbit/server/internal/domain/ids"
)

// BcryptCost is the cost factor for bcrypt password hashing.
const BcryptCost = 12

// Service orchestrates registration and login against the credential store.
type Service struct {
	repo      Repository
	tokens    *auth.JWTManager
	logger    zerolog.Logger
	validator *validator.Validate
}

func NewService(repo Repository, tokens *auth.JWTManager, logger zerolog.Logger) *Service {
	return &Service{
		repo:      repo,
		tokens:    tokens,
		logger:    logger.With().Str("component", "accounts").Logger(),
		validator: validator.New(),
	}
}

// RegisterParams is the validated-on-entry input for Register.
type RegisterParams struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
	Role            Role
}

// RegisterResult is the outcome of a successful registration: the stored
// account and a freshly issued token pair.
type RegisterResult struct {
	Account *Account
	Tokens  auth.TokenPair
}

// LoginParams is the input for Login.
type LoginParams struct {
	Email    string
	Password string
	Role     Role
}

// LoginResult is the outcome of a successful login. LastLogin is the value
// recorded before this login, nil on a first login.
type LoginResult struct {
	Account   *Account
	Tokens    auth.TokenPair
	LastLogin *time.Time
}

// Register validates the input in order, first failure winning: all fields
// present, name alphabetic with spaces, email syntactically valid and unused
// within the role's collection, password policy, password confirmation. On
// success it hashes the password, inserts the account, and issues tokens.
func (s *Service) Register(ctx context.Context, params RegisterParams) (*RegisterResult, error) {
	if params.Name == "" || params.Email == "" || params.Password == "" || params.ConfirmPassword == "" {
		return nil, ValidationError{Message: "All fields are required"}
	}
	if err := validateName(params.Name); err != nil {
		return nil, err
	}
	if err := s.validator.Var(params.Email, "required,email"); err != nil {
		return nil, ValidationError{Message: "Email is not valid"}
	}
	if _, err := s.repo.FindByEmail(ctx, params.Role, params.Email); err == nil {
		return nil, ValidationError{Message: "Email already exists"}
	} else if !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if err := validatePassword(params.Password); err != nil {
		return nil, err
	}
	if params.Password != params.ConfirmPassword {
		return nil, ValidationError{Message: "Passwords do not match"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	id, err := ids.NewULID()
	if err != nil {
		return nil, fmt.Errorf("mint account id: %w", err)
	}

	account, err := s.repo.Insert(ctx, CreateParams{
		ID:           id,
		Name:         params.Name,
		Email:        params.Email,
		PasswordHash: string(hash),
		Role:         params.Role,
		Status:       StatusActive,
	})
	if err != nil {
		return nil, fmt.Errorf("insert account: %w", err)
	}

	pair, err := s.tokens.Issue(account.Email, string(account.Role), account.ID)
	if err != nil {
		return nil, fmt.Errorf("issue tokens: %w", err)
	}

	s.logger.Info().
		Str("account_id", account.ID).
		Str("email", account.Email).
		Str("role", string(account.Role)).
		Msg("account registered")

	return &RegisterResult{Account: account, Tokens: pair}, nil
}

// Login authenticates an email/password pair against the role's collection.
//
// Check order: field presence, lockout, account existence, status, stored
// record consistency, password. A mismatch increments the attempt counter
// atomically; the increment that reaches the threshold returns
// ErrAccountNowLocked, earlier ones return InvalidPasswordError with the
// remaining-attempt count. A match resets the counter and stamps last_login.
func (s *Service) Login(ctx context.Context, params LoginParams) (*LoginResult, error) {
	if params.Email == "" {
		return nil, ValidationError{Message: "Email is required"}
	}
	if params.Password == "" {
		return nil, ValidationError{Message: "Password is required"}
	}

	account, err := s.repo.FindByEmail(ctx, params.Role, params.Email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, UnknownEmailError{Email: params.Email}
		}
		return nil, fmt.Errorf("find account: %w", err)
	}

	// Lockout is checked before anything else about the account; a locked
	// account never re-checks credentials.
	if account.Locked() {
		return nil, ErrAccountLocked
	}
	if account.Status != StatusActive {
		return nil, ErrAccountInactive
	}
	if account.PasswordHash == "" || account.Email == "" {
		return nil, ErrInvalidRecord
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(params.Password)); err != nil {
		attempts, incErr := s.repo.IncrementLoginAttempts(ctx, params.Role, params.Email)
		if incErr != nil {
			return nil, fmt.Errorf("record failed login: %w", incErr)
		}
		s.logger.Warn().
			Str("email", params.Email).
			Str("role", string(params.Role)).
			Int("attempts", attempts).
			Msg("failed login")
		if attempts >= MaxLoginAttempts {
			return nil, ErrAccountNowLocked
		}
		return nil, InvalidPasswordError{Remaining: MaxLoginAttempts - attempts}
	}

	previousLogin := account.LastLogin
	now := time.Now()
	if err := s.repo.ResetLoginAttempts(ctx, params.Role, params.Email); err != nil {
		return nil, fmt.Errorf("reset login attempts: %w", err)
	}
	if err := s.repo.SetLastLogin(ctx, params.Role, params.Email, now); err != nil {
		return nil, fmt.Errorf("set last login: %w", err)
	}

	pair, err := s.tokens.Issue(account.Email, string(account.Role), account.ID)
	if err != nil {
		return nil, fmt.Errorf("issue tokens: %w", err)
	}

	s.logger.Info().
		Str("account_id", account.ID).
		Str("email", account.Email).
		Str("role", string(account.Role)).
		Msg("login")

	return &LoginResult{Account: account, Tokens: pair, LastLogin: previousLogin}, nil
}

// ResetLoginAttempts is the administrative transition out of the locked
// state. No API endpoint triggers it; it is exposed through the CLI only.
func (s *Service) ResetLoginAttempts(ctx context.Context, role Role, email string) error {
	if _, err := s.repo.FindByEmail(ctx, role, email); err != nil {
		return err
	}
	if err := s.repo.ResetLoginAttempts(ctx, role, email); err != nil {
		return fmt.Errorf("reset login attempts: %w", err)
	}
	s.logger.Info().
		Str("email", email).
		Str("role", string(role)).
		Msg("login attempts reset")
	return nil
}
