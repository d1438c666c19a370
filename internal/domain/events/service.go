// Package events implements the event-ingestion validation pipeline and the
// listing service. Ingestion is admin-only; listing is open to both roles
// and both see the identical set of active events.
package events

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/eventorbit/server/internal/domain/accounts"
	"github.com/eventorbit/server/internal/domain/ids"
)

// Generator produces an event description from a natural-language prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// IngestService validates and persists admin-submitted events.
type IngestService struct {
	repo      Repository
	creds     accounts.Repository
	generator Generator
	timeout   time.Duration
	logger    zerolog.Logger
}

func NewIngestService(repo Repository, creds accounts.Repository, generator Generator, generatorTimeout time.Duration, logger zerolog.Logger) *IngestService {
	return &IngestService{
		repo:      repo,
		creds:     creds,
		generator: generator,
		timeout:   generatorTimeout,
		logger:    logger.With().Str("component", "events").Logger(),
	}
}

// Create runs the ingestion pipeline for the caller identified by email.
// Steps, first failure winning: admin authorization, required fields,
// length limits, schedule parsing and ordering, image format, description
// policy, persistence. The stored event is always Active and records the
// admin's email as created_by.
func (s *IngestService) Create(ctx context.Context, adminEmail string, input CreateInput) (*Event, error) {
	admin, err := s.creds.FindByEmail(ctx, accounts.RoleAdmin, adminEmail)
	if err != nil {
		if errors.Is(err, accounts.ErrNotFound) {
			return nil, ErrAdminRequired
		}
		return nil, fmt.Errorf("find admin: %w", err)
	}
	if admin.Role != accounts.RoleAdmin {
		return nil, ErrAdminRequired
	}

	if err := validateRequired(input); err != nil {
		return nil, err
	}
	if err := validateLengths(input); err != nil {
		return nil, err
	}
	if _, _, err := parseSchedule(input); err != nil {
		return nil, err
	}
	if err := validateImage(input.Image); err != nil {
		return nil, err
	}

	description := input.Description
	if input.GenerateDescription {
		generated, err := s.generateDescription(ctx, input)
		if err != nil {
			s.logger.Error().Err(err).Str("title", input.Title).Msg("description generation failed")
			return nil, ErrDescriptionGeneration
		}
		description = generated
	} else if description == "" {
		return nil, ValidationError{Message: "Description is required unless generated"}
	}

	id, err := ids.NewULID()
	if err != nil {
		return nil, fmt.Errorf("mint event id: %w", err)
	}

	event, err := s.repo.Insert(ctx, CreateParams{
		ID:          id,
		Title:       input.Title,
		Venue:       input.Venue,
		StartDate:   input.StartDate,
		StartTime:   input.StartTime,
		EndDate:     input.EndDate,
		EndTime:     input.EndTime,
		Cost:        input.Cost,
		Image:       base64.StdEncoding.EncodeToString(input.Image.Data),
		Description: description,
		CreatedBy:   admin.Email,
		Status:      StatusActive,
	})
	if err != nil {
		return nil, fmt.Errorf("insert event: %w", err)
	}

	s.logger.Info().
		Str("event_id", event.ID).
		Str("title", event.Title).
		Str("created_by", event.CreatedBy).
		Msg("event created")

	return event, nil
}

// generateDescription calls the generator with a prompt built from the
// event fields, bounded by the configured timeout. No retries: the single
// fallback is failing the request.
func (s *IngestService) generateDescription(ctx context.Context, input CreateInput) (string, error) {
	prompt := fmt.Sprintf(
		"Generate a description for an event titled '%s' at '%s' from %s to %s costing %s INR.",
		input.Title, input.Venue, input.StartDate, input.EndDate, input.Cost,
	)

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	return s.generator.Generate(ctx, prompt)
}

// ListingService resolves a caller and returns the active events.
type ListingService struct {
	repo  Repository
	creds accounts.Repository
}

func NewListingService(repo Repository, creds accounts.Repository) *ListingService {
	return &ListingService{repo: repo, creds: creds}
}

// ListResult is the listing payload: every active event, its count, and the
// role the caller authenticated as.
type ListResult struct {
	Events []Event
	Total  int
	Role   accounts.Role
}

// List verifies the caller exists in the collection its role claim implies,
// then returns all active events. No pagination, no filtering, no ownership
// scoping: admins and users see the same set.
func (s *ListingService) List(ctx context.Context, email string, role accounts.Role) (*ListResult, error) {
	lookupRole := accounts.RoleUser
	if role == accounts.RoleAdmin {
		lookupRole = accounts.RoleAdmin
	}
	if _, err := s.creds.FindByEmail(ctx, lookupRole, email); err != nil {
		if errors.Is(err, accounts.ErrNotFound) {
			return nil, ErrCallerNotFound
		}
		return nil, fmt.Errorf("find caller: %w", err)
	}

	items, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return &ListResult{Events: items, Total: len(items), Role: role}, nil
}
