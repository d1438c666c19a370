package events

import "context"

// CreateParams are the fields persisted for a new event. ID is minted by
// the caller.
type CreateParams struct {
	ID          string
	Title       string
	Venue       string
	StartDate   string
	StartTime   string
	EndDate     string
	EndTime     string
	Cost        string
	Image       string
	Description string
	CreatedBy   string
	Status      Status
}

// Repository is the event store.
type Repository interface {
	// Insert persists a new event.
	Insert(ctx context.Context, params CreateParams) (*Event, error)

	// ListActive returns every event with status Active, newest first.
	ListActive(ctx context.Context) ([]Event, error)
}
