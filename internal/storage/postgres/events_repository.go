package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/eventorbit/server/internal/domain/events"
)

var _ events.Repository = (*EventRepository)(nil)

type eventRow struct {
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
	CreatedAt   pgtype.Timestamptz
	Status      string
}

func (row eventRow) toEvent() events.Event {
	event := events.Event{
		ID:          row.ID,
		Title:       row.Title,
		Venue:       row.Venue,
		StartDate:   row.StartDate,
		StartTime:   row.StartTime,
		EndDate:     row.EndDate,
		EndTime:     row.EndTime,
		Cost:        row.Cost,
		Image:       row.Image,
		Description: row.Description,
		CreatedBy:   row.CreatedBy,
		Status:      events.Status(row.Status),
	}
	if row.CreatedAt.Valid {
		event.CreatedAt = row.CreatedAt.Time
	}
	return event
}

func (r *EventRepository) Insert(ctx context.Context, params events.CreateParams) (*events.Event, error) {
	row := r.queryer().QueryRow(ctx, `
INSERT INTO events (id, title, venue, start_date, start_time, end_date, end_time,
                    cost, image, description, created_by, created_at, status)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, now(), $12)
RETURNING id, title, venue, start_date, start_time, end_date, end_time,
          cost, image, description, created_by, created_at, status
`,
		params.ID, params.Title, params.Venue,
		params.StartDate, params.StartTime, params.EndDate, params.EndTime,
		params.Cost, params.Image, params.Description, params.CreatedBy, string(params.Status),
	)

	var data eventRow
	if err := scanEventRow(row.Scan, &data); err != nil {
		return nil, fmt.Errorf("insert event: %w", err)
	}
	event := data.toEvent()
	return &event, nil
}

func (r *EventRepository) ListActive(ctx context.Context) ([]events.Event, error) {
	rows, err := r.queryer().Query(ctx, `
SELECT id, title, venue, start_date, start_time, end_date, end_time,
       cost, image, description, created_by, created_at, status
  FROM events
 WHERE status = 'Active'
 ORDER BY created_at DESC, id DESC
`)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var items []events.Event
	for rows.Next() {
		var data eventRow
		if err := scanEventRow(rows.Scan, &data); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		items = append(items, data.toEvent())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return items, nil
}

func scanEventRow(scan func(dest ...any) error, data *eventRow) error {
	return scan(
		&data.ID,
		&data.Title,
		&data.Venue,
		&data.StartDate,
		&data.StartTime,
		&data.EndDate,
		&data.EndTime,
		&data.Cost,
		&data.Image,
		&data.Description,
		&data.CreatedBy,
		&data.CreatedAt,
		&data.Status,
	)
}
