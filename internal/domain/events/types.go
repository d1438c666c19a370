package events

import "time"

type Status string

const (
	StatusActive   Status = "Active"
	StatusInactive Status = "Inactive"
)

// Event is a stored event. Date and time components are kept as the text
// the admin submitted; they are combined only during validation. Image is
// the base64 encoding of the uploaded bytes.
type Event struct {
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
	CreatedAt   time.Time
	Status      Status
}

// ImageUpload is an uploaded image file: raw bytes plus the metadata the
// multipart part carried.
type ImageUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// CreateInput is the admin-submitted form for event creation.
type CreateInput struct {
	Title               string
	Venue               string
	StartTime           string
	EndTime             string
	StartDate           string
	EndDate             string
	Cost                string
	Description         string
	GenerateDescription bool
	Image               *ImageUpload
}
