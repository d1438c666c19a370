package events

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	maxTitleLength = 50
	maxVenueLength = 150

	// dateTimeLayout is the strict format joined date+time fields must
	// parse against.
	dateTimeLayout = "2006-01-02 15:04"
)

var (
	validImageMIMETypes  = []string{"image/jpeg", "image/png", "image/gif"}
	validImageExtensions = []string{".jpg", ".jpeg", ".png", ".gif"}
)

// validateRequired checks that every form field and the image are present.
func validateRequired(input CreateInput) error {
	missing := input.Title == "" || input.Venue == "" ||
		input.StartTime == "" || input.EndTime == "" ||
		input.StartDate == "" || input.EndDate == "" ||
		input.Cost == "" || input.Image == nil || len(input.Image.Data) == 0
	if missing {
		return ValidationError{Message: "All fields are required"}
	}
	return nil
}

// validateLengths caps title and venue length, counted in characters rather
// than bytes so multibyte text is not penalized.
func validateLengths(input CreateInput) error {
	if utf8.RuneCountInString(input.Title) > maxTitleLength {
		return ValidationError{Message: "Title must not exceed 50 characters"}
	}
	if utf8.RuneCountInString(input.Venue) > maxVenueLength {
		return ValidationError{Message: "Venue must not exceed 150 characters"}
	}
	return nil
}

// parseSchedule combines the date and time fields and enforces that the
// start instant is strictly before the end instant. The parser's own message
// is surfaced on format failures.
func parseSchedule(input CreateInput) (start, end time.Time, err error) {
	start, err = time.Parse(dateTimeLayout, input.StartDate+" "+input.StartTime)
	if err != nil {
		return time.Time{}, time.Time{}, ValidationError{Message: fmt.Sprintf("Invalid date/time format: %v", err)}
	}
	end, err = time.Parse(dateTimeLayout, input.EndDate+" "+input.EndTime)
	if err != nil {
		return time.Time{}, time.Time{}, ValidationError{Message: fmt.Sprintf("Invalid date/time format: %v", err)}
	}
	if !start.Before(end) {
		return time.Time{}, time.Time{}, ValidationError{Message: "Start date/time must be before end date/time"}
	}
	return start, end, nil
}

// validateImage accepts JPEG, PNG, and GIF. The declared MIME type is
// checked when the upload carried one; otherwise the filename extension is
// the fallback.
func validateImage(image *ImageUpload) error {
	if image == nil {
		return ValidationError{Message: "Image is required"}
	}
	if image.ContentType != "" {
		for _, mime := range validImageMIMETypes {
			if image.ContentType == mime {
				return nil
			}
		}
		return ValidationError{Message: "Invalid image format. Only JPEG, PNG, and GIF are allowed."}
	}
	name := strings.ToLower(image.Filename)
	for _, ext := range validImageExtensions {
		if strings.HasSuffix(name, ext) {
			return nil
		}
	}
	return ValidationError{Message: "Invalid image format. Only JPEG, PNG, and GIF are allowed."}
}
