package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/eventorbit/server/internal/api/middleware"
	"github.com/eventorbit/server/internal/api/respond"
	"github.com/eventorbit/server/internal/domain/accounts"
	"github.com/eventorbit/server/internal/domain/events"
	"github.com/eventorbit/server/internal/metrics"
)

// maxMultipartMemory is how much of a multipart body is held in memory
// before spilling to disk.
const maxMultipartMemory = 10 << 20

// EventsHandler serves event creation and listing.
type EventsHandler struct {
	ingest  *events.IngestService
	listing *events.ListingService
	env     string
}

func NewEventsHandler(ingest *events.IngestService, listing *events.ListingService, env string) *EventsHandler {
	return &EventsHandler{ingest: ingest, listing: listing, env: env}
}

type createEventResponse struct {
	Message  string `json:"message"`
	EventID  string `json:"event_id"`
	Redirect string `json:"redirect"`
}

type eventPayload struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Venue       string `json:"venue"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Cost        string `json:"cost"`
	CreatedBy   string `json:"created_by"`
	Image       string `json:"image"`
	Description string `json:"description"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
}

type listEventsResponse struct {
	Events      []eventPayload `json:"events"`
	TotalEvents int            `json:"total_events"`
	UserRole    string         `json:"user_role"`
}

// Create handles the multipart event-creation form. The caller's identity
// comes from the bearer token verified by the auth middleware.
func (h *EventsHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		respond.Error(w, r, http.StatusUnauthorized, "Authorization token required", nil)
		return
	}

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		respond.Error(w, r, http.StatusBadRequest, "Invalid multipart form data", err)
		return
	}

	input := events.CreateInput{
		Title:               r.PostFormValue("title"),
		Venue:               r.PostFormValue("venue"),
		StartTime:           strings.TrimSpace(r.PostFormValue("start_time")),
		EndTime:             strings.TrimSpace(r.PostFormValue("end_time")),
		StartDate:           strings.TrimSpace(r.PostFormValue("start_date")),
		EndDate:             strings.TrimSpace(r.PostFormValue("end_date")),
		Cost:                r.PostFormValue("cost"),
		Description:         r.PostFormValue("description"),
		GenerateDescription: strings.EqualFold(r.PostFormValue("generate_description"), "true"),
	}

	file, header, err := r.FormFile("image")
	if err == nil {
		defer file.Close()
		data, readErr := io.ReadAll(file)
		if readErr != nil {
			respond.Error(w, r, http.StatusBadRequest, "Invalid multipart form data", readErr)
			return
		}
		input.Image = &events.ImageUpload{
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Data:        data,
		}
	} else if !errors.Is(err, http.ErrMissingFile) {
		respond.Error(w, r, http.StatusBadRequest, "Invalid multipart form data", err)
		return
	}

	event, err := h.ingest.Create(r.Context(), claims.Email, input)
	if err != nil {
		h.writeCreateError(w, r, err)
		return
	}

	if input.GenerateDescription {
		metrics.DescriptionGenerationsTotal.WithLabelValues("success").Inc()
	}

	respond.JSON(w, http.StatusCreated, createEventResponse{
		Message:  "Event created successfully",
		EventID:  event.ID,
		Redirect: "/dashboard",
	})
}

// List returns all active events for any authenticated caller.
func (h *EventsHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		respond.Error(w, r, http.StatusUnauthorized, "Authorization token required", nil)
		return
	}

	result, err := h.listing.List(r.Context(), claims.Email, accounts.Role(claims.Role))
	if err != nil {
		if errors.Is(err, events.ErrCallerNotFound) {
			respond.Error(w, r, http.StatusNotFound, "User not found", err)
			return
		}
		respond.Internal(w, r, err, h.env)
		return
	}

	payload := make([]eventPayload, 0, len(result.Events))
	for _, event := range result.Events {
		payload = append(payload, eventPayload{
			ID:          event.ID,
			Title:       event.Title,
			Venue:       event.Venue,
			StartDate:   event.StartDate,
			EndDate:     event.EndDate,
			Cost:        event.Cost,
			CreatedBy:   event.CreatedBy,
			Image:       event.Image,
			Description: event.Description,
			StartTime:   event.StartTime,
			EndTime:     event.EndTime,
		})
	}

	respond.JSON(w, http.StatusOK, listEventsResponse{
		Events:      payload,
		TotalEvents: result.Total,
		UserRole:    string(result.Role),
	})
}

func (h *EventsHandler) writeCreateError(w http.ResponseWriter, r *http.Request, err error) {
	var validation events.ValidationError
	if errors.As(err, &validation) {
		respond.Error(w, r, http.StatusBadRequest, validation.Message, err)
		return
	}

	switch {
	case errors.Is(err, events.ErrAdminRequired):
		respond.Error(w, r, http.StatusForbidden, "Admin access required", err)
	case errors.Is(err, events.ErrDescriptionGeneration):
		metrics.DescriptionGenerationsTotal.WithLabelValues("error").Inc()
		respond.Error(w, r, http.StatusInternalServerError, "Failed to generate description from AI service", err)
	default:
		respond.Internal(w, r, err, h.env)
	}
}
