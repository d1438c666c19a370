package handlers

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/eventorbit/server/internal/api/middleware"
	"github.com/eventorbit/server/internal/domain/accounts"
	"github.com/eventorbit/server/internal/domain/events"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// pngHeader is enough of a PNG to pass format validation; content is never
// decoded server-side.
var pngHeader = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

func defaultEventFields() map[string]string {
	return map[string]string{
		"title":      "Tech Meetup",
		"venue":      "Community Hall",
		"start_date": "2026-09-01",
		"start_time": "18:00",
		"end_date":   "2026-09-01",
		"end_time":   "21:00",
		"cost":       "250",
	}
}

func multipartRequest(t *testing.T, fields map[string]string, filename string, image []byte) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	if image != nil {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename=%q`, filename))
		header.Set("Content-Type", "image/png")
		part, err := writer.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write(image)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/create-event/", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func newEventsHandler(t *testing.T, creds *stubAccountsRepo, repo *stubEventsRepo, generator events.Generator) *EventsHandler {
	t.Helper()
	ingest := events.NewIngestService(repo, creds, generator, time.Second, zerolog.Nop())
	listing := events.NewListingService(repo, creds)
	return NewEventsHandler(ingest, listing, "test")
}

func authedRequest(t *testing.T, req *http.Request, email, role string) *http.Request {
	t.Helper()
	tokens := newTestTokens()
	pair, err := tokens.Issue(email, role, "01JC0000000000000000000000")
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+pair.Access)
	return req
}

func serveWithAuth(handler http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	middleware.RequireToken(newTestTokens())(handler).ServeHTTP(rec, req)
	return rec
}

func TestCreateEventSuccess(t *testing.T) {
	creds := newStubAccountsRepo()
	creds.seed(t, accounts.RoleAdmin, "admin@example.com", "Secur3P@ss")
	repo := &stubEventsRepo{}
	handler := newEventsHandler(t, creds, repo, &stubGenerator{})

	fields := defaultEventFields()
	fields["description"] = "An evening of talks and demos."
	req := authedRequest(t, multipartRequest(t, fields, "banner.png", pngHeader), "admin@example.com", "admin")

	rec := serveWithAuth(handler.Create, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "Event created successfully", body["message"])
	require.Equal(t, "/dashboard", body["redirect"])
	require.NotEmpty(t, body["event_id"])

	require.Len(t, repo.inserted, 1)
	require.Equal(t, base64.StdEncoding.EncodeToString(pngHeader), repo.inserted[0].Image)
	require.Equal(t, "admin@example.com", repo.inserted[0].CreatedBy)
	require.Equal(t, events.StatusActive, repo.inserted[0].Status)
}

func TestCreateEventRequiresToken(t *testing.T) {
	creds := newStubAccountsRepo()
	repo := &stubEventsRepo{}
	handler := newEventsHandler(t, creds, repo, &stubGenerator{})

	req := multipartRequest(t, defaultEventFields(), "banner.png", pngHeader)

	rec := serveWithAuth(handler.Create, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "Authorization token required", body["error"])
}

func TestCreateEventNonAdminRejected(t *testing.T) {
	creds := newStubAccountsRepo()
	creds.seed(t, accounts.RoleUser, "user@example.com", "Secur3P@ss")
	repo := &stubEventsRepo{}
	handler := newEventsHandler(t, creds, repo, &stubGenerator{})

	fields := defaultEventFields()
	fields["description"] = "d"
	req := authedRequest(t, multipartRequest(t, fields, "banner.png", pngHeader), "user@example.com", "user")

	rec := serveWithAuth(handler.Create, req)
	require.Equal(t, http.StatusForbidden, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "Admin access required", body["error"])
}

func TestCreateEventMissingImage(t *testing.T) {
	creds := newStubAccountsRepo()
	creds.seed(t, accounts.RoleAdmin, "admin@example.com", "Secur3P@ss")
	repo := &stubEventsRepo{}
	handler := newEventsHandler(t, creds, repo, &stubGenerator{})

	fields := defaultEventFields()
	fields["description"] = "d"
	req := authedRequest(t, multipartRequest(t, fields, "", nil), "admin@example.com", "admin")

	rec := serveWithAuth(handler.Create, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "All fields are required", body["error"])
}

func TestCreateEventGeneratedDescription(t *testing.T) {
	creds := newStubAccountsRepo()
	creds.seed(t, accounts.RoleAdmin, "admin@example.com", "Secur3P@ss")
	repo := &stubEventsRepo{}
	handler := newEventsHandler(t, creds, repo, &stubGenerator{description: "A lively community meetup."})

	fields := defaultEventFields()
	fields["generate_description"] = "true"
	req := authedRequest(t, multipartRequest(t, fields, "banner.png", pngHeader), "admin@example.com", "admin")

	rec := serveWithAuth(handler.Create, req)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, repo.inserted, 1)
	require.Equal(t, "A lively community meetup.", repo.inserted[0].Description)
}

func TestCreateEventGeneratorFailure(t *testing.T) {
	creds := newStubAccountsRepo()
	creds.seed(t, accounts.RoleAdmin, "admin@example.com", "Secur3P@ss")
	repo := &stubEventsRepo{}
	handler := newEventsHandler(t, creds, repo, &stubGenerator{err: errors.New("upstream unavailable")})

	fields := defaultEventFields()
	fields["generate_description"] = "true"
	req := authedRequest(t, multipartRequest(t, fields, "banner.png", pngHeader), "admin@example.com", "admin")

	rec := serveWithAuth(handler.Create, req)
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "Failed to generate description from AI service", body["error"])
}

func TestListEvents(t *testing.T) {
	creds := newStubAccountsRepo()
	creds.seed(t, accounts.RoleUser, "user@example.com", "Secur3P@ss")
	repo := &stubEventsRepo{}
	_, err := repo.Insert(context.Background(), events.CreateParams{
		ID:          "01JC0000000000000000000001",
		Title:       "Tech Meetup",
		Venue:       "Community Hall",
		StartDate:   "2026-09-01",
		StartTime:   "18:00",
		EndDate:     "2026-09-01",
		EndTime:     "21:00",
		Cost:        "250",
		Image:       base64.StdEncoding.EncodeToString(pngHeader),
		Description: "d",
		CreatedBy:   "admin@example.com",
		Status:      events.StatusActive,
	})
	require.NoError(t, err)

	handler := newEventsHandler(t, creds, repo, &stubGenerator{})
	req := authedRequest(t, httptest.NewRequest(http.MethodGet, "/api/get-events/", nil), "user@example.com", "user")

	rec := serveWithAuth(handler.List, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var body listEventsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, 1, body.TotalEvents)
	require.Equal(t, "user", body.UserRole)
	require.Len(t, body.Events, 1)
	require.Equal(t, "Tech Meetup", body.Events[0].Title)
	require.Equal(t, base64.StdEncoding.EncodeToString(pngHeader), body.Events[0].Image)
}

func TestListEventsUnknownCaller(t *testing.T) {
	creds := newStubAccountsRepo()
	repo := &stubEventsRepo{}
	handler := newEventsHandler(t, creds, repo, &stubGenerator{})

	req := authedRequest(t, httptest.NewRequest(http.MethodGet, "/api/get-events/", nil), "ghost@example.com", "user")

	rec := serveWithAuth(handler.List, req)
	require.Equal(t, http.StatusNotFound, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "User not found", body["error"])
}
