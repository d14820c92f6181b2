package http

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"simpleevents/internal/adapters/ics"
	"simpleevents/internal/adapters/render"
	"simpleevents/internal/delivery/http/controllers"
	"simpleevents/internal/delivery/http/helpers"
	"simpleevents/internal/domain"
	"simpleevents/internal/repository/memory"
	"simpleevents/internal/services"
)

type siteFormats struct{}

func (siteFormats) DateFormat() string { return "January 2, 2006" }
func (siteFormats) TimeFormat() string { return "3:04 pm" }

// newTestRouter wires the real services over the in-memory store.
func newTestRouter(t *testing.T) *http.ServeMux {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	terms := memory.NewTermRepository(domain.Taxonomy, []*domain.Term{
		{ID: 3, Slug: "talk", Name: "Talk"},
		{ID: 7, Slug: "social", Name: "Social"},
	})
	events := memory.NewEventRepository(terms)
	eventSvc := services.NewEventService(events, terms, time.Second)
	calendarSvc := services.NewCalendarService(events, terms, time.Second)

	now := time.Date(2024, 2, 14, 9, 0, 0, 0, time.UTC)
	scope := helpers.NewScopeFunc(func() time.Time { return now }, time.UTC, siteFormats{})
	renderer := render.NewRenderer("/events/")

	return NewRouter(
		controllers.NewEventController(logger, eventSvc, renderer, ics.Feed{Name: "Events"}, scope),
		controllers.NewCalendarController(logger, calendarSvc, renderer, scope),
		controllers.NewTypeController(logger, eventSvc),
	)
}

func serve(mux *http.ServeMux, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequestWithContext(context.Background(), method, target, bytes.NewBufferString(body))
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	return rr
}

func TestRouter_EventLifecycle(t *testing.T) {
	mux := newTestRouter(t)

	rr := serve(mux, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "OK", rr.Body.String())

	rr = serve(mux, http.MethodPost, "/events",
		`{"title":"Launch","host":"Ada","location":"Hall","date":"2024-02-20","time":"14:00","duration":1,"visibility":"public","type_ids":[3]}`)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	assert.Contains(t, rr.Body.String(), `"datetime":"2024-02-20 14:00"`)

	rr = serve(mux, http.MethodGet, "/events?timing=upcoming&event-type=talk", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"title":"Launch"`)
	assert.Contains(t, rr.Body.String(), `"total":1`)

	rr = serve(mux, http.MethodGet, "/events?timing=prior", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"total":0`)

	rr = serve(mux, http.MethodGet, "/calendar?month=2&year=2024", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"date":"2024-02-20"`)

	rr = serve(mux, http.MethodGet, "/calendar/html", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "February 2024")
	assert.Contains(t, rr.Body.String(), "Launch")

	rr = serve(mux, http.MethodGet, "/feed.ics", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "SUMMARY:Launch")

	rr = serve(mux, http.MethodGet, "/event-types", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"slug":"social"`)
}

func TestRouter_Errors(t *testing.T) {
	mux := newTestRouter(t)

	tests := []struct {
		name       string
		method     string
		target     string
		body       string
		wantStatus int
	}{
		{"unknown event", http.MethodGet, "/events/missing", "", http.StatusNotFound},
		{"unknown event html", http.MethodGet, "/events/missing/html", "", http.StatusNotFound},
		{"delete unknown", http.MethodDelete, "/events/missing", "", http.StatusNotFound},
		{"patch unknown", http.MethodPatch, "/events/missing", `{"host":"Grace"}`, http.StatusNotFound},
		{"unknown uuid", http.MethodGet, "/events/00000000-0000-4000-8000-000000000000", "", http.StatusNotFound},
		{"bad timing", http.MethodGet, "/events?timing=soon", "", http.StatusBadRequest},
		{"bad order", http.MethodGet, "/events?order=sideways", "", http.StatusBadRequest},
		{"bad month", http.MethodGet, "/calendar?month=13", "", http.StatusBadRequest},
		{"unknown type", http.MethodGet, "/calendar?type=99", "", http.StatusBadRequest},
		{"wrong method", http.MethodPut, "/events", "", http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := serve(mux, tt.method, tt.target, tt.body)
			assert.Equal(t, tt.wantStatus, rr.Code, rr.Body.String())
		})
	}
}
