package controllers

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"simpleevents/internal/delivery/http/helpers"
	"simpleevents/internal/domain"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

var testNow = time.Date(2024, 2, 14, 9, 30, 0, 0, time.UTC)

type testFormats struct{}

func (testFormats) DateFormat() string { return "January 2, 2006" }
func (testFormats) TimeFormat() string { return "3:04 pm" }

func testScope(*http.Request) domain.RequestScope {
	return domain.NewRequestScope(testNow, time.UTC, testFormats{})
}

var _ helpers.ScopeFunc = testScope

// fakeEventService implements domain.EventService for handler tests.
type fakeEventService struct {
	err        error
	events     []*domain.Event
	total      int
	event      *domain.Event
	terms      []*domain.Term
	lastID     string
	lastInput  domain.EventInput
	lastSel    domain.Selection
	lastPage   domain.PaginationParams
	lastScope  domain.RequestScope
	deletedIDs []string
}

func (f *fakeEventService) GetEvent(_ context.Context, id string) (*domain.Event, error) {
	f.lastID = id
	if f.err != nil {
		return nil, f.err
	}
	return f.event, nil
}

func (f *fakeEventService) ListEvents(_ context.Context, scope domain.RequestScope, sel domain.Selection, page domain.PaginationParams) ([]*domain.Event, int, error) {
	f.lastScope, f.lastSel, f.lastPage = scope, sel, page
	if f.err != nil {
		return nil, 0, f.err
	}
	return f.events, f.total, nil
}

func (f *fakeEventService) CreateEvent(_ context.Context, in domain.EventInput) (*domain.Event, error) {
	f.lastInput = in
	if f.err != nil {
		return nil, f.err
	}
	return f.event, nil
}

func (f *fakeEventService) UpdateEvent(_ context.Context, id string, in domain.EventInput) (*domain.Event, error) {
	f.lastID, f.lastInput = id, in
	if f.err != nil {
		return nil, f.err
	}
	return f.event, nil
}

func (f *fakeEventService) DeleteEvent(_ context.Context, id string) error {
	if f.err != nil {
		return f.err
	}
	f.deletedIDs = append(f.deletedIDs, id)
	return nil
}

func (f *fakeEventService) DisplayEvent(e *domain.Event, _ domain.SiteFormats) []domain.DisplayField {
	return []domain.DisplayField{{Field: domain.FieldHost, Label: "Host", Value: e.Host}}
}

func (f *fakeEventService) ListTypes(context.Context) ([]*domain.Term, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.terms, nil
}

// fakeRenderer implements EventRenderer and CalendarRenderer.
type fakeRenderer struct {
	err error
}

func (f *fakeRenderer) Event(e *domain.Event, cols []domain.DisplayField) (string, error) {
	return "<div>" + e.Title + "</div>", f.err
}

func (f *fakeRenderer) EventText(e *domain.Event, cols []domain.DisplayField) (string, error) {
	return e.Title + " hosted by " + cols[0].Value, f.err
}

func (f *fakeRenderer) Calendar(m *domain.CalendarMonth) (string, error) {
	return "<table></table>", f.err
}

// fakeCalendarService implements domain.CalendarService.
type fakeCalendarService struct {
	err     error
	month   *domain.CalendarMonth
	lastReq domain.CalendarRequest
}

func (f *fakeCalendarService) Month(_ context.Context, _ domain.RequestScope, req domain.CalendarRequest) (*domain.CalendarMonth, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.month, nil
}
