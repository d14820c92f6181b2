package controllers

import (
	"bytes"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"simpleevents/internal/adapters/ics"
	"simpleevents/internal/delivery/http/helpers"
	"simpleevents/internal/domain"

	"github.com/google/uuid"
)

// EventRenderer renders a single event block.
type EventRenderer interface {
	Event(e *domain.Event, cols []domain.DisplayField) (string, error)
	EventText(e *domain.Event, cols []domain.DisplayField) (string, error)
}

// CreateEventRequest is the request body for POST /events. Every field is required.
type CreateEventRequest struct {
	Title      string  `json:"title"`
	Host       string  `json:"host"`
	Location   string  `json:"location"`
	Date       string  `json:"date"`
	Time       string  `json:"time"`
	Duration   float64 `json:"duration"`
	Visibility string  `json:"visibility"`
	TypeIDs    []int   `json:"type_ids"`
}

// Validate implements Validator. An event can only be published once it is complete.
func (c CreateEventRequest) Validate() []string {
	var errs []string
	for _, f := range []struct{ name, value string }{
		{"title", c.Title},
		{"host", c.Host},
		{"location", c.Location},
		{"date", c.Date},
		{"time", c.Time},
	} {
		if strings.TrimSpace(f.value) == "" {
			errs = append(errs, f.name+" is required")
		}
	}
	errs = append(errs, layoutErrors(&c.Date, &c.Time)...)
	if c.Duration < minDuration {
		errs = append(errs, "duration must be at least 0.5 hours")
	}
	if !domain.Visibility(c.Visibility).Valid() {
		errs = append(errs, "visibility must be public or private")
	}
	if len(c.TypeIDs) == 0 {
		errs = append(errs, "at least one event type is required")
	}
	return errs
}

func (c CreateEventRequest) input() domain.EventInput {
	return domain.EventInput{
		Title:      &c.Title,
		Host:       &c.Host,
		Location:   &c.Location,
		Date:       &c.Date,
		Time:       &c.Time,
		Duration:   &c.Duration,
		Visibility: &c.Visibility,
		TypeIDs:    c.TypeIDs,
	}
}

const minDuration = 0.5

// layoutErrors checks non-empty date and time values against the stored layouts.
func layoutErrors(date, clock *string) []string {
	var errs []string
	if date != nil && strings.TrimSpace(*date) != "" {
		if _, err := time.Parse(domain.DateLayout, *date); err != nil {
			errs = append(errs, "date must be YYYY-MM-DD")
		}
	}
	if clock != nil && strings.TrimSpace(*clock) != "" {
		if _, err := time.Parse(domain.TimeLayout, *clock); err != nil {
			errs = append(errs, "time must be HH:MM")
		}
	}
	return errs
}

// UpdateEventRequest is the request body for PATCH /events/{eventID}. Omitted fields are unchanged;
// type_ids, when present, replaces the event's types.
type UpdateEventRequest struct {
	Title      *string  `json:"title"`
	Host       *string  `json:"host"`
	Location   *string  `json:"location"`
	Date       *string  `json:"date"`
	Time       *string  `json:"time"`
	Duration   *float64 `json:"duration"`
	Visibility *string  `json:"visibility"`
	TypeIDs    []int    `json:"type_ids"`
}

// Validate implements Validator.
func (u UpdateEventRequest) Validate() []string {
	var errs []string
	if u.Title != nil && strings.TrimSpace(*u.Title) == "" {
		errs = append(errs, "title must not be empty")
	}
	errs = append(errs, layoutErrors(u.Date, u.Time)...)
	if u.Duration != nil && *u.Duration < minDuration {
		errs = append(errs, "duration must be at least 0.5 hours")
	}
	if u.Visibility != nil && !domain.Visibility(*u.Visibility).Valid() {
		errs = append(errs, "visibility must be public or private")
	}
	if u.TypeIDs != nil && len(u.TypeIDs) == 0 {
		errs = append(errs, "at least one event type is required")
	}
	return errs
}

func (u UpdateEventRequest) input() domain.EventInput {
	return domain.EventInput{
		Title:      u.Title,
		Host:       u.Host,
		Location:   u.Location,
		Date:       u.Date,
		Time:       u.Time,
		Duration:   u.Duration,
		Visibility: u.Visibility,
		TypeIDs:    u.TypeIDs,
	}
}

// EventSuccessResponse is the success response envelope for a single event (200, 201).
type EventSuccessResponse struct {
	Data  *domain.Event     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// GetEventResponse is the data payload for GET /events/{eventID}: the event and its display columns.
type GetEventResponse struct {
	Event   *domain.Event         `json:"event"`
	Display []domain.DisplayField `json:"display"`
}

// GetEventSuccessResponse is the success response envelope for GET /events/{eventID} (200).
type GetEventSuccessResponse struct {
	Data  GetEventResponse  `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ListEventsResponse is the data payload for GET /events (200).
type ListEventsResponse struct {
	Items      []*domain.Event        `json:"items"`
	Pagination helpers.PaginationMeta `json:"pagination"`
}

// ListEventsSuccessResponse is the success response envelope for GET /events (200).
type ListEventsSuccessResponse struct {
	Data  ListEventsResponse `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

// DeleteEventResponse is the data payload for DELETE /events/{eventID} (200).
type DeleteEventResponse struct {
	Status string `json:"status"`
}

// DeleteEventSuccessResponse is the success response envelope for DELETE /events/{eventID} (200).
type DeleteEventSuccessResponse struct {
	Data  DeleteEventResponse `json:"data"`
	Error *helpers.APIError   `json:"error"`
}

type EventController struct {
	Logger   *slog.Logger
	Service  domain.EventService
	Renderer EventRenderer
	Feed     ics.Feed
	Scope    helpers.ScopeFunc
}

func NewEventController(logger *slog.Logger, svc domain.EventService, renderer EventRenderer, feed ics.Feed, scope helpers.ScopeFunc) *EventController {
	return &EventController{
		Logger:   logger,
		Service:  svc,
		Renderer: renderer,
		Feed:     feed,
		Scope:    scope,
	}
}

// selection reads the listing parameters. The type filter is keyed by the taxonomy name.
func selection(r *http.Request) domain.Selection {
	q := r.URL.Query()
	return domain.Selection{
		Timing:     q.Get("timing"),
		Visibility: q.Get("visibility"),
		Type:       q.Get(domain.Taxonomy),
		OrderBy:    q.Get("orderby"),
		Order:      q.Get("order"),
	}
}

// ListEvents godoc
// @Summary List events
// @Description Lists events filtered by timing, visibility and event type. Without orderby, upcoming events sort soonest first and prior events most recent first.
// @Tags events
// @Produce json
// @Param timing query string false "upcoming or prior"
// @Param visibility query string false "public, private or both"
// @Param event-type query string false "Event type slug"
// @Param orderby query string false "title or a stored field (host, date, time, datetime, duration, location, visibility)"
// @Param order query string false "asc or desc"
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} controllers.ListEventsSuccessResponse "data contains items and pagination"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [get]
func (c *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	params := helpers.ParsePagination(r)
	events, total, err := c.Service.ListEvents(r.Context(), c.Scope(r), selection(r), params)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	if events == nil {
		events = []*domain.Event{}
	}
	meta := helpers.NewPaginationMeta(params.Page, params.PageSize, total)
	helpers.WriteJSONSuccess(w, http.StatusOK, ListEventsResponse{Items: events, Pagination: meta})
}

// CreateEvent godoc
// @Summary Create an event
// @Description Creates an event. All fields are required: duration is at least 0.5 hours and at least one event type is given. Date is YYYY-MM-DD and time is HH:MM.
// @Tags events
// @Accept json
// @Produce json
// @Param event body CreateEventRequest true "Event data"
// @Success 201 {object} controllers.EventSuccessResponse "data contains the created event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	event, err := c.Service.CreateEvent(r.Context(), req.input())
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, event)
}

// GetEvent godoc
// @Summary Get an event
// @Description Returns the event with its display columns formatted with the site's date and time formats.
// @Tags events
// @Produce json
// @Param eventID path string true "Event ID"
// @Success 200 {object} controllers.GetEventSuccessResponse "data contains event and display"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [get]
func (c *EventController) GetEvent(w http.ResponseWriter, r *http.Request) {
	event, ok := c.load(w, r)
	if !ok {
		return
	}
	display := c.Service.DisplayEvent(event, c.Scope(r).Formats)
	helpers.WriteJSONSuccess(w, http.StatusOK, GetEventResponse{Event: event, Display: display})
}

// EventHTML godoc
// @Summary Render an event
// @Description Returns the event block as HTML.
// @Tags events
// @Produce html
// @Param eventID path string true "Event ID"
// @Success 200 {string} string "HTML event block"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/html [get]
func (c *EventController) EventHTML(w http.ResponseWriter, r *http.Request) {
	event, ok := c.load(w, r)
	if !ok {
		return
	}
	body, err := c.Renderer.Event(event, c.Service.DisplayEvent(event, c.Scope(r).Formats))
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteHTML(w, http.StatusOK, body)
}

// UpdateEvent godoc
// @Summary Update an event
// @Description Updates the supplied fields. Omitted fields are unchanged; type_ids replaces the event's types.
// @Tags events
// @Accept json
// @Produce json
// @Param eventID path string true "Event ID"
// @Param body body UpdateEventRequest true "Fields to update (all optional)"
// @Success 200 {object} controllers.EventSuccessResponse "data contains the updated event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [patch]
func (c *EventController) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	eventID, ok := c.eventID(w, r)
	if !ok {
		return
	}
	var req UpdateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	event, err := c.Service.UpdateEvent(r.Context(), eventID, req.input())
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// DeleteEvent godoc
// @Summary Delete an event
// @Tags events
// @Produce json
// @Param eventID path string true "Event ID"
// @Success 200 {object} controllers.DeleteEventSuccessResponse "data contains status"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [delete]
func (c *EventController) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	eventID, ok := c.eventID(w, r)
	if !ok {
		return
	}
	if err := c.Service.DeleteEvent(r.Context(), eventID); err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, DeleteEventResponse{Status: "deleted"})
}

// FeedICS godoc
// @Summary iCalendar feed
// @Description Returns the listing as an iCalendar document. Accepts the same filters as GET /events, without pagination. Events without a usable date and time are left out.
// @Tags events
// @Produce text/calendar
// @Param timing query string false "upcoming or prior"
// @Param visibility query string false "public, private or both"
// @Param event-type query string false "Event type slug"
// @Param orderby query string false "title or a stored field"
// @Param order query string false "asc or desc"
// @Success 200 {string} string "text/calendar"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /feed.ics [get]
func (c *EventController) FeedICS(w http.ResponseWriter, r *http.Request) {
	scope := c.Scope(r)
	events, _, err := c.Service.ListEvents(r.Context(), scope, selection(r), domain.PaginationParams{})
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}

	feed := c.Feed
	feed.Location = scope.Location
	feed.Describe = func(e *domain.Event) string {
		text, err := c.Renderer.EventText(e, c.Service.DisplayEvent(e, scope.Formats))
		if err != nil {
			c.Logger.WarnContext(r.Context(), "describe event", "event_id", e.ID, "err", err)
			return ""
		}
		return text
	}

	var buf bytes.Buffer
	skipped, err := feed.Write(&buf, events, scope.Now)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	if len(skipped) > 0 {
		c.Logger.DebugContext(r.Context(), "feed skipped events", "event_ids", skipped)
	}
	helpers.WriteBody(w, http.StatusOK, helpers.ContentTypeCalendar, buf.Bytes())
}

// load fetches the event named by the eventID path value, writing the error response on failure.
func (c *EventController) load(w http.ResponseWriter, r *http.Request) (*domain.Event, bool) {
	eventID, ok := c.eventID(w, r)
	if !ok {
		return nil, false
	}
	event, err := c.Service.GetEvent(r.Context(), eventID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return nil, false
	}
	return event, true
}

// eventID reads the eventID path value. Event ids are UUIDs, so anything
// else names no event and is answered 404 without reaching the store.
func (c *EventController) eventID(w http.ResponseWriter, r *http.Request) (string, bool) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return "", false
	}
	if _, err := uuid.Parse(eventID); err != nil {
		writeServiceError(c.Logger, w, r, &domain.NotFoundError{ID: eventID})
		return "", false
	}
	return eventID, true
}
