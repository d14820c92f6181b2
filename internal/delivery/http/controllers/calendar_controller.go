package controllers

import (
	"log/slog"
	"net/http"

	"simpleevents/internal/delivery/http/helpers"
	"simpleevents/internal/domain"
)

// CalendarRenderer renders a populated month grid.
type CalendarRenderer interface {
	Calendar(m *domain.CalendarMonth) (string, error)
}

// CalendarSuccessResponse is the success response envelope for GET /calendar (200).
type CalendarSuccessResponse struct {
	Data  *domain.CalendarMonth `json:"data"`
	Error *helpers.APIError     `json:"error"`
}

type CalendarController struct {
	Logger   *slog.Logger
	Service  domain.CalendarService
	Renderer CalendarRenderer
	Scope    helpers.ScopeFunc
}

func NewCalendarController(logger *slog.Logger, svc domain.CalendarService, renderer CalendarRenderer, scope helpers.ScopeFunc) *CalendarController {
	return &CalendarController{
		Logger:   logger,
		Service:  svc,
		Renderer: renderer,
		Scope:    scope,
	}
}

// calendarRequest reads month, year, type and visibility. Month and year default
// to the request's current month; type defaults to all types, visibility to both.
func calendarRequest(r *http.Request, scope domain.RequestScope) (domain.CalendarRequest, error) {
	q := r.URL.Query()
	req := domain.CalendarRequest{Visibility: q.Get("visibility")}
	if req.Visibility == "" {
		req.Visibility = string(domain.VisibilityFilterBoth)
	}
	var err error
	if req.Month, err = helpers.QueryInt(r, "month", int(scope.Now.Month())); err != nil {
		return domain.CalendarRequest{}, err
	}
	if req.Year, err = helpers.QueryInt(r, "year", scope.Now.Year()); err != nil {
		return domain.CalendarRequest{}, err
	}
	if req.Type, err = helpers.QueryInt(r, "type", domain.AllTypes); err != nil {
		return domain.CalendarRequest{}, err
	}
	return req, nil
}

// Month godoc
// @Summary Month calendar
// @Description Returns the Sunday-first grid for a month with each day's event ids, and the events keyed by id.
// @Tags calendar
// @Produce json
// @Param month query int false "Month 1-12 (default current)"
// @Param year query int false "Year (default current; two-digit years are read as 20YY)"
// @Param type query int false "Event type id (default 0, all types)"
// @Param visibility query string false "public, private or both (default both)"
// @Success 200 {object} controllers.CalendarSuccessResponse "data contains grid and events"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /calendar [get]
func (c *CalendarController) Month(w http.ResponseWriter, r *http.Request) {
	month, ok := c.month(w, r)
	if !ok {
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, month)
}

// MonthHTML godoc
// @Summary Render a month calendar
// @Description Returns the month calendar as an HTML table. Accepts the same parameters as GET /calendar.
// @Tags calendar
// @Produce html
// @Param month query int false "Month 1-12 (default current)"
// @Param year query int false "Year (default current)"
// @Param type query int false "Event type id (default 0, all types)"
// @Param visibility query string false "public, private or both (default both)"
// @Success 200 {string} string "HTML calendar"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /calendar/html [get]
func (c *CalendarController) MonthHTML(w http.ResponseWriter, r *http.Request) {
	month, ok := c.month(w, r)
	if !ok {
		return
	}
	body, err := c.Renderer.Calendar(month)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteHTML(w, http.StatusOK, body)
}

func (c *CalendarController) month(w http.ResponseWriter, r *http.Request) (*domain.CalendarMonth, bool) {
	scope := c.Scope(r)
	req, err := calendarRequest(r, scope)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return nil, false
	}
	month, err := c.Service.Month(r.Context(), scope, req)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return nil, false
	}
	if len(month.Unplaced) > 0 {
		c.Logger.DebugContext(r.Context(), "events without a usable datetime", "event_ids", month.Unplaced)
	}
	return month, true
}
