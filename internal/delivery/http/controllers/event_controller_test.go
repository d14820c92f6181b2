package controllers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"simpleevents/internal/adapters/ics"
	"simpleevents/internal/delivery/http/helpers"
	"simpleevents/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEventController(svc *fakeEventService, renderer *fakeRenderer) *EventController {
	return NewEventController(testLogger, svc, renderer, ics.Feed{Name: "Events"}, testScope)
}

func decodeResponse(t *testing.T, rr *httptest.ResponseRecorder, data any) *helpers.APIError {
	t.Helper()
	var resp struct {
		Data  json.RawMessage   `json:"data"`
		Error *helpers.APIError `json:"error"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	if data != nil && resp.Error == nil {
		require.NoError(t, json.Unmarshal(resp.Data, data))
	}
	return resp.Error
}

const (
	testEventID    = "0b6f3c1e-5d7a-4c0e-9a51-2f1d8e7b6a43"
	unknownEventID = "5f0e2d4c-8b1a-4f3e-b7c6-9d2a1e0f3b58"
)

func sampleEvent() *domain.Event {
	return &domain.Event{
		ID:         testEventID,
		Title:      "Launch",
		Host:       "Ada",
		Location:   "Hall",
		Date:       "2024-03-01",
		Time:       "14:00",
		DateTime:   "2024-03-01 14:00",
		Duration:   1,
		Visibility: domain.VisibilityPublic,
		TypeIDs:    []int{3},
	}
}

func TestEventController_ListEvents(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		svcErr     error
		wantStatus int
		wantCode   string
		wantSel    domain.Selection
		wantPage   domain.PaginationParams
	}{
		{
			name:       "filters and pagination",
			query:      "?timing=upcoming&visibility=public&event-type=talk&orderby=title&order=desc&page=2&page_size=5",
			wantStatus: http.StatusOK,
			wantSel:    domain.Selection{Timing: "upcoming", Visibility: "public", Type: "talk", OrderBy: "title", Order: "desc"},
			wantPage:   domain.PaginationParams{Page: 2, PageSize: 5},
		},
		{
			name:       "defaults",
			wantStatus: http.StatusOK,
			wantPage:   domain.PaginationParams{Page: helpers.DefaultPage, PageSize: helpers.DefaultPageSize},
		},
		{
			name:       "invalid criteria",
			query:      "?timing=soon",
			svcErr:     domain.InvalidValue("timing", "soon"),
			wantStatus: http.StatusBadRequest,
			wantCode:   helpers.ErrCodeBadRequest,
			wantPage:   domain.PaginationParams{Page: helpers.DefaultPage, PageSize: helpers.DefaultPageSize},
			wantSel:    domain.Selection{Timing: "soon"},
		},
		{
			name:       "store failure",
			svcErr:     errors.New("list events: connection refused"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   helpers.ErrCodeInternalError,
			wantPage:   domain.PaginationParams{Page: helpers.DefaultPage, PageSize: helpers.DefaultPageSize},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeEventService{err: tt.svcErr, events: []*domain.Event{sampleEvent()}, total: 11}
			ctrl := newEventController(svc, &fakeRenderer{})
			req := httptest.NewRequest(http.MethodGet, "/events"+tt.query, nil)
			rr := httptest.NewRecorder()

			ctrl.ListEvents(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantSel, svc.lastSel)
			assert.Equal(t, tt.wantPage, svc.lastPage)
			assert.Equal(t, testNow, svc.lastScope.Now)

			var data ListEventsResponse
			apiErr := decodeResponse(t, rr, &data)
			if tt.wantCode != "" {
				require.NotNil(t, apiErr)
				assert.Equal(t, tt.wantCode, apiErr.Code)
				return
			}
			require.Nil(t, apiErr)
			require.Len(t, data.Items, 1)
			assert.Equal(t, testEventID, data.Items[0].ID)
			assert.Equal(t, 11, data.Pagination.Total)
			assert.Equal(t, (11+tt.wantPage.PageSize-1)/tt.wantPage.PageSize, data.Pagination.TotalPages)
		})
	}
}

func TestEventController_ListEventsEmpty(t *testing.T) {
	ctrl := newEventController(&fakeEventService{}, &fakeRenderer{})
	rr := httptest.NewRecorder()

	ctrl.ListEvents(rr, httptest.NewRequest(http.MethodGet, "/events", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"items":[]`)
}

func TestEventController_CreateEvent(t *testing.T) {
	valid := `{"title":"Launch","host":"Ada","location":"Hall","date":"2024-03-01","time":"14:00","duration":1.5,"visibility":"private","type_ids":[3]}`

	tests := []struct {
		name       string
		body       string
		svcErr     error
		wantStatus int
		wantCode   string
		wantSubstr string
	}{
		{"created", valid, nil, http.StatusCreated, "", ""},
		{"missing fields", `{"title":"Launch","duration":1,"visibility":"public","type_ids":[3]}`, nil, http.StatusBadRequest, helpers.ErrCodeBadRequest, "host is required"},
		{"short duration", strings.Replace(valid, "1.5", "0.25", 1), nil, http.StatusBadRequest, helpers.ErrCodeBadRequest, "at least 0.5 hours"},
		{"no types", strings.Replace(valid, "[3]", "[]", 1), nil, http.StatusBadRequest, helpers.ErrCodeBadRequest, "at least one event type"},
		{"bad visibility", strings.Replace(valid, "private", "secret", 1), nil, http.StatusBadRequest, helpers.ErrCodeBadRequest, "public or private"},
		{"bad date", strings.Replace(valid, "2024-03-01", "03/01/2024", 1), nil, http.StatusBadRequest, helpers.ErrCodeBadRequest, "date must be YYYY-MM-DD"},
		{"bad time", strings.Replace(valid, "14:00", "2pm", 1), nil, http.StatusBadRequest, helpers.ErrCodeBadRequest, "time must be HH:MM"},
		{"blank title", strings.Replace(valid, `"Launch"`, `"  "`, 1), nil, http.StatusBadRequest, helpers.ErrCodeBadRequest, "title is required"},
		{"unknown type", valid, domain.InvalidValue("type", 99), http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid type: 99"},
		{"store failure", valid, errors.New("create event: boom"), http.StatusInternalServerError, helpers.ErrCodeInternalError, "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeEventService{err: tt.svcErr, event: sampleEvent()}
			ctrl := newEventController(svc, &fakeRenderer{})
			req := httptest.NewRequest(http.MethodPost, "/events", bytes.NewBufferString(tt.body))
			rr := httptest.NewRecorder()

			ctrl.CreateEvent(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			var data domain.Event
			apiErr := decodeResponse(t, rr, &data)
			if tt.wantCode != "" {
				require.NotNil(t, apiErr)
				assert.Equal(t, tt.wantCode, apiErr.Code)
				assert.Contains(t, apiErr.Message, tt.wantSubstr)
				return
			}
			assert.Equal(t, testEventID, data.ID)
			require.NotNil(t, svc.lastInput.Title)
			assert.Equal(t, "Launch", *svc.lastInput.Title)
			assert.Equal(t, 1.5, *svc.lastInput.Duration)
			assert.Equal(t, "private", *svc.lastInput.Visibility)
			assert.Equal(t, []int{3}, svc.lastInput.TypeIDs)
		})
	}
}

func TestEventController_GetEvent(t *testing.T) {
	tests := []struct {
		name       string
		eventID    string
		svcErr     error
		wantStatus int
		wantCode   string
	}{
		{"found", testEventID, nil, http.StatusOK, ""},
		{"not found", unknownEventID, &domain.NotFoundError{ID: unknownEventID}, http.StatusNotFound, helpers.ErrCodeNotFound},
		{"missing id", "", nil, http.StatusBadRequest, helpers.ErrCodeBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeEventService{err: tt.svcErr, event: sampleEvent()}
			ctrl := newEventController(svc, &fakeRenderer{})
			req := httptest.NewRequest(http.MethodGet, "/events/"+tt.eventID, nil)
			req.SetPathValue("eventID", tt.eventID)
			rr := httptest.NewRecorder()

			ctrl.GetEvent(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			var data GetEventResponse
			apiErr := decodeResponse(t, rr, &data)
			if tt.wantCode != "" {
				require.NotNil(t, apiErr)
				assert.Equal(t, tt.wantCode, apiErr.Code)
				return
			}
			assert.Equal(t, tt.eventID, svc.lastID)
			assert.Equal(t, "Launch", data.Event.Title)
			assert.Equal(t, []domain.DisplayField{{Field: "host", Label: "Host", Value: "Ada"}}, data.Display)
		})
	}
}

func TestEventController_EventHTML(t *testing.T) {
	svc := &fakeEventService{event: sampleEvent()}
	ctrl := newEventController(svc, &fakeRenderer{})
	req := httptest.NewRequest(http.MethodGet, "/events/"+testEventID+"/html", nil)
	req.SetPathValue("eventID", testEventID)
	rr := httptest.NewRecorder()

	ctrl.EventHTML(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/html; charset=utf-8", rr.Header().Get("Content-Type"))
	assert.Equal(t, "<div>Launch</div>", rr.Body.String())

	ctrl = newEventController(svc, &fakeRenderer{err: errors.New("template: boom")})
	rr = httptest.NewRecorder()
	ctrl.EventHTML(rr, req)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestEventController_UpdateEvent(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		svcErr     error
		wantStatus int
		wantCode   string
		check      func(t *testing.T, in domain.EventInput)
	}{
		{
			name:       "partial",
			body:       `{"host":"Grace"}`,
			wantStatus: http.StatusOK,
			check: func(t *testing.T, in domain.EventInput) {
				require.NotNil(t, in.Host)
				assert.Equal(t, "Grace", *in.Host)
				assert.Nil(t, in.Title)
				assert.Nil(t, in.Duration)
				assert.Nil(t, in.TypeIDs)
			},
		},
		{
			name:       "replace types",
			body:       `{"type_ids":[3,7]}`,
			wantStatus: http.StatusOK,
			check: func(t *testing.T, in domain.EventInput) {
				assert.Equal(t, []int{3, 7}, in.TypeIDs)
			},
		},
		{"empty types", `{"type_ids":[]}`, nil, http.StatusBadRequest, helpers.ErrCodeBadRequest, nil},
		{"short duration", `{"duration":0.2}`, nil, http.StatusBadRequest, helpers.ErrCodeBadRequest, nil},
		{"bad visibility", `{"visibility":"hidden"}`, nil, http.StatusBadRequest, helpers.ErrCodeBadRequest, nil},
		{"unknown field", `{"id":"e2"}`, nil, http.StatusBadRequest, helpers.ErrCodeBadRequest, nil},
		{"bad date", `{"date":"yesterday"}`, nil, http.StatusBadRequest, helpers.ErrCodeBadRequest, nil},
		{"bad time", `{"time":"25:00"}`, nil, http.StatusBadRequest, helpers.ErrCodeBadRequest, nil},
		{"unknown type", `{"type_ids":[99]}`, domain.InvalidValue("type", 99), http.StatusBadRequest, helpers.ErrCodeBadRequest, nil},
		{"not found", `{"host":"Grace"}`, &domain.NotFoundError{ID: testEventID}, http.StatusNotFound, helpers.ErrCodeNotFound, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeEventService{err: tt.svcErr, event: sampleEvent()}
			ctrl := newEventController(svc, &fakeRenderer{})
			req := httptest.NewRequest(http.MethodPatch, "/events/"+testEventID, bytes.NewBufferString(tt.body))
			req.SetPathValue("eventID", testEventID)
			rr := httptest.NewRecorder()

			ctrl.UpdateEvent(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			apiErr := decodeResponse(t, rr, nil)
			if tt.wantCode != "" {
				require.NotNil(t, apiErr)
				assert.Equal(t, tt.wantCode, apiErr.Code)
				return
			}
			assert.Equal(t, testEventID, svc.lastID)
			tt.check(t, svc.lastInput)
		})
	}
}

func TestEventController_DeleteEvent(t *testing.T) {
	svc := &fakeEventService{}
	ctrl := newEventController(svc, &fakeRenderer{})
	req := httptest.NewRequest(http.MethodDelete, "/events/"+testEventID, nil)
	req.SetPathValue("eventID", testEventID)
	rr := httptest.NewRecorder()

	ctrl.DeleteEvent(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, []string{testEventID}, svc.deletedIDs)
	var data DeleteEventResponse
	require.Nil(t, decodeResponse(t, rr, &data))
	assert.Equal(t, "deleted", data.Status)

	svc.err = &domain.NotFoundError{ID: testEventID}
	rr = httptest.NewRecorder()
	ctrl.DeleteEvent(rr, req)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestEventController_MalformedEventID(t *testing.T) {
	tests := []struct {
		name    string
		method  string
		eventID string
		body    string
		call    func(ctrl *EventController, w http.ResponseWriter, r *http.Request)
	}{
		{"get", http.MethodGet, "abc", "", (*EventController).GetEvent},
		{"html", http.MethodGet, "abc", "", (*EventController).EventHTML},
		{"patch", http.MethodPatch, "abc", `{"host":"Grace"}`, (*EventController).UpdateEvent},
		{"delete", http.MethodDelete, "abc", "", (*EventController).DeleteEvent},
		{"numeric id", http.MethodGet, "42", "", (*EventController).GetEvent},
		{"truncated uuid", http.MethodDelete, testEventID[:20], "", (*EventController).DeleteEvent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeEventService{event: sampleEvent()}
			ctrl := newEventController(svc, &fakeRenderer{})
			req := httptest.NewRequest(tt.method, "/events/"+tt.eventID, bytes.NewBufferString(tt.body))
			req.SetPathValue("eventID", tt.eventID)
			rr := httptest.NewRecorder()

			tt.call(ctrl, rr, req)

			assert.Equal(t, http.StatusNotFound, rr.Code)
			apiErr := decodeResponse(t, rr, nil)
			require.NotNil(t, apiErr)
			assert.Equal(t, helpers.ErrCodeNotFound, apiErr.Code)
			assert.Equal(t, "event "+tt.eventID+" not found", apiErr.Message)
			assert.Empty(t, svc.lastID)
			assert.Empty(t, svc.deletedIDs)
		})
	}
}

func TestEventController_FeedICS(t *testing.T) {
	undated := &domain.Event{ID: "e2", Title: "Someday", DateTime: domain.Missing}
	svc := &fakeEventService{events: []*domain.Event{sampleEvent(), undated}, total: 2}
	ctrl := newEventController(svc, &fakeRenderer{})
	req := httptest.NewRequest(http.MethodGet, "/feed.ics?timing=upcoming&page=3", nil)
	rr := httptest.NewRecorder()

	ctrl.FeedICS(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/calendar; charset=utf-8", rr.Header().Get("Content-Type"))
	assert.Equal(t, domain.PaginationParams{}, svc.lastPage)
	assert.Equal(t, "upcoming", svc.lastSel.Timing)

	body := rr.Body.String()
	assert.Contains(t, body, "BEGIN:VCALENDAR")
	assert.Contains(t, body, "UID:e1@simple-event")
	assert.Contains(t, body, "SUMMARY:Launch")
	assert.Contains(t, body, "Launch hosted by Ada")
	assert.NotContains(t, body, "Someday")

	svc.err = domain.InvalidValue("timing", "soon")
	rr = httptest.NewRecorder()
	ctrl.FeedICS(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestTypeController_ListTypes(t *testing.T) {
	svc := &fakeEventService{terms: []*domain.Term{{ID: 3, Slug: "talk", Name: "Talk"}}}
	ctrl := NewTypeController(testLogger, svc)
	rr := httptest.NewRecorder()

	ctrl.ListTypes(rr, httptest.NewRequest(http.MethodGet, "/event-types", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var data []*domain.Term
	require.Nil(t, decodeResponse(t, rr, &data))
	require.Len(t, data, 1)
	assert.Equal(t, "talk", data[0].Slug)

	svc.err = errors.New("list event types: boom")
	rr = httptest.NewRecorder()
	ctrl.ListTypes(rr, httptest.NewRequest(http.MethodGet, "/event-types", nil))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
