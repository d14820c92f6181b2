package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"simpleevents/internal/delivery/http/controllers"
	"simpleevents/internal/delivery/http/helpers"
)

// NewRouter initializes the HTTP router with all application routes
func NewRouter(eventController *controllers.EventController, calendarController *controllers.CalendarController, typeController *controllers.TypeController) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, _ *http.Request) {
		helpers.WriteBody(w, http.StatusOK, helpers.ContentTypeText, []byte("OK"))
	})

	// Events
	mux.HandleFunc("GET /events", eventController.ListEvents)
	mux.HandleFunc("POST /events", eventController.CreateEvent)
	mux.HandleFunc("GET /events/{eventID}", eventController.GetEvent)
	mux.HandleFunc("PATCH /events/{eventID}", eventController.UpdateEvent)
	mux.HandleFunc("DELETE /events/{eventID}", eventController.DeleteEvent)
	mux.HandleFunc("GET /events/{eventID}/html", eventController.EventHTML)
	mux.HandleFunc("GET /feed.ics", eventController.FeedICS)
	mux.HandleFunc("GET /event-types", typeController.ListTypes)

	// Calendar
	mux.HandleFunc("GET /calendar", calendarController.Month)
	mux.HandleFunc("GET /calendar/html", calendarController.MonthHTML)

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
