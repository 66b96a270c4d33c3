// Package http wires the JSON delivery surface: routes, controllers,
// middleware, and the swagger UI.
package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"sharedcalendar/internal/delivery/http/controllers"
	"sharedcalendar/internal/delivery/http/middleware"
)

// NewRouter builds the application handler with request-ID tagging and
// request logging applied to every route.
func NewRouter(calendarController *controllers.CalendarController, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /accounts", calendarController.RegisterAccount)
	mux.HandleFunc("GET /accounts", calendarController.ListAccounts)
	mux.HandleFunc("GET /accounts/{accountName}/events", calendarController.ListAccountEvents)

	mux.HandleFunc("POST /events", calendarController.CreateEvent)
	mux.HandleFunc("GET /events/{promoter}/{eventName}", calendarController.EventDetails)
	mux.HandleFunc("POST /events/{promoter}/{eventName}/invitations", calendarController.Invite)
	mux.HandleFunc("POST /events/{promoter}/{eventName}/responses", calendarController.Respond)

	mux.HandleFunc("GET /topics", calendarController.SearchTopics)

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return middleware.RequestID(middleware.Logging(logger, mux))
}
