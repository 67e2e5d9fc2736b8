package reports

import (
	"net/http"

	"github.com/CivicIntel/CI-Backend/internal/auth"
	"github.com/CivicIntel/CI-Backend/internal/middleware"
	"github.com/go-chi/chi/v5"
)

func SetupRoutes() http.Handler {
	r := chi.NewRouter()
	sessionFetcher := auth.SessionInfo{}

	// Public: anonymous citizen submissions.
	r.Post("/", SubmitHandler)

	// Triage routes require an officer session.
	r.Group(func(r chi.Router) {
		r.Use(middleware.SessionMiddleware(sessionFetcher))

		r.Get("/", ListHandler)
		r.Patch("/{report_id}/status", UpdateStatusHandler)
	})

	return r
}
