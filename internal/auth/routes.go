package auth

import (
	"net/http"

	"github.com/CivicIntel/CI-Backend/internal/middleware"
	"github.com/go-chi/chi/v5"
)

func SetupRoutes() http.Handler {
	r := chi.NewRouter()
	sessionFetcher := SessionInfo{}

	r.Post("/login", LoginHandler)

	r.Group(func(r chi.Router) {
		r.Use(middleware.SessionMiddleware(sessionFetcher))

		r.Post("/logout", LogoutHandler)
		r.Get("/me", MeHandler)

		// Officer provisioning is admin-only; there is no public signup.
		r.With(middleware.AdminMiddleware(sessionFetcher)).Post("/register", RegisterHandler)
	})

	return r
}
