package uploads

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func SetupRoutes() http.Handler {
	r := chi.NewRouter()

	// Public: citizens request upload grants before submitting a report.
	r.Post("/url", UploadURLHandler)

	return r
}
