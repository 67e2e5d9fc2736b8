package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/CivicIntel/CI-Backend/internal/auth"
	"github.com/CivicIntel/CI-Backend/internal/config"
	"github.com/CivicIntel/CI-Backend/internal/db"
	"github.com/CivicIntel/CI-Backend/internal/middleware"
	"github.com/CivicIntel/CI-Backend/internal/reports"
	"github.com/CivicIntel/CI-Backend/internal/storage"
	"github.com/CivicIntel/CI-Backend/internal/uploads"
	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
)

func RootHandler(w http.ResponseWriter, r *http.Request) {
	response := "Server is up!"
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintln(w, response)
}

// PortalConfigHandler serves the deployment's display strings so the
// front-end doesn't hardcode them.
func PortalConfigHandler(portal config.Portal) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(portal)
	}
}

func main() {
	_ = godotenv.Load(".env.local")
	db.Connect()

	port := os.Getenv("PORT")
	if port == "" {
		port = "5050"
	}

	portal, err := config.Load("portal.yaml")
	if err != nil {
		log.Fatal("Failed to load portal config: ", err)
	}

	store, err := storage.NewClient(storage.ConfigFromEnv())
	if err != nil {
		log.Fatal("Failed to init object storage: ", err)
	}

	auth.Init()
	reports.Init()
	uploads.Init(store)

	if os.Getenv("UPLOADS_VERIFY_MEDIA") == "true" {
		reports.SetMediaVerifier(store)
		log.Println("Media key verification enabled")
	}

	r := chi.NewRouter()
	r.Use(middleware.CORSMiddleware)
	r.Get("/", RootHandler)
	r.Get("/config", PortalConfigHandler(portal))

	r.Mount("/auth", auth.SetupRoutes())
	r.Mount("/reports", reports.SetupRoutes())
	r.Mount("/uploads", uploads.SetupRoutes())

	log.Printf("%s portal listening on port :%s...", portal.AgencyName, port)

	http.ListenAndServe("0.0.0.0:"+port, r)
}
