package reports

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/CivicIntel/CI-Backend/internal/db"
	"github.com/CivicIntel/CI-Backend/internal/utils"
	"github.com/go-chi/chi/v5"
)

// MediaVerifier checks that an object key was actually uploaded. Optional:
// when none is configured the ingest endpoint trusts client-supplied keys,
// matching the portal's original trust boundary.
type MediaVerifier interface {
	Exists(ctx context.Context, key string) (bool, error)
}

var mediaVerifier MediaVerifier

// SetMediaVerifier enables existence checks on submitted media keys.
func SetMediaVerifier(v MediaVerifier) {
	mediaVerifier = v
}

type submitRequest struct {
	Type      string   `json:"type"`
	Category  string   `json:"category"`
	Location  string   `json:"location"`
	Details   string   `json:"details"`
	MediaURLs []string `json:"mediaUrls"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// headerOrUnknown returns the header value, or the literal "unknown" when
// the header is absent. Stored verbatim for abuse triage.
func headerOrUnknown(r *http.Request, name string) string {
	if v := r.Header.Get(name); v != "" {
		return v
	}
	return "unknown"
}

// SubmitHandler ingests one finished report. Public: submissions are
// anonymous, the response carries no report identifier.
func SubmitHandler(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("reports: malformed submit payload: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	if req.Category == "" || req.Location == "" || req.Details == "" {
		writeError(w, http.StatusBadRequest, "category, location and details are required")
		return
	}
	if req.Type == "" {
		req.Type = TypeTip
	}

	if mediaVerifier != nil {
		for _, key := range req.MediaURLs {
			ok, err := mediaVerifier.Exists(r.Context(), key)
			if err != nil {
				log.Printf("reports: media verification failed for %q: %v", key, err)
				writeError(w, http.StatusInternalServerError, "Internal Server Error")
				return
			}
			if !ok {
				writeError(w, http.StatusBadRequest, "unknown media key")
				return
			}
		}
	}

	report := Report{
		ID:          utils.GenerateUUID(),
		ReportType:  req.Type,
		Category:    req.Category,
		Location:    req.Location,
		Description: req.Details, // "details" on the wire, "description" at rest
		MediaURLs:   req.MediaURLs,
		IPAddress:   headerOrUnknown(r, "X-Forwarded-For"),
		DeviceInfo:  headerOrUnknown(r, "User-Agent"),
		Status:      StatusPending,
		CreatedAt:   time.Now(),
	}
	if report.MediaURLs == nil {
		report.MediaURLs = []string{}
	}

	if err := db.DB.Create(&report).Error; err != nil {
		log.Printf("reports: insert failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// ListHandler returns every report, newest first. The dashboard filters
// client-side; the server always serves the full set.
func ListHandler(w http.ResponseWriter, r *http.Request) {
	var all []Report
	if err := db.DB.Order("created_at DESC").Find(&all).Error; err != nil {
		log.Printf("reports: list failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	writeJSON(w, http.StatusOK, all)
}

type statusRequest struct {
	Status Status `json:"status"`
}

// UpdateStatusHandler transitions one report's status. Any status is
// reachable from any other; only the status column is touched.
func UpdateStatusHandler(w http.ResponseWriter, r *http.Request) {
	reportID := chi.URLParam(r, "report_id")

	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !req.Status.Valid() {
		writeError(w, http.StatusBadRequest, "invalid status")
		return
	}

	res := db.DB.Model(&Report{}).Where("id = ?", reportID).Update("status", req.Status)
	if res.Error != nil {
		log.Printf("reports: status update failed for %s: %v", reportID, res.Error)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	if res.RowsAffected == 0 {
		writeError(w, http.StatusNotFound, "report not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
