package uploads

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/CivicIntel/CI-Backend/internal/storage"
)

// Issuer mints a signed upload URL and the object key it is scoped to.
type Issuer interface {
	IssueUploadURL(ctx context.Context, filename, contentType string) (storage.SignedUpload, error)
}

var issuer Issuer

// Init wires the object storage client used to presign upload URLs.
func Init(i Issuer) {
	issuer = i
}

type uploadURLRequest struct {
	Filename string `json:"filename"`
	FileType string `json:"fileType"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// UploadURLHandler hands a submitter a single-use upload grant: a fresh
// object key plus a presigned PUT URL valid for 60 seconds. No state is
// created here; the object exists only after the client PUTs the bytes.
func UploadURLHandler(w http.ResponseWriter, r *http.Request) {
	var req uploadURLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if req.Filename == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "filename is required"})
		return
	}

	signed, err := issuer.IssueUploadURL(r.Context(), req.Filename, req.FileType)
	if err != nil {
		log.Printf("uploads: presign failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to create upload link"})
		return
	}

	writeJSON(w, http.StatusOK, signed)
}
