package reports_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/CivicIntel/CI-Backend/internal/auth"
	"github.com/CivicIntel/CI-Backend/internal/db"
	"github.com/CivicIntel/CI-Backend/internal/reports"
	"github.com/CivicIntel/CI-Backend/internal/utils"
	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
)

var (
	dbAvailable bool
	testServer  *httptest.Server
)

func TestMain(m *testing.M) {
	// Load .env.local relative to the repo root (two directories up).
	_ = godotenv.Load("../../.env.local")

	if os.Getenv("DATABASE_URL") == "" {
		// No database available — integration tests skip gracefully.
		os.Exit(m.Run())
	}

	db.Connect()
	dbAvailable = true

	auth.Init()
	reports.Init()

	r := chi.NewRouter()
	r.Mount("/reports", reports.SetupRoutes())

	testServer = httptest.NewServer(r)
	defer testServer.Close()

	os.Exit(m.Run())
}

func requireDB(t *testing.T) {
	t.Helper()
	if !dbAvailable {
		t.Skip("skipping integration test (requires DATABASE_URL)")
	}
}

// officerSession inserts an officer plus a live session row and returns the
// session cookie value. Rows are cleaned up with the test.
func officerSession(t *testing.T) string {
	t.Helper()

	officer := auth.Officer{
		UserID:   utils.GenerateUUID(),
		Username: fmt.Sprintf("officer_%s", utils.GenerateUUID()[:8]),
	}
	if err := db.DB.Create(&officer).Error; err != nil {
		t.Fatalf("create officer: %v", err)
	}

	session := auth.Session{
		SessionID: utils.GenerateUUID(),
		UserID:    officer.UserID,
		ExpiresAt: time.Now().Add(time.Hour),
	}
	if err := db.DB.Create(&session).Error; err != nil {
		t.Fatalf("create session: %v", err)
	}

	t.Cleanup(func() {
		db.DB.Where("session_id = ?", session.SessionID).Delete(&auth.Session{})
		db.DB.Where("user_id = ?", officer.UserID).Delete(&auth.Officer{})
	})

	return session.SessionID
}

func submitJSON(t *testing.T, payload map[string]any) *http.Response {
	t.Helper()
	body, _ := json.Marshal(payload)
	resp, err := http.Post(testServer.URL+"/reports", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST /reports: %v", err)
	}
	return resp
}

func deleteReportsByLocation(t *testing.T, location string) {
	t.Helper()
	t.Cleanup(func() {
		db.DB.Where("location = ?", location).Delete(&reports.Report{})
	})
}

// TestSubmit_CreatesPendingRow covers the canonical example: a tip with no
// media yields {"success": true} and exactly one pending row.
func TestSubmit_CreatesPendingRow(t *testing.T) {
	requireDB(t)

	location := "Ho Market " + utils.GenerateUUID()[:8]
	deleteReportsByLocation(t, location)

	resp := submitJSON(t, map[string]any{
		"type":      "tip",
		"category":  "drugs",
		"location":  location,
		"details":   "saw a deal",
		"mediaUrls": []string{},
	})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var ack struct {
		Success bool `json:"success"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&ack); err != nil || !ack.Success {
		t.Fatalf("expected {\"success\": true}, got err=%v success=%v", err, ack.Success)
	}

	var rows []reports.Report
	if err := db.DB.Where("location = ?", location).Find(&rows).Error; err != nil {
		t.Fatalf("query rows: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected exactly one row, got %d", len(rows))
	}
	row := rows[0]
	if row.Status != reports.StatusPending {
		t.Errorf("status = %q, want pending", row.Status)
	}
	if len(row.MediaURLs) != 0 {
		t.Errorf("media_urls = %v, want empty", row.MediaURLs)
	}
	if row.IPAddress == "" || row.DeviceInfo == "" {
		t.Errorf("request metadata not captured: ip=%q device=%q", row.IPAddress, row.DeviceInfo)
	}
}

// TestList_NewestFirstAndAuthed verifies the triage feed ordering and that
// the list is unreachable without a session.
func TestList_NewestFirstAndAuthed(t *testing.T) {
	requireDB(t)

	location := "Order Check " + utils.GenerateUUID()[:8]
	deleteReportsByLocation(t, location)

	for _, details := range []string{"first", "second"} {
		resp := submitJSON(t, map[string]any{
			"type": "report", "category": "traffic",
			"location": location, "details": details,
		})
		resp.Body.Close()
		time.Sleep(20 * time.Millisecond) // distinct created_at
	}

	// Unauthenticated list must be rejected.
	resp, err := http.Get(testServer.URL + "/reports")
	if err != nil {
		t.Fatalf("GET /reports: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("unauthenticated list: expected 401, got %d", resp.StatusCode)
	}

	sessionID := officerSession(t)
	req, _ := http.NewRequest(http.MethodGet, testServer.URL+"/reports", nil)
	req.AddCookie(&http.Cookie{Name: "session_id", Value: sessionID})
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET /reports: %v", err)
	}
	defer resp.Body.Close()

	var all []reports.Report
	if err := json.NewDecoder(resp.Body).Decode(&all); err != nil {
		t.Fatalf("decode list: %v", err)
	}

	var mine []reports.Report
	for _, r := range all {
		if r.Location == location {
			mine = append(mine, r)
		}
	}
	if len(mine) != 2 {
		t.Fatalf("expected 2 rows for %s, got %d", location, len(mine))
	}
	if mine[0].Description != "second" || mine[1].Description != "first" {
		t.Errorf("feed not newest-first: got %q then %q", mine[0].Description, mine[1].Description)
	}
}

// TestUpdateStatus_Roundtrip moves a report through a transition and checks
// a fresh fetch reflects the persisted value.
func TestUpdateStatus_Roundtrip(t *testing.T) {
	requireDB(t)

	location := "Transition " + utils.GenerateUUID()[:8]
	deleteReportsByLocation(t, location)

	resp := submitJSON(t, map[string]any{
		"type": "tip", "category": "scam",
		"location": location, "details": "phone scam ring",
	})
	resp.Body.Close()

	var row reports.Report
	if err := db.DB.First(&row, "location = ?", location).Error; err != nil {
		t.Fatalf("fetch row: %v", err)
	}

	sessionID := officerSession(t)
	body := bytes.NewReader([]byte(`{"status":"investigating"}`))
	req, _ := http.NewRequest(http.MethodPatch,
		testServer.URL+"/reports/"+row.ID+"/status", body)
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(&http.Cookie{Name: "session_id", Value: sessionID})

	patchResp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("PATCH status: %v", err)
	}
	patchResp.Body.Close()
	if patchResp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", patchResp.StatusCode)
	}

	var fresh reports.Report
	if err := db.DB.First(&fresh, "id = ?", row.ID).Error; err != nil {
		t.Fatalf("refetch: %v", err)
	}
	if fresh.Status != reports.StatusInvestigating {
		t.Errorf("persisted status = %q, want investigating", fresh.Status)
	}
}

// TestUpdateStatus_UnknownReport expects 404 for a transition on an id that
// does not exist.
func TestUpdateStatus_UnknownReport(t *testing.T) {
	requireDB(t)

	sessionID := officerSession(t)
	body := bytes.NewReader([]byte(`{"status":"closed"}`))
	req, _ := http.NewRequest(http.MethodPatch,
		testServer.URL+"/reports/"+utils.GenerateUUID()+"/status", body)
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(&http.Cookie{Name: "session_id", Value: sessionID})

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("PATCH status: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404, got %d", resp.StatusCode)
	}
}
