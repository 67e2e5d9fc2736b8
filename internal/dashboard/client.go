// Package dashboard is the triage console's data layer: it reads the report
// feed through the authenticated API, filters it client-side, derives public
// evidence URLs from stored keys, and applies status transitions
// optimistically with revert-on-error reconciliation.
package dashboard

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/CivicIntel/CI-Backend/internal/reports"
)

// ErrUnauthenticated means there is no active session; callers redirect to
// the login view instead of rendering data.
var ErrUnauthenticated = errors.New("dashboard: not authenticated")

// Client talks to the portal API with an officer session. HTTPClient should
// carry a cookie jar holding the session_id cookie.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

// FetchReports returns the full report feed, newest first (server ordering).
func (c *Client) FetchReports(ctx context.Context) ([]reports.Report, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		strings.TrimRight(c.BaseURL, "/")+"/reports", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, ErrUnauthenticated
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("dashboard: fetch reports: %s", resp.Status)
	}

	var all []reports.Report
	if err := json.NewDecoder(resp.Body).Decode(&all); err != nil {
		return nil, err
	}
	return all, nil
}

// UpdateStatus persists a status transition for one report.
func (c *Client) UpdateStatus(ctx context.Context, id string, status reports.Status) error {
	body, _ := json.Marshal(map[string]reports.Status{"status": status})

	req, err := http.NewRequestWithContext(ctx, http.MethodPatch,
		strings.TrimRight(c.BaseURL, "/")+"/reports/"+id+"/status", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthenticated
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("dashboard: update status: %s", resp.Status)
	}
	return nil
}
