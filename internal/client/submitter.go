// Package client orchestrates one report submission against the portal API:
// for each file, request a signed URL then PUT the bytes directly to object
// storage, then submit the form fields plus collected keys to the ingest
// endpoint. Uploads are strictly sequential by design; one failure aborts
// the whole submission with no partial report and no cleanup of objects
// already uploaded.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

type Client struct {
	// BaseURL is the portal API root, e.g. "https://portal.example.gov".
	BaseURL string
	// HTTPClient defaults to http.DefaultClient.
	HTTPClient *http.Client
}

// Form is the citizen-entered portion of a submission.
type Form struct {
	Type     string
	Category string
	Location string
	Details  string
}

func (f Form) validate() error {
	if f.Category == "" {
		return errors.New("client: category is required")
	}
	if f.Location == "" {
		return errors.New("client: location is required")
	}
	if f.Details == "" {
		return errors.New("client: details are required")
	}
	return nil
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

// step is one unit of the submission pipeline. Steps run in order under a
// single ctx, so the whole submission cancels as one unit of work.
type step struct {
	name string
	run  func(ctx context.Context) error
}

// Submit runs the full pipeline for one report: (issue URL, PUT bytes) per
// file in order, then the ingest call. On any error the submission aborts:
// no report row is created, and already-uploaded objects are left behind
// (accepted tradeoff). The caller's selections stay intact for a retry.
func (c *Client) Submit(ctx context.Context, form Form, files []Attachment) error {
	if err := form.validate(); err != nil {
		return err
	}

	keys := make([]string, 0, len(files))

	steps := make([]step, 0, len(files)+1)
	for _, f := range files {
		f := f
		steps = append(steps, step{
			name: "upload " + f.Filename,
			run: func(ctx context.Context) error {
				signed, err := c.requestUploadURL(ctx, f.Filename, f.ContentType)
				if err != nil {
					return err
				}
				if err := c.putObject(ctx, signed.url, f); err != nil {
					return err
				}
				keys = append(keys, signed.key)
				return nil
			},
		})
	}
	steps = append(steps, step{
		name: "submit report",
		run: func(ctx context.Context) error {
			return c.submitReport(ctx, form, keys)
		},
	})

	for _, s := range steps {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("client: %s: %w", s.name, err)
		}
		if err := s.run(ctx); err != nil {
			return fmt.Errorf("client: %s: %w", s.name, err)
		}
	}
	return nil
}

type signedUpload struct {
	url string
	key string
}

func (c *Client) requestUploadURL(ctx context.Context, filename, contentType string) (signedUpload, error) {
	body, _ := json.Marshal(map[string]string{
		"filename": filename,
		"fileType": contentType,
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		strings.TrimRight(c.BaseURL, "/")+"/uploads/url", bytes.NewReader(body))
	if err != nil {
		return signedUpload{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return signedUpload{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return signedUpload{}, fmt.Errorf("upload handshake failed: %s", apiError(resp))
	}

	var out struct {
		URL string `json:"url"`
		Key string `json:"key"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return signedUpload{}, err
	}
	return signedUpload{url: out.URL, key: out.Key}, nil
}

// putObject streams the file's bytes to the presigned URL with the file's
// declared content type, matching the type the URL was signed for.
func (c *Client) putObject(ctx context.Context, url string, f Attachment) error {
	body, err := f.Open()
	if err != nil {
		return err
	}
	defer body.Close()

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", f.ContentType)

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 300 {
		return fmt.Errorf("storage PUT rejected: %s", resp.Status)
	}
	return nil
}

func (c *Client) submitReport(ctx context.Context, form Form, keys []string) error {
	payload := map[string]any{
		"type":      form.Type,
		"category":  form.Category,
		"location":  form.Location,
		"details":   form.Details,
		"mediaUrls": keys,
	}
	body, _ := json.Marshal(payload)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		strings.TrimRight(c.BaseURL, "/")+"/reports", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to save report: %s", apiError(resp))
	}
	return nil
}

// apiError extracts the {"error": ...} message from a failure response,
// falling back to the HTTP status line.
func apiError(resp *http.Response) string {
	var out struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err == nil && out.Error != "" {
		return out.Error
	}
	return resp.Status
}
