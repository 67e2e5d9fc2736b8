// Package storage talks to the S3-compatible bucket that holds evidence
// uploads. Citizens never send bytes through this server: the server only
// mints short-lived presigned PUT URLs and the browser uploads directly.
package storage

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// UploadURLValidity is how long an issued upload URL accepts a PUT. A PUT
// attempted after this window fails with the store's authorization error.
const UploadURLValidity = 60 * time.Second

type Config struct {
	Endpoint  string // host[:port] of the S3-compatible store
	AccessKey string
	SecretKey string
	Bucket    string
	PublicURL string // public read domain for uploaded objects
	UseSSL    bool
}

func ConfigFromEnv() Config {
	return Config{
		Endpoint:  os.Getenv("STORAGE_ENDPOINT"),
		AccessKey: os.Getenv("STORAGE_ACCESS_KEY_ID"),
		SecretKey: os.Getenv("STORAGE_SECRET_ACCESS_KEY"),
		Bucket:    os.Getenv("STORAGE_BUCKET"),
		PublicURL: os.Getenv("STORAGE_PUBLIC_URL"),
		UseSSL:    os.Getenv("STORAGE_DISABLE_SSL") != "true",
	}
}

type Client struct {
	mc        *minio.Client
	bucket    string
	publicURL string
}

func NewClient(cfg Config) (*Client, error) {
	if cfg.Endpoint == "" || cfg.Bucket == "" {
		return nil, errors.New("storage: endpoint and bucket are required")
	}

	mc, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("storage: init client: %w", err)
	}

	return &Client{
		mc:        mc,
		bucket:    cfg.Bucket,
		publicURL: strings.TrimRight(cfg.PublicURL, "/"),
	}, nil
}

// IssuerError wraps a failure to mint a signed upload URL. Nothing is left
// behind on failure; callers retry by requesting a fresh URL/key pair.
type IssuerError struct {
	Filename string
	Err      error
}

func (e *IssuerError) Error() string {
	return "storage: issue upload url for " + e.Filename + ": " + e.Err.Error()
}

func (e *IssuerError) Unwrap() error { return e.Err }

// SignedUpload is the url/key pair handed to a submitter for one file.
type SignedUpload struct {
	URL string `json:"url"`
	Key string `json:"key"`
}

// IssueUploadURL mints a unique object key for filename and presigns a PUT
// URL scoped to that key and content type, valid for UploadURLValidity.
// The object does not exist until the caller performs the PUT.
func (c *Client) IssueUploadURL(ctx context.Context, filename, contentType string) (SignedUpload, error) {
	if filename == "" {
		return SignedUpload{}, errors.New("storage: filename is required")
	}

	key := UniqueKey(filename)

	hdr := http.Header{}
	if contentType != "" {
		hdr.Set("Content-Type", contentType)
	}

	signed, err := c.mc.PresignHeader(ctx, http.MethodPut, c.bucket, key, UploadURLValidity, url.Values{}, hdr)
	if err != nil {
		return SignedUpload{}, &IssuerError{Filename: filename, Err: err}
	}

	return SignedUpload{URL: signed.String(), Key: key}, nil
}

// PublicURL derives the read URL for a stored key. Keys are stored bare;
// the public domain is configuration, never persisted.
func (c *Client) PublicURL(key string) string {
	return c.publicURL + "/" + key
}

// Exists reports whether an object with the given key has been uploaded.
// Used by the optional media verification at report ingest.
func (c *Client) Exists(ctx context.Context, key string) (bool, error) {
	_, err := c.mc.StatObject(ctx, c.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		resp := minio.ToErrorResponse(err)
		if resp.Code == "NoSuchKey" || resp.StatusCode == http.StatusNotFound {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
