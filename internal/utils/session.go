package utils

import "time"

// SessionData is the session view shared between the auth package and the
// middleware, so the middleware never depends on auth's gorm models.
type SessionData struct {
	UserID    string
	ExpiresAt time.Time
}
