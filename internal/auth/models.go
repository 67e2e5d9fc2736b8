package auth

import "time"

type Session struct {
	SessionID string    `gorm:"primaryKey" json:"-"`
	UserID    string    `gorm:"not null;unique" json:"-"`
	ExpiresAt time.Time `gorm:"not null"`
}

// Officer is a dashboard operator. Citizens never get accounts; the public
// submission endpoints are unauthenticated by design.
type Officer struct {
	UserID         string `gorm:"primaryKey" json:"user_id"`
	Username       string `gorm:"uniqueIndex;not null" json:"username"`
	Password       string `json:"password" gorm:"-"`
	HashedPassword string `json:"-"`
	Role           string `gorm:"default:'officer'" json:"role"`
}

func (Session) TableName() string { return "app_auth.sessions" }
func (Officer) TableName() string { return "app_auth.officers" }
