package reports

import (
	"time"

	"github.com/lib/pq"
)

// Report is one citizen submission. Everything except Status is written once
// at ingest and never mutated; rows are never deleted.
type Report struct {
	ID          string         `gorm:"type:uuid;primaryKey" json:"id"`
	ReportType  string         `gorm:"not null" json:"report_type"`
	Category    string         `gorm:"not null" json:"category"`
	Location    string         `gorm:"not null" json:"location"`
	Description string         `gorm:"not null" json:"description"`
	MediaURLs   pq.StringArray `gorm:"type:text[]" json:"media_urls"`
	IPAddress   string         `json:"ip_address"`
	DeviceInfo  string         `json:"device_info"`
	Status      Status         `gorm:"not null;default:'pending'" json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
}

func (Report) TableName() string {
	return "intel.reports"
}

// Categories is the fixed candidate list offered on the submission form.
// The stored column stays free text; the list is for form rendering.
var Categories = []string{"robbery", "drugs", "scam", "assault", "corruption", "traffic", "other"}

// Report types.
const (
	TypeTip    = "tip"
	TypeReport = "report"
)
