package reports

import (
	"log"

	"github.com/CivicIntel/CI-Backend/internal/db"
)

func Init() {
	if err := db.EnsureSchema(db.DB, "intel"); err != nil {
		log.Fatal("Failed to ensure schema intel: ", err)
	}

	if err := db.DB.AutoMigrate(&Report{}); err != nil {
		log.Fatal("Failed to auto-migrate reports table: ", err)
	}

	// The dashboard always lists newest-first.
	if err := db.DB.Exec(`
		CREATE INDEX IF NOT EXISTS idx_reports_created_at
		ON intel.reports (created_at DESC);
	`).Error; err != nil {
		log.Fatal("Failed to create idx_reports_created_at: ", err)
	}

	log.Println("Reports module initialized")
}
