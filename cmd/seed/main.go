// Seeds the initial officer account from SEED_OFFICER_USERNAME and
// SEED_OFFICER_PASSWORD. Idempotent: an existing username is left alone.
package main

import (
	"log"
	"os"

	"github.com/CivicIntel/CI-Backend/internal/auth"
	"github.com/CivicIntel/CI-Backend/internal/db"
	"github.com/CivicIntel/CI-Backend/internal/utils"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	_ = godotenv.Load(".env.local")
	db.Connect()
	auth.Init()

	username := os.Getenv("SEED_OFFICER_USERNAME")
	password := os.Getenv("SEED_OFFICER_PASSWORD")
	if username == "" || password == "" {
		log.Fatal("SEED_OFFICER_USERNAME and SEED_OFFICER_PASSWORD are required")
	}

	var existing auth.Officer
	if err := db.DB.First(&existing, "username = ?", username).Error; err == nil {
		log.Printf("Officer %q already exists, nothing to do", username)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Failed to hash password: ", err)
	}

	officer := auth.Officer{
		UserID:         utils.GenerateUUID(),
		Username:       username,
		HashedPassword: string(hashed),
		Role:           "admin", // first account provisions the rest
	}
	if err := db.DB.Create(&officer).Error; err != nil {
		log.Fatal("Failed to create officer: ", err)
	}

	log.Printf("Seeded officer %q", username)
}
