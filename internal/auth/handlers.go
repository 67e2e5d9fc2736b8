package auth

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/CivicIntel/CI-Backend/internal/db"
	"github.com/CivicIntel/CI-Backend/internal/utils"
	"golang.org/x/crypto/bcrypt"
)

const sessionLifetime = 6 * time.Hour

// sessionCookie builds the session cookie. Secure is only set in production
// so local dev and httptest (plain HTTP) keep working.
func sessionCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     "session_id",
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   os.Getenv("APP_ENV") == "production",
	}
}

// RegisterHandler provisions a new officer account. Routes mount it behind
// the session + admin middleware; there is no public signup.
func RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var officer Officer

	err := json.NewDecoder(r.Body).Decode(&officer)
	if err != nil {
		http.Error(w, "Invalid Request Format", http.StatusBadRequest)
		return
	}

	if officer.Username == "" || officer.Password == "" {
		http.Error(w, "Username and password are required", http.StatusBadRequest)
		return
	}

	// Check if username is taken
	var existing Officer
	err = db.DB.First(&existing, "username = ?", officer.Username).Error
	if err == nil {
		http.Error(w, "Username already taken", http.StatusConflict)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(officer.Password), bcrypt.DefaultCost)
	if err != nil {
		http.Error(w, "Server error hashing password", http.StatusInternalServerError)
		return
	}
	officer.HashedPassword = string(hashed)
	officer.UserID = utils.GenerateUUID()
	officer.Password = ""

	if err := db.DB.Create(&officer).Error; err != nil {
		http.Error(w, "Failed to register officer", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]string{
		"user_id":  officer.UserID,
		"username": officer.Username,
	})
}

func LoginHandler(w http.ResponseWriter, r *http.Request) {
	var officer Officer
	var session Session
	var existing Session

	err := json.NewDecoder(r.Body).Decode(&officer)
	if err != nil {
		http.Error(w, "Invalid Data", http.StatusBadRequest)
		return
	}

	password := officer.Password

	// Search for matching username
	err = db.DB.First(&officer, "username = ?", officer.Username).Error
	if err != nil {
		http.Error(w, "Invalid Credentials", http.StatusUnauthorized)
		return
	}

	err = bcrypt.CompareHashAndPassword([]byte(officer.HashedPassword), []byte(password))
	if err != nil {
		http.Error(w, "Invalid Credentials", http.StatusUnauthorized)
		return
	}

	// Passwords matched, set cookie
	sessionID := utils.GenerateUUID()
	http.SetCookie(w, sessionCookie(sessionID, int(sessionLifetime.Seconds())))

	// One session row per officer: refresh it if one already exists.
	db.DB.Where("user_id = ?", officer.UserID).First(&existing)
	if existing.UserID != "" {
		db.DB.Model(&existing).Updates(Session{
			SessionID: sessionID,
			ExpiresAt: time.Now().Add(sessionLifetime),
		})
	} else {
		session.SessionID = sessionID
		session.UserID = officer.UserID
		session.ExpiresAt = time.Now().Add(sessionLifetime)
		db.DB.Create(&session)
	}

	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "Login successful")
}

func LogoutHandler(w http.ResponseWriter, r *http.Request) {
	var session Session

	cookie, err := r.Cookie("session_id")
	if err != nil {
		http.Error(w, "Couldn't find cookie", http.StatusUnauthorized)
		return
	}

	err = db.DB.First(&session, "session_id = ?", cookie.Value).Error
	if err != nil {
		http.Error(w, "Couldn't find session", http.StatusUnauthorized)
		return
	}

	db.DB.Delete(&session)

	// Replace the cookie with an expired one
	http.SetCookie(w, sessionCookie("", -1))

	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "Logout successful")
}

type MeResponse struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}

func MeHandler(w http.ResponseWriter, r *http.Request) {
	var officer Officer

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Missing user ID in context", http.StatusInternalServerError)
		return
	}

	if err := db.DB.First(&officer, "user_id = ?", userID).Error; err != nil {
		http.Error(w, "Couldn't find officer", http.StatusNotFound)
		return
	}

	response := MeResponse{
		UserID:   userID,
		Username: officer.Username,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}
