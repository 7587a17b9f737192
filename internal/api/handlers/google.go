package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/rishav-ranjan/healthlocker/internal/api/services"
	"github.com/rishav-ranjan/healthlocker/internal/models"
	"github.com/rishav-ranjan/healthlocker/internal/store"
)

const frontendBase = "http://localhost:5173"

// GET /api/auth/google/login
func HandleGoogleLogin(w http.ResponseWriter, r *http.Request) {
	redirectType := r.URL.Query().Get("redirect") // "login" or "register"
	if redirectType == "" {
		redirectType = "login"
	}

	state, err := GenerateState(map[string]string{"flow": redirectType})
	if err != nil {
		http.Error(w, "Failed to generate OAuth state", http.StatusInternalServerError)
		return
	}

	url := services.GoogleOauthConfig.AuthCodeURL(state)
	http.Redirect(w, r, url, http.StatusTemporaryRedirect)
}

// GET /api/auth/google/callback
// Google accounts map onto local users by email-as-username; password
// stays empty for Google-authenticated accounts.
func HandleGoogleCallback(w http.ResponseWriter, r *http.Request) {
	state := r.FormValue("state")
	stateData, err := DecodeState(state)
	if err != nil {
		http.Error(w, "Invalid OAuth state", http.StatusBadRequest)
		return
	}

	flowType := stateData["flow"] // "login" or "register"
	code := r.FormValue("code")

	token, err := services.GoogleOauthConfig.Exchange(context.Background(), code)
	if err != nil {
		http.Error(w, "Code exchange failed", http.StatusInternalServerError)
		return
	}

	client := services.GoogleOauthConfig.Client(context.Background(), token)
	resp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		http.Error(w, "Failed to get user info", http.StatusInternalServerError)
		return
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)

	var googleUser struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Name  string `json:"name"`
	}

	if err := json.Unmarshal(data, &googleUser); err != nil || googleUser.Email == "" {
		http.Error(w, "Failed to parse user info", http.StatusInternalServerError)
		return
	}

	st := svc().Store()
	user, err := st.GetUserByUsername(r.Context(), googleUser.Email)

	switch flowType {
	case "register":
		if err == nil {
			http.Redirect(w, r, frontendBase+"/login?error=user_already_exists", http.StatusTemporaryRedirect)
			return
		}
		if !errors.Is(err, store.ErrNotFound) {
			http.Error(w, "Database error", http.StatusInternalServerError)
			return
		}
		newUser := &models.User{
			Username: googleUser.Email,
			Password: "", // Google-authenticated
			Role:     models.RoleOwner,
		}
		if err := st.CreateUser(r.Context(), newUser); err != nil {
			http.Error(w, "Failed to create user", http.StatusInternalServerError)
			return
		}
		user = newUser

	default: // "login"
		if errors.Is(err, store.ErrNotFound) {
			http.Redirect(w, r, frontendBase+"/register?error=user_not_found", http.StatusTemporaryRedirect)
			return
		}
		if err != nil {
			http.Error(w, "Database error", http.StatusInternalServerError)
			return
		}
	}

	if err := issueSession(w, user); err != nil {
		http.Error(w, "Failed to create JWT", http.StatusInternalServerError)
		return
	}

	redirectURL := frontendBase + "/dashboard?status=success_login"
	if flowType == "register" {
		redirectURL = frontendBase + "/dashboard?status=success_register"
	}

	http.Redirect(w, r, redirectURL, http.StatusTemporaryRedirect)
}
