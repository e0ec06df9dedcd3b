package controllers

import (
	"encoding/json"
	"net/http"
	"strings"

	"go-storefront/middleware"
	"go-storefront/services"
)

// UserController handles signup, login and profile requests
type UserController struct {
	Sessions *services.SessionService
}

// NewUserController creates a new UserController
func NewUserController(sessions *services.SessionService) *UserController {
	return &UserController{Sessions: sessions}
}

// Register handles user registration
func (uc *UserController) Register(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Firstname string `json:"firstname"`
		Lastname  string `json:"lastname"`
		Email     string `json:"email"`
		Password  string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	// Field validation happens before any remote call.
	input.Email = strings.TrimSpace(input.Email)
	if input.Firstname == "" || input.Email == "" || !strings.Contains(input.Email, "@") {
		http.Error(w, "Name and a valid email are required", http.StatusBadRequest)
		return
	}
	if len(input.Password) < 6 {
		http.Error(w, "Password must be at least 6 characters", http.StatusBadRequest)
		return
	}

	user, err := uc.Sessions.Signup(r.Context(), input.Firstname, input.Lastname, input.Email, input.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

// Login handles user authentication
func (uc *UserController) Login(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	token, user, err := uc.Sessions.Login(r.Context(), creds.Email, creds.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user":  user,
	})
}

// Logout invalidates the caller's session token.
func (uc *UserController) Logout(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		writeServiceError(w, services.ErrUnauthenticated)
		return
	}
	uc.Sessions.Logout(sess.Token)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

// GetProfile retrieves the authenticated user's record
func (uc *UserController) GetProfile(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		writeServiceError(w, services.ErrUnauthenticated)
		return
	}
	user, err := uc.Sessions.Principal(r.Context(), *sess)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// UpdateProfile edits the authenticated user's name
func (uc *UserController) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		writeServiceError(w, services.ErrUnauthenticated)
		return
	}

	var input struct {
		Firstname string `json:"firstname"`
		Lastname  string `json:"lastname"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	user, err := uc.Sessions.UpdateProfile(r.Context(), *sess, input.Firstname, input.Lastname)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}
