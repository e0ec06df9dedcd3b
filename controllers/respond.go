package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"go-storefront/services"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

// writeServiceError maps the service error taxonomy onto HTTP statuses. API
// callers get a JSON error body; page-level redirects are the guard's job.
func writeServiceError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrUnauthenticated),
		errors.Is(err, services.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, services.ErrAccountDisabled):
		status = http.StatusForbidden
	case errors.Is(err, services.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrDuplicate),
		errors.Is(err, services.ErrLastAdmin),
		errors.Is(err, services.ErrVersionConflict):
		status = http.StatusConflict
	case errors.Is(err, services.ErrEmptyCart),
		errors.Is(err, services.ErrInvalidStatus):
		status = http.StatusBadRequest
	case errors.Is(err, services.ErrPaymentDeclined):
		status = http.StatusPaymentRequired
	default:
		log.Printf("internal error: %v", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
