package controllers

import (
	"errors"
	"net/http"

	json "github.com/goccy/go-json"

	"mintd/internal/services"
)

// errorStatus maps controller failures onto HTTP status codes. Eligibility
// rejections are 403: the request was understood and refused.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrAlreadyExists), errors.Is(err, services.ErrAlreadyInitialized):
		return http.StatusConflict
	case errors.Is(err, services.ErrInsufficientFunds):
		return http.StatusPaymentRequired
	case errors.Is(err, services.ErrNotAuthorized),
		errors.Is(err, services.ErrNotActive),
		errors.Is(err, services.ErrInvalidStage),
		errors.Is(err, services.ErrNotAllowed):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	body, _ := json.Marshal(map[string]string{"error": services.ErrorCode(err)})
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(errorStatus(err))
	_, _ = w.Write(body)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
