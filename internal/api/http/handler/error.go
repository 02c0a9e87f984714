package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dtroode/udon-shop-server/internal/model"
	"github.com/dtroode/udon-shop-server/internal/service"
)

type errorResponse struct {
	Error string `json:"error"`
}

// handleError maps service errors to HTTP status codes. Anything
// unrecognized is an internal error with no detail leaked.
func handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, model.ErrAlreadyExists):
		writeError(w, http.StatusConflict, "already exists")
	case errors.Is(err, model.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, model.ErrValidation):
		writeError(w, http.StatusBadRequest, "invalid input")
	case errors.Is(err, model.ErrInvalidTransition):
		writeError(w, http.StatusUnprocessableEntity, "invalid status transition")
	case errors.Is(err, service.ErrEmptyCart):
		writeError(w, http.StatusBadRequest, "cart is empty")
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func decodeJSON(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}
