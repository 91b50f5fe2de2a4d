package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/barii/chat-directory/internal/model"
)

// errorResponse is the JSON body returned for failed requests.
type errorResponse struct {
	Error string `json:"error"`
}

// handleError writes the HTTP status and error body for a domain error.
func handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, model.ErrInvalidNumber):
		writeError(w, http.StatusBadRequest, "invalid contact number")
	case errors.Is(err, model.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "invalid input")
	case errors.Is(err, model.ErrNumberTaken):
		writeError(w, http.StatusConflict, "contact number already registered")
	case errors.Is(err, model.ErrEmailTaken):
		writeError(w, http.StatusConflict, "email already registered")
	case errors.Is(err, model.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, model.ErrBusy):
		writeError(w, http.StatusConflict, "another operation is in progress")
	case errors.Is(err, model.ErrUpload):
		writeError(w, http.StatusBadGateway, "image upload failed")
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
