package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/barii/chat-directory/internal/logger"
	"github.com/barii/chat-directory/internal/model"
	"github.com/barii/chat-directory/internal/service"
)

// AuthService defines signup, login and logout operations.
type AuthService interface {
	Signup(ctx context.Context, params service.SignupParams) (service.AuthResult, error)
	Login(ctx context.Context, email, password string) (service.AuthResult, error)
	Logout(ctx context.Context, userID uuid.UUID) error
}

// Auth handles HTTP endpoints for authentication.
type Auth struct {
	sessionService AuthService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(sessionService AuthService, contextManager model.ContextManager, logger *logger.Logger) *Auth {
	return &Auth{
		sessionService: sessionService,
		contextManager: contextManager,
		logger:         logger,
	}
}

type signupRequest struct {
	Name     string `json:"name"`
	Number   string `json:"number"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token   string          `json:"token"`
	Profile profileResponse `json:"profile"`
}

// Signup registers a new account and profile and signs the user in.
func (h *Auth) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.sessionService.Signup(r.Context(), service.SignupParams{
		Name:     req.Name,
		Number:   req.Number,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.logger.Error("Auth handler: signup failed",
			"email", req.Email,
			"error", err.Error())
		handleError(w, err)
		return
	}

	h.logger.Info("Auth handler: signup completed",
		"user_id", result.Profile.ID,
		"number", result.Profile.Number)

	writeJSON(w, http.StatusCreated, authResponse{
		Token:   result.Token,
		Profile: newProfileResponse(result.Profile),
	})
}

// Login authenticates by email and password and returns an access token.
func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.sessionService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.logger.Error("Auth handler: login failed",
			"email", req.Email,
			"error", err.Error())
		handleError(w, err)
		return
	}

	h.logger.Info("Auth handler: login completed", "user_id", result.Profile.ID)

	writeJSON(w, http.StatusOK, authResponse{
		Token:   result.Token,
		Profile: newProfileResponse(result.Profile),
	})
}

// Logout clears the session state for the authenticated user.
func (h *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.contextManager.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing authentication")
		return
	}

	if err := h.sessionService.Logout(r.Context(), userID); err != nil {
		h.logger.Error("Auth handler: logout failed",
			"user_id", userID,
			"error", err.Error())
		handleError(w, err)
		return
	}

	h.logger.Info("Auth handler: logout completed", "user_id", userID)
	w.WriteHeader(http.StatusNoContent)
}
