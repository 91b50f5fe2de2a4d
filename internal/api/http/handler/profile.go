package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/barii/chat-directory/internal/logger"
	"github.com/barii/chat-directory/internal/model"
)

// maxImageSize caps profile image uploads at 10 MiB.
const maxImageSize = 10 << 20

// ProfileService defines profile read, update and image operations.
type ProfileService interface {
	Profile(ctx context.Context, userID uuid.UUID) (model.Profile, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, update model.ProfileUpdate) (model.Profile, error)
	UploadProfileImage(ctx context.Context, userID uuid.UUID, reader io.Reader, size int64, contentType string) (string, error)
}

// Profile handles HTTP endpoints for the caller's profile.
type Profile struct {
	sessionService ProfileService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewProfile creates a new Profile handler.
func NewProfile(sessionService ProfileService, contextManager model.ContextManager, logger *logger.Logger) *Profile {
	return &Profile{
		sessionService: sessionService,
		contextManager: contextManager,
		logger:         logger,
	}
}

type profileResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Number   string `json:"number"`
	Email    string `json:"email"`
	ImageURL string `json:"image_url,omitempty"`
}

func newProfileResponse(p model.Profile) profileResponse {
	return profileResponse{
		ID:       p.ID.String(),
		Name:     p.Name,
		Number:   p.Number,
		Email:    p.Email,
		ImageURL: p.ImageURL,
	}
}

type updateProfileRequest struct {
	Name   *string `json:"name"`
	Number *string `json:"number"`
	Email  *string `json:"email"`
}

type uploadImageResponse struct {
	ImageURL string `json:"image_url"`
}

// Get returns the authenticated user's profile.
func (h *Profile) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.contextManager.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing authentication")
		return
	}

	profile, err := h.sessionService.Profile(r.Context(), userID)
	if err != nil {
		h.logger.Error("Profile handler: fetch failed",
			"user_id", userID,
			"error", err.Error())
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, newProfileResponse(profile))
}

// Update applies a partial update to the authenticated user's profile.
// Absent fields are left unchanged.
func (h *Profile) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.contextManager.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing authentication")
		return
	}

	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	profile, err := h.sessionService.UpdateProfile(r.Context(), userID, model.ProfileUpdate{
		Name:   req.Name,
		Number: req.Number,
		Email:  req.Email,
	})
	if err != nil {
		h.logger.Error("Profile handler: update failed",
			"user_id", userID,
			"error", err.Error())
		handleError(w, err)
		return
	}

	h.logger.Info("Profile handler: update completed", "user_id", userID)
	writeJSON(w, http.StatusOK, newProfileResponse(profile))
}

// UploadImage stores a new profile image and links it to the profile.
// The image is read from the multipart form field "image".
func (h *Profile) UploadImage(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.contextManager.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing authentication")
		return
	}

	if err := r.ParseMultipartForm(maxImageSize); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing image file")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	imageURL, err := h.sessionService.UploadProfileImage(r.Context(), userID, file, header.Size, contentType)
	if err != nil {
		h.logger.Error("Profile handler: image upload failed",
			"user_id", userID,
			"error", err.Error())
		handleError(w, err)
		return
	}

	h.logger.Info("Profile handler: image upload completed",
		"user_id", userID,
		"size", header.Size)
	writeJSON(w, http.StatusOK, uploadImageResponse{ImageURL: imageURL})
}
