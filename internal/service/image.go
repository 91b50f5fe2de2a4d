package service

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/barii/chat-directory/internal/logger"
	"github.com/barii/chat-directory/internal/metrics"
	"github.com/barii/chat-directory/internal/model"
)

// Image uploads profile images to object storage and links the resulting
// address to the caller's profile record.
type Image struct {
	storage  model.Storage
	profiles *Profile
	logger   *logger.Logger
}

func NewImage(
	storage model.Storage,
	profiles *Profile,
	logger *logger.Logger,
) *Image {
	return &Image{
		storage:  storage,
		profiles: profiles,
		logger:   logger,
	}
}

// UploadAndLink stores the image under a fresh key, resolves its address and
// writes it to the caller's profile. If the upload fails the profile is left
// unchanged.
func (s *Image) UploadAndLink(ctx context.Context, callerID uuid.UUID, reader io.Reader, size int64, contentType string) (string, error) {
	key := "images/" + uuid.NewString()

	if err := s.storage.Upload(ctx, key, reader, size, contentType); err != nil {
		metrics.ImageUploadsTotal.WithLabelValues("error").Inc()
		s.logger.Error("Image service: upload failed",
			"user_id", callerID,
			"key", key,
			"error", err.Error())
		return "", fmt.Errorf("%w: %v", model.ErrUpload, err)
	}

	address := s.storage.ResolveAddress(key)

	if _, err := s.profiles.CreateOrUpdate(ctx, callerID, model.ProfileUpdate{ImageURL: &address}); err != nil {
		return "", fmt.Errorf("failed to link image to profile: %w", err)
	}

	metrics.ImageUploadsTotal.WithLabelValues("ok").Inc()
	s.logger.Info("Image service: image linked",
		"user_id", callerID,
		"key", key)

	return address, nil
}
