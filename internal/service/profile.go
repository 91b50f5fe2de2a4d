package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/barii/chat-directory/internal/logger"
	"github.com/barii/chat-directory/internal/model"
)

// Profile owns profile records: creation on first write, partial-field merge
// on subsequent writes, lookups by id and by contact number.
type Profile struct {
	profileStore model.ProfileStore
	publisher    model.UpdatePublisher
	logger       *logger.Logger
}

func NewProfile(
	profileStore model.ProfileStore,
	publisher model.UpdatePublisher,
	logger *logger.Logger,
) *Profile {
	return &Profile{
		profileStore: profileStore,
		publisher:    publisher,
		logger:       logger,
	}
}

// CreateOrUpdate merges the given fields over the caller's record, creating
// the record if it does not exist yet. Fields omitted in the update are left
// untouched, not cleared. Returns the resulting full record.
func (s *Profile) CreateOrUpdate(ctx context.Context, callerID uuid.UUID, update model.ProfileUpdate) (model.Profile, error) {
	existing, err := s.profileStore.GetByID(ctx, callerID)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		return model.Profile{}, fmt.Errorf("failed to get profile by id: %w", err)
	}

	var saved model.Profile
	if errors.Is(err, model.ErrNotFound) {
		profile := model.Profile{ID: callerID}
		if update.Name != nil {
			profile.Name = *update.Name
		}
		if update.Number != nil {
			profile.Number = *update.Number
		}
		if update.Email != nil {
			profile.Email = *update.Email
		}
		if update.ImageURL != nil {
			profile.ImageURL = *update.ImageURL
		}

		saved, err = s.profileStore.Create(ctx, profile)
		if err != nil {
			return model.Profile{}, fmt.Errorf("failed to create profile: %w", err)
		}

		s.logger.Info("Profile service: profile created",
			"user_id", callerID)
	} else {
		if update.IsEmpty() {
			return existing, nil
		}

		saved, err = s.profileStore.Update(ctx, callerID, update)
		if err != nil {
			return model.Profile{}, fmt.Errorf("failed to update profile: %w", err)
		}
	}

	if err := s.publisher.ProfileUpdated(ctx, saved); err != nil {
		s.logger.Error("Profile service: failed to publish profile update",
			"user_id", callerID,
			"error", err.Error())
	}

	return saved, nil
}

// Fetch returns the profile for the given user id. Absence is reported as
// model.ErrNotFound, not treated as a fault.
func (s *Profile) Fetch(ctx context.Context, userID uuid.UUID) (model.Profile, error) {
	profile, err := s.profileStore.GetByID(ctx, userID)
	if errors.Is(err, model.ErrNotFound) {
		return model.Profile{}, model.ErrNotFound
	}
	if err != nil {
		return model.Profile{}, fmt.Errorf("failed to get profile by id: %w", err)
	}

	return profile, nil
}

// FetchByNumber returns the profile registered under the contact number.
func (s *Profile) FetchByNumber(ctx context.Context, number string) (model.Profile, error) {
	profile, err := s.profileStore.GetByNumber(ctx, number)
	if errors.Is(err, model.ErrNotFound) {
		return model.Profile{}, model.ErrNotFound
	}
	if err != nil {
		return model.Profile{}, fmt.Errorf("failed to get profile by number: %w", err)
	}

	return profile, nil
}
