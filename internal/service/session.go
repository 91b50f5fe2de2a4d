package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/barii/chat-directory/internal/logger"
	"github.com/barii/chat-directory/internal/metrics"
	"github.com/barii/chat-directory/internal/model"
)

// Session is the facade gating all operations on an authenticated identity.
// It owns the signed-in state, the advisory busy flag and the consume-once
// notification slot, and routes every failure of an authenticated operation
// through the notification sink in addition to the typed error.
type Session struct {
	provider  model.AccountProvider
	profiles  *Profile
	directory *Directory
	images    *Image
	sessions  model.SessionStore
	tokens    model.TokenManager
	validate  *validator.Validate
	logger    *logger.Logger
}

func NewSession(
	provider model.AccountProvider,
	profiles *Profile,
	directory *Directory,
	images *Image,
	sessions model.SessionStore,
	tokens model.TokenManager,
	logger *logger.Logger,
) *Session {
	return &Session{
		provider:  provider,
		profiles:  profiles,
		directory: directory,
		images:    images,
		sessions:  sessions,
		tokens:    tokens,
		validate:  validator.New(),
		logger:    logger,
	}
}

// SignupParams carries the signup form fields. All fields are required and
// the contact number must be digits only.
type SignupParams struct {
	Name     string `validate:"required"`
	Number   string `validate:"required,numeric"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}

// AuthResult is returned by Signup and Login: the caller's profile and the
// access token for subsequent requests.
type AuthResult struct {
	Profile model.Profile
	Token   string
}

// Signup creates the backend account and the profile record, and signs the
// user in. A duplicate contact number or email is refused.
func (s *Session) Signup(ctx context.Context, params SignupParams) (AuthResult, error) {
	if err := s.validate.Struct(params); err != nil {
		metrics.SignupsTotal.WithLabelValues("rejected").Inc()
		return AuthResult{}, fmt.Errorf("%w: %v", model.ErrInvalidInput, err)
	}

	// The unique constraint on users.number is the authoritative guard; this
	// lookup only gives a friendlier refusal before the account is created.
	_, err := s.profiles.FetchByNumber(ctx, params.Number)
	if err == nil {
		metrics.SignupsTotal.WithLabelValues("rejected").Inc()
		return AuthResult{}, model.ErrNumberTaken
	}
	if !errors.Is(err, model.ErrNotFound) {
		metrics.SignupsTotal.WithLabelValues("error").Inc()
		return AuthResult{}, err
	}

	accountID, err := s.provider.CreateAccount(ctx, params.Email, params.Password)
	if err != nil {
		if errors.Is(err, model.ErrEmailTaken) {
			metrics.SignupsTotal.WithLabelValues("rejected").Inc()
			return AuthResult{}, model.ErrEmailTaken
		}
		metrics.SignupsTotal.WithLabelValues("error").Inc()
		return AuthResult{}, fmt.Errorf("failed to create account: %w", err)
	}

	profile, err := s.profiles.CreateOrUpdate(ctx, accountID, model.ProfileUpdate{
		Name:   &params.Name,
		Number: &params.Number,
		Email:  &params.Email,
	})
	if err != nil {
		metrics.SignupsTotal.WithLabelValues("error").Inc()
		s.notify(ctx, accountID, "Profile creation failed")
		if errors.Is(err, model.ErrNumberTaken) {
			return AuthResult{}, model.ErrNumberTaken
		}
		return AuthResult{}, fmt.Errorf("failed to create profile: %w", err)
	}

	result, err := s.signIn(ctx, accountID, profile)
	if err != nil {
		metrics.SignupsTotal.WithLabelValues("error").Inc()
		return AuthResult{}, err
	}

	metrics.SignupsTotal.WithLabelValues("ok").Inc()
	s.logger.Info("Session service: signup completed",
		"user_id", accountID)

	return result, nil
}

// Login verifies the credentials, loads the profile and signs the user in.
func (s *Session) Login(ctx context.Context, email, password string) (AuthResult, error) {
	if email == "" || password == "" {
		metrics.LoginsTotal.WithLabelValues("rejected").Inc()
		return AuthResult{}, fmt.Errorf("%w: please fill in all fields", model.ErrInvalidInput)
	}

	accountID, err := s.provider.SignIn(ctx, email, password)
	if err != nil {
		if errors.Is(err, model.ErrInvalidCredentials) {
			metrics.LoginsTotal.WithLabelValues("rejected").Inc()
			return AuthResult{}, model.ErrInvalidCredentials
		}
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return AuthResult{}, fmt.Errorf("failed to sign in: %w", err)
	}

	profile, err := s.profiles.Fetch(ctx, accountID)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		s.notify(ctx, accountID, "Failed to get user data")
		return AuthResult{}, err
	}

	result, err := s.signIn(ctx, accountID, profile)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return AuthResult{}, err
	}

	metrics.LoginsTotal.WithLabelValues("ok").Inc()
	return result, nil
}

func (s *Session) signIn(ctx context.Context, userID uuid.UUID, profile model.Profile) (AuthResult, error) {
	if err := s.sessions.MarkSignedIn(ctx, userID); err != nil {
		return AuthResult{}, fmt.Errorf("failed to mark signed in: %w", err)
	}

	token, err := s.tokens.GenerateAccessToken(userID)
	if err != nil {
		return AuthResult{}, fmt.Errorf("failed to issue token: %w", err)
	}

	return AuthResult{Profile: profile, Token: token}, nil
}

// Logout clears the session state and leaves an informational notification.
// Logging out twice is harmless; only the first call leaves a notification.
func (s *Session) Logout(ctx context.Context, userID uuid.UUID) error {
	signedIn, err := s.sessions.IsSignedIn(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to check session: %w", err)
	}

	if err := s.sessions.Clear(ctx, userID); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}

	if signedIn {
		s.notify(ctx, userID, "Logged out successfully")
	}
	return nil
}

// UpdateProfile merges the given fields over the caller's profile under the
// busy flag.
func (s *Session) UpdateProfile(ctx context.Context, userID uuid.UUID, update model.ProfileUpdate) (model.Profile, error) {
	var profile model.Profile
	err := s.withBusy(ctx, userID, func() error {
		if update.Number != nil && !model.IsDigits(*update.Number) {
			return model.ErrInvalidNumber
		}

		var err error
		profile, err = s.profiles.CreateOrUpdate(ctx, userID, update)
		return err
	})
	if err != nil {
		s.notify(ctx, userID, "Failed to create or update profile")
		return model.Profile{}, err
	}

	return profile, nil
}

// Profile returns the caller's own record.
func (s *Session) Profile(ctx context.Context, userID uuid.UUID) (model.Profile, error) {
	return s.profiles.Fetch(ctx, userID)
}

// AddChat resolves or creates the room pairing the caller with the peer
// holding peerNumber, under the busy flag.
func (s *Session) AddChat(ctx context.Context, userID uuid.UUID, peerNumber string) (model.ChatRoom, error) {
	var room model.ChatRoom
	err := s.withBusy(ctx, userID, func() error {
		caller, err := s.profiles.Fetch(ctx, userID)
		if err != nil {
			return err
		}

		room, err = s.directory.ResolveOrCreate(ctx, caller, peerNumber)
		return err
	})
	if err != nil {
		switch {
		case errors.Is(err, model.ErrInvalidNumber):
			s.notify(ctx, userID, "Invalid number")
		case errors.Is(err, model.ErrNotFound):
			s.notify(ctx, userID, "User not found")
		case errors.Is(err, model.ErrBusy):
			// Advisory refusal, nothing to report.
		default:
			s.notify(ctx, userID, "Failed to add chat")
		}
		return model.ChatRoom{}, err
	}

	return room, nil
}

// ListChats returns the caller's rooms.
func (s *Session) ListChats(ctx context.Context, userID uuid.UUID) ([]model.ChatRoom, error) {
	caller, err := s.profiles.Fetch(ctx, userID)
	if err != nil {
		if !errors.Is(err, model.ErrNotFound) {
			s.notify(ctx, userID, "Failed to populate chat")
		}
		return nil, err
	}

	rooms, err := s.directory.ListRooms(ctx, caller.Number)
	if err != nil {
		s.notify(ctx, userID, "Failed to populate chat")
		return nil, err
	}

	return rooms, nil
}

// UploadProfileImage uploads the image and links it to the caller's profile
// under the busy flag.
func (s *Session) UploadProfileImage(ctx context.Context, userID uuid.UUID, reader io.Reader, size int64, contentType string) (string, error) {
	var address string
	err := s.withBusy(ctx, userID, func() error {
		var err error
		address, err = s.images.UploadAndLink(ctx, userID, reader, size, contentType)
		return err
	})
	if err != nil {
		if errors.Is(err, model.ErrUpload) {
			s.notify(ctx, userID, "Failed to upload image")
		}
		return "", err
	}

	return address, nil
}

// Notification drains the caller's consume-once notification slot.
func (s *Session) Notification(ctx context.Context, userID uuid.UUID) (string, bool, error) {
	return s.sessions.ConsumeNotification(ctx, userID)
}

// Busy reports whether an operation is in flight for the caller.
func (s *Session) Busy(ctx context.Context, userID uuid.UUID) (bool, error) {
	return s.sessions.IsBusy(ctx, userID)
}

// withBusy runs fn while holding the caller's busy flag. The flag is released
// on every exit path; a second submission while held is refused with ErrBusy.
func (s *Session) withBusy(ctx context.Context, userID uuid.UUID, fn func() error) error {
	acquired, err := s.sessions.AcquireBusy(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to acquire busy flag: %w", err)
	}
	if !acquired {
		return model.ErrBusy
	}
	defer func() {
		if err := s.sessions.ReleaseBusy(ctx, userID); err != nil {
			s.logger.Error("Session service: failed to release busy flag",
				"user_id", userID,
				"error", err.Error())
		}
	}()

	return fn()
}

func (s *Session) notify(ctx context.Context, userID uuid.UUID, message string) {
	if err := s.sessions.PushNotification(ctx, userID, message); err != nil {
		s.logger.Error("Session service: failed to push notification",
			"user_id", userID,
			"error", err.Error())
	}
}
