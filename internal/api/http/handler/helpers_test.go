package handler

import (
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	httpctx "github.com/barii/chat-directory/internal/api/http/context"
	"github.com/barii/chat-directory/internal/logger"
	"github.com/barii/chat-directory/internal/model"
	"github.com/barii/chat-directory/internal/service"
	"github.com/barii/chat-directory/internal/testutil"
)

// mockSession is a testify mock covering the session facade surface the
// handlers consume.
type mockSession struct {
	mock.Mock
}

func (m *mockSession) Signup(ctx context.Context, params service.SignupParams) (service.AuthResult, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(service.AuthResult), args.Error(1)
}

func (m *mockSession) Login(ctx context.Context, email, password string) (service.AuthResult, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(service.AuthResult), args.Error(1)
}

func (m *mockSession) Logout(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *mockSession) Profile(ctx context.Context, userID uuid.UUID) (model.Profile, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(model.Profile), args.Error(1)
}

func (m *mockSession) UpdateProfile(ctx context.Context, userID uuid.UUID, update model.ProfileUpdate) (model.Profile, error) {
	args := m.Called(ctx, userID, update)
	return args.Get(0).(model.Profile), args.Error(1)
}

func (m *mockSession) UploadProfileImage(ctx context.Context, userID uuid.UUID, reader io.Reader, size int64, contentType string) (string, error) {
	args := m.Called(ctx, userID, reader, size, contentType)
	return args.String(0), args.Error(1)
}

func (m *mockSession) AddChat(ctx context.Context, userID uuid.UUID, peerNumber string) (model.ChatRoom, error) {
	args := m.Called(ctx, userID, peerNumber)
	return args.Get(0).(model.ChatRoom), args.Error(1)
}

func (m *mockSession) ListChats(ctx context.Context, userID uuid.UUID) ([]model.ChatRoom, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]model.ChatRoom), args.Error(1)
}

func (m *mockSession) Notification(ctx context.Context, userID uuid.UUID) (string, bool, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *mockSession) Busy(ctx context.Context, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

var testContextManager = httpctx.NewManager()

// authenticated returns the request with the given user ID set in its context.
func authenticated(r *http.Request, userID uuid.UUID) *http.Request {
	return r.WithContext(testContextManager.SetUserIDToContext(r.Context(), userID))
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	return testutil.MakeNoopLogger()
}
