// Package mocks provides testify mocks for the model interfaces.
package mocks

import (
	"context"
	"io"
	"net"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/barii/chat-directory/internal/model"
)

// ProfileStore is a mock of model.ProfileStore.
type ProfileStore struct {
	mock.Mock
}

func (m *ProfileStore) GetByID(ctx context.Context, id uuid.UUID) (model.Profile, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Profile), args.Error(1)
}

func (m *ProfileStore) GetByNumber(ctx context.Context, number string) (model.Profile, error) {
	args := m.Called(ctx, number)
	return args.Get(0).(model.Profile), args.Error(1)
}

func (m *ProfileStore) Create(ctx context.Context, profile model.Profile) (model.Profile, error) {
	args := m.Called(ctx, profile)
	return args.Get(0).(model.Profile), args.Error(1)
}

func (m *ProfileStore) Update(ctx context.Context, id uuid.UUID, update model.ProfileUpdate) (model.Profile, error) {
	args := m.Called(ctx, id, update)
	return args.Get(0).(model.Profile), args.Error(1)
}

// ChatRoomStore is a mock of model.ChatRoomStore.
type ChatRoomStore struct {
	mock.Mock
}

func (m *ChatRoomStore) GetByPairKey(ctx context.Context, pairKey string) (model.ChatRoom, error) {
	args := m.Called(ctx, pairKey)
	return args.Get(0).(model.ChatRoom), args.Error(1)
}

func (m *ChatRoomStore) CreateIfAbsent(ctx context.Context, room model.ChatRoom) (model.ChatRoom, error) {
	args := m.Called(ctx, room)
	if rf, ok := args.Get(0).(func(context.Context, model.ChatRoom) model.ChatRoom); ok {
		return rf(ctx, room), args.Error(1)
	}
	return args.Get(0).(model.ChatRoom), args.Error(1)
}

func (m *ChatRoomStore) ListByNumber(ctx context.Context, number string) ([]model.ChatRoom, error) {
	args := m.Called(ctx, number)
	var rooms []model.ChatRoom
	if v := args.Get(0); v != nil {
		rooms = v.([]model.ChatRoom)
	}
	return rooms, args.Error(1)
}

// AccountStore is a mock of model.AccountStore.
type AccountStore struct {
	mock.Mock
}

func (m *AccountStore) GetByEmail(ctx context.Context, email string) (model.Account, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(model.Account), args.Error(1)
}

func (m *AccountStore) Create(ctx context.Context, account model.Account) (model.Account, error) {
	args := m.Called(ctx, account)
	return args.Get(0).(model.Account), args.Error(1)
}

// AccountProvider is a mock of model.AccountProvider.
type AccountProvider struct {
	mock.Mock
}

func (m *AccountProvider) CreateAccount(ctx context.Context, email, password string) (uuid.UUID, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *AccountProvider) SignIn(ctx context.Context, email, password string) (uuid.UUID, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

// SessionStore is a mock of model.SessionStore.
type SessionStore struct {
	mock.Mock
}

func (m *SessionStore) MarkSignedIn(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *SessionStore) IsSignedIn(ctx context.Context, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

func (m *SessionStore) Clear(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *SessionStore) AcquireBusy(ctx context.Context, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

func (m *SessionStore) ReleaseBusy(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *SessionStore) IsBusy(ctx context.Context, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

func (m *SessionStore) PushNotification(ctx context.Context, userID uuid.UUID, message string) error {
	return m.Called(ctx, userID, message).Error(0)
}

func (m *SessionStore) ConsumeNotification(ctx context.Context, userID uuid.UUID) (string, bool, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Bool(1), args.Error(2)
}

// Storage is a mock of model.Storage.
type Storage struct {
	mock.Mock
}

func (m *Storage) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	return m.Called(ctx, key, reader, size, contentType).Error(0)
}

func (m *Storage) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	args := m.Called(ctx, key)
	var rc io.ReadCloser
	if v := args.Get(0); v != nil {
		rc = v.(io.ReadCloser)
	}
	return rc, args.Error(1)
}

func (m *Storage) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *Storage) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *Storage) ResolveAddress(key string) string {
	return m.Called(key).String(0)
}

// UpdatePublisher is a mock of model.UpdatePublisher.
type UpdatePublisher struct {
	mock.Mock
}

func (m *UpdatePublisher) RoomCreated(ctx context.Context, room model.ChatRoom) error {
	return m.Called(ctx, room).Error(0)
}

func (m *UpdatePublisher) ProfileUpdated(ctx context.Context, profile model.Profile) error {
	return m.Called(ctx, profile).Error(0)
}

// TokenManager is a mock of model.TokenManager.
type TokenManager struct {
	mock.Mock
}

func (m *TokenManager) GenerateAccessToken(userID uuid.UUID) (string, error) {
	args := m.Called(userID)
	return args.String(0), args.Error(1)
}

func (m *TokenManager) ParseAccessToken(tokenString string) (uuid.UUID, error) {
	args := m.Called(tokenString)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

// SecurityLayer is a mock of model.SecurityLayer.
type SecurityLayer struct {
	mock.Mock
}

func (m *SecurityLayer) Listen(protocol, addr string) (net.Listener, error) {
	args := m.Called(protocol, addr)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(net.Listener), args.Error(1)
}
