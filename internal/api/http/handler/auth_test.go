package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/barii/chat-directory/internal/model"
	"github.com/barii/chat-directory/internal/service"
)

func TestAuth_Signup(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	profile := model.Profile{ID: userID, Name: "Alice", Number: "12345", Email: "alice@example.com"}

	tests := []struct {
		name       string
		body       string
		setupMock  func(*mockSession)
		wantStatus int
		wantToken  string
	}{
		{
			name: "valid request",
			body: `{"name":"Alice","number":"12345","email":"alice@example.com","password":"secret1"}`,
			setupMock: func(m *mockSession) {
				m.On("Signup", mock.Anything, service.SignupParams{
					Name:     "Alice",
					Number:   "12345",
					Email:    "alice@example.com",
					Password: "secret1",
				}).Return(service.AuthResult{Profile: profile, Token: "tok"}, nil)
			},
			wantStatus: http.StatusCreated,
			wantToken:  "tok",
		},
		{
			name:       "malformed body",
			body:       `{"name":`,
			setupMock:  func(m *mockSession) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "number taken",
			body: `{"name":"Alice","number":"12345","email":"alice@example.com","password":"secret1"}`,
			setupMock: func(m *mockSession) {
				m.On("Signup", mock.Anything, mock.Anything).
					Return(service.AuthResult{}, model.ErrNumberTaken)
			},
			wantStatus: http.StatusConflict,
		},
		{
			name: "validation failure",
			body: `{"name":"Alice","number":"abc","email":"alice@example.com","password":"secret1"}`,
			setupMock: func(m *mockSession) {
				m.On("Signup", mock.Anything, mock.Anything).
					Return(service.AuthResult{}, model.ErrInvalidInput)
			},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			sessionMock := &mockSession{}
			tt.setupMock(sessionMock)
			h := NewAuth(sessionMock, testContextManager, testLogger(t))

			req := httptest.NewRequest(http.MethodPost, "/api/signup", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			h.Signup(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantToken != "" {
				var resp authResponse
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
				assert.Equal(t, tt.wantToken, resp.Token)
				assert.Equal(t, userID.String(), resp.Profile.ID)
				assert.Equal(t, "12345", resp.Profile.Number)
			}
			sessionMock.AssertExpectations(t)
		})
	}
}

func TestAuth_Login(t *testing.T) {
	t.Parallel()

	profile := model.Profile{ID: uuid.New(), Name: "Bob", Number: "777", Email: "bob@example.com"}

	t.Run("valid credentials", func(t *testing.T) {
		t.Parallel()

		sessionMock := &mockSession{}
		sessionMock.On("Login", mock.Anything, "bob@example.com", "secret1").
			Return(service.AuthResult{Profile: profile, Token: "tok"}, nil)
		h := NewAuth(sessionMock, testContextManager, testLogger(t))

		req := httptest.NewRequest(http.MethodPost, "/api/login",
			strings.NewReader(`{"email":"bob@example.com","password":"secret1"}`))
		rec := httptest.NewRecorder()
		h.Login(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var resp authResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, "tok", resp.Token)
		assert.Equal(t, "bob@example.com", resp.Profile.Email)
	})

	t.Run("invalid credentials", func(t *testing.T) {
		t.Parallel()

		sessionMock := &mockSession{}
		sessionMock.On("Login", mock.Anything, "bob@example.com", "wrong").
			Return(service.AuthResult{}, model.ErrInvalidCredentials)
		h := NewAuth(sessionMock, testContextManager, testLogger(t))

		req := httptest.NewRequest(http.MethodPost, "/api/login",
			strings.NewReader(`{"email":"bob@example.com","password":"wrong"}`))
		rec := httptest.NewRecorder()
		h.Login(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		t.Parallel()

		sessionMock := &mockSession{}
		h := NewAuth(sessionMock, testContextManager, testLogger(t))

		req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(`not json`))
		rec := httptest.NewRecorder()
		h.Login(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		sessionMock.AssertNotCalled(t, "Login", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestAuth_Logout(t *testing.T) {
	t.Parallel()

	t.Run("authenticated", func(t *testing.T) {
		t.Parallel()

		userID := uuid.New()
		sessionMock := &mockSession{}
		sessionMock.On("Logout", mock.Anything, userID).Return(nil)
		h := NewAuth(sessionMock, testContextManager, testLogger(t))

		req := authenticated(httptest.NewRequest(http.MethodPost, "/api/logout", nil), userID)
		rec := httptest.NewRecorder()
		h.Logout(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		sessionMock.AssertExpectations(t)
	})

	t.Run("missing user in context", func(t *testing.T) {
		t.Parallel()

		sessionMock := &mockSession{}
		h := NewAuth(sessionMock, testContextManager, testLogger(t))

		req := httptest.NewRequest(http.MethodPost, "/api/logout", nil)
		rec := httptest.NewRecorder()
		h.Logout(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		sessionMock.AssertNotCalled(t, "Logout", mock.Anything, mock.Anything)
	})
}
