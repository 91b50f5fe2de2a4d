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
)

func testRoom(callerNumber, peerNumber string) model.ChatRoom {
	return model.ChatRoom{
		ID:      uuid.New(),
		PairKey: model.PairKey(callerNumber, peerNumber),
		Member1: model.RoomMember{UserID: uuid.New(), Name: "Caller", Number: callerNumber},
		Member2: model.RoomMember{UserID: uuid.New(), Name: "Peer", Number: peerNumber},
	}
}

func TestChat_Add(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	t.Run("resolves room", func(t *testing.T) {
		t.Parallel()

		room := testRoom("111", "222")
		sessionMock := &mockSession{}
		sessionMock.On("AddChat", mock.Anything, userID, "222").Return(room, nil)
		h := NewChat(sessionMock, testContextManager, testLogger(t))

		req := authenticated(httptest.NewRequest(http.MethodPost, "/api/chats",
			strings.NewReader(`{"number":"222"}`)), userID)
		rec := httptest.NewRecorder()
		h.Add(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var resp roomResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, room.ID.String(), resp.ID)
		assert.Equal(t, room.PairKey, resp.PairKey)
		require.Len(t, resp.Members, 2)
		assert.Equal(t, "111", resp.Members[0].Number)
		assert.Equal(t, "222", resp.Members[1].Number)
	})

	t.Run("non-numeric peer", func(t *testing.T) {
		t.Parallel()

		sessionMock := &mockSession{}
		sessionMock.On("AddChat", mock.Anything, userID, "abc").
			Return(model.ChatRoom{}, model.ErrInvalidNumber)
		h := NewChat(sessionMock, testContextManager, testLogger(t))

		req := authenticated(httptest.NewRequest(http.MethodPost, "/api/chats",
			strings.NewReader(`{"number":"abc"}`)), userID)
		rec := httptest.NewRecorder()
		h.Add(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown peer", func(t *testing.T) {
		t.Parallel()

		sessionMock := &mockSession{}
		sessionMock.On("AddChat", mock.Anything, userID, "999").
			Return(model.ChatRoom{}, model.ErrNotFound)
		h := NewChat(sessionMock, testContextManager, testLogger(t))

		req := authenticated(httptest.NewRequest(http.MethodPost, "/api/chats",
			strings.NewReader(`{"number":"999"}`)), userID)
		rec := httptest.NewRecorder()
		h.Add(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("busy", func(t *testing.T) {
		t.Parallel()

		sessionMock := &mockSession{}
		sessionMock.On("AddChat", mock.Anything, userID, "222").
			Return(model.ChatRoom{}, model.ErrBusy)
		h := NewChat(sessionMock, testContextManager, testLogger(t))

		req := authenticated(httptest.NewRequest(http.MethodPost, "/api/chats",
			strings.NewReader(`{"number":"222"}`)), userID)
		rec := httptest.NewRecorder()
		h.Add(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestChat_List(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	t.Run("returns rooms", func(t *testing.T) {
		t.Parallel()

		rooms := []model.ChatRoom{testRoom("111", "222"), testRoom("111", "333")}
		sessionMock := &mockSession{}
		sessionMock.On("ListChats", mock.Anything, userID).Return(rooms, nil)
		h := NewChat(sessionMock, testContextManager, testLogger(t))

		req := authenticated(httptest.NewRequest(http.MethodGet, "/api/chats", nil), userID)
		rec := httptest.NewRecorder()
		h.List(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var resp []roomResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		require.Len(t, resp, 2)
	})

	t.Run("no rooms returns empty array", func(t *testing.T) {
		t.Parallel()

		sessionMock := &mockSession{}
		sessionMock.On("ListChats", mock.Anything, userID).Return([]model.ChatRoom{}, nil)
		h := NewChat(sessionMock, testContextManager, testLogger(t))

		req := authenticated(httptest.NewRequest(http.MethodGet, "/api/chats", nil), userID)
		rec := httptest.NewRecorder()
		h.List(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "[]\n", rec.Body.String())
	})
}

func TestChat_Notification(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	t.Run("pending notification is returned", func(t *testing.T) {
		t.Parallel()

		sessionMock := &mockSession{}
		sessionMock.On("Notification", mock.Anything, userID).
			Return("Logged out successfully", true, nil)
		h := NewChat(sessionMock, testContextManager, testLogger(t))

		req := authenticated(httptest.NewRequest(http.MethodGet, "/api/notification", nil), userID)
		rec := httptest.NewRecorder()
		h.Notification(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var resp notificationResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, "Logged out successfully", resp.Message)
	})

	t.Run("nothing pending", func(t *testing.T) {
		t.Parallel()

		sessionMock := &mockSession{}
		sessionMock.On("Notification", mock.Anything, userID).Return("", false, nil)
		h := NewChat(sessionMock, testContextManager, testLogger(t))

		req := authenticated(httptest.NewRequest(http.MethodGet, "/api/notification", nil), userID)
		rec := httptest.NewRecorder()
		h.Notification(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, rec.Body.String())
	})
}

func TestChat_Busy(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	sessionMock := &mockSession{}
	sessionMock.On("Busy", mock.Anything, userID).Return(true, nil)
	h := NewChat(sessionMock, testContextManager, testLogger(t))

	req := authenticated(httptest.NewRequest(http.MethodGet, "/api/busy", nil), userID)
	rec := httptest.NewRecorder()
	h.Busy(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp busyResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.True(t, resp.Busy)
}
