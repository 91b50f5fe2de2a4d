package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/barii/chat-directory/internal/logger"
	"github.com/barii/chat-directory/internal/model"
)

// ChatService defines chat-room resolution and notification operations.
type ChatService interface {
	AddChat(ctx context.Context, userID uuid.UUID, peerNumber string) (model.ChatRoom, error)
	ListChats(ctx context.Context, userID uuid.UUID) ([]model.ChatRoom, error)
	Notification(ctx context.Context, userID uuid.UUID) (string, bool, error)
	Busy(ctx context.Context, userID uuid.UUID) (bool, error)
}

// Chat handles HTTP endpoints for the chat directory.
type Chat struct {
	sessionService ChatService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewChat creates a new Chat handler.
func NewChat(sessionService ChatService, contextManager model.ContextManager, logger *logger.Logger) *Chat {
	return &Chat{
		sessionService: sessionService,
		contextManager: contextManager,
		logger:         logger,
	}
}

type addChatRequest struct {
	Number string `json:"number"`
}

type memberResponse struct {
	UserID   string `json:"user_id"`
	Name     string `json:"name"`
	Number   string `json:"number"`
	ImageURL string `json:"image_url,omitempty"`
}

type roomResponse struct {
	ID      string           `json:"id"`
	PairKey string           `json:"pair_key"`
	Members []memberResponse `json:"members"`
}

type notificationResponse struct {
	Message string `json:"message"`
}

type busyResponse struct {
	Busy bool `json:"busy"`
}

func newRoomResponse(room model.ChatRoom) roomResponse {
	return roomResponse{
		ID:      room.ID.String(),
		PairKey: room.PairKey,
		Members: []memberResponse{
			newMemberResponse(room.Member1),
			newMemberResponse(room.Member2),
		},
	}
}

func newMemberResponse(m model.RoomMember) memberResponse {
	return memberResponse{
		UserID:   m.UserID.String(),
		Name:     m.Name,
		Number:   m.Number,
		ImageURL: m.ImageURL,
	}
}

// Add resolves or creates the room between the caller and the given number.
func (h *Chat) Add(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.contextManager.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing authentication")
		return
	}

	var req addChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	room, err := h.sessionService.AddChat(r.Context(), userID, req.Number)
	if err != nil {
		h.logger.Error("Chat handler: add chat failed",
			"user_id", userID,
			"number", req.Number,
			"error", err.Error())
		handleError(w, err)
		return
	}

	h.logger.Info("Chat handler: chat resolved",
		"user_id", userID,
		"room_id", room.ID)
	writeJSON(w, http.StatusOK, newRoomResponse(room))
}

// List returns all chat rooms the caller participates in.
func (h *Chat) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.contextManager.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing authentication")
		return
	}

	rooms, err := h.sessionService.ListChats(r.Context(), userID)
	if err != nil {
		h.logger.Error("Chat handler: list chats failed",
			"user_id", userID,
			"error", err.Error())
		handleError(w, err)
		return
	}

	responses := make([]roomResponse, 0, len(rooms))
	for _, room := range rooms {
		responses = append(responses, newRoomResponse(room))
	}

	writeJSON(w, http.StatusOK, responses)
}

// Notification returns the pending notification for the caller, consuming it.
// A 204 response means there is nothing pending.
func (h *Chat) Notification(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.contextManager.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing authentication")
		return
	}

	message, found, err := h.sessionService.Notification(r.Context(), userID)
	if err != nil {
		h.logger.Error("Chat handler: notification fetch failed",
			"user_id", userID,
			"error", err.Error())
		handleError(w, err)
		return
	}
	if !found {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	writeJSON(w, http.StatusOK, notificationResponse{Message: message})
}

// Busy reports whether an operation currently holds the caller's busy flag.
func (h *Chat) Busy(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.contextManager.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing authentication")
		return
	}

	busy, err := h.sessionService.Busy(r.Context(), userID)
	if err != nil {
		h.logger.Error("Chat handler: busy check failed",
			"user_id", userID,
			"error", err.Error())
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, busyResponse{Busy: busy})
}
