package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/barii/chat-directory/internal/logger"
	"github.com/barii/chat-directory/internal/metrics"
	"github.com/barii/chat-directory/internal/model"
)

// Directory resolves and creates chat rooms for unordered pairs of contact
// numbers, and lists a user's rooms.
type Directory struct {
	profileStore model.ProfileStore
	roomStore    model.ChatRoomStore
	publisher    model.UpdatePublisher
	logger       *logger.Logger
}

func NewDirectory(
	profileStore model.ProfileStore,
	roomStore model.ChatRoomStore,
	publisher model.UpdatePublisher,
	logger *logger.Logger,
) *Directory {
	return &Directory{
		profileStore: profileStore,
		roomStore:    roomStore,
		publisher:    publisher,
		logger:       logger,
	}
}

// ResolveOrCreate returns the room pairing the caller with the peer holding
// peerNumber, creating it on first contact. Calling again with the same pair,
// in either order, returns the same room. The unordered pair is arbitrated by
// a deterministic pair key with a conditional insert, so two racing callers
// still converge on a single room.
func (s *Directory) ResolveOrCreate(ctx context.Context, caller model.Profile, peerNumber string) (model.ChatRoom, error) {
	if !model.IsDigits(peerNumber) {
		return model.ChatRoom{}, model.ErrInvalidNumber
	}

	pairKey := model.PairKey(caller.Number, peerNumber)

	room, err := s.roomStore.GetByPairKey(ctx, pairKey)
	if err == nil {
		metrics.RoomsResolvedTotal.Inc()
		return room, nil
	}
	if !errors.Is(err, model.ErrNotFound) {
		return model.ChatRoom{}, fmt.Errorf("failed to get room by pair key: %w", err)
	}

	peer, err := s.profileStore.GetByNumber(ctx, peerNumber)
	if errors.Is(err, model.ErrNotFound) {
		return model.ChatRoom{}, model.ErrNotFound
	}
	if err != nil {
		return model.ChatRoom{}, fmt.Errorf("failed to get peer by number: %w", err)
	}

	room = model.ChatRoom{
		ID:      uuid.New(),
		PairKey: pairKey,
		Member1: model.MemberSnapshot(caller),
		Member2: model.MemberSnapshot(peer),
	}

	saved, err := s.roomStore.CreateIfAbsent(ctx, room)
	if err != nil {
		return model.ChatRoom{}, fmt.Errorf("failed to create room: %w", err)
	}

	if saved.ID != room.ID {
		// Lost the race against a concurrent creator for the same pair.
		metrics.RoomsResolvedTotal.Inc()
		return saved, nil
	}

	metrics.RoomsCreatedTotal.Inc()
	s.logger.Info("Directory service: room created",
		"room_id", saved.ID,
		"pair_key", pairKey)

	if err := s.publisher.RoomCreated(ctx, saved); err != nil {
		s.logger.Error("Directory service: failed to publish room created",
			"room_id", saved.ID,
			"error", err.Error())
	}

	return saved, nil
}

// ListRooms returns all rooms where either member snapshot carries the
// number. No ordering is guaranteed.
func (s *Directory) ListRooms(ctx context.Context, callerNumber string) ([]model.ChatRoom, error) {
	rooms, err := s.roomStore.ListByNumber(ctx, callerNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}

	return rooms, nil
}
