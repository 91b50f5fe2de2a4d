// Package events publishes directory change announcements over NATS so that
// interested consumers (chat-list views, caches) can refresh without polling.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/barii/chat-directory/internal/model"
)

// NATS subject patterns used by the directory.
const (
	SubjectRoomCreated    = "directory.room.created"    // + .<number>
	SubjectProfileUpdated = "directory.profile.updated" // + .<user_id>
)

var _ model.UpdatePublisher = (*Publisher)(nil)

// RoomCreatedEvent is the payload published to both members when a room is
// created.
type RoomCreatedEvent struct {
	RoomID     string `json:"room_id"`
	PeerID     string `json:"peer_id"`
	PeerName   string `json:"peer_name"`
	PeerNumber string `json:"peer_number"`
}

// ProfileUpdatedEvent announces a profile write.
type ProfileUpdatedEvent struct {
	UserID string `json:"user_id"`
	Number string `json:"number"`
}

// Publisher announces directory updates over a NATS connection.
type Publisher struct {
	conn *nats.Conn
}

// Connect dials NATS at url and returns a ready publisher.
func Connect(url string, name string) (*Publisher, error) {
	nc, err := nats.Connect(url,
		nats.Name(name),
		nats.ReconnectWait(2*time.Second),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	return &Publisher{conn: nc}, nil
}

// RoomCreated publishes the new room to both members' subjects.
func (p *Publisher) RoomCreated(_ context.Context, room model.ChatRoom) error {
	members := [2]model.RoomMember{room.Member1, room.Member2}
	for i, member := range members {
		peer := members[1-i]
		data, err := json.Marshal(RoomCreatedEvent{
			RoomID:     room.ID.String(),
			PeerID:     peer.UserID.String(),
			PeerName:   peer.Name,
			PeerNumber: peer.Number,
		})
		if err != nil {
			return fmt.Errorf("events: marshal room created: %w", err)
		}
		subject := SubjectRoomCreated + "." + member.Number
		if err := p.conn.Publish(subject, data); err != nil {
			return fmt.Errorf("events: publish %s: %w", subject, err)
		}
	}
	return nil
}

// ProfileUpdated publishes a profile change to the user's subject.
func (p *Publisher) ProfileUpdated(_ context.Context, profile model.Profile) error {
	data, err := json.Marshal(ProfileUpdatedEvent{
		UserID: profile.ID.String(),
		Number: profile.Number,
	})
	if err != nil {
		return fmt.Errorf("events: marshal profile updated: %w", err)
	}
	subject := SubjectProfileUpdated + "." + profile.ID.String()
	if err := p.conn.Publish(subject, data); err != nil {
		return fmt.Errorf("events: publish %s: %w", subject, err)
	}
	return nil
}

// Close drains and closes the NATS connection.
func (p *Publisher) Close() {
	p.conn.Close()
}

// NoopPublisher discards all updates. Used when NATS is not configured.
type NoopPublisher struct{}

func (NoopPublisher) RoomCreated(context.Context, model.ChatRoom) error   { return nil }
func (NoopPublisher) ProfileUpdated(context.Context, model.Profile) error { return nil }
