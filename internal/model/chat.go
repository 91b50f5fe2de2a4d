package model

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ChatRoomStore defines persistence operations for chat rooms.
type ChatRoomStore interface {
	GetByPairKey(ctx context.Context, pairKey string) (ChatRoom, error)
	// CreateIfAbsent persists the room unless one with the same pair key
	// already exists, and returns the room stored under that key afterwards.
	CreateIfAbsent(ctx context.Context, room ChatRoom) (ChatRoom, error)
	ListByNumber(ctx context.Context, number string) ([]ChatRoom, error)
}

// RoomMember is a denormalized snapshot of a profile embedded in a chat room.
// It is captured at room-creation time and never refreshed, so room listings
// avoid a join at the cost of staleness.
type RoomMember struct {
	UserID   uuid.UUID `db:"user_id"`
	Name     string    `db:"name"`
	Number   string    `db:"number"`
	ImageURL string    `db:"image_url"`
}

// MemberSnapshot captures the current state of a profile as a room member.
func MemberSnapshot(p Profile) RoomMember {
	return RoomMember{
		UserID:   p.ID,
		Name:     p.Name,
		Number:   p.Number,
		ImageURL: p.ImageURL,
	}
}

// ChatRoom represents a two-party conversation pairing. The pair of members is
// semantically unordered: the room between A and B is the same room no matter
// which of them is Member1.
type ChatRoom struct {
	ID        uuid.UUID
	PairKey   string
	Member1   RoomMember
	Member2   RoomMember
	CreatedAt time.Time
}

// Peer returns the member whose number differs from the given one.
func (r ChatRoom) Peer(number string) RoomMember {
	if r.Member1.Number == number {
		return r.Member2
	}
	return r.Member1
}

// PairKey derives the deterministic composite key for an unordered pair of
// contact numbers. Both orders of the same two numbers produce the same key,
// which lets the store enforce at most one room per pair with a plain unique
// constraint.
func PairKey(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return a + ":" + b
}

// IsDigits reports whether s is non-empty and composed only of ASCII digits.
func IsDigits(s string) bool {
	if s == "" {
		return false
	}
	return strings.IndexFunc(s, func(r rune) bool { return r < '0' || r > '9' }) == -1
}
