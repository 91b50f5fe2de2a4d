package model

import "context"

// UpdatePublisher announces directory changes to interested consumers.
// Publish failures must never fail the originating operation.
type UpdatePublisher interface {
	RoomCreated(ctx context.Context, room ChatRoom) error
	ProfileUpdated(ctx context.Context, profile Profile) error
}
