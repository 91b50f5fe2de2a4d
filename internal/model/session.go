package model

import (
	"context"

	"github.com/google/uuid"
)

// SessionStore tracks per-user session state: signed-in marker, the advisory
// busy flag, and the single-slot consume-once notification.
type SessionStore interface {
	MarkSignedIn(ctx context.Context, userID uuid.UUID) error
	IsSignedIn(ctx context.Context, userID uuid.UUID) (bool, error)
	Clear(ctx context.Context, userID uuid.UUID) error

	// AcquireBusy sets the busy flag for the user and reports whether it was
	// acquired. A false return means another operation is in flight.
	AcquireBusy(ctx context.Context, userID uuid.UUID) (bool, error)
	ReleaseBusy(ctx context.Context, userID uuid.UUID) error
	IsBusy(ctx context.Context, userID uuid.UUID) (bool, error)

	// PushNotification replaces the user's notification slot with message.
	PushNotification(ctx context.Context, userID uuid.UUID, message string) error
	// ConsumeNotification drains the slot: the first read returns the message,
	// subsequent reads return ok=false until the next push.
	ConsumeNotification(ctx context.Context, userID uuid.UUID) (message string, ok bool, err error)
}
