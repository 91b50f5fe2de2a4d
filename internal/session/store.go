// Package session tracks per-user session state in Redis: the signed-in
// marker, the advisory busy flag suppressing duplicate submissions, and the
// single-slot consume-once notification.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/barii/chat-directory/internal/model"
)

const (
	// SignedInPrefix is the Redis key prefix for signed-in markers.
	SignedInPrefix = "signedin:"

	// BusyPrefix is the Redis key prefix for busy flags.
	BusyPrefix = "busy:"

	// NotifyPrefix is the Redis key prefix for notification slots.
	NotifyPrefix = "notify:"

	// SessionTTL is the time-to-live for signed-in markers.
	SessionTTL = 24 * time.Hour

	// BusyTTL bounds how long a busy flag can outlive a crashed operation.
	BusyTTL = time.Minute
)

var _ model.SessionStore = (*Store)(nil)

// Store manages session state in Redis.
type Store struct {
	client *redis.Client
}

// NewStore creates a session store on top of an existing Redis client.
func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

// Connect dials Redis at addr and returns a ready store.
func Connect(ctx context.Context, addr string) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("session: redis connection failed: %w", err)
	}

	return &Store{client: client}, nil
}

// MarkSignedIn records the user as signed in with a refreshed TTL.
func (s *Store) MarkSignedIn(ctx context.Context, userID uuid.UUID) error {
	return s.client.Set(ctx, SignedInPrefix+userID.String(), 1, SessionTTL).Err()
}

// IsSignedIn reports whether the user has an active signed-in marker.
func (s *Store) IsSignedIn(ctx context.Context, userID uuid.UUID) (bool, error) {
	n, err := s.client.Exists(ctx, SignedInPrefix+userID.String()).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Clear removes the user's signed-in marker and busy flag. The notification
// slot is left in place so a logout message can still be drained.
func (s *Store) Clear(ctx context.Context, userID uuid.UUID) error {
	return s.client.Del(ctx,
		SignedInPrefix+userID.String(),
		BusyPrefix+userID.String(),
	).Err()
}

// AcquireBusy sets the busy flag if it is not already held.
func (s *Store) AcquireBusy(ctx context.Context, userID uuid.UUID) (bool, error) {
	return s.client.SetNX(ctx, BusyPrefix+userID.String(), 1, BusyTTL).Result()
}

// ReleaseBusy clears the busy flag.
func (s *Store) ReleaseBusy(ctx context.Context, userID uuid.UUID) error {
	return s.client.Del(ctx, BusyPrefix+userID.String()).Err()
}

// IsBusy reports whether an operation is in flight for the user.
func (s *Store) IsBusy(ctx context.Context, userID uuid.UUID) (bool, error) {
	n, err := s.client.Exists(ctx, BusyPrefix+userID.String()).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// PushNotification replaces the user's notification slot with message.
func (s *Store) PushNotification(ctx context.Context, userID uuid.UUID, message string) error {
	return s.client.Set(ctx, NotifyPrefix+userID.String(), message, SessionTTL).Err()
}

// ConsumeNotification atomically reads and deletes the notification slot.
func (s *Store) ConsumeNotification(ctx context.Context, userID uuid.UUID) (string, bool, error) {
	message, err := s.client.GetDel(ctx, NotifyPrefix+userID.String()).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return message, true, nil
}

// Close closes the Redis connection.
func (s *Store) Close() error {
	return s.client.Close()
}
