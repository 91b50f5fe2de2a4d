package session

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// newTestStore connects to a local Redis instance and cleans up any keys the
// test creates. Tests calling this helper require Redis on localhost:6379 and
// are skipped otherwise.
func newTestStore(t *testing.T) *Store {
	t.Helper()
	client := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("redis not available: %v", err)
	}
	t.Cleanup(func() {
		for _, prefix := range []string{SignedInPrefix, BusyPrefix, NotifyPrefix} {
			iter := client.Scan(ctx, 0, prefix+"*", 100).Iterator()
			for iter.Next(ctx) {
				client.Del(ctx, iter.Val())
			}
		}
		client.Close()
	})
	return NewStore(client)
}

func TestSignedInLifecycle(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	userID := uuid.New()

	signedIn, err := store.IsSignedIn(ctx, userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if signedIn {
		t.Error("expected signed out before MarkSignedIn")
	}

	if err := store.MarkSignedIn(ctx, userID); err != nil {
		t.Fatalf("MarkSignedIn: %v", err)
	}
	signedIn, err = store.IsSignedIn(ctx, userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !signedIn {
		t.Error("expected signed in after MarkSignedIn")
	}

	if err := store.Clear(ctx, userID); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	signedIn, err = store.IsSignedIn(ctx, userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if signedIn {
		t.Error("expected signed out after Clear")
	}
}

func TestBusyFlag_SecondAcquireRefused(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	userID := uuid.New()

	ok, err := store.AcquireBusy(ctx, userID)
	if err != nil || !ok {
		t.Fatalf("first acquire: ok=%v err=%v", ok, err)
	}

	ok, err = store.AcquireBusy(ctx, userID)
	if err != nil {
		t.Fatalf("second acquire: %v", err)
	}
	if ok {
		t.Error("second acquire must be refused while busy")
	}

	if err := store.ReleaseBusy(ctx, userID); err != nil {
		t.Fatalf("release: %v", err)
	}
	ok, err = store.AcquireBusy(ctx, userID)
	if err != nil || !ok {
		t.Errorf("acquire after release: ok=%v err=%v", ok, err)
	}
}

func TestNotification_SingleConsume(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	userID := uuid.New()

	if err := store.PushNotification(ctx, userID, "Login failed"); err != nil {
		t.Fatalf("push: %v", err)
	}

	msg, ok, err := store.ConsumeNotification(ctx, userID)
	if err != nil {
		t.Fatalf("first consume: %v", err)
	}
	if !ok || msg != "Login failed" {
		t.Errorf("first consume: got (%q, %v), want (\"Login failed\", true)", msg, ok)
	}

	msg, ok, err = store.ConsumeNotification(ctx, userID)
	if err != nil {
		t.Fatalf("second consume: %v", err)
	}
	if ok {
		t.Errorf("second consume must return nothing, got %q", msg)
	}
}
