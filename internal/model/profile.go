package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ProfileStore defines persistence operations for profiles.
type ProfileStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (Profile, error)
	GetByNumber(ctx context.Context, number string) (Profile, error)
	Create(ctx context.Context, profile Profile) (Profile, error)
	Update(ctx context.Context, id uuid.UUID, update ProfileUpdate) (Profile, error)
}

// Profile represents a user's account metadata record. The contact number is
// the unique handle used to look up and pair users.
type Profile struct {
	ID        uuid.UUID `db:"id"`
	Name      string    `db:"name"`
	Number    string    `db:"number"`
	Email     string    `db:"email"`
	ImageURL  string    `db:"image_url"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// ProfileUpdate carries a partial profile change. Nil fields are left
// untouched by the update, they are not cleared.
type ProfileUpdate struct {
	Name     *string
	Number   *string
	Email    *string
	ImageURL *string
}

// IsEmpty reports whether the update carries no changes.
func (u ProfileUpdate) IsEmpty() bool {
	return u.Name == nil && u.Number == nil && u.Email == nil && u.ImageURL == nil
}
