package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// AccountStore defines persistence operations for account credentials.
type AccountStore interface {
	GetByEmail(ctx context.Context, email string) (Account, error)
	Create(ctx context.Context, account Account) (Account, error)
}

// AccountProvider is the authentication collaborator: account creation and
// credential verification. The account id doubles as the profile's user id.
type AccountProvider interface {
	CreateAccount(ctx context.Context, email, password string) (uuid.UUID, error)
	SignIn(ctx context.Context, email, password string) (uuid.UUID, error)
}

// Account represents stored credentials for a user.
type Account struct {
	ID           uuid.UUID `db:"id"`
	Email        string    `db:"email"`
	PasswordHash []byte    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}
