// Package auth implements the account provider: email/password account
// creation and credential verification backed by the account store.
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/barii/chat-directory/internal/logger"
	"github.com/barii/chat-directory/internal/model"
)

var _ model.AccountProvider = (*Provider)(nil)

type Provider struct {
	accountStore model.AccountStore
	logger       *logger.Logger
}

func NewProvider(accountStore model.AccountStore, logger *logger.Logger) *Provider {
	return &Provider{
		accountStore: accountStore,
		logger:       logger,
	}
}

// CreateAccount registers a new account and returns its id. The id doubles as
// the user id the profile is keyed by.
func (p *Provider) CreateAccount(ctx context.Context, email, password string) (uuid.UUID, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to hash password: %w", err)
	}

	account, err := p.accountStore.Create(ctx, model.Account{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
	})
	if errors.Is(err, model.ErrEmailTaken) {
		return uuid.Nil, model.ErrEmailTaken
	}
	if err != nil {
		p.logger.Error("Auth provider: failed to create account",
			"email", email,
			"error", err.Error())
		return uuid.Nil, fmt.Errorf("failed to create account: %w", err)
	}

	p.logger.Info("Auth provider: account created",
		"account_id", account.ID)

	return account.ID, nil
}

// SignIn verifies the credentials and returns the account id. An unknown
// email and a wrong password are indistinguishable to the caller.
func (p *Provider) SignIn(ctx context.Context, email, password string) (uuid.UUID, error) {
	account, err := p.accountStore.GetByEmail(ctx, email)
	if errors.Is(err, model.ErrNotFound) {
		return uuid.Nil, model.ErrInvalidCredentials
	}
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to get account by email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword(account.PasswordHash, []byte(password)); err != nil {
		return uuid.Nil, model.ErrInvalidCredentials
	}

	return account.ID, nil
}
