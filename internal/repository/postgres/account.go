package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/barii/chat-directory/internal/model"
)

var _ model.AccountStore = (*AccountRepository)(nil)

const accountColumns = "id, email, password_hash, created_at"

type AccountRepository struct {
	db *Connection
}

func NewAccountRepository(db *Connection) *AccountRepository {
	return &AccountRepository{
		db: db,
	}
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (model.Account, error) {
	query, args, err := sq.Select(accountColumns).
		From("accounts").
		Where(sq.Eq{"email": email}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return model.Account{}, fmt.Errorf("failed to build query: %w", err)
	}

	var account model.Account
	err = r.db.GetContext(ctx, &account, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Account{}, model.ErrNotFound
		}
		return model.Account{}, fmt.Errorf("failed to get account by email: %w", err)
	}

	return account, nil
}

func (r *AccountRepository) Create(ctx context.Context, account model.Account) (model.Account, error) {
	query, args, err := sq.Insert("accounts").
		Columns("id", "email", "password_hash").
		Values(account.ID, account.Email, account.PasswordHash).
		Suffix("RETURNING " + accountColumns).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return model.Account{}, fmt.Errorf("failed to build query: %w", err)
	}

	var saved model.Account
	err = r.db.GetContext(ctx, &saved, query, args...)
	if constraintName(err) == "accounts_email_key" {
		return model.Account{}, model.ErrEmailTaken
	}
	if err != nil {
		return model.Account{}, fmt.Errorf("failed to create account: %w", err)
	}

	return saved, nil
}
