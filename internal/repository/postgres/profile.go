package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/barii/chat-directory/internal/model"
)

var _ model.ProfileStore = (*ProfileRepository)(nil)

const profileColumns = "id, name, number, email, image_url, created_at, updated_at"

type ProfileRepository struct {
	db *Connection
}

func NewProfileRepository(db *Connection) *ProfileRepository {
	return &ProfileRepository{
		db: db,
	}
}

func (r *ProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Profile, error) {
	query, args, err := sq.Select(profileColumns).
		From("users").
		Where(sq.Eq{"id": id}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return model.Profile{}, fmt.Errorf("failed to build query: %w", err)
	}

	var profile model.Profile
	err = r.db.GetContext(ctx, &profile, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Profile{}, model.ErrNotFound
		}
		return model.Profile{}, fmt.Errorf("failed to get profile by id: %w", err)
	}

	return profile, nil
}

func (r *ProfileRepository) GetByNumber(ctx context.Context, number string) (model.Profile, error) {
	query, args, err := sq.Select(profileColumns).
		From("users").
		Where(sq.Eq{"number": number}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return model.Profile{}, fmt.Errorf("failed to build query: %w", err)
	}

	var profile model.Profile
	err = r.db.GetContext(ctx, &profile, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Profile{}, model.ErrNotFound
		}
		return model.Profile{}, fmt.Errorf("failed to get profile by number: %w", err)
	}

	return profile, nil
}

func (r *ProfileRepository) Create(ctx context.Context, profile model.Profile) (model.Profile, error) {
	query, args, err := sq.Insert("users").
		Columns("id", "name", "number", "email", "image_url").
		Values(profile.ID, profile.Name, profile.Number, profile.Email, profile.ImageURL).
		Suffix("RETURNING " + profileColumns).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return model.Profile{}, fmt.Errorf("failed to build query: %w", err)
	}

	var saved model.Profile
	err = r.db.GetContext(ctx, &saved, query, args...)
	if constraintName(err) == "users_number_key" {
		return model.Profile{}, model.ErrNumberTaken
	}
	if err != nil {
		return model.Profile{}, fmt.Errorf("failed to create profile: %w", err)
	}

	return saved, nil
}

func (r *ProfileRepository) Update(ctx context.Context, id uuid.UUID, update model.ProfileUpdate) (model.Profile, error) {
	builder := sq.Update("users").
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + profileColumns).
		PlaceholderFormat(sq.Dollar)

	if update.Name != nil {
		builder = builder.Set("name", *update.Name)
	}
	if update.Number != nil {
		builder = builder.Set("number", *update.Number)
	}
	if update.Email != nil {
		builder = builder.Set("email", *update.Email)
	}
	if update.ImageURL != nil {
		builder = builder.Set("image_url", *update.ImageURL)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return model.Profile{}, fmt.Errorf("failed to build query: %w", err)
	}

	var saved model.Profile
	err = r.db.GetContext(ctx, &saved, query, args...)
	if constraintName(err) == "users_number_key" {
		return model.Profile{}, model.ErrNumberTaken
	}
	if errors.Is(err, sql.ErrNoRows) {
		return model.Profile{}, model.ErrNotFound
	}
	if err != nil {
		return model.Profile{}, fmt.Errorf("failed to update profile: %w", err)
	}

	return saved, nil
}
