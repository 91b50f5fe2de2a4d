package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/barii/chat-directory/internal/model"
)

var _ model.ChatRoomStore = (*ChatRoomRepository)(nil)

const chatRoomColumns = "id, pair_key, " +
	"user1_id, user1_name, user1_number, user1_image_url, " +
	"user2_id, user2_name, user2_number, user2_image_url, created_at"

type ChatRoomRepository struct {
	db *Connection
}

func NewChatRoomRepository(db *Connection) *ChatRoomRepository {
	return &ChatRoomRepository{
		db: db,
	}
}

// chatRoomRow mirrors the flattened chat_rooms schema. Member snapshots are
// stored denormalized in the row itself.
type chatRoomRow struct {
	ID            uuid.UUID `db:"id"`
	PairKey       string    `db:"pair_key"`
	User1ID       uuid.UUID `db:"user1_id"`
	User1Name     string    `db:"user1_name"`
	User1Number   string    `db:"user1_number"`
	User1ImageURL string    `db:"user1_image_url"`
	User2ID       uuid.UUID `db:"user2_id"`
	User2Name     string    `db:"user2_name"`
	User2Number   string    `db:"user2_number"`
	User2ImageURL string    `db:"user2_image_url"`
	CreatedAt     time.Time `db:"created_at"`
}

func (row chatRoomRow) toModel() model.ChatRoom {
	return model.ChatRoom{
		ID:      row.ID,
		PairKey: row.PairKey,
		Member1: model.RoomMember{
			UserID:   row.User1ID,
			Name:     row.User1Name,
			Number:   row.User1Number,
			ImageURL: row.User1ImageURL,
		},
		Member2: model.RoomMember{
			UserID:   row.User2ID,
			Name:     row.User2Name,
			Number:   row.User2Number,
			ImageURL: row.User2ImageURL,
		},
		CreatedAt: row.CreatedAt,
	}
}

func (r *ChatRoomRepository) GetByPairKey(ctx context.Context, pairKey string) (model.ChatRoom, error) {
	query, args, err := sq.Select(chatRoomColumns).
		From("chat_rooms").
		Where(sq.Eq{"pair_key": pairKey}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return model.ChatRoom{}, fmt.Errorf("failed to build query: %w", err)
	}

	var row chatRoomRow
	err = r.db.GetContext(ctx, &row, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.ChatRoom{}, model.ErrNotFound
		}
		return model.ChatRoom{}, fmt.Errorf("failed to get chat room by pair key: %w", err)
	}

	return row.toModel(), nil
}

// CreateIfAbsent inserts the room unless the pair key is already taken, then
// reads back whichever room holds the key. Two racing creators for the same
// pair both end up with the single surviving row.
func (r *ChatRoomRepository) CreateIfAbsent(ctx context.Context, room model.ChatRoom) (model.ChatRoom, error) {
	query, args, err := sq.Insert("chat_rooms").
		Columns("id", "pair_key",
			"user1_id", "user1_name", "user1_number", "user1_image_url",
			"user2_id", "user2_name", "user2_number", "user2_image_url").
		Values(room.ID, room.PairKey,
			room.Member1.UserID, room.Member1.Name, room.Member1.Number, room.Member1.ImageURL,
			room.Member2.UserID, room.Member2.Name, room.Member2.Number, room.Member2.ImageURL).
		Suffix("ON CONFLICT (pair_key) DO NOTHING").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return model.ChatRoom{}, fmt.Errorf("failed to build query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return model.ChatRoom{}, fmt.Errorf("failed to create chat room: %w", err)
	}

	return r.GetByPairKey(ctx, room.PairKey)
}

func (r *ChatRoomRepository) ListByNumber(ctx context.Context, number string) ([]model.ChatRoom, error) {
	query, args, err := sq.Select(chatRoomColumns).
		From("chat_rooms").
		Where(sq.Or{
			sq.Eq{"user1_number": number},
			sq.Eq{"user2_number": number},
		}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var rows []chatRoomRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list chat rooms by number: %w", err)
	}

	rooms := make([]model.ChatRoom, 0, len(rows))
	for _, row := range rows {
		rooms = append(rooms, row.toModel())
	}

	return rooms, nil
}
