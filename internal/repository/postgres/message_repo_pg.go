package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ininsico/voyago-api/internal/domain"
)

const messageColumns = "id, user_id, name, email, subject, content, reply, status, created_at, updated_at"

type MessageRepository struct {
	db *sqlx.DB
}

func NewMessageRepo(db *sqlx.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Create(ctx context.Context, message *domain.Message) (*domain.Message, error) {
	const query = `
        INSERT INTO messages (user_id, name, email, subject, content, status)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING ` + messageColumns

	row := r.db.QueryRowxContext(ctx, query,
		message.UserID, message.Name, message.Email, message.Subject, message.Content, message.Status)
	var stored domain.Message
	if err := row.StructScan(&stored); err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r *MessageRepository) List(ctx context.Context) ([]domain.Message, error) {
	const query = `SELECT ` + messageColumns + ` FROM messages ORDER BY created_at DESC`
	messages := []domain.Message{}
	if err := r.db.SelectContext(ctx, &messages, query); err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *MessageRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Message, error) {
	const query = `SELECT ` + messageColumns + ` FROM messages WHERE id = $1`
	var message domain.Message
	if err := r.db.GetContext(ctx, &message, query, id); err != nil {
		return nil, err
	}
	return &message, nil
}

func (r *MessageRepository) SetReply(ctx context.Context, id uuid.UUID, reply string) (*domain.Message, error) {
	const query = `
        UPDATE messages
        SET reply = $2, status = 'replied', updated_at = NOW()
        WHERE id = $1
        RETURNING ` + messageColumns

	row := r.db.QueryRowxContext(ctx, query, id, reply)
	var message domain.Message
	if err := row.StructScan(&message); err != nil {
		return nil, err
	}
	return &message, nil
}

func (r *MessageRepository) SetStatus(ctx context.Context, id uuid.UUID, status domain.MessageStatus) (*domain.Message, error) {
	const query = `
        UPDATE messages
        SET status = $2, updated_at = NOW()
        WHERE id = $1
        RETURNING ` + messageColumns

	row := r.db.QueryRowxContext(ctx, query, id, status)
	var message domain.Message
	if err := row.StructScan(&message); err != nil {
		return nil, err
	}
	return &message, nil
}

func (r *MessageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM messages WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return errNoRows
	}
	return nil
}
