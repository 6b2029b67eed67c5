package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/ininsico/voyago-api/internal/domain"
)

type MessageRepository interface {
	Create(ctx context.Context, message *domain.Message) (*domain.Message, error)
	List(ctx context.Context) ([]domain.Message, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Message, error)
	SetReply(ctx context.Context, id uuid.UUID, reply string) (*domain.Message, error)
	SetStatus(ctx context.Context, id uuid.UUID, status domain.MessageStatus) (*domain.Message, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
