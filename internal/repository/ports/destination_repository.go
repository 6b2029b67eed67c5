package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/ininsico/voyago-api/internal/domain"
)

type DestinationRepository interface {
	Create(ctx context.Context, fields domain.DestinationFields) (*domain.Destination, error)
	Update(ctx context.Context, id uuid.UUID, fields domain.DestinationFields) (*domain.Destination, error)
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Destination, error)
	List(ctx context.Context) ([]domain.Destination, error)
}
