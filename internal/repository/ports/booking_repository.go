package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/ininsico/voyago-api/internal/domain"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Booking, error)
	FindOwned(ctx context.Context, ownerID, id uuid.UUID) (*domain.Booking, error)
	UpdateStatusOwned(ctx context.Context, ownerID, id uuid.UUID, status domain.BookingStatus) (*domain.Booking, error)
	CountActiveByType(ctx context.Context, ownerID uuid.UUID, bookingType domain.BookingType) (int64, error)
	ListAll(ctx context.Context) ([]domain.BookingWithOwner, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	Update(ctx context.Context, id uuid.UUID, patch domain.BookingPatch) (*domain.Booking, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
