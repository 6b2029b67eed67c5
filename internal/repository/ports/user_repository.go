package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/ininsico/voyago-api/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, email, firstName string, lastName *string, passwordHash, passwordSalt []byte, role domain.Role) (*domain.User, error)
	UpsertGoogleUser(ctx context.Context, email string, firstName string, lastName *string, avatarURL *string, role domain.Role) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, firstName *string, lastName *string) (*domain.User, error)
	UpdateAvatar(ctx context.Context, id uuid.UUID, avatarURL string) (*domain.User, error)
	PromoteToAdmin(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]domain.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
