package ports

import (
	"context"

	"github.com/ininsico/voyago-api/internal/domain"
)

type StatsRepository interface {
	Overview(ctx context.Context) (*domain.Stats, error)
}
