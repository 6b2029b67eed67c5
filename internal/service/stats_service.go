package service

import (
	"context"

	"github.com/ininsico/voyago-api/internal/domain"
	"github.com/ininsico/voyago-api/internal/repository/ports"
)

type StatsService struct {
	stats ports.StatsRepository
}

func NewStatsService(statsRepo ports.StatsRepository) *StatsService {
	return &StatsService{stats: statsRepo}
}

func (s *StatsService) Overview(ctx context.Context) (*domain.Stats, error) {
	return s.stats.Overview(ctx)
}
