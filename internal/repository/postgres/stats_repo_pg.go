package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/ininsico/voyago-api/internal/domain"
)

type StatsRepository struct {
	db *sqlx.DB
}

func NewStatsRepo(db *sqlx.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

// Overview computes all dashboard counters in one round trip. Revenue only
// counts confirmed bookings.
func (r *StatsRepository) Overview(ctx context.Context) (*domain.Stats, error) {
	const query = `
        SELECT
            (SELECT COUNT(*) FROM users) AS total_users,
            (SELECT COUNT(*) FROM bookings) AS total_bookings,
            (SELECT COUNT(*) FROM bookings WHERE status = 'pending') AS pending_bookings,
            (SELECT COUNT(*) FROM messages WHERE status = 'unread') AS unread_messages,
            (SELECT COALESCE(SUM(total_price), 0) FROM bookings WHERE status = 'confirmed') AS total_revenue
    `
	var stats domain.Stats
	if err := r.db.GetContext(ctx, &stats, query); err != nil {
		return nil, err
	}
	return &stats, nil
}
