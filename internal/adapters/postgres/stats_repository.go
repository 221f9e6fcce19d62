package postgres

import (
	"context"
	"fmt"
	"marketplace-service/internal/contextkeys"
	"marketplace-service/internal/core/domain"
	"marketplace-service/internal/core/port"

	"github.com/jackc/pgx/v5/pgxpool"
)

type StatsRepository struct {
	pool *pgxpool.Pool
}

func NewStatsRepository(pool *pgxpool.Pool) (*StatsRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &StatsRepository{pool: pool}, nil
}

// GetStats считает все счетчики одним запросом
func (r *StatsRepository) GetStats(ctx context.Context) (*domain.MarketplaceStats, error) {
	query := `SELECT
		(SELECT COUNT(*) FROM users),
		(SELECT COUNT(*) FROM properties),
		(SELECT COUNT(*) FROM properties WHERE status = $1),
		(SELECT COUNT(*) FROM favorites),
		(SELECT COUNT(*) FROM inquiries)`

	var stats domain.MarketplaceStats
	err := r.pool.QueryRow(ctx, query, domain.StatusActive).Scan(
		&stats.Users, &stats.Properties, &stats.ActiveProperties, &stats.Favorites, &stats.Inquiries,
	)
	if err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Failed to collect stats", err, port.Fields{
			"component": "StatsRepository",
			"method":    "GetStats",
		})
		return nil, fmt.Errorf("failed to collect stats: %w", err)
	}
	return &stats, nil
}
