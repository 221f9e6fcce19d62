package port

import (
	"context"
	"marketplace-service/internal/core/domain"
)

type StatsRepositoryPort interface {
	GetStats(ctx context.Context) (*domain.MarketplaceStats, error)
}
