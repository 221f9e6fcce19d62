package usecase

import (
	"context"
	"marketplace-service/internal/contextkeys"
	"marketplace-service/internal/core/domain"
	"marketplace-service/internal/core/port"
)

type GetStatsUseCase struct {
	stats port.StatsRepositoryPort
}

func NewGetStatsUseCase(stats port.StatsRepositoryPort) *GetStatsUseCase {
	return &GetStatsUseCase{stats: stats}
}

func (uc *GetStatsUseCase) Execute(ctx context.Context) (*domain.MarketplaceStats, error) {
	stats, err := uc.stats.GetStats(ctx)
	if err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Failed to load marketplace stats", err, port.Fields{"use_case": "GetStats"})
		return nil, err
	}
	return stats, nil
}
