package usecase

import (
	"context"
	"marketplace-service/internal/contextkeys"
	"marketplace-service/internal/core/domain"
	"marketplace-service/internal/core/port"
)

// SearchPropertiesUseCase - публичный поиск: только активные объявления, не больше MaxSearchResults.
type SearchPropertiesUseCase struct {
	storage port.PropertyStoragePort
}

func NewSearchPropertiesUseCase(storage port.PropertyStoragePort) *SearchPropertiesUseCase {
	return &SearchPropertiesUseCase{storage: storage}
}

func (uc *SearchPropertiesUseCase) Execute(ctx context.Context, filter domain.SearchFilter) ([]domain.Property, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "SearchProperties",
		"query":    filter.Query,
	})

	ucLogger.Info("Use case started", nil)

	filter.Status = domain.StatusActive
	filter.SellerID = nil

	properties, err := uc.storage.FindWithFilters(ctx, filter, domain.MaxSearchResults)
	if err != nil {
		ucLogger.Error("Storage returned an error", err, nil)
		return nil, err
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"found": len(properties)})
	return properties, nil
}
