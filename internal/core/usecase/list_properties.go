package usecase

import (
	"context"
	"marketplace-service/internal/contextkeys"
	"marketplace-service/internal/core/domain"
	"marketplace-service/internal/core/port"
)

// ListPropertiesUseCase - список объявлений с произвольным статусом и лимитом.
// Статус по умолчанию выставляет вызывающая сторона: публичный список передает active,
// админский - пустой статус (любой).
type ListPropertiesUseCase struct {
	storage port.PropertyStoragePort
}

func NewListPropertiesUseCase(storage port.PropertyStoragePort) *ListPropertiesUseCase {
	return &ListPropertiesUseCase{storage: storage}
}

func (uc *ListPropertiesUseCase) Execute(ctx context.Context, filter domain.SearchFilter, limit int) ([]domain.Property, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "ListProperties",
		"status":   filter.Status,
		"limit":    limit,
	})

	ucLogger.Info("Use case started", nil)

	properties, err := uc.storage.FindWithFilters(ctx, filter, domain.ClampLimit(limit))
	if err != nil {
		ucLogger.Error("Storage returned an error", err, nil)
		return nil, err
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"found": len(properties)})
	return properties, nil
}
