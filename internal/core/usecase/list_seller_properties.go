package usecase

import (
	"context"
	"marketplace-service/internal/contextkeys"
	"marketplace-service/internal/core/domain"
	"marketplace-service/internal/core/port"

	"github.com/google/uuid"
)

// ListSellerPropertiesUseCase - объявления продавца во всех статусах.
type ListSellerPropertiesUseCase struct {
	storage port.PropertyStoragePort
}

func NewListSellerPropertiesUseCase(storage port.PropertyStoragePort) *ListSellerPropertiesUseCase {
	return &ListSellerPropertiesUseCase{storage: storage}
}

func (uc *ListSellerPropertiesUseCase) Execute(ctx context.Context, sellerID uuid.UUID) ([]domain.Property, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":  "ListSellerProperties",
		"seller_id": sellerID.String(),
	})

	ucLogger.Info("Use case started", nil)

	filter := domain.SearchFilter{SellerID: &sellerID}
	properties, err := uc.storage.FindWithFilters(ctx, filter, domain.MaxSearchResults)
	if err != nil {
		ucLogger.Error("Storage returned an error", err, nil)
		return nil, err
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"found": len(properties)})
	return properties, nil
}
