package usecase

import (
	"context"
	"marketplace-service/internal/contextkeys"
	"marketplace-service/internal/core/domain"
	"marketplace-service/internal/core/port"

	"github.com/google/uuid"
)

type CreatePropertyUseCase struct {
	storage   port.PropertyStoragePort
	publisher port.EventPublisherPort // может быть nil, если брокер отключен
}

func NewCreatePropertyUseCase(storage port.PropertyStoragePort, publisher port.EventPublisherPort) *CreatePropertyUseCase {
	return &CreatePropertyUseCase{storage: storage, publisher: publisher}
}

func (uc *CreatePropertyUseCase) Execute(ctx context.Context, sellerID uuid.UUID, input domain.PropertyInput) (*domain.Property, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":  "CreateProperty",
		"seller_id": sellerID.String(),
	})

	ucLogger.Info("Use case started", nil)

	property, err := domain.NewProperty(sellerID, input)
	if err != nil {
		ucLogger.Warn("Property input rejected", port.Fields{"error": err.Error()})
		return nil, err
	}
	ucLogger = ucLogger.WithFields(port.Fields{"property_id": property.ID.String()})

	if err := uc.storage.Create(ctx, property); err != nil {
		ucLogger.Error("Storage failed to create property", err, nil)
		return nil, err
	}

	// Событие вторично: объявление уже сохранено, ошибку брокера только логируем
	if uc.publisher != nil {
		event := domain.PropertyListedEvent{
			PropertyID:  property.ID,
			SellerID:    property.SellerID,
			Title:       property.Title,
			City:        property.City,
			State:       property.State,
			ListingType: property.ListingType,
			Price:       property.Price,
			CreatedAt:   property.CreatedAt,
		}
		if err := uc.publisher.PublishPropertyListed(ctx, event); err != nil {
			ucLogger.Error("Failed to publish property listed event", err, nil)
		}
	}

	ucLogger.Info("Use case finished successfully", nil)
	return property, nil
}
