package usecase

import (
	"context"
	"marketplace-service/internal/contextkeys"
	"marketplace-service/internal/core/domain"
	"marketplace-service/internal/core/port"

	"github.com/google/uuid"
)

// UpdatePropertyUseCase - частичное обновление объявления владельцем или администратором.
type UpdatePropertyUseCase struct {
	storage port.PropertyStoragePort
}

func NewUpdatePropertyUseCase(storage port.PropertyStoragePort) *UpdatePropertyUseCase {
	return &UpdatePropertyUseCase{storage: storage}
}

func (uc *UpdatePropertyUseCase) Execute(ctx context.Context, actor *domain.Claims, id uuid.UUID, changes domain.PropertyChanges) error {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":    "UpdateProperty",
		"property_id": id.String(),
		"user_id":     actor.UserID.String(),
	})

	ucLogger.Info("Use case started", nil)

	if changes.IsEmpty() {
		return domain.ErrNoFieldsToUpdate
	}
	if err := changes.Validate(); err != nil {
		ucLogger.Warn("Update rejected", port.Fields{"error": err.Error()})
		return err
	}

	current, err := uc.storage.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !actor.CanManage(current) {
		ucLogger.Warn("Update denied: not the owner", nil)
		return domain.ErrForbidden
	}

	// Координаты поменялись - пересчитываем geohash по итоговой точке
	if changes.Latitude != nil || changes.Longitude != nil {
		updated := current.Apply(changes)
		hash := domain.GeohashFor(updated.Latitude, updated.Longitude)
		changes.Geohash = &hash
	}

	if err := uc.storage.Update(ctx, id, changes); err != nil {
		ucLogger.Error("Storage failed to update property", err, nil)
		return err
	}

	ucLogger.Info("Use case finished successfully", nil)
	return nil
}
