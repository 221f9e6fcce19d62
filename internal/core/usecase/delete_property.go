package usecase

import (
	"context"
	"marketplace-service/internal/contextkeys"
	"marketplace-service/internal/core/domain"
	"marketplace-service/internal/core/port"

	"github.com/google/uuid"
)

// DeletePropertyUseCase снимает объявление с публикации (status=inactive), запись остается.
type DeletePropertyUseCase struct {
	storage port.PropertyStoragePort
}

func NewDeletePropertyUseCase(storage port.PropertyStoragePort) *DeletePropertyUseCase {
	return &DeletePropertyUseCase{storage: storage}
}

func (uc *DeletePropertyUseCase) Execute(ctx context.Context, actor *domain.Claims, id uuid.UUID) error {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":    "DeleteProperty",
		"property_id": id.String(),
		"user_id":     actor.UserID.String(),
	})

	ucLogger.Info("Use case started", nil)

	current, err := uc.storage.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !actor.CanManage(current) {
		ucLogger.Warn("Delete denied: not the owner", nil)
		return domain.ErrForbidden
	}

	inactive := domain.StatusInactive
	if err := uc.storage.Update(ctx, id, domain.PropertyChanges{Status: &inactive}); err != nil {
		ucLogger.Error("Storage failed to deactivate property", err, nil)
		return err
	}

	ucLogger.Info("Use case finished successfully", nil)
	return nil
}

// PurgePropertyUseCase - физическое удаление, доступно только администратору.
type PurgePropertyUseCase struct {
	storage port.PropertyStoragePort
}

func NewPurgePropertyUseCase(storage port.PropertyStoragePort) *PurgePropertyUseCase {
	return &PurgePropertyUseCase{storage: storage}
}

func (uc *PurgePropertyUseCase) Execute(ctx context.Context, id uuid.UUID) error {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":    "PurgeProperty",
		"property_id": id.String(),
	})

	if err := uc.storage.Delete(ctx, id); err != nil {
		ucLogger.Warn("Purge failed", port.Fields{"error": err.Error()})
		return err
	}

	ucLogger.Info("Property purged", nil)
	return nil
}
