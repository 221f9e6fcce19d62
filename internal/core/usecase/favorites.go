package usecase

import (
	"context"
	"marketplace-service/internal/contextkeys"
	"marketplace-service/internal/core/domain"
	"marketplace-service/internal/core/port"

	"github.com/google/uuid"
)

type AddToFavoritesUseCase struct {
	repo    port.FavoritesRepositoryPort
	storage port.PropertyStoragePort
}

func NewAddToFavoritesUseCase(repo port.FavoritesRepositoryPort, storage port.PropertyStoragePort) *AddToFavoritesUseCase {
	return &AddToFavoritesUseCase{repo: repo, storage: storage}
}

// Execute добавляет в избранное только активное объявление.
func (uc *AddToFavoritesUseCase) Execute(ctx context.Context, userID, propertyID uuid.UUID) error {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":    "AddToFavorites",
		"user_id":     userID,
		"property_id": propertyID,
	})

	ucLogger.Info("Use case started", nil)

	property, err := uc.storage.GetByID(ctx, propertyID)
	if err != nil {
		return err
	}
	if !property.IsActive() {
		ucLogger.Warn("Property is not active", port.Fields{"status": property.Status})
		return domain.ErrPropertyNotFound
	}

	if err := uc.repo.Add(ctx, userID, propertyID); err != nil {
		return err
	}

	ucLogger.Info("Use case finished successfully", nil)
	return nil
}

type RemoveFromFavoritesUseCase struct {
	repo port.FavoritesRepositoryPort
}

func NewRemoveFromFavoritesUseCase(repo port.FavoritesRepositoryPort) *RemoveFromFavoritesUseCase {
	return &RemoveFromFavoritesUseCase{repo: repo}
}

func (uc *RemoveFromFavoritesUseCase) Execute(ctx context.Context, userID, propertyID uuid.UUID) error {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":    "RemoveFromFavorites",
		"user_id":     userID,
		"property_id": propertyID,
	})

	ucLogger.Info("Use case started", nil)

	if err := uc.repo.Remove(ctx, userID, propertyID); err != nil {
		return err
	}

	ucLogger.Info("Use case finished successfully", nil)
	return nil
}

type GetUserFavoritesUseCase struct {
	repo port.FavoritesRepositoryPort
}

func NewGetUserFavoritesUseCase(repo port.FavoritesRepositoryPort) *GetUserFavoritesUseCase {
	return &GetUserFavoritesUseCase{repo: repo}
}

func (uc *GetUserFavoritesUseCase) Execute(ctx context.Context, userID uuid.UUID) ([]domain.FavoriteProperty, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "GetUserFavorites",
		"user_id":  userID,
	})

	favorites, err := uc.repo.ListByUser(ctx, userID)
	if err != nil {
		ucLogger.Error("Repository returned an error", err, nil)
		return nil, err
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"count": len(favorites)})
	return favorites, nil
}

type CheckFavoriteUseCase struct {
	repo port.FavoritesRepositoryPort
}

func NewCheckFavoriteUseCase(repo port.FavoritesRepositoryPort) *CheckFavoriteUseCase {
	return &CheckFavoriteUseCase{repo: repo}
}

func (uc *CheckFavoriteUseCase) Execute(ctx context.Context, userID, propertyID uuid.UUID) (bool, error) {
	return uc.repo.Exists(ctx, userID, propertyID)
}
