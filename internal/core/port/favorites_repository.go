package port

import (
	"context"
	"marketplace-service/internal/core/domain"

	"github.com/google/uuid"
)

type FavoritesRepositoryPort interface {
	// Add возвращает domain.ErrAlreadyFavorited для повторного добавления.
	Add(ctx context.Context, userID, propertyID uuid.UUID) error
	// Remove возвращает domain.ErrFavoriteNotFound, если удалять нечего.
	Remove(ctx context.Context, userID, propertyID uuid.UUID) error
	Exists(ctx context.Context, userID, propertyID uuid.UUID) (bool, error)
	// ListByUser возвращает только активные объявления, последние добавленные первыми.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.FavoriteProperty, error)
}
