package port

import (
	"context"
	"marketplace-service/internal/core/domain"

	"github.com/google/uuid"
)

// PropertyStoragePort - хранилище объявлений.
type PropertyStoragePort interface {
	// FindWithFilters возвращает не более limit объявлений, новые первыми.
	FindWithFilters(ctx context.Context, filter domain.SearchFilter, limit int) ([]domain.Property, error)
	// GetByID возвращает domain.ErrPropertyNotFound, если объявления нет.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Property, error)
	Create(ctx context.Context, property *domain.Property) error
	Update(ctx context.Context, id uuid.UUID, changes domain.PropertyChanges) error
	// Delete удаляет запись физически.
	Delete(ctx context.Context, id uuid.UUID) error
}
