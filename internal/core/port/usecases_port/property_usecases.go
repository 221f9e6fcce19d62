package usecases_port

import (
	"context"
	"marketplace-service/internal/core/domain"

	"github.com/google/uuid"
)

type SearchPropertiesUseCasePort interface {
	Execute(ctx context.Context, filter domain.SearchFilter) ([]domain.Property, error)
}

type ListPropertiesUseCasePort interface {
	Execute(ctx context.Context, filter domain.SearchFilter, limit int) ([]domain.Property, error)
}

type GetPropertyUseCasePort interface {
	Execute(ctx context.Context, id uuid.UUID) (*domain.Property, error)
}

type ListSellerPropertiesUseCasePort interface {
	Execute(ctx context.Context, sellerID uuid.UUID) ([]domain.Property, error)
}

type CreatePropertyUseCasePort interface {
	Execute(ctx context.Context, sellerID uuid.UUID, input domain.PropertyInput) (*domain.Property, error)
}

type UpdatePropertyUseCasePort interface {
	Execute(ctx context.Context, actor *domain.Claims, id uuid.UUID, changes domain.PropertyChanges) error
}

// DeletePropertyUseCasePort - мягкое удаление (status=inactive)
type DeletePropertyUseCasePort interface {
	Execute(ctx context.Context, actor *domain.Claims, id uuid.UUID) error
}

// PurgePropertyUseCasePort - удаление записи, только для администратора
type PurgePropertyUseCasePort interface {
	Execute(ctx context.Context, id uuid.UUID) error
}
