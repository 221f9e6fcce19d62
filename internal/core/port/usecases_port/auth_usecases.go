package usecases_port

import (
	"context"
	"marketplace-service/internal/core/domain"

	"github.com/google/uuid"
)

type RegisterUserUseCasePort interface {
	Execute(ctx context.Context, reg domain.Registration) (*domain.User, string, error) // пользователь и JWT
}

type LoginUserUseCasePort interface {
	Execute(ctx context.Context, email, password string) (*domain.User, string, error)
}

type ValidateTokenUseCasePort interface {
	Execute(ctx context.Context, tokenString string) (*domain.Claims, error)
}

type GetProfileUseCasePort interface {
	Execute(ctx context.Context, userID uuid.UUID) (*domain.User, error)
}
