package usecases_port

import (
	"context"
	"marketplace-service/internal/core/domain"

	"github.com/google/uuid"
)

type AssistantChatUseCasePort interface {
	Execute(ctx context.Context, message string, propertyID *uuid.UUID) (*domain.ChatReply, error)
}

type GetStatsUseCasePort interface {
	Execute(ctx context.Context) (*domain.MarketplaceStats, error)
}
