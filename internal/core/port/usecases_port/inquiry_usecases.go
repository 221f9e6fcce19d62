package usecases_port

import (
	"context"
	"marketplace-service/internal/core/domain"

	"github.com/google/uuid"
)

type CreateInquiryUseCasePort interface {
	Execute(ctx context.Context, buyerID, propertyID uuid.UUID, message string) (*domain.Inquiry, error)
}

type ListReceivedInquiriesUseCasePort interface {
	Execute(ctx context.Context, sellerID uuid.UUID) ([]domain.ReceivedInquiry, error)
}

type ListSentInquiriesUseCasePort interface {
	Execute(ctx context.Context, buyerID uuid.UUID) ([]domain.SentInquiry, error)
}
