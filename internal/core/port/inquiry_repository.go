package port

import (
	"context"
	"marketplace-service/internal/core/domain"

	"github.com/google/uuid"
)

type InquiryRepositoryPort interface {
	Create(ctx context.Context, inquiry *domain.Inquiry) error
	ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]domain.ReceivedInquiry, error)
	ListByBuyer(ctx context.Context, buyerID uuid.UUID) ([]domain.SentInquiry, error)
}
