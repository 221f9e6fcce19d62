package usecases_port

import (
	"context"
	"marketplace-service/internal/core/domain"
)

type EstimateValueUseCasePort interface {
	Execute(ctx context.Context, req domain.ValuationRequest) (*domain.ValuationResult, error)
}

type EstimateLoanUseCasePort interface {
	Execute(ctx context.Context, input domain.LoanInput) (*domain.LoanEstimate, error)
}
