package usecase

import (
	"context"
	"fmt"
	"marketplace-service/internal/constants"
	"marketplace-service/internal/contextkeys"
	"marketplace-service/internal/core/domain"
	"marketplace-service/internal/core/port"
	"time"
)

type EstimateLoanUseCase struct {
	cache    port.EstimateCachePort
	cacheTTL time.Duration
}

func NewEstimateLoanUseCase(cache port.EstimateCachePort, cacheTTL time.Duration) *EstimateLoanUseCase {
	return &EstimateLoanUseCase{cache: cache, cacheTTL: cacheTTL}
}

func (uc *EstimateLoanUseCase) Execute(ctx context.Context, input domain.LoanInput) (*domain.LoanEstimate, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":       "EstimateLoan",
		"property_price": input.PropertyPrice,
	})

	if err := input.Validate(); err != nil {
		ucLogger.Warn("Loan input rejected", port.Fields{"error": err.Error()})
		return nil, err
	}

	key := fmt.Sprintf("%s%g|%g|%g|%g", constants.CacheKeyLoan,
		input.PropertyPrice, input.DownPaymentPercent, input.InterestRate, input.LoanTermYears)

	var cached domain.LoanEstimate
	if cacheLookup(ctx, uc.cache, key, &cached) {
		ucLogger.Debug("Loan estimate served from cache", nil)
		return &cached, nil
	}

	estimate, err := domain.EstimateLoan(input)
	if err != nil {
		return nil, err
	}
	cacheStore(ctx, uc.cache, key, estimate, uc.cacheTTL)

	ucLogger.Info("Loan estimated", port.Fields{"monthly_payment": estimate.MonthlyPayment})
	return estimate, nil
}
