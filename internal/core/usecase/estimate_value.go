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

// EstimateValueUseCase оценивает стоимость сохраненного объявления или набора характеристик.
type EstimateValueUseCase struct {
	storage  port.PropertyStoragePort
	cache    port.EstimateCachePort // nil - без кэша
	cacheTTL time.Duration
	now      func() time.Time
}

func NewEstimateValueUseCase(storage port.PropertyStoragePort, cache port.EstimateCachePort, cacheTTL time.Duration, now func() time.Time) *EstimateValueUseCase {
	if now == nil {
		now = time.Now
	}
	return &EstimateValueUseCase{storage: storage, cache: cache, cacheTTL: cacheTTL, now: now}
}

func (uc *EstimateValueUseCase) Execute(ctx context.Context, req domain.ValuationRequest) (*domain.ValuationResult, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "EstimateValue",
	})

	currentYear := uc.now().Year()

	if req.PropertyID != nil {
		ucLogger = ucLogger.WithFields(port.Fields{"property_id": req.PropertyID.String()})
		property, err := uc.storage.GetByID(ctx, *req.PropertyID)
		if err != nil {
			return nil, err
		}

		attrs := domain.AttributesFromProperty(property)
		if err := attrs.Validate(); err != nil {
			ucLogger.Warn("Stored property attributes are out of range", port.Fields{"error": err.Error()})
			return nil, err
		}
		result := &domain.ValuationResult{
			EstimatedValue: domain.EstimatePropertyValue(attrs, currentYear),
			Confidence:     domain.ConfidenceHigh,
			Factors:        attrs,
			PropertyID:     &property.ID,
		}
		result.CompareWithPrice(property.Price)

		ucLogger.Info("Stored property valued", port.Fields{"estimated_value": result.EstimatedValue})
		return result, nil
	}

	if err := req.Attributes.Validate(); err != nil {
		return nil, err
	}
	attrs := req.Attributes.WithDefaults()

	key := valuationCacheKey(attrs, currentYear)
	var cached domain.ValuationResult
	if hit := cacheLookup(ctx, uc.cache, key, &cached); hit {
		ucLogger.Debug("Valuation served from cache", nil)
		return &cached, nil
	}

	result := &domain.ValuationResult{
		EstimatedValue: domain.EstimatePropertyValue(attrs, currentYear),
		Confidence:     domain.ConfidenceMedium,
		Factors:        attrs,
	}
	cacheStore(ctx, uc.cache, key, result, uc.cacheTTL)

	ucLogger.Info("Attributes valued", port.Fields{"estimated_value": result.EstimatedValue})
	return result, nil
}

func valuationCacheKey(a domain.ValuationAttributes, year int) string {
	return fmt.Sprintf("%s%s|%s|%d|%d|%d|%d|%d|%d",
		constants.CacheKeyValuation, a.PropertyType, a.City, a.AreaSqft, a.Bedrooms, a.Bathrooms, a.Parking, a.YearBuilt, year)
}

// cacheLookup: ошибки кэша не должны ломать расчет, поэтому они только логируются.
func cacheLookup(ctx context.Context, cache port.EstimateCachePort, key string, dest interface{}) bool {
	if cache == nil {
		return false
	}
	found, err := cache.Get(ctx, key, dest)
	if err != nil {
		contextkeys.LoggerFromContext(ctx).Warn("Estimate cache read failed", port.Fields{"key": key, "error": err.Error()})
		return false
	}
	return found
}

func cacheStore(ctx context.Context, cache port.EstimateCachePort, key string, value interface{}, ttl time.Duration) {
	if cache == nil {
		return
	}
	if err := cache.Set(ctx, key, value, ttl); err != nil {
		contextkeys.LoggerFromContext(ctx).Warn("Estimate cache write failed", port.Fields{"key": key, "error": err.Error()})
	}
}
