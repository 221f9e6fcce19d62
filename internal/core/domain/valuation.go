package domain

import (
	"fmt"
	"math"

	"github.com/google/uuid"
)

const (
	defaultPricePerSqft = 200.0
	defaultAreaSqft     = 1000

	bedroomBonus  = 50000.0
	bathroomBonus = 30000.0
	parkingBonus  = 20000.0

	// Дома моложе newBuildingHorizon лет получают до maxAgeBonus к цене
	newBuildingHorizon = 30.0
	maxAgeBonus        = 0.10
)

// Пределы характеристик, при которых оценка гарантированно помещается в int64
const (
	MaxAreaSqft  = 10_000_000
	MaxRoomCount = 1000
	MaxYearBuilt = 9999
)

// Доверие к оценке
const (
	ConfidenceHigh   = "High"
	ConfidenceMedium = "Medium"
)

var pricePerSqft = map[string]float64{
	"House":     200,
	"Condo":     250,
	"Apartment": 180,
	"Townhouse": 220,
}

var locationMultipliers = map[string]float64{
	"Manhattan": 1.8,
	"Brooklyn":  1.3,
	"Queens":    1.0,
	"Bronx":     0.8,
}

// ValuationAttributes - входные данные оценщика. Нулевое значение означает "не указано".
type ValuationAttributes struct {
	PropertyType string `json:"property_type"`
	AreaSqft     int    `json:"area_sqft"`
	Bedrooms     int    `json:"bedrooms"`
	Bathrooms    int    `json:"bathrooms"`
	Parking      int    `json:"parking"`
	YearBuilt    int    `json:"year_built"`
	City         string `json:"city"`
}

func (a ValuationAttributes) Validate() error {
	if a.AreaSqft < 0 || a.Bedrooms < 0 || a.Bathrooms < 0 || a.Parking < 0 || a.YearBuilt < 0 {
		return fmt.Errorf("%w: numeric attributes cannot be negative", ErrInvalidValuationInput)
	}
	if a.AreaSqft > MaxAreaSqft {
		return fmt.Errorf("%w: area_sqft cannot exceed %d", ErrInvalidValuationInput, MaxAreaSqft)
	}
	if a.Bedrooms > MaxRoomCount || a.Bathrooms > MaxRoomCount || a.Parking > MaxRoomCount {
		return fmt.Errorf("%w: bedrooms, bathrooms and parking cannot exceed %d", ErrInvalidValuationInput, MaxRoomCount)
	}
	if a.YearBuilt > MaxYearBuilt {
		return fmt.Errorf("%w: year_built cannot exceed %d", ErrInvalidValuationInput, MaxYearBuilt)
	}
	return nil
}

// WithDefaults заполняет пропуски значениями для "типичного" объекта.
func (a ValuationAttributes) WithDefaults() ValuationAttributes {
	if a.AreaSqft == 0 {
		a.AreaSqft = defaultAreaSqft
	}
	if a.Bedrooms == 0 {
		a.Bedrooms = 2
	}
	if a.Bathrooms == 0 {
		a.Bathrooms = 2
	}
	if a.PropertyType == "" {
		a.PropertyType = "House"
	}
	if a.City == "" {
		a.City = "Queens"
	}
	if a.YearBuilt == 0 {
		a.YearBuilt = 2000
	}
	if a.Parking == 0 {
		a.Parking = 1
	}
	return a
}

// AttributesFromProperty берет характеристики сохраненного объявления.
func AttributesFromProperty(p *Property) ValuationAttributes {
	a := ValuationAttributes{
		PropertyType: p.PropertyType,
		Parking:      p.Parking,
		City:         p.City,
	}
	if p.AreaSqft != nil {
		a.AreaSqft = *p.AreaSqft
	}
	if p.Bedrooms != nil {
		a.Bedrooms = *p.Bedrooms
	}
	if p.Bathrooms != nil {
		a.Bathrooms = *p.Bathrooms
	}
	if p.YearBuilt != nil {
		a.YearBuilt = *p.YearBuilt
	}
	return a
}

// EstimatePropertyValue - детерминированная оценка стоимости.
// Порядок операций фиксирован: база, надбавки, возраст, локация, округление.
func EstimatePropertyValue(a ValuationAttributes, currentYear int) int64 {
	area := a.AreaSqft
	if area <= 0 {
		area = defaultAreaSqft
	}
	rate, ok := pricePerSqft[a.PropertyType]
	if !ok {
		rate = defaultPricePerSqft
	}

	value := float64(area) * rate
	value += float64(a.Bedrooms) * bedroomBonus
	value += float64(a.Bathrooms) * bathroomBonus
	value += float64(a.Parking) * parkingBonus

	if a.YearBuilt > 0 {
		age := currentYear - a.YearBuilt
		if age < 0 {
			age = 0
		}
		bonus := math.Max(0, (newBuildingHorizon-float64(age))/newBuildingHorizon) * maxAgeBonus
		value *= 1 + bonus
	}

	if m, ok := locationMultipliers[a.City]; ok {
		value *= m
	}

	// Вне диапазона int64 оценка насыщается, а не переполняется
	rounded := math.Round(value)
	if rounded >= math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(rounded)
}

// ValuationRequest - либо ссылка на объявление, либо набор характеристик.
type ValuationRequest struct {
	PropertyID *uuid.UUID
	Attributes ValuationAttributes
}

// ValuationResult - результат оценки. Поля сравнения заполняются только для сохраненного объявления.
type ValuationResult struct {
	EstimatedValue int64               `json:"estimated_value"`
	Confidence     string              `json:"confidence"`
	Factors        ValuationAttributes `json:"factors"`

	PropertyID        *uuid.UUID `json:"property_id,omitempty"`
	CurrentPrice      *float64   `json:"current_price,omitempty"`
	Difference        *float64   `json:"difference,omitempty"`
	DifferencePercent *float64   `json:"difference_percent,omitempty"`
}

// CompareWithPrice дополняет результат сравнением с ценой в объявлении.
func (r *ValuationResult) CompareWithPrice(price float64) {
	r.CurrentPrice = &price
	diff := float64(r.EstimatedValue) - price
	r.Difference = &diff
	if price > 0 {
		pct := math.Round(diff/price*100*100) / 100
		r.DifferencePercent = &pct
	}
}
