package domain

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mmcloughlin/geohash"
)

// Тип сделки
const (
	ListingSale = "sale"
	ListingRent = "rent"
)

// Статусы объявления
const (
	StatusActive   = "active"
	StatusSold     = "sold"
	StatusRented   = "rented"
	StatusInactive = "inactive"
)

func IsValidListingType(v string) bool {
	return v == ListingSale || v == ListingRent
}

func IsValidStatus(v string) bool {
	switch v {
	case StatusActive, StatusSold, StatusRented, StatusInactive:
		return true
	}
	return false
}

// SellerContact - проекция владельца объявления, приходит из JOIN с users.
type SellerContact struct {
	Name  string
	Email string
	Phone string
}

// Property - объявление о продаже или аренде.
type Property struct {
	ID           uuid.UUID
	SellerID     uuid.UUID
	Title        string
	Description  string
	Price        float64
	PropertyType string
	ListingType  string
	Address      string
	City         string
	State        string
	ZipCode      string
	Bedrooms     *int
	Bathrooms    *int
	AreaSqft     *int
	YearBuilt    *int
	Parking      int
	Images       []string
	Latitude     *float64
	Longitude    *float64
	Geohash      string
	Status       string
	CreatedAt    time.Time

	Seller SellerContact
}

// IsActive - объявление видно покупателям.
func (p *Property) IsActive() bool {
	return p.Status == StatusActive
}

// PropertyInput - данные, которые продавец передает при создании объявления.
type PropertyInput struct {
	Title        string
	Description  string
	Price        float64
	PropertyType string
	ListingType  string
	Address      string
	City         string
	State        string
	ZipCode      string
	Bedrooms     *int
	Bathrooms    *int
	AreaSqft     *int
	YearBuilt    *int
	Parking      int
	Images       []string
	Latitude     *float64
	Longitude    *float64
}

// NewProperty собирает новое активное объявление продавца.
func NewProperty(sellerID uuid.UUID, in PropertyInput) (*Property, error) {
	required := []struct{ name, value string }{
		{"title", in.Title},
		{"property_type", in.PropertyType},
		{"address", in.Address},
		{"city", in.City},
		{"state", in.State},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return nil, fmt.Errorf("%w: %s is required", ErrInvalidPropertyInput, f.name)
		}
	}
	if !IsValidListingType(in.ListingType) {
		return nil, fmt.Errorf("%w: listing_type must be 'sale' or 'rent'", ErrInvalidPropertyInput)
	}
	if math.IsNaN(in.Price) || math.IsInf(in.Price, 0) || in.Price < 0 {
		return nil, fmt.Errorf("%w: price must be a non-negative number", ErrInvalidPropertyInput)
	}
	if in.Parking < 0 {
		return nil, fmt.Errorf("%w: parking cannot be negative", ErrInvalidPropertyInput)
	}

	images := in.Images
	if images == nil {
		images = []string{}
	}

	p := &Property{
		ID:           uuid.New(),
		SellerID:     sellerID,
		Title:        strings.TrimSpace(in.Title),
		Description:  in.Description,
		Price:        in.Price,
		PropertyType: in.PropertyType,
		ListingType:  in.ListingType,
		Address:      in.Address,
		City:         in.City,
		State:        in.State,
		ZipCode:      in.ZipCode,
		Bedrooms:     in.Bedrooms,
		Bathrooms:    in.Bathrooms,
		AreaSqft:     in.AreaSqft,
		YearBuilt:    in.YearBuilt,
		Parking:      in.Parking,
		Images:       images,
		Latitude:     in.Latitude,
		Longitude:    in.Longitude,
		Status:       StatusActive,
		CreatedAt:    time.Now().UTC(),
	}
	p.Geohash = GeohashFor(p.Latitude, p.Longitude)
	return p, nil
}

// GeohashFor возвращает geohash точки или пустую строку, если координат нет.
func GeohashFor(lat, lon *float64) string {
	if lat == nil || lon == nil {
		return ""
	}
	return geohash.Encode(*lat, *lon)
}

// PropertyChanges - частичное обновление. nil означает "поле не трогаем".
type PropertyChanges struct {
	Title        *string
	Description  *string
	Price        *float64
	PropertyType *string
	ListingType  *string
	Address      *string
	City         *string
	State        *string
	ZipCode      *string
	Bedrooms     *int
	Bathrooms    *int
	AreaSqft     *int
	YearBuilt    *int
	Parking      *int
	Images       *[]string
	Latitude     *float64
	Longitude    *float64
	Status       *string

	// Geohash пересчитывается use case'ом, когда меняются координаты
	Geohash *string
}

func (c PropertyChanges) IsEmpty() bool {
	return c.Title == nil && c.Description == nil && c.Price == nil &&
		c.PropertyType == nil && c.ListingType == nil && c.Address == nil &&
		c.City == nil && c.State == nil && c.ZipCode == nil &&
		c.Bedrooms == nil && c.Bathrooms == nil && c.AreaSqft == nil &&
		c.YearBuilt == nil && c.Parking == nil && c.Images == nil &&
		c.Latitude == nil && c.Longitude == nil && c.Status == nil
}

// Validate проверяет только те поля, которые реально меняются.
func (c PropertyChanges) Validate() error {
	if c.Title != nil && strings.TrimSpace(*c.Title) == "" {
		return fmt.Errorf("%w: title cannot be empty", ErrInvalidPropertyInput)
	}
	if c.ListingType != nil && !IsValidListingType(*c.ListingType) {
		return fmt.Errorf("%w: listing_type must be 'sale' or 'rent'", ErrInvalidPropertyInput)
	}
	if c.Status != nil && !IsValidStatus(*c.Status) {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidPropertyInput, *c.Status)
	}
	if c.Price != nil && (math.IsNaN(*c.Price) || math.IsInf(*c.Price, 0) || *c.Price < 0) {
		return fmt.Errorf("%w: price must be a non-negative number", ErrInvalidPropertyInput)
	}
	if c.Parking != nil && *c.Parking < 0 {
		return fmt.Errorf("%w: parking cannot be negative", ErrInvalidPropertyInput)
	}
	return nil
}

// Apply применяет изменения к копии объявления и возвращает ее.
func (p Property) Apply(c PropertyChanges) Property {
	if c.Title != nil {
		p.Title = *c.Title
	}
	if c.Description != nil {
		p.Description = *c.Description
	}
	if c.Price != nil {
		p.Price = *c.Price
	}
	if c.PropertyType != nil {
		p.PropertyType = *c.PropertyType
	}
	if c.ListingType != nil {
		p.ListingType = *c.ListingType
	}
	if c.Address != nil {
		p.Address = *c.Address
	}
	if c.City != nil {
		p.City = *c.City
	}
	if c.State != nil {
		p.State = *c.State
	}
	if c.ZipCode != nil {
		p.ZipCode = *c.ZipCode
	}
	if c.Bedrooms != nil {
		p.Bedrooms = c.Bedrooms
	}
	if c.Bathrooms != nil {
		p.Bathrooms = c.Bathrooms
	}
	if c.AreaSqft != nil {
		p.AreaSqft = c.AreaSqft
	}
	if c.YearBuilt != nil {
		p.YearBuilt = c.YearBuilt
	}
	if c.Parking != nil {
		p.Parking = *c.Parking
	}
	if c.Images != nil {
		p.Images = *c.Images
	}
	if c.Latitude != nil {
		p.Latitude = c.Latitude
	}
	if c.Longitude != nil {
		p.Longitude = c.Longitude
	}
	if c.Status != nil {
		p.Status = *c.Status
	}
	if c.Geohash != nil {
		p.Geohash = *c.Geohash
	}
	return p
}
