package domain

import (
	"strings"

	"github.com/google/uuid"
)

// MaxSearchResults - верхняя граница выдачи для любого списка объявлений.
const MaxSearchResults = 100

// SearchFilter - набор необязательных ограничений. Пустое значение поля означает
// "без ограничения"; заданные ограничения объединяются через AND.
type SearchFilter struct {
	// Query ищется без учета регистра в title, description, address и city (любое совпадение)
	Query        string
	ListingType  string
	City         string // подстрока, без учета регистра
	State        string
	PropertyType string
	Status       string // пусто - любой статус
	Geohash      string // префикс geohash

	MinPrice     *float64
	MaxPrice     *float64
	MinBedrooms  *int
	MinBathrooms *int
	MinArea      *float64
	MaxArea      *float64

	SellerID *uuid.UUID
}

// ClampLimit приводит запрошенный лимит к диапазону 1..MaxSearchResults.
func ClampLimit(limit int) int {
	if limit <= 0 || limit > MaxSearchResults {
		return MaxSearchResults
	}
	return limit
}

// Matches проверяет объявление тем же набором предикатов, что и SQL-построитель.
// Отсутствующее числовое поле объявления не удовлетворяет заданной границе (как NULL в SQL).
func (f SearchFilter) Matches(p Property) bool {
	if f.Status != "" && p.Status != f.Status {
		return false
	}
	if f.ListingType != "" && p.ListingType != f.ListingType {
		return false
	}
	if f.PropertyType != "" && p.PropertyType != f.PropertyType {
		return false
	}
	if f.State != "" && p.State != f.State {
		return false
	}
	if f.SellerID != nil && p.SellerID != *f.SellerID {
		return false
	}
	if f.City != "" && !containsFold(p.City, f.City) {
		return false
	}
	if f.Geohash != "" && !strings.HasPrefix(p.Geohash, f.Geohash) {
		return false
	}
	if f.Query != "" {
		if !containsFold(p.Title, f.Query) && !containsFold(p.Description, f.Query) &&
			!containsFold(p.Address, f.Query) && !containsFold(p.City, f.Query) {
			return false
		}
	}

	if f.MinPrice != nil && p.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && p.Price > *f.MaxPrice {
		return false
	}
	if f.MinBedrooms != nil && (p.Bedrooms == nil || *p.Bedrooms < *f.MinBedrooms) {
		return false
	}
	if f.MinBathrooms != nil && (p.Bathrooms == nil || *p.Bathrooms < *f.MinBathrooms) {
		return false
	}
	if f.MinArea != nil && (p.AreaSqft == nil || float64(*p.AreaSqft) < *f.MinArea) {
		return false
	}
	if f.MaxArea != nil && (p.AreaSqft == nil || float64(*p.AreaSqft) > *f.MaxArea) {
		return false
	}
	return true
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
