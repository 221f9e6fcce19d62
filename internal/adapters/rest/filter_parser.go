package rest

import (
	"fmt"
	"marketplace-service/internal/core/domain"
	"math"
	"net/url"
	"strconv"
	"strings"
)

// parseSearchFilter собирает SearchFilter из query-параметров.
// Некорректное число в любом параметре - ошибка ErrInvalidFilter с именем параметра.
func parseSearchFilter(query url.Values) (domain.SearchFilter, error) {
	filter := domain.SearchFilter{
		Query:        parseString(query, "q"),
		ListingType:  parseString(query, "listing_type"),
		City:         parseString(query, "city"),
		State:        parseString(query, "state"),
		PropertyType: parseString(query, "property_type"),
		Geohash:      strings.ToLower(parseString(query, "geohash")),
	}

	var err error
	if filter.MinPrice, err = parseFloat(query, "min_price"); err != nil {
		return filter, err
	}
	if filter.MaxPrice, err = parseFloat(query, "max_price"); err != nil {
		return filter, err
	}
	if filter.MinBedrooms, err = parseInt(query, "bedrooms"); err != nil {
		return filter, err
	}
	if filter.MinBathrooms, err = parseInt(query, "bathrooms"); err != nil {
		return filter, err
	}
	if filter.MinArea, err = parseFloat(query, "min_area"); err != nil {
		return filter, err
	}
	if filter.MaxArea, err = parseFloat(query, "max_area"); err != nil {
		return filter, err
	}
	return filter, nil
}

// parseStatus читает status; пустое значение допустимо.
func parseStatus(query url.Values) (string, error) {
	status := parseString(query, "status")
	if status != "" && !domain.IsValidStatus(status) {
		return "", fmt.Errorf("%w: unknown status '%s'", domain.ErrInvalidFilter, status)
	}
	return status, nil
}

// parseLimit возвращает 0, если limit не задан.
func parseLimit(query url.Values) (int, error) {
	limit, err := parseInt(query, "limit")
	if err != nil || limit == nil {
		return 0, err
	}
	return *limit, nil
}

func parseString(query url.Values, key string) string {
	return strings.TrimSpace(query.Get(key))
}

func parseFloat(query url.Values, key string) (*float64, error) {
	raw := parseString(query, key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, fmt.Errorf("%w: '%s' must be a number", domain.ErrInvalidFilter, key)
	}
	return &v, nil
}

func parseInt(query url.Values, key string) (*int, error) {
	raw := parseString(query, key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: '%s' must be an integer", domain.ErrInvalidFilter, key)
	}
	return &v, nil
}
