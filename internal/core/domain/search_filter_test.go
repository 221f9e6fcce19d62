package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestClampLimit(t *testing.T) {
	assert.Equal(t, MaxSearchResults, ClampLimit(0))
	assert.Equal(t, MaxSearchResults, ClampLimit(-3))
	assert.Equal(t, MaxSearchResults, ClampLimit(1000))
	assert.Equal(t, 25, ClampLimit(25))
}

func TestSearchFilter_Matches(t *testing.T) {
	beds := 3
	area := 1200
	p := Property{
		SellerID:     uuid.New(),
		Title:        "Bright Loft",
		Description:  "Close to the park",
		Address:      "10 Hudson St",
		City:         "Manhattan",
		State:        "NY",
		PropertyType: "Condo",
		ListingType:  ListingSale,
		Price:        900000,
		Bedrooms:     &beds,
		AreaSqft:     &area,
		Geohash:      "dr5regw3pg",
		Status:       StatusActive,
	}

	f64 := func(v float64) *float64 { return &v }
	i := func(v int) *int { return &v }
	other := uuid.New()

	cases := []struct {
		name   string
		filter SearchFilter
		want   bool
	}{
		{"empty filter", SearchFilter{}, true},
		{"city is case insensitive substring", SearchFilter{City: "manhat"}, true},
		{"query hits description", SearchFilter{Query: "PARK"}, true},
		{"query misses", SearchFilter{Query: "beach"}, false},
		{"status", SearchFilter{Status: StatusSold}, false},
		{"listing type", SearchFilter{ListingType: ListingRent}, false},
		{"price bounds inclusive", SearchFilter{MinPrice: f64(900000), MaxPrice: f64(900000)}, true},
		{"price above max", SearchFilter{MaxPrice: f64(899999)}, false},
		{"bedrooms", SearchFilter{MinBedrooms: i(3)}, true},
		{"bathrooms missing", SearchFilter{MinBathrooms: i(1)}, false},
		{"area range", SearchFilter{MinArea: f64(1000), MaxArea: f64(1500)}, true},
		{"geohash prefix", SearchFilter{Geohash: "dr5r"}, true},
		{"geohash other cell", SearchFilter{Geohash: "9q8y"}, false},
		{"seller", SearchFilter{SellerID: &other}, false},
		{"seller match", SearchFilter{SellerID: &p.SellerID}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.filter.Matches(p))
		})
	}
}
