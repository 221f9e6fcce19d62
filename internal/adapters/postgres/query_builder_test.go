package postgres

import (
	"marketplace-service/internal/core/domain"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestApplyFilters_Empty(t *testing.T) {
	where, args := applyFilters(domain.SearchFilter{}).build()
	assert.Empty(t, where)
	assert.Empty(t, args)
}

func TestApplyFilters_PlaceholdersFollowArgs(t *testing.T) {
	minPrice, maxPrice := 100000.0, 900000.0
	beds := 2
	filter := domain.SearchFilter{
		Status:      domain.StatusActive,
		ListingType: domain.ListingSale,
		City:        "Manhattan",
		Query:       "loft",
		MinPrice:    &minPrice,
		MaxPrice:    &maxPrice,
		MinBedrooms: &beds,
	}

	where, args := applyFilters(filter).build()

	assert.Equal(t,
		"WHERE p.status = $1 AND p.listing_type = $2 AND p.city ILIKE $3 AND "+
			"(p.title ILIKE $4 OR p.description ILIKE $4 OR p.address ILIKE $4 OR p.city ILIKE $4) AND "+
			"p.price >= $5 AND p.price <= $6 AND p.bedrooms >= $7",
		where)
	assert.Equal(t, []interface{}{"active", "sale", "%Manhattan%", "%loft%", 100000.0, 900000.0, 2}, args)
}

func TestApplyFilters_EscapesLikeWildcards(t *testing.T) {
	where, args := applyFilters(domain.SearchFilter{City: `50%_off\`}).build()

	assert.Equal(t, "WHERE p.city ILIKE $1", where)
	assert.Equal(t, []interface{}{`%50\%\_off\\%`}, args)
}

func TestApplyFilters_SellerAndGeohash(t *testing.T) {
	sellerID := uuid.New()
	where, args := applyFilters(domain.SearchFilter{SellerID: &sellerID, Geohash: "dr5r"}).build()

	assert.Equal(t, "WHERE p.seller_id = $1 AND p.geohash LIKE $2", where)
	assert.Equal(t, []interface{}{sellerID, "dr5r%"}, args)
}

func TestBuildFindQuery_LimitIsLastArg(t *testing.T) {
	query, args := buildFindQuery(domain.SearchFilter{Status: domain.StatusActive}, 500)

	assert.True(t, strings.HasSuffix(query, "ORDER BY p.created_at DESC, p.id DESC LIMIT $2"), query)
	assert.Contains(t, query, "WHERE p.status = $1")
	assert.Equal(t, []interface{}{"active", domain.MaxSearchResults}, args)

	query, args = buildFindQuery(domain.SearchFilter{}, 10)
	assert.True(t, strings.HasSuffix(query, "LIMIT $1"), query)
	assert.NotContains(t, query, "WHERE")
	assert.Equal(t, []interface{}{10}, args)
}

func TestBuildUpdate(t *testing.T) {
	title := "New"
	price := 10.5
	images := []string{"a.jpg"}
	status := domain.StatusSold

	set, args, next := buildUpdate(domain.PropertyChanges{
		Title:  &title,
		Price:  &price,
		Images: &images,
		Status: &status,
	})

	assert.Equal(t, "title = $1, price = $2, images = $3, status = $4", set)
	assert.Equal(t, []interface{}{"New", 10.5, `["a.jpg"]`, "sold"}, args)
	assert.Equal(t, 5, next)
}

func TestBuildUpdate_Empty(t *testing.T) {
	set, args, next := buildUpdate(domain.PropertyChanges{})
	assert.Empty(t, set)
	assert.Empty(t, args)
	assert.Equal(t, 1, next)
}
