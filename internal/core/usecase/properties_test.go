package usecase

import (
	"context"
	"errors"
	"marketplace-service/internal/core/domain"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)

func listing(title, city, listingType string, price float64, age time.Duration) domain.Property {
	return domain.Property{
		ID:           uuid.New(),
		SellerID:     uuid.New(),
		Title:        title,
		City:         city,
		State:        "NY",
		PropertyType: "Condo",
		ListingType:  listingType,
		Price:        price,
		Bedrooms:     intPtr(2),
		Status:       domain.StatusActive,
		CreatedAt:    baseTime.Add(-age),
	}
}

func TestSearchProperties_ManhattanSaleNewestFirst(t *testing.T) {
	older := listing("Loft", "Manhattan", domain.ListingSale, 900000, 2*time.Hour)
	newer := listing("Studio", "Manhattan", domain.ListingSale, 650000, time.Hour)
	rent := listing("Walkup", "Manhattan", domain.ListingRent, 3000, 0)
	brooklyn := listing("Brownstone", "Brooklyn", domain.ListingSale, 1200000, 0)

	storage := newMemoryStorage(older, newer, rent, brooklyn)
	uc := NewSearchPropertiesUseCase(storage)

	got, err := uc.Execute(context.Background(), domain.SearchFilter{City: "manhattan", ListingType: domain.ListingSale})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, newer.ID, got[0].ID)
	assert.Equal(t, older.ID, got[1].ID)
}

func TestSearchProperties_ForcesActiveAndCap(t *testing.T) {
	props := make([]domain.Property, 0, 130)
	for i := 0; i < 120; i++ {
		props = append(props, listing("Home", "Queens", domain.ListingSale, float64(100000+i), time.Duration(i)*time.Minute))
	}
	sold := listing("Sold", "Queens", domain.ListingSale, 1, 0)
	sold.Status = domain.StatusSold
	props = append(props, sold)

	storage := newMemoryStorage(props...)
	uc := NewSearchPropertiesUseCase(storage)

	got, err := uc.Execute(context.Background(), domain.SearchFilter{Status: domain.StatusSold})
	require.NoError(t, err)
	assert.Len(t, got, domain.MaxSearchResults)
	assert.Equal(t, domain.StatusActive, storage.lastFilter.Status)
	for _, p := range got {
		assert.Equal(t, domain.StatusActive, p.Status)
	}
}

func TestSearchProperties_EveryResultSatisfiesFilter(t *testing.T) {
	storage := newMemoryStorage(
		listing("Cheap", "Queens", domain.ListingSale, 100000, 0),
		listing("Mid", "Queens", domain.ListingSale, 400000, time.Minute),
		listing("Pricey", "Queens", domain.ListingSale, 2000000, 2*time.Minute),
	)
	filter := domain.SearchFilter{MinPrice: floatPtr(200000), MaxPrice: floatPtr(500000), MinBedrooms: intPtr(2)}

	got, err := NewSearchPropertiesUseCase(storage).Execute(context.Background(), filter)
	require.NoError(t, err)
	require.Len(t, got, 1)
	for _, p := range got {
		assert.True(t, filter.Matches(p))
	}
}

func TestSearchProperties_StorageError(t *testing.T) {
	storage := newMemoryStorage()
	storage.err = errors.New("db down")

	_, err := NewSearchPropertiesUseCase(storage).Execute(context.Background(), domain.SearchFilter{})
	assert.EqualError(t, err, "db down")
}

func TestListProperties_ClampsLimit(t *testing.T) {
	storage := newMemoryStorage()
	uc := NewListPropertiesUseCase(storage)

	_, err := uc.Execute(context.Background(), domain.SearchFilter{}, 500)
	require.NoError(t, err)
	assert.Equal(t, domain.MaxSearchResults, storage.lastLimit)

	_, err = uc.Execute(context.Background(), domain.SearchFilter{}, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, storage.lastLimit)
}

func TestListSellerProperties_AllStatuses(t *testing.T) {
	sellerID := uuid.New()
	active := listing("A", "Queens", domain.ListingSale, 1, time.Minute)
	active.SellerID = sellerID
	inactive := listing("B", "Queens", domain.ListingSale, 1, 0)
	inactive.SellerID = sellerID
	inactive.Status = domain.StatusInactive
	foreign := listing("C", "Queens", domain.ListingSale, 1, 0)

	got, err := NewListSellerPropertiesUseCase(newMemoryStorage(active, inactive, foreign)).Execute(context.Background(), sellerID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, inactive.ID, got[0].ID)
}

func validInput() domain.PropertyInput {
	return domain.PropertyInput{
		Title:        "Sunny condo",
		Price:        500000,
		PropertyType: "Condo",
		ListingType:  domain.ListingSale,
		Address:      "1 Main St",
		City:         "Brooklyn",
		State:        "NY",
		Latitude:     floatPtr(40.6782),
		Longitude:    floatPtr(-73.9442),
	}
}

func TestCreateProperty_PersistsAndPublishes(t *testing.T) {
	storage := newMemoryStorage()
	publisher := &recordingPublisher{}
	sellerID := uuid.New()

	p, err := NewCreatePropertyUseCase(storage, publisher).Execute(context.Background(), sellerID, validInput())
	require.NoError(t, err)
	assert.Equal(t, domain.StatusActive, p.Status)
	assert.NotEmpty(t, p.Geohash)

	stored, err := storage.GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, sellerID, stored.SellerID)

	require.Len(t, publisher.listed, 1)
	assert.Equal(t, p.ID, publisher.listed[0].PropertyID)
}

func TestCreateProperty_PublisherFailureIsNotFatal(t *testing.T) {
	publisher := &recordingPublisher{err: errors.New("broker down")}
	_, err := NewCreatePropertyUseCase(newMemoryStorage(), publisher).Execute(context.Background(), uuid.New(), validInput())
	assert.NoError(t, err)
}

func TestCreateProperty_InvalidInput(t *testing.T) {
	in := validInput()
	in.ListingType = "lease"
	_, err := NewCreatePropertyUseCase(newMemoryStorage(), nil).Execute(context.Background(), uuid.New(), in)
	assert.ErrorIs(t, err, domain.ErrInvalidPropertyInput)
}

func TestUpdateProperty(t *testing.T) {
	owner := uuid.New()
	p := listing("Old title", "Queens", domain.ListingSale, 100, 0)
	p.SellerID = owner

	t.Run("owner updates and geohash follows coordinates", func(t *testing.T) {
		storage := newMemoryStorage(p)
		changes := domain.PropertyChanges{
			Title:     strPtr("New title"),
			Latitude:  floatPtr(40.7128),
			Longitude: floatPtr(-74.0060),
		}
		err := NewUpdatePropertyUseCase(storage).Execute(context.Background(), &domain.Claims{UserID: owner, UserType: domain.UserTypeSeller}, p.ID, changes)
		require.NoError(t, err)

		got, _ := storage.GetByID(context.Background(), p.ID)
		assert.Equal(t, "New title", got.Title)
		assert.Equal(t, domain.GeohashFor(floatPtr(40.7128), floatPtr(-74.0060)), got.Geohash)
	})

	t.Run("stranger is forbidden", func(t *testing.T) {
		storage := newMemoryStorage(p)
		err := NewUpdatePropertyUseCase(storage).Execute(context.Background(), &domain.Claims{UserID: uuid.New(), UserType: domain.UserTypeSeller}, p.ID, domain.PropertyChanges{Title: strPtr("x")})
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("admin may update", func(t *testing.T) {
		storage := newMemoryStorage(p)
		err := NewUpdatePropertyUseCase(storage).Execute(context.Background(), &domain.Claims{UserID: uuid.New(), UserType: domain.UserTypeAdmin}, p.ID, domain.PropertyChanges{Price: floatPtr(200)})
		assert.NoError(t, err)
	})

	t.Run("no fields", func(t *testing.T) {
		err := NewUpdatePropertyUseCase(newMemoryStorage(p)).Execute(context.Background(), &domain.Claims{UserID: owner}, p.ID, domain.PropertyChanges{})
		assert.ErrorIs(t, err, domain.ErrNoFieldsToUpdate)
	})

	t.Run("missing property", func(t *testing.T) {
		err := NewUpdatePropertyUseCase(newMemoryStorage()).Execute(context.Background(), &domain.Claims{UserID: owner}, p.ID, domain.PropertyChanges{Title: strPtr("x")})
		assert.ErrorIs(t, err, domain.ErrPropertyNotFound)
	})
}

func TestDeleteProperty_SoftDeletes(t *testing.T) {
	owner := uuid.New()
	p := listing("T", "Queens", domain.ListingSale, 100, 0)
	p.SellerID = owner
	storage := newMemoryStorage(p)

	err := NewDeletePropertyUseCase(storage).Execute(context.Background(), &domain.Claims{UserID: owner, UserType: domain.UserTypeSeller}, p.ID)
	require.NoError(t, err)

	got, err := storage.GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInactive, got.Status)

	err = NewDeletePropertyUseCase(storage).Execute(context.Background(), &domain.Claims{UserID: uuid.New(), UserType: domain.UserTypeSeller}, p.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestPurgeProperty(t *testing.T) {
	p := listing("T", "Queens", domain.ListingSale, 100, 0)
	storage := newMemoryStorage(p)

	require.NoError(t, NewPurgePropertyUseCase(storage).Execute(context.Background(), p.ID))
	_, err := storage.GetByID(context.Background(), p.ID)
	assert.ErrorIs(t, err, domain.ErrPropertyNotFound)

	assert.ErrorIs(t, NewPurgePropertyUseCase(storage).Execute(context.Background(), p.ID), domain.ErrPropertyNotFound)
}
