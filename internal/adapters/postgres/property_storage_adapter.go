package postgres

import (
	"context"
	"errors"
	"fmt"
	"marketplace-service/internal/contextkeys"
	"marketplace-service/internal/core/domain"
	"marketplace-service/internal/core/port"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStorageAdapter - реализация PropertyStoragePort для PostgreSQL.
type PostgresStorageAdapter struct {
	pool *pgxpool.Pool
}

func NewPostgresStorageAdapter(pool *pgxpool.Pool) (*PostgresStorageAdapter, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &PostgresStorageAdapter{pool: pool}, nil
}

// Колонки объявления вместе с проекцией продавца
const propertySelectColumns = `
	p.id, p.seller_id, p.title, COALESCE(p.description, ''), p.price, p.property_type,
	p.listing_type, p.address, p.city, p.state, COALESCE(p.zip_code, ''),
	p.bedrooms, p.bathrooms, p.area_sqft, p.year_built, p.parking, p.images,
	p.latitude, p.longitude, COALESCE(p.geohash, ''), p.status, p.created_at,
	u.name, u.email, COALESCE(u.phone, '')`

const propertyFromClause = `FROM properties p JOIN users u ON u.id = p.seller_id`

// buildFindQuery собирает SELECT для поиска. Вынесено отдельно, чтобы SQL можно было проверить без БД.
func buildFindQuery(filter domain.SearchFilter, limit int) (string, []interface{}) {
	qb := applyFilters(filter)
	limitPlaceholder := qb.nextArg(domain.ClampLimit(limit))
	whereClause, args := qb.build()

	query := fmt.Sprintf("SELECT %s %s %s ORDER BY p.created_at DESC, p.id DESC LIMIT %s",
		propertySelectColumns, propertyFromClause, whereClause, limitPlaceholder)
	return query, args
}

func scanProperty(row pgx.Row) (*domain.Property, error) {
	var p domain.Property
	var images string
	err := row.Scan(
		&p.ID, &p.SellerID, &p.Title, &p.Description, &p.Price, &p.PropertyType,
		&p.ListingType, &p.Address, &p.City, &p.State, &p.ZipCode,
		&p.Bedrooms, &p.Bathrooms, &p.AreaSqft, &p.YearBuilt, &p.Parking, &images,
		&p.Latitude, &p.Longitude, &p.Geohash, &p.Status, &p.CreatedAt,
		&p.Seller.Name, &p.Seller.Email, &p.Seller.Phone,
	)
	if err != nil {
		return nil, err
	}
	p.Images = domain.ParseImageRefs(images)
	return &p, nil
}

// FindWithFilters находит объявления по фильтру, новые первыми
func (a *PostgresStorageAdapter) FindWithFilters(ctx context.Context, filter domain.SearchFilter, limit int) ([]domain.Property, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "PostgresStorageAdapter",
		"method":    "FindWithFilters",
	})

	query, args := buildFindQuery(filter, limit)
	repoLogger.Debug("Executing search query", port.Fields{"query": query, "args_count": len(args)})

	rows, err := a.pool.Query(ctx, query, args...)
	if err != nil {
		repoLogger.Error("Failed to query properties", err, port.Fields{"query": query})
		return nil, fmt.Errorf("failed to query properties: %w", err)
	}
	defer rows.Close()

	properties := make([]domain.Property, 0)
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			repoLogger.Error("Failed to scan property row", err, nil)
			return nil, fmt.Errorf("failed to scan property: %w", err)
		}
		properties = append(properties, *p)
	}
	if err := rows.Err(); err != nil {
		repoLogger.Error("Error during properties iteration", err, nil)
		return nil, fmt.Errorf("error during properties iteration: %w", err)
	}

	repoLogger.Debug("Search query finished", port.Fields{"found": len(properties)})
	return properties, nil
}

func (a *PostgresStorageAdapter) GetByID(ctx context.Context, id uuid.UUID) (*domain.Property, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":   "PostgresStorageAdapter",
		"method":      "GetByID",
		"property_id": id.String(),
	})

	query := fmt.Sprintf("SELECT %s %s WHERE p.id = $1", propertySelectColumns, propertyFromClause)
	p, err := scanProperty(a.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			repoLogger.Warn("Property not found", nil)
			return nil, domain.ErrPropertyNotFound
		}
		repoLogger.Error("Failed to get property", err, nil)
		return nil, fmt.Errorf("failed to get property by id: %w", err)
	}
	return p, nil
}

func (a *PostgresStorageAdapter) Create(ctx context.Context, p *domain.Property) error {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":   "PostgresStorageAdapter",
		"method":      "Create",
		"property_id": p.ID.String(),
		"seller_id":   p.SellerID.String(),
	})

	query := `INSERT INTO properties (
		id, seller_id, title, description, price, property_type, listing_type,
		address, city, state, zip_code, bedrooms, bathrooms, area_sqft, year_built,
		parking, images, latitude, longitude, geohash, status, created_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)`

	_, err := a.pool.Exec(ctx, query,
		p.ID, p.SellerID, p.Title, nullIfEmpty(p.Description), p.Price, p.PropertyType, p.ListingType,
		p.Address, p.City, p.State, nullIfEmpty(p.ZipCode), p.Bedrooms, p.Bathrooms, p.AreaSqft, p.YearBuilt,
		p.Parking, domain.EncodeImageRefs(p.Images), p.Latitude, p.Longitude, nullIfEmpty(p.Geohash), p.Status, p.CreatedAt,
	)
	if err != nil {
		repoLogger.Error("Failed to insert property", err, nil)
		return fmt.Errorf("failed to create property: %w", err)
	}

	repoLogger.Debug("Property created", nil)
	return nil
}

func (a *PostgresStorageAdapter) Update(ctx context.Context, id uuid.UUID, changes domain.PropertyChanges) error {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":   "PostgresStorageAdapter",
		"method":      "Update",
		"property_id": id.String(),
	})

	setClause, args, nextArg := buildUpdate(changes)
	if setClause == "" {
		return domain.ErrNoFieldsToUpdate
	}
	query := fmt.Sprintf("UPDATE properties SET %s WHERE id = $%d", setClause, nextArg)
	args = append(args, id)

	cmdTag, err := a.pool.Exec(ctx, query, args...)
	if err != nil {
		repoLogger.Error("Failed to update property", err, port.Fields{"query": query})
		return fmt.Errorf("failed to update property: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return domain.ErrPropertyNotFound
	}

	repoLogger.Debug("Property updated", port.Fields{"set": setClause})
	return nil
}

func (a *PostgresStorageAdapter) Delete(ctx context.Context, id uuid.UUID) error {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":   "PostgresStorageAdapter",
		"method":      "Delete",
		"property_id": id.String(),
	})

	cmdTag, err := a.pool.Exec(ctx, `DELETE FROM properties WHERE id = $1`, id)
	if err != nil {
		repoLogger.Error("Failed to delete property", err, nil)
		return fmt.Errorf("failed to delete property: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return domain.ErrPropertyNotFound
	}

	repoLogger.Info("Property deleted permanently", nil)
	return nil
}

func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
