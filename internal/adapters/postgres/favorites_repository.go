package postgres

import (
	"context"
	"fmt"
	"marketplace-service/internal/contextkeys"
	"marketplace-service/internal/core/domain"
	"marketplace-service/internal/core/port"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresFavoritesRepository - реализация FavoritesRepositoryPort.
type PostgresFavoritesRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresFavoritesRepository(pool *pgxpool.Pool) (*PostgresFavoritesRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &PostgresFavoritesRepository{pool: pool}, nil
}

// Add добавляет запись в favorites. Повтор - domain.ErrAlreadyFavorited.
func (r *PostgresFavoritesRepository) Add(ctx context.Context, userID, propertyID uuid.UUID) error {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":   "PostgresFavoritesRepository",
		"method":      "Add",
		"user_id":     userID,
		"property_id": propertyID,
	})

	query := `INSERT INTO favorites (user_id, property_id) VALUES ($1, $2)`
	if _, err := r.pool.Exec(ctx, query, userID, propertyID); err != nil {
		if isUniqueViolation(err) {
			repoLogger.Warn("Favorite already exists.", nil)
			return domain.ErrAlreadyFavorited
		}
		repoLogger.Error("Failed to add favorite", err, nil)
		return fmt.Errorf("failed to add favorite: %w", err)
	}

	repoLogger.Debug("Successfully added to favorites.", nil)
	return nil
}

// Remove удаляет запись из favorites.
func (r *PostgresFavoritesRepository) Remove(ctx context.Context, userID, propertyID uuid.UUID) error {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":   "PostgresFavoritesRepository",
		"method":      "Remove",
		"user_id":     userID,
		"property_id": propertyID,
	})

	cmdTag, err := r.pool.Exec(ctx, `DELETE FROM favorites WHERE user_id = $1 AND property_id = $2`, userID, propertyID)
	if err != nil {
		repoLogger.Error("Failed to remove favorite", err, nil)
		return fmt.Errorf("failed to remove favorite: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		repoLogger.Warn("Attempted to remove a favorite that did not exist.", nil)
		return domain.ErrFavoriteNotFound
	}

	repoLogger.Debug("Successfully removed from favorites.", nil)
	return nil
}

func (r *PostgresFavoritesRepository) Exists(ctx context.Context, userID, propertyID uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM favorites WHERE user_id = $1 AND property_id = $2)`,
		userID, propertyID,
	).Scan(&exists)
	if err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Failed to check favorite", err, port.Fields{
			"component": "PostgresFavoritesRepository",
			"method":    "Exists",
		})
		return false, fmt.Errorf("failed to check favorite: %w", err)
	}
	return exists, nil
}

// ListByUser возвращает активные избранные объявления, последние добавленные первыми.
func (r *PostgresFavoritesRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.FavoriteProperty, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "PostgresFavoritesRepository",
		"method":    "ListByUser",
		"user_id":   userID,
	})

	query := fmt.Sprintf(`SELECT %s, f.created_at
		FROM favorites f
		JOIN properties p ON p.id = f.property_id
		JOIN users u ON u.id = p.seller_id
		WHERE f.user_id = $1 AND p.status = $2
		ORDER BY f.created_at DESC`, propertySelectColumns)

	rows, err := r.pool.Query(ctx, query, userID, domain.StatusActive)
	if err != nil {
		repoLogger.Error("Failed to query favorites", err, nil)
		return nil, fmt.Errorf("failed to query favorites: %w", err)
	}
	defer rows.Close()

	favorites := make([]domain.FavoriteProperty, 0)
	for rows.Next() {
		var fav domain.FavoriteProperty
		var images string
		p := &fav.Property
		if err := rows.Scan(
			&p.ID, &p.SellerID, &p.Title, &p.Description, &p.Price, &p.PropertyType,
			&p.ListingType, &p.Address, &p.City, &p.State, &p.ZipCode,
			&p.Bedrooms, &p.Bathrooms, &p.AreaSqft, &p.YearBuilt, &p.Parking, &images,
			&p.Latitude, &p.Longitude, &p.Geohash, &p.Status, &p.CreatedAt,
			&p.Seller.Name, &p.Seller.Email, &p.Seller.Phone,
			&fav.FavoritedAt,
		); err != nil {
			repoLogger.Error("Failed to scan favorite row", err, nil)
			return nil, fmt.Errorf("failed to scan favorite: %w", err)
		}
		p.Images = domain.ParseImageRefs(images)
		favorites = append(favorites, fav)
	}
	if err := rows.Err(); err != nil {
		repoLogger.Error("Error during favorites iteration", err, nil)
		return nil, fmt.Errorf("error during favorites iteration: %w", err)
	}

	return favorites, nil
}
