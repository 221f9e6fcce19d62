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

type InquiryRepository struct {
	pool *pgxpool.Pool
}

func NewInquiryRepository(pool *pgxpool.Pool) (*InquiryRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &InquiryRepository{pool: pool}, nil
}

func (r *InquiryRepository) Create(ctx context.Context, inquiry *domain.Inquiry) error {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component":  "InquiryRepository",
		"method":     "Create",
		"inquiry_id": inquiry.ID.String(),
	})

	query := `INSERT INTO inquiries (id, property_id, buyer_id, seller_id, message, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.pool.Exec(ctx, query,
		inquiry.ID, inquiry.PropertyID, inquiry.BuyerID, inquiry.SellerID,
		inquiry.Message, inquiry.Status, inquiry.CreatedAt)
	if err != nil {
		repoLogger.Error("Failed to create inquiry", err, nil)
		return fmt.Errorf("failed to create inquiry: %w", err)
	}
	repoLogger.Debug("Inquiry created", nil)
	return nil
}

// ListBySeller - входящие обращения с контактами покупателя
func (r *InquiryRepository) ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]domain.ReceivedInquiry, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "InquiryRepository",
		"method":    "ListBySeller",
		"seller_id": sellerID.String(),
	})

	query := `SELECT i.id, i.property_id, i.buyer_id, i.seller_id, i.message, i.status, i.created_at,
			p.title, p.address, u.name, u.email, COALESCE(u.phone, '')
		FROM inquiries i
		JOIN properties p ON p.id = i.property_id
		JOIN users u ON u.id = i.buyer_id
		WHERE i.seller_id = $1
		ORDER BY i.created_at DESC`

	rows, err := r.pool.Query(ctx, query, sellerID)
	if err != nil {
		repoLogger.Error("Failed to query received inquiries", err, nil)
		return nil, fmt.Errorf("failed to query received inquiries: %w", err)
	}
	defer rows.Close()

	result := make([]domain.ReceivedInquiry, 0)
	for rows.Next() {
		var item domain.ReceivedInquiry
		if err := rows.Scan(
			&item.ID, &item.PropertyID, &item.BuyerID, &item.SellerID, &item.Message, &item.Status, &item.CreatedAt,
			&item.PropertyTitle, &item.PropertyAddress, &item.BuyerName, &item.BuyerEmail, &item.BuyerPhone,
		); err != nil {
			repoLogger.Error("Failed to scan inquiry row", err, nil)
			return nil, fmt.Errorf("failed to scan inquiry: %w", err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during inquiries iteration: %w", err)
	}
	return result, nil
}

// ListByBuyer - отправленные обращения с ценой объявления и именем продавца
func (r *InquiryRepository) ListByBuyer(ctx context.Context, buyerID uuid.UUID) ([]domain.SentInquiry, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "InquiryRepository",
		"method":    "ListByBuyer",
		"buyer_id":  buyerID.String(),
	})

	query := `SELECT i.id, i.property_id, i.buyer_id, i.seller_id, i.message, i.status, i.created_at,
			p.title, p.address, p.price, u.name
		FROM inquiries i
		JOIN properties p ON p.id = i.property_id
		JOIN users u ON u.id = i.seller_id
		WHERE i.buyer_id = $1
		ORDER BY i.created_at DESC`

	rows, err := r.pool.Query(ctx, query, buyerID)
	if err != nil {
		repoLogger.Error("Failed to query sent inquiries", err, nil)
		return nil, fmt.Errorf("failed to query sent inquiries: %w", err)
	}
	defer rows.Close()

	result := make([]domain.SentInquiry, 0)
	for rows.Next() {
		var item domain.SentInquiry
		if err := rows.Scan(
			&item.ID, &item.PropertyID, &item.BuyerID, &item.SellerID, &item.Message, &item.Status, &item.CreatedAt,
			&item.PropertyTitle, &item.PropertyAddress, &item.PropertyPrice, &item.SellerName,
		); err != nil {
			repoLogger.Error("Failed to scan inquiry row", err, nil)
			return nil, fmt.Errorf("failed to scan inquiry: %w", err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during inquiries iteration: %w", err)
	}
	return result, nil
}
