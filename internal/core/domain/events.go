package domain

import (
	"time"

	"github.com/google/uuid"
)

// PropertyListedEvent публикуется после создания объявления.
type PropertyListedEvent struct {
	PropertyID  uuid.UUID
	SellerID    uuid.UUID
	Title       string
	City        string
	State       string
	ListingType string
	Price       float64
	CreatedAt   time.Time
}

// InquiryCreatedEvent публикуется, когда покупатель написал продавцу.
type InquiryCreatedEvent struct {
	InquiryID  uuid.UUID
	PropertyID uuid.UUID
	BuyerID    uuid.UUID
	SellerID   uuid.UUID
	CreatedAt  time.Time
}
