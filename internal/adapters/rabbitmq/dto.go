package rabbitmq

import (
	"time"

	"github.com/google/uuid"
)

type PropertyListedEventDTO struct {
	PropertyID  uuid.UUID `json:"property_id"`
	SellerID    uuid.UUID `json:"seller_id"`
	Title       string    `json:"title"`
	City        string    `json:"city"`
	State       string    `json:"state,omitempty"`
	ListingType string    `json:"listing_type"`
	Price       float64   `json:"price"`
	CreatedAt   time.Time `json:"created_at"`
}

type InquiryCreatedEventDTO struct {
	InquiryID  uuid.UUID `json:"inquiry_id"`
	PropertyID uuid.UUID `json:"property_id"`
	BuyerID    uuid.UUID `json:"buyer_id"`
	SellerID   uuid.UUID `json:"seller_id"`
	CreatedAt  time.Time `json:"created_at"`
}
