package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Статусы обращения
const (
	InquiryPending   = "pending"
	InquiryResponded = "responded"
	InquiryClosed    = "closed"
)

// Inquiry - сообщение покупателя продавцу по конкретному объявлению.
type Inquiry struct {
	ID         uuid.UUID
	PropertyID uuid.UUID
	BuyerID    uuid.UUID
	SellerID   uuid.UUID
	Message    string
	Status     string
	CreatedAt  time.Time
}

// NewInquiry создает обращение. Продавец берется из объявления, а не из запроса.
func NewInquiry(property *Property, buyerID uuid.UUID, message string) (*Inquiry, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, ErrEmptyInquiry
	}
	if property == nil || !property.IsActive() {
		return nil, ErrPropertyNotFound
	}
	return &Inquiry{
		ID:         uuid.New(),
		PropertyID: property.ID,
		BuyerID:    buyerID,
		SellerID:   property.SellerID,
		Message:    message,
		Status:     InquiryPending,
		CreatedAt:  time.Now().UTC(),
	}, nil
}

// ReceivedInquiry - входящее обращение глазами продавца.
type ReceivedInquiry struct {
	Inquiry
	PropertyTitle   string
	PropertyAddress string
	BuyerName       string
	BuyerEmail      string
	BuyerPhone      string
}

// SentInquiry - отправленное обращение глазами покупателя.
type SentInquiry struct {
	Inquiry
	PropertyTitle   string
	PropertyAddress string
	PropertyPrice   float64
	SellerName      string
}
