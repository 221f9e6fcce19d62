package usecase

import (
	"context"
	"errors"
	"marketplace-service/internal/contextkeys"
	"marketplace-service/internal/core/domain"
	"marketplace-service/internal/core/port"

	"github.com/google/uuid"
)

type CreateInquiryUseCase struct {
	inquiries port.InquiryRepositoryPort
	storage   port.PropertyStoragePort
	publisher port.EventPublisherPort // может быть nil
}

func NewCreateInquiryUseCase(inquiries port.InquiryRepositoryPort, storage port.PropertyStoragePort, publisher port.EventPublisherPort) *CreateInquiryUseCase {
	return &CreateInquiryUseCase{inquiries: inquiries, storage: storage, publisher: publisher}
}

func (uc *CreateInquiryUseCase) Execute(ctx context.Context, buyerID, propertyID uuid.UUID, message string) (*domain.Inquiry, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":    "CreateInquiry",
		"buyer_id":    buyerID.String(),
		"property_id": propertyID.String(),
	})

	ucLogger.Info("Use case started", nil)

	property, err := uc.storage.GetByID(ctx, propertyID)
	if err != nil && !errors.Is(err, domain.ErrPropertyNotFound) {
		ucLogger.Error("Storage failed to load property", err, nil)
		return nil, err
	}

	inquiry, err := domain.NewInquiry(property, buyerID, message)
	if err != nil {
		ucLogger.Warn("Inquiry rejected", port.Fields{"error": err.Error()})
		return nil, err
	}

	if err := uc.inquiries.Create(ctx, inquiry); err != nil {
		ucLogger.Error("Repository failed to create inquiry", err, nil)
		return nil, err
	}

	if uc.publisher != nil {
		event := domain.InquiryCreatedEvent{
			InquiryID:  inquiry.ID,
			PropertyID: inquiry.PropertyID,
			BuyerID:    inquiry.BuyerID,
			SellerID:   inquiry.SellerID,
			CreatedAt:  inquiry.CreatedAt,
		}
		if err := uc.publisher.PublishInquiryCreated(ctx, event); err != nil {
			ucLogger.Error("Failed to publish inquiry created event", err, nil)
		}
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"inquiry_id": inquiry.ID.String()})
	return inquiry, nil
}

type ListReceivedInquiriesUseCase struct {
	inquiries port.InquiryRepositoryPort
}

func NewListReceivedInquiriesUseCase(inquiries port.InquiryRepositoryPort) *ListReceivedInquiriesUseCase {
	return &ListReceivedInquiriesUseCase{inquiries: inquiries}
}

func (uc *ListReceivedInquiriesUseCase) Execute(ctx context.Context, sellerID uuid.UUID) ([]domain.ReceivedInquiry, error) {
	return uc.inquiries.ListBySeller(ctx, sellerID)
}

type ListSentInquiriesUseCase struct {
	inquiries port.InquiryRepositoryPort
}

func NewListSentInquiriesUseCase(inquiries port.InquiryRepositoryPort) *ListSentInquiriesUseCase {
	return &ListSentInquiriesUseCase{inquiries: inquiries}
}

func (uc *ListSentInquiriesUseCase) Execute(ctx context.Context, buyerID uuid.UUID) ([]domain.SentInquiry, error) {
	return uc.inquiries.ListByBuyer(ctx, buyerID)
}
