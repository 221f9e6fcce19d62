package port

import (
	"context"
	"marketplace-service/internal/core/domain"
)

// EventPublisherPort - доменные события для внешних подписчиков (уведомления, аналитика).
type EventPublisherPort interface {
	PublishPropertyListed(ctx context.Context, event domain.PropertyListedEvent) error
	PublishInquiryCreated(ctx context.Context, event domain.InquiryCreatedEvent) error
}
