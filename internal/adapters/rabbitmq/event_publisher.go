package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"marketplace-service/internal/constants"
	"marketplace-service/internal/contextkeys"
	"marketplace-service/internal/contracts"
	"marketplace-service/internal/core/domain"
	"marketplace-service/internal/core/port"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const publishTimeout = 10 * time.Second

// messagePublisher - то, что нужно адаптеру от rabbitmq_producer.Publisher
type messagePublisher interface {
	Publish(ctx context.Context, routingKey string, msg amqp.Publishing) error
}

// RabbitMQEventPublisher отправляет доменные события маркетплейса в обменник.
type RabbitMQEventPublisher struct {
	producer messagePublisher
}

func NewRabbitMQEventPublisher(producer messagePublisher) (*RabbitMQEventPublisher, error) {
	if producer == nil {
		return nil, fmt.Errorf("producer cannot be nil")
	}
	return &RabbitMQEventPublisher{producer: producer}, nil
}

func (a *RabbitMQEventPublisher) PublishPropertyListed(ctx context.Context, event domain.PropertyListedEvent) error {
	dto := PropertyListedEventDTO{
		PropertyID:  event.PropertyID,
		SellerID:    event.SellerID,
		Title:       event.Title,
		City:        event.City,
		State:       event.State,
		ListingType: event.ListingType,
		Price:       event.Price,
		CreatedAt:   event.CreatedAt.UTC(),
	}
	return a.publish(ctx, constants.RoutingKeyPropertyListed, constants.EventPropertyListed, dto)
}

func (a *RabbitMQEventPublisher) PublishInquiryCreated(ctx context.Context, event domain.InquiryCreatedEvent) error {
	dto := InquiryCreatedEventDTO{
		InquiryID:  event.InquiryID,
		PropertyID: event.PropertyID,
		BuyerID:    event.BuyerID,
		SellerID:   event.SellerID,
		CreatedAt:  event.CreatedAt.UTC(),
	}
	return a.publish(ctx, constants.RoutingKeyInquiryCreated, constants.EventInquiryCreated, dto)
}

func (a *RabbitMQEventPublisher) publish(ctx context.Context, routingKey, eventType string, payload interface{}) error {
	logger := contextkeys.LoggerFromContext(ctx)
	adapterLogger := logger.WithFields(port.Fields{
		"component":   "RabbitMQEventPublisher",
		"routing_key": routingKey,
		"event_type":  eventType,
	})

	body, err := json.Marshal(payload)
	if err != nil {
		adapterLogger.Error("Failed to marshal event", err, nil)
		return fmt.Errorf("failed to marshal %s: %w", eventType, err)
	}

	// Не отправляем то, что подписчики не смогут разобрать
	if err := contracts.ValidateEvent(eventType, constants.EventVersionV1, body); err != nil {
		adapterLogger.Error("Event does not match its contract", err, nil)
		return fmt.Errorf("invalid %s: %w", eventType, err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		Headers: amqp.Table{
			"event-type":    eventType,
			"event-version": constants.EventVersionV1,
		},
	}
	if traceID := contextkeys.TraceIDFromContext(ctx); traceID != "" {
		msg.Headers["x-trace-id"] = traceID
	}

	publishCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	if err := a.producer.Publish(publishCtx, routingKey, msg); err != nil {
		adapterLogger.Error("Failed to publish event", err, nil)
		return err
	}

	adapterLogger.Debug("Event published", nil)
	return nil
}
