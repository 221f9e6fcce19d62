package constants

// Ключи маршрутизации доменных событий
const (
	RoutingKeyPropertyListed = "property.listed"
	RoutingKeyInquiryCreated = "inquiry.created"
)

// Тип обменника для событий маркетплейса
const EventsExchangeType = "topic"

// Имена и версии событий, по ним же ищутся JSON-схемы
const (
	EventPropertyListed = "PropertyListedEvent"
	EventInquiryCreated = "InquiryCreatedEvent"
	EventVersionV1      = "1.0.0"
)
