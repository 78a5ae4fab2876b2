package offer

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockroom/backend/internal/domain/shared"
)

// AggregateTypeOffer is the aggregate type for offer events
const AggregateTypeOffer = "Offer"

// Event type constants
const (
	EventTypeOfferComposed            = "OfferComposed"
	EventTypeOfferAvailabilityChanged = "OfferAvailabilityChanged"
)

// OfferComposedEvent is raised when a new offer bundle is composed
type OfferComposedEvent struct {
	shared.BaseDomainEvent
	OfferID    uuid.UUID       `json:"offer_id"`
	Name       string          `json:"name"`
	ProductIDs []uuid.UUID     `json:"product_ids"`
	Price      decimal.Decimal `json:"price"`
	Cost       decimal.Decimal `json:"cost"`
}

// NewOfferComposedEvent creates a new OfferComposedEvent
func NewOfferComposedEvent(o *Offer) *OfferComposedEvent {
	return &OfferComposedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOfferComposed, AggregateTypeOffer, o.ID),
		OfferID:         o.ID,
		Name:            o.Name,
		ProductIDs:      o.ProductIDs(),
		Price:           o.Price,
		Cost:            o.Cost,
	}
}

// OfferAvailabilityChangedEvent is raised when the derived active flag flips
type OfferAvailabilityChangedEvent struct {
	shared.BaseDomainEvent
	OfferID uuid.UUID `json:"offer_id"`
	Active  bool      `json:"active"`
}

// NewOfferAvailabilityChangedEvent creates a new OfferAvailabilityChangedEvent
func NewOfferAvailabilityChangedEvent(o *Offer) *OfferAvailabilityChangedEvent {
	return &OfferAvailabilityChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOfferAvailabilityChanged, AggregateTypeOffer, o.ID),
		OfferID:         o.ID,
		Active:          o.Active,
	}
}
