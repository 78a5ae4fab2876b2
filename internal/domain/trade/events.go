package trade

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockroom/backend/internal/domain/shared"
)

// AggregateTypeSalesOrder is the aggregate type for sales order events
const AggregateTypeSalesOrder = "SalesOrder"

// Event type constants
const (
	EventTypeSalesOrderPlaced  = "SalesOrderPlaced"
	EventTypeSalesOrderShipped = "SalesOrderShipped"
)

// SalesOrderPlacedEvent is raised when a new sales order is placed
type SalesOrderPlacedEvent struct {
	shared.BaseDomainEvent
	OrderID    uuid.UUID  `json:"order_id"`
	TargetKind TargetKind `json:"target_kind"`
	ProductID  *uuid.UUID `json:"product_id,omitempty"`
	OfferID    *uuid.UUID `json:"offer_id,omitempty"`
	Quantity   int64      `json:"quantity"`
}

// NewSalesOrderPlacedEvent creates a new SalesOrderPlacedEvent
func NewSalesOrderPlacedEvent(order *SalesOrder) *SalesOrderPlacedEvent {
	return &SalesOrderPlacedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSalesOrderPlaced, AggregateTypeSalesOrder, order.ID),
		OrderID:         order.ID,
		TargetKind:      order.TargetKind,
		ProductID:       order.ProductID,
		OfferID:         order.OfferID,
		Quantity:        order.Quantity,
	}
}

// SalesOrderShippedEvent is raised when a sales order ships.
// Availability refresh subscribes to this to recompute offers whose
// constituent stock just changed.
type SalesOrderShippedEvent struct {
	shared.BaseDomainEvent
	OrderID         uuid.UUID       `json:"order_id"`
	TargetKind      TargetKind      `json:"target_kind"`
	ProductID       *uuid.UUID      `json:"product_id,omitempty"`
	OfferID         *uuid.UUID      `json:"offer_id,omitempty"`
	Quantity        int64           `json:"quantity"`
	TotalPrice      decimal.Decimal `json:"total_price"`
	ProfitBeforeTax decimal.Decimal `json:"profit_before_tax"`
	ProfitAfterTax  decimal.Decimal `json:"profit_after_tax"`
}

// NewSalesOrderShippedEvent creates a new SalesOrderShippedEvent
func NewSalesOrderShippedEvent(order *SalesOrder) *SalesOrderShippedEvent {
	return &SalesOrderShippedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSalesOrderShipped, AggregateTypeSalesOrder, order.ID),
		OrderID:         order.ID,
		TargetKind:      order.TargetKind,
		ProductID:       order.ProductID,
		OfferID:         order.OfferID,
		Quantity:        order.Quantity,
		TotalPrice:      order.TotalPrice,
		ProfitBeforeTax: order.ProfitBeforeTax,
		ProfitAfterTax:  order.ProfitAfterTax,
	}
}
