package trade

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockroom/backend/internal/domain/shared"
)

// OrderStatus represents the status of a sales order
type OrderStatus string

const (
	OrderStatusPending OrderStatus = "pending"
	OrderStatusShipped OrderStatus = "shipped"
)

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusShipped:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	// pending -> shipped is the only transition; shipped is terminal
	return s == OrderStatusPending && target == OrderStatusShipped
}

// TargetKind discriminates what a sales order is for
type TargetKind string

const (
	TargetKindProduct TargetKind = "product"
	TargetKindOffer   TargetKind = "offer"
)

// OrderTarget is a tagged reference to either a single product or an
// offer bundle. Exactly one of ProductID/OfferID is set, resolved once
// at order creation.
type OrderTarget struct {
	Kind      TargetKind
	ProductID *uuid.UUID
	OfferID   *uuid.UUID
}

// SingleTarget creates a target for one product
func SingleTarget(productID uuid.UUID) OrderTarget {
	return OrderTarget{Kind: TargetKindProduct, ProductID: &productID}
}

// BundleTarget creates a target for an offer bundle
func BundleTarget(offerID uuid.UUID) OrderTarget {
	return OrderTarget{Kind: TargetKindOffer, OfferID: &offerID}
}

// Validate checks the tagged variant is well formed
func (t OrderTarget) Validate() error {
	switch t.Kind {
	case TargetKindProduct:
		if t.ProductID == nil || *t.ProductID == uuid.Nil {
			return shared.NewDomainError("INVALID_TARGET", "Product order must reference a product")
		}
		if t.OfferID != nil {
			return shared.NewDomainError("INVALID_TARGET", "Product order cannot also reference an offer")
		}
	case TargetKindOffer:
		if t.OfferID == nil || *t.OfferID == uuid.Nil {
			return shared.NewDomainError("INVALID_TARGET", "Offer order must reference an offer")
		}
		if t.ProductID != nil {
			return shared.NewDomainError("INVALID_TARGET", "Offer order cannot also reference a product")
		}
	default:
		return shared.NewDomainError("INVALID_TARGET", fmt.Sprintf("Unknown order target kind %q", t.Kind))
	}
	return nil
}

// SalesOrder represents a sales order aggregate root.
// Orders are created pending and transition exactly once to shipped,
// at which point the money fields are finalized and immutable.
type SalesOrder struct {
	shared.BaseAggregateRoot
	TargetKind      TargetKind      `gorm:"type:varchar(20);not null;index"`
	ProductID       *uuid.UUID      `gorm:"type:uuid;index"`
	OfferID         *uuid.UUID      `gorm:"type:uuid;index"`
	Quantity        int64           `gorm:"not null;check:quantity >= 1"`
	Status          OrderStatus     `gorm:"type:varchar(20);not null;default:'pending';index"`
	PlacedAt        time.Time       `gorm:"not null"`
	ShippedAt       *time.Time      `gorm:""`
	TotalPrice      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	ProfitBeforeTax decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	ProfitAfterTax  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (SalesOrder) TableName() string {
	return "sales_orders"
}

// NewSalesOrder creates a new pending sales order
func NewSalesOrder(target OrderTarget, quantity int64) (*SalesOrder, error) {
	if err := target.Validate(); err != nil {
		return nil, err
	}
	if quantity < 1 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Order quantity must be at least 1")
	}

	order := &SalesOrder{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		TargetKind:        target.Kind,
		ProductID:         target.ProductID,
		OfferID:           target.OfferID,
		Quantity:          quantity,
		Status:            OrderStatusPending,
		PlacedAt:          time.Now(),
		TotalPrice:        decimal.Zero,
		ProfitBeforeTax:   decimal.Zero,
		ProfitAfterTax:    decimal.Zero,
	}

	order.AddDomainEvent(NewSalesOrderPlacedEvent(order))

	return order, nil
}

// Target returns the tagged order target
func (o *SalesOrder) Target() OrderTarget {
	return OrderTarget{Kind: o.TargetKind, ProductID: o.ProductID, OfferID: o.OfferID}
}

// IsPending returns true if the order has not shipped yet
func (o *SalesOrder) IsPending() bool {
	return o.Status == OrderStatusPending
}

// IsShipped returns true if the order has shipped
func (o *SalesOrder) IsShipped() bool {
	return o.Status == OrderStatusShipped
}

// IsBundle returns true if the order targets an offer bundle
func (o *SalesOrder) IsBundle() bool {
	return o.TargetKind == TargetKindOffer
}

// MarkShipped transitions the order to shipped and finalizes its
// money fields. Shipping a non-pending order is rejected without
// side effects.
func (o *SalesOrder) MarkShipped(pricing ShipmentPricing) error {
	if !o.Status.CanTransitionTo(OrderStatusShipped) {
		return shared.ErrInvalidState
	}

	now := time.Now()
	o.Status = OrderStatusShipped
	o.ShippedAt = &now
	o.TotalPrice = pricing.TotalPrice
	o.ProfitBeforeTax = pricing.ProfitBeforeTax
	o.ProfitAfterTax = pricing.ProfitAfterTax
	o.UpdatedAt = now
	o.IncrementVersion()

	o.AddDomainEvent(NewSalesOrderShippedEvent(o))

	return nil
}
