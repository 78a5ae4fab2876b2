package offer

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockroom/backend/internal/domain/catalog"
	"github.com/stockroom/backend/internal/domain/shared"
	"github.com/stockroom/backend/internal/domain/shared/valueobject"
)

// OfferProduct is a line of an offer bundle, referencing one product
// by identity. Position preserves the order products were composed in.
type OfferProduct struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OfferID   uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index"`
	Position  int       `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (OfferProduct) TableName() string {
	return "offer_products"
}

// Offer represents a fixed bundle of distinct products sold together
// at one price. It is the aggregate root for offer operations.
//
// Active is a derived flag, not an authoritative one: it mirrors
// "every constituent product has stock > 0" and is recomputed from
// live stock before any read that depends on it.
type Offer struct {
	shared.BaseAggregateRoot
	Name     string          `gorm:"type:varchar(200);not null"`
	Price    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"` // Bundle selling price
	Cost     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"` // Sum of constituent costs at compose time
	Active   bool            `gorm:"not null;default:true;index"`
	Products []OfferProduct  `gorm:"foreignKey:OfferID;references:ID"`
}

// TableName returns the table name for GORM
func (Offer) TableName() string {
	return "offers"
}

// NewOffer composes a bundle from already-resolved products.
// Cost is captured as the sum of the constituent product costs at this
// moment. Pricing below cost is permitted.
func NewOffer(name string, products []catalog.Product, price valueobject.Money) (*Offer, error) {
	if len(products) == 0 {
		return nil, shared.NewDomainError("EMPTY_OFFER", "An offer must reference at least one product")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Offer price cannot be negative")
	}

	seen := make(map[uuid.UUID]struct{}, len(products))
	cost := decimal.Zero
	allInStock := true
	for _, p := range products {
		if _, dup := seen[p.ID]; dup {
			return nil, shared.NewDomainError("DUPLICATE_PRODUCT", "An offer cannot reference the same product twice")
		}
		seen[p.ID] = struct{}{}
		cost = cost.Add(p.Cost)
		if !p.InStock() {
			allInStock = false
		}
	}

	offer := &Offer{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Price:             price.Amount(),
		Cost:              cost,
		Active:            allInStock,
	}

	lines := make([]OfferProduct, len(products))
	for i, p := range products {
		lines[i] = OfferProduct{
			ID:        uuid.New(),
			OfferID:   offer.ID,
			ProductID: p.ID,
			Position:  i,
		}
	}
	offer.Products = lines

	offer.AddDomainEvent(NewOfferComposedEvent(offer))

	return offer, nil
}

// ProductIDs returns the constituent product IDs in composition order
func (o *Offer) ProductIDs() []uuid.UUID {
	ids := make([]uuid.UUID, len(o.Products))
	for i, line := range o.Products {
		ids[i] = line.ProductID
	}
	return ids
}

// DeriveActive recomputes the availability flag from live products.
// Every referenced product must be present in the map and have
// stock > 0; a missing product counts as out of stock.
func (o *Offer) DeriveActive(products map[uuid.UUID]*catalog.Product) bool {
	for _, line := range o.Products {
		p, ok := products[line.ProductID]
		if !ok || !p.InStock() {
			return false
		}
	}
	return true
}

// ApplyActive persists a freshly derived availability flag on the
// aggregate. It returns true when the flag actually changed, so
// callers can skip writes for unchanged offers.
func (o *Offer) ApplyActive(active bool) bool {
	if o.Active == active {
		return false
	}

	o.Active = active
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	o.AddDomainEvent(NewOfferAvailabilityChangedEvent(o))

	return true
}

// GetPriceMoney returns the bundle price as Money value object
func (o *Offer) GetPriceMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(o.Price)
}

// GetCostMoney returns the bundle cost as Money value object
func (o *Offer) GetCostMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(o.Cost)
}
