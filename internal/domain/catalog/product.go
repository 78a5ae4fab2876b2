package catalog

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stockroom/backend/internal/domain/shared"
	"github.com/stockroom/backend/internal/domain/shared/valueobject"
)

// Product represents a product/SKU in the catalog
// It is the aggregate root for product-related operations.
// Category and supplier are referenced by display name; product names
// themselves are not unique, so cross-aggregate references to products
// always use the ID.
type Product struct {
	shared.BaseAggregateRoot
	Name         string          `gorm:"type:varchar(200);not null;index"`
	CategoryName string          `gorm:"type:varchar(100);not null;index"`
	SupplierName string          `gorm:"type:varchar(200);not null;index"`
	Price        decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"` // Selling price per unit
	Cost         decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"` // Acquisition cost per unit
	Stock        int64           `gorm:"not null;default:0;check:stock >= 0"`   // Units on hand
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product
func NewProduct(name, categoryName, supplierName string, price, cost valueobject.Money, stock int64) (*Product, error) {
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if strings.TrimSpace(categoryName) == "" {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Category name cannot be empty")
	}
	if strings.TrimSpace(supplierName) == "" {
		return nil, shared.NewDomainError("INVALID_SUPPLIER", "Supplier name cannot be empty")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	if cost.IsNegative() {
		return nil, shared.NewDomainError("INVALID_COST", "Cost cannot be negative")
	}
	if stock < 0 {
		return nil, shared.NewDomainError("INVALID_STOCK", "Stock cannot be negative")
	}

	product := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(name),
		CategoryName:      strings.TrimSpace(categoryName),
		SupplierName:      strings.TrimSpace(supplierName),
		Price:             price.Amount(),
		Cost:              cost.Amount(),
		Stock:             stock,
	}

	product.AddDomainEvent(NewProductCreatedEvent(product))

	return product, nil
}

// SetPrices sets both selling price and cost
func (p *Product) SetPrices(price, cost valueobject.Money) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}
	if cost.IsNegative() {
		return shared.NewDomainError("INVALID_COST", "Cost cannot be negative")
	}

	p.Price = price.Amount()
	p.Cost = cost.Amount()
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// Restock increases stock by the given quantity
func (p *Product) Restock(quantity int64) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Restock quantity must be positive")
	}

	p.Stock += quantity
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	p.AddDomainEvent(NewProductRestockedEvent(p, quantity))

	return nil
}

// DecrementStock reduces stock by the given quantity.
// Stock never goes negative: callers must treat ErrInsufficientStock
// as a rejection, and the persistence layer enforces the same guard
// atomically for concurrent writers.
func (p *Product) DecrementStock(quantity int64) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Decrement quantity must be positive")
	}
	if p.Stock < quantity {
		return shared.ErrInsufficientStock
	}

	p.Stock -= quantity
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return nil
}

// InStock returns true if the product has at least one unit on hand
func (p *Product) InStock() bool {
	return p.Stock > 0
}

// HasStock returns true if at least quantity units are on hand
func (p *Product) HasStock(quantity int64) bool {
	return p.Stock >= quantity
}

// GetPriceMoney returns the selling price as Money value object
func (p *Product) GetPriceMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(p.Price)
}

// GetCostMoney returns the cost as Money value object
func (p *Product) GetCostMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(p.Cost)
}

// UnitMargin returns price minus cost for a single unit
func (p *Product) UnitMargin() decimal.Decimal {
	return p.Price.Sub(p.Cost)
}

func validateProductName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	return nil
}
