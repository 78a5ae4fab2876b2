package catalog

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockroom/backend/internal/domain/shared"
)

// Aggregate type constants
const (
	AggregateTypeProduct  = "Product"
	AggregateTypeSupplier = "Supplier"
)

// Event type constants
const (
	EventTypeProductCreated   = "ProductCreated"
	EventTypeProductRestocked = "ProductRestocked"
	EventTypeSupplierCreated  = "SupplierCreated"
)

// ProductCreatedEvent is raised when a new product is created
type ProductCreatedEvent struct {
	shared.BaseDomainEvent
	ProductID    uuid.UUID       `json:"product_id"`
	Name         string          `json:"name"`
	CategoryName string          `json:"category_name"`
	SupplierName string          `json:"supplier_name"`
	Price        decimal.Decimal `json:"price"`
	Stock        int64           `json:"stock"`
}

// NewProductCreatedEvent creates a new ProductCreatedEvent
func NewProductCreatedEvent(product *Product) *ProductCreatedEvent {
	return &ProductCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductCreated, AggregateTypeProduct, product.ID),
		ProductID:       product.ID,
		Name:            product.Name,
		CategoryName:    product.CategoryName,
		SupplierName:    product.SupplierName,
		Price:           product.Price,
		Stock:           product.Stock,
	}
}

// ProductRestockedEvent is raised when stock is added to a product
type ProductRestockedEvent struct {
	shared.BaseDomainEvent
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int64     `json:"quantity"`
	NewStock  int64     `json:"new_stock"`
}

// NewProductRestockedEvent creates a new ProductRestockedEvent
func NewProductRestockedEvent(product *Product, quantity int64) *ProductRestockedEvent {
	return &ProductRestockedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductRestocked, AggregateTypeProduct, product.ID),
		ProductID:       product.ID,
		Quantity:        quantity,
		NewStock:        product.Stock,
	}
}

// SupplierCreatedEvent is raised when a new supplier is created
type SupplierCreatedEvent struct {
	shared.BaseDomainEvent
	SupplierID uuid.UUID `json:"supplier_id"`
	Name       string    `json:"name"`
}

// NewSupplierCreatedEvent creates a new SupplierCreatedEvent
func NewSupplierCreatedEvent(supplier *Supplier) *SupplierCreatedEvent {
	return &SupplierCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSupplierCreated, AggregateTypeSupplier, supplier.ID),
		SupplierID:      supplier.ID,
		Name:            supplier.Name,
	}
}
