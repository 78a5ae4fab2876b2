package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockroom/backend/internal/domain/catalog"
)

// CreateSupplierRequest represents a request to register a supplier
type CreateSupplierRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=200"`
	Contact string `json:"contact" binding:"max=100"`
	Email   string `json:"email" binding:"omitempty,email,max=200"`
}

// UpdateSupplierContactRequest represents a request to update supplier contact info
type UpdateSupplierContactRequest struct {
	Contact string `json:"contact" binding:"max=100"`
	Email   string `json:"email" binding:"omitempty,email,max=200"`
}

// SupplierResponse represents a supplier in API responses
type SupplierResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Contact   string    `json:"contact"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Version   int       `json:"version"`
}

// CreateCategoryRequest represents a request to create a category
type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateProductRequest represents a request to add a product to the catalog
type CreateProductRequest struct {
	Name     string          `json:"name" binding:"required,min=1,max=200"`
	Category string          `json:"category" binding:"required,min=1,max=100"`
	Supplier string          `json:"supplier" binding:"required,min=1,max=200"`
	Price    decimal.Decimal `json:"price" binding:"required"`
	Cost     decimal.Decimal `json:"cost" binding:"required"`
	Stock    int64           `json:"stock" binding:"min=0"`
}

// RestockProductRequest represents a request to add stock to a product
type RestockProductRequest struct {
	Quantity int64 `json:"quantity" binding:"required,min=1"`
}

// UpdateProductPricesRequest represents a request to reprice a product
type UpdateProductPricesRequest struct {
	Price decimal.Decimal `json:"price" binding:"required"`
	Cost  decimal.Decimal `json:"cost" binding:"required"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID         uuid.UUID       `json:"id"`
	Name       string          `json:"name"`
	Category   string          `json:"category"`
	Supplier   string          `json:"supplier"`
	Price      decimal.Decimal `json:"price"`
	Cost       decimal.Decimal `json:"cost"`
	Stock      int64           `json:"stock"`
	UnitMargin decimal.Decimal `json:"unit_margin"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
	Version    int             `json:"version"`
}

// ProductListFilter represents filter options for product list
type ProductListFilter struct {
	Search   string `form:"search"`
	Category string `form:"category"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToSupplierResponse converts a domain Supplier to SupplierResponse
func ToSupplierResponse(s *catalog.Supplier) SupplierResponse {
	return SupplierResponse{
		ID:        s.ID,
		Name:      s.Name,
		Contact:   s.Contact,
		Email:     s.Email,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
		Version:   s.Version,
	}
}

// ToCategoryResponse converts a domain Category to CategoryResponse
func ToCategoryResponse(c *catalog.Category) CategoryResponse {
	return CategoryResponse{
		ID:        c.ID,
		Name:      c.Name,
		CreatedAt: c.CreatedAt,
	}
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:         p.ID,
		Name:       p.Name,
		Category:   p.CategoryName,
		Supplier:   p.SupplierName,
		Price:      p.Price,
		Cost:       p.Cost,
		Stock:      p.Stock,
		UnitMargin: p.UnitMargin(),
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
		Version:    p.Version,
	}
}

// ToProductResponses converts a slice of domain Products
func ToProductResponses(products []catalog.Product) []ProductResponse {
	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = ToProductResponse(&products[i])
	}
	return responses
}
