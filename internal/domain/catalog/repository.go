package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/stockroom/backend/internal/domain/shared"
)

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByID finds a product by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindByIDs finds multiple products by their IDs.
	// Missing IDs are simply absent from the result; callers that need
	// referential integrity must compare lengths themselves.
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Product, error)

	// FindAll finds all products matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)

	// FindByCategory finds all products in a category
	FindByCategory(ctx context.Context, categoryName string, filter shared.Filter) ([]Product, error)

	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error

	// SaveWithLock saves with optimistic locking (checks version)
	SaveWithLock(ctx context.Context, product *Product) error

	// DecrementStock atomically decrements stock by quantity, guarded
	// by stock >= quantity. Returns shared.ErrInsufficientStock when
	// the guard fails and shared.ErrNotFound when the product is gone.
	DecrementStock(ctx context.Context, id uuid.UUID, quantity int64) error

	// Delete deletes a product
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts products matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// SupplierRepository defines the interface for supplier persistence
type SupplierRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Supplier, error)
	FindByName(ctx context.Context, name string) (*Supplier, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Supplier, error)
	Save(ctx context.Context, supplier *Supplier) error
	ExistsByName(ctx context.Context, name string) (bool, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// CategoryRepository defines the interface for category persistence
type CategoryRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)
	FindByName(ctx context.Context, name string) (*Category, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Category, error)
	Save(ctx context.Context, category *Category) error
	ExistsByName(ctx context.Context, name string) (bool, error)
}
