package trade

import (
	"context"

	"github.com/google/uuid"
	"github.com/stockroom/backend/internal/domain/shared"
)

// SalesOrderRepository defines the interface for sales order persistence
type SalesOrderRepository interface {
	// FindByID finds a sales order by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*SalesOrder, error)

	// FindPending finds all pending sales orders
	FindPending(ctx context.Context) ([]SalesOrder, error)

	// FindAll finds all sales orders matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]SalesOrder, error)

	// Save creates or updates a sales order
	Save(ctx context.Context, order *SalesOrder) error

	// SaveWithLock saves with optimistic locking (checks version)
	SaveWithLock(ctx context.Context, order *SalesOrder) error

	// CountByStatus counts orders in the given status
	CountByStatus(ctx context.Context, status OrderStatus) (int64, error)

	// Count counts sales orders matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
