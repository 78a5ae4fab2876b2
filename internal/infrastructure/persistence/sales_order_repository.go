package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/stockroom/backend/internal/domain/shared"
	"github.com/stockroom/backend/internal/domain/trade"
	"gorm.io/gorm"
)

// GormSalesOrderRepository implements SalesOrderRepository using GORM
type GormSalesOrderRepository struct {
	db *gorm.DB
}

// NewGormSalesOrderRepository creates a new GormSalesOrderRepository
func NewGormSalesOrderRepository(db *gorm.DB) *GormSalesOrderRepository {
	return &GormSalesOrderRepository{db: db}
}

// FindByID finds a sales order by its ID
func (r *GormSalesOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.SalesOrder, error) {
	var order trade.SalesOrder
	if err := r.db.WithContext(ctx).First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, shared.NewStorageError("salesorder.FindByID", err)
	}
	return &order, nil
}

// FindPending finds all pending sales orders, oldest first
func (r *GormSalesOrderRepository) FindPending(ctx context.Context) ([]trade.SalesOrder, error) {
	var orders []trade.SalesOrder
	err := r.db.WithContext(ctx).
		Where("status = ?", trade.OrderStatusPending).
		Order("placed_at ASC").
		Find(&orders).Error
	if err != nil {
		return nil, shared.NewStorageError("salesorder.FindPending", err)
	}
	return orders, nil
}

// FindAll finds all sales orders matching the filter
func (r *GormSalesOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]trade.SalesOrder, error) {
	var orders []trade.SalesOrder
	query := r.applyFilter(r.db.WithContext(ctx).Model(&trade.SalesOrder{}), filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}
	query = query.Order("placed_at DESC")

	if err := query.Find(&orders).Error; err != nil {
		return nil, shared.NewStorageError("salesorder.FindAll", err)
	}
	return orders, nil
}

// Save creates or updates a sales order
func (r *GormSalesOrderRepository) Save(ctx context.Context, order *trade.SalesOrder) error {
	if err := r.db.WithContext(ctx).Save(order).Error; err != nil {
		return shared.NewStorageError("salesorder.Save", err)
	}
	return nil
}

// SaveWithLock saves with optimistic locking. The domain model already
// incremented the version, so the row must still hold version-1.
func (r *GormSalesOrderRepository) SaveWithLock(ctx context.Context, order *trade.SalesOrder) error {
	result := r.db.WithContext(ctx).
		Model(order).
		Where("id = ? AND version = ?", order.ID, order.Version-1).
		Updates(order)

	if result.Error != nil {
		return shared.NewStorageError("salesorder.SaveWithLock", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// CountByStatus counts orders in the given status
func (r *GormSalesOrderRepository) CountByStatus(ctx context.Context, status trade.OrderStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&trade.SalesOrder{}).
		Where("status = ?", status).
		Count(&count).Error
	if err != nil {
		return 0, shared.NewStorageError("salesorder.CountByStatus", err)
	}
	return count, nil
}

// Count counts sales orders matching the filter
func (r *GormSalesOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&trade.SalesOrder{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, shared.NewStorageError("salesorder.Count", err)
	}
	return count, nil
}

func (r *GormSalesOrderRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	if productID, ok := filter.Filters["product_id"]; ok {
		query = query.Where("product_id = ?", productID)
	}
	if offerID, ok := filter.Filters["offer_id"]; ok {
		query = query.Where("offer_id = ?", offerID)
	}
	return query
}

// Ensure GormSalesOrderRepository implements SalesOrderRepository
var _ trade.SalesOrderRepository = (*GormSalesOrderRepository)(nil)
