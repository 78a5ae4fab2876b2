package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/stockroom/backend/internal/domain/catalog"
	"github.com/stockroom/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormProductRepository implements ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByID finds a product by its ID
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var product catalog.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, shared.NewStorageError("product.FindByID", err)
	}
	return &product, nil
}

// FindByIDs finds multiple products by their IDs
func (r *GormProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	if len(ids) == 0 {
		return []catalog.Product{}, nil
	}

	var products []catalog.Product
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, shared.NewStorageError("product.FindByIDs", err)
	}
	return products, nil
}

// FindAll finds all products matching the filter
func (r *GormProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	var products []catalog.Product
	query := r.applyFilter(r.db.WithContext(ctx).Model(&catalog.Product{}), filter)

	if err := query.Find(&products).Error; err != nil {
		return nil, shared.NewStorageError("product.FindAll", err)
	}
	return products, nil
}

// FindByCategory finds all products in a specific category
func (r *GormProductRepository) FindByCategory(ctx context.Context, categoryName string, filter shared.Filter) ([]catalog.Product, error) {
	var products []catalog.Product
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&catalog.Product{}).Where("category_name = ?", categoryName),
		filter,
	)

	if err := query.Find(&products).Error; err != nil {
		return nil, shared.NewStorageError("product.FindByCategory", err)
	}
	return products, nil
}

// Save creates or updates a product
func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	if err := r.db.WithContext(ctx).Save(product).Error; err != nil {
		return shared.NewStorageError("product.Save", err)
	}
	return nil
}

// SaveWithLock saves with optimistic locking. The domain model already
// incremented the version, so the row must still hold version-1.
func (r *GormProductRepository) SaveWithLock(ctx context.Context, product *catalog.Product) error {
	result := r.db.WithContext(ctx).
		Model(product).
		Where("id = ? AND version = ?", product.ID, product.Version-1).
		Updates(product)

	if result.Error != nil {
		return shared.NewStorageError("product.SaveWithLock", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// DecrementStock atomically decrements stock, guarded by the current
// stock level so concurrent shipments can never drive it negative.
func (r *GormProductRepository) DecrementStock(ctx context.Context, id uuid.UUID, quantity int64) error {
	result := r.db.WithContext(ctx).
		Model(&catalog.Product{}).
		Where("id = ? AND stock >= ?", id, quantity).
		UpdateColumn("stock", gorm.Expr("stock - ?", quantity))

	if result.Error != nil {
		return shared.NewStorageError("product.DecrementStock", result.Error)
	}
	if result.RowsAffected == 0 {
		// Guard failed: either the row is gone or stock is short
		var count int64
		if err := r.db.WithContext(ctx).Model(&catalog.Product{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return shared.NewStorageError("product.DecrementStock", err)
		}
		if count == 0 {
			return shared.ErrNotFound
		}
		return shared.ErrInsufficientStock
	}
	return nil
}

// Delete deletes a product
func (r *GormProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.Product{}, "id = ?", id)
	if result.Error != nil {
		return shared.NewStorageError("product.Delete", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts products matching the filter
func (r *GormProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applySearch(r.db.WithContext(ctx).Model(&catalog.Product{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, shared.NewStorageError("product.Count", err)
	}
	return count, nil
}

func (r *GormProductRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applySearch(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		orderDir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			orderDir = "DESC"
		}
		query = query.Order(filter.OrderBy + " " + orderDir)
	} else {
		query = query.Order("name ASC")
	}

	return query
}

func (r *GormProductRepository) applySearch(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		// LOWER+LIKE works on both postgres and sqlite
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(name) LIKE ?", pattern)
	}
	return query
}

// Ensure GormProductRepository implements ProductRepository
var _ catalog.ProductRepository = (*GormProductRepository)(nil)
