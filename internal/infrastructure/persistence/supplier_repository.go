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

// GormSupplierRepository implements SupplierRepository using GORM
type GormSupplierRepository struct {
	db *gorm.DB
}

// NewGormSupplierRepository creates a new GormSupplierRepository
func NewGormSupplierRepository(db *gorm.DB) *GormSupplierRepository {
	return &GormSupplierRepository{db: db}
}

// FindByID finds a supplier by its ID
func (r *GormSupplierRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Supplier, error) {
	var supplier catalog.Supplier
	if err := r.db.WithContext(ctx).First(&supplier, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, shared.NewStorageError("supplier.FindByID", err)
	}
	return &supplier, nil
}

// FindByName finds a supplier by its unique name
func (r *GormSupplierRepository) FindByName(ctx context.Context, name string) (*catalog.Supplier, error) {
	var supplier catalog.Supplier
	if err := r.db.WithContext(ctx).First(&supplier, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, shared.NewStorageError("supplier.FindByName", err)
	}
	return &supplier, nil
}

// FindAll finds all suppliers matching the filter
func (r *GormSupplierRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Supplier, error) {
	var suppliers []catalog.Supplier
	query := r.db.WithContext(ctx).Model(&catalog.Supplier{})

	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(name) LIKE ?", pattern)
	}
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}
	query = query.Order("name ASC")

	if err := query.Find(&suppliers).Error; err != nil {
		return nil, shared.NewStorageError("supplier.FindAll", err)
	}
	return suppliers, nil
}

// Save creates or updates a supplier
func (r *GormSupplierRepository) Save(ctx context.Context, supplier *catalog.Supplier) error {
	if err := r.db.WithContext(ctx).Save(supplier).Error; err != nil {
		return shared.NewStorageError("supplier.Save", err)
	}
	return nil
}

// ExistsByName checks if a supplier with the given name exists
func (r *GormSupplierRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&catalog.Supplier{}).
		Where("name = ?", name).
		Count(&count).Error; err != nil {
		return false, shared.NewStorageError("supplier.ExistsByName", err)
	}
	return count > 0, nil
}

// Count counts suppliers matching the filter
func (r *GormSupplierRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&catalog.Supplier{})
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(name) LIKE ?", pattern)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, shared.NewStorageError("supplier.Count", err)
	}
	return count, nil
}

// Ensure GormSupplierRepository implements SupplierRepository
var _ catalog.SupplierRepository = (*GormSupplierRepository)(nil)
