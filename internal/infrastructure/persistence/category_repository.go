package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/stockroom/backend/internal/domain/catalog"
	"github.com/stockroom/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormCategoryRepository implements CategoryRepository using GORM
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewGormCategoryRepository creates a new GormCategoryRepository
func NewGormCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

// FindByID finds a category by its ID
func (r *GormCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Category, error) {
	var category catalog.Category
	if err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, shared.NewStorageError("category.FindByID", err)
	}
	return &category, nil
}

// FindByName finds a category by its unique name
func (r *GormCategoryRepository) FindByName(ctx context.Context, name string) (*catalog.Category, error) {
	var category catalog.Category
	if err := r.db.WithContext(ctx).First(&category, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, shared.NewStorageError("category.FindByName", err)
	}
	return &category, nil
}

// FindAll finds all categories
func (r *GormCategoryRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Category, error) {
	var categories []catalog.Category
	query := r.db.WithContext(ctx).Model(&catalog.Category{}).Order("name ASC")
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	if err := query.Find(&categories).Error; err != nil {
		return nil, shared.NewStorageError("category.FindAll", err)
	}
	return categories, nil
}

// Save creates or updates a category
func (r *GormCategoryRepository) Save(ctx context.Context, category *catalog.Category) error {
	if err := r.db.WithContext(ctx).Save(category).Error; err != nil {
		return shared.NewStorageError("category.Save", err)
	}
	return nil
}

// ExistsByName checks if a category with the given name exists
func (r *GormCategoryRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&catalog.Category{}).
		Where("name = ?", name).
		Count(&count).Error; err != nil {
		return false, shared.NewStorageError("category.ExistsByName", err)
	}
	return count > 0, nil
}

// Ensure GormCategoryRepository implements CategoryRepository
var _ catalog.CategoryRepository = (*GormCategoryRepository)(nil)
