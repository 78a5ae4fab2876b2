package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/stockroom/backend/internal/domain/offer"
	"github.com/stockroom/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormOfferRepository implements OfferRepository using GORM.
// Offers always load with their product lines in composition order.
type GormOfferRepository struct {
	db *gorm.DB
}

// NewGormOfferRepository creates a new GormOfferRepository
func NewGormOfferRepository(db *gorm.DB) *GormOfferRepository {
	return &GormOfferRepository{db: db}
}

func (r *GormOfferRepository) withLines(db *gorm.DB) *gorm.DB {
	return db.Preload("Products", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	})
}

// FindByID finds an offer by its ID with product lines resolved
func (r *GormOfferRepository) FindByID(ctx context.Context, id uuid.UUID) (*offer.Offer, error) {
	var found offer.Offer
	if err := r.withLines(r.db.WithContext(ctx)).First(&found, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, shared.NewStorageError("offer.FindByID", err)
	}
	return &found, nil
}

// FindAll finds all offers matching the filter
func (r *GormOfferRepository) FindAll(ctx context.Context, filter shared.Filter) ([]offer.Offer, error) {
	var offers []offer.Offer
	query := r.withLines(r.db.WithContext(ctx)).Model(&offer.Offer{})

	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(name) LIKE ?", pattern)
	}
	if active, ok := filter.Filters["active"]; ok {
		query = query.Where("active = ?", active)
	}
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}
	query = query.Order("name ASC")

	if err := query.Find(&offers).Error; err != nil {
		return nil, shared.NewStorageError("offer.FindAll", err)
	}
	return offers, nil
}

// FindByProductID finds all offers referencing the given product
func (r *GormOfferRepository) FindByProductID(ctx context.Context, productID uuid.UUID) ([]offer.Offer, error) {
	var offers []offer.Offer
	err := r.withLines(r.db.WithContext(ctx)).
		Joins("JOIN offer_products ON offer_products.offer_id = offers.id").
		Where("offer_products.product_id = ?", productID).
		Find(&offers).Error
	if err != nil {
		return nil, shared.NewStorageError("offer.FindByProductID", err)
	}
	return offers, nil
}

// Save creates or updates an offer with its product lines
func (r *GormOfferRepository) Save(ctx context.Context, o *offer.Offer) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Products").Save(o).Error; err != nil {
			return err
		}
		// Lines are immutable after composition, so a full replace is
		// simpler than diffing.
		if err := tx.Delete(&offer.OfferProduct{}, "offer_id = ?", o.ID).Error; err != nil {
			return err
		}
		if len(o.Products) > 0 {
			if err := tx.Create(o.Products).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return shared.NewStorageError("offer.Save", err)
	}
	return nil
}

// SetActive persists only the derived availability flag
func (r *GormOfferRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	result := r.db.WithContext(ctx).
		Model(&offer.Offer{}).
		Where("id = ?", id).
		UpdateColumn("active", active)

	if result.Error != nil {
		return shared.NewStorageError("offer.SetActive", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete deletes an offer and its product lines
func (r *GormOfferRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&offer.OfferProduct{}, "offer_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&offer.Offer{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
	if err != nil {
		var domainErr *shared.DomainError
		if errors.As(err, &domainErr) {
			return err
		}
		return shared.NewStorageError("offer.Delete", err)
	}
	return nil
}

// Count counts offers matching the filter
func (r *GormOfferRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&offer.Offer{})
	if active, ok := filter.Filters["active"]; ok {
		query = query.Where("active = ?", active)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, shared.NewStorageError("offer.Count", err)
	}
	return count, nil
}

// Ensure GormOfferRepository implements OfferRepository
var _ offer.OfferRepository = (*GormOfferRepository)(nil)
