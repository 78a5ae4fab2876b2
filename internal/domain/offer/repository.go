package offer

import (
	"context"

	"github.com/google/uuid"
	"github.com/stockroom/backend/internal/domain/shared"
)

// OfferRepository defines the interface for offer persistence.
// All finders return offers with their product lines resolved.
type OfferRepository interface {
	// FindByID finds an offer by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Offer, error)

	// FindAll finds all offers matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Offer, error)

	// FindByProductID finds all offers referencing the given product
	FindByProductID(ctx context.Context, productID uuid.UUID) ([]Offer, error)

	// Save creates or updates an offer with its product lines
	Save(ctx context.Context, offer *Offer) error

	// SetActive persists only the derived availability flag.
	// Used by the availability refresh, which must not touch any other
	// column.
	SetActive(ctx context.Context, id uuid.UUID, active bool) error

	// Delete deletes an offer and its product lines
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts offers matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
