package offer

import (
	"context"

	"github.com/google/uuid"
	"github.com/stockroom/backend/internal/domain/catalog"
	"github.com/stockroom/backend/internal/domain/offer"
	"github.com/stockroom/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// AvailabilityService recomputes the derived Active flag of offers
// from live product stock. An offer is active iff every constituent
// product has stock > 0; a missing product counts as out of stock.
//
// Derivation is pure (offer.DeriveActive); this service resolves the
// inputs and persists only flags that actually changed.
type AvailabilityService struct {
	offerRepo   offer.OfferRepository
	productRepo catalog.ProductRepository
	logger      *zap.Logger
}

// NewAvailabilityService creates a new AvailabilityService
func NewAvailabilityService(
	offerRepo offer.OfferRepository,
	productRepo catalog.ProductRepository,
	logger *zap.Logger,
) *AvailabilityService {
	return &AvailabilityService{
		offerRepo:   offerRepo,
		productRepo: productRepo,
		logger:      logger,
	}
}

// Refresh recomputes availability for a single offer and persists the
// flag when it changed. Returns the freshly derived value.
func (s *AvailabilityService) Refresh(ctx context.Context, o *offer.Offer) (bool, error) {
	products, err := s.resolveProducts(ctx, o.ProductIDs())
	if err != nil {
		return o.Active, err
	}

	active := o.DeriveActive(products)
	if o.ApplyActive(active) {
		if err := s.offerRepo.SetActive(ctx, o.ID, active); err != nil {
			return active, err
		}
		s.logger.Info("offer availability changed",
			zap.String("offer_id", o.ID.String()),
			zap.Bool("active", active))
	}
	return active, nil
}

// refreshAllPageSize bounds how many offers are loaded per page when
// reconciling the whole table.
const refreshAllPageSize = 200

// RefreshAll recomputes availability for every offer, paging through
// the whole table. Returns the number of offers whose flag changed.
func (s *AvailabilityService) RefreshAll(ctx context.Context) (int, error) {
	filter := shared.DefaultFilter()
	filter.PageSize = refreshAllPageSize

	changed := 0
	for {
		offers, err := s.offerRepo.FindAll(ctx, filter)
		if err != nil {
			return changed, err
		}
		n, err := s.refreshOffers(ctx, offers)
		changed += n
		if err != nil {
			return changed, err
		}
		if len(offers) < filter.PageSize {
			return changed, nil
		}
		filter.Page++
	}
}

// RefreshForProducts recomputes availability for offers referencing any
// of the given products. Used after a shipment or restock changes stock.
func (s *AvailabilityService) RefreshForProducts(ctx context.Context, productIDs []uuid.UUID) (int, error) {
	seen := make(map[uuid.UUID]struct{})
	var affected []offer.Offer
	for _, productID := range productIDs {
		offers, err := s.offerRepo.FindByProductID(ctx, productID)
		if err != nil {
			return 0, err
		}
		for _, o := range offers {
			if _, dup := seen[o.ID]; dup {
				continue
			}
			seen[o.ID] = struct{}{}
			affected = append(affected, o)
		}
	}
	return s.refreshOffers(ctx, affected)
}

func (s *AvailabilityService) refreshOffers(ctx context.Context, offers []offer.Offer) (int, error) {
	changed := 0
	for i := range offers {
		o := &offers[i]
		before := o.Active
		active, err := s.Refresh(ctx, o)
		if err != nil {
			return changed, err
		}
		if active != before {
			changed++
		}
	}
	return changed, nil
}

func (s *AvailabilityService) resolveProducts(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*catalog.Product, error) {
	products, err := s.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]*catalog.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}
	return byID, nil
}
