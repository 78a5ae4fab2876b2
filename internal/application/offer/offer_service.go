package offer

import (
	"context"

	"github.com/google/uuid"
	"github.com/stockroom/backend/internal/domain/catalog"
	"github.com/stockroom/backend/internal/domain/offer"
	"github.com/stockroom/backend/internal/domain/shared"
	"github.com/stockroom/backend/internal/domain/shared/valueobject"
)

// OfferService handles offer-related business operations.
// Reads that expose the Active flag refresh it from live stock first,
// so a stale flag is never served.
type OfferService struct {
	offerRepo    offer.OfferRepository
	productRepo  catalog.ProductRepository
	availability *AvailabilityService
}

// NewOfferService creates a new OfferService
func NewOfferService(
	offerRepo offer.OfferRepository,
	productRepo catalog.ProductRepository,
	availability *AvailabilityService,
) *OfferService {
	return &OfferService{
		offerRepo:    offerRepo,
		productRepo:  productRepo,
		availability: availability,
	}
}

// Compose creates a new offer bundle from existing products
func (s *OfferService) Compose(ctx context.Context, req ComposeOfferRequest) (*OfferResponse, error) {
	products, err := s.productRepo.FindByIDs(ctx, req.ProductIDs)
	if err != nil {
		return nil, err
	}
	if len(products) != len(req.ProductIDs) {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "One or more referenced products do not exist")
	}

	// FindByIDs does not guarantee input order; re-sort to the request
	// so line positions match what the caller composed.
	byID := make(map[uuid.UUID]catalog.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	ordered := make([]catalog.Product, 0, len(req.ProductIDs))
	for _, id := range req.ProductIDs {
		p, ok := byID[id]
		if !ok {
			return nil, shared.NewDomainError("INVALID_PRODUCT", "One or more referenced products do not exist")
		}
		ordered = append(ordered, p)
	}

	composed, err := offer.NewOffer(req.Name, ordered, valueobject.NewMoneyUSD(req.Price))
	if err != nil {
		return nil, err
	}

	if err := s.offerRepo.Save(ctx, composed); err != nil {
		return nil, err
	}

	response := ToOfferResponse(composed)
	return &response, nil
}

// GetByID retrieves an offer with a freshly derived availability flag
func (s *OfferService) GetByID(ctx context.Context, offerID uuid.UUID) (*OfferResponse, error) {
	found, err := s.offerRepo.FindByID(ctx, offerID)
	if err != nil {
		return nil, err
	}

	if _, err := s.availability.Refresh(ctx, found); err != nil {
		return nil, err
	}

	response := ToOfferResponse(found)
	return &response, nil
}

// List retrieves offers with availability refreshed before filtering.
// With ActiveOnly set, offers whose freshly derived flag is false are
// excluded even if the stored flag said otherwise.
func (s *OfferService) List(ctx context.Context, filter OfferListFilter) ([]OfferResponse, error) {
	repoFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		repoFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		repoFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		repoFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		repoFilter.OrderDir = filter.OrderDir
	}

	offers, err := s.offerRepo.FindAll(ctx, repoFilter)
	if err != nil {
		return nil, err
	}

	responses := make([]OfferResponse, 0, len(offers))
	for i := range offers {
		o := &offers[i]
		active, err := s.availability.Refresh(ctx, o)
		if err != nil {
			return nil, err
		}
		if filter.ActiveOnly && !active {
			continue
		}
		responses = append(responses, ToOfferResponse(o))
	}
	return responses, nil
}

// Delete removes an offer and its product lines
func (s *OfferService) Delete(ctx context.Context, offerID uuid.UUID) error {
	if _, err := s.offerRepo.FindByID(ctx, offerID); err != nil {
		return err
	}
	return s.offerRepo.Delete(ctx, offerID)
}
