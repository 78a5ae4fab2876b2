package trade

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/stockroom/backend/internal/domain/catalog"
	"github.com/stockroom/backend/internal/domain/offer"
	"github.com/stockroom/backend/internal/domain/shared"
	"github.com/stockroom/backend/internal/domain/trade"
	"go.uber.org/zap"
)

// OfferAvailability recomputes an offer's availability from live stock,
// persisting the flag if it changed.
type OfferAvailability interface {
	Refresh(ctx context.Context, o *offer.Offer) (bool, error)
}

// SalesOrderService handles order placement and queries.
// Placement only records intent: the target must exist, but stock is
// not reserved and pricing is not computed until the order ships.
type SalesOrderService struct {
	orderRepo      trade.SalesOrderRepository
	productRepo    catalog.ProductRepository
	offerRepo      offer.OfferRepository
	availability   OfferAvailability
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewSalesOrderService creates a new SalesOrderService
func NewSalesOrderService(
	orderRepo trade.SalesOrderRepository,
	productRepo catalog.ProductRepository,
	offerRepo offer.OfferRepository,
	availability OfferAvailability,
	logger *zap.Logger,
) *SalesOrderService {
	return &SalesOrderService{
		orderRepo:    orderRepo,
		productRepo:  productRepo,
		offerRepo:    offerRepo,
		availability: availability,
		logger:       logger,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *SalesOrderService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Place creates a new pending sales order
func (s *SalesOrderService) Place(ctx context.Context, req PlaceOrderRequest) (*SalesOrderResponse, error) {
	target, err := s.resolveTarget(ctx, req)
	if err != nil {
		return nil, err
	}

	order, err := trade.NewSalesOrder(target, req.Quantity)
	if err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, order)

	response := ToSalesOrderResponse(order)
	return &response, nil
}

// GetByID retrieves a sales order by ID
func (s *SalesOrderService) GetByID(ctx context.Context, orderID uuid.UUID) (*SalesOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	response := ToSalesOrderResponse(order)
	return &response, nil
}

// ListPending retrieves all orders still awaiting shipment
func (s *SalesOrderService) ListPending(ctx context.Context) ([]SalesOrderResponse, error) {
	orders, err := s.orderRepo.FindPending(ctx)
	if err != nil {
		return nil, err
	}
	return ToSalesOrderResponses(orders), nil
}

// List retrieves orders with pagination and optional status filter
func (s *SalesOrderService) List(ctx context.Context, filter OrderListFilter) (*shared.Paginated[SalesOrderResponse], error) {
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
	if filter.Status != "" {
		repoFilter.Filters["status"] = filter.Status
	}

	orders, err := s.orderRepo.FindAll(ctx, repoFilter)
	if err != nil {
		return nil, err
	}

	total, err := s.orderRepo.Count(ctx, repoFilter)
	if err != nil {
		return nil, err
	}

	result := shared.NewPaginated(ToSalesOrderResponses(orders), total, repoFilter.Page, repoFilter.PageSize)
	return &result, nil
}

// resolveTarget validates the request's target reference against the
// catalog and builds the tagged order target.
func (s *SalesOrderService) resolveTarget(ctx context.Context, req PlaceOrderRequest) (trade.OrderTarget, error) {
	switch {
	case req.ProductID != nil && req.OfferID != nil:
		return trade.OrderTarget{}, shared.NewDomainError("INVALID_TARGET", "Order cannot reference both a product and an offer")
	case req.ProductID != nil:
		if _, err := s.productRepo.FindByID(ctx, *req.ProductID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return trade.OrderTarget{}, shared.NewDomainError("INVALID_PRODUCT", "Referenced product does not exist")
			}
			return trade.OrderTarget{}, err
		}
		return trade.SingleTarget(*req.ProductID), nil
	case req.OfferID != nil:
		found, err := s.offerRepo.FindByID(ctx, *req.OfferID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return trade.OrderTarget{}, shared.NewDomainError("INVALID_OFFER", "Referenced offer does not exist")
			}
			return trade.OrderTarget{}, err
		}
		// The persisted flag may lag behind stock movements, so derive
		// availability from live stock before accepting the order.
		active, err := s.availability.Refresh(ctx, found)
		if err != nil {
			return trade.OrderTarget{}, err
		}
		if !active {
			return trade.OrderTarget{}, shared.NewDomainError("INVALID_OFFER", "Referenced offer is not currently available")
		}
		return trade.BundleTarget(*req.OfferID), nil
	default:
		return trade.OrderTarget{}, shared.NewDomainError("INVALID_TARGET", "Order must reference a product or an offer")
	}
}

func (s *SalesOrderService) publishEvents(ctx context.Context, order *trade.SalesOrder) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range order.GetDomainEvents() {
		// Event handling is best effort; placement has already been persisted.
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			s.logger.Warn("failed to publish placement event",
				zap.String("order_id", order.ID.String()),
				zap.String("event_type", event.EventType()),
				zap.Error(err),
			)
		}
	}
	order.ClearDomainEvents()
}
