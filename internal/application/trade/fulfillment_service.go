package trade

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/stockroom/backend/internal/domain/shared"
	"github.com/stockroom/backend/internal/domain/trade"
	"go.uber.org/zap"
)

// FulfillmentService ships pending sales orders.
//
// A shipment is all-or-nothing: the status transition, the finalized
// money fields and every stock decrement commit in one transaction.
// If any constituent is short on stock the whole shipment is rejected
// and no stock moves.
type FulfillmentService struct {
	scope          TransactionScope
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewFulfillmentService creates a new FulfillmentService
func NewFulfillmentService(scope TransactionScope, logger *zap.Logger) *FulfillmentService {
	return &FulfillmentService{
		scope:  scope,
		logger: logger,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *FulfillmentService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Ship ships a single pending order. On success the order is shipped
// with its money fields finalized and stock decremented; on any error
// nothing is mutated.
func (s *FulfillmentService) Ship(ctx context.Context, orderID uuid.UUID) (*SalesOrderResponse, error) {
	var shipped *trade.SalesOrder

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		order, err := repos.Orders().FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		if !order.IsPending() {
			return shared.ErrInvalidState
		}

		pricing, err := s.priceAndDecrement(ctx, repos, order)
		if err != nil {
			return err
		}

		if err := order.MarkShipped(pricing); err != nil {
			return err
		}
		if err := repos.Orders().SaveWithLock(ctx, order); err != nil {
			return err
		}

		shipped = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("order shipped",
		zap.String("order_id", shipped.ID.String()),
		zap.String("target_kind", string(shipped.TargetKind)),
		zap.Int64("quantity", shipped.Quantity),
		zap.String("total_price", shipped.TotalPrice.String()),
	)

	// Events go out only after the transaction has committed.
	s.publishEvents(ctx, shipped)

	response := ToSalesOrderResponse(shipped)
	return &response, nil
}

// ShipBatch ships several orders, each in its own transaction. Orders
// succeed or fail independently: an insufficient-stock rejection on one
// order never rolls back or blocks its siblings.
func (s *FulfillmentService) ShipBatch(ctx context.Context, orderIDs []uuid.UUID) (*ShipBatchResponse, error) {
	result := &ShipBatchResponse{
		Shipped: make([]SalesOrderResponse, 0, len(orderIDs)),
		Failed:  make([]ShipFailure, 0),
	}

	for _, orderID := range orderIDs {
		response, err := s.Ship(ctx, orderID)
		if err != nil {
			result.Failed = append(result.Failed, toShipFailure(orderID, err))
			continue
		}
		result.Shipped = append(result.Shipped, *response)
	}

	s.logger.Info("batch shipment completed",
		zap.Int("requested", len(orderIDs)),
		zap.Int("shipped", len(result.Shipped)),
		zap.Int("failed", len(result.Failed)),
	)
	return result, nil
}

// priceAndDecrement validates stock, computes the shipment pricing and
// decrements stock for the order's target. All repository writes run
// on the transactional repositories, so a later failure unwinds them.
func (s *FulfillmentService) priceAndDecrement(ctx context.Context, repos TransactionalRepositories, order *trade.SalesOrder) (trade.ShipmentPricing, error) {
	switch order.TargetKind {
	case trade.TargetKindProduct:
		return s.shipSingle(ctx, repos, order)
	case trade.TargetKindOffer:
		return s.shipBundle(ctx, repos, order)
	default:
		return trade.ShipmentPricing{}, shared.NewDomainError("INVALID_TARGET", "Order has an unknown target kind")
	}
}

func (s *FulfillmentService) shipSingle(ctx context.Context, repos TransactionalRepositories, order *trade.SalesOrder) (trade.ShipmentPricing, error) {
	product, err := repos.Products().FindByID(ctx, *order.ProductID)
	if err != nil {
		return trade.ShipmentPricing{}, err
	}

	if err := repos.Products().DecrementStock(ctx, product.ID, order.Quantity); err != nil {
		return trade.ShipmentPricing{}, err
	}

	return trade.PriceSingleShipment(product, order.Quantity), nil
}

func (s *FulfillmentService) shipBundle(ctx context.Context, repos TransactionalRepositories, order *trade.SalesOrder) (trade.ShipmentPricing, error) {
	bundle, err := repos.Offers().FindByID(ctx, *order.OfferID)
	if err != nil {
		return trade.ShipmentPricing{}, err
	}

	productIDs := bundle.ProductIDs()
	products, err := repos.Products().FindByIDs(ctx, productIDs)
	if err != nil {
		return trade.ShipmentPricing{}, err
	}
	if len(products) != len(productIDs) {
		return trade.ShipmentPricing{}, shared.ErrNotFound
	}

	// Validate every constituent before decrementing anything, so the
	// common rejection path does no writes at all. Concurrent shipments
	// are still caught by the guarded decrement below.
	for i := range products {
		if !products[i].HasStock(order.Quantity) {
			return trade.ShipmentPricing{}, shared.ErrInsufficientStock
		}
	}

	for i := range products {
		if err := repos.Products().DecrementStock(ctx, products[i].ID, order.Quantity); err != nil {
			return trade.ShipmentPricing{}, err
		}
	}

	return trade.PriceBundleShipment(bundle, products, order.Quantity), nil
}

func (s *FulfillmentService) publishEvents(ctx context.Context, order *trade.SalesOrder) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range order.GetDomainEvents() {
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			s.logger.Warn("failed to publish shipment event",
				zap.String("order_id", order.ID.String()),
				zap.String("event_type", event.EventType()),
				zap.Error(err),
			)
		}
	}
	order.ClearDomainEvents()
}

func toShipFailure(orderID uuid.UUID, err error) ShipFailure {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		return ShipFailure{OrderID: orderID, Code: domainErr.Code, Message: domainErr.Message}
	}

	var storageErr *shared.StorageError
	if errors.As(err, &storageErr) {
		return ShipFailure{OrderID: orderID, Code: "STORAGE_ERROR", Message: storageErr.Error()}
	}

	return ShipFailure{OrderID: orderID, Code: "INTERNAL_ERROR", Message: err.Error()}
}
