package offer

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/stockroom/backend/internal/domain/offer"
	"github.com/stockroom/backend/internal/domain/shared"
	"github.com/stockroom/backend/internal/domain/trade"
	"go.uber.org/zap"
)

// OrderShippedHandler handles SalesOrderShippedEvent and refreshes the
// availability of offers whose constituent stock just changed.
type OrderShippedHandler struct {
	availability *AvailabilityService
	offerRepo    offer.OfferRepository
	logger       *zap.Logger
}

// NewOrderShippedHandler creates a new handler for sales order shipped events
func NewOrderShippedHandler(
	availability *AvailabilityService,
	offerRepo offer.OfferRepository,
	logger *zap.Logger,
) *OrderShippedHandler {
	return &OrderShippedHandler{
		availability: availability,
		offerRepo:    offerRepo,
		logger:       logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *OrderShippedHandler) EventTypes() []string {
	return []string{trade.EventTypeSalesOrderShipped}
}

// Handle refreshes availability for every offer touching the products
// whose stock the shipment decremented.
func (h *OrderShippedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	shippedEvent, ok := event.(*trade.SalesOrderShippedEvent)
	if !ok {
		h.logger.Error("unexpected event type",
			zap.String("expected", trade.EventTypeSalesOrderShipped),
			zap.String("actual", event.EventType()),
		)
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			trade.EventTypeSalesOrderShipped, event.EventType())
	}

	var productIDs []uuid.UUID
	switch shippedEvent.TargetKind {
	case trade.TargetKindProduct:
		if shippedEvent.ProductID != nil {
			productIDs = []uuid.UUID{*shippedEvent.ProductID}
		}
	case trade.TargetKindOffer:
		if shippedEvent.OfferID != nil {
			shipped, err := h.offerRepo.FindByID(ctx, *shippedEvent.OfferID)
			if err != nil {
				return fmt.Errorf("failed to resolve shipped offer: %w", err)
			}
			productIDs = shipped.ProductIDs()
		}
	}

	if len(productIDs) == 0 {
		return nil
	}

	changed, err := h.availability.RefreshForProducts(ctx, productIDs)
	if err != nil {
		h.logger.Error("availability refresh after shipment failed",
			zap.String("order_id", shippedEvent.OrderID.String()),
			zap.Error(err),
		)
		return err
	}

	h.logger.Debug("availability refreshed after shipment",
		zap.String("order_id", shippedEvent.OrderID.String()),
		zap.Int("offers_changed", changed),
	)
	return nil
}

// Ensure OrderShippedHandler implements shared.EventHandler
var _ shared.EventHandler = (*OrderShippedHandler)(nil)
