package offer

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/stockroom/backend/internal/domain/catalog"
	"github.com/stockroom/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ProductRestockedHandler handles ProductRestockedEvent and refreshes
// the availability of offers bundling the restocked product. A restock
// from zero is what flips a dormant offer back to active.
type ProductRestockedHandler struct {
	availability *AvailabilityService
	logger       *zap.Logger
}

// NewProductRestockedHandler creates a new handler for product restocked events
func NewProductRestockedHandler(availability *AvailabilityService, logger *zap.Logger) *ProductRestockedHandler {
	return &ProductRestockedHandler{
		availability: availability,
		logger:       logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *ProductRestockedHandler) EventTypes() []string {
	return []string{catalog.EventTypeProductRestocked}
}

// Handle refreshes availability for every offer bundling the product.
func (h *ProductRestockedHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	restockedEvent, ok := event.(*catalog.ProductRestockedEvent)
	if !ok {
		h.logger.Error("unexpected event type",
			zap.String("expected", catalog.EventTypeProductRestocked),
			zap.String("actual", event.EventType()),
		)
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			catalog.EventTypeProductRestocked, event.EventType())
	}

	changed, err := h.availability.RefreshForProducts(ctx, []uuid.UUID{restockedEvent.ProductID})
	if err != nil {
		h.logger.Error("availability refresh after restock failed",
			zap.String("product_id", restockedEvent.ProductID.String()),
			zap.Error(err),
		)
		return err
	}

	h.logger.Debug("availability refreshed after restock",
		zap.String("product_id", restockedEvent.ProductID.String()),
		zap.Int("offers_changed", changed),
	)
	return nil
}

// Ensure ProductRestockedHandler implements shared.EventHandler
var _ shared.EventHandler = (*ProductRestockedHandler)(nil)
