package offer

import (
	"context"
	"testing"

	"github.com/stockroom/backend/internal/domain/catalog"
	"github.com/stockroom/backend/internal/domain/offer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestProductRestockedHandler(t *testing.T) {
	ctx := context.Background()

	t.Run("reactivates a dormant offer after restock", func(t *testing.T) {
		offerRepo := new(MockOfferRepository)
		productRepo := new(MockProductRepository)
		service := NewAvailabilityService(offerRepo, productRepo, zap.NewNop())
		handler := NewProductRestockedHandler(service, zap.NewNop())

		p := buildProduct(t, "Shampoo", 0)
		o := buildOffer(t, p)
		require.False(t, o.Active)

		require.NoError(t, p.Restock(30))
		event := catalog.NewProductRestockedEvent(p, 30)

		offerRepo.On("FindByProductID", ctx, p.ID).Return([]offer.Offer{*o}, nil)
		productRepo.On("FindByIDs", ctx, o.ProductIDs()).Return([]catalog.Product{*p}, nil)
		offerRepo.On("SetActive", ctx, o.ID, true).Return(nil)

		require.NoError(t, handler.Handle(ctx, event))

		offerRepo.AssertExpectations(t)
	})

	t.Run("leaves availability untouched when stock was already positive", func(t *testing.T) {
		offerRepo := new(MockOfferRepository)
		productRepo := new(MockProductRepository)
		service := NewAvailabilityService(offerRepo, productRepo, zap.NewNop())
		handler := NewProductRestockedHandler(service, zap.NewNop())

		p := buildProduct(t, "Soap", 10)
		o := buildOffer(t, p)
		require.True(t, o.Active)

		require.NoError(t, p.Restock(5))
		event := catalog.NewProductRestockedEvent(p, 5)

		offerRepo.On("FindByProductID", ctx, p.ID).Return([]offer.Offer{*o}, nil)
		productRepo.On("FindByIDs", ctx, o.ProductIDs()).Return([]catalog.Product{*p}, nil)

		require.NoError(t, handler.Handle(ctx, event))

		offerRepo.AssertNotCalled(t, "SetActive", ctx, o.ID, true)
	})

	t.Run("rejects events of the wrong type", func(t *testing.T) {
		offerRepo := new(MockOfferRepository)
		productRepo := new(MockProductRepository)
		service := NewAvailabilityService(offerRepo, productRepo, zap.NewNop())
		handler := NewProductRestockedHandler(service, zap.NewNop())

		p := buildProduct(t, "Conditioner", 10)
		err := handler.Handle(ctx, catalog.NewProductCreatedEvent(p))
		assert.Error(t, err)
	})
}
