package offer

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockroom/backend/internal/domain/catalog"
	"github.com/stockroom/backend/internal/domain/offer"
	"github.com/stockroom/backend/internal/domain/shared"
	"github.com/stockroom/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockOfferRepository is a mock implementation of OfferRepository
type MockOfferRepository struct {
	mock.Mock
}

func (m *MockOfferRepository) FindByID(ctx context.Context, id uuid.UUID) (*offer.Offer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*offer.Offer), args.Error(1)
}

func (m *MockOfferRepository) FindAll(ctx context.Context, filter shared.Filter) ([]offer.Offer, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]offer.Offer), args.Error(1)
}

func (m *MockOfferRepository) FindByProductID(ctx context.Context, productID uuid.UUID) ([]offer.Offer, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).([]offer.Offer), args.Error(1)
}

func (m *MockOfferRepository) Save(ctx context.Context, o *offer.Offer) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOfferRepository) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	args := m.Called(ctx, id, active)
	return args.Error(0)
}

func (m *MockOfferRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOfferRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByCategory(ctx context.Context, categoryName string, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, categoryName, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) SaveWithLock(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) DecrementStock(ctx context.Context, id uuid.UUID, quantity int64) error {
	args := m.Called(ctx, id, quantity)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func buildProduct(t *testing.T, name string, stock int64) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(name, "Personal Care", "Fashion Trends Co.",
		valueobject.NewMoneyUSDFromFloat(10), valueobject.NewMoneyUSDFromFloat(5), stock)
	require.NoError(t, err)
	return p
}

func buildOffer(t *testing.T, products ...*catalog.Product) *offer.Offer {
	t.Helper()
	values := make([]catalog.Product, len(products))
	for i, p := range products {
		values[i] = *p
	}
	o, err := offer.NewOffer("Bundle", values, valueobject.NewMoneyUSDFromFloat(25))
	require.NoError(t, err)
	o.ClearDomainEvents()
	return o
}

func TestAvailabilityRefresh(t *testing.T) {
	ctx := context.Background()

	t.Run("deactivates offer when a constituent drains", func(t *testing.T) {
		offerRepo := new(MockOfferRepository)
		productRepo := new(MockProductRepository)
		service := NewAvailabilityService(offerRepo, productRepo, zap.NewNop())

		inStock := buildProduct(t, "Shampoo", 80)
		drained := buildProduct(t, "Soap", 60)
		o := buildOffer(t, inStock, drained)
		require.True(t, o.Active)

		drained.Stock = 0
		productRepo.On("FindByIDs", ctx, o.ProductIDs()).Return([]catalog.Product{*inStock, *drained}, nil)
		offerRepo.On("SetActive", ctx, o.ID, false).Return(nil)

		active, err := service.Refresh(ctx, o)
		require.NoError(t, err)
		assert.False(t, active)
		assert.False(t, o.Active)

		offerRepo.AssertExpectations(t)
	})

	t.Run("skips the write when the flag is unchanged", func(t *testing.T) {
		offerRepo := new(MockOfferRepository)
		productRepo := new(MockProductRepository)
		service := NewAvailabilityService(offerRepo, productRepo, zap.NewNop())

		p := buildProduct(t, "Shampoo", 80)
		o := buildOffer(t, p)

		productRepo.On("FindByIDs", ctx, o.ProductIDs()).Return([]catalog.Product{*p}, nil)

		active, err := service.Refresh(ctx, o)
		require.NoError(t, err)
		assert.True(t, active)

		offerRepo.AssertNotCalled(t, "SetActive", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing constituent deactivates the offer", func(t *testing.T) {
		offerRepo := new(MockOfferRepository)
		productRepo := new(MockProductRepository)
		service := NewAvailabilityService(offerRepo, productRepo, zap.NewNop())

		kept := buildProduct(t, "Shampoo", 80)
		deleted := buildProduct(t, "Soap", 60)
		o := buildOffer(t, kept, deleted)

		productRepo.On("FindByIDs", ctx, o.ProductIDs()).Return([]catalog.Product{*kept}, nil)
		offerRepo.On("SetActive", ctx, o.ID, false).Return(nil)

		active, err := service.Refresh(ctx, o)
		require.NoError(t, err)
		assert.False(t, active)
	})
}

func TestRefreshForProducts(t *testing.T) {
	ctx := context.Background()

	t.Run("refreshes each affected offer once", func(t *testing.T) {
		offerRepo := new(MockOfferRepository)
		productRepo := new(MockProductRepository)
		service := NewAvailabilityService(offerRepo, productRepo, zap.NewNop())

		a := buildProduct(t, "Shampoo", 80)
		b := buildProduct(t, "Soap", 60)
		o := buildOffer(t, a, b)

		// The same offer references both changed products; it must only
		// be refreshed once.
		offerRepo.On("FindByProductID", ctx, a.ID).Return([]offer.Offer{*o}, nil)
		offerRepo.On("FindByProductID", ctx, b.ID).Return([]offer.Offer{*o}, nil)
		productRepo.On("FindByIDs", ctx, o.ProductIDs()).Return([]catalog.Product{*a, *b}, nil).Once()

		changed, err := service.RefreshForProducts(ctx, []uuid.UUID{a.ID, b.ID})
		require.NoError(t, err)
		assert.Equal(t, 0, changed)

		productRepo.AssertExpectations(t)
	})
}

func TestRefreshAll(t *testing.T) {
	ctx := context.Background()

	t.Run("pages through every offer", func(t *testing.T) {
		offerRepo := new(MockOfferRepository)
		productRepo := new(MockProductRepository)
		service := NewAvailabilityService(offerRepo, productRepo, zap.NewNop())

		p := buildProduct(t, "Shampoo", 80)

		firstPage := make([]offer.Offer, refreshAllPageSize)
		for i := range firstPage {
			firstPage[i] = *buildOffer(t, p)
		}
		// Lives on the second page; its persisted flag lags live stock.
		stale := buildOffer(t, p)
		stale.Active = false

		offerRepo.On("FindAll", ctx, mock.MatchedBy(func(f shared.Filter) bool {
			return f.Page == 1 && f.PageSize == refreshAllPageSize
		})).Return(firstPage, nil).Once()
		offerRepo.On("FindAll", ctx, mock.MatchedBy(func(f shared.Filter) bool {
			return f.Page == 2
		})).Return([]offer.Offer{*stale}, nil).Once()
		productRepo.On("FindByIDs", ctx, []uuid.UUID{p.ID}).Return([]catalog.Product{*p}, nil)
		offerRepo.On("SetActive", ctx, stale.ID, true).Return(nil)

		changed, err := service.RefreshAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, changed)

		offerRepo.AssertExpectations(t)
	})

	t.Run("stops after a short page", func(t *testing.T) {
		offerRepo := new(MockOfferRepository)
		productRepo := new(MockProductRepository)
		service := NewAvailabilityService(offerRepo, productRepo, zap.NewNop())

		p := buildProduct(t, "Soap", 60)
		o := buildOffer(t, p)

		offerRepo.On("FindAll", ctx, mock.MatchedBy(func(f shared.Filter) bool {
			return f.Page == 1
		})).Return([]offer.Offer{*o}, nil).Once()
		productRepo.On("FindByIDs", ctx, []uuid.UUID{p.ID}).Return([]catalog.Product{*p}, nil)

		changed, err := service.RefreshAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, changed)

		offerRepo.AssertExpectations(t)
	})
}

func TestOfferServiceCompose(t *testing.T) {
	ctx := context.Background()

	t.Run("composes offer preserving requested order", func(t *testing.T) {
		offerRepo := new(MockOfferRepository)
		productRepo := new(MockProductRepository)
		availability := NewAvailabilityService(offerRepo, productRepo, zap.NewNop())
		service := NewOfferService(offerRepo, productRepo, availability)

		a := buildProduct(t, "Shampoo", 80)
		b := buildProduct(t, "Soap", 60)
		ids := []uuid.UUID{b.ID, a.ID}

		// Repository returns products in storage order, not request order.
		productRepo.On("FindByIDs", ctx, ids).Return([]catalog.Product{*a, *b}, nil)
		offerRepo.On("Save", ctx, mock.AnythingOfType("*offer.Offer")).Return(nil)

		response, err := service.Compose(ctx, ComposeOfferRequest{
			Name:       "Care Pack",
			ProductIDs: ids,
			Price:      decimal.NewFromInt(25),
		})
		require.NoError(t, err)
		require.Len(t, response.Products, 2)
		assert.Equal(t, b.ID, response.Products[0].ProductID)
		assert.Equal(t, a.ID, response.Products[1].ProductID)
		assert.True(t, response.Cost.Equal(decimal.NewFromInt(10)))
	})

	t.Run("rejects composition over missing products", func(t *testing.T) {
		offerRepo := new(MockOfferRepository)
		productRepo := new(MockProductRepository)
		availability := NewAvailabilityService(offerRepo, productRepo, zap.NewNop())
		service := NewOfferService(offerRepo, productRepo, availability)

		a := buildProduct(t, "Shampoo", 80)
		missing := uuid.New()
		ids := []uuid.UUID{a.ID, missing}

		productRepo.On("FindByIDs", ctx, ids).Return([]catalog.Product{*a}, nil)

		_, err := service.Compose(ctx, ComposeOfferRequest{
			Name:       "Broken",
			ProductIDs: ids,
			Price:      decimal.NewFromInt(25),
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "do not exist")

		offerRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}
