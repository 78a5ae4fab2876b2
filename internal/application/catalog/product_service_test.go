package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockroom/backend/internal/domain/catalog"
	"github.com/stockroom/backend/internal/domain/shared"
	"github.com/stockroom/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockProductRepository is a mock implementation of ProductRepository
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

// MockCategoryRepository is a mock implementation of CategoryRepository
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindByName(ctx context.Context, name string) (*catalog.Category, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Category, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Category), args.Error(1)
}

func (m *MockCategoryRepository) Save(ctx context.Context, category *catalog.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

// MockSupplierRepository is a mock implementation of SupplierRepository
type MockSupplierRepository struct {
	mock.Mock
}

func (m *MockSupplierRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Supplier, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) FindByName(ctx context.Context, name string) (*catalog.Supplier, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Supplier, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]catalog.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) Save(ctx context.Context, supplier *catalog.Supplier) error {
	args := m.Called(ctx, supplier)
	return args.Error(0)
}

func (m *MockSupplierRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

func (m *MockSupplierRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func newTestService() (*ProductService, *MockProductRepository, *MockCategoryRepository, *MockSupplierRepository) {
	productRepo := new(MockProductRepository)
	categoryRepo := new(MockCategoryRepository)
	supplierRepo := new(MockSupplierRepository)
	return NewProductService(productRepo, categoryRepo, supplierRepo), productRepo, categoryRepo, supplierRepo
}

func TestProductServiceCreate(t *testing.T) {
	ctx := context.Background()
	req := CreateProductRequest{
		Name:     "Laptop",
		Category: "Electronics",
		Supplier: "Electronics Supplier Inc.",
		Price:    decimal.NewFromInt(1000),
		Cost:     decimal.NewFromInt(800),
		Stock:    50,
	}

	t.Run("creates product when category and supplier exist", func(t *testing.T) {
		service, productRepo, categoryRepo, supplierRepo := newTestService()

		category, _ := catalog.NewCategory("Electronics")
		supplier, _ := catalog.NewSupplier("Electronics Supplier Inc.", "John Doe", "john@electronicsupplier.com")

		categoryRepo.On("FindByName", ctx, "Electronics").Return(category, nil)
		supplierRepo.On("FindByName", ctx, "Electronics Supplier Inc.").Return(supplier, nil)
		productRepo.On("Save", ctx, mock.AnythingOfType("*catalog.Product")).Return(nil)

		response, err := service.Create(ctx, req)
		require.NoError(t, err)
		require.NotNil(t, response)
		assert.Equal(t, "Laptop", response.Name)
		assert.Equal(t, int64(50), response.Stock)
		assert.True(t, response.UnitMargin.Equal(decimal.NewFromInt(200)))

		productRepo.AssertExpectations(t)
	})

	t.Run("fails when category does not exist", func(t *testing.T) {
		service, productRepo, categoryRepo, _ := newTestService()

		categoryRepo.On("FindByName", ctx, "Electronics").Return(nil, shared.ErrNotFound)

		_, err := service.Create(ctx, req)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Category not found")

		productRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("fails when supplier does not exist", func(t *testing.T) {
		service, productRepo, categoryRepo, supplierRepo := newTestService()

		category, _ := catalog.NewCategory("Electronics")
		categoryRepo.On("FindByName", ctx, "Electronics").Return(category, nil)
		supplierRepo.On("FindByName", ctx, "Electronics Supplier Inc.").Return(nil, shared.ErrNotFound)

		_, err := service.Create(ctx, req)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Supplier not found")

		productRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestProductServiceRestock(t *testing.T) {
	ctx := context.Background()

	t.Run("adds stock and saves with lock", func(t *testing.T) {
		service, productRepo, _, _ := newTestService()

		product, err := catalog.NewProduct("T-shirt", "Apparel", "Fashion Trends Co.",
			valueobject.NewMoneyUSDFromFloat(20), valueobject.NewMoneyUSDFromFloat(10), 100)
		require.NoError(t, err)

		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
		productRepo.On("SaveWithLock", ctx, product).Return(nil)

		response, err := service.Restock(ctx, product.ID, RestockProductRequest{Quantity: 25})
		require.NoError(t, err)
		assert.Equal(t, int64(125), response.Stock)

		productRepo.AssertExpectations(t)
	})

	t.Run("propagates not found", func(t *testing.T) {
		service, productRepo, _, _ := newTestService()

		missing := uuid.New()
		productRepo.On("FindByID", ctx, missing).Return(nil, shared.ErrNotFound)

		_, err := service.Restock(ctx, missing, RestockProductRequest{Quantity: 5})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("rejects non-positive quantity without saving", func(t *testing.T) {
		service, productRepo, _, _ := newTestService()

		product, err := catalog.NewProduct("T-shirt", "Apparel", "Fashion Trends Co.",
			valueobject.NewMoneyUSDFromFloat(20), valueobject.NewMoneyUSDFromFloat(10), 100)
		require.NoError(t, err)

		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)

		_, err = service.Restock(ctx, product.ID, RestockProductRequest{Quantity: 0})
		require.Error(t, err)
		productRepo.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
	})
}
