package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stockroom/backend/internal/domain/shared"
	"github.com/stockroom/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	price := valueobject.NewMoneyUSDFromFloat(1000)
	cost := valueobject.NewMoneyUSDFromFloat(800)

	t.Run("creates product with valid inputs", func(t *testing.T) {
		product, err := NewProduct("Laptop", "Electronics", "Electronics Supplier Inc.", price, cost, 50)
		require.NoError(t, err)
		require.NotNil(t, product)

		assert.Equal(t, "Laptop", product.Name)
		assert.Equal(t, "Electronics", product.CategoryName)
		assert.Equal(t, "Electronics Supplier Inc.", product.SupplierName)
		assert.True(t, product.Price.Equal(decimal.NewFromInt(1000)))
		assert.True(t, product.Cost.Equal(decimal.NewFromInt(800)))
		assert.Equal(t, int64(50), product.Stock)
		assert.NotEmpty(t, product.ID)
		assert.Equal(t, 1, product.GetVersion())
	})

	t.Run("publishes ProductCreated event", func(t *testing.T) {
		product, err := NewProduct("Laptop", "Electronics", "Electronics Supplier Inc.", price, cost, 50)
		require.NoError(t, err)

		events := product.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeProductCreated, events[0].EventType())

		event, ok := events[0].(*ProductCreatedEvent)
		require.True(t, ok)
		assert.Equal(t, product.ID, event.ProductID)
		assert.Equal(t, product.Name, event.Name)
	})

	t.Run("fails with empty name", func(t *testing.T) {
		_, err := NewProduct("", "Electronics", "Supplier", price, cost, 1)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "name cannot be empty")
	})

	t.Run("fails with empty category", func(t *testing.T) {
		_, err := NewProduct("Laptop", "  ", "Supplier", price, cost, 1)
		require.Error(t, err)
	})

	t.Run("fails with negative price", func(t *testing.T) {
		neg := valueobject.NewMoneyUSDFromFloat(-1)
		_, err := NewProduct("Laptop", "Electronics", "Supplier", neg, cost, 1)
		require.Error(t, err)
	})

	t.Run("fails with negative stock", func(t *testing.T) {
		_, err := NewProduct("Laptop", "Electronics", "Supplier", price, cost, -1)
		require.Error(t, err)
	})
}

func TestProductStock(t *testing.T) {
	newProduct := func(t *testing.T, stock int64) *Product {
		p, err := NewProduct("Soccer Ball", "Sports & Outdoors", "Ultimate Sports Gear",
			valueobject.NewMoneyUSDFromFloat(30), valueobject.NewMoneyUSDFromFloat(20), stock)
		require.NoError(t, err)
		p.ClearDomainEvents()
		return p
	}

	t.Run("restock increases stock", func(t *testing.T) {
		p := newProduct(t, 10)
		require.NoError(t, p.Restock(5))
		assert.Equal(t, int64(15), p.Stock)

		events := p.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeProductRestocked, events[0].EventType())
	})

	t.Run("restock rejects non-positive quantity", func(t *testing.T) {
		p := newProduct(t, 10)
		require.Error(t, p.Restock(0))
		require.Error(t, p.Restock(-3))
		assert.Equal(t, int64(10), p.Stock)
	})

	t.Run("decrement reduces stock", func(t *testing.T) {
		p := newProduct(t, 10)
		require.NoError(t, p.DecrementStock(4))
		assert.Equal(t, int64(6), p.Stock)
	})

	t.Run("decrement never drives stock negative", func(t *testing.T) {
		p := newProduct(t, 3)
		err := p.DecrementStock(5)
		assert.ErrorIs(t, err, shared.ErrInsufficientStock)
		assert.Equal(t, int64(3), p.Stock)
	})

	t.Run("decrement to exactly zero is allowed", func(t *testing.T) {
		p := newProduct(t, 5)
		require.NoError(t, p.DecrementStock(5))
		assert.Equal(t, int64(0), p.Stock)
		assert.False(t, p.InStock())
	})

	t.Run("HasStock checks requested quantity", func(t *testing.T) {
		p := newProduct(t, 5)
		assert.True(t, p.HasStock(5))
		assert.False(t, p.HasStock(6))
	})
}

func TestNewSupplier(t *testing.T) {
	t.Run("creates supplier", func(t *testing.T) {
		s, err := NewSupplier("Electronics Supplier Inc.", "John Doe", "john@electronicsupplier.com")
		require.NoError(t, err)
		assert.Equal(t, "Electronics Supplier Inc.", s.Name)
		assert.Equal(t, "John Doe", s.Contact)

		events := s.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeSupplierCreated, events[0].EventType())
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewSupplier("", "John Doe", "john@example.com")
		require.Error(t, err)
	})

	t.Run("rejects malformed email", func(t *testing.T) {
		_, err := NewSupplier("Supplier", "John Doe", "not-an-email")
		require.Error(t, err)
	})

	t.Run("allows empty email", func(t *testing.T) {
		_, err := NewSupplier("Supplier", "John Doe", "")
		require.NoError(t, err)
	})
}

func TestNewCategory(t *testing.T) {
	t.Run("creates category", func(t *testing.T) {
		c, err := NewCategory("Home Appliances")
		require.NoError(t, err)
		assert.Equal(t, "Home Appliances", c.Name)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewCategory("   ")
		require.Error(t, err)
	})
}
