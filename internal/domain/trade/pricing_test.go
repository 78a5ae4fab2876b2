package trade

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stockroom/backend/internal/domain/catalog"
	"github.com/stockroom/backend/internal/domain/offer"
	"github.com/stockroom/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustProduct(t *testing.T, name string, price, cost float64, stock int64) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(name, "Electronics", "Electronics Supplier Inc.",
		valueobject.NewMoneyUSDFromFloat(price), valueobject.NewMoneyUSDFromFloat(cost), stock)
	require.NoError(t, err)
	return p
}

func mustOffer(t *testing.T, name string, price float64, products ...*catalog.Product) *offer.Offer {
	t.Helper()
	values := make([]catalog.Product, len(products))
	for i, p := range products {
		values[i] = *p
	}
	o, err := offer.NewOffer(name, values, valueobject.NewMoneyUSDFromFloat(price))
	require.NoError(t, err)
	return o
}

func TestPriceSingleShipment(t *testing.T) {
	t.Run("computes revenue, cost and taxed profit", func(t *testing.T) {
		laptop := mustProduct(t, "Laptop", 1000, 800, 50)

		pricing := PriceSingleShipment(laptop, 5)

		assert.True(t, pricing.TotalPrice.Equal(decimal.NewFromInt(5000)), "total price: %s", pricing.TotalPrice)
		assert.True(t, pricing.TotalCost.Equal(decimal.NewFromInt(4000)), "total cost: %s", pricing.TotalCost)
		assert.True(t, pricing.ProfitBeforeTax.Equal(decimal.NewFromInt(1000)), "profit before tax: %s", pricing.ProfitBeforeTax)
		assert.True(t, pricing.ProfitAfterTax.Equal(decimal.NewFromInt(700)), "profit after tax: %s", pricing.ProfitAfterTax)
	})

	t.Run("no bulk discount on single products", func(t *testing.T) {
		shampoo := mustProduct(t, "Shampoo", 10, 5, 80)

		pricing := PriceSingleShipment(shampoo, 20)

		assert.True(t, pricing.TotalPrice.Equal(decimal.NewFromInt(200)))
		assert.True(t, pricing.ProfitAfterTax.Equal(decimal.NewFromInt(70)))
	})

	t.Run("loss-making product keeps negative profit after tax", func(t *testing.T) {
		clearance := mustProduct(t, "Clearance", 5, 10, 30)

		pricing := PriceSingleShipment(clearance, 2)

		assert.True(t, pricing.ProfitBeforeTax.Equal(decimal.NewFromInt(-10)))
		assert.True(t, pricing.ProfitAfterTax.Equal(decimal.NewFromInt(-7)),
			"single-product profit after tax is not floored, got %s", pricing.ProfitAfterTax)
	})
}

func TestPriceBundleShipment(t *testing.T) {
	t.Run("bulk discount applies to bundle price only", func(t *testing.T) {
		a := mustProduct(t, "Shampoo", 10, 10, 80)
		b := mustProduct(t, "Soap", 10, 10, 60)
		o := mustOffer(t, "Care Kit", 100, a, b)

		pricing := PriceBundleShipment(o, []catalog.Product{*a, *b}, 10)

		assert.True(t, pricing.TotalPrice.Equal(decimal.NewFromInt(900)), "discounted price: %s", pricing.TotalPrice)
		assert.True(t, pricing.TotalCost.Equal(decimal.NewFromInt(200)), "cost must never be discounted: %s", pricing.TotalCost)
		assert.True(t, pricing.ProfitBeforeTax.Equal(decimal.NewFromInt(700)))
		assert.True(t, pricing.ProfitAfterTax.Equal(decimal.NewFromInt(490)))
	})

	t.Run("no discount below the threshold", func(t *testing.T) {
		a := mustProduct(t, "Shampoo", 10, 10, 80)
		b := mustProduct(t, "Soap", 10, 10, 60)
		o := mustOffer(t, "Care Kit", 100, a, b)

		pricing := PriceBundleShipment(o, []catalog.Product{*a, *b}, 9)

		assert.True(t, pricing.TotalPrice.Equal(decimal.NewFromInt(900)), "9 * 100 undiscounted: %s", pricing.TotalPrice)
		assert.True(t, pricing.TotalCost.Equal(decimal.NewFromInt(180)))
	})

	t.Run("threshold is inclusive at exactly ten", func(t *testing.T) {
		a := mustProduct(t, "Shampoo", 10, 10, 80)
		o := mustOffer(t, "Solo Bundle", 50, a)

		below := PriceBundleShipment(o, []catalog.Product{*a}, 9)
		at := PriceBundleShipment(o, []catalog.Product{*a}, 10)

		assert.True(t, below.TotalPrice.Equal(decimal.NewFromInt(450)))
		assert.True(t, at.TotalPrice.Equal(decimal.NewFromInt(450)), "10 * 50 * 0.9: %s", at.TotalPrice)
	})

	t.Run("loss-making bundle floors profit after tax at zero", func(t *testing.T) {
		a := mustProduct(t, "Laptop", 1000, 800, 50)
		b := mustProduct(t, "Smartphone", 800, 600, 40)
		o := mustOffer(t, "Fire Sale", 100, a, b)

		pricing := PriceBundleShipment(o, []catalog.Product{*a, *b}, 1)

		assert.True(t, pricing.ProfitBeforeTax.Equal(decimal.NewFromInt(-1300)),
			"profit before tax stays negative: %s", pricing.ProfitBeforeTax)
		assert.True(t, pricing.ProfitAfterTax.Equal(decimal.Zero),
			"bundle profit after tax is floored: %s", pricing.ProfitAfterTax)
	})
}
