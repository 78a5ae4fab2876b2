package trade

import (
	"github.com/shopspring/decimal"
	"github.com/stockroom/backend/internal/domain/catalog"
	"github.com/stockroom/backend/internal/domain/offer"
)

// Pricing policy constants. The tax rate applies to profit only,
// never to revenue or cost. The bulk discount threshold is inclusive
// and reduces the bundle price only, never the cost.
var (
	// AfterTaxMultiplier is 1 - the fixed 30% profit tax rate
	AfterTaxMultiplier = decimal.NewFromFloat(0.7)
	// BulkDiscountMultiplier is applied to bundle price at or above the threshold
	BulkDiscountMultiplier = decimal.NewFromFloat(0.9)
)

// BulkDiscountThreshold is the minimum quantity (inclusive) for the
// 10% bundle discount.
const BulkDiscountThreshold int64 = 10

// ShipmentPricing holds the finalized money fields of a shipment
type ShipmentPricing struct {
	TotalPrice      decimal.Decimal
	TotalCost       decimal.Decimal
	ProfitBeforeTax decimal.Decimal
	ProfitAfterTax  decimal.Decimal
}

// PriceSingleShipment computes the money fields for shipping quantity
// units of a single product. Profit after tax is intentionally NOT
// floored at zero here, unlike the bundle path.
func PriceSingleShipment(product *catalog.Product, quantity int64) ShipmentPricing {
	qty := decimal.NewFromInt(quantity)
	totalPrice := product.Price.Mul(qty)
	totalCost := product.Cost.Mul(qty)
	profitBeforeTax := totalPrice.Sub(totalCost)

	return ShipmentPricing{
		TotalPrice:      totalPrice,
		TotalCost:       totalCost,
		ProfitBeforeTax: profitBeforeTax,
		ProfitAfterTax:  profitBeforeTax.Mul(AfterTaxMultiplier),
	}
}

// PriceBundleShipment computes the money fields for shipping quantity
// bundles of an offer. The bulk discount applies to the bundle price
// only; cost is never discounted. Profit after tax is floored at zero.
func PriceBundleShipment(o *offer.Offer, products []catalog.Product, quantity int64) ShipmentPricing {
	qty := decimal.NewFromInt(quantity)

	totalPrice := o.Price.Mul(qty)
	if quantity >= BulkDiscountThreshold {
		totalPrice = totalPrice.Mul(BulkDiscountMultiplier)
	}

	totalCost := decimal.Zero
	for _, p := range products {
		totalCost = totalCost.Add(p.Cost.Mul(qty))
	}

	profitBeforeTax := totalPrice.Sub(totalCost)
	profitAfterTax := profitBeforeTax.Mul(AfterTaxMultiplier)
	if profitAfterTax.IsNegative() {
		profitAfterTax = decimal.Zero
	}

	return ShipmentPricing{
		TotalPrice:      totalPrice,
		TotalCost:       totalCost,
		ProfitBeforeTax: profitBeforeTax,
		ProfitAfterTax:  profitAfterTax,
	}
}
