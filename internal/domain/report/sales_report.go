package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProfitSummary provides aggregated profit statistics over shipped
// orders. This is a CQRS read model optimized for querying.
type ProfitSummary struct {
	PeriodStart          *time.Time      `json:"period_start,omitempty"`
	PeriodEnd            *time.Time      `json:"period_end,omitempty"`
	ShippedOrders        int64           `json:"shipped_orders"`
	TotalRevenue         decimal.Decimal `json:"total_revenue"`
	TotalProfitBeforeTax decimal.Decimal `json:"total_profit_before_tax"`
	TotalProfitAfterTax  decimal.Decimal `json:"total_profit_after_tax"`
}

// ShippedOrderRow is one line of the shipped-orders listing
type ShippedOrderRow struct {
	OrderID         uuid.UUID       `json:"order_id"`
	TargetKind      string          `json:"target_kind"`
	TargetName      string          `json:"target_name"`
	Quantity        int64           `json:"quantity"`
	ShippedAt       time.Time       `json:"shipped_at"`
	TotalPrice      decimal.Decimal `json:"total_price"`
	ProfitBeforeTax decimal.Decimal `json:"profit_before_tax"`
	ProfitAfterTax  decimal.Decimal `json:"profit_after_tax"`
}

// ProductRevenueRow aggregates shipped single-product orders per product
type ProductRevenueRow struct {
	ProductID    uuid.UUID       `json:"product_id"`
	ProductName  string          `json:"product_name"`
	OrderCount   int64           `json:"order_count"`
	UnitsShipped int64           `json:"units_shipped"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	TotalProfit  decimal.Decimal `json:"total_profit"`
}

// SalesReportRepository provides read-only aggregations over persisted
// shipment results.
type SalesReportRepository interface {
	// ProfitSummary sums profit fields of shipped orders; nil bounds
	// mean an open-ended range.
	ProfitSummary(ctx context.Context, from, to *time.Time) (*ProfitSummary, error)

	// ShippedOrders lists shipped orders, newest first
	ShippedOrders(ctx context.Context, limit int) ([]ShippedOrderRow, error)

	// RevenueByProduct aggregates shipped single-product orders per product
	RevenueByProduct(ctx context.Context) ([]ProductRevenueRow, error)
}
