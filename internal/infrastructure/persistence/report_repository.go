package persistence

import (
	"context"
	"time"

	"github.com/stockroom/backend/internal/domain/report"
	"github.com/stockroom/backend/internal/domain/shared"
	"github.com/stockroom/backend/internal/domain/trade"
	"gorm.io/gorm"
)

// GormSalesReportRepository implements SalesReportRepository with raw
// aggregation queries over the sales_orders table.
type GormSalesReportRepository struct {
	db *gorm.DB
}

// NewGormSalesReportRepository creates a new GormSalesReportRepository
func NewGormSalesReportRepository(db *gorm.DB) *GormSalesReportRepository {
	return &GormSalesReportRepository{db: db}
}

// ProfitSummary sums profit fields of shipped orders within the bounds
func (r *GormSalesReportRepository) ProfitSummary(ctx context.Context, from, to *time.Time) (*report.ProfitSummary, error) {
	query := r.db.WithContext(ctx).
		Model(&trade.SalesOrder{}).
		Where("status = ?", trade.OrderStatusShipped)
	if from != nil {
		query = query.Where("shipped_at >= ?", *from)
	}
	if to != nil {
		query = query.Where("shipped_at <= ?", *to)
	}

	var summary report.ProfitSummary
	err := query.
		Select("COUNT(*) AS shipped_orders, " +
			"COALESCE(SUM(total_price), 0) AS total_revenue, " +
			"COALESCE(SUM(profit_before_tax), 0) AS total_profit_before_tax, " +
			"COALESCE(SUM(profit_after_tax), 0) AS total_profit_after_tax").
		Scan(&summary).Error
	if err != nil {
		return nil, shared.NewStorageError("report.ProfitSummary", err)
	}
	summary.PeriodStart = from
	summary.PeriodEnd = to
	return &summary, nil
}

// ShippedOrders lists shipped orders newest first, resolving the target
// name from whichever side of the order target is set.
func (r *GormSalesReportRepository) ShippedOrders(ctx context.Context, limit int) ([]report.ShippedOrderRow, error) {
	var rows []report.ShippedOrderRow
	err := r.db.WithContext(ctx).
		Model(&trade.SalesOrder{}).
		Select("sales_orders.id AS order_id, "+
			"sales_orders.target_kind, "+
			"COALESCE(products.name, offers.name, '') AS target_name, "+
			"sales_orders.quantity, "+
			"sales_orders.shipped_at, "+
			"sales_orders.total_price, "+
			"sales_orders.profit_before_tax, "+
			"sales_orders.profit_after_tax").
		Joins("LEFT JOIN products ON products.id = sales_orders.product_id").
		Joins("LEFT JOIN offers ON offers.id = sales_orders.offer_id").
		Where("sales_orders.status = ?", trade.OrderStatusShipped).
		Order("sales_orders.shipped_at DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, shared.NewStorageError("report.ShippedOrders", err)
	}
	return rows, nil
}

// RevenueByProduct aggregates shipped single-product orders per product
func (r *GormSalesReportRepository) RevenueByProduct(ctx context.Context) ([]report.ProductRevenueRow, error) {
	var rows []report.ProductRevenueRow
	err := r.db.WithContext(ctx).
		Model(&trade.SalesOrder{}).
		Select("sales_orders.product_id, "+
			"products.name AS product_name, "+
			"COUNT(*) AS order_count, "+
			"COALESCE(SUM(sales_orders.quantity), 0) AS units_shipped, "+
			"COALESCE(SUM(sales_orders.total_price), 0) AS total_revenue, "+
			"COALESCE(SUM(sales_orders.profit_after_tax), 0) AS total_profit").
		Joins("JOIN products ON products.id = sales_orders.product_id").
		Where("sales_orders.status = ? AND sales_orders.target_kind = ?",
			trade.OrderStatusShipped, trade.TargetKindProduct).
		Group("sales_orders.product_id, products.name").
		Order("total_revenue DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, shared.NewStorageError("report.RevenueByProduct", err)
	}
	return rows, nil
}

// Ensure GormSalesReportRepository implements SalesReportRepository
var _ report.SalesReportRepository = (*GormSalesReportRepository)(nil)
