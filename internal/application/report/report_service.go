package report

import (
	"context"
	"time"

	"github.com/stockroom/backend/internal/domain/report"
	"github.com/stockroom/backend/internal/domain/shared"
)

// ReportService exposes read-only aggregations over shipped orders
type ReportService struct {
	reportRepo report.SalesReportRepository
}

// NewReportService creates a new ReportService
func NewReportService(reportRepo report.SalesReportRepository) *ReportService {
	return &ReportService{reportRepo: reportRepo}
}

// ProfitSummary sums revenue and profit over shipped orders. Nil bounds
// mean an open-ended range; from after to is rejected.
func (s *ReportService) ProfitSummary(ctx context.Context, from, to *time.Time) (*report.ProfitSummary, error) {
	if from != nil && to != nil && from.After(*to) {
		return nil, shared.NewDomainError("INVALID_RANGE", "Period start must not be after period end")
	}
	return s.reportRepo.ProfitSummary(ctx, from, to)
}

// ShippedOrders lists recently shipped orders, newest first
func (s *ReportService) ShippedOrders(ctx context.Context, limit int) ([]report.ShippedOrderRow, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	return s.reportRepo.ShippedOrders(ctx, limit)
}

// RevenueByProduct aggregates shipped single-product orders per product
func (s *ReportService) RevenueByProduct(ctx context.Context) ([]report.ProductRevenueRow, error) {
	return s.reportRepo.RevenueByProduct(ctx)
}
