package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	reportapp "github.com/stockroom/backend/internal/application/report"
)

// ReportHandler handles sales reporting endpoints
type ReportHandler struct {
	BaseHandler
	reportService *reportapp.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *reportapp.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// ProfitSummary returns aggregated profit over shipped orders.
// Optional from/to query parameters bound the shipment time (RFC 3339).
func (h *ReportHandler) ProfitSummary(c *gin.Context) {
	from, ok := h.parseTimeParam(c, "from")
	if !ok {
		return
	}
	to, ok := h.parseTimeParam(c, "to")
	if !ok {
		return
	}

	summary, err := h.reportService.ProfitSummary(c.Request.Context(), from, to)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

// ShippedOrders lists shipped orders, newest first
func (h *ReportHandler) ShippedOrders(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			h.BadRequest(c, "Invalid limit")
			return
		}
		limit = parsed
	}

	rows, err := h.reportService.ShippedOrders(c.Request.Context(), limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rows)
}

// RevenueByProduct aggregates shipped single-product orders per product
func (h *ReportHandler) RevenueByProduct(c *gin.Context) {
	rows, err := h.reportService.RevenueByProduct(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rows)
}

func (h *ReportHandler) parseTimeParam(c *gin.Context, name string) (*time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		h.BadRequest(c, "Invalid "+name+" timestamp, expected RFC 3339")
		return nil, false
	}
	return &parsed, true
}
