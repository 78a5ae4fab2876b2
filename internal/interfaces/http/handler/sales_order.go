package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	tradeapp "github.com/stockroom/backend/internal/application/trade"
	"github.com/stockroom/backend/internal/interfaces/http/dto"
	"github.com/stockroom/backend/internal/interfaces/http/middleware"
)

// SalesOrderHandler handles order placement and fulfillment endpoints
type SalesOrderHandler struct {
	BaseHandler
	orderService       *tradeapp.SalesOrderService
	fulfillmentService *tradeapp.FulfillmentService
}

// NewSalesOrderHandler creates a new SalesOrderHandler
func NewSalesOrderHandler(orderService *tradeapp.SalesOrderService, fulfillmentService *tradeapp.FulfillmentService) *SalesOrderHandler {
	return &SalesOrderHandler{
		orderService:       orderService,
		fulfillmentService: fulfillmentService,
	}
}

// Place creates a new pending sales order for a product or an offer
func (h *SalesOrderHandler) Place(c *gin.Context) {
	var req tradeapp.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	order, err := h.orderService.Place(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, order)
}

// GetByID retrieves a sales order by ID
func (h *SalesOrderHandler) GetByID(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.orderService.GetByID(c.Request.Context(), uuid.MustParse(uri.ID))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// List returns a paginated list of orders, optionally filtered by status
func (h *SalesOrderHandler) List(c *gin.Context) {
	var filter tradeapp.OrderListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}

	result, err := h.orderService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, filter.Page, filter.PageSize)
}

// ListPending returns all orders still awaiting shipment
func (h *SalesOrderHandler) ListPending(c *gin.Context) {
	orders, err := h.orderService.ListPending(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, orders)
}

// Ship fulfills a single pending order: stock is decremented and the
// order's money fields are finalized in one transaction.
func (h *SalesOrderHandler) Ship(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.fulfillmentService.Ship(c.Request.Context(), uuid.MustParse(uri.ID))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// ShipBatch fulfills several orders. Each order succeeds or fails on
// its own; the response lists both outcomes.
func (h *SalesOrderHandler) ShipBatch(c *gin.Context) {
	var req tradeapp.ShipBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.fulfillmentService.ShipBatch(c.Request.Context(), req.OrderIDs)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
