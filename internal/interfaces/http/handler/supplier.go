package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	catalogapp "github.com/stockroom/backend/internal/application/catalog"
	"github.com/stockroom/backend/internal/domain/shared"
	"github.com/stockroom/backend/internal/interfaces/http/dto"
	"github.com/stockroom/backend/internal/interfaces/http/middleware"
)

// SupplierHandler handles supplier-related API endpoints
type SupplierHandler struct {
	BaseHandler
	supplierService *catalogapp.SupplierService
}

// NewSupplierHandler creates a new SupplierHandler
func NewSupplierHandler(supplierService *catalogapp.SupplierService) *SupplierHandler {
	return &SupplierHandler{supplierService: supplierService}
}

// Create registers a new supplier
func (h *SupplierHandler) Create(c *gin.Context) {
	var req catalogapp.CreateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	supplier, err := h.supplierService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, supplier)
}

// GetByID retrieves a supplier by ID
func (h *SupplierHandler) GetByID(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid supplier ID")
		return
	}

	supplier, err := h.supplierService.GetByID(c.Request.Context(), uuid.MustParse(uri.ID))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, supplier)
}

// UpdateContact updates a supplier's contact details
func (h *SupplierHandler) UpdateContact(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid supplier ID")
		return
	}

	var req catalogapp.UpdateSupplierContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	supplier, err := h.supplierService.UpdateContact(c.Request.Context(), uuid.MustParse(uri.ID), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, supplier)
}

// List returns a paginated list of suppliers
func (h *SupplierHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	req.Normalize()

	result, err := h.supplierService.List(c.Request.Context(), shared.Filter{
		Page:     req.Page,
		PageSize: req.PageSize,
		OrderBy:  req.OrderBy,
		OrderDir: req.OrderDir,
		Search:   req.Search,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, req.Page, req.PageSize)
}
