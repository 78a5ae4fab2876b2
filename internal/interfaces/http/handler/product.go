package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	catalogapp "github.com/stockroom/backend/internal/application/catalog"
	"github.com/stockroom/backend/internal/interfaces/http/dto"
	"github.com/stockroom/backend/internal/interfaces/http/middleware"
)

// ProductHandler handles product-related API endpoints
type ProductHandler struct {
	BaseHandler
	productService *catalogapp.ProductService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService *catalogapp.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// Create adds a new product to the catalog
func (h *ProductHandler) Create(c *gin.Context) {
	var req catalogapp.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	product, err := h.productService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, product)
}

// GetByID retrieves a product by ID
func (h *ProductHandler) GetByID(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	product, err := h.productService.GetByID(c.Request.Context(), uuid.MustParse(uri.ID))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// Restock adds stock to a product
func (h *ProductHandler) Restock(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	var req catalogapp.RestockProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	product, err := h.productService.Restock(c.Request.Context(), uuid.MustParse(uri.ID), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// UpdatePrices updates a product's selling price and acquisition cost
func (h *ProductHandler) UpdatePrices(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	var req catalogapp.UpdateProductPricesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	product, err := h.productService.UpdatePrices(c.Request.Context(), uuid.MustParse(uri.ID), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// List returns a paginated list of products
func (h *ProductHandler) List(c *gin.Context) {
	var filter catalogapp.ProductListFilter
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

	result, err := h.productService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, filter.Page, filter.PageSize)
}

// Delete removes a product from the catalog
func (h *ProductHandler) Delete(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	if err := h.productService.Delete(c.Request.Context(), uuid.MustParse(uri.ID)); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
