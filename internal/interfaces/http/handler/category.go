package handler

import (
	"github.com/gin-gonic/gin"
	catalogapp "github.com/stockroom/backend/internal/application/catalog"
	"github.com/stockroom/backend/internal/domain/shared"
	"github.com/stockroom/backend/internal/interfaces/http/dto"
	"github.com/stockroom/backend/internal/interfaces/http/middleware"
)

// CategoryHandler handles category-related API endpoints
type CategoryHandler struct {
	BaseHandler
	categoryService *catalogapp.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService *catalogapp.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// Create creates a new product category
func (h *CategoryHandler) Create(c *gin.Context) {
	var req catalogapp.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	category, err := h.categoryService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, category)
}

// List returns all categories
func (h *CategoryHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}
	req.Normalize()

	categories, err := h.categoryService.List(c.Request.Context(), shared.Filter{
		Page:     req.Page,
		PageSize: req.PageSize,
		Search:   req.Search,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, categories)
}
