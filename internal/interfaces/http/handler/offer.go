package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	offerapp "github.com/stockroom/backend/internal/application/offer"
	"github.com/stockroom/backend/internal/interfaces/http/dto"
	"github.com/stockroom/backend/internal/interfaces/http/middleware"
)

// OfferHandler handles offer bundle API endpoints
type OfferHandler struct {
	BaseHandler
	offerService *offerapp.OfferService
}

// NewOfferHandler creates a new OfferHandler
func NewOfferHandler(offerService *offerapp.OfferService) *OfferHandler {
	return &OfferHandler{offerService: offerService}
}

// Compose creates a new offer bundle from existing products
func (h *OfferHandler) Compose(c *gin.Context) {
	var req offerapp.ComposeOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	composed, err := h.offerService.Compose(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, composed)
}

// GetByID retrieves an offer with freshly derived availability
func (h *OfferHandler) GetByID(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid offer ID")
		return
	}

	found, err := h.offerService.GetByID(c.Request.Context(), uuid.MustParse(uri.ID))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, found)
}

// List returns offers, optionally only those currently available
func (h *OfferHandler) List(c *gin.Context) {
	var filter offerapp.OfferListFilter
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

	offers, err := h.offerService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, offers)
}

// Delete removes an offer bundle
func (h *OfferHandler) Delete(c *gin.Context) {
	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid offer ID")
		return
	}

	if err := h.offerService.Delete(c.Request.Context(), uuid.MustParse(uri.ID)); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
