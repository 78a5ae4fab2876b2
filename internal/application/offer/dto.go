package offer

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockroom/backend/internal/domain/offer"
)

// ComposeOfferRequest represents a request to compose an offer bundle
type ComposeOfferRequest struct {
	Name       string          `json:"name" binding:"required,min=1,max=200"`
	ProductIDs []uuid.UUID     `json:"product_ids" binding:"required,min=1,dive,required"`
	Price      decimal.Decimal `json:"price" binding:"required"`
}

// OfferLineResponse is one constituent product line of an offer
type OfferLineResponse struct {
	ProductID uuid.UUID `json:"product_id"`
	Position  int       `json:"position"`
}

// OfferResponse represents an offer in API responses
type OfferResponse struct {
	ID        uuid.UUID           `json:"id"`
	Name      string              `json:"name"`
	Price     decimal.Decimal     `json:"price"`
	Cost      decimal.Decimal     `json:"cost"`
	Active    bool                `json:"active"`
	Products  []OfferLineResponse `json:"products"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
	Version   int                 `json:"version"`
}

// OfferListFilter represents filter options for offer list
type OfferListFilter struct {
	ActiveOnly bool   `form:"active_only"`
	Page       int    `form:"page" binding:"omitempty,min=1"`
	PageSize   int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy    string `form:"order_by"`
	OrderDir   string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToOfferResponse converts a domain Offer to OfferResponse
func ToOfferResponse(o *offer.Offer) OfferResponse {
	lines := make([]OfferLineResponse, len(o.Products))
	for i, line := range o.Products {
		lines[i] = OfferLineResponse{ProductID: line.ProductID, Position: line.Position}
	}
	return OfferResponse{
		ID:        o.ID,
		Name:      o.Name,
		Price:     o.Price,
		Cost:      o.Cost,
		Active:    o.Active,
		Products:  lines,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
		Version:   o.Version,
	}
}
