package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockroom/backend/internal/domain/trade"
)

// PlaceOrderRequest represents a request to place a sales order for
// either a single product or an offer bundle. Exactly one of
// product_id / offer_id must be set.
type PlaceOrderRequest struct {
	ProductID *uuid.UUID `json:"product_id"`
	OfferID   *uuid.UUID `json:"offer_id"`
	Quantity  int64      `json:"quantity" binding:"required,min=1"`
}

// SalesOrderResponse represents a sales order in API responses
type SalesOrderResponse struct {
	ID              uuid.UUID       `json:"id"`
	TargetKind      string          `json:"target_kind"`
	ProductID       *uuid.UUID      `json:"product_id,omitempty"`
	OfferID         *uuid.UUID      `json:"offer_id,omitempty"`
	Quantity        int64           `json:"quantity"`
	Status          string          `json:"status"`
	PlacedAt        time.Time       `json:"placed_at"`
	ShippedAt       *time.Time      `json:"shipped_at,omitempty"`
	TotalPrice      decimal.Decimal `json:"total_price"`
	ProfitBeforeTax decimal.Decimal `json:"profit_before_tax"`
	ProfitAfterTax  decimal.Decimal `json:"profit_after_tax"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	Version         int             `json:"version"`
}

// OrderListFilter represents filter options for the order list
type OrderListFilter struct {
	Status   string `form:"status" binding:"omitempty,oneof=pending shipped"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ShipBatchRequest represents a request to ship several orders at once
type ShipBatchRequest struct {
	OrderIDs []uuid.UUID `json:"order_ids" binding:"required,min=1,dive,required"`
}

// ShipFailure describes one order that could not be shipped in a batch
type ShipFailure struct {
	OrderID uuid.UUID `json:"order_id"`
	Code    string    `json:"code"`
	Message string    `json:"message"`
}

// ShipBatchResponse summarizes a batch shipment. Each order succeeds or
// fails on its own; one failure never rolls back its siblings.
type ShipBatchResponse struct {
	Shipped []SalesOrderResponse `json:"shipped"`
	Failed  []ShipFailure        `json:"failed"`
}

// ToSalesOrderResponse converts a domain SalesOrder to SalesOrderResponse
func ToSalesOrderResponse(o *trade.SalesOrder) SalesOrderResponse {
	return SalesOrderResponse{
		ID:              o.ID,
		TargetKind:      string(o.TargetKind),
		ProductID:       o.ProductID,
		OfferID:         o.OfferID,
		Quantity:        o.Quantity,
		Status:          o.Status.String(),
		PlacedAt:        o.PlacedAt,
		ShippedAt:       o.ShippedAt,
		TotalPrice:      o.TotalPrice,
		ProfitBeforeTax: o.ProfitBeforeTax,
		ProfitAfterTax:  o.ProfitAfterTax,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
		Version:         o.Version,
	}
}

// ToSalesOrderResponses converts a slice of domain SalesOrders
func ToSalesOrderResponses(orders []trade.SalesOrder) []SalesOrderResponse {
	responses := make([]SalesOrderResponse, len(orders))
	for i := range orders {
		responses[i] = ToSalesOrderResponse(&orders[i])
	}
	return responses
}
