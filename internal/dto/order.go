package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tradeledger/trade_ledger_app/internal/core/domain"
)

// OrderItemRequest is one line of an order create/update request.
type OrderItemRequest struct {
	ItemID   string          `json:"item" binding:"required"`
	Quantity int64           `json:"quantity" binding:"required,min=1"`
	Price    decimal.Decimal `json:"price" binding:"required,gt=0"`
	Unit     string          `json:"unit" binding:"required,oneof=kilogram gram number"`
}

// CreateOrderRequest defines the data required to create an order. Status,
// totalAmount and amountPending are derived server-side and never accepted
// from the client.
type CreateOrderRequest struct {
	Type       string             `json:"type" binding:"required,oneof=sale purchase"`
	PersonID   string             `json:"person" binding:"required"`
	Items      []OrderItemRequest `json:"purchaseItemList" binding:"required,min=1,dive"`
	AmountPaid decimal.Decimal    `json:"amountPaid" binding:"gte=0"`
	ShopNumber string             `json:"shopNumber"`
}

// UpdateOrderRequest defines the data allowed for updating an order.
type UpdateOrderRequest struct {
	Type       string             `json:"type" binding:"omitempty,oneof=sale purchase"`
	PersonID   string             `json:"person" binding:"required"`
	Items      []OrderItemRequest `json:"purchaseItemList" binding:"required,min=1,dive"`
	AmountPaid decimal.Decimal    `json:"amountPaid" binding:"gte=0"`
}

// ListOrdersParams defines the filter/sort/pagination query parameters for
// listing orders scoped to the requesting user.
type ListOrdersParams struct {
	Status    string           `form:"status" binding:"omitempty,oneof=pending completed"`
	Type      string           `form:"type" binding:"omitempty,oneof=sale purchase"`
	PersonID  string           `form:"person"`
	StartDate *time.Time       `form:"startDate" time_format:"2006-01-02"`
	EndDate   *time.Time       `form:"endDate" time_format:"2006-01-02"`
	MinAmount *decimal.Decimal `form:"minAmount"`
	MaxAmount *decimal.Decimal `form:"maxAmount"`
	PageParams
}

// OrderItemResponse is the API representation of an order line.
type OrderItemResponse struct {
	ItemID   string          `json:"item"`
	ItemName string          `json:"itemName,omitempty"`
	Quantity int64           `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Unit     string          `json:"unit"`
}

// OrderResponse is the API representation of an order.
type OrderResponse struct {
	OrderID       string              `json:"id"`
	PersonID      string              `json:"person"`
	PersonName    string              `json:"personName,omitempty"`
	Type          string              `json:"type"`
	Status        string              `json:"status"`
	Items         []OrderItemResponse `json:"purchaseItemList"`
	AmountPaid    decimal.Decimal     `json:"amountPaid"`
	AmountPending decimal.Decimal     `json:"amountPending"`
	TotalAmount   decimal.Decimal     `json:"totalAmount"`
	CreatedAt     time.Time           `json:"createdAt"`
}

// ToOrderResponse converts a domain.Order to its API representation.
func ToOrderResponse(o *domain.Order) OrderResponse {
	items := make([]OrderItemResponse, len(o.Items))
	for i, line := range o.Items {
		items[i] = OrderItemResponse{
			ItemID:   line.ItemID,
			ItemName: line.ItemName,
			Quantity: line.Quantity,
			Price:    line.Price,
			Unit:     string(line.Unit),
		}
	}
	return OrderResponse{
		OrderID:       o.OrderID,
		PersonID:      o.PersonID,
		PersonName:    o.PersonName,
		Type:          string(o.Type),
		Status:        string(o.Status),
		Items:         items,
		AmountPaid:    o.AmountPaid,
		AmountPending: o.AmountPending,
		TotalAmount:   o.TotalAmount,
		CreatedAt:     o.CreatedAt,
	}
}

// ToOrderResponses converts a slice of domain orders.
func ToOrderResponses(orders []domain.Order) []OrderResponse {
	out := make([]OrderResponse, len(orders))
	for i := range orders {
		out[i] = ToOrderResponse(&orders[i])
	}
	return out
}

// ListOrdersResponse wraps a page of orders.
type ListOrdersResponse struct {
	Orders []OrderResponse `json:"orders"`
	PageMeta
}
