package dto

import (
	"time"

	"github.com/polkiloo/ordersvc/internal/domain/model"
)

// CreateOrderRequest describes POST /api/orders payload.
type CreateOrderRequest struct {
	UserID          string             `json:"user_id"`
	Items           []OrderItemRequest `json:"items"`
	ShippingAddress string             `json:"shipping_address"`
}

// OrderItemRequest is a requested product and quantity.
type OrderItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// UpdateStatusRequest describes PUT /api/orders/:id/status payload.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type OrderData struct {
	Order *model.Order `json:"order"`
}

type OrderListData struct {
	Orders     []model.Order `json:"orders"`
	Pagination Pagination    `json:"pagination"`
}

type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

type EventListData struct {
	Events []model.OrderEvent `json:"events"`
}

// HealthData reports service and dependency state.
type HealthData struct {
	Service   string    `json:"service"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Database  string    `json:"database,omitempty"`
	Cache     string    `json:"cache,omitempty"`
}
