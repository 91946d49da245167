package model

import (
	"encoding/json"
	"time"
)

// EventType tags audit rows in the order event log.
type EventType string

const (
	EventOrderCreated       EventType = "ORDER_CREATED"
	EventOrderStatusUpdated EventType = "ORDER_STATUS_UPDATED"
	EventOrderCancelled     EventType = "ORDER_CANCELLED"
)

// OrderEvent is an append-only audit row. Bus messages are derived from it.
type OrderEvent struct {
	ID        string          `json:"id"`
	OrderID   string          `json:"order_id"`
	Type      EventType       `json:"event_type"`
	Payload   json.RawMessage `json:"event_data"`
	CreatedAt time.Time       `json:"created_at"`
}

// OrderPage is a single page of a user's orders.
type OrderPage struct {
	Orders []Order
	Page   int
	Limit  int
	Total  int
	Pages  int
}
