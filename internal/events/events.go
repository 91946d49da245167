// Package events defines the order lifecycle messages published to the event bus.
package events

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/ordersvc/internal/domain/model"
)

const (
	TopicOrderCreated   = "order.created"
	TopicOrderConfirmed = "order.confirmed"
	TopicOrderCancelled = "order.cancelled"
	TopicOrderShipped   = "order.shipped"
	TopicOrderDelivered = "order.delivered"
)

// CancelReason is recorded for cancellations requested through Cancel.
const CancelReason = "User cancellation"

// Topics lists every topic the service writes to.
var Topics = []string{
	TopicOrderCreated,
	TopicOrderConfirmed,
	TopicOrderCancelled,
	TopicOrderShipped,
	TopicOrderDelivered,
}

// Message is one bus record keyed by order id for partition affinity.
type Message struct {
	Topic   string
	Key     string
	Payload any
}

// Publisher writes messages to the event bus.
type Publisher interface {
	Publish(ctx context.Context, msg Message) error
}

// OrderCreated is published once an order and its items are committed.
type OrderCreated struct {
	EventID     string            `json:"eventId"`
	OrderID     string            `json:"orderId"`
	UserID      string            `json:"userId"`
	TotalAmount decimal.Decimal   `json:"totalAmount"`
	Items       []model.OrderItem `json:"items"`
	Timestamp   time.Time         `json:"timestamp"`
}

// OrderStatusChanged is published for status values that have a topic.
type OrderStatusChanged struct {
	EventID   string       `json:"eventId"`
	OrderID   string       `json:"orderId"`
	UserID    string       `json:"userId"`
	Status    model.Status `json:"status"`
	Timestamp time.Time    `json:"timestamp"`
}

// OrderCancelled is published by the guarded cancel operation.
type OrderCancelled struct {
	EventID   string    `json:"eventId"`
	OrderID   string    `json:"orderId"`
	UserID    string    `json:"userId"`
	Reason    string    `json:"reason"`
	Timestamp time.Time `json:"timestamp"`
}

// TopicForStatus maps a status to its topic. Pending and processing have none.
func TopicForStatus(status model.Status) (string, bool) {
	switch status {
	case model.StatusConfirmed:
		return TopicOrderConfirmed, true
	case model.StatusShipped:
		return TopicOrderShipped, true
	case model.StatusDelivered:
		return TopicOrderDelivered, true
	case model.StatusCancelled:
		return TopicOrderCancelled, true
	default:
		return "", false
	}
}

// Created builds the creation message for a committed order.
func Created(eventID string, order *model.Order, at time.Time) Message {
	return Message{
		Topic: TopicOrderCreated,
		Key:   order.ID,
		Payload: OrderCreated{
			EventID:     eventID,
			OrderID:     order.ID,
			UserID:      order.UserID,
			TotalAmount: order.TotalAmount,
			Items:       order.Items,
			Timestamp:   at.UTC(),
		},
	}
}

// StatusChanged builds the message for a status update, if the status has a topic.
func StatusChanged(eventID string, order *model.Order, at time.Time) (Message, bool) {
	topic, ok := TopicForStatus(order.Status)
	if !ok {
		return Message{}, false
	}
	return Message{
		Topic: topic,
		Key:   order.ID,
		Payload: OrderStatusChanged{
			EventID:   eventID,
			OrderID:   order.ID,
			UserID:    order.UserID,
			Status:    order.Status,
			Timestamp: at.UTC(),
		},
	}, true
}

// Cancelled builds the cancellation message.
func Cancelled(eventID string, order *model.Order, at time.Time) Message {
	return Message{
		Topic: TopicOrderCancelled,
		Key:   order.ID,
		Payload: OrderCancelled{
			EventID:   eventID,
			OrderID:   order.ID,
			UserID:    order.UserID,
			Reason:    CancelReason,
			Timestamp: at.UTC(),
		},
	}
}
