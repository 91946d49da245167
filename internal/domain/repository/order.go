package repository

import (
	"context"

	"github.com/polkiloo/ordersvc/internal/domain/model"
)

// OrderTx describes writes allowed inside a single order transaction.
type OrderTx interface {
	InsertOrder(ctx context.Context, order *model.Order) error
	InsertItems(ctx context.Context, orderID string, items []model.OrderItem) error
	AppendEvent(ctx context.Context, event *model.OrderEvent) error
	GetForUpdate(ctx context.Context, orderID string) (*model.Order, error)
	UpdateStatus(ctx context.Context, orderID string, status model.Status) (*model.Order, error)
}

// OrderRepository describes persistence operations with orders, their items and audit events.
type OrderRepository interface {
	// WithinTransaction runs fn in one transaction; a non-nil error rolls every write back.
	WithinTransaction(ctx context.Context, fn func(ctx context.Context, tx OrderTx) error) error
	GetByID(ctx context.Context, orderID string) (*model.Order, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]model.Order, int, error)
	ListEvents(ctx context.Context, orderID string) ([]model.OrderEvent, error)
}
