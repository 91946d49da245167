package handlers

import (
	"context"

	"github.com/polkiloo/ordersvc/internal/domain/model"
	"github.com/polkiloo/ordersvc/internal/usecase"
)

// OrderFacade encapsulates order operations exposed via HTTP.
type OrderFacade interface {
	CreateOrder(ctx context.Context, cmd usecase.CreateOrderCommand) (*model.Order, error)
	GetOrder(ctx context.Context, orderID string) (*model.Order, error)
	OrderEvents(ctx context.Context, orderID string) ([]model.OrderEvent, error)
	OrdersByUser(ctx context.Context, userID string, page, limit int) (*model.OrderPage, error)
	UpdateStatus(ctx context.Context, orderID string, status model.Status) (*model.Order, error)
	CancelOrder(ctx context.Context, orderID string) (*model.Order, error)
}

// HealthFacade reports dependency availability.
type HealthFacade interface {
	Health(ctx context.Context) usecase.HealthReport
}

// ServiceFacade aggregates the full set of operations used across handlers.
type ServiceFacade interface {
	OrderFacade
	HealthFacade
}
