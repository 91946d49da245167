package app

import (
	"context"

	"github.com/polkiloo/ordersvc/internal/domain/model"
	"github.com/polkiloo/ordersvc/internal/usecase"
)

// OrderFacade exposes the order use cases to the transport layer.
type OrderFacade struct {
	orders   *usecase.OrderUseCase
	statuses *usecase.StatusMachine
	queries  *usecase.QueryUseCase
}

func NewOrderFacade(orders *usecase.OrderUseCase, statuses *usecase.StatusMachine, queries *usecase.QueryUseCase) *OrderFacade {
	return &OrderFacade{orders: orders, statuses: statuses, queries: queries}
}

func (f *OrderFacade) CreateOrder(ctx context.Context, cmd usecase.CreateOrderCommand) (*model.Order, error) {
	return f.orders.Create(ctx, cmd)
}

func (f *OrderFacade) GetOrder(ctx context.Context, orderID string) (*model.Order, error) {
	return f.queries.GetOrder(ctx, orderID)
}

func (f *OrderFacade) OrderEvents(ctx context.Context, orderID string) ([]model.OrderEvent, error) {
	return f.queries.OrderEvents(ctx, orderID)
}

func (f *OrderFacade) OrdersByUser(ctx context.Context, userID string, page, limit int) (*model.OrderPage, error) {
	return f.queries.ListOrdersByUser(ctx, userID, page, limit)
}

func (f *OrderFacade) UpdateStatus(ctx context.Context, orderID string, status model.Status) (*model.Order, error) {
	return f.statuses.UpdateStatus(ctx, orderID, status)
}

func (f *OrderFacade) CancelOrder(ctx context.Context, orderID string) (*model.Order, error) {
	return f.statuses.Cancel(ctx, orderID)
}

func (f *OrderFacade) Health(ctx context.Context) usecase.HealthReport {
	return f.queries.Health(ctx)
}
