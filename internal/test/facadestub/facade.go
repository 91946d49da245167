// Package facadestub provides handler facade doubles. It lives apart from
// package test because it depends on usecase types.
package facadestub

import (
	"context"

	"github.com/polkiloo/ordersvc/internal/domain/model"
	"github.com/polkiloo/ordersvc/internal/usecase"
)

// OrderFacadeStub provides controllable behaviour for order endpoints.
type OrderFacadeStub struct {
	CreateFn       func(context.Context, usecase.CreateOrderCommand) (*model.Order, error)
	GetFn          func(context.Context, string) (*model.Order, error)
	EventsFn       func(context.Context, string) ([]model.OrderEvent, error)
	OrdersByUserFn func(context.Context, string, int, int) (*model.OrderPage, error)
	UpdateFn       func(context.Context, string, model.Status) (*model.Order, error)
	CancelFn       func(context.Context, string) (*model.Order, error)
	Report         usecase.HealthReport
}

// CreateOrder delegates to provided function or echoes the command.
func (s OrderFacadeStub) CreateOrder(ctx context.Context, cmd usecase.CreateOrderCommand) (*model.Order, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, cmd)
	}
	return &model.Order{ID: "o1", UserID: cmd.UserID, Status: model.StatusPending, ShippingAddress: cmd.ShippingAddress}, nil
}

func (s OrderFacadeStub) GetOrder(ctx context.Context, orderID string) (*model.Order, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, orderID)
	}
	return &model.Order{ID: orderID, Status: model.StatusPending}, nil
}

func (s OrderFacadeStub) OrderEvents(ctx context.Context, orderID string) ([]model.OrderEvent, error) {
	if s.EventsFn != nil {
		return s.EventsFn(ctx, orderID)
	}
	return []model.OrderEvent{{ID: "e1", OrderID: orderID, Type: model.EventOrderCreated}}, nil
}

func (s OrderFacadeStub) OrdersByUser(ctx context.Context, userID string, page, limit int) (*model.OrderPage, error) {
	if s.OrdersByUserFn != nil {
		return s.OrdersByUserFn(ctx, userID, page, limit)
	}
	return &model.OrderPage{Orders: []model.Order{{ID: "o1", UserID: userID}}, Page: 1, Limit: 10, Total: 1, Pages: 1}, nil
}

func (s OrderFacadeStub) UpdateStatus(ctx context.Context, orderID string, status model.Status) (*model.Order, error) {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, orderID, status)
	}
	return &model.Order{ID: orderID, Status: status}, nil
}

func (s OrderFacadeStub) CancelOrder(ctx context.Context, orderID string) (*model.Order, error) {
	if s.CancelFn != nil {
		return s.CancelFn(ctx, orderID)
	}
	return &model.Order{ID: orderID, Status: model.StatusCancelled}, nil
}

// Health returns the configured report.
func (s OrderFacadeStub) Health(ctx context.Context) usecase.HealthReport {
	return s.Report
}
