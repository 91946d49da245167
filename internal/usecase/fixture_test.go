package usecase

import (
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/polkiloo/ordersvc/internal/domain/model"
	testhelpers "github.com/polkiloo/ordersvc/internal/test"
)

type fixture struct {
	store    *testhelpers.OrderStore
	identity *testhelpers.IdentityStub
	catalog  *testhelpers.CatalogStub
	notifier *testhelpers.NotifierStub
	cache    *testhelpers.CacheStub
	logger   *slog.Logger

	userID string
	p1, p2 string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		store:    testhelpers.NewOrderStore(),
		notifier: &testhelpers.NotifierStub{},
		cache:    testhelpers.NewCacheStub(),
		logger:   slog.New(slog.NewJSONHandler(io.Discard, nil)),
		userID:   uuid.NewString(),
		p1:       uuid.NewString(),
		p2:       uuid.NewString(),
	}
	f.identity = &testhelpers.IdentityStub{User: &model.User{ID: f.userID, Email: "u1@example.com"}}
	f.catalog = &testhelpers.CatalogStub{Products: map[string]model.Product{
		f.p1: {ID: f.p1, Name: "Desk lamp", Price: decimal.RequireFromString("10.00"), InventoryCount: 5},
		f.p2: {ID: f.p2, Name: "Light bulb", Price: decimal.RequireFromString("5.00"), InventoryCount: 3},
	}}
	return f
}

func (f *fixture) orders(opts Options) *OrderUseCase {
	return NewOrderUseCase(f.store, f.identity, f.catalog, f.notifier, f.logger, opts)
}

func (f *fixture) statuses(opts Options) *StatusMachine {
	return NewStatusMachine(f.store, f.cache, f.notifier, f.logger, opts)
}

func (f *fixture) queries(store HealthChecker) *QueryUseCase {
	return NewQueryUseCase(f.store, f.cache, store, f.logger, Options{})
}

func (f *fixture) command(items ...model.LineItem) CreateOrderCommand {
	return CreateOrderCommand{
		UserID:          f.userID,
		Credential:      "Bearer token",
		Items:           items,
		ShippingAddress: "  1 Main St  ",
	}
}

func (f *fixture) seed(status model.Status) model.Order {
	order := model.Order{
		ID:              uuid.NewString(),
		UserID:          f.userID,
		TotalAmount:     decimal.RequireFromString("20.00"),
		Status:          status,
		PaymentStatus:   model.PaymentStatusPending,
		ShippingAddress: "1 Main St",
		Items: []model.OrderItem{{
			ID:          uuid.NewString(),
			ProductID:   f.p1,
			ProductName: "Desk lamp",
			Quantity:    2,
			Price:       decimal.RequireFromString("10.00"),
			Subtotal:    decimal.RequireFromString("20.00"),
		}},
	}
	order.Items[0].OrderID = order.ID
	f.store.Seed(order)
	return order
}
