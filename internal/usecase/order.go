package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	domainErrors "github.com/polkiloo/ordersvc/internal/domain/errors"
	"github.com/polkiloo/ordersvc/internal/domain/model"
	"github.com/polkiloo/ordersvc/internal/domain/repository"
	"github.com/polkiloo/ordersvc/internal/events"
)

const maxParallelLookups = 8

// OrderUseCase orchestrates order creation.
type OrderUseCase struct {
	orders   repository.OrderRepository
	identity IdentityValidator
	catalog  CatalogValidator
	notifier EventNotifier
	logger   *slog.Logger
	parallel bool

	now   func() time.Time
	newID func() string
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(
	orders repository.OrderRepository,
	identity IdentityValidator,
	catalog CatalogValidator,
	notifier EventNotifier,
	logger *slog.Logger,
	opts Options,
) *OrderUseCase {
	return &OrderUseCase{
		orders:   orders,
		identity: identity,
		catalog:  catalog,
		notifier: notifier,
		logger:   logger,
		parallel: opts.ParallelValidation,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// Create validates the principal and every item, then writes the order, its
// items and the creation audit row in one transaction. The creation event is
// published after commit and its failure never fails the call.
func (u *OrderUseCase) Create(ctx context.Context, cmd CreateOrderCommand) (*model.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	cmd = cmd.canonical()

	var (
		order   *model.Order
		eventID string
	)
	err := u.orders.WithinTransaction(ctx, func(ctx context.Context, tx repository.OrderTx) error {
		if err := u.verifyUser(ctx, cmd); err != nil {
			return err
		}

		products, err := u.validateItems(ctx, cmd.Items)
		if err != nil {
			return err
		}

		order = u.buildOrder(cmd, products)
		if err := tx.InsertOrder(ctx, order); err != nil {
			return domainErrors.Persistence("insert order", err)
		}
		if err := tx.InsertItems(ctx, order.ID, order.Items); err != nil {
			return domainErrors.Persistence("insert order items", err)
		}

		payload, err := json.Marshal(struct {
			Order *model.Order      `json:"order"`
			Items []model.OrderItem `json:"items"`
		}{order, order.Items})
		if err != nil {
			return domainErrors.Persistence("encode creation event", err)
		}
		event := &model.OrderEvent{ID: u.newID(), OrderID: order.ID, Type: model.EventOrderCreated, Payload: payload}
		if err := tx.AppendEvent(ctx, event); err != nil {
			return domainErrors.Persistence("insert creation event", err)
		}
		eventID = event.ID
		return nil
	})
	if err != nil {
		return nil, classify("create order", err)
	}

	u.notifier.Notify(events.Created(eventID, order, u.now()))
	u.logger.Info("order created",
		slog.String("order_id", order.ID),
		slog.String("user_id", order.UserID),
		slog.String("total_amount", order.TotalAmount.StringFixed(2)),
	)
	return order, nil
}

func (u *OrderUseCase) verifyUser(ctx context.Context, cmd CreateOrderCommand) error {
	user, err := u.identity.Verify(ctx, cmd.Credential)
	if err != nil {
		u.logger.Warn("user validation failed", slog.String("user_id", cmd.UserID), slog.String("error", err.Error()))
		if errors.Is(err, domainErrors.ErrUserValidationFailed) {
			return err
		}
		return fmt.Errorf("%w: %w", domainErrors.ErrUserValidationFailed, err)
	}
	if principal, ok := CanonicalID(user.ID); !ok || principal != cmd.UserID {
		u.logger.Warn("principal does not own order", slog.String("user_id", cmd.UserID), slog.String("principal_id", user.ID))
		return domainErrors.ErrUserValidationFailed
	}
	return nil
}

// validateItems returns one snapshot per item in caller order. The first
// failing item in caller order decides the error in both modes.
func (u *OrderUseCase) validateItems(ctx context.Context, items []model.LineItem) ([]model.Product, error) {
	products := make([]model.Product, len(items))
	if !u.parallel {
		for i, item := range items {
			p, err := u.lookup(ctx, item)
			if err != nil {
				return nil, err
			}
			products[i] = *p
		}
		return products, nil
	}

	errs := make([]error, len(items))
	var g errgroup.Group
	g.SetLimit(maxParallelLookups)
	for i, item := range items {
		g.Go(func() error {
			p, err := u.lookup(ctx, item)
			if err != nil {
				errs[i] = err
				return nil
			}
			products[i] = *p
			return nil
		})
	}
	_ = g.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return products, nil
}

func (u *OrderUseCase) lookup(ctx context.Context, item model.LineItem) (*model.Product, error) {
	product, err := u.catalog.Product(ctx, item.ProductID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrProductNotFound) {
			return nil, &domainErrors.ProductError{ProductID: item.ProductID, Err: domainErrors.ErrProductNotFound}
		}
		u.logger.Warn("product lookup failed", slog.String("product_id", item.ProductID), slog.String("error", err.Error()))
		return nil, &domainErrors.ProductError{ProductID: item.ProductID, Err: domainErrors.ErrProductUnavailable}
	}
	if !product.Available(item.Quantity) {
		return nil, &domainErrors.ProductError{
			ProductID:   item.ProductID,
			ProductName: product.Name,
			Err:         domainErrors.ErrInsufficientInventory,
		}
	}
	product.ID = item.ProductID
	return product, nil
}

func (u *OrderUseCase) buildOrder(cmd CreateOrderCommand, products []model.Product) *model.Order {
	items := make([]model.OrderItem, len(cmd.Items))
	for i, line := range cmd.Items {
		items[i] = model.NewOrderItem(products[i], line.Quantity)
		items[i].ID = u.newID()
	}
	return &model.Order{
		ID:              u.newID(),
		UserID:          cmd.UserID,
		TotalAmount:     model.SumSubtotals(items),
		Status:          model.StatusPending,
		PaymentStatus:   model.PaymentStatusPending,
		ShippingAddress: strings.TrimSpace(cmd.ShippingAddress),
		Items:           items,
	}
}

// classify keeps domain failures as they are and reports everything else as
// a persistence failure.
func classify(op string, err error) error {
	var (
		productErr    *domainErrors.ProductError
		transitionErr *domainErrors.TransitionError
	)
	switch {
	case errors.Is(err, domainErrors.ErrValidation),
		errors.Is(err, domainErrors.ErrInvalidStatus),
		errors.Is(err, domainErrors.ErrUserValidationFailed),
		errors.Is(err, domainErrors.ErrNotFound),
		errors.As(err, &productErr),
		errors.As(err, &transitionErr):
		return err
	default:
		return domainErrors.Persistence(op, err)
	}
}
