package usecase

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/polkiloo/ordersvc/internal/cache"
	domainErrors "github.com/polkiloo/ordersvc/internal/domain/errors"
	"github.com/polkiloo/ordersvc/internal/domain/model"
	"github.com/polkiloo/ordersvc/internal/domain/repository"
	"github.com/polkiloo/ordersvc/internal/events"
)

// StatusMachine applies status changes and records them in the audit log.
type StatusMachine struct {
	orders   repository.OrderRepository
	cache    OrderCache
	notifier EventNotifier
	logger   *slog.Logger
	strict   bool

	now   func() time.Time
	newID func() string
}

// NewStatusMachine constructs StatusMachine.
func NewStatusMachine(
	orders repository.OrderRepository,
	cache OrderCache,
	notifier EventNotifier,
	logger *slog.Logger,
	opts Options,
) *StatusMachine {
	return &StatusMachine{
		orders:   orders,
		cache:    cache,
		notifier: notifier,
		logger:   logger,
		strict:   opts.StrictTransitions,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

type statusPayload struct {
	Status    model.Status `json:"status"`
	Timestamp time.Time    `json:"timestamp"`
}

type cancelPayload struct {
	Reason    string       `json:"reason"`
	Status    model.Status `json:"status"`
	Timestamp time.Time    `json:"timestamp"`
}

// UpdateStatus writes any known status. Unless strict transitions are
// enabled the current status is not consulted.
func (m *StatusMachine) UpdateStatus(ctx context.Context, orderID string, status model.Status) (*model.Order, error) {
	if !status.Valid() {
		return nil, domainErrors.ErrInvalidStatus
	}
	orderID, ok := CanonicalID(orderID)
	if !ok {
		return nil, domainErrors.ErrNotFound
	}

	var (
		updated *model.Order
		eventID = m.newID()
		at      = m.now().UTC()
	)
	err := m.orders.WithinTransaction(ctx, func(ctx context.Context, tx repository.OrderTx) error {
		if m.strict {
			current, err := tx.GetForUpdate(ctx, orderID)
			if err != nil {
				return err
			}
			if !current.Status.CanTransitionTo(status) {
				return &domainErrors.TransitionError{From: string(current.Status), To: string(status)}
			}
		}

		var err error
		if updated, err = tx.UpdateStatus(ctx, orderID, status); err != nil {
			return err
		}
		return m.appendEvent(ctx, tx, orderID, eventID, model.EventOrderStatusUpdated, statusPayload{Status: status, Timestamp: at})
	})
	if err != nil {
		return nil, classify("update order status", err)
	}

	m.invalidate(ctx, orderID)
	if msg, ok := events.StatusChanged(eventID, updated, at); ok {
		m.notifier.Notify(msg)
	}
	m.logger.Info("order status updated", slog.String("order_id", orderID), slog.String("status", string(status)))
	return updated, nil
}

// Cancel moves a pending or confirmed order to cancelled. The row is locked
// before the guard is evaluated.
func (m *StatusMachine) Cancel(ctx context.Context, orderID string) (*model.Order, error) {
	orderID, ok := CanonicalID(orderID)
	if !ok {
		return nil, domainErrors.ErrNotFound
	}

	var (
		updated *model.Order
		eventID = m.newID()
		at      = m.now().UTC()
	)
	err := m.orders.WithinTransaction(ctx, func(ctx context.Context, tx repository.OrderTx) error {
		current, err := tx.GetForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if !current.Status.Cancellable() {
			return &domainErrors.TransitionError{From: string(current.Status), To: string(model.StatusCancelled)}
		}

		if updated, err = tx.UpdateStatus(ctx, orderID, model.StatusCancelled); err != nil {
			return err
		}
		return m.appendEvent(ctx, tx, orderID, eventID, model.EventOrderCancelled, cancelPayload{
			Reason:    events.CancelReason,
			Status:    model.StatusCancelled,
			Timestamp: at,
		})
	})
	if err != nil {
		return nil, classify("cancel order", err)
	}

	m.invalidate(ctx, orderID)
	m.notifier.Notify(events.Cancelled(eventID, updated, at))
	m.logger.Info("order cancelled", slog.String("order_id", orderID))
	return updated, nil
}

func (m *StatusMachine) appendEvent(ctx context.Context, tx repository.OrderTx, orderID, eventID string, typ model.EventType, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return tx.AppendEvent(ctx, &model.OrderEvent{ID: eventID, OrderID: orderID, Type: typ, Payload: data})
}

// invalidate deletes the cached entry so the next read goes to the store.
func (m *StatusMachine) invalidate(ctx context.Context, orderID string) {
	key := cache.OrderKey(orderID)
	if err := m.cache.Delete(context.WithoutCancel(ctx), key); err != nil {
		m.logger.Warn("cache invalidation failed", slog.String("key", key), slog.String("error", err.Error()))
	}
}
