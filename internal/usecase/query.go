package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/polkiloo/ordersvc/internal/cache"
	domainErrors "github.com/polkiloo/ordersvc/internal/domain/errors"
	"github.com/polkiloo/ordersvc/internal/domain/model"
	"github.com/polkiloo/ordersvc/internal/domain/repository"
)

const (
	defaultPage     = 1
	defaultPageSize = 10
	maxPageSize     = 100
	defaultCacheTTL = 30 * time.Minute

	// keeps (page-1)*limit within a signed 32-bit offset
	maxPage = math.MaxInt32 / maxPageSize
)

// QueryUseCase serves order reads. Single orders go through the cache,
// lists and audit trails always hit the store.
type QueryUseCase struct {
	orders   repository.OrderRepository
	cache    OrderCache
	store    HealthChecker
	logger   *slog.Logger
	cacheTTL time.Duration
}

// NewQueryUseCase constructs QueryUseCase.
func NewQueryUseCase(orders repository.OrderRepository, cache OrderCache, store HealthChecker, logger *slog.Logger, opts Options) *QueryUseCase {
	ttl := opts.CacheTTL
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &QueryUseCase{orders: orders, cache: cache, store: store, logger: logger, cacheTTL: ttl}
}

// GetOrder returns the order with its items. Every result is served from its
// cached encoding so repeated reads are identical.
func (q *QueryUseCase) GetOrder(ctx context.Context, orderID string) (*model.Order, error) {
	orderID, ok := CanonicalID(orderID)
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	key := cache.OrderKey(orderID)

	data, ok, err := q.cache.Get(ctx, key)
	if err != nil {
		q.logger.Warn("cache read failed", slog.String("key", key), slog.String("error", err.Error()))
	}
	if ok {
		var order model.Order
		if err := json.Unmarshal(data, &order); err == nil {
			return &order, nil
		}
		q.logger.Warn("discarding malformed cache entry", slog.String("key", key))
	}

	order, err := q.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, classify("get order", err)
	}

	data, err = json.Marshal(order)
	if err != nil {
		return order, nil
	}
	if err := q.cache.Set(ctx, key, data, q.cacheTTL); err != nil {
		q.logger.Warn("cache write failed", slog.String("key", key), slog.String("error", err.Error()))
	}

	var cached model.Order
	if err := json.Unmarshal(data, &cached); err != nil {
		return order, nil
	}
	return &cached, nil
}

// ListOrdersByUser returns one page of the user's orders, newest first.
func (q *QueryUseCase) ListOrdersByUser(ctx context.Context, userID string, page, limit int) (*model.OrderPage, error) {
	userID, ok := CanonicalID(userID)
	if !ok {
		return nil, invalid("user id must be a valid UUID")
	}
	if page < 1 {
		page = defaultPage
	}
	if page > maxPage {
		return nil, invalid(fmt.Sprintf("page must be at most %d", maxPage))
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	orders, total, err := q.orders.ListByUser(ctx, userID, limit, (page-1)*limit)
	if err != nil {
		return nil, classify("list orders", err)
	}
	if orders == nil {
		orders = []model.Order{}
	}
	return &model.OrderPage{
		Orders: orders,
		Page:   page,
		Limit:  limit,
		Total:  total,
		Pages:  (total + limit - 1) / limit,
	}, nil
}

// OrderEvents returns the audit trail of an order, oldest first.
func (q *QueryUseCase) OrderEvents(ctx context.Context, orderID string) ([]model.OrderEvent, error) {
	orderID, ok := CanonicalID(orderID)
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	list, err := q.orders.ListEvents(ctx, orderID)
	if err != nil {
		return nil, classify("list order events", err)
	}
	// every stored order has at least its creation row
	if len(list) == 0 {
		return nil, domainErrors.ErrNotFound
	}
	return list, nil
}

// HealthReport describes dependency availability.
type HealthReport struct {
	Healthy  bool
	Database string
	Cache    string
}

// Health pings the store and the cache. Only the store decides health.
func (q *QueryUseCase) Health(ctx context.Context) HealthReport {
	report := HealthReport{Healthy: true, Database: "connected", Cache: "connected"}
	if err := q.store.HealthCheck(ctx); err != nil {
		q.logger.Error("database health check failed", slog.String("error", err.Error()))
		report.Healthy = false
		report.Database = "disconnected"
	}
	if err := q.cache.Ping(ctx); err != nil {
		q.logger.Warn("cache health check failed", slog.String("error", err.Error()))
		report.Cache = "degraded"
	}
	return report
}
