package usecase

import (
	"context"
	"time"

	"github.com/polkiloo/ordersvc/internal/domain/model"
	"github.com/polkiloo/ordersvc/internal/events"
)

// IdentityValidator confirms the ordering principal.
type IdentityValidator interface {
	Verify(ctx context.Context, credential string) (*model.User, error)
}

// CatalogValidator fetches authoritative product snapshots.
type CatalogValidator interface {
	Product(ctx context.Context, productID string) (*model.Product, error)
}

// EventNotifier hands messages to the best-effort background publisher.
type EventNotifier interface {
	Notify(msg events.Message)
}

// OrderCache is the single-entity read-through cache.
type OrderCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
}

// HealthChecker verifies connectivity of the persistent store.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Options toggles optional behaviour of the order use cases.
type Options struct {
	ParallelValidation bool
	StrictTransitions  bool
	CacheTTL           time.Duration
}
