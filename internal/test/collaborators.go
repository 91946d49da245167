package test

import (
	"context"
	"sync"
	"time"

	domainErrors "github.com/polkiloo/ordersvc/internal/domain/errors"
	"github.com/polkiloo/ordersvc/internal/domain/model"
	"github.com/polkiloo/ordersvc/internal/events"
)

// IdentityStub returns a fixed principal or error.
type IdentityStub struct {
	User        *model.User
	Err         error
	Credentials []string
}

func (s *IdentityStub) Verify(ctx context.Context, credential string) (*model.User, error) {
	s.Credentials = append(s.Credentials, credential)
	if s.Err != nil {
		return nil, s.Err
	}
	if s.User == nil {
		return nil, domainErrors.ErrUserValidationFailed
	}
	u := *s.User
	return &u, nil
}

// CatalogStub serves products from memory and records lookups in call order.
type CatalogStub struct {
	mu       sync.Mutex
	Products map[string]model.Product
	Errs     map[string]error
	Delay    map[string]time.Duration
	calls    []string
}

func (s *CatalogStub) Product(ctx context.Context, productID string) (*model.Product, error) {
	s.mu.Lock()
	s.calls = append(s.calls, productID)
	delay := s.Delay[productID]
	s.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, domainErrors.ErrProductUnavailable
		}
	}

	if err, ok := s.Errs[productID]; ok {
		return nil, err
	}
	p, ok := s.Products[productID]
	if !ok {
		return nil, domainErrors.ErrProductNotFound
	}
	return &p, nil
}

// Calls returns the product ids looked up so far.
func (s *CatalogStub) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

// NotifierStub records messages handed to the background publisher.
type NotifierStub struct {
	mu       sync.Mutex
	messages []events.Message
}

func (s *NotifierStub) Notify(msg events.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, msg)
}

// Messages returns recorded messages.
func (s *NotifierStub) Messages() []events.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]events.Message(nil), s.messages...)
}

// CacheStub is an in-memory key/value cache with injectable failures.
type CacheStub struct {
	mu        sync.Mutex
	values    map[string][]byte
	TTLs      map[string]time.Duration
	GetErr    error
	SetErr    error
	DeleteErr error
	PingErr   error
	Deleted   []string
}

// NewCacheStub constructs an empty cache.
func NewCacheStub() *CacheStub {
	return &CacheStub{values: make(map[string][]byte), TTLs: make(map[string]time.Duration)}
}

func (c *CacheStub) Get(ctx context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.GetErr != nil {
		return nil, false, c.GetErr
	}
	v, ok := c.values[key]
	return v, ok, nil
}

func (c *CacheStub) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.SetErr != nil {
		return c.SetErr
	}
	c.values[key] = append([]byte(nil), value...)
	c.TTLs[key] = ttl
	return nil
}

func (c *CacheStub) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Deleted = append(c.Deleted, key)
	if c.DeleteErr != nil {
		return c.DeleteErr
	}
	delete(c.values, key)
	return nil
}

func (c *CacheStub) Ping(ctx context.Context) error {
	return c.PingErr
}

// Has reports whether key is cached.
func (c *CacheStub) Has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.values[key]
	return ok
}

// PingerStub reports a fixed health check result.
type PingerStub struct {
	Err error
}

func (p PingerStub) HealthCheck(ctx context.Context) error {
	return p.Err
}

// PublisherStub records messages written to the event bus.
type PublisherStub struct {
	mu        sync.Mutex
	Err       error
	published []events.Message
}

func (p *PublisherStub) Publish(ctx context.Context, msg events.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return p.Err
	}
	p.published = append(p.published, msg)
	return nil
}

// Published returns messages written so far.
func (p *PublisherStub) Published() []events.Message {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]events.Message(nil), p.published...)
}
