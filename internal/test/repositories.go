package test

import (
	"context"
	"sort"
	"sync"
	"time"

	domainErrors "github.com/polkiloo/ordersvc/internal/domain/errors"
	"github.com/polkiloo/ordersvc/internal/domain/model"
	"github.com/polkiloo/ordersvc/internal/domain/repository"
)

// OrderStore is an in-memory transactional order repository. Writes made
// inside WithinTransaction become visible only when fn returns nil.
type OrderStore struct {
	mu     sync.Mutex
	orders map[string]model.Order
	items  map[string][]model.OrderItem
	events map[string][]model.OrderEvent

	BeginErr     error
	CommitErr    error
	ReadErr      error
	InsertErr    error
	Commits      int
	Rollbacks    int
	GetByIDCalls int
	Now          func() time.Time
}

// NewOrderStore constructs an empty store.
func NewOrderStore() *OrderStore {
	return &OrderStore{
		orders: make(map[string]model.Order),
		items:  make(map[string][]model.OrderItem),
		events: make(map[string][]model.OrderEvent),
		Now:    time.Now,
	}
}

// Seed stores an order directly, bypassing transactions.
func (s *OrderStore) Seed(order model.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := order.Items
	order.Items = nil
	s.orders[order.ID] = order
	if len(items) > 0 {
		s.items[order.ID] = append([]model.OrderItem(nil), items...)
	}
}

// Counts reports committed orders, items and audit rows.
func (s *OrderStore) Counts() (orders, items, events int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, list := range s.items {
		items += len(list)
	}
	for _, list := range s.events {
		events += len(list)
	}
	return len(s.orders), items, events
}

// Events returns committed audit rows of an order.
func (s *OrderStore) Events(orderID string) []model.OrderEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.OrderEvent(nil), s.events[orderID]...)
}

// Status returns the committed status of an order.
func (s *OrderStore) Status(orderID string) model.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.orders[orderID].Status
}

func (s *OrderStore) WithinTransaction(ctx context.Context, fn func(context.Context, repository.OrderTx) error) error {
	if s.BeginErr != nil {
		return s.BeginErr
	}
	tx := &storeTx{
		store:  s,
		orders: make(map[string]model.Order),
		items:  make(map[string][]model.OrderItem),
		events: make(map[string][]model.OrderEvent),
	}
	if err := fn(ctx, tx); err != nil {
		s.mu.Lock()
		s.Rollbacks++
		s.mu.Unlock()
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.CommitErr != nil {
		s.Rollbacks++
		return s.CommitErr
	}
	for id, o := range tx.orders {
		s.orders[id] = o
	}
	for id, list := range tx.items {
		s.items[id] = append(s.items[id], list...)
	}
	for id, list := range tx.events {
		s.events[id] = append(s.events[id], list...)
	}
	s.Commits++
	return nil
}

func (s *OrderStore) GetByID(ctx context.Context, orderID string) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.GetByIDCalls++
	if s.ReadErr != nil {
		return nil, s.ReadErr
	}
	o, ok := s.orders[orderID]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	o.Items = append([]model.OrderItem(nil), s.items[orderID]...)
	return &o, nil
}

func (s *OrderStore) ListByUser(ctx context.Context, userID string, limit, offset int) ([]model.Order, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ReadErr != nil {
		return nil, 0, s.ReadErr
	}
	var matched []model.Order
	for _, o := range s.orders {
		if o.UserID == userID {
			o.Items = append([]model.OrderItem(nil), s.items[o.ID]...)
			matched = append(matched, o)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID > matched[j].ID
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	total := len(matched)
	if offset >= total {
		return []model.Order{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return matched[offset:end], total, nil
}

func (s *OrderStore) ListEvents(ctx context.Context, orderID string) ([]model.OrderEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ReadErr != nil {
		return nil, s.ReadErr
	}
	return append([]model.OrderEvent(nil), s.events[orderID]...), nil
}

type storeTx struct {
	store  *OrderStore
	orders map[string]model.Order
	items  map[string][]model.OrderItem
	events map[string][]model.OrderEvent
}

func (t *storeTx) now() time.Time {
	if t.store.Now != nil {
		return t.store.Now()
	}
	return time.Now()
}

func (t *storeTx) InsertOrder(ctx context.Context, order *model.Order) error {
	if t.store.InsertErr != nil {
		return t.store.InsertErr
	}
	now := t.now()
	order.CreatedAt, order.UpdatedAt = now, now
	stored := *order
	stored.Items = nil
	t.orders[order.ID] = stored
	return nil
}

func (t *storeTx) InsertItems(ctx context.Context, orderID string, items []model.OrderItem) error {
	now := t.now()
	for i := range items {
		items[i].OrderID = orderID
		items[i].CreatedAt = now
	}
	t.items[orderID] = append(t.items[orderID], items...)
	return nil
}

func (t *storeTx) AppendEvent(ctx context.Context, event *model.OrderEvent) error {
	event.CreatedAt = t.now()
	t.events[event.OrderID] = append(t.events[event.OrderID], *event)
	return nil
}

func (t *storeTx) lookup(orderID string) (model.Order, bool) {
	if o, ok := t.orders[orderID]; ok {
		return o, true
	}
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	o, ok := t.store.orders[orderID]
	return o, ok
}

func (t *storeTx) GetForUpdate(ctx context.Context, orderID string) (*model.Order, error) {
	o, ok := t.lookup(orderID)
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return &o, nil
}

func (t *storeTx) UpdateStatus(ctx context.Context, orderID string, status model.Status) (*model.Order, error) {
	o, ok := t.lookup(orderID)
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	o.Status = status
	o.UpdatedAt = t.now()
	t.orders[orderID] = o
	return &o, nil
}
