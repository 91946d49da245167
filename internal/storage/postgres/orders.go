package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	domainErrors "github.com/polkiloo/ordersvc/internal/domain/errors"
	"github.com/polkiloo/ordersvc/internal/domain/model"
	"github.com/polkiloo/ordersvc/internal/domain/repository"
)

const (
	orderColumns = `id, user_id, total_amount, status, payment_status, shipping_address, created_at, updated_at`
	itemColumns  = `id, order_id, product_id, product_name, quantity, price, subtotal, created_at`
	eventColumns = `id, order_id, event_type, event_data, created_at`
)

type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type rowScanner interface {
	Scan(dest ...any) error
}

type orderRepository struct {
	storage *Storage
}

type orderTx struct {
	tx pgx.Tx
}

func (r *orderRepository) WithinTransaction(ctx context.Context, fn func(context.Context, repository.OrderTx) error) error {
	return r.storage.WithinTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		return fn(ctx, &orderTx{tx: tx})
	})
}

func (r *orderRepository) GetByID(ctx context.Context, orderID string) (*model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE id=$1`
	order, err := scanOrder(r.storage.pool.QueryRow(ctx, query, orderID))
	if err != nil {
		return nil, err
	}

	items, err := selectItems(ctx, r.storage.pool, []string{order.ID})
	if err != nil {
		return nil, err
	}
	order.Items = items[order.ID]
	return order, nil
}

func (r *orderRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]model.Order, int, error) {
	const countQuery = `SELECT COUNT(*) FROM orders WHERE user_id=$1`
	var total int
	if err := r.storage.pool.QueryRow(ctx, countQuery, userID).Scan(&total); err != nil {
		return nil, 0, err
	}

	const query = `SELECT ` + orderColumns + ` FROM orders WHERE user_id=$1
                   ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.storage.pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var (
		orders []model.Order
		ids    []string
	)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, 0, err
		}
		orders = append(orders, *o)
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	if len(orders) == 0 {
		return orders, total, nil
	}

	items, err := selectItems(ctx, r.storage.pool, ids)
	if err != nil {
		return nil, 0, err
	}
	for i := range orders {
		orders[i].Items = items[orders[i].ID]
	}
	return orders, total, nil
}

func (r *orderRepository) ListEvents(ctx context.Context, orderID string) ([]model.OrderEvent, error) {
	const query = `SELECT ` + eventColumns + ` FROM order_events WHERE order_id=$1 ORDER BY created_at, id`
	rows, err := r.storage.pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []model.OrderEvent
	for rows.Next() {
		var e model.OrderEvent
		if err := rows.Scan(&e.ID, &e.OrderID, &e.Type, &e.Payload, &e.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

// --- OrderTx implementation ---

func (t *orderTx) InsertOrder(ctx context.Context, order *model.Order) error {
	const query = `INSERT INTO orders (id, user_id, total_amount, status, payment_status, shipping_address)
                   VALUES ($1, $2, $3, $4, $5, $6)
                   RETURNING created_at, updated_at`
	return t.tx.QueryRow(ctx, query,
		order.ID, order.UserID, order.TotalAmount, order.Status, order.PaymentStatus, order.ShippingAddress,
	).Scan(&order.CreatedAt, &order.UpdatedAt)
}

func (t *orderTx) InsertItems(ctx context.Context, orderID string, items []model.OrderItem) error {
	const query = `INSERT INTO order_items (id, order_id, position, product_id, product_name, quantity, price, subtotal)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
                   RETURNING created_at`
	for i := range items {
		item := &items[i]
		item.OrderID = orderID
		err := t.tx.QueryRow(ctx, query,
			item.ID, orderID, i, item.ProductID, item.ProductName, item.Quantity, item.Price, item.Subtotal,
		).Scan(&item.CreatedAt)
		if err != nil {
			return err
		}
	}
	return nil
}

func (t *orderTx) AppendEvent(ctx context.Context, event *model.OrderEvent) error {
	const query = `INSERT INTO order_events (id, order_id, event_type, event_data)
                   VALUES ($1, $2, $3, $4)
                   RETURNING created_at`
	return t.tx.QueryRow(ctx, query, event.ID, event.OrderID, event.Type, event.Payload).Scan(&event.CreatedAt)
}

func (t *orderTx) GetForUpdate(ctx context.Context, orderID string) (*model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE id=$1 FOR UPDATE`
	return scanOrder(t.tx.QueryRow(ctx, query, orderID))
}

func (t *orderTx) UpdateStatus(ctx context.Context, orderID string, status model.Status) (*model.Order, error) {
	const query = `UPDATE orders SET status=$1, updated_at=NOW() WHERE id=$2
                   RETURNING ` + orderColumns
	return scanOrder(t.tx.QueryRow(ctx, query, status, orderID))
}

func scanOrder(row rowScanner) (*model.Order, error) {
	var o model.Order
	err := row.Scan(&o.ID, &o.UserID, &o.TotalAmount, &o.Status, &o.PaymentStatus, &o.ShippingAddress, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

// selectItems loads items of the given orders keyed by order id.
func selectItems(ctx context.Context, q querier, orderIDs []string) (map[string][]model.OrderItem, error) {
	const query = `SELECT ` + itemColumns + ` FROM order_items WHERE order_id = ANY($1) ORDER BY order_id, position`
	rows, err := q.Query(ctx, query, orderIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[string][]model.OrderItem, len(orderIDs))
	for rows.Next() {
		var item model.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.ProductName, &item.Quantity, &item.Price, &item.Subtotal, &item.CreatedAt); err != nil {
			return nil, err
		}
		result[item.OrderID] = append(result[item.OrderID], item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
