package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrNotFound          = errors.New("order not found")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// StockError carries the offending line when a placement fails on stock.
// It unwraps to ErrInsufficientStock.
type StockError struct {
	ProductID string `json:"productId"`
	Requested int    `json:"requested"`
	Available int    `json:"available"`
}

func (e *StockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s: requested %d, available %d",
		e.ProductID, e.Requested, e.Available)
}

func (e *StockError) Unwrap() error { return ErrInsufficientStock }

type Repository interface {
	PlaceOrder(ctx context.Context, o *Order) error
	GetByID(ctx context.Context, orderID string) (*Order, error)
	ListByUser(ctx context.Context, userID string) ([]Order, error)
	ListAll(ctx context.Context) ([]Order, error)
	UpdateStatus(ctx context.Context, orderID string, status Status) error
}

type repo struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repo{db: db}
}

// PlaceOrder persists the order and its items and decrements stock in one
// transaction. Each product row is locked before the stock check, so two
// concurrent checkouts cannot both take the last unit. Any shortfall or
// inactive product aborts the whole transaction and nothing persists.
func (r *repo) PlaceOrder(ctx context.Context, o *Order) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	for _, it := range o.Items {
		var available int
		var active bool
		err := tx.QueryRowContext(ctx, `
			SELECT stock_quantity, active FROM products
			WHERE id = $1
			FOR UPDATE
		`, it.ProductID).Scan(&available, &active)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return &StockError{ProductID: it.ProductID, Requested: it.Quantity, Available: 0}
			}
			return fmt.Errorf("lock product %s: %w", it.ProductID, err)
		}
		if !active || available < it.Quantity {
			if !active {
				available = 0
			}
			return &StockError{ProductID: it.ProductID, Requested: it.Quantity, Available: available}
		}

		_, err = tx.ExecContext(ctx, `
			UPDATE products SET stock_quantity = stock_quantity - $2 WHERE id = $1
		`, it.ProductID, it.Quantity)
		if err != nil {
			return fmt.Errorf("decrement stock %s: %w", it.ProductID, err)
		}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (id, user_id, customer_name, customer_phone, shipping_address, status, total_amount, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, o.ID, o.UserID, o.CustomerName, o.CustomerPhone, o.ShippingAddress, o.Status, o.TotalAmount, o.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for _, it := range o.Items {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_items (id, order_id, product_id, name, quantity, price)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, uuid.NewString(), o.ID, it.ProductID, it.Name, it.Quantity, it.Price)
		if err != nil {
			return fmt.Errorf("insert order_item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (r *repo) GetByID(ctx context.Context, orderID string) (*Order, error) {
	var o Order
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, customer_name, COALESCE(customer_phone, ''), shipping_address, status, total_amount, created_at
		FROM orders WHERE id = $1
	`, orderID).Scan(&o.ID, &o.UserID, &o.CustomerName, &o.CustomerPhone, &o.ShippingAddress, &o.Status, &o.TotalAmount, &o.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("select order: %w", err)
	}

	items, err := r.loadItems(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return &o, nil
}

func (r *repo) ListByUser(ctx context.Context, userID string) ([]Order, error) {
	return r.list(ctx, `
		SELECT id, user_id, customer_name, COALESCE(customer_phone, ''), shipping_address, status, total_amount, created_at
		FROM orders WHERE user_id = $1 ORDER BY created_at DESC
	`, userID)
}

func (r *repo) ListAll(ctx context.Context) ([]Order, error) {
	return r.list(ctx, `
		SELECT id, user_id, customer_name, COALESCE(customer_phone, ''), shipping_address, status, total_amount, created_at
		FROM orders ORDER BY created_at DESC
	`)
}

func (r *repo) UpdateStatus(ctx context.Context, orderID string, status Status) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE orders SET status = $2 WHERE id = $1`, orderID, status)
	if err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repo) list(ctx context.Context, query string, args ...any) ([]Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select orders: %w", err)
	}
	defer rows.Close()

	var orders []Order
	for rows.Next() {
		var o Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.CustomerName, &o.CustomerPhone, &o.ShippingAddress, &o.Status, &o.TotalAmount, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	for i := range orders {
		items, err := r.loadItems(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}
	return orders, nil
}

func (r *repo) loadItems(ctx context.Context, orderID string) ([]Item, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT product_id, name, quantity, price FROM order_items WHERE order_id = $1`, orderID)
	if err != nil {
		return nil, fmt.Errorf("select order_items: %w", err)
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ProductID, &it.Name, &it.Quantity, &it.Price); err != nil {
			return nil, fmt.Errorf("scan order_item: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return items, nil
}
