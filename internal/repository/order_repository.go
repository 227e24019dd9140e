package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"lubristore/internal/domain"

	"github.com/google/uuid"
)

var (
	ErrOrderNotFound = errors.New("order not found")
)

// OrderRepository defines the interface for order data access. Line items
// are embedded in the order row as a JSON document, mirroring the order's
// denormalized shape.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	List(ctx context.Context) ([]*domain.OrderWithCustomer, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus, updatedAt time.Time) (*domain.Order, error)
}

type orderRepository struct {
	db *sql.DB
}

// NewOrderRepository creates a new instance of OrderRepository
func NewOrderRepository(db *sql.DB) OrderRepository {
	return &orderRepository{db: db}
}

// Create inserts a new order with its embedded line items using parameterized queries
func (r *orderRepository) Create(ctx context.Context, order *domain.Order) error {
	items, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("failed to encode order items: %w", err)
	}

	query := `
		INSERT INTO orders (id, customer_id, total_price, order_status, products, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err = r.db.ExecContext(
		ctx,
		query,
		order.ID,
		order.CustomerID,
		order.TotalPrice,
		order.Status,
		items,
		order.CreatedAt,
		order.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	return nil
}

// FindByID retrieves an order by ID using parameterized queries
func (r *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	query := `
		SELECT id, customer_id, total_price, order_status, products, created_at, updated_at
		FROM orders
		WHERE id = $1
	`

	order := &domain.Order{}
	var items []byte
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&order.ID,
		&order.CustomerID,
		&order.TotalPrice,
		&order.Status,
		&items,
		&order.CreatedAt,
		&order.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to find order by ID: %w", err)
	}

	if err := json.Unmarshal(items, &order.Items); err != nil {
		return nil, fmt.Errorf("failed to decode order items: %w", err)
	}

	return order, nil
}

// List retrieves all orders, most recent first, with the owning customer's
// contact fields joined alongside each order
func (r *orderRepository) List(ctx context.Context) ([]*domain.OrderWithCustomer, error) {
	query := `
		SELECT o.id, o.customer_id, o.total_price, o.order_status, o.products,
		       o.created_at, o.updated_at,
		       COALESCE(c.name, ''), COALESCE(c.email, ''), COALESCE(c.company_name, '')
		FROM orders o
		LEFT JOIN customers c ON c.id = o.customer_id
		ORDER BY o.created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	orders := []*domain.OrderWithCustomer{}
	for rows.Next() {
		order := &domain.OrderWithCustomer{}
		var items []byte
		err := rows.Scan(
			&order.ID,
			&order.CustomerID,
			&order.TotalPrice,
			&order.Status,
			&items,
			&order.CreatedAt,
			&order.UpdatedAt,
			&order.CustomerName,
			&order.CustomerEmail,
			&order.CustomerCompany,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		if err := json.Unmarshal(items, &order.Items); err != nil {
			return nil, fmt.Errorf("failed to decode order items: %w", err)
		}
		orders = append(orders, order)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	return orders, nil
}

// UpdateStatus overwrites the order's status and refreshes its updated
// timestamp, returning the updated projection. Last writer wins; there is
// no precondition on the current status.
func (r *orderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus, updatedAt time.Time) (*domain.Order, error) {
	query := `
		UPDATE orders
		SET order_status = $2, updated_at = $3
		WHERE id = $1
		RETURNING id, customer_id, total_price, order_status, products, created_at, updated_at
	`

	order := &domain.Order{}
	var items []byte
	err := r.db.QueryRowContext(ctx, query, id, status, updatedAt).Scan(
		&order.ID,
		&order.CustomerID,
		&order.TotalPrice,
		&order.Status,
		&items,
		&order.CreatedAt,
		&order.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	if err := json.Unmarshal(items, &order.Items); err != nil {
		return nil, fmt.Errorf("failed to decode order items: %w", err)
	}

	return order, nil
}
