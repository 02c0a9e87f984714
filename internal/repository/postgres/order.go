package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dtroode/udon-shop-server/internal/model"
)

var _ model.OrderStore = (*OrderRepository)(nil)

type OrderRepository struct {
	db *Connection
}

func NewOrderRepository(db *Connection) *OrderRepository {
	return &OrderRepository{
		db: db,
	}
}

// Create writes the order row and all of its line items in one
// transaction, so a crash can never leave an order without its items.
func (r *OrderRepository) Create(ctx context.Context, order model.Order, items []model.OrderItem) (model.Order, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return model.Order{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `INSERT INTO orders (id, user_id, order_date, total_price, status)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id, user_id, order_date, total_price, status`

	var savedOrder model.Order
	err = tx.QueryRow(ctx, query,
		order.ID, order.UserID, order.OrderDate, order.TotalPrice, string(order.Status),
	).Scan(
		&savedOrder.ID, &savedOrder.UserID, &savedOrder.OrderDate,
		&savedOrder.TotalPrice, &savedOrder.Status,
	)
	if err != nil {
		return model.Order{}, fmt.Errorf("failed to create order: %w", err)
	}

	itemQuery := `INSERT INTO order_items (id, order_id, product_id, quantity, price)
				  VALUES ($1, $2, $3, $4, $5)`

	for _, item := range items {
		if _, err := tx.Exec(ctx, itemQuery,
			item.ID, item.OrderID, item.ProductID, item.Quantity, item.Price,
		); err != nil {
			return model.Order{}, fmt.Errorf("failed to create order item: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return model.Order{}, fmt.Errorf("failed to commit order: %w", err)
	}

	return savedOrder, nil
}

func (r *OrderRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Order, error) {
	var order model.Order
	query := `SELECT id, user_id, order_date, total_price, status
			  FROM orders WHERE id = $1`

	err := r.db.QueryRow(ctx, query, id).Scan(
		&order.ID, &order.UserID, &order.OrderDate, &order.TotalPrice, &order.Status,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Order{}, model.ErrNotFound
		}
		return model.Order{}, fmt.Errorf("failed to get order by id: %w", err)
	}

	return order, nil
}

func (r *OrderRepository) GetAll(ctx context.Context) ([]model.Order, error) {
	query := `SELECT id, user_id, order_date, total_price, status
			  FROM orders ORDER BY order_date DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get orders: %w", err)
	}
	defer rows.Close()

	return scanOrders(rows)
}

func (r *OrderRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]model.Order, error) {
	query := `SELECT id, user_id, order_date, total_price, status
			  FROM orders WHERE user_id = $1 ORDER BY order_date DESC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get orders by user id: %w", err)
	}
	defer rows.Close()

	return scanOrders(rows)
}

func (r *OrderRepository) GetItemsByOrderID(ctx context.Context, orderID uuid.UUID) ([]model.OrderItem, error) {
	query := `SELECT id, order_id, product_id, quantity, price
			  FROM order_items WHERE order_id = $1`

	rows, err := r.db.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order items: %w", err)
	}
	defer rows.Close()

	var items []model.OrderItem
	for rows.Next() {
		var item model.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.Price); err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) (model.Order, error) {
	query := `UPDATE orders SET status = $2 WHERE id = $1
			  RETURNING id, user_id, order_date, total_price, status`

	var order model.Order
	err := r.db.QueryRow(ctx, query, id, string(status)).Scan(
		&order.ID, &order.UserID, &order.OrderDate, &order.TotalPrice, &order.Status,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Order{}, model.ErrNotFound
		}
		return model.Order{}, fmt.Errorf("failed to update order status: %w", err)
	}

	return order, nil
}

func scanOrders(rows pgx.Rows) ([]model.Order, error) {
	var orders []model.Order
	for rows.Next() {
		var order model.Order
		if err := rows.Scan(&order.ID, &order.UserID, &order.OrderDate, &order.TotalPrice, &order.Status); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
