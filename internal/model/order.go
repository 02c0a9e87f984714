package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// OrderStore defines persistence operations for orders and their line items.
type OrderStore interface {
	// Create writes the order and all of its line items in a single transaction.
	Create(ctx context.Context, order Order, items []OrderItem) (Order, error)
	GetByID(ctx context.Context, id uuid.UUID) (Order, error)
	GetAll(ctx context.Context) ([]Order, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]Order, error)
	GetItemsByOrderID(ctx context.Context, orderID uuid.UUID) ([]OrderItem, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status OrderStatus) (Order, error)
}

// Order represents a placed order.
type Order struct {
	ID         uuid.UUID   `json:"id"`
	UserID     uuid.UUID   `json:"userId"`
	OrderDate  time.Time   `json:"orderDate"`
	TotalPrice int64       `json:"totalPrice"`
	Status     OrderStatus `json:"status"`
}

// OrderItem is an immutable line item with the unit price captured at
// order time.
type OrderItem struct {
	ID        uuid.UUID `json:"id"`
	OrderID   uuid.UUID `json:"orderId"`
	ProductID uuid.UUID `json:"productId"`
	Quantity  int       `json:"quantity"`
	Price     int64     `json:"price"`
}

// OrderStatus enumerates order states.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	OrderStatusShipped   OrderStatus = "SHIPPED"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// Valid reports whether s is a known status value.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether the status may move to next. The
// progression is linear; cancellation is reachable from PENDING and
// CONFIRMED only.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	switch s {
	case OrderStatusPending:
		return next == OrderStatusConfirmed || next == OrderStatusCancelled
	case OrderStatusConfirmed:
		return next == OrderStatusShipped || next == OrderStatusCancelled
	case OrderStatusShipped:
		return next == OrderStatusDelivered
	}
	return false
}
