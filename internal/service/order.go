package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/udon-shop-server/internal/logger"
	"github.com/dtroode/udon-shop-server/internal/model"
)

// ErrEmptyCart is returned when checkout is attempted with no items.
var ErrEmptyCart = errors.New("cart is empty")

// OrderWithItems bundles an order with its line items for read paths.
type OrderWithItems struct {
	Order model.Order       `json:"order"`
	Items []model.OrderItem `json:"items"`
}

// Orders handles checkout and admin order management.
type Orders struct {
	orderStore   model.OrderStore
	productStore model.ProductStore
	logger       *logger.Logger
}

func NewOrders(orderStore model.OrderStore, productStore model.ProductStore, logger *logger.Logger) *Orders {
	return &Orders{
		orderStore:   orderStore,
		productStore: productStore,
		logger:       logger,
	}
}

// Checkout turns the given cart into an order. Quantities are
// clamped to the product's current stock, the order and its items are
// written in one transaction, stock is decremented and the cart is
// cleared. Returns ErrEmptyCart when there is nothing to order.
func (o *Orders) Checkout(ctx context.Context, userID uuid.UUID, userCart *Cart) (OrderWithItems, error) {
	cart := userCart.Get(ctx)
	if len(cart.Items) == 0 {
		return OrderWithItems{}, ErrEmptyCart
	}

	orderID := uuid.New()

	var items []model.OrderItem
	var total int64
	for _, entry := range cart.Items {
		// The cart snapshot may be stale; re-read the product and
		// clamp to what is actually available.
		product, err := o.productStore.GetByID(ctx, entry.Product.ID)
		if err != nil {
			if errors.Is(err, model.ErrNotFound) {
				o.logger.Warn("Order service: skipping vanished product",
					"product_id", entry.Product.ID)
				continue
			}
			return OrderWithItems{}, fmt.Errorf("failed to get product: %w", err)
		}

		quantity := entry.Quantity
		if quantity > product.Stock {
			quantity = product.Stock
		}
		if quantity <= 0 {
			continue
		}

		items = append(items, model.OrderItem{
			ID:        uuid.New(),
			OrderID:   orderID,
			ProductID: product.ID,
			Quantity:  quantity,
			Price:     product.Price,
		})
		total += product.Price * int64(quantity)
	}

	if len(items) == 0 {
		return OrderWithItems{}, ErrEmptyCart
	}

	order := model.Order{
		ID:         orderID,
		UserID:     userID,
		OrderDate:  time.Now().UTC(),
		TotalPrice: total,
		Status:     model.OrderStatusPending,
	}

	savedOrder, err := o.orderStore.Create(ctx, order, items)
	if err != nil {
		o.logger.Error("Order service: failed to create order",
			"user_id", userID,
			"error", err.Error())
		return OrderWithItems{}, fmt.Errorf("failed to create order: %w", err)
	}

	for _, item := range items {
		product, err := o.productStore.GetByID(ctx, item.ProductID)
		if err != nil {
			o.logger.Warn("Order service: failed to re-read product for stock update",
				"product_id", item.ProductID,
				"error", err.Error())
			continue
		}
		stock := product.Stock - item.Quantity
		if stock < 0 {
			stock = 0
		}
		if _, err := o.productStore.Update(ctx, item.ProductID, model.ProductUpdate{Stock: &stock}); err != nil {
			o.logger.Warn("Order service: failed to decrement stock",
				"product_id", item.ProductID,
				"error", err.Error())
		}
	}

	if _, err := userCart.Clear(ctx); err != nil {
		o.logger.Warn("Order service: failed to clear cart after checkout",
			"user_id", userID,
			"error", err.Error())
	}

	o.logger.Info("Order service: order created",
		"order_id", savedOrder.ID,
		"user_id", userID,
		"total_price", savedOrder.TotalPrice)

	return OrderWithItems{Order: savedOrder, Items: items}, nil
}

// Get returns the order with its line items.
func (o *Orders) Get(ctx context.Context, id uuid.UUID) (OrderWithItems, error) {
	order, err := o.orderStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return OrderWithItems{}, model.ErrNotFound
		}
		return OrderWithItems{}, fmt.Errorf("failed to get order: %w", err)
	}

	items, err := o.orderStore.GetItemsByOrderID(ctx, id)
	if err != nil {
		return OrderWithItems{}, fmt.Errorf("failed to get order items: %w", err)
	}

	return OrderWithItems{Order: order, Items: items}, nil
}

// ListAll returns every order, newest first.
func (o *Orders) ListAll(ctx context.Context) ([]model.Order, error) {
	orders, err := o.orderStore.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	return orders, nil
}

// ListByUser returns the user's orders, newest first.
func (o *Orders) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Order, error) {
	orders, err := o.orderStore.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders by user: %w", err)
	}

	return orders, nil
}

// UpdateStatus moves the order to the given status, enforcing the
// allowed progression.
func (o *Orders) UpdateStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) (model.Order, error) {
	if !status.Valid() {
		return model.Order{}, model.ErrValidation
	}

	order, err := o.orderStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Order{}, model.ErrNotFound
		}
		return model.Order{}, fmt.Errorf("failed to get order: %w", err)
	}

	if !order.Status.CanTransitionTo(status) {
		return model.Order{}, model.ErrInvalidTransition
	}

	updated, err := o.orderStore.UpdateStatus(ctx, id, status)
	if err != nil {
		o.logger.Error("Order service: failed to update order status",
			"order_id", id,
			"status", status,
			"error", err.Error())
		return model.Order{}, fmt.Errorf("failed to update order status: %w", err)
	}

	o.logger.Info("Order service: order status updated",
		"order_id", id,
		"from", order.Status,
		"to", status)

	return updated, nil
}
