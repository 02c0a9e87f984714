package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/dtroode/udon-shop-server/internal/logger"
	"github.com/dtroode/udon-shop-server/internal/model"
)

// Carts derives cart managers from a base key, one key per user, the
// same way Sessions does for session blobs.
type Carts struct {
	kv      model.KV
	baseKey string
	logger  *logger.Logger
}

// NewCarts creates a cart manager factory over kv.
func NewCarts(kv model.KV, baseKey string, logger *logger.Logger) *Carts {
	return &Carts{kv: kv, baseKey: baseKey, logger: logger}
}

// For returns the cart manager scoped to the given user.
func (c *Carts) For(userID uuid.UUID) *Cart {
	return NewCart(c.kv, c.baseKey+":"+userID.String(), c.logger)
}

// Cart manages the persisted cart blob. No state is kept between
// calls: every operation reads the blob, mutates it and writes it
// back with freshly recomputed totals. Quantities are not checked
// against product stock here; that is the caller's concern.
type Cart struct {
	kv     model.KV
	key    string
	logger *logger.Logger
}

// NewCart creates a cart manager over kv, persisting under key.
func NewCart(kv model.KV, key string, logger *logger.Logger) *Cart {
	return &Cart{
		kv:     kv,
		key:    key,
		logger: logger,
	}
}

// Get returns the current cart. Missing or corrupt data reads as an
// empty cart rather than an error.
func (c *Cart) Get(ctx context.Context) model.Cart {
	data, err := c.kv.Get(ctx, c.key)
	if err != nil {
		return calculateTotals(nil)
	}

	var cart model.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		c.logger.Warn("Cart service: discarding corrupt cart blob",
			"key", c.key,
			"error", err.Error())
		return calculateTotals(nil)
	}

	return calculateTotals(cart.Items)
}

// Add puts quantity units of product into the cart. If the product is
// already present its quantity is incremented; otherwise a new entry
// with a full product snapshot is appended.
func (c *Cart) Add(ctx context.Context, product model.Product, quantity int) (model.Cart, error) {
	cart := c.Get(ctx)

	found := false
	for i := range cart.Items {
		if cart.Items[i].Product.ID == product.ID {
			cart.Items[i].Quantity += quantity
			found = true
			break
		}
	}
	if !found {
		cart.Items = append(cart.Items, model.CartItem{Product: product, Quantity: quantity})
	}

	return c.save(ctx, cart.Items)
}

// UpdateQuantity sets the quantity for a product exactly. A quantity
// of zero or less removes the entry; an absent product is a no-op.
func (c *Cart) UpdateQuantity(ctx context.Context, productID uuid.UUID, quantity int) (model.Cart, error) {
	cart := c.Get(ctx)

	for i := range cart.Items {
		if cart.Items[i].Product.ID != productID {
			continue
		}
		if quantity <= 0 {
			cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
		} else {
			cart.Items[i].Quantity = quantity
		}
		break
	}

	return c.save(ctx, cart.Items)
}

// Remove filters the product's entry out of the cart.
func (c *Cart) Remove(ctx context.Context, productID uuid.UUID) (model.Cart, error) {
	cart := c.Get(ctx)

	items := cart.Items[:0]
	for _, item := range cart.Items {
		if item.Product.ID != productID {
			items = append(items, item)
		}
	}

	return c.save(ctx, items)
}

// Clear resets the cart to empty and persists it.
func (c *Cart) Clear(ctx context.Context) (model.Cart, error) {
	return c.save(ctx, nil)
}

// ItemCount returns the total quantity across all entries.
func (c *Cart) ItemCount(ctx context.Context) int {
	return c.Get(ctx).TotalItems
}

// Contains reports whether the product has an entry in the cart.
func (c *Cart) Contains(ctx context.Context, productID uuid.UUID) bool {
	for _, item := range c.Get(ctx).Items {
		if item.Product.ID == productID {
			return true
		}
	}
	return false
}

// ProductQuantity returns the quantity of the product in the cart,
// zero if absent.
func (c *Cart) ProductQuantity(ctx context.Context, productID uuid.UUID) int {
	for _, item := range c.Get(ctx).Items {
		if item.Product.ID == productID {
			return item.Quantity
		}
	}
	return 0
}

func (c *Cart) save(ctx context.Context, items []model.CartItem) (model.Cart, error) {
	cart := calculateTotals(items)

	data, err := json.Marshal(cart)
	if err != nil {
		return model.Cart{}, fmt.Errorf("failed to marshal cart: %w", err)
	}

	if err := c.kv.Set(ctx, c.key, data); err != nil {
		c.logger.Error("Cart service: failed to persist cart",
			"key", c.key,
			"error", err.Error())
		return model.Cart{}, fmt.Errorf("failed to persist cart: %w", err)
	}

	return cart, nil
}

func calculateTotals(items []model.CartItem) model.Cart {
	if items == nil {
		items = []model.CartItem{}
	}

	var totalPrice int64
	var totalItems int
	for _, item := range items {
		totalPrice += item.Product.Price * int64(item.Quantity)
		totalItems += item.Quantity
	}

	return model.Cart{
		Items:      items,
		TotalPrice: totalPrice,
		TotalItems: totalItems,
	}
}
