package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ProductStore defines persistence operations for products.
type ProductStore interface {
	Create(ctx context.Context, product Product) (Product, error)
	GetByID(ctx context.Context, id uuid.UUID) (Product, error)
	GetAll(ctx context.Context) ([]Product, error)
	Update(ctx context.Context, id uuid.UUID, update ProductUpdate) (Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Product represents a catalog product. Price is in integer currency units.
type Product struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       int64     `json:"price"`
	Stock       int       `json:"stock"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ProductUpdate carries a partial set of product fields.
// Nil fields are left untouched by Update.
type ProductUpdate struct {
	Name        *string
	Description *string
	Price       *int64
	Stock       *int
	ImageURL    *string
}
