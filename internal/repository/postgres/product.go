package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dtroode/udon-shop-server/internal/model"
)

var _ model.ProductStore = (*ProductRepository)(nil)

type ProductRepository struct {
	db *Connection
}

func NewProductRepository(db *Connection) *ProductRepository {
	return &ProductRepository{
		db: db,
	}
}

func (r *ProductRepository) Create(ctx context.Context, product model.Product) (model.Product, error) {
	query := `INSERT INTO products (id, name, description, price, stock, image_url, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  RETURNING id, name, description, price, stock, image_url, created_at, updated_at`

	var saved model.Product
	err := r.db.QueryRow(ctx, query,
		product.ID, product.Name, product.Description, product.Price,
		product.Stock, product.ImageURL, product.CreatedAt, product.UpdatedAt,
	).Scan(
		&saved.ID, &saved.Name, &saved.Description, &saved.Price,
		&saved.Stock, &saved.ImageURL, &saved.CreatedAt, &saved.UpdatedAt,
	)
	if err != nil {
		return model.Product{}, fmt.Errorf("failed to create product: %w", err)
	}

	return saved, nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Product, error) {
	var product model.Product
	query := `SELECT id, name, description, price, stock, image_url, created_at, updated_at
			  FROM products WHERE id = $1`

	err := r.db.QueryRow(ctx, query, id).Scan(
		&product.ID, &product.Name, &product.Description, &product.Price,
		&product.Stock, &product.ImageURL, &product.CreatedAt, &product.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Product{}, model.ErrNotFound
		}
		return model.Product{}, fmt.Errorf("failed to get product by id: %w", err)
	}

	return product, nil
}

func (r *ProductRepository) GetAll(ctx context.Context) ([]model.Product, error) {
	query := `SELECT id, name, description, price, stock, image_url, created_at, updated_at
			  FROM products ORDER BY created_at ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get products: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		var product model.Product
		err := rows.Scan(
			&product.ID, &product.Name, &product.Description, &product.Price,
			&product.Stock, &product.ImageURL, &product.CreatedAt, &product.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return products, nil
}

// Update merges the non-nil fields of update into the stored row.
func (r *ProductRepository) Update(ctx context.Context, id uuid.UUID, update model.ProductUpdate) (model.Product, error) {
	query := `UPDATE products SET
				  name = COALESCE($2, name),
				  description = COALESCE($3, description),
				  price = COALESCE($4, price),
				  stock = COALESCE($5, stock),
				  image_url = COALESCE($6, image_url),
				  updated_at = NOW()
			  WHERE id = $1
			  RETURNING id, name, description, price, stock, image_url, created_at, updated_at`

	var product model.Product
	err := r.db.QueryRow(ctx, query, id,
		update.Name, update.Description, update.Price, update.Stock, update.ImageURL,
	).Scan(
		&product.ID, &product.Name, &product.Description, &product.Price,
		&product.Stock, &product.ImageURL, &product.CreatedAt, &product.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Product{}, model.ErrNotFound
		}
		return model.Product{}, fmt.Errorf("failed to update product: %w", err)
	}

	return product, nil
}

func (r *ProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM products WHERE id = $1`

	cmd, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	return nil
}
