package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/udon-shop-server/internal/logger"
	"github.com/dtroode/udon-shop-server/internal/model"
)

// CreateProductParams contains parameters to create a product.
type CreateProductParams struct {
	Name        string
	Description string
	Price       int64
	Stock       int
	ImageURL    string
}

// Catalog manages products and their images.
type Catalog struct {
	productStore model.ProductStore
	storage      model.ObjectStorage
	logger       *logger.Logger
}

func NewCatalog(productStore model.ProductStore, storage model.ObjectStorage, logger *logger.Logger) *Catalog {
	return &Catalog{
		productStore: productStore,
		storage:      storage,
		logger:       logger,
	}
}

// CreateProduct validates the parameters and stores a new product.
func (c *Catalog) CreateProduct(ctx context.Context, params CreateProductParams) (model.Product, error) {
	if params.Name == "" || params.Price < 0 || params.Stock < 0 {
		return model.Product{}, model.ErrValidation
	}

	now := time.Now().UTC()
	product := model.Product{
		ID:          uuid.New(),
		Name:        params.Name,
		Description: params.Description,
		Price:       params.Price,
		Stock:       params.Stock,
		ImageURL:    params.ImageURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	saved, err := c.productStore.Create(ctx, product)
	if err != nil {
		c.logger.Error("Catalog service: failed to create product",
			"name", params.Name,
			"error", err.Error())
		return model.Product{}, fmt.Errorf("failed to create product: %w", err)
	}

	return saved, nil
}

// GetProduct returns the product or ErrNotFound.
func (c *Catalog) GetProduct(ctx context.Context, id uuid.UUID) (model.Product, error) {
	product, err := c.productStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Product{}, model.ErrNotFound
		}
		return model.Product{}, fmt.Errorf("failed to get product by id: %w", err)
	}

	return product, nil
}

// ListProducts returns the full catalog.
func (c *Catalog) ListProducts(ctx context.Context) ([]model.Product, error) {
	products, err := c.productStore.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	return products, nil
}

// UpdateProduct merges the given fields into the stored product.
func (c *Catalog) UpdateProduct(ctx context.Context, id uuid.UUID, update model.ProductUpdate) (model.Product, error) {
	if update.Price != nil && *update.Price < 0 {
		return model.Product{}, model.ErrValidation
	}
	if update.Stock != nil && *update.Stock < 0 {
		return model.Product{}, model.ErrValidation
	}

	product, err := c.productStore.Update(ctx, id, update)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Product{}, model.ErrNotFound
		}
		c.logger.Error("Catalog service: failed to update product",
			"product_id", id,
			"error", err.Error())
		return model.Product{}, fmt.Errorf("failed to update product: %w", err)
	}

	return product, nil
}

// DeleteProduct removes the product and its image object, if any.
func (c *Catalog) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if err := c.productStore.Delete(ctx, id); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.ErrNotFound
		}
		c.logger.Error("Catalog service: failed to delete product",
			"product_id", id,
			"error", err.Error())
		return fmt.Errorf("failed to delete product: %w", err)
	}

	key := imageKey(id)
	exists, err := c.storage.Exists(ctx, key)
	if err != nil {
		c.logger.Warn("Catalog service: failed to check product image",
			"product_id", id,
			"error", err.Error())
		return nil
	}
	if exists {
		if err := c.storage.Delete(ctx, key); err != nil {
			c.logger.Warn("Catalog service: failed to delete product image",
				"product_id", id,
				"error", err.Error())
		}
	}

	return nil
}

// UploadProductImage stores the image bytes and records the image
// reference on the product.
func (c *Catalog) UploadProductImage(ctx context.Context, id uuid.UUID, reader io.Reader) (model.Product, error) {
	if _, err := c.productStore.GetByID(ctx, id); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Product{}, model.ErrNotFound
		}
		return model.Product{}, fmt.Errorf("failed to get product by id: %w", err)
	}

	key := imageKey(id)
	if err := c.storage.Upload(ctx, key, reader); err != nil {
		c.logger.Error("Catalog service: failed to upload product image",
			"product_id", id,
			"error", err.Error())
		return model.Product{}, fmt.Errorf("failed to upload product image: %w", err)
	}

	imageURL := "/images/" + id.String()
	return c.UpdateProduct(ctx, id, model.ProductUpdate{ImageURL: &imageURL})
}

// GetProductImage returns a reader over the stored image bytes.
func (c *Catalog) GetProductImage(ctx context.Context, id uuid.UUID) (io.ReadCloser, error) {
	key := imageKey(id)

	exists, err := c.storage.Exists(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to check product image: %w", err)
	}
	if !exists {
		return nil, model.ErrNotFound
	}

	reader, err := c.storage.Download(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to download product image: %w", err)
	}

	return reader, nil
}

// InitSampleData seeds the catalog with four products when it is
// empty. Calling it again is a no-op.
func (c *Catalog) InitSampleData(ctx context.Context) error {
	existing, err := c.productStore.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to check existing products: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	samples := []CreateProductParams{
		{
			Name:        "讃岐風創作うどん",
			Description: "コシの強い讃岐うどんに特製だしと季節の野菜をトッピング",
			Price:       1200,
			Stock:       50,
			ImageURL:    "/images/sanuki-udon.jpg",
		},
		{
			Name:        "明太子クリームうどん",
			Description: "濃厚なクリームソースに明太子の辛味がアクセント",
			Price:       1400,
			Stock:       30,
			ImageURL:    "/images/mentaiko-cream-udon.jpg",
		},
		{
			Name:        "カレーうどん",
			Description: "スパイシーなカレールーとうどんの絶妙なハーモニー",
			Price:       1300,
			Stock:       40,
			ImageURL:    "/images/curry-udon.jpg",
		},
		{
			Name:        "海鮮うどん",
			Description: "新鮮な海の幸をふんだんに使った贅沢うどん",
			Price:       1800,
			Stock:       20,
			ImageURL:    "/images/seafood-udon.jpg",
		},
	}

	for _, params := range samples {
		if _, err := c.CreateProduct(ctx, params); err != nil {
			return fmt.Errorf("failed to seed sample product: %w", err)
		}
	}

	c.logger.Info("Catalog service: seeded sample products",
		"count", len(samples))

	return nil
}

func imageKey(id uuid.UUID) string {
	return "products/" + id.String()
}
