package provider

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dtroode/udon-shop-server/internal/logger"
	"github.com/dtroode/udon-shop-server/internal/model"
)

// Source is a product data source. Two implementations exist: the
// live store and the static fixture set; one is chosen at startup.
type Source interface {
	Products(ctx context.Context) ([]model.Product, error)
	Product(ctx context.Context, id uuid.UUID) (model.Product, error)
	Users(ctx context.Context) ([]model.Identity, error)
	Orders(ctx context.Context) ([]model.Order, error)
}

var _ Source = (*StoreSource)(nil)

// StoreSource serves live data from the repositories.
type StoreSource struct {
	productStore model.ProductStore
	userStore    model.UserStore
	orderStore   model.OrderStore
}

func NewStoreSource(productStore model.ProductStore, userStore model.UserStore, orderStore model.OrderStore) *StoreSource {
	return &StoreSource{
		productStore: productStore,
		userStore:    userStore,
		orderStore:   orderStore,
	}
}

func (s *StoreSource) Products(ctx context.Context) ([]model.Product, error) {
	return s.productStore.GetAll(ctx)
}

func (s *StoreSource) Product(ctx context.Context, id uuid.UUID) (model.Product, error) {
	return s.productStore.GetByID(ctx, id)
}

func (s *StoreSource) Users(_ context.Context) ([]model.Identity, error) {
	// The user store has no scan operation; the admin view only ever
	// lists fixture users. Live user listing is not exposed.
	return nil, fmt.Errorf("user listing is not supported by the live store")
}

func (s *StoreSource) Orders(ctx context.Context) ([]model.Order, error) {
	return s.orderStore.GetAll(ctx)
}

// Provider serves product data from the configured source and falls
// back to the fixture set when the source errors. Fallback is logged
// once per call and never propagated.
type Provider struct {
	source   Source
	fallback *FixtureSource
	logger   *logger.Logger
}

// New creates a provider over the given source.
func New(source Source, logger *logger.Logger) *Provider {
	return &Provider{
		source:   source,
		fallback: NewFixtureSource(),
		logger:   logger,
	}
}

// GetProducts returns all products from the source, or the fixture
// set if the source is unavailable.
func (p *Provider) GetProducts(ctx context.Context) []model.Product {
	products, err := p.source.Products(ctx)
	if err != nil {
		p.logger.Warn("Data provider: source unavailable, using fixture data",
			"error", err.Error())
		products, _ = p.fallback.Products(ctx)
	}
	return products
}

// GetProduct returns the product by ID. A source failure falls back
// to the fixture set; a miss in either returns ErrNotFound.
func (p *Provider) GetProduct(ctx context.Context, id uuid.UUID) (model.Product, error) {
	product, err := p.source.Product(ctx, id)
	if err == nil {
		return product, nil
	}
	if errors.Is(err, model.ErrNotFound) {
		return model.Product{}, model.ErrNotFound
	}

	p.logger.Warn("Data provider: source unavailable, using fixture data",
		"product_id", id,
		"error", err.Error())
	return p.fallback.Product(ctx, id)
}

// GetUsers returns the source's users, falling back to fixtures.
func (p *Provider) GetUsers(ctx context.Context) []model.Identity {
	users, err := p.source.Users(ctx)
	if err != nil {
		p.logger.Warn("Data provider: source unavailable, using fixture data",
			"error", err.Error())
		users, _ = p.fallback.Users(ctx)
	}
	return users
}

// GetOrders returns the source's orders, falling back to fixtures.
func (p *Provider) GetOrders(ctx context.Context) []model.Order {
	orders, err := p.source.Orders(ctx)
	if err != nil {
		p.logger.Warn("Data provider: source unavailable, using fixture data",
			"error", err.Error())
		orders, _ = p.fallback.Orders(ctx)
	}
	return orders
}
