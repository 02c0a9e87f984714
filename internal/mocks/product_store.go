package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dtroode/udon-shop-server/internal/model"
)

// ProductStore is a testify mock for model.ProductStore.
type ProductStore struct {
	mock.Mock
}

func (m *ProductStore) Create(ctx context.Context, product model.Product) (model.Product, error) {
	args := m.Called(ctx, product)
	return args.Get(0).(model.Product), args.Error(1)
}

func (m *ProductStore) GetByID(ctx context.Context, id uuid.UUID) (model.Product, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Product), args.Error(1)
}

func (m *ProductStore) GetAll(ctx context.Context) ([]model.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *ProductStore) Update(ctx context.Context, id uuid.UUID, update model.ProductUpdate) (model.Product, error) {
	args := m.Called(ctx, id, update)
	return args.Get(0).(model.Product), args.Error(1)
}

func (m *ProductStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
