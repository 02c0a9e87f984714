package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dtroode/udon-shop-server/internal/model"
)

// OrderStore is a testify mock for model.OrderStore.
type OrderStore struct {
	mock.Mock
}

func (m *OrderStore) Create(ctx context.Context, order model.Order, items []model.OrderItem) (model.Order, error) {
	args := m.Called(ctx, order, items)
	return args.Get(0).(model.Order), args.Error(1)
}

func (m *OrderStore) GetByID(ctx context.Context, id uuid.UUID) (model.Order, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Order), args.Error(1)
}

func (m *OrderStore) GetAll(ctx context.Context) ([]model.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Order), args.Error(1)
}

func (m *OrderStore) GetByUserID(ctx context.Context, userID uuid.UUID) ([]model.Order, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Order), args.Error(1)
}

func (m *OrderStore) GetItemsByOrderID(ctx context.Context, orderID uuid.UUID) ([]model.OrderItem, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.OrderItem), args.Error(1)
}

func (m *OrderStore) UpdateStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) (model.Order, error) {
	args := m.Called(ctx, id, status)
	return args.Get(0).(model.Order), args.Error(1)
}
