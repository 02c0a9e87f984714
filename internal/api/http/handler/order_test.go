package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	httpctx "github.com/dtroode/udon-shop-server/internal/api/http/context"
	"github.com/dtroode/udon-shop-server/internal/kv"
	"github.com/dtroode/udon-shop-server/internal/mocks"
	"github.com/dtroode/udon-shop-server/internal/model"
	"github.com/dtroode/udon-shop-server/internal/service"
	"github.com/dtroode/udon-shop-server/internal/testutil"
)

type orderFixture struct {
	handler      *Order
	carts        *service.Carts
	orderStore   *mocks.OrderStore
	productStore *mocks.ProductStore
	ctxMgr       *httpctx.Manager
	userID       uuid.UUID
}

func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()
	orderStore := &mocks.OrderStore{}
	productStore := &mocks.ProductStore{}
	orderService := service.NewOrders(orderStore, productStore, testutil.MakeNoopLogger())
	carts := service.NewCarts(kv.NewMemory(), "test:cart", testutil.MakeNoopLogger())
	ctxMgr := httpctx.NewManager()

	return &orderFixture{
		handler:      NewOrder(orderService, carts, ctxMgr, testutil.MakeNoopLogger()),
		carts:        carts,
		orderStore:   orderStore,
		productStore: productStore,
		ctxMgr:       ctxMgr,
		userID:       uuid.New(),
	}
}

func (f *orderFixture) authedRequest(method, target, body string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	return req.WithContext(f.ctxMgr.SetUserIDToContext(req.Context(), f.userID))
}

func TestOrderHandler_Checkout(t *testing.T) {
	f := newOrderFixture(t)

	product := model.Product{ID: uuid.New(), Name: "かけうどん", Price: 800, Stock: 10}
	_, err := f.carts.For(f.userID).Add(httptest.NewRequest(http.MethodGet, "/", nil).Context(), product, 2)
	require.NoError(t, err)

	f.productStore.On("GetByID", mock.Anything, product.ID).Return(product, nil)
	f.productStore.On("Update", mock.Anything, mock.Anything, mock.Anything).Return(model.Product{}, nil)
	f.orderStore.On("Create", mock.Anything, mock.Anything, mock.Anything).
		Return(model.Order{ID: uuid.New(), UserID: f.userID, TotalPrice: 1600, Status: model.OrderStatusPending}, nil)

	req := f.authedRequest(http.MethodPost, "/api/checkout", "")
	rec := httptest.NewRecorder()

	f.handler.Checkout(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp service.OrderWithItems
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, int64(1600), resp.Order.TotalPrice)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, 2, resp.Items[0].Quantity)
}

func TestOrderHandler_Checkout_EmptyCart(t *testing.T) {
	f := newOrderFixture(t)

	req := f.authedRequest(http.MethodPost, "/api/checkout", "")
	rec := httptest.NewRecorder()

	f.handler.Checkout(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOrderHandler_Get_OwnOrder(t *testing.T) {
	f := newOrderFixture(t)

	orderID := uuid.New()
	order := model.Order{ID: orderID, UserID: f.userID, TotalPrice: 800, Status: model.OrderStatusPending}
	f.orderStore.On("GetByID", mock.Anything, orderID).Return(order, nil)
	f.orderStore.On("GetItemsByOrderID", mock.Anything, orderID).Return([]model.OrderItem{}, nil)

	req := f.authedRequest(http.MethodGet, "/api/orders/"+orderID.String(), "")
	req.SetPathValue("id", orderID.String())
	rec := httptest.NewRecorder()

	f.handler.Get(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestOrderHandler_Get_OtherUsersOrderLooksLikeMiss(t *testing.T) {
	f := newOrderFixture(t)

	orderID := uuid.New()
	order := model.Order{ID: orderID, UserID: uuid.New(), TotalPrice: 800, Status: model.OrderStatusPending}
	f.orderStore.On("GetByID", mock.Anything, orderID).Return(order, nil)
	f.orderStore.On("GetItemsByOrderID", mock.Anything, orderID).Return([]model.OrderItem{}, nil)

	req := f.authedRequest(http.MethodGet, "/api/orders/"+orderID.String(), "")
	req.SetPathValue("id", orderID.String())
	rec := httptest.NewRecorder()

	f.handler.Get(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestOrderHandler_ListMine_EmptyIsArray(t *testing.T) {
	f := newOrderFixture(t)

	f.orderStore.On("GetByUserID", mock.Anything, f.userID).Return(nil, nil)

	req := f.authedRequest(http.MethodGet, "/api/orders", "")
	rec := httptest.NewRecorder()

	f.handler.ListMine(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
}

func TestOrderHandler_UpdateStatus(t *testing.T) {
	f := newOrderFixture(t)

	orderID := uuid.New()
	f.orderStore.On("GetByID", mock.Anything, orderID).
		Return(model.Order{ID: orderID, Status: model.OrderStatusPending}, nil)
	f.orderStore.On("UpdateStatus", mock.Anything, orderID, model.OrderStatusConfirmed).
		Return(model.Order{ID: orderID, Status: model.OrderStatusConfirmed}, nil)

	req := f.authedRequest(http.MethodPut, "/api/admin/orders/"+orderID.String()+"/status",
		`{"status":"CONFIRMED"}`)
	req.SetPathValue("id", orderID.String())
	rec := httptest.NewRecorder()

	f.handler.UpdateStatus(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var order model.Order
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&order))
	assert.Equal(t, model.OrderStatusConfirmed, order.Status)
}

func TestOrderHandler_UpdateStatus_InvalidTransition(t *testing.T) {
	f := newOrderFixture(t)

	orderID := uuid.New()
	f.orderStore.On("GetByID", mock.Anything, orderID).
		Return(model.Order{ID: orderID, Status: model.OrderStatusDelivered}, nil)

	req := f.authedRequest(http.MethodPut, "/api/admin/orders/"+orderID.String()+"/status",
		`{"status":"PENDING"}`)
	req.SetPathValue("id", orderID.String())
	rec := httptest.NewRecorder()

	f.handler.UpdateStatus(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}
