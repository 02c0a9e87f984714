package handler

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/dtroode/udon-shop-server/internal/logger"
	"github.com/dtroode/udon-shop-server/internal/model"
	"github.com/dtroode/udon-shop-server/internal/service"
)

// Order exposes checkout for users and order management for admins.
type Order struct {
	orders     *service.Orders
	carts      *service.Carts
	ctxManager model.ContextManager
	logger     *logger.Logger
}

func NewOrder(orders *service.Orders, carts *service.Carts, ctxManager model.ContextManager, logger *logger.Logger) *Order {
	return &Order{
		orders:     orders,
		carts:      carts,
		ctxManager: ctxManager,
		logger:     logger,
	}
}

type updateOrderStatusRequest struct {
	Status model.OrderStatus `json:"status"`
}

// Checkout handles POST /api/checkout.
func (h *Order) Checkout(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.ctxManager.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	result, err := h.orders.Checkout(r.Context(), userID, h.carts.For(userID))
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, result)
}

// ListMine handles GET /api/orders.
func (h *Order) ListMine(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.ctxManager.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	orders, err := h.orders.ListByUser(r.Context(), userID)
	if err != nil {
		handleError(w, err)
		return
	}
	if orders == nil {
		orders = []model.Order{}
	}

	writeJSON(w, http.StatusOK, orders)
}

// Get handles GET /api/orders/{id}.
func (h *Order) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.ctxManager.GetUserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	result, err := h.orders.Get(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	// Hide other users' orders the same way a miss looks.
	if result.Order.UserID != userID {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// ListAll handles GET /api/admin/orders.
func (h *Order) ListAll(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.ListAll(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}
	if orders == nil {
		orders = []model.Order{}
	}

	writeJSON(w, http.StatusOK, orders)
}

// UpdateStatus handles PUT /api/admin/orders/{id}/status.
func (h *Order) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	var req updateOrderStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	order, err := h.orders.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, order)
}
