package handler

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/dtroode/udon-shop-server/internal/logger"
	"github.com/dtroode/udon-shop-server/internal/model"
	"github.com/dtroode/udon-shop-server/internal/service"
)

// Cart exposes the authenticated user's cart. Quantity clamping to
// available stock happens here, on the presentation edge; the cart
// service itself does not validate stock.
type Cart struct {
	carts      *service.Carts
	catalog    *service.Catalog
	ctxManager model.ContextManager
	logger     *logger.Logger
}

func NewCart(carts *service.Carts, catalog *service.Catalog, ctxManager model.ContextManager, logger *logger.Logger) *Cart {
	return &Cart{
		carts:      carts,
		catalog:    catalog,
		ctxManager: ctxManager,
		logger:     logger,
	}
}

type addCartItemRequest struct {
	ProductID uuid.UUID `json:"productId"`
	Quantity  int       `json:"quantity"`
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

func (h *Cart) userCart(r *http.Request) (*service.Cart, bool) {
	userID, ok := h.ctxManager.GetUserIDFromContext(r.Context())
	if !ok {
		return nil, false
	}
	return h.carts.For(userID), true
}

// Get handles GET /api/cart.
func (h *Cart) Get(w http.ResponseWriter, r *http.Request) {
	cart, ok := h.userCart(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	writeJSON(w, http.StatusOK, cart.Get(r.Context()))
}

// AddItem handles POST /api/cart/items.
func (h *Cart) AddItem(w http.ResponseWriter, r *http.Request) {
	cart, ok := h.userCart(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var req addCartItemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	product, err := h.catalog.GetProduct(r.Context(), req.ProductID)
	if err != nil {
		handleError(w, err)
		return
	}

	quantity := req.Quantity
	if quantity < 1 {
		quantity = 1
	}
	if held := cart.ProductQuantity(r.Context(), product.ID); held+quantity > product.Stock {
		quantity = product.Stock - held
	}
	if quantity < 1 {
		writeError(w, http.StatusConflict, "not enough stock")
		return
	}

	updated, err := cart.Add(r.Context(), product, quantity)
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// UpdateItem handles PUT /api/cart/items/{id}.
func (h *Cart) UpdateItem(w http.ResponseWriter, r *http.Request) {
	cart, ok := h.userCart(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	productID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	var req updateCartItemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	quantity := req.Quantity
	if quantity > 0 {
		product, err := h.catalog.GetProduct(r.Context(), productID)
		if err == nil && quantity > product.Stock {
			quantity = product.Stock
		}
	}

	updated, err := cart.UpdateQuantity(r.Context(), productID, quantity)
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// RemoveItem handles DELETE /api/cart/items/{id}.
func (h *Cart) RemoveItem(w http.ResponseWriter, r *http.Request) {
	cart, ok := h.userCart(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	productID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	updated, err := cart.Remove(r.Context(), productID)
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// Clear handles DELETE /api/cart.
func (h *Cart) Clear(w http.ResponseWriter, r *http.Request) {
	cart, ok := h.userCart(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	updated, err := cart.Clear(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}
