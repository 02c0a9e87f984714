package router

import (
	"net/http"

	"github.com/dtroode/udon-shop-server/internal/api/http/handler"
	"github.com/dtroode/udon-shop-server/internal/api/http/middleware"
	"github.com/dtroode/udon-shop-server/internal/logger"
)

// Router assembles handlers and middleware into an http.Handler.
type Router struct {
	auth         *handler.Auth
	catalog      *handler.Catalog
	cart         *handler.Cart
	order        *handler.Order
	authenticate *middleware.Authenticate
	logging      *middleware.Logging
}

func New(
	auth *handler.Auth,
	catalog *handler.Catalog,
	cart *handler.Cart,
	order *handler.Order,
	authenticate *middleware.Authenticate,
	logger *logger.Logger,
) *Router {
	return &Router{
		auth:         auth,
		catalog:      catalog,
		cart:         cart,
		order:        order,
		authenticate: authenticate,
		logging:      middleware.NewLogging(logger),
	}
}

// Register builds the route table and returns the root handler.
func (r *Router) Register() http.Handler {
	mux := http.NewServeMux()

	// Public routes.
	mux.HandleFunc("POST /api/register", r.auth.Register)
	mux.HandleFunc("POST /api/login", r.auth.Login)
	mux.HandleFunc("GET /api/products", r.catalog.ListProducts)
	mux.HandleFunc("GET /api/products/{id}", r.catalog.GetProduct)
	mux.HandleFunc("GET /api/products/{id}/image", r.catalog.GetProductImage)

	// Authenticated routes.
	authed := http.NewServeMux()
	authed.HandleFunc("POST /api/logout", r.auth.Logout)
	authed.HandleFunc("GET /api/me", r.auth.Me)
	authed.HandleFunc("GET /api/cart", r.cart.Get)
	authed.HandleFunc("DELETE /api/cart", r.cart.Clear)
	authed.HandleFunc("POST /api/cart/items", r.cart.AddItem)
	authed.HandleFunc("PUT /api/cart/items/{id}", r.cart.UpdateItem)
	authed.HandleFunc("DELETE /api/cart/items/{id}", r.cart.RemoveItem)
	authed.HandleFunc("POST /api/checkout", r.order.Checkout)
	authed.HandleFunc("GET /api/orders", r.order.ListMine)
	authed.HandleFunc("GET /api/orders/{id}", r.order.Get)
	authed.HandleFunc("POST /api/admin/products", r.catalog.CreateProduct)
	authed.HandleFunc("PUT /api/admin/products/{id}", r.catalog.UpdateProduct)
	authed.HandleFunc("DELETE /api/admin/products/{id}", r.catalog.DeleteProduct)
	authed.HandleFunc("POST /api/admin/products/{id}/image", r.catalog.UploadProductImage)
	authed.HandleFunc("GET /api/admin/orders", r.order.ListAll)
	authed.HandleFunc("PUT /api/admin/orders/{id}/status", r.order.UpdateStatus)

	mux.Handle("/api/", r.authenticate.Handle(authed))

	return r.logging.Handle(mux)
}
