package handler

import (
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/dtroode/udon-shop-server/internal/logger"
	"github.com/dtroode/udon-shop-server/internal/model"
	"github.com/dtroode/udon-shop-server/internal/provider"
	"github.com/dtroode/udon-shop-server/internal/service"
)

// Catalog exposes the product read path (through the data provider)
// and the admin product operations (through the catalog service).
type Catalog struct {
	provider *provider.Provider
	catalog  *service.Catalog
	logger   *logger.Logger
}

func NewCatalog(provider *provider.Provider, catalog *service.Catalog, logger *logger.Logger) *Catalog {
	return &Catalog{
		provider: provider,
		catalog:  catalog,
		logger:   logger,
	}
}

type createProductRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	Stock       int    `json:"stock"`
	ImageURL    string `json:"imageUrl,omitempty"`
}

type updateProductRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Price       *int64  `json:"price,omitempty"`
	Stock       *int    `json:"stock,omitempty"`
	ImageURL    *string `json:"imageUrl,omitempty"`
}

// ListProducts handles GET /api/products.
func (h *Catalog) ListProducts(w http.ResponseWriter, r *http.Request) {
	products := h.provider.GetProducts(r.Context())
	if products == nil {
		products = []model.Product{}
	}
	writeJSON(w, http.StatusOK, products)
}

// GetProduct handles GET /api/products/{id}.
func (h *Catalog) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	product, err := h.provider.GetProduct(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, product)
}

// GetProductImage handles GET /api/products/{id}/image.
func (h *Catalog) GetProductImage(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	reader, err := h.catalog.GetProductImage(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}
	defer reader.Close()

	w.Header().Set("Content-Type", "application/octet-stream")
	if _, err := io.Copy(w, reader); err != nil {
		h.logger.Warn("Catalog handler: failed to stream product image",
			"product_id", id,
			"error", err.Error())
	}
}

// CreateProduct handles POST /api/admin/products.
func (h *Catalog) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	product, err := h.catalog.CreateProduct(r.Context(), service.CreateProductParams{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, product)
}

// UpdateProduct handles PUT /api/admin/products/{id}.
func (h *Catalog) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	var req updateProductRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	product, err := h.catalog.UpdateProduct(r.Context(), id, model.ProductUpdate{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, product)
}

// DeleteProduct handles DELETE /api/admin/products/{id}.
func (h *Catalog) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	if err := h.catalog.DeleteProduct(r.Context(), id); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UploadProductImage handles POST /api/admin/products/{id}/image.
func (h *Catalog) UploadProductImage(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	product, err := h.catalog.UploadProductImage(r.Context(), id, r.Body)
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, product)
}
