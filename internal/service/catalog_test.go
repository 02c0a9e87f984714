package service

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/udon-shop-server/internal/mocks"
	"github.com/dtroode/udon-shop-server/internal/model"
	"github.com/dtroode/udon-shop-server/internal/testutil"
)

func newTestCatalog() (*Catalog, *mocks.ProductStore, *mocks.ObjectStorage) {
	productStore := &mocks.ProductStore{}
	storage := &mocks.ObjectStorage{}
	return NewCatalog(productStore, storage, testutil.MakeNoopLogger()), productStore, storage
}

func TestCatalog_CreateProduct(t *testing.T) {
	ctx := context.Background()
	catalog, productStore, _ := newTestCatalog()

	productStore.On("Create", mock.Anything, mock.MatchedBy(func(p model.Product) bool {
		return p.Name == "かけうどん" && p.Price == 800 && p.Stock == 10 && p.ID != uuid.Nil
	})).Return(model.Product{ID: uuid.New(), Name: "かけうどん", Price: 800, Stock: 10}, nil)

	got, err := catalog.CreateProduct(ctx, CreateProductParams{Name: "かけうどん", Price: 800, Stock: 10})
	require.NoError(t, err)
	assert.Equal(t, "かけうどん", got.Name)
	productStore.AssertExpectations(t)
}

func TestCatalog_CreateProduct_Invalid(t *testing.T) {
	ctx := context.Background()
	catalog, productStore, _ := newTestCatalog()

	_, err := catalog.CreateProduct(ctx, CreateProductParams{Name: "", Price: 800})
	assert.ErrorIs(t, err, model.ErrValidation)

	_, err = catalog.CreateProduct(ctx, CreateProductParams{Name: "x", Price: -1})
	assert.ErrorIs(t, err, model.ErrValidation)

	_, err = catalog.CreateProduct(ctx, CreateProductParams{Name: "x", Price: 1, Stock: -1})
	assert.ErrorIs(t, err, model.ErrValidation)

	productStore.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCatalog_UpdateProduct_Invalid(t *testing.T) {
	ctx := context.Background()
	catalog, productStore, _ := newTestCatalog()

	negative := int64(-1)
	_, err := catalog.UpdateProduct(ctx, uuid.New(), model.ProductUpdate{Price: &negative})
	assert.ErrorIs(t, err, model.ErrValidation)

	negativeStock := -1
	_, err = catalog.UpdateProduct(ctx, uuid.New(), model.ProductUpdate{Stock: &negativeStock})
	assert.ErrorIs(t, err, model.ErrValidation)

	productStore.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestCatalog_DeleteProduct_RemovesImage(t *testing.T) {
	ctx := context.Background()
	catalog, productStore, storage := newTestCatalog()

	id := uuid.New()
	productStore.On("Delete", mock.Anything, id).Return(nil)
	storage.On("Exists", mock.Anything, "products/"+id.String()).Return(true, nil)
	storage.On("Delete", mock.Anything, "products/"+id.String()).Return(nil)

	require.NoError(t, catalog.DeleteProduct(ctx, id))
	storage.AssertExpectations(t)
}

func TestCatalog_DeleteProduct_NotFound(t *testing.T) {
	ctx := context.Background()
	catalog, productStore, storage := newTestCatalog()

	id := uuid.New()
	productStore.On("Delete", mock.Anything, id).Return(model.ErrNotFound)

	assert.ErrorIs(t, catalog.DeleteProduct(ctx, id), model.ErrNotFound)
	storage.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestCatalog_UploadProductImage(t *testing.T) {
	ctx := context.Background()
	catalog, productStore, storage := newTestCatalog()

	id := uuid.New()
	imageURL := "/images/" + id.String()
	productStore.On("GetByID", mock.Anything, id).Return(model.Product{ID: id, Name: "x"}, nil)
	storage.On("Upload", mock.Anything, "products/"+id.String(), mock.Anything).Return(nil)
	productStore.On("Update", mock.Anything, id, mock.MatchedBy(func(u model.ProductUpdate) bool {
		return u.ImageURL != nil && *u.ImageURL == imageURL
	})).Return(model.Product{ID: id, Name: "x", ImageURL: imageURL}, nil)

	got, err := catalog.UploadProductImage(ctx, id, strings.NewReader("bytes"))
	require.NoError(t, err)
	assert.Equal(t, imageURL, got.ImageURL)
}

func TestCatalog_UploadProductImage_UnknownProduct(t *testing.T) {
	ctx := context.Background()
	catalog, productStore, storage := newTestCatalog()

	id := uuid.New()
	productStore.On("GetByID", mock.Anything, id).Return(model.Product{}, model.ErrNotFound)

	_, err := catalog.UploadProductImage(ctx, id, strings.NewReader("bytes"))
	assert.ErrorIs(t, err, model.ErrNotFound)
	storage.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything)
}

func TestCatalog_GetProductImage(t *testing.T) {
	ctx := context.Background()
	catalog, _, storage := newTestCatalog()

	id := uuid.New()
	storage.On("Exists", mock.Anything, "products/"+id.String()).Return(true, nil)
	storage.On("Download", mock.Anything, "products/"+id.String()).
		Return(io.NopCloser(strings.NewReader("image bytes")), nil)

	reader, err := catalog.GetProductImage(ctx, id)
	require.NoError(t, err)
	defer reader.Close()

	data, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, "image bytes", string(data))
}

func TestCatalog_GetProductImage_Missing(t *testing.T) {
	ctx := context.Background()
	catalog, _, storage := newTestCatalog()

	id := uuid.New()
	storage.On("Exists", mock.Anything, "products/"+id.String()).Return(false, nil)

	_, err := catalog.GetProductImage(ctx, id)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestCatalog_InitSampleData_SeedsWhenEmpty(t *testing.T) {
	ctx := context.Background()
	catalog, productStore, _ := newTestCatalog()

	productStore.On("GetAll", mock.Anything).Return([]model.Product{}, nil)
	productStore.On("Create", mock.Anything, mock.Anything).Return(model.Product{}, nil).Times(4)

	require.NoError(t, catalog.InitSampleData(ctx))
	productStore.AssertExpectations(t)
}

func TestCatalog_InitSampleData_SkipsWhenPopulated(t *testing.T) {
	ctx := context.Background()
	catalog, productStore, _ := newTestCatalog()

	productStore.On("GetAll", mock.Anything).Return([]model.Product{{ID: uuid.New()}}, nil)

	require.NoError(t, catalog.InitSampleData(ctx))
	productStore.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
