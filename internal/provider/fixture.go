package provider

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/udon-shop-server/internal/model"
)

var _ Source = (*FixtureSource)(nil)

// FixtureSource serves a fixed in-memory data set. It backs static
// builds and is the fallback when the live store is unavailable.
type FixtureSource struct {
	products []RawProduct
	users    []model.Identity
	orders   []model.Order
}

// NewFixtureSource creates a source over the built-in fixture set.
func NewFixtureSource() *FixtureSource {
	return &FixtureSource{
		products: fixtureProducts,
		users:    fixtureUsers,
		orders:   []model.Order{},
	}
}

func (f *FixtureSource) Products(_ context.Context) ([]model.Product, error) {
	products := make([]model.Product, 0, len(f.products))
	for _, raw := range f.products {
		products = append(products, NormalizeProduct(raw))
	}
	return products, nil
}

func (f *FixtureSource) Product(_ context.Context, id uuid.UUID) (model.Product, error) {
	for _, raw := range f.products {
		product := NormalizeProduct(raw)
		if product.ID == id {
			return product, nil
		}
	}
	return model.Product{}, model.ErrNotFound
}

func (f *FixtureSource) Users(_ context.Context) ([]model.Identity, error) {
	return f.users, nil
}

func (f *FixtureSource) Orders(_ context.Context) ([]model.Order, error) {
	return f.orders, nil
}

var fixtureDate = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// The fixture products keep the legacy shape with the image field, so
// they exercise the normalization tie-break the same way the published
// static data set does.
var fixtureProducts = []RawProduct{
	{
		ID:          "b2374ec6-6c3d-4432-9d55-216d479bdd63",
		Name:        "讃岐うどん",
		Description: "本場香川の讃岐うどん。コシのある麺が自慢です。",
		Price:       800,
		Image:       "/images/sanuki-udon.svg",
		Category:    "うどん",
		Stock:       10,
		CreatedAt:   fixtureDate,
		UpdatedAt:   fixtureDate,
	},
	{
		ID:          "c3485fd7-7d4e-4543-ae66-327e58acee74",
		Name:        "カレーうどん",
		Description: "スパイシーなカレーと麺の絶妙なハーモニー。",
		Price:       950,
		Image:       "/images/curry-udon.svg",
		Category:    "うどん",
		Stock:       8,
		CreatedAt:   fixtureDate,
		UpdatedAt:   fixtureDate,
	},
	{
		ID:          "d4596fe8-8e5f-4654-bf77-438f69bdfa85",
		Name:        "明太クリームうどん",
		Description: "クリーミーな明太子ソースが絡む贅沢なうどん。",
		Price:       1100,
		Image:       "/images/mentaiko-cream-udon.svg",
		Category:    "うどん",
		Stock:       5,
		CreatedAt:   fixtureDate,
		UpdatedAt:   fixtureDate,
	},
	{
		ID:          "e5607af9-9f6a-4765-ca88-549a7bacea96",
		Name:        "海鮮うどん",
		Description: "新鮮な海の幸がたっぷり入った豪華なうどん。",
		Price:       1300,
		Image:       "/images/seafood-udon.svg",
		Category:    "うどん",
		Stock:       3,
		CreatedAt:   fixtureDate,
		UpdatedAt:   fixtureDate,
	},
}

var fixtureUsers = []model.Identity{
	{
		ID:    uuid.MustParse("11111111-1111-1111-1111-111111111111"),
		Email: "admin@example.com",
		Name:  "管理者",
	},
}
