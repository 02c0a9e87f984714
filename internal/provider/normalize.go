package provider

import (
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/udon-shop-server/internal/model"
)

// RawProduct is a product as an external source shapes it. Legacy
// sources carry the image reference in Image; canonical ones in
// ImageURL. When both are set, ImageURL wins.
type RawProduct struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       int64     `json:"price"`
	Stock       int       `json:"stock"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	Image       string    `json:"image,omitempty"`
	Category    string    `json:"category,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NormalizeProduct maps a raw product into the canonical shape.
func NormalizeProduct(raw RawProduct) model.Product {
	id, err := uuid.Parse(raw.ID)
	if err != nil {
		// Fixture IDs are not always well-formed UUIDs; derive a
		// stable one from the string instead of failing.
		id = uuid.NewSHA1(uuid.NameSpaceOID, []byte(raw.ID))
	}

	imageURL := raw.ImageURL
	if imageURL == "" {
		imageURL = raw.Image
	}

	return model.Product{
		ID:          id,
		Name:        raw.Name,
		Description: raw.Description,
		Price:       raw.Price,
		Stock:       raw.Stock,
		ImageURL:    imageURL,
		CreatedAt:   raw.CreatedAt,
		UpdatedAt:   raw.UpdatedAt,
	}
}

// NormalizeProductMap maps an untyped product, coercing field types
// defensively. It never fails: unusable fields read as zero values.
func NormalizeProductMap(raw map[string]any) model.Product {
	return NormalizeProduct(RawProduct{
		ID:          asString(raw["id"]),
		Name:        asString(raw["name"]),
		Description: asString(raw["description"]),
		Price:       asInt64(raw["price"]),
		Stock:       int(asInt64(raw["stock"])),
		ImageURL:    asString(raw["imageUrl"]),
		Image:       asString(raw["image"]),
		Category:    asString(raw["category"]),
		CreatedAt:   asTime(raw["createdAt"]),
		UpdatedAt:   asTime(raw["updatedAt"]),
	})
}

func asString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case nil:
		return ""
	default:
		return ""
	}
}

func asInt64(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		return int64(n)
	case string:
		parsed, err := strconv.ParseInt(n, 10, 64)
		if err != nil {
			return 0
		}
		return parsed
	default:
		return 0
	}
}

func asTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		parsed, err := time.Parse(time.RFC3339, t)
		if err != nil {
			return time.Time{}
		}
		return parsed
	default:
		return time.Time{}
	}
}
