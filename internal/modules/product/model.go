package product

import (
	"encoding/json"
	"time"

	"github.com/georgemunganga/storefront-backend/internal/infra/patch"
	"github.com/georgemunganga/storefront-backend/internal/modules/category"
	"github.com/georgemunganga/storefront-backend/internal/modules/vendor"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a sellable catalog item. Reads carry its category (with the
// owning platform) and its vendor.
type Product struct {
	ID           uuid.UUID          `json:"product_id"`
	Name         string             `json:"product_name"`
	Description  string             `json:"description"`
	Price        decimal.Decimal    `json:"price"`
	Quantity     int                `json:"quantity"`
	CategoryID   uuid.UUID          `json:"category_id"`
	VendorID     uuid.UUID          `json:"vendor_id"`
	Attributes   json.RawMessage    `json:"attributes,omitempty"`
	IsActive     bool               `json:"is_active"`
	IsFeatured   bool               `json:"is_featured"`
	Rating       decimal.Decimal    `json:"rating"`
	TotalReviews int                `json:"total_reviews"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
	Category     *category.Category `json:"category,omitempty"`
	Vendor       *vendor.Vendor     `json:"vendor,omitempty"`
}

// CreateRequest holds the data for creating a product. Price is checked by
// the service rather than by tags because zero is a valid price.
type CreateRequest struct {
	Name         string           `json:"product_name" validate:"required,max=255"`
	Description  string           `json:"description"`
	Price        *decimal.Decimal `json:"price"`
	Quantity     int              `json:"quantity" validate:"min=0,max=2147483647"`
	CategoryID   uuid.UUID        `json:"category_id" validate:"required"`
	VendorID     uuid.UUID        `json:"vendor_id" validate:"required"`
	Attributes   json.RawMessage  `json:"attributes"`
	IsActive     *bool            `json:"is_active"`
	IsFeatured   bool             `json:"is_featured"`
	Rating       *decimal.Decimal `json:"rating"`
	TotalReviews int              `json:"total_reviews" validate:"min=0,max=2147483647"`
}

type UpdateRequest struct {
	Name         patch.Field[string]          `json:"product_name"`
	Description  patch.Field[string]          `json:"description"`
	Price        patch.Field[decimal.Decimal] `json:"price"`
	Quantity     patch.Field[int]             `json:"quantity"`
	CategoryID   patch.Field[uuid.UUID]       `json:"category_id"`
	VendorID     patch.Field[uuid.UUID]       `json:"vendor_id"`
	Attributes   patch.Field[json.RawMessage] `json:"attributes"`
	IsActive     patch.Field[bool]            `json:"is_active"`
	IsFeatured   patch.Field[bool]            `json:"is_featured"`
	Rating       patch.Field[decimal.Decimal] `json:"rating"`
	TotalReviews patch.Field[int]             `json:"total_reviews"`
}

// Filter holds the catalog query predicates. Nil fields do not constrain.
// Name filters match exactly; Keyword matches product or vendor name,
// case-insensitively.
type Filter struct {
	CategoryID   *uuid.UUID
	VendorID     *uuid.UUID
	PlatformID   *uuid.UUID
	CategoryName *string
	VendorName   *string
	PlatformName *string
	MinPrice     *decimal.Decimal
	MaxPrice     *decimal.Decimal
	MinQuantity  *int
	MaxQuantity  *int
	Keyword      *string
	IsActive     *bool
	IsFeatured   *bool
}

// BulkUpdateRequest applies the same changes to every listed product.
type BulkUpdateRequest struct {
	ProductIDs []uuid.UUID `json:"product_ids"`
	Updates    BulkChanges `json:"updates"`
}

type BulkChanges struct {
	IsActive   *bool            `json:"is_active"`
	IsFeatured *bool            `json:"is_featured"`
	Price      *decimal.Decimal `json:"price"`
	Quantity   *int             `json:"quantity"`
}

func (c BulkChanges) empty() bool {
	return c.IsActive == nil && c.IsFeatured == nil && c.Price == nil && c.Quantity == nil
}
