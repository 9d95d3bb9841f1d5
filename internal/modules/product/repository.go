package product

import (
	"context"

	"github.com/georgemunganga/storefront-backend/internal/infra/web"
	"github.com/google/uuid"
)

// Repository defines the interface for product data storage.
type Repository interface {
	Create(ctx context.Context, p *Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*Product, error)
	List(ctx context.Context, f Filter, page web.PageRequest) ([]Product, int, error)
	Featured(ctx context.Context, limit int) ([]Product, error)
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	BulkUpdate(ctx context.Context, ids []uuid.UUID, c BulkChanges) (int64, error)

	CategoryExists(ctx context.Context, id uuid.UUID) (bool, error)
	VendorExists(ctx context.Context, id uuid.UUID) (bool, error)
	HasOrderItems(ctx context.Context, id uuid.UUID) (bool, error)
}
