package admin

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines data access for site settings, page layout and the
// dashboard summary.
type Repository interface {
	ListSettings(ctx context.Context) ([]Setting, error)
	// UpsertSetting inserts s or overwrites the row with the same key.
	UpsertSetting(ctx context.Context, s *Setting) error

	// ListLayout returns every layout item ordered by section, then sort_order.
	ListLayout(ctx context.Context) ([]LayoutItem, error)
	GetLayout(ctx context.Context, id uuid.UUID) (*LayoutItem, error)
	CreateLayout(ctx context.Context, item *LayoutItem) error
	UpdateLayout(ctx context.Context, item *LayoutItem) error
	DeleteLayout(ctx context.Context, id uuid.UUID) error

	DashboardStats(ctx context.Context) (*DashboardStats, error)
}
