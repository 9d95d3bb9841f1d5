package platform

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, p *Platform) error
	GetByID(ctx context.Context, id uuid.UUID) (*Platform, error)
	List(ctx context.Context) ([]Platform, error)
	Update(ctx context.Context, p *Platform) error
	Delete(ctx context.Context, id uuid.UUID) error
	HasCategories(ctx context.Context, id uuid.UUID) (bool, error)
	Count(ctx context.Context) (int, error)
}
