package subcategory

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, s *Subcategory) error
	GetByID(ctx context.Context, id uuid.UUID) (*Subcategory, error)
	List(ctx context.Context, f Filter) ([]Subcategory, error)
	Update(ctx context.Context, s *Subcategory) error
	Delete(ctx context.Context, id uuid.UUID) error
	CategoryExists(ctx context.Context, id uuid.UUID) (bool, error)
}
