package subcategory

import (
	"time"

	"github.com/georgemunganga/storefront-backend/internal/infra/patch"
	"github.com/google/uuid"
)

type Subcategory struct {
	ID         uuid.UUID  `db:"id" json:"id"`
	Name       string     `db:"name" json:"name"`
	Icon       *string    `db:"icon" json:"icon"`
	CategoryID *uuid.UUID `db:"category_id" json:"category_id"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at" json:"updated_at"`
}

type CreateRequest struct {
	Name       string     `json:"name" validate:"required,max=255"`
	Icon       *string    `json:"icon" validate:"omitempty,max=10"`
	CategoryID *uuid.UUID `json:"category_id"`
}

type UpdateRequest struct {
	Name       patch.Field[string]    `json:"name"`
	Icon       patch.Field[string]    `json:"icon"`
	CategoryID patch.Field[uuid.UUID] `json:"category_id"`
}

type Filter struct {
	CategoryID *uuid.UUID
}
