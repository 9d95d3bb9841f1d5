package platform

import (
	"github.com/georgemunganga/storefront-backend/internal/infra/patch"
	"github.com/google/uuid"
)

// Platform is the top of the catalog taxonomy, e.g. "Facebook".
type Platform struct {
	ID   uuid.UUID `db:"platform_id" json:"platform_id"`
	Name string    `db:"platform_name" json:"platform_name"`
}

type CreateRequest struct {
	Name string `json:"platform_name" validate:"required,max=255"`
}

type UpdateRequest struct {
	Name patch.Field[string] `json:"platform_name"`
}
