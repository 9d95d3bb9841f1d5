package category

import (
	"github.com/georgemunganga/storefront-backend/internal/infra/patch"
	"github.com/georgemunganga/storefront-backend/internal/modules/platform"
	"github.com/google/uuid"
)

// Category groups products under a platform. Reads carry the owning
// platform.
type Category struct {
	ID         uuid.UUID          `json:"category_id"`
	Name       string             `json:"category_name"`
	PlatformID uuid.UUID          `json:"platform_id"`
	Platform   *platform.Platform `json:"platform,omitempty"`
}

type CreateRequest struct {
	Name       string    `json:"category_name" validate:"required,max=255"`
	PlatformID uuid.UUID `json:"platform_id" validate:"required"`
}

type UpdateRequest struct {
	Name       patch.Field[string]    `json:"category_name"`
	PlatformID patch.Field[uuid.UUID] `json:"platform_id"`
}

// Filter narrows List. A nil PlatformID lists every category.
type Filter struct {
	PlatformID *uuid.UUID
}
