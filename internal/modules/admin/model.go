package admin

import (
	"encoding/json"
	"time"

	"github.com/georgemunganga/storefront-backend/internal/infra/patch"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Setting is a key/value pair of site configuration.
type Setting struct {
	Key         string    `db:"key" json:"key"`
	Value       *string   `db:"value" json:"value"`
	Description *string   `db:"description" json:"description"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// SaveSettingRequest creates the setting or replaces value and description
// of an existing one.
type SaveSettingRequest struct {
	Key         string  `json:"key" validate:"max=255"`
	Value       *string `json:"value"`
	Description *string `json:"description"`
}

// LayoutItem is one component placed in a section of the storefront page.
type LayoutItem struct {
	ID        uuid.UUID       `db:"id" json:"id"`
	Section   string          `db:"section" json:"section"`
	Component string          `db:"component" json:"component"`
	Content   json.RawMessage `db:"content" json:"content"`
	IsActive  bool            `db:"is_active" json:"is_active"`
	SortOrder int             `db:"sort_order" json:"sort_order"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt time.Time       `db:"updated_at" json:"updated_at"`
}

type CreateLayoutRequest struct {
	Section   string          `json:"section" validate:"max=100"`
	Component string          `json:"component" validate:"max=100"`
	Content   json.RawMessage `json:"content"`
	IsActive  *bool           `json:"is_active"`
	SortOrder int             `json:"sort_order"`
}

type UpdateLayoutRequest struct {
	Section   patch.Field[string]          `json:"section"`
	Component patch.Field[string]          `json:"component"`
	Content   patch.Field[json.RawMessage] `json:"content"`
	IsActive  patch.Field[bool]            `json:"is_active"`
	SortOrder patch.Field[int]             `json:"sort_order"`
}

// DashboardStats is the summary shown on the admin landing page.
type DashboardStats struct {
	Categories struct {
		Total int `json:"total"`
	} `json:"categories"`
	Products struct {
		Total    int `json:"total"`
		Active   int `json:"active"`
		Inactive int `json:"inactive"`
	} `json:"products"`
	Orders struct {
		Total     int `json:"total"`
		Pending   int `json:"pending"`
		Completed int `json:"completed"`
	} `json:"orders"`
	Revenue struct {
		Total decimal.Decimal `json:"total"`
	} `json:"revenue"`
}
