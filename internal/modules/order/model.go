package order

import (
	"time"

	"github.com/georgemunganga/storefront-backend/internal/infra/patch"
	"github.com/georgemunganga/storefront-backend/internal/modules/product"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status represents the fulfilment state of an order. Any status may be
// set at any time; there is no transition table.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// PaymentStatus represents the payment state of an order.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

// Order represents a customer's purchase. TotalAmount is fixed when the
// order is placed and never recomputed.
type Order struct {
	ID            uuid.UUID       `db:"id" json:"id"`
	UserID        *uuid.UUID      `db:"user_id" json:"user_id"`
	CustomerEmail string          `db:"customer_email" json:"customer_email"`
	CustomerName  *string         `db:"customer_name" json:"customer_name"`
	TotalAmount   decimal.Decimal `db:"total_amount" json:"total_amount"`
	Status        Status          `db:"status" json:"status"`
	PaymentStatus PaymentStatus   `db:"payment_status" json:"payment_status"`
	PaymentMethod *string         `db:"payment_method" json:"payment_method"`
	Notes         *string         `db:"notes" json:"notes"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at" json:"updated_at"`
	Items         []OrderItem     `db:"-" json:"order_items"`
}

// OrderItem is a single line within an order. UnitPrice is the product
// price at the moment the order was placed.
type OrderItem struct {
	ID         uuid.UUID        `json:"id"`
	OrderID    uuid.UUID        `json:"order_id"`
	ProductID  uuid.UUID        `json:"product_id"`
	Quantity   int              `json:"quantity"`
	UnitPrice  decimal.Decimal  `json:"unit_price"`
	TotalPrice decimal.Decimal  `json:"total_price"`
	CreatedAt  time.Time        `json:"created_at"`
	Product    *product.Product `json:"product,omitempty"`
}

// LineItem is one requested product in a PlaceOrderRequest. A nil Quantity
// means one.
type LineItem struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  *int      `json:"quantity" validate:"omitempty,min=1,max=2147483647"`
}

// PlaceOrderRequest is the payload for creating a new order.
type PlaceOrderRequest struct {
	UserID        *uuid.UUID     `json:"user_id"`
	CustomerEmail string         `json:"customer_email" validate:"required,max=255"`
	CustomerName  *string        `json:"customer_name" validate:"omitempty,max=255"`
	Status        *Status        `json:"status" validate:"omitempty,oneof=pending processing completed cancelled"`
	PaymentStatus *PaymentStatus `json:"payment_status" validate:"omitempty,oneof=pending paid failed refunded"`
	PaymentMethod *string        `json:"payment_method" validate:"omitempty,max=50"`
	Notes         *string        `json:"notes"`
	Items         []LineItem     `json:"order_items" validate:"required,min=1,dive"`
}

// UpdateRequest is a merge patch over the order header. Lines cannot be
// changed after placement.
type UpdateRequest struct {
	CustomerEmail patch.Field[string]        `json:"customer_email"`
	CustomerName  patch.Field[string]        `json:"customer_name"`
	Status        patch.Field[Status]        `json:"status"`
	PaymentStatus patch.Field[PaymentStatus] `json:"payment_status"`
	PaymentMethod patch.Field[string]        `json:"payment_method"`
	Notes         patch.Field[string]        `json:"notes"`
}

// ListFilter narrows ListOrders. Nil fields do not constrain.
type ListFilter struct {
	Status        *Status
	PaymentStatus *PaymentStatus
	UserID        *uuid.UUID
}

// Stats summarises every order. Revenue counts paid orders only.
type Stats struct {
	TotalOrders     int             `db:"total_orders" json:"total_orders"`
	PendingOrders   int             `db:"pending_orders" json:"pending_orders"`
	CompletedOrders int             `db:"completed_orders" json:"completed_orders"`
	TotalRevenue    decimal.Decimal `db:"total_revenue" json:"total_revenue"`
}

func (s Status) valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

func (s PaymentStatus) valid() bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentFailed, PaymentRefunded:
		return true
	}
	return false
}
