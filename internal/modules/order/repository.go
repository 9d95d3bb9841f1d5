package order

import (
	"context"

	"github.com/georgemunganga/storefront-backend/internal/infra/web"
	"github.com/georgemunganga/storefront-backend/internal/modules/product"
	"github.com/google/uuid"
)

// Repository defines data access for orders.
type Repository interface {
	// InTx runs fn inside one database transaction. The transaction commits
	// only when fn returns nil.
	InTx(ctx context.Context, fn func(tx TxRepository) error) error

	// GetOrderByID retrieves an order with its items and their products.
	GetOrderByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// ListOrders returns one page of orders, newest first, and the total
	// number of matching orders.
	ListOrders(ctx context.Context, f ListFilter, page web.PageRequest) ([]Order, int, error)

	UpdateOrder(ctx context.Context, o *Order) error

	// DeleteOrder removes the order and, by cascade, its items.
	DeleteOrder(ctx context.Context, id uuid.UUID) error

	Stats(ctx context.Context) (Stats, error)
}

// TxRepository is the view of the store available inside InTx.
type TxRepository interface {
	// GetProductForOrder reads a product and holds a share lock on it until
	// the transaction ends, so it cannot be repriced or deleted meanwhile.
	GetProductForOrder(ctx context.Context, id uuid.UUID) (*product.Product, error)

	InsertOrder(ctx context.Context, o *Order) error
	InsertItem(ctx context.Context, item *OrderItem) error
}
