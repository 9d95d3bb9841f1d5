package order

import (
	"context"
	"os"
	"testing"

	"github.com/georgemunganga/storefront-backend/internal/infra/apperr"
	"github.com/georgemunganga/storefront-backend/internal/infra/database"
	"github.com/georgemunganga/storefront-backend/internal/infra/migrations"
	"github.com/georgemunganga/storefront-backend/internal/modules/category"
	"github.com/georgemunganga/storefront-backend/internal/modules/platform"
	"github.com/georgemunganga/storefront-backend/internal/modules/product"
	"github.com/georgemunganga/storefront-backend/internal/modules/vendor"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	db, err := database.Open(context.Background(), dsn, database.Options{MaxOpenConns: 4, MaxIdleConns: 2})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, migrations.Up(db.DB))
	return db
}

func TestPostgresOrderPlacementEndToEnd(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	suffix := uuid.NewString()[:8]

	platforms := platform.NewService(platform.NewPostgresRepository(db))
	categories := category.NewService(category.NewPostgresRepository(db))
	vendors := vendor.NewService(vendor.NewPostgresRepository(db))
	products := product.NewService(product.NewPostgresRepository(db))
	orderRepo := NewPostgresRepository(db)
	orders := NewService(orderRepo, nil)

	pl, err := platforms.Create(ctx, platform.CreateRequest{Name: "Facebook " + suffix})
	require.NoError(t, err)
	cat, err := categories.Create(ctx, category.CreateRequest{Name: "Facebook Accounts " + suffix, PlatformID: pl.ID})
	require.NoError(t, err)
	v, err := vendors.CreateVendor(ctx, vendor.CreateRequest{Name: "Acme " + suffix})
	require.NoError(t, err)
	price := decimal.RequireFromString("0.278")
	p, err := products.CreateProduct(ctx, product.CreateRequest{
		Name: "FB Softreg " + suffix, Price: &price, Quantity: 345, CategoryID: cat.ID, VendorID: v.ID,
	})
	require.NoError(t, err)

	countOrders := func() int {
		var n int
		require.NoError(t, db.GetContext(ctx, &n, `SELECT COUNT(*) FROM orders`))
		return n
	}
	before := countOrders()

	three := 3
	o, err := orders.PlaceOrder(ctx, PlaceOrderRequest{
		CustomerEmail: "buyer@example.com",
		Items:         []LineItem{{ProductID: p.ID, Quantity: &three}},
	})
	require.NoError(t, err)

	got, err := orders.GetOrder(ctx, o.ID)
	require.NoError(t, err)
	assert.True(t, got.TotalAmount.Equal(decimal.RequireFromString("0.834")))
	require.Len(t, got.Items, 1)
	assert.True(t, got.Items[0].UnitPrice.Equal(price))

	_, err = orders.PlaceOrder(ctx, PlaceOrderRequest{
		CustomerEmail: "buyer@example.com",
		Items:         []LineItem{{ProductID: p.ID}, {ProductID: uuid.New()}},
	})
	require.ErrorIs(t, err, apperr.ErrReference)
	assert.Equal(t, before+1, countOrders())

	err = products.DeleteProduct(ctx, p.ID)
	assert.ErrorIs(t, err, apperr.ErrConflict)

	require.NoError(t, orders.DeleteOrder(ctx, o.ID))
	require.NoError(t, products.DeleteProduct(ctx, p.ID))
	require.NoError(t, vendors.DeleteVendor(ctx, v.ID))
	require.NoError(t, categories.Delete(ctx, cat.ID))
	require.NoError(t, platforms.Delete(ctx, pl.ID))
}
