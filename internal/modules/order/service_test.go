package order

import (
	"context"
	"errors"
	"testing"

	"github.com/georgemunganga/storefront-backend/internal/infra/apperr"
	"github.com/georgemunganga/storefront-backend/internal/infra/patch"
	"github.com/georgemunganga/storefront-backend/internal/infra/web"
	"github.com/georgemunganga/storefront-backend/internal/modules/product"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memRepo keeps committed state in maps. Writes made inside InTx are staged
// and only become visible when the callback succeeds.
type memRepo struct {
	products map[uuid.UUID]product.Product
	orders   map[uuid.UUID]Order
	items    map[uuid.UUID]OrderItem
	failItem bool
}

func newMemRepo() *memRepo {
	return &memRepo{
		products: map[uuid.UUID]product.Product{},
		orders:   map[uuid.UUID]Order{},
		items:    map[uuid.UUID]OrderItem{},
	}
}

func (m *memRepo) addProduct(name, price string) uuid.UUID {
	id := uuid.New()
	m.products[id] = product.Product{ID: id, Name: name, Price: decimal.RequireFromString(price), IsActive: true}
	return id
}

type memTx struct {
	repo   *memRepo
	orders []Order
	items  []OrderItem
}

func (t *memTx) GetProductForOrder(_ context.Context, id uuid.UUID) (*product.Product, error) {
	p, ok := t.repo.products[id]
	if !ok {
		return nil, apperr.NotFound("product", id)
	}
	return &p, nil
}

func (t *memTx) InsertOrder(_ context.Context, o *Order) error {
	t.orders = append(t.orders, *o)
	return nil
}

func (t *memTx) InsertItem(_ context.Context, item *OrderItem) error {
	if t.repo.failItem && len(t.items) == 1 {
		return errors.New("disk full")
	}
	t.items = append(t.items, *item)
	return nil
}

func (m *memRepo) InTx(_ context.Context, fn func(tx TxRepository) error) error {
	tx := &memTx{repo: m}
	if err := fn(tx); err != nil {
		return err
	}
	for _, o := range tx.orders {
		m.orders[o.ID] = o
	}
	for _, it := range tx.items {
		m.items[it.ID] = it
	}
	return nil
}

func (m *memRepo) GetOrderByID(_ context.Context, id uuid.UUID) (*Order, error) {
	o, ok := m.orders[id]
	if !ok {
		return nil, apperr.NotFound("order", id)
	}
	return &o, nil
}

func (m *memRepo) ListOrders(context.Context, ListFilter, web.PageRequest) ([]Order, int, error) {
	return []Order{}, len(m.orders), nil
}

func (m *memRepo) UpdateOrder(_ context.Context, o *Order) error {
	m.orders[o.ID] = *o
	return nil
}

func (m *memRepo) DeleteOrder(_ context.Context, id uuid.UUID) error {
	delete(m.orders, id)
	for k, it := range m.items {
		if it.OrderID == id {
			delete(m.items, k)
		}
	}
	return nil
}

func (m *memRepo) Stats(context.Context) (Stats, error) { return Stats{TotalOrders: len(m.orders)}, nil }

type countingRecorder struct{ orders, items int }

func (c *countingRecorder) OrderPlaced(n int) {
	c.orders++
	c.items += n
}

func qty(n int) *int { return &n }

func TestPlaceOrderScenario(t *testing.T) {
	repo := newMemRepo()
	rec := &countingRecorder{}
	svc := NewService(repo, rec)
	fb := repo.addProduct("FB Softreg", "0.278")

	o, err := svc.PlaceOrder(context.Background(), PlaceOrderRequest{
		CustomerEmail: "buyer@example.com",
		Items:         []LineItem{{ProductID: fb, Quantity: qty(3)}},
	})
	require.NoError(t, err)

	assert.Equal(t, "0.834", o.TotalAmount.String())
	assert.Equal(t, StatusPending, o.Status)
	assert.Equal(t, PaymentPending, o.PaymentStatus)
	require.Len(t, o.Items, 1)
	assert.Equal(t, "0.278", o.Items[0].UnitPrice.String())
	assert.Equal(t, "0.834", o.Items[0].TotalPrice.String())
	assert.Equal(t, o.ID, o.Items[0].OrderID)
	require.NotNil(t, o.Items[0].Product)
	assert.Equal(t, "FB Softreg", o.Items[0].Product.Name)

	assert.Len(t, repo.orders, 1)
	assert.Len(t, repo.items, 1)
	assert.Equal(t, 1, rec.orders)
	assert.Equal(t, 1, rec.items)
}

func TestPlaceOrderTotalIsExactSum(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo, nil)
	a := repo.addProduct("A", "0.1")
	b := repo.addProduct("B", "0.2")
	c := repo.addProduct("C", "19.9999")

	o, err := svc.PlaceOrder(context.Background(), PlaceOrderRequest{
		CustomerEmail: "buyer@example.com",
		Items: []LineItem{
			{ProductID: a, Quantity: qty(3)},
			{ProductID: b, Quantity: qty(7)},
			{ProductID: c},
		},
	})
	require.NoError(t, err)

	sum := decimal.Zero
	for _, it := range o.Items {
		sum = sum.Add(it.TotalPrice)
	}
	assert.True(t, o.TotalAmount.Equal(sum))
	assert.Equal(t, "21.6999", o.TotalAmount.String())
	assert.Equal(t, 1, o.Items[2].Quantity, "quantity defaults to one")
	assert.Len(t, repo.items, 3)
}

func TestPlaceOrderMissingProductPersistsNothing(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo, nil)
	fb := repo.addProduct("FB Softreg", "0.278")
	missing := uuid.New()

	_, err := svc.PlaceOrder(context.Background(), PlaceOrderRequest{
		CustomerEmail: "buyer@example.com",
		Items:         []LineItem{{ProductID: fb}, {ProductID: missing}},
	})
	require.ErrorIs(t, err, apperr.ErrReference)
	assert.Contains(t, err.Error(), missing.String())
	assert.Empty(t, repo.orders)
	assert.Empty(t, repo.items)
}

func TestPlaceOrderItemFailureRollsBackOrder(t *testing.T) {
	repo := newMemRepo()
	repo.failItem = true
	svc := NewService(repo, nil)
	a := repo.addProduct("A", "1")
	b := repo.addProduct("B", "2")

	_, err := svc.PlaceOrder(context.Background(), PlaceOrderRequest{
		CustomerEmail: "buyer@example.com",
		Items:         []LineItem{{ProductID: a}, {ProductID: b}},
	})
	require.Error(t, err)
	assert.Empty(t, repo.orders)
	assert.Empty(t, repo.items)
}

func TestPlaceOrderValidation(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo, nil)
	fb := repo.addProduct("FB Softreg", "0.278")
	bad := Status("shipped")

	tests := []struct {
		name string
		req  PlaceOrderRequest
		msg  string
	}{
		{"no email", PlaceOrderRequest{Items: []LineItem{{ProductID: fb}}}, "customer_email is required"},
		{"blank email", PlaceOrderRequest{CustomerEmail: "  ", Items: []LineItem{{ProductID: fb}}}, "customer_email is required"},
		{"no items", PlaceOrderRequest{CustomerEmail: "a@b.c"}, "order_items is required"},
		{"empty items", PlaceOrderRequest{CustomerEmail: "a@b.c", Items: []LineItem{}}, "order_items must be at least 1"},
		{"zero quantity", PlaceOrderRequest{CustomerEmail: "a@b.c", Items: []LineItem{{ProductID: fb, Quantity: qty(0)}}}, "order_items[0].quantity must be at least 1"},
		{"missing product id", PlaceOrderRequest{CustomerEmail: "a@b.c", Items: []LineItem{{}}}, "order_items[0].product_id is required"},
		{"bad status", PlaceOrderRequest{CustomerEmail: "a@b.c", Status: &bad, Items: []LineItem{{ProductID: fb}}}, "status must be one of: pending processing completed cancelled"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.PlaceOrder(context.Background(), tt.req)
			require.ErrorIs(t, err, apperr.ErrValidation)
			assert.EqualError(t, err, tt.msg)
		})
	}
	assert.Empty(t, repo.orders)
}

func TestPlaceOrderDoesNotDeduplicate(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo, nil)
	fb := repo.addProduct("FB Softreg", "0.278")
	req := PlaceOrderRequest{CustomerEmail: "buyer@example.com", Items: []LineItem{{ProductID: fb}}}

	_, err := svc.PlaceOrder(context.Background(), req)
	require.NoError(t, err)
	_, err = svc.PlaceOrder(context.Background(), req)
	require.NoError(t, err)
	assert.Len(t, repo.orders, 2)
}

func TestUpdateOrderMergePatch(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo, nil)
	fb := repo.addProduct("FB Softreg", "0.278")
	name := "Ada"
	o, err := svc.PlaceOrder(context.Background(), PlaceOrderRequest{
		CustomerEmail: "buyer@example.com",
		CustomerName:  &name,
		Items:         []LineItem{{ProductID: fb, Quantity: qty(3)}},
	})
	require.NoError(t, err)

	got, err := svc.UpdateOrder(context.Background(), o.ID, UpdateRequest{
		PaymentStatus: patch.Value(PaymentPaid),
		Notes:         patch.Value("paid by card"),
	})
	require.NoError(t, err)
	assert.Equal(t, PaymentPaid, got.PaymentStatus)
	assert.Equal(t, StatusPending, got.Status)
	require.NotNil(t, got.CustomerName)
	assert.Equal(t, "Ada", *got.CustomerName)
	assert.Equal(t, "0.834", got.TotalAmount.String(), "total is never recomputed")

	_, err = svc.UpdateOrder(context.Background(), o.ID, UpdateRequest{Status: patch.Value(Status("shipped"))})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = svc.UpdateOrder(context.Background(), o.ID, UpdateRequest{CustomerEmail: patch.Clear[string]()})
	assert.EqualError(t, err, "customer_email is required")

	got, err = svc.UpdateOrder(context.Background(), o.ID, UpdateRequest{CustomerName: patch.Clear[string]()})
	require.NoError(t, err)
	assert.Nil(t, got.CustomerName)
}

func TestListOrdersRejectsUnknownStatus(t *testing.T) {
	svc := NewService(newMemRepo(), nil)
	st := Status("lost")
	_, _, err := svc.ListOrders(context.Background(), ListFilter{Status: &st}, web.PageRequest{Page: 1, PerPage: 10})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}
