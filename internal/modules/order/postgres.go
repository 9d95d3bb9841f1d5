package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/georgemunganga/storefront-backend/internal/infra/apperr"
	"github.com/georgemunganga/storefront-backend/internal/infra/database"
	"github.com/georgemunganga/storefront-backend/internal/infra/web"
	"github.com/georgemunganga/storefront-backend/internal/modules/product"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const orderColumns = `id, user_id, customer_email, customer_name, total_amount, status,
	payment_status, payment_method, notes, created_at, updated_at`

const itemsQuery = `
	SELECT oi.id, oi.order_id, oi.quantity, oi.unit_price, oi.total_price, oi.created_at,` + product.Columns + `
	FROM order_items oi
	JOIN products p ON p.product_id = oi.product_id` + product.Joins

type postgresRepo struct{ db *sqlx.DB }

func NewPostgresRepository(db *sqlx.DB) Repository { return &postgresRepo{db: db} }

// InTx runs fn in a transaction shared by every TxRepository call.
func (r *postgresRepo) InTx(ctx context.Context, fn func(tx TxRepository) error) error {
	return database.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		return fn(&txRepo{tx: tx})
	})
}

type txRepo struct{ tx *sqlx.Tx }

func (t *txRepo) GetProductForOrder(ctx context.Context, id uuid.UUID) (*product.Product, error) {
	row := t.tx.QueryRowxContext(ctx, product.BaseQuery+` WHERE p.product_id = $1 FOR SHARE OF p`, id)
	p, err := product.Scan(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("product", id)
	}
	if err != nil {
		return nil, fmt.Errorf("lock product: %w", err)
	}
	return p, nil
}

func (t *txRepo) InsertOrder(ctx context.Context, o *Order) error {
	err := t.tx.QueryRowxContext(ctx, `
		INSERT INTO orders
		  (id, user_id, customer_email, customer_name, total_amount, status,
		   payment_status, payment_method, notes)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING created_at, updated_at`,
		o.ID, o.UserID, o.CustomerEmail, o.CustomerName, o.TotalAmount, o.Status,
		o.PaymentStatus, o.PaymentMethod, o.Notes).Scan(&o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

func (t *txRepo) InsertItem(ctx context.Context, item *OrderItem) error {
	err := t.tx.QueryRowxContext(ctx, `
		INSERT INTO order_items
		  (id, order_id, product_id, quantity, unit_price, total_price)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING created_at`,
		item.ID, item.OrderID, item.ProductID, item.Quantity, item.UnitPrice, item.TotalPrice).
		Scan(&item.CreatedAt)
	if database.IsForeignKeyViolation(err) {
		return apperr.Reference("Product with ID %s not found", item.ProductID)
	}
	if err != nil {
		return fmt.Errorf("insert order_item: %w", err)
	}
	return nil
}

func (r *postgresRepo) GetOrderByID(ctx context.Context, id uuid.UUID) (*Order, error) {
	o := &Order{}
	err := r.db.GetContext(ctx, o, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("order", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	items, err := r.listItems(ctx, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	o.Items = items[id]
	if o.Items == nil {
		o.Items = []OrderItem{}
	}
	return o, nil
}

func (r *postgresRepo) ListOrders(ctx context.Context, f ListFilter, page web.PageRequest) ([]Order, int, error) {
	var clauses []string
	var args []interface{}
	add := func(col string, v interface{}) {
		args = append(args, v)
		clauses = append(clauses, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if f.Status != nil {
		add("status", *f.Status)
	}
	if f.PaymentStatus != nil {
		add("payment_status", *f.PaymentStatus)
	}
	if f.UserID != nil {
		add("user_id", *f.UserID)
	}
	where := ""
	if len(clauses) > 0 {
		where = " WHERE " + strings.Join(clauses, " AND ")
	}

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM orders`+where, args...); err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}

	n := len(args)
	query := `SELECT ` + orderColumns + ` FROM orders` + where +
		fmt.Sprintf(` ORDER BY id DESC LIMIT $%d OFFSET $%d`, n+1, n+2)
	orders := []Order{}
	if err := r.db.SelectContext(ctx, &orders, query, append(args, page.Limit(), page.Offset())...); err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}
	if len(orders) == 0 {
		return orders, total, nil
	}

	ids := make([]uuid.UUID, len(orders))
	for i := range orders {
		ids[i] = orders[i].ID
	}
	items, err := r.listItems(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	for i := range orders {
		orders[i].Items = items[orders[i].ID]
		if orders[i].Items == nil {
			orders[i].Items = []OrderItem{}
		}
	}
	return orders, total, nil
}

func (r *postgresRepo) UpdateOrder(ctx context.Context, o *Order) error {
	err := r.db.QueryRowxContext(ctx, `
		UPDATE orders
		SET customer_email=$2, customer_name=$3, status=$4, payment_status=$5,
		    payment_method=$6, notes=$7, updated_at=NOW()
		WHERE id=$1
		RETURNING updated_at`,
		o.ID, o.CustomerEmail, o.CustomerName, o.Status, o.PaymentStatus,
		o.PaymentMethod, o.Notes).Scan(&o.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.NotFound("order", o.ID)
	}
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}
	return nil
}

func (r *postgresRepo) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return apperr.NotFound("order", id)
	}
	return nil
}

func (r *postgresRepo) Stats(ctx context.Context) (Stats, error) {
	var s Stats
	err := r.db.GetContext(ctx, &s, `
		SELECT COUNT(*) AS total_orders,
		       COUNT(*) FILTER (WHERE status = 'pending') AS pending_orders,
		       COUNT(*) FILTER (WHERE status = 'completed') AS completed_orders,
		       COALESCE(SUM(total_amount) FILTER (WHERE payment_status = 'paid'), 0) AS total_revenue
		FROM orders`)
	if err != nil {
		return Stats{}, fmt.Errorf("order stats: %w", err)
	}
	return s, nil
}

// listItems loads the items of every given order, grouped by order id and
// kept in insertion order.
func (r *postgresRepo) listItems(ctx context.Context, orderIDs []uuid.UUID) (map[uuid.UUID][]OrderItem, error) {
	strIDs := make([]string, len(orderIDs))
	for i, id := range orderIDs {
		strIDs[i] = id.String()
	}
	rows, err := r.db.QueryxContext(ctx,
		itemsQuery+` WHERE oi.order_id = ANY($1::uuid[]) ORDER BY oi.created_at, oi.id`,
		pq.Array(strIDs))
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()

	items := make(map[uuid.UUID][]OrderItem, len(orderIDs))
	for rows.Next() {
		var it OrderItem
		p, err := product.ScanWith(rows.Scan,
			&it.ID, &it.OrderID, &it.Quantity, &it.UnitPrice, &it.TotalPrice, &it.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		it.ProductID = p.ID
		it.Product = p
		items[it.OrderID] = append(items[it.OrderID], it)
	}
	return items, rows.Err()
}
