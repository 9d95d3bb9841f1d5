package admin

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/georgemunganga/storefront-backend/internal/infra/apperr"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

const layoutColumns = `id, section, component, content, is_active, sort_order, created_at, updated_at`

type postgresRepo struct{ db *sqlx.DB }

func NewPostgresRepository(db *sqlx.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) ListSettings(ctx context.Context) ([]Setting, error) {
	settings := []Setting{}
	err := r.db.SelectContext(ctx, &settings,
		`SELECT key, value, description, created_at, updated_at FROM site_settings ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	return settings, nil
}

func (r *postgresRepo) UpsertSetting(ctx context.Context, s *Setting) error {
	err := r.db.QueryRowxContext(ctx, `
		INSERT INTO site_settings (key, value, description)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value, description = EXCLUDED.description, updated_at = NOW()
		RETURNING created_at, updated_at`,
		s.Key, s.Value, s.Description).Scan(&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert setting: %w", err)
	}
	return nil
}

func (r *postgresRepo) ListLayout(ctx context.Context) ([]LayoutItem, error) {
	items := []LayoutItem{}
	err := r.db.SelectContext(ctx, &items,
		`SELECT `+layoutColumns+` FROM website_layout ORDER BY section, sort_order, id`)
	if err != nil {
		return nil, fmt.Errorf("list layout: %w", err)
	}
	return items, nil
}

func (r *postgresRepo) GetLayout(ctx context.Context, id uuid.UUID) (*LayoutItem, error) {
	var item LayoutItem
	err := r.db.GetContext(ctx, &item, `SELECT `+layoutColumns+` FROM website_layout WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("layout item", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get layout item: %w", err)
	}
	return &item, nil
}

func (r *postgresRepo) CreateLayout(ctx context.Context, item *LayoutItem) error {
	err := r.db.QueryRowxContext(ctx, `
		INSERT INTO website_layout (id, section, component, content, is_active, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`,
		item.ID, item.Section, item.Component, []byte(item.Content), item.IsActive, item.SortOrder).
		Scan(&item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert layout item: %w", err)
	}
	return nil
}

func (r *postgresRepo) UpdateLayout(ctx context.Context, item *LayoutItem) error {
	err := r.db.QueryRowxContext(ctx, `
		UPDATE website_layout
		SET section = $2, component = $3, content = $4, is_active = $5, sort_order = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`,
		item.ID, item.Section, item.Component, []byte(item.Content), item.IsActive, item.SortOrder).
		Scan(&item.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.NotFound("layout item", item.ID)
	}
	if err != nil {
		return fmt.Errorf("update layout item: %w", err)
	}
	return nil
}

func (r *postgresRepo) DeleteLayout(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM website_layout WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete layout item: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return apperr.NotFound("layout item", id)
	}
	return nil
}

func (r *postgresRepo) DashboardStats(ctx context.Context) (*DashboardStats, error) {
	var row struct {
		Categories      int             `db:"categories"`
		Products        int             `db:"products"`
		ActiveProducts  int             `db:"active_products"`
		Orders          int             `db:"orders"`
		PendingOrders   int             `db:"pending_orders"`
		CompletedOrders int             `db:"completed_orders"`
		Revenue         decimal.Decimal `db:"revenue"`
	}
	err := r.db.GetContext(ctx, &row, `
		SELECT
		  (SELECT COUNT(*) FROM categories) AS categories,
		  (SELECT COUNT(*) FROM products) AS products,
		  (SELECT COUNT(*) FROM products WHERE is_active) AS active_products,
		  (SELECT COUNT(*) FROM orders) AS orders,
		  (SELECT COUNT(*) FROM orders WHERE status = 'pending') AS pending_orders,
		  (SELECT COUNT(*) FROM orders WHERE status = 'completed') AS completed_orders,
		  (SELECT COALESCE(SUM(total_amount), 0) FROM orders WHERE payment_status = 'paid') AS revenue`)
	if err != nil {
		return nil, fmt.Errorf("dashboard stats: %w", err)
	}

	s := &DashboardStats{}
	s.Categories.Total = row.Categories
	s.Products.Total = row.Products
	s.Products.Active = row.ActiveProducts
	s.Products.Inactive = row.Products - row.ActiveProducts
	s.Orders.Total = row.Orders
	s.Orders.Pending = row.PendingOrders
	s.Orders.Completed = row.CompletedOrders
	s.Revenue.Total = row.Revenue
	return s, nil
}
