package category

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/georgemunganga/storefront-backend/internal/infra/apperr"
	"github.com/georgemunganga/storefront-backend/internal/infra/database"
	"github.com/georgemunganga/storefront-backend/internal/modules/platform"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const selectCategory = `
	SELECT c.category_id, c.category_name, c.platform_id, p.platform_name
	FROM categories c
	JOIN platforms p ON p.platform_id = c.platform_id`

type postgresRepo struct{ db *sqlx.DB }

func NewPostgresRepository(db *sqlx.DB) Repository { return &postgresRepo{db: db} }

func scanCategory(scan func(...interface{}) error) (*Category, error) {
	c := &Category{Platform: &platform.Platform{}}
	if err := scan(&c.ID, &c.Name, &c.PlatformID, &c.Platform.Name); err != nil {
		return nil, err
	}
	c.Platform.ID = c.PlatformID
	return c, nil
}

func (r *postgresRepo) Create(ctx context.Context, c *Category) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO categories (category_id, category_name, platform_id) VALUES ($1, $2, $3)`,
		c.ID, c.Name, c.PlatformID)
	if database.IsForeignKeyViolation(err) {
		return apperr.Reference("platform %s not found", c.PlatformID)
	}
	if err != nil {
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id uuid.UUID) (*Category, error) {
	c, err := scanCategory(r.db.QueryRowxContext(ctx, selectCategory+` WHERE c.category_id = $1`, id).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("category", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}
	return c, nil
}

func (r *postgresRepo) List(ctx context.Context, f Filter) ([]Category, error) {
	query := selectCategory
	var args []interface{}
	if f.PlatformID != nil {
		query += ` WHERE c.platform_id = $1`
		args = append(args, *f.PlatformID)
	}
	query += ` ORDER BY c.category_name`

	rows, err := r.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	categories := []Category{}
	for rows.Next() {
		c, err := scanCategory(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, *c)
	}
	return categories, rows.Err()
}

func (r *postgresRepo) Update(ctx context.Context, c *Category) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE categories SET category_name = $2, platform_id = $3 WHERE category_id = $1`,
		c.ID, c.Name, c.PlatformID)
	if database.IsForeignKeyViolation(err) {
		return apperr.Reference("platform %s not found", c.PlatformID)
	}
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	return requireRow(res, c.ID)
}

func (r *postgresRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE category_id = $1`, id)
	if database.IsForeignKeyViolation(err) {
		return apperr.Conflict("Cannot delete category with dependent records")
	}
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return requireRow(res, id)
}

func (r *postgresRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM categories`); err != nil {
		return 0, fmt.Errorf("count categories: %w", err)
	}
	return n, nil
}

func (r *postgresRepo) PlatformExists(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM platforms WHERE platform_id = $1)`, id)
}

func (r *postgresRepo) HasProducts(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM products WHERE category_id = $1)`, id)
}

func (r *postgresRepo) HasSubcategories(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM subcategories WHERE category_id = $1)`, id)
}

func (r *postgresRepo) exists(ctx context.Context, query string, id uuid.UUID) (bool, error) {
	var ok bool
	if err := r.db.GetContext(ctx, &ok, query, id); err != nil {
		return false, fmt.Errorf("exists: %w", err)
	}
	return ok, nil
}

func requireRow(res sql.Result, id uuid.UUID) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return apperr.NotFound("category", id)
	}
	return nil
}
