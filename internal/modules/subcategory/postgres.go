package subcategory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/georgemunganga/storefront-backend/internal/infra/apperr"
	"github.com/georgemunganga/storefront-backend/internal/infra/database"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const columns = `id, name, icon, category_id, created_at, updated_at`

type postgresRepo struct{ db *sqlx.DB }

func NewPostgresRepository(db *sqlx.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Create(ctx context.Context, s *Subcategory) error {
	err := r.db.QueryRowxContext(ctx, `
		INSERT INTO subcategories (id, name, icon, category_id)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at`,
		s.ID, s.Name, s.Icon, s.CategoryID).Scan(&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return mapWriteErr("insert subcategory", err)
	}
	return nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id uuid.UUID) (*Subcategory, error) {
	var s Subcategory
	err := r.db.GetContext(ctx, &s, `SELECT `+columns+` FROM subcategories WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("subcategory", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get subcategory: %w", err)
	}
	return &s, nil
}

func (r *postgresRepo) List(ctx context.Context, f Filter) ([]Subcategory, error) {
	query := `SELECT ` + columns + ` FROM subcategories`
	var args []interface{}
	if f.CategoryID != nil {
		query += ` WHERE category_id = $1`
		args = append(args, *f.CategoryID)
	}
	query += ` ORDER BY name`

	subcategories := []Subcategory{}
	if err := r.db.SelectContext(ctx, &subcategories, query, args...); err != nil {
		return nil, fmt.Errorf("list subcategories: %w", err)
	}
	return subcategories, nil
}

func (r *postgresRepo) Update(ctx context.Context, s *Subcategory) error {
	err := r.db.QueryRowxContext(ctx, `
		UPDATE subcategories
		SET name = $2, icon = $3, category_id = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`,
		s.ID, s.Name, s.Icon, s.CategoryID).Scan(&s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return apperr.NotFound("subcategory", s.ID)
	}
	if err != nil {
		return mapWriteErr("update subcategory", err)
	}
	return nil
}

func (r *postgresRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM subcategories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete subcategory: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return apperr.NotFound("subcategory", id)
	}
	return nil
}

func (r *postgresRepo) CategoryExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var ok bool
	err := r.db.GetContext(ctx, &ok, `SELECT EXISTS (SELECT 1 FROM categories WHERE category_id = $1)`, id)
	if err != nil {
		return false, fmt.Errorf("check category: %w", err)
	}
	return ok, nil
}

func mapWriteErr(op string, err error) error {
	switch {
	case database.IsUniqueViolation(err):
		return apperr.Conflict(msgDuplicateName)
	case database.IsForeignKeyViolation(err):
		return apperr.Reference("category not found")
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
