package platform

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

type postgresRepo struct{ db *sqlx.DB }

func NewPostgresRepository(db *sqlx.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Create(ctx context.Context, p *Platform) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO platforms (platform_id, platform_name) VALUES ($1, $2)`,
		p.ID, p.Name)
	if err != nil {
		return fmt.Errorf("insert platform: %w", err)
	}
	return nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id uuid.UUID) (*Platform, error) {
	var p Platform
	err := r.db.GetContext(ctx, &p,
		`SELECT platform_id, platform_name FROM platforms WHERE platform_id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("platform", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get platform: %w", err)
	}
	return &p, nil
}

func (r *postgresRepo) List(ctx context.Context) ([]Platform, error) {
	platforms := []Platform{}
	err := r.db.SelectContext(ctx, &platforms,
		`SELECT platform_id, platform_name FROM platforms ORDER BY platform_name`)
	if err != nil {
		return nil, fmt.Errorf("list platforms: %w", err)
	}
	return platforms, nil
}

func (r *postgresRepo) Update(ctx context.Context, p *Platform) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE platforms SET platform_name = $2 WHERE platform_id = $1`,
		p.ID, p.Name)
	if err != nil {
		return fmt.Errorf("update platform: %w", err)
	}
	return requireRow(res, p.ID)
}

func (r *postgresRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM platforms WHERE platform_id = $1`, id)
	if database.IsForeignKeyViolation(err) {
		return apperr.Conflict(msgHasCategories)
	}
	if err != nil {
		return fmt.Errorf("delete platform: %w", err)
	}
	return requireRow(res, id)
}

func (r *postgresRepo) HasCategories(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM categories WHERE platform_id = $1)`, id)
	if err != nil {
		return false, fmt.Errorf("check platform categories: %w", err)
	}
	return exists, nil
}

func (r *postgresRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM platforms`); err != nil {
		return 0, fmt.Errorf("count platforms: %w", err)
	}
	return n, nil
}

func requireRow(res sql.Result, id uuid.UUID) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return apperr.NotFound("platform", id)
	}
	return nil
}
