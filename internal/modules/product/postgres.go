package product

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/georgemunganga/storefront-backend/internal/infra/apperr"
	"github.com/georgemunganga/storefront-backend/internal/infra/database"
	"github.com/georgemunganga/storefront-backend/internal/infra/web"
	"github.com/georgemunganga/storefront-backend/internal/modules/category"
	"github.com/georgemunganga/storefront-backend/internal/modules/platform"
	"github.com/georgemunganga/storefront-backend/internal/modules/vendor"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const msgHasOrders = "Cannot delete product with existing orders"

type postgresRepo struct{ db *sqlx.DB }

func NewPostgresRepository(db *sqlx.DB) Repository { return &postgresRepo{db: db} }

// Scan reads one row selected by BaseQuery.
func Scan(scan func(...interface{}) error) (*Product, error) {
	return ScanWith(scan)
}

// ScanWith reads a row whose leading columns go into prefix and whose
// remaining columns are Columns.
func ScanWith(scan func(...interface{}) error, prefix ...interface{}) (*Product, error) {
	p := &Product{}
	c := &category.Category{Platform: &platform.Platform{}}
	v := &vendor.Vendor{}
	var attrs []byte
	dest := append(prefix,
		&p.ID, &p.Name, &p.Description, &p.Price, &p.Quantity,
		&p.CategoryID, &p.VendorID, &attrs, &p.IsActive, &p.IsFeatured,
		&p.Rating, &p.TotalReviews, &p.CreatedAt, &p.UpdatedAt,
		&c.Name, &c.PlatformID, &c.Platform.Name,
		&v.Name, &v.ContactInfo)
	if err := scan(dest...); err != nil {
		return nil, err
	}
	if attrs != nil {
		p.Attributes = json.RawMessage(attrs)
	}
	c.ID = p.CategoryID
	c.Platform.ID = c.PlatformID
	v.ID = p.VendorID
	p.Category = c
	p.Vendor = v
	return p, nil
}

func attrsArg(raw json.RawMessage) interface{} {
	if len(raw) == 0 {
		return nil
	}
	return []byte(raw)
}

func (r *postgresRepo) Create(ctx context.Context, p *Product) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO products
		  (product_id, product_name, description, price, quantity, category_id, vendor_id,
		   attributes, is_active, is_featured, rating, total_reviews)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`,
		p.ID, p.Name, p.Description, p.Price, p.Quantity, p.CategoryID, p.VendorID,
		attrsArg(p.Attributes), p.IsActive, p.IsFeatured, p.Rating, p.TotalReviews)
	if database.IsForeignKeyViolation(err) {
		return apperr.Reference("category or vendor not found")
	}
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id uuid.UUID) (*Product, error) {
	row := r.db.QueryRowxContext(ctx, BaseQuery+` WHERE p.product_id = $1`, id)
	p, err := Scan(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NotFound("product", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

func (r *postgresRepo) List(ctx context.Context, f Filter, page web.PageRequest) ([]Product, int, error) {
	countQuery, listQuery, args := listQueries(f, page.Limit(), page.Offset())

	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args[:len(args)-2]...); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}
	products, err := r.query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (r *postgresRepo) Featured(ctx context.Context, limit int) ([]Product, error) {
	return r.query(ctx, BaseQuery+`
		WHERE p.is_active AND p.is_featured
		ORDER BY p.rating DESC, p.product_id DESC
		LIMIT $1`, limit)
}

func (r *postgresRepo) query(ctx context.Context, query string, args ...interface{}) ([]Product, error) {
	rows, err := r.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	products := []Product{}
	for rows.Next() {
		p, err := Scan(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}

func (r *postgresRepo) Update(ctx context.Context, p *Product) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE products
		SET product_name=$2, description=$3, price=$4, quantity=$5, category_id=$6,
		    vendor_id=$7, attributes=$8, is_active=$9, is_featured=$10, rating=$11,
		    total_reviews=$12, updated_at=NOW()
		WHERE product_id=$1`,
		p.ID, p.Name, p.Description, p.Price, p.Quantity, p.CategoryID,
		p.VendorID, attrsArg(p.Attributes), p.IsActive, p.IsFeatured, p.Rating,
		p.TotalReviews)
	if database.IsForeignKeyViolation(err) {
		return apperr.Reference("category or vendor not found")
	}
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return requireRow(res, p.ID)
}

func (r *postgresRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE product_id = $1`, id)
	if database.IsForeignKeyViolation(err) {
		return apperr.Conflict(msgHasOrders)
	}
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return requireRow(res, id)
}

func (r *postgresRepo) BulkUpdate(ctx context.Context, ids []uuid.UUID, c BulkChanges) (int64, error) {
	strIDs := make([]string, len(ids))
	for i, id := range ids {
		strIDs[i] = id.String()
	}
	res, err := r.db.ExecContext(ctx, `
		UPDATE products
		SET is_active   = COALESCE($2, is_active),
		    is_featured = COALESCE($3, is_featured),
		    price       = COALESCE($4, price),
		    quantity    = COALESCE($5, quantity),
		    updated_at  = NOW()
		WHERE product_id = ANY($1::uuid[])`,
		pq.Array(strIDs), c.IsActive, c.IsFeatured, c.Price, c.Quantity)
	if err != nil {
		return 0, fmt.Errorf("bulk update products: %w", err)
	}
	return res.RowsAffected()
}

func (r *postgresRepo) CategoryExists(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM categories WHERE category_id = $1)`, id)
}

func (r *postgresRepo) VendorExists(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM vendors WHERE vendor_id = $1)`, id)
}

func (r *postgresRepo) HasOrderItems(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM order_items WHERE product_id = $1)`, id)
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
		return apperr.NotFound("product", id)
	}
	return nil
}
