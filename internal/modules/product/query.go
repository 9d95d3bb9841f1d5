package product

import (
	"fmt"
	"strings"
)

// Columns lists the product, category, platform and vendor columns read by
// Scan, in order.
const Columns = `
	p.product_id, p.product_name, p.description, p.price, p.quantity,
	p.category_id, p.vendor_id, p.attributes, p.is_active, p.is_featured,
	p.rating, p.total_reviews, p.created_at, p.updated_at,
	c.category_name, c.platform_id, pl.platform_name,
	v.vendor_name, v.contact_info`

// Joins attaches the relations of products aliased as p. Inner joins drop
// products whose relations are missing.
const Joins = `
	JOIN categories c ON c.category_id = p.category_id
	JOIN platforms pl ON pl.platform_id = c.platform_id
	JOIN vendors v ON v.vendor_id = p.vendor_id`

const fromJoined = ` FROM products p` + Joins

// BaseQuery selects a product hydrated with its category, platform and
// vendor.
const BaseQuery = `SELECT` + Columns + fromJoined

// where accumulates conjunctive predicates with numbered placeholders.
type where struct {
	clauses []string
	args    []interface{}
}

// add appends a predicate. format receives the placeholder index of arg
// and may reference it more than once with %[1]d.
func (w *where) add(format string, arg interface{}) {
	w.args = append(w.args, arg)
	w.clauses = append(w.clauses, fmt.Sprintf(format, len(w.args)))
}

func (w *where) String() string {
	if len(w.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.clauses, " AND ")
}

func buildFilter(f Filter) *where {
	w := &where{}
	if f.CategoryID != nil {
		w.add("p.category_id = $%d", *f.CategoryID)
	}
	if f.VendorID != nil {
		w.add("p.vendor_id = $%d", *f.VendorID)
	}
	if f.PlatformID != nil {
		w.add("c.platform_id = $%d", *f.PlatformID)
	}
	if f.CategoryName != nil {
		w.add("c.category_name = $%d", *f.CategoryName)
	}
	if f.VendorName != nil {
		w.add("v.vendor_name = $%d", *f.VendorName)
	}
	if f.PlatformName != nil {
		w.add("pl.platform_name = $%d", *f.PlatformName)
	}
	if f.MinPrice != nil {
		w.add("p.price >= $%d", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		w.add("p.price <= $%d", *f.MaxPrice)
	}
	if f.MinQuantity != nil {
		w.add("p.quantity >= $%d", *f.MinQuantity)
	}
	if f.MaxQuantity != nil {
		w.add("p.quantity <= $%d", *f.MaxQuantity)
	}
	if f.Keyword != nil && *f.Keyword != "" {
		w.add("(p.product_name ILIKE $%[1]d OR v.vendor_name ILIKE $%[1]d)", "%"+escapeLike(*f.Keyword)+"%")
	}
	if f.IsActive != nil {
		w.add("p.is_active = $%d", *f.IsActive)
	}
	if f.IsFeatured != nil {
		w.add("p.is_featured = $%d", *f.IsFeatured)
	}
	return w
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes s match literally inside a LIKE pattern using the
// default backslash escape.
func escapeLike(s string) string { return likeEscaper.Replace(s) }

// listQueries returns the count and page statements for f.
func listQueries(f Filter, limit, offset int) (count string, list string, args []interface{}) {
	w := buildFilter(f)
	count = "SELECT COUNT(*)" + fromJoined + w.String()
	n := len(w.args)
	list = BaseQuery + w.String() +
		fmt.Sprintf(" ORDER BY p.product_id DESC LIMIT $%d OFFSET $%d", n+1, n+2)
	args = append(w.args, limit, offset)
	return count, list, args
}
