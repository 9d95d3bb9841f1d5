package web

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/georgemunganga/storefront-backend/internal/infra/apperr"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const maxBodyBytes = 1 << 20

// Decode reads a JSON body into v. An empty or malformed body is a
// validation error.
func Decode(w http.ResponseWriter, r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return apperr.Validation("request body is required")
		}
		return apperr.Validation("invalid request body: %v", err)
	}
	return nil
}

// PathID parses the named URL parameter as a UUID.
func PathID(r *http.Request, name string) (uuid.UUID, error) {
	raw := chi.URLParam(r, name)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperr.Validation("invalid %s: %q", name, raw)
	}
	return id, nil
}

// Query wraps URL query values with typed accessors that reject malformed
// input instead of ignoring it. The first failure is kept in Err.
type Query struct {
	r   *http.Request
	Err error
}

func NewQuery(r *http.Request) *Query { return &Query{r: r} }

func (q *Query) raw(name string) (string, bool) {
	v := q.r.URL.Query().Get(name)
	return v, v != ""
}

func (q *Query) fail(name, raw, kind string) {
	if q.Err == nil {
		q.Err = apperr.Validation("query parameter %s must be %s, got %q", name, kind, raw)
	}
}

func (q *Query) String(name string) *string {
	v, ok := q.raw(name)
	if !ok {
		return nil
	}
	return &v
}

func (q *Query) UUID(name string) *uuid.UUID {
	v, ok := q.raw(name)
	if !ok {
		return nil
	}
	id, err := uuid.Parse(v)
	if err != nil {
		q.fail(name, v, "a UUID")
		return nil
	}
	return &id
}

func (q *Query) Int(name string) *int {
	v, ok := q.raw(name)
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		q.fail(name, v, "an integer")
		return nil
	}
	return &n
}

// Int32 is Int restricted to values that fit an INTEGER column.
func (q *Query) Int32(name string) *int {
	v, ok := q.raw(name)
	if !ok {
		return nil
	}
	n, err := strconv.ParseInt(v, 10, 32)
	if err != nil {
		q.fail(name, v, "a 32-bit integer")
		return nil
	}
	i := int(n)
	return &i
}

func (q *Query) Decimal(name string) *decimal.Decimal {
	v, ok := q.raw(name)
	if !ok {
		return nil
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		q.fail(name, v, "a number")
		return nil
	}
	return &d
}

func (q *Query) Bool(name string) *bool {
	v, ok := q.raw(name)
	if !ok {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		q.fail(name, v, "a boolean")
		return nil
	}
	return &b
}

// Page reads page and per_page, applying the defaults and clamping
// per_page to maxPerPage.
func (q *Query) Page(maxPerPage int) PageRequest {
	p := PageRequest{Page: 1, PerPage: DefaultPerPage}
	if n := q.Int("page"); n != nil {
		p.Page = *n
	}
	if n := q.Int("per_page"); n != nil {
		p.PerPage = *n
	}
	if q.Err != nil {
		return p
	}
	if maxPerPage > 0 && p.PerPage > maxPerPage {
		p.PerPage = maxPerPage
	}
	if err := p.Validate(); err != nil {
		q.Err = err
	}
	return p
}
