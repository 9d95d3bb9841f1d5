package product

import (
	"fmt"
	"net/http"

	"github.com/georgemunganga/storefront-backend/internal/infra/web"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler exposes catalog HTTP endpoints.
type Handler struct {
	service    Service
	log        *zap.Logger
	maxPerPage int
}

func NewHandler(service Service, log *zap.Logger, maxPerPage int) *Handler {
	return &Handler{service: service, log: log, maxPerPage: maxPerPage}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/products", func(r chi.Router) {
		r.Get("/", h.listProducts)
		r.Post("/", h.createProduct)
		r.Get("/featured", h.featuredProducts)
		r.Get("/{id}", h.getProduct)
		r.Put("/{id}", h.updateProduct)
		r.Delete("/{id}", h.deleteProduct)
	})
	r.Post("/admin/products/bulk-update", h.bulkUpdate)
}

// parseFilter reads the catalog filters from the query string. Malformed
// values are reported through q.Err.
func parseFilter(q *web.Query) Filter {
	return Filter{
		CategoryID:   q.UUID("category_id"),
		VendorID:     q.UUID("vendor_id"),
		PlatformID:   q.UUID("platform_id"),
		CategoryName: q.String("category_name"),
		VendorName:   q.String("vendor_name"),
		PlatformName: q.String("platform_name"),
		MinPrice:     q.Decimal("min_price"),
		MaxPrice:     q.Decimal("max_price"),
		MinQuantity:  q.Int32("min_quantity"),
		MaxQuantity:  q.Int32("max_quantity"),
		Keyword:      q.String("keyword"),
		IsActive:     q.Bool("is_active"),
		IsFeatured:   q.Bool("is_featured"),
	}
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	q := web.NewQuery(r)
	f := parseFilter(q)
	page := q.Page(h.maxPerPage)
	if q.Err != nil {
		web.Fail(w, r, h.log, q.Err)
		return
	}
	products, p, err := h.service.ListProducts(r.Context(), f, page)
	if err != nil {
		web.Fail(w, r, h.log, err)
		return
	}
	web.RespondPage(w, products, p, "Products retrieved successfully")
}

func (h *Handler) featuredProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.FeaturedProducts(r.Context())
	if err != nil {
		web.Fail(w, r, h.log, err)
		return
	}
	web.Respond(w, http.StatusOK, products, "Featured products retrieved successfully")
}

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := web.Decode(w, r, &req); err != nil {
		web.Fail(w, r, h.log, err)
		return
	}
	p, err := h.service.CreateProduct(r.Context(), req)
	if err != nil {
		web.Fail(w, r, h.log, err)
		return
	}
	web.Respond(w, http.StatusCreated, p, "Product created successfully")
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	id, err := web.PathID(r, "id")
	if err != nil {
		web.Fail(w, r, h.log, err)
		return
	}
	p, err := h.service.GetProduct(r.Context(), id)
	if err != nil {
		web.Fail(w, r, h.log, err)
		return
	}
	web.Respond(w, http.StatusOK, p, "Product retrieved successfully")
}

func (h *Handler) updateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := web.PathID(r, "id")
	if err != nil {
		web.Fail(w, r, h.log, err)
		return
	}
	var req UpdateRequest
	if err := web.Decode(w, r, &req); err != nil {
		web.Fail(w, r, h.log, err)
		return
	}
	p, err := h.service.UpdateProduct(r.Context(), id, req)
	if err != nil {
		web.Fail(w, r, h.log, err)
		return
	}
	web.Respond(w, http.StatusOK, p, "Product updated successfully")
}

func (h *Handler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := web.PathID(r, "id")
	if err != nil {
		web.Fail(w, r, h.log, err)
		return
	}
	if err := h.service.DeleteProduct(r.Context(), id); err != nil {
		web.Fail(w, r, h.log, err)
		return
	}
	web.Respond(w, http.StatusOK, nil, "Product deleted successfully")
}

func (h *Handler) bulkUpdate(w http.ResponseWriter, r *http.Request) {
	var req BulkUpdateRequest
	if err := web.Decode(w, r, &req); err != nil {
		web.Fail(w, r, h.log, err)
		return
	}
	n, err := h.service.BulkUpdate(r.Context(), req)
	if err != nil {
		web.Fail(w, r, h.log, err)
		return
	}
	web.Respond(w, http.StatusOK, map[string]int64{"updated": n},
		fmt.Sprintf("Successfully updated %d products", n))
}
