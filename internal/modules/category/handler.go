package category

import (
	"net/http"

	"github.com/georgemunganga/storefront-backend/internal/infra/web"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	log     *zap.Logger
}

func NewHandler(service Service, log *zap.Logger) *Handler {
	return &Handler{service: service, log: log}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/categories", func(r chi.Router) {
		r.Get("/", h.list)
		r.Post("/", h.create)
		r.Get("/{id}", h.get)
		r.Put("/{id}", h.update)
		r.Delete("/{id}", h.delete)
	})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	q := web.NewQuery(r)
	f := Filter{PlatformID: q.UUID("platform_id")}
	if q.Err != nil {
		web.Fail(w, r, h.log, q.Err)
		return
	}
	categories, err := h.service.List(r.Context(), f)
	if err != nil {
		web.Fail(w, r, h.log, err)
		return
	}
	web.Respond(w, http.StatusOK, categories, "Categories retrieved successfully")
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := web.Decode(w, r, &req); err != nil {
		web.Fail(w, r, h.log, err)
		return
	}
	c, err := h.service.Create(r.Context(), req)
	if err != nil {
		web.Fail(w, r, h.log, err)
		return
	}
	web.Respond(w, http.StatusCreated, c, "Category created successfully")
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := web.PathID(r, "id")
	if err != nil {
		web.Fail(w, r, h.log, err)
		return
	}
	c, err := h.service.Get(r.Context(), id)
	if err != nil {
		web.Fail(w, r, h.log, err)
		return
	}
	web.Respond(w, http.StatusOK, c, "Category retrieved successfully")
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
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
	c, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		web.Fail(w, r, h.log, err)
		return
	}
	web.Respond(w, http.StatusOK, c, "Category updated successfully")
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := web.PathID(r, "id")
	if err != nil {
		web.Fail(w, r, h.log, err)
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		web.Fail(w, r, h.log, err)
		return
	}
	web.Respond(w, http.StatusOK, nil, "Category deleted successfully")
}
