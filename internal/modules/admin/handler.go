package admin

import (
	"net/http"

	"github.com/georgemunganga/storefront-backend/internal/infra/web"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler exposes the /admin endpoints other than product bulk update,
// which the product module owns.
type Handler struct {
	service Service
	log     *zap.Logger
}

func NewHandler(service Service, log *zap.Logger) *Handler {
	return &Handler{service: service, log: log}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/admin", func(r chi.Router) {
		r.Get("/settings", h.getSettings)
		r.Post("/settings", h.saveSetting)

		r.Get("/layout", h.getLayout)
		r.Post("/layout", h.createLayout)
		r.Put("/layout/{id}", h.updateLayout)
		r.Delete("/layout/{id}", h.deleteLayout)

		r.Get("/dashboard/stats", h.dashboardStats)
	})
}

func (h *Handler) getSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.service.Settings(r.Context())
	if err != nil {
		web.Fail(w, r, h.log, err)
		return
	}
	web.Respond(w, http.StatusOK, settings, "Settings retrieved successfully")
}

func (h *Handler) saveSetting(w http.ResponseWriter, r *http.Request) {
	var req SaveSettingRequest
	if err := web.Decode(w, r, &req); err != nil {
		web.Fail(w, r, h.log, err)
		return
	}
	st, err := h.service.SaveSetting(r.Context(), req)
	if err != nil {
		web.Fail(w, r, h.log, err)
		return
	}
	web.Respond(w, http.StatusOK, st, "Setting saved successfully")
}

func (h *Handler) getLayout(w http.ResponseWriter, r *http.Request) {
	layout, err := h.service.Layout(r.Context())
	if err != nil {
		web.Fail(w, r, h.log, err)
		return
	}
	web.Respond(w, http.StatusOK, layout, "Layout configuration retrieved successfully")
}

func (h *Handler) createLayout(w http.ResponseWriter, r *http.Request) {
	var req CreateLayoutRequest
	if err := web.Decode(w, r, &req); err != nil {
		web.Fail(w, r, h.log, err)
		return
	}
	item, err := h.service.CreateLayout(r.Context(), req)
	if err != nil {
		web.Fail(w, r, h.log, err)
		return
	}
	web.Respond(w, http.StatusCreated, item, "Layout item created successfully")
}

func (h *Handler) updateLayout(w http.ResponseWriter, r *http.Request) {
	id, err := web.PathID(r, "id")
	if err != nil {
		web.Fail(w, r, h.log, err)
		return
	}
	var req UpdateLayoutRequest
	if err := web.Decode(w, r, &req); err != nil {
		web.Fail(w, r, h.log, err)
		return
	}
	item, err := h.service.UpdateLayout(r.Context(), id, req)
	if err != nil {
		web.Fail(w, r, h.log, err)
		return
	}
	web.Respond(w, http.StatusOK, item, "Layout item updated successfully")
}

func (h *Handler) deleteLayout(w http.ResponseWriter, r *http.Request) {
	id, err := web.PathID(r, "id")
	if err != nil {
		web.Fail(w, r, h.log, err)
		return
	}
	if err := h.service.DeleteLayout(r.Context(), id); err != nil {
		web.Fail(w, r, h.log, err)
		return
	}
	web.Respond(w, http.StatusOK, nil, "Layout item deleted successfully")
}

func (h *Handler) dashboardStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.DashboardStats(r.Context())
	if err != nil {
		web.Fail(w, r, h.log, err)
		return
	}
	web.Respond(w, http.StatusOK, stats, "Dashboard statistics retrieved successfully")
}
