package order

import (
	"net/http"

	"github.com/georgemunganga/storefront-backend/internal/infra/web"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler exposes order HTTP endpoints.
type Handler struct {
	service    Service
	log        *zap.Logger
	maxPerPage int
}

func NewHandler(service Service, log *zap.Logger, maxPerPage int) *Handler {
	return &Handler{service: service, log: log, maxPerPage: maxPerPage}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/orders", func(r chi.Router) {
		r.Get("/", h.listOrders)         // GET    /api/orders?status=pending&page=1
		r.Post("/", h.placeOrder)        // POST   /api/orders
		r.Get("/stats", h.getStats)      // GET    /api/orders/stats
		r.Get("/{id}", h.getOrder)       // GET    /api/orders/{id}
		r.Put("/{id}", h.updateOrder)    // PUT    /api/orders/{id}
		r.Delete("/{id}", h.deleteOrder) // DELETE /api/orders/{id}
	})
}

func (h *Handler) placeOrder(w http.ResponseWriter, r *http.Request) {
	var req PlaceOrderRequest
	if err := web.Decode(w, r, &req); err != nil {
		web.Fail(w, r, h.log, err)
		return
	}
	o, err := h.service.PlaceOrder(r.Context(), req)
	if err != nil {
		web.Fail(w, r, h.log, err)
		return
	}
	h.log.Info("order placed",
		zap.String("order_id", o.ID.String()),
		zap.Int("items", len(o.Items)),
		zap.String("total_amount", o.TotalAmount.String()))
	web.Respond(w, http.StatusCreated, o, "Order created successfully")
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	q := web.NewQuery(r)
	var f ListFilter
	if s := q.String("status"); s != nil {
		st := Status(*s)
		f.Status = &st
	}
	if s := q.String("payment_status"); s != nil {
		ps := PaymentStatus(*s)
		f.PaymentStatus = &ps
	}
	f.UserID = q.UUID("user_id")
	page := q.Page(h.maxPerPage)
	if q.Err != nil {
		web.Fail(w, r, h.log, q.Err)
		return
	}

	orders, p, err := h.service.ListOrders(r.Context(), f, page)
	if err != nil {
		web.Fail(w, r, h.log, err)
		return
	}
	web.RespondPage(w, orders, p, "Orders retrieved successfully")
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	id, err := web.PathID(r, "id")
	if err != nil {
		web.Fail(w, r, h.log, err)
		return
	}
	o, err := h.service.GetOrder(r.Context(), id)
	if err != nil {
		web.Fail(w, r, h.log, err)
		return
	}
	web.Respond(w, http.StatusOK, o, "Order retrieved successfully")
}

func (h *Handler) updateOrder(w http.ResponseWriter, r *http.Request) {
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
	o, err := h.service.UpdateOrder(r.Context(), id, req)
	if err != nil {
		web.Fail(w, r, h.log, err)
		return
	}
	web.Respond(w, http.StatusOK, o, "Order updated successfully")
}

func (h *Handler) deleteOrder(w http.ResponseWriter, r *http.Request) {
	id, err := web.PathID(r, "id")
	if err != nil {
		web.Fail(w, r, h.log, err)
		return
	}
	if err := h.service.DeleteOrder(r.Context(), id); err != nil {
		web.Fail(w, r, h.log, err)
		return
	}
	web.Respond(w, http.StatusOK, nil, "Order deleted successfully")
}

func (h *Handler) getStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		web.Fail(w, r, h.log, err)
		return
	}
	web.Respond(w, http.StatusOK, stats, "Order statistics retrieved successfully")
}
