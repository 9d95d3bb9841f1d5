package main

import (
	"net/http"

	"github.com/georgemunganga/storefront-backend/internal/infra/config"
	"github.com/georgemunganga/storefront-backend/internal/infra/middleware"
	"github.com/georgemunganga/storefront-backend/internal/infra/web"
	"github.com/georgemunganga/storefront-backend/internal/modules/admin"
	"github.com/georgemunganga/storefront-backend/internal/modules/category"
	"github.com/georgemunganga/storefront-backend/internal/modules/order"
	"github.com/georgemunganga/storefront-backend/internal/modules/platform"
	"github.com/georgemunganga/storefront-backend/internal/modules/product"
	"github.com/georgemunganga/storefront-backend/internal/modules/seed"
	"github.com/georgemunganga/storefront-backend/internal/modules/storefront"
	"github.com/georgemunganga/storefront-backend/internal/modules/subcategory"
	"github.com/georgemunganga/storefront-backend/internal/modules/vendor"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type services struct {
	platforms     platform.Service
	categories    category.Service
	subcategories subcategory.Service
	vendors       vendor.Service
	products      product.Service
	orders        order.Service
	admin         admin.Service
}

func newServices(db *sqlx.DB, rec order.Recorder) services {
	return services{
		platforms:     platform.NewService(platform.NewPostgresRepository(db)),
		categories:    category.NewService(category.NewPostgresRepository(db)),
		subcategories: subcategory.NewService(subcategory.NewPostgresRepository(db)),
		vendors:       vendor.NewService(vendor.NewPostgresRepository(db)),
		products:      product.NewService(product.NewPostgresRepository(db)),
		orders:        order.NewService(order.NewPostgresRepository(db), rec),
		admin:         admin.NewService(admin.NewPostgresRepository(db)),
	}
}

func (s services) seed() seed.Services {
	return seed.Services{
		Platforms:     s.platforms,
		Categories:    s.categories,
		Subcategories: s.subcategories,
		Vendors:       s.vendors,
		Products:      s.products,
	}
}

type routerDeps struct {
	cfg      *config.Config
	log      *zap.Logger
	db       *sqlx.DB
	svc      services
	metrics  *middleware.Metrics
	limiter  *middleware.RateLimiter
	gatherer prometheus.Gatherer
}

func newRouter(d routerDeps) http.Handler {
	router := chi.NewRouter()
	router.Use(chimw.RequestID)
	router.Use(chimw.RealIP)
	router.Use(middleware.Logger(d.log))
	router.Use(chimw.Recoverer)
	router.Use(d.metrics.Handler)
	router.Use(middleware.CORS(d.cfg.HTTP.AllowedOrigins))

	router.Get("/healthz", healthz(d.db, d.log))
	router.Handle("/metrics", promhttp.HandlerFor(d.gatherer, promhttp.HandlerOpts{}))

	maxPerPage := d.cfg.HTTP.MaxPerPage
	router.Route("/api", func(api chi.Router) {
		api.Use(d.limiter.Handler)
		api.NotFound(func(w http.ResponseWriter, r *http.Request) {
			web.WriteError(w, http.StatusNotFound, "resource not found")
		})

		// ── Catalogue ───────────────────────────────────────────
		platform.NewHandler(d.svc.platforms, d.log).RegisterRoutes(api)
		category.NewHandler(d.svc.categories, d.log).RegisterRoutes(api)
		subcategory.NewHandler(d.svc.subcategories, d.log).RegisterRoutes(api)
		vendor.NewHandler(d.svc.vendors, d.log).RegisterRoutes(api)
		product.NewHandler(d.svc.products, d.log, maxPerPage).RegisterRoutes(api)

		// ── Orders & Admin ──────────────────────────────────────
		order.NewHandler(d.svc.orders, d.log, maxPerPage).RegisterRoutes(api)
		admin.NewHandler(d.svc.admin, d.log).RegisterRoutes(api)
	})

	router.NotFound(storefront.NewHandler(d.cfg.Server.StaticDir).ServeHTTP)
	return router
}

func healthz(db *sqlx.DB, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			log.Warn("health check failed", zap.Error(err))
			web.WriteError(w, http.StatusServiceUnavailable, "database unavailable")
			return
		}
		web.Respond(w, http.StatusOK, map[string]string{"status": "ok"}, "healthy")
	}
}
