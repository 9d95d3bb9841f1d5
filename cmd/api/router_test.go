package main

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/georgemunganga/storefront-backend/internal/infra/config"
	"github.com/georgemunganga/storefront-backend/internal/infra/middleware"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRouter(t *testing.T, staticDir string) (http.Handler, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	db := sqlx.NewDb(sqlDB, "postgres")

	cfg := &config.Config{
		Server: config.ServerConfig{StaticDir: staticDir},
		HTTP:   config.HTTPConfig{AllowedOrigins: []string{"*"}, MaxPerPage: 100},
	}
	log := zap.NewNop()
	reg := prometheus.NewRegistry()
	metrics := middleware.NewMetrics(reg)
	return newRouter(routerDeps{
		cfg:      cfg,
		log:      log,
		db:       db,
		svc:      newServices(db, metrics),
		metrics:  metrics,
		limiter:  middleware.NewRateLimiter(0, 0, log),
		gatherer: reg,
	}), mock
}

func serve(h http.Handler, method, url string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(method, url, nil))
	return w
}

func TestHealthz(t *testing.T) {
	router, mock := newTestRouter(t, t.TempDir())

	mock.ExpectPing()
	w := serve(router, http.MethodGet, "/healthz")
	assert.Equal(t, http.StatusOK, w.Code)

	mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	w = serve(router, http.MethodGet, "/healthz")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
}

func TestAPIRoutesAreMounted(t *testing.T) {
	router, mock := newTestRouter(t, t.TempDir())
	mock.ExpectQuery(regexp.QuoteMeta("FROM platforms ORDER BY platform_name")).
		WillReturnRows(sqlmock.NewRows([]string{"platform_id", "platform_name"}).
			AddRow(uuid.NewString(), "Facebook"))

	w := serve(router, http.MethodGet, "/api/platforms")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"platform_name":"Facebook"`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUnknownAPIPathIsJSON404(t *testing.T) {
	router, _ := newTestRouter(t, t.TempDir())

	w := serve(router, http.MethodGet, "/api/does-not-exist")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"success":false,"message":"resource not found"}`, w.Body.String())
}

func TestStorefrontFallback(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>shop</html>"), 0o644))
	router, _ := newTestRouter(t, dir)

	w := serve(router, http.MethodGet, "/checkout")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "<html>shop</html>", w.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	router, _ := newTestRouter(t, t.TempDir())
	serve(router, http.MethodGet, "/api/does-not-exist")

	w := serve(router, http.MethodGet, "/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "storefront_http_requests_total")
}
