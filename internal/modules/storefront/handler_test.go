package storefront

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, body string) {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
}

func get(h http.Handler, url string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, url, nil))
	return w
}

func TestServesFilesWithIndexFallback(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "index.html", "<html>app</html>")
	writeFile(t, dir, "assets/app.js", "console.log(1)")
	h := NewHandler(dir)

	tests := []struct {
		url  string
		body string
	}{
		{"/", "<html>app</html>"},
		{"/assets/app.js", "console.log(1)"},
		{"/products/42", "<html>app</html>"},
		{"/assets", "<html>app</html>"},
		{"/../../etc/passwd", "<html>app</html>"},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			w := get(h, tt.url)
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.body, w.Body.String())
		})
	}
	assert.True(t, Exists(dir))
}

func TestMissingIndex(t *testing.T) {
	dir := t.TempDir()
	h := NewHandler(dir)

	w := get(h, "/anything")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "index.html not found")
	assert.False(t, Exists(dir))
}

func TestRejectsWrites(t *testing.T) {
	w := httptest.NewRecorder()
	NewHandler(t.TempDir()).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
