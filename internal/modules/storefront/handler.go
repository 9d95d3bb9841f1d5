// Package storefront serves the bundled single-page frontend.
package storefront

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
)

const indexFile = "/index.html"

// Handler serves files from a static directory. Paths that do not name a
// file fall back to index.html so client-side routes resolve.
type Handler struct {
	root http.FileSystem
}

func NewHandler(dir string) *Handler {
	return &Handler{root: http.Dir(dir)}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	name := path.Clean("/" + r.URL.Path)
	if name != "/" && h.serve(w, r, name) {
		return
	}
	if h.serve(w, r, indexFile) {
		return
	}
	http.Error(w, "index.html not found", http.StatusNotFound)
}

// serve writes the named regular file and reports whether it existed.
func (h *Handler) serve(w http.ResponseWriter, r *http.Request, name string) bool {
	f, err := h.root.Open(name)
	if err != nil {
		return false
	}
	defer f.Close()
	fi, err := f.Stat()
	if err != nil || !fi.Mode().IsRegular() {
		return false
	}
	http.ServeContent(w, r, fi.Name(), fi.ModTime(), f)
	return true
}

// Exists reports whether dir holds an index.html.
func Exists(dir string) bool {
	fi, err := os.Stat(filepath.Join(dir, filepath.FromSlash(indexFile)))
	return err == nil && fi.Mode().IsRegular()
}
