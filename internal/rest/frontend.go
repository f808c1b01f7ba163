package rest

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// FrontendHandler serves a built single page application from dir. Paths that do not
// match a file fall back to index so client side routes keep working on reload.
type FrontendHandler struct {
	dir   string
	index string
}

func NewFrontendHandler(dir, index string) *FrontendHandler {
	return &FrontendHandler{dir: dir, index: index}
}

func (h *FrontendHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		http.NotFound(w, r)
		return
	}

	path := filepath.Join(h.dir, filepath.Clean("/"+r.URL.Path))
	fi, err := os.Stat(path)
	if os.IsNotExist(err) || (err == nil && fi.IsDir()) {
		http.ServeFile(w, r, filepath.Join(h.dir, h.index))
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	http.FileServer(http.Dir(h.dir)).ServeHTTP(w, r)
}
