package rest

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// FrontendHandler serves the dashboard SPA build. Paths that do not name an
// existing file fall back to the index so client-side routes resolve.
type FrontendHandler struct {
	staticDir string
	indexFile string
	files     http.Handler
}

func NewFrontendHandler(staticDir, indexFile string) *FrontendHandler {
	return &FrontendHandler{
		staticDir: staticDir,
		indexFile: indexFile,
		files:     http.FileServer(http.Dir(staticDir)),
	}
}

func (h *FrontendHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		http.NotFound(w, r)
		return
	}

	path := filepath.Join(h.staticDir, filepath.Clean("/"+r.URL.Path))
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		http.ServeFile(w, r, filepath.Join(h.staticDir, h.indexFile))
		return
	}
	h.files.ServeHTTP(w, r)
}
