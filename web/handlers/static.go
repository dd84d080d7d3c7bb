package handlers

import (
	"io/fs"
	"net/http"
	"path"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

// StaticHandler serves the upload page and its assets from an fs.FS
type StaticHandler struct {
	files fs.FS
}

// NewStaticHandler creates a new static file handler
func NewStaticHandler(files fs.FS) *StaticHandler {
	return &StaticHandler{files: files}
}

// Index serves index.html. It is never cached so a new build is picked up at once.
func (h *StaticHandler) Index(c *gin.Context) {
	c.Header("Cache-Control", "no-cache")
	h.serveFile(c, "index.html")
}

// Asset serves /static/*filepath
func (h *StaticHandler) Asset(c *gin.Context) {
	name := strings.TrimPrefix(path.Clean("/"+c.Param("filepath")), "/")
	if name == "" || name == "." {
		c.Status(http.StatusNotFound)
		return
	}
	c.Header("Cache-Control", "public, max-age=3600")
	h.serveFile(c, name)
}

func (h *StaticHandler) serveFile(c *gin.Context, name string) {
	data, err := fs.ReadFile(h.files, name)
	if err != nil {
		c.Status(http.StatusNotFound)
		return
	}
	c.Data(http.StatusOK, getContentType(name), data)
}

// getContentType returns the appropriate content type for a file
func getContentType(name string) string {
	ext := strings.ToLower(filepath.Ext(name))

	switch ext {
	case ".html":
		return "text/html; charset=utf-8"
	case ".css":
		return "text/css; charset=utf-8"
	case ".js":
		return "application/javascript; charset=utf-8"
	case ".json":
		return "application/json"
	case ".png":
		return "image/png"
	case ".svg":
		return "image/svg+xml"
	case ".ico":
		return "image/x-icon"
	default:
		return "application/octet-stream"
	}
}
