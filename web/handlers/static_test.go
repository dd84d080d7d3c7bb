package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	files := fstest.MapFS{
		"index.html": {Data: []byte("<h1>Transcriptor de Audio</h1>")},
		"app.js":     {Data: []byte("console.log(1)")},
	}
	h := NewStaticHandler(files)
	r := gin.New()
	r.GET("/", h.Index)
	r.GET("/static/*filepath", h.Asset)
	return r
}

func TestStaticHandler(t *testing.T) {
	tests := []struct {
		path        string
		status      int
		contentType string
		cache       string
	}{
		{"/", http.StatusOK, "text/html; charset=utf-8", "no-cache"},
		{"/static/app.js", http.StatusOK, "application/javascript; charset=utf-8", "public, max-age=3600"},
		{"/static/missing.css", http.StatusNotFound, "", ""},
		{"/static/../index.html", http.StatusOK, "text/html; charset=utf-8", "public, max-age=3600"},
		{"/static/", http.StatusNotFound, "", ""},
	}

	r := newRouter()
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.status, rec.Code)
			if tt.status == http.StatusOK {
				assert.Equal(t, tt.contentType, rec.Header().Get("Content-Type"))
				assert.Equal(t, tt.cache, rec.Header().Get("Cache-Control"))
			}
		})
	}
}

func TestGetContentType(t *testing.T) {
	assert.Equal(t, "text/css; charset=utf-8", getContentType("styles.CSS"))
	assert.Equal(t, "application/octet-stream", getContentType("blob"))
}
