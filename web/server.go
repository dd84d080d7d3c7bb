package web

import (
	"embed"
	"io/fs"

	"github.com/gin-gonic/gin"

	"audio-transcriber/web/handlers"
)

//go:embed static
var content embed.FS

// Static returns the embedded page assets rooted at static/.
func Static() fs.FS {
	sub, err := fs.Sub(content, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// Register mounts the upload page at / and its assets under /static.
func Register(router *gin.Engine) {
	staticHandler := handlers.NewStaticHandler(Static())
	router.GET("/", staticHandler.Index)
	router.GET("/index.html", staticHandler.Index)
	router.GET("/static/*filepath", staticHandler.Asset)
}
