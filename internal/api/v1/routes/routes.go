package routes

import (
	"github.com/gin-gonic/gin"

	"audio-transcriber/internal/api/v1/handlers"
	"audio-transcriber/internal/api/v1/services"
)

// RegisterRoutes registers all v1 API routes. History routes are always mounted; the
// services answer 503 when history is disabled.
func RegisterRoutes(router *gin.RouterGroup, container *ServiceContainer) {
	transcriptionHandler := handlers.NewTranscriptionHandler(container.TranscriptionService, container.DocumentService)
	transcriptions := router.Group("/transcriptions")
	{
		transcriptions.POST("", transcriptionHandler.Transcribe)
		transcriptions.POST("/download", transcriptionHandler.Download)
		transcriptions.GET("", transcriptionHandler.List)
		transcriptions.GET("/:id", transcriptionHandler.Get)
		transcriptions.GET("/:id/download", transcriptionHandler.DownloadRecord)
		transcriptions.DELETE("/:id", transcriptionHandler.Delete)
	}

	router.GET("/providers", transcriptionHandler.Providers)

	statsHandler := handlers.NewStatsHandler(container.StatsService)
	router.GET("/stats", statsHandler.GetSystemStats)

	exportHandler := handlers.NewExportHandler(container.ExportService)
	router.GET("/export", exportHandler.Export)
}

// ServiceContainer holds all services needed by handlers
type ServiceContainer struct {
	TranscriptionService services.TranscriptionService
	DocumentService      services.DocumentService
	StatsService         services.StatsService
	ExportService        services.ExportService
}
