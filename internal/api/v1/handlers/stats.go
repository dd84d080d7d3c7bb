package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"audio-transcriber/internal/api/middleware"
	"audio-transcriber/internal/api/v1/services"
)

// StatsHandler handles statistics-related HTTP requests
type StatsHandler struct {
	service services.StatsService
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(service services.StatsService) *StatsHandler {
	return &StatsHandler{
		service: service,
	}
}

// GetSystemStats handles GET /api/v1/stats
//
// @Summary History statistics
// @Tags stats
// @Produce json
// @Success 200 {object} dto.SystemStats
// @Failure 503 {object} errors.APIError "History disabled"
// @Router /stats [get]
func (h *StatsHandler) GetSystemStats(c *gin.Context) {
	stats, err := h.service.GetSystemStats(c.Request.Context())
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
