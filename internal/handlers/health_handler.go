package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/ayanadankhan/wellYou-be-new-sub001/internal/logger"

	"github.com/gin-gonic/gin"
)

// Pinger - все, что умеет проверить соединение с БД (*sql.DB)
type Pinger interface {
	PingContext(ctx context.Context) error
}

type HealthHandler struct {
	pinger Pinger
}

func NewHealthHandler(pinger Pinger) *HealthHandler {
	return &HealthHandler{pinger: pinger}
}

func (h *HealthHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/health", h.Health)
}

// Health godoc
// @Summary Проверка работоспособности
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	dbStatus, overall := "up", "healthy"
	status := http.StatusOK

	if h.pinger != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.pinger.PingContext(ctx); err != nil {
			logger.CtxWithError(c.Request.Context(), "Health check: database ping failed", err)
			dbStatus, overall = "down", "unhealthy"
			status = http.StatusServiceUnavailable
		}
	}

	c.JSON(status, gin.H{
		"status":   overall,
		"database": dbStatus,
		"time":     time.Now().UTC(),
	})
}
