package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"pho-paradise-api/metrics"
	"pho-paradise-api/progression"

	"github.com/gin-gonic/gin"
)

type ProgressHandler struct {
	engine *progression.Engine
	logger *slog.Logger
}

func NewProgressHandler(engine *progression.Engine, logger *slog.Logger) *ProgressHandler {
	return &ProgressHandler{engine: engine, logger: logger.With("component", "progress_handler")}
}

// AutoProgress runs one sweep. Callers (a cron job or a polling client)
// decide the cadence; the endpoint is safe to hit as often as they like.
func (h *ProgressHandler) AutoProgress(c *gin.Context) {
	start := time.Now()
	result, err := h.engine.Sweep(c.Request.Context())
	metrics.SweepDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		h.logger.Error("sweep failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to auto-progress orders"})
		return
	}
	metrics.OrdersAdvanced.Add(float64(result.Advanced))

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"message":       fmt.Sprintf("Processed %d orders, updated %d", result.Examined, result.Advanced),
		"updated_count": result.Advanced,
	})
}
