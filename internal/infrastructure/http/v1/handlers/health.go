package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kontora/internal/storage/kv"
)

// HealthHandler provides health check endpoints.
type HealthHandler struct {
	store      kv.Store
	appVersion string
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(store kv.Store, appVersion string) *HealthHandler {
	return &HealthHandler{store: store, appVersion: appVersion}
}

// Live handles liveness probe (is the process alive?).
// GET /health/live
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// Ready handles readiness probe (can the store serve reads?).
// GET /health/ready
func (h *HealthHandler) Ready(c *gin.Context) {
	if _, err := h.store.Keys(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "error",
			"checks": map[string]string{
				"store": "unhealthy: " + err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"checks": map[string]string{
			"store": "healthy",
		},
	})
}

// Info returns application information.
// GET /health/info
func (h *HealthHandler) Info(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"app":     "kontora",
		"version": h.appVersion,
	})
}
