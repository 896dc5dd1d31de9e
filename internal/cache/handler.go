package cache

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/intragalactic-stranger/Adaptive-CV/internal/shared/server/respond"
	"github.com/intragalactic-stranger/Adaptive-CV/internal/shared/telemetry"
)

// Handler exposes cache stats and a manual flush.
type Handler struct {
	Cache *Cache
}

// NewHandler constructs a Handler.
func NewHandler(c *Cache) *Handler {
	return &Handler{Cache: c}
}

// RegisterRoutes attaches cache routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/cache/stats", h.stats)
	rg.POST("/cache/clear", h.clear)
}

func (h *Handler) stats(c *gin.Context) {
	stats, err := h.Cache.Stats(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal", "failed to read cache stats", err.Error())
		return
	}
	respond.OK(c, stats)
}

func (h *Handler) clear(c *gin.Context) {
	removed, err := h.Cache.Clear(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal", "failed to clear cache", err.Error())
		return
	}
	telemetry.Info("cache.cleared", map[string]any{"removed": removed})
	respond.OK(c, gin.H{"removed": removed})
}
