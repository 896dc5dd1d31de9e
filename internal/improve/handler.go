// Package improve rewrites resume content for a target job description.
package improve

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/intragalactic-stranger/Adaptive-CV/internal/cache"
	"github.com/intragalactic-stranger/Adaptive-CV/internal/llm"
	"github.com/intragalactic-stranger/Adaptive-CV/internal/settings"
	"github.com/intragalactic-stranger/Adaptive-CV/internal/shared/server/respond"
	"github.com/intragalactic-stranger/Adaptive-CV/internal/shared/telemetry"
)

// Handler serves one-shot content improvements.
type Handler struct {
	Settings  *settings.Service
	NewClient llm.Factory
	Cache     *cache.Cache
}

// NewHandler constructs a Handler.
func NewHandler(svc *settings.Service, factory llm.Factory, resultCache *cache.Cache) *Handler {
	return &Handler{Settings: svc, NewClient: factory, Cache: resultCache}
}

// RegisterRoutes attaches the improve route to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/improve", h.improve)
}

type improveRequest struct {
	Content        string `json:"content"`
	JobDescription string `json:"job_description"`
	Provider       string `json:"provider"`
	Model          string `json:"model_name"`
	APIKey         string `json:"api_key"`
}

func (h *Handler) improve(c *gin.Context) {
	var req improveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", err.Error())
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "content is required", nil)
		return
	}

	ctx := c.Request.Context()
	creds := h.Settings.Current().Merge(llm.Credentials{
		Provider: req.Provider,
		Model:    req.Model,
		APIKey:   req.APIKey,
	})

	cacheKey := cache.Key("improved", req.Content, req.JobDescription, creds.Provider, creds.Model)
	if raw, ok := h.Cache.Get(ctx, cacheKey); ok {
		respond.OK(c, gin.H{"improved_content": string(raw), "cached": true})
		return
	}

	client, err := h.NewClient(ctx, creds)
	if err != nil {
		if errors.Is(err, llm.ErrMissingAPIKey) {
			respond.Error(c, http.StatusBadRequest, "missing_api_key", "no API key configured", nil)
			return
		}
		respond.Error(c, http.StatusBadGateway, "improve_failed", "failed to reach the AI provider", err.Error())
		return
	}

	improved, err := client.Improve(ctx, req.Content, req.JobDescription)
	if err != nil {
		respond.Error(c, http.StatusBadGateway, "improve_failed", "failed to improve the content", err.Error())
		return
	}

	h.Cache.Set(ctx, cacheKey, []byte(improved), cache.ParsedTTL)
	telemetry.Info("content.improved", map[string]any{"provider": creds.Provider})
	respond.OK(c, gin.H{"improved_content": improved, "cached": false})
}
