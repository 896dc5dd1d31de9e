package settings

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/intragalactic-stranger/Adaptive-CV/internal/llm"
	"github.com/intragalactic-stranger/Adaptive-CV/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the settings service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches settings routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/settings", h.get)
	rg.PUT("/settings", h.update)
}

type settingsResponse struct {
	Provider  string `json:"provider"`
	ModelName string `json:"model_name"`
	HasAPIKey bool   `json:"has_api_key"`
}

func toResponse(creds llm.Credentials) settingsResponse {
	return settingsResponse{
		Provider:  creds.Provider,
		ModelName: creds.Model,
		HasAPIKey: strings.TrimSpace(creds.APIKey) != "",
	}
}

func (h *Handler) get(c *gin.Context) {
	respond.OK(c, toResponse(h.Svc.Current()))
}

func (h *Handler) update(c *gin.Context) {
	var req llm.Credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	next, err := h.Svc.Update(c.Request.Context(), req)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal", "failed to save settings", err.Error())
		return
	}
	respond.OK(c, toResponse(next))
}
