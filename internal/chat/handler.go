package chat

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/intragalactic-stranger/Adaptive-CV/internal/llm"
	"github.com/intragalactic-stranger/Adaptive-CV/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the orchestrator.
type Handler struct {
	Orchestrator *Orchestrator
}

// NewHandler constructs a Handler.
func NewHandler(o *Orchestrator) *Handler {
	return &Handler{Orchestrator: o}
}

// RegisterRoutes attaches chat routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/chat", h.send)
	rg.GET("/chat/history", h.history)
	rg.DELETE("/chat/history", h.reset)
}

type sendRequest struct {
	Message   string `json:"message"`
	Provider  string `json:"provider"`
	ModelName string `json:"model_name"`
	APIKey    string `json:"api_key"`
}

func (h *Handler) send(c *gin.Context) {
	var req sendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	override := llm.Credentials{
		Provider: req.Provider,
		Model:    req.ModelName,
		APIKey:   req.APIKey,
	}
	msg, created, err := h.Orchestrator.Send(c.Request.Context(), strings.TrimSpace(req.Message), override)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptyMessage):
			respond.Error(c, http.StatusBadRequest, "validation_error", "message is required", nil)
		case errors.Is(err, ErrBusy):
			respond.Error(c, http.StatusConflict, "busy", "a chat message is already being processed", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal", "chat failed", err.Error())
		}
		return
	}

	respond.OK(c, gin.H{
		"message":   msg,
		"proposals": created,
	})
}

func (h *Handler) history(c *gin.Context) {
	respond.OK(c, gin.H{"messages": h.Orchestrator.History()})
}

func (h *Handler) reset(c *gin.Context) {
	h.Orchestrator.Reset()
	respond.OK(c, gin.H{"ok": true})
}
