package proposals

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/intragalactic-stranger/Adaptive-CV/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the proposal engine.
type Handler struct {
	Engine *Engine
}

// NewHandler constructs a Handler.
func NewHandler(engine *Engine) *Handler {
	return &Handler{Engine: engine}
}

// RegisterRoutes attaches proposal routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/proposals", h.list)
	rg.GET("/proposals/:id", h.get)
	rg.POST("/proposals/:id/decision", h.decide)
}

func (h *Handler) list(c *gin.Context) {
	if c.Query("status") == "pending" {
		respond.OK(c, gin.H{"proposals": h.Engine.Pending()})
		return
	}
	respond.OK(c, gin.H{"proposals": h.Engine.List()})
}

func (h *Handler) get(c *gin.Context) {
	p, err := h.Engine.Get(c.Param("id"))
	if err != nil {
		respond.Error(c, http.StatusNotFound, "not_found", "proposal not found", nil)
		return
	}
	respond.OK(c, p)
}

type decisionRequest struct {
	Decision string `json:"decision"`
}

func (h *Handler) decide(c *gin.Context) {
	var req decisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	id := c.Param("id")
	c.Set("proposalId", id)

	switch req.Decision {
	case "approve":
		p, doc, err := h.Engine.Approve(id)
		if err != nil {
			h.decisionError(c, err)
			return
		}
		respond.OK(c, gin.H{"proposal": p, "document": doc})
	case "reject":
		p, err := h.Engine.Reject(id)
		if err != nil {
			h.decisionError(c, err)
			return
		}
		respond.OK(c, gin.H{"proposal": p})
	default:
		respond.Error(c, http.StatusBadRequest, "validation_error", "decision must be approve or reject", nil)
	}
}

func (h *Handler) decisionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "proposal not found", nil)
	case errors.Is(err, ErrAlreadyDecided):
		respond.Error(c, http.StatusConflict, "already_decided", "proposal already decided", nil)
	case errors.Is(err, ErrMalformed):
		respond.Error(c, http.StatusUnprocessableEntity, "malformed_proposal", "proposal cannot be applied as proposed", err.Error())
	default:
		respond.Error(c, http.StatusInternalServerError, "apply_failed", "failed to apply proposal", err.Error())
	}
}
