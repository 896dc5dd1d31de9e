package artifacts

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/intragalactic-stranger/Adaptive-CV/internal/documents"
	"github.com/intragalactic-stranger/Adaptive-CV/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the artifact sync.
type Handler struct {
	Sync *Sync
	Docs *documents.Store
}

// NewHandler constructs a Handler.
func NewHandler(sync *Sync, docs *documents.Store) *Handler {
	return &Handler{Sync: sync, Docs: docs}
}

// RegisterRoutes attaches artifact routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/generate", h.generate)
	rg.GET("/artifact", h.artifact)
}

func (h *Handler) generate(c *gin.Context) {
	doc := h.Docs.Get()
	_, pdf, err := h.Sync.Rerender(c.Request.Context(), doc)
	if err != nil {
		if errors.Is(err, ErrNothingToRender) {
			respond.Error(c, http.StatusBadRequest, "validation_error", "no resume data to generate", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "render_failed", "failed to generate PDF", err.Error())
		return
	}
	c.Header("Content-Disposition", `attachment; filename="resume.pdf"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

func (h *Handler) artifact(c *gin.Context) {
	body, err := h.Sync.Open(c.Request.Context())
	if err != nil {
		if errors.Is(err, ErrNoArtifact) {
			respond.Error(c, http.StatusNotFound, "not_found", "no artifact available", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal", "failed to open artifact", err.Error())
		return
	}
	defer body.Close()

	c.Header("Content-Type", "application/pdf")
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, body)
}
