package versions

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/intragalactic-stranger/Adaptive-CV/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the versions service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches version routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/resumes", h.list)
	rg.POST("/resumes", h.save)
	rg.POST("/resumes/:id/load", h.load)
	rg.PUT("/resumes/:id", h.rename)
	rg.DELETE("/resumes/:id", h.remove)
	rg.GET("/resumes/:id/artifact", h.artifact)
}

func (h *Handler) list(c *gin.Context) {
	out, err := h.Svc.List(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal", "failed to list versions", err.Error())
		return
	}
	if out == nil {
		out = []Version{}
	}
	respond.OK(c, gin.H{"versions": out})
}

type saveRequest struct {
	Name string `json:"name"`
}

func (h *Handler) save(c *gin.Context) {
	var req saveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	v, err := h.Svc.Save(c.Request.Context(), req.Name)
	if err != nil {
		h.serviceError(c, err)
		return
	}
	c.Set("versionId", v.ID)
	respond.JSON(c, http.StatusCreated, v)
}

func (h *Handler) load(c *gin.Context) {
	id := c.Param("id")
	c.Set("versionId", id)

	doc, err := h.Svc.Load(c.Request.Context(), id)
	if err != nil {
		h.serviceError(c, err)
		return
	}
	respond.OK(c, doc)
}

type renameRequest struct {
	Name string `json:"name"`
}

func (h *Handler) rename(c *gin.Context) {
	var req renameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	id := c.Param("id")
	c.Set("versionId", id)

	v, err := h.Svc.Rename(c.Request.Context(), id, req.Name)
	if err != nil {
		h.serviceError(c, err)
		return
	}
	respond.OK(c, v)
}

func (h *Handler) remove(c *gin.Context) {
	id := c.Param("id")
	c.Set("versionId", id)

	if err := h.Svc.Delete(c.Request.Context(), id); err != nil {
		h.serviceError(c, err)
		return
	}
	respond.OK(c, gin.H{"ok": true})
}

func (h *Handler) artifact(c *gin.Context) {
	body, err := h.Svc.OpenArtifact(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.serviceError(c, err)
		return
	}
	defer body.Close()

	c.Header("Content-Type", "application/pdf")
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, body)
}

func (h *Handler) serviceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "version not found", nil)
	case errors.Is(err, ErrNameTaken):
		respond.Error(c, http.StatusConflict, "name_taken", "version name already in use", nil)
	case errors.Is(err, ErrNoEditableData):
		respond.Error(c, http.StatusConflict, "no_editable_data", "this version has no editable resume data", nil)
	case errors.Is(err, ErrNoContent):
		respond.Error(c, http.StatusBadRequest, "validation_error", "no resume content to save", nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal", "version operation failed", err.Error())
	}
}
