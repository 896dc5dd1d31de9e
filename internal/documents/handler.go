package documents

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/intragalactic-stranger/Adaptive-CV/internal/shared/server/respond"
	"github.com/intragalactic-stranger/Adaptive-CV/resume/model"
)

// Handler wires HTTP handlers to the document store.
type Handler struct {
	Store *Store
}

// NewHandler constructs a Handler.
func NewHandler(store *Store) *Handler {
	return &Handler{Store: store}
}

// RegisterRoutes attaches document routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/document", h.get)
	rg.PUT("/document", h.replace)
}

func (h *Handler) get(c *gin.Context) {
	respond.OK(c, h.Store.Get())
}

func (h *Handler) replace(c *gin.Context) {
	var doc model.Document
	if err := c.ShouldBindJSON(&doc); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid document body", nil)
		return
	}
	respond.OK(c, h.Store.Replace(doc))
}
