// Package uploads handles resume file parsing and logo uploads.
package uploads

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/intragalactic-stranger/Adaptive-CV/internal/cache"
	"github.com/intragalactic-stranger/Adaptive-CV/internal/documents"
	"github.com/intragalactic-stranger/Adaptive-CV/internal/extract"
	"github.com/intragalactic-stranger/Adaptive-CV/internal/llm"
	"github.com/intragalactic-stranger/Adaptive-CV/internal/settings"
	"github.com/intragalactic-stranger/Adaptive-CV/internal/shared/server/respond"
	"github.com/intragalactic-stranger/Adaptive-CV/internal/shared/storage/object"
	"github.com/intragalactic-stranger/Adaptive-CV/internal/shared/telemetry"
	"github.com/intragalactic-stranger/Adaptive-CV/internal/shared/util"
	"github.com/intragalactic-stranger/Adaptive-CV/resume/model"
)

const (
	maxResumeSize = 10 << 20 // 10MB
	maxLogoSize   = 2 << 20  // 2MB
)

// Handler parses uploaded resumes into the document and stores logos.
type Handler struct {
	Docs      *documents.Store
	Settings  *settings.Service
	NewClient llm.Factory
	Cache     *cache.Cache
	Store     object.ObjectStore
}

// NewHandler constructs a Handler.
func NewHandler(docs *documents.Store, svc *settings.Service, factory llm.Factory, resultCache *cache.Cache, store object.ObjectStore) *Handler {
	return &Handler{Docs: docs, Settings: svc, NewClient: factory, Cache: resultCache, Store: store}
}

// RegisterRoutes attaches upload routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/parse", h.parse)
	rg.POST("/upload-logo", h.uploadLogo)
}

func (h *Handler) parse(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxResumeSize)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}

	ctx := c.Request.Context()
	text, err := extract.TextFromBytes(ctx, data, fileHeader.Filename)
	if err != nil {
		switch {
		case errors.Is(err, extract.ErrUnsupportedType):
			respond.Error(c, http.StatusBadRequest, "validation_error", "only PDF and TeX files are supported", nil)
		case errors.Is(err, extract.ErrNoText):
			respond.Error(c, http.StatusUnprocessableEntity, "no_text", "could not extract text from the file", nil)
		default:
			respond.Error(c, http.StatusUnprocessableEntity, "extract_failed", "failed to read the file", err.Error())
		}
		return
	}

	creds := h.Settings.Current().Merge(llm.Credentials{
		Provider: c.PostForm("provider"),
		Model:    c.PostForm("model_name"),
		APIKey:   c.PostForm("api_key"),
	})

	doc, cached, err := h.parseCached(c, data, text, creds)
	if err != nil {
		if errors.Is(err, llm.ErrMissingAPIKey) {
			respond.Error(c, http.StatusBadRequest, "missing_api_key", "no API key configured", nil)
			return
		}
		respond.Error(c, http.StatusBadGateway, "parse_failed", "failed to parse the resume", err.Error())
		return
	}

	h.storeOriginal(c, fileHeader.Filename, data)
	installed := h.Docs.Replace(doc)

	telemetry.Info("resume.parsed", map[string]any{
		"file":   fileHeader.Filename,
		"cached": cached,
	})
	respond.OK(c, installed)
}

func (h *Handler) parseCached(c *gin.Context, data []byte, text string, creds llm.Credentials) (model.Document, bool, error) {
	ctx := c.Request.Context()
	cacheKey := cache.Key("parsed", string(data), creds.Provider, creds.Model)
	if raw, ok := h.Cache.Get(ctx, cacheKey); ok {
		var doc model.Document
		if err := json.Unmarshal(raw, &doc); err == nil {
			return doc.Normalized(), true, nil
		}
	}

	client, err := h.NewClient(ctx, creds)
	if err != nil {
		return model.Document{}, false, err
	}
	doc, err := client.ParseResume(ctx, text)
	if err != nil {
		return model.Document{}, false, err
	}
	if raw, err := json.Marshal(doc); err == nil {
		h.Cache.Set(ctx, cacheKey, raw, cache.ParsedTTL)
	}
	return doc, false, nil
}

// storeOriginal keeps the uploaded file for reference. Best-effort.
func (h *Handler) storeOriginal(c *gin.Context, fileName string, data []byte) {
	clean, err := util.SanitizeFileName(fileName)
	if err != nil {
		return
	}
	key := fmt.Sprintf("uploads/%s_%s", uuid.NewString(), clean)
	if _, err := h.Store.SaveWithKey(c.Request.Context(), key, http.DetectContentType(data), bytes.NewReader(data)); err != nil {
		telemetry.Warn("upload.store_failed", map[string]any{"key": key, "error": err.Error()})
	}
}

func (h *Handler) uploadLogo(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxLogoSize)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}

	var ext string
	switch http.DetectContentType(data) {
	case "image/png":
		ext = ".png"
	case "image/jpeg":
		ext = ".jpg"
	default:
		respond.Error(c, http.StatusBadRequest, "validation_error", "logo must be a PNG or JPEG image", nil)
		return
	}

	key := "logos/" + uuid.NewString() + ext
	if _, err := h.Store.SaveWithKey(c.Request.Context(), key, http.DetectContentType(data), bytes.NewReader(data)); err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal", "failed to store logo", err.Error())
		return
	}

	doc := h.Docs.Get()
	doc.LogoPath = key
	h.Docs.Replace(doc)

	respond.OK(c, gin.H{"logo_path": key})
}
