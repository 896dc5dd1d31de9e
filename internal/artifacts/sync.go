// Package artifacts keeps a rendered PDF of the current document. It
// subscribes to the document store and re-renders on every replacement, so
// the artifact never lags behind the document it was rendered from.
package artifacts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"

	"github.com/intragalactic-stranger/Adaptive-CV/internal/cache"
	"github.com/intragalactic-stranger/Adaptive-CV/internal/shared/storage/object"
	"github.com/intragalactic-stranger/Adaptive-CV/internal/shared/telemetry"
	"github.com/intragalactic-stranger/Adaptive-CV/resume/model"
	"github.com/intragalactic-stranger/Adaptive-CV/resume/render"
)

// Sync renders documents and manages the lifecycle of the stored artifact.
type Sync struct {
	Renderer render.Renderer
	Store    object.ObjectStore
	Cache    *cache.Cache

	mu         sync.Mutex
	currentKey string
}

// NewSync constructs a Sync.
func NewSync(renderer render.Renderer, store object.ObjectStore, resultCache *cache.Cache) *Sync {
	return &Sync{Renderer: renderer, Store: store, Cache: resultCache}
}

// OnReplace is the document store observer. Render failures keep the
// previous artifact in place.
func (s *Sync) OnReplace(doc model.Document) {
	if doc.IsEmpty() {
		return
	}
	if _, _, err := s.Rerender(context.Background(), doc); err != nil {
		telemetry.Warn("artifact.render_failed", map[string]any{
			"error": err.Error(),
		})
	}
}

// Rerender renders the document, stores the PDF under a fresh key and
// installs it as the current artifact. The previous artifact object is
// deleted only after the new one is in place.
func (s *Sync) Rerender(ctx context.Context, doc model.Document) (string, []byte, error) {
	if doc.IsEmpty() {
		return "", nil, ErrNothingToRender
	}

	pdf, err := s.renderCached(ctx, doc)
	if err != nil {
		return "", nil, err
	}

	newKey := "artifacts/" + uuid.NewString() + ".pdf"
	if _, err := s.Store.SaveWithKey(ctx, newKey, "application/pdf", bytes.NewReader(pdf)); err != nil {
		return "", nil, fmt.Errorf("store artifact: %w", err)
	}

	s.mu.Lock()
	previous := s.currentKey
	s.currentKey = newKey
	s.mu.Unlock()

	if previous != "" {
		if err := s.Store.Delete(ctx, previous); err != nil {
			telemetry.Warn("artifact.release_failed", map[string]any{
				"key":   previous,
				"error": err.Error(),
			})
		}
	}

	telemetry.Info("artifact.installed", map[string]any{
		"key":      newKey,
		"released": previous,
		"bytes":    len(pdf),
	})
	return newKey, pdf, nil
}

func (s *Sync) renderCached(ctx context.Context, doc model.Document) ([]byte, error) {
	docJSON, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal document: %w", err)
	}
	cacheKey := cache.Key("artifact", string(docJSON))
	if pdf, ok := s.Cache.Get(ctx, cacheKey); ok {
		return pdf, nil
	}

	pdf, err := s.Renderer.Render(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	s.Cache.Set(ctx, cacheKey, pdf, cache.ArtifactTTL)
	return pdf, nil
}

// CurrentKey returns the storage key of the installed artifact, if any.
func (s *Sync) CurrentKey() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentKey
}

// Open streams the installed artifact.
func (s *Sync) Open(ctx context.Context) (io.ReadCloser, error) {
	key := s.CurrentKey()
	if key == "" {
		return nil, ErrNoArtifact
	}
	return s.Store.Open(ctx, key)
}
