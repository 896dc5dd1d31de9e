// Package settings persists the AI provider configuration. The stored value
// survives restarts via the object store and can be overridden per request.
package settings

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/intragalactic-stranger/Adaptive-CV/internal/llm"
	"github.com/intragalactic-stranger/Adaptive-CV/internal/shared/storage/object"
	"github.com/intragalactic-stranger/Adaptive-CV/internal/shared/telemetry"
)

const storageKey = "settings/model_config.json"

// Service owns the current provider settings.
type Service struct {
	Store object.ObjectStore

	mu      sync.Mutex
	current llm.Credentials
}

// NewService constructs a Service seeded with defaults from configuration.
func NewService(store object.ObjectStore, defaults llm.Credentials) *Service {
	return &Service{Store: store, current: defaults}
}

// Load overlays persisted settings onto the defaults. Missing or unreadable
// stored settings are not an error; the defaults stand.
func (s *Service) Load(ctx context.Context) {
	body, err := s.Store.Open(ctx, storageKey)
	if err != nil {
		return
	}
	defer body.Close()

	raw, err := io.ReadAll(body)
	if err != nil {
		telemetry.Warn("settings.load_failed", map[string]any{"error": err.Error()})
		return
	}
	var stored llm.Credentials
	if err := json.Unmarshal(raw, &stored); err != nil {
		telemetry.Warn("settings.load_failed", map[string]any{"error": err.Error()})
		return
	}

	s.mu.Lock()
	s.current = s.current.Merge(stored)
	s.mu.Unlock()
}

// Current returns the active credentials.
func (s *Service) Current() llm.Credentials {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Update overlays the given fields onto the current settings and persists
// the result.
func (s *Service) Update(ctx context.Context, update llm.Credentials) (llm.Credentials, error) {
	s.mu.Lock()
	next := s.current.Merge(update)
	s.current = next
	s.mu.Unlock()

	raw, err := json.Marshal(next)
	if err != nil {
		return llm.Credentials{}, fmt.Errorf("encode settings: %w", err)
	}
	if _, err := s.Store.SaveWithKey(ctx, storageKey, "application/json", strings.NewReader(string(raw))); err != nil {
		return llm.Credentials{}, fmt.Errorf("persist settings: %w", err)
	}
	return next, nil
}
