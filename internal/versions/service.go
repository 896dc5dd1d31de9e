package versions

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/intragalactic-stranger/Adaptive-CV/internal/documents"
	"github.com/intragalactic-stranger/Adaptive-CV/internal/queue"
	"github.com/intragalactic-stranger/Adaptive-CV/internal/shared/storage/object"
	"github.com/intragalactic-stranger/Adaptive-CV/internal/shared/telemetry"
	"github.com/intragalactic-stranger/Adaptive-CV/internal/shared/util"
	"github.com/intragalactic-stranger/Adaptive-CV/resume/model"
	"github.com/intragalactic-stranger/Adaptive-CV/resume/render"
)

// Service implements the version operations over the metadata repo and the
// object store.
type Service struct {
	Repo     Repo
	Store    object.ObjectStore
	Docs     *documents.Store
	Renderer render.Renderer
	// Queue, when set, offloads version artifact rendering to the worker.
	Queue queue.Client
}

// Save stores the current document as a named version. The JSON snapshot is
// written first; the PDF artifact is best-effort and never blocks the save.
func (s *Service) Save(ctx context.Context, name string) (Version, error) {
	clean, err := util.SanitizeVersionName(name)
	if err != nil {
		return Version{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	doc := s.Docs.Get()
	if doc.IsEmpty() {
		return Version{}, ErrNoContent
	}

	if _, err := s.Repo.GetByName(ctx, clean); err == nil {
		return Version{}, ErrNameTaken
	}

	now := time.Now().UTC()
	v := Version{
		ID:        uuid.NewString(),
		Name:      clean,
		CreatedAt: now,
		UpdatedAt: now,
	}
	v.SnapshotKey = snapshotKey(v.ID)

	snapshot, err := json.Marshal(doc)
	if err != nil {
		return Version{}, fmt.Errorf("encode snapshot: %w", err)
	}
	if _, err := s.Store.SaveWithKey(ctx, v.SnapshotKey, "application/json", bytes.NewReader(snapshot)); err != nil {
		return Version{}, fmt.Errorf("store snapshot: %w", err)
	}
	if err := s.Repo.Create(ctx, v); err != nil {
		return Version{}, err
	}

	s.renderArtifact(ctx, &v, doc)

	telemetry.Info("version.saved", map[string]any{
		"version_id": v.ID,
		"name":       v.Name,
		"artifact":   v.ArtifactKey != "",
	})
	return v, nil
}

// renderArtifact attaches a rendered PDF to the version, either through the
// render queue or inline. Failures leave the version without an artifact.
func (s *Service) renderArtifact(ctx context.Context, v *Version, doc model.Document) {
	if s.Queue != nil {
		msg := queue.Message{
			VersionID:  v.ID,
			EnqueuedAt: time.Now().UTC().Format(time.RFC3339),
			Version:    1,
		}
		if err := s.Queue.Send(ctx, msg); err != nil {
			telemetry.Warn("version.enqueue_render_failed", map[string]any{
				"version_id": v.ID,
				"error":      err.Error(),
			})
		}
		return
	}

	pdf, err := s.Renderer.Render(ctx, doc)
	if err != nil {
		telemetry.Warn("version.render_failed", map[string]any{
			"version_id": v.ID,
			"error":      err.Error(),
		})
		return
	}
	key := artifactKey(v.ID)
	if _, err := s.Store.SaveWithKey(ctx, key, "application/pdf", bytes.NewReader(pdf)); err != nil {
		telemetry.Warn("version.store_artifact_failed", map[string]any{
			"version_id": v.ID,
			"error":      err.Error(),
		})
		return
	}
	if err := s.Repo.SetArtifactKey(ctx, v.ID, key); err != nil {
		telemetry.Warn("version.record_artifact_failed", map[string]any{
			"version_id": v.ID,
			"error":      err.Error(),
		})
		return
	}
	v.ArtifactKey = key
}

// RenderArtifactByID loads a saved snapshot, renders it and records the
// artifact. Used by the queue worker.
func (s *Service) RenderArtifactByID(ctx context.Context, id string) error {
	v, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !v.HasSnapshot() {
		return ErrNoEditableData
	}
	doc, err := s.readSnapshot(ctx, v.SnapshotKey)
	if err != nil {
		return err
	}
	pdf, err := s.Renderer.Render(ctx, doc)
	if err != nil {
		return fmt.Errorf("render version %s: %w", id, err)
	}
	key := artifactKey(id)
	if _, err := s.Store.SaveWithKey(ctx, key, "application/pdf", bytes.NewReader(pdf)); err != nil {
		return fmt.Errorf("store version artifact: %w", err)
	}
	return s.Repo.SetArtifactKey(ctx, id, key)
}

// List returns the version metadata, most recently updated first.
func (s *Service) List(ctx context.Context) ([]Version, error) {
	return s.Repo.List(ctx)
}

// Load installs a version's snapshot as the current document. A version
// without a snapshot cannot be loaded and yields ErrNoEditableData.
func (s *Service) Load(ctx context.Context, id string) (model.Document, error) {
	v, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return model.Document{}, err
	}
	if !v.HasSnapshot() {
		return model.Document{}, ErrNoEditableData
	}
	doc, err := s.readSnapshot(ctx, v.SnapshotKey)
	if err != nil {
		return model.Document{}, err
	}
	return s.Docs.Replace(doc), nil
}

// Rename changes a version's display name. Object keys are ID-derived, so
// only the metadata row changes.
func (s *Service) Rename(ctx context.Context, id, newName string) (Version, error) {
	clean, err := util.SanitizeVersionName(newName)
	if err != nil {
		return Version{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return s.Repo.Rename(ctx, id, clean)
}

// Delete removes the version row and its stored objects.
func (s *Service) Delete(ctx context.Context, id string) error {
	v, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	for _, key := range []string{v.SnapshotKey, v.ArtifactKey} {
		if key == "" {
			continue
		}
		if err := s.Store.Delete(ctx, key); err != nil {
			telemetry.Warn("version.delete_object_failed", map[string]any{
				"version_id": id,
				"key":        key,
				"error":      err.Error(),
			})
		}
	}
	return nil
}

// OpenArtifact streams a version's rendered PDF.
func (s *Service) OpenArtifact(ctx context.Context, id string) (io.ReadCloser, error) {
	v, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if v.ArtifactKey == "" {
		return nil, ErrNotFound
	}
	return s.Store.Open(ctx, v.ArtifactKey)
}

func (s *Service) readSnapshot(ctx context.Context, key string) (model.Document, error) {
	body, err := s.Store.Open(ctx, key)
	if err != nil {
		return model.Document{}, fmt.Errorf("open snapshot: %w", err)
	}
	defer body.Close()

	raw, err := io.ReadAll(body)
	if err != nil {
		return model.Document{}, fmt.Errorf("read snapshot: %w", err)
	}
	var doc model.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return model.Document{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return doc.Normalized(), nil
}

func snapshotKey(id string) string {
	return "resumes/" + id + ".json"
}

func artifactKey(id string) string {
	return "resumes/" + id + ".pdf"
}
