package versions

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo is an in-memory Repo for dev mode and tests.
type MemoryRepo struct {
	mu       sync.Mutex
	versions map[string]Version
}

// NewMemoryRepo constructs an empty MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{versions: make(map[string]Version)}
}

// Create inserts a new version.
func (r *MemoryRepo) Create(ctx context.Context, v Version) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.versions {
		if existing.Name == v.Name {
			return ErrNameTaken
		}
	}
	r.versions[v.ID] = v
	return nil
}

// List returns every version, most recently updated first.
func (r *MemoryRepo) List(ctx context.Context) ([]Version, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Version, 0, len(r.versions))
	for _, v := range r.versions {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

// GetByID returns the version with the given ID.
func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Version, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.versions[id]
	if !ok {
		return Version{}, ErrNotFound
	}
	return v, nil
}

// GetByName returns the version with the given name.
func (r *MemoryRepo) GetByName(ctx context.Context, name string) (Version, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, v := range r.versions {
		if v.Name == name {
			return v, nil
		}
	}
	return Version{}, ErrNotFound
}

// Rename updates the name of a version.
func (r *MemoryRepo) Rename(ctx context.Context, id, newName string) (Version, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.versions[id]
	if !ok {
		return Version{}, ErrNotFound
	}
	for otherID, other := range r.versions {
		if otherID != id && other.Name == newName {
			return Version{}, ErrNameTaken
		}
	}
	v.Name = newName
	v.UpdatedAt = time.Now().UTC()
	r.versions[id] = v
	return v, nil
}

// SetArtifactKey records the artifact object key for a version.
func (r *MemoryRepo) SetArtifactKey(ctx context.Context, id, artifactKey string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.versions[id]
	if !ok {
		return ErrNotFound
	}
	v.ArtifactKey = artifactKey
	v.UpdatedAt = time.Now().UTC()
	r.versions[id] = v
	return nil
}

// Delete removes a version.
func (r *MemoryRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.versions[id]; !ok {
		return ErrNotFound
	}
	delete(r.versions, id)
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
