// Package versions stores named snapshots of the resume document, each
// paired with a best-effort rendered PDF artifact.
package versions

import (
	"context"
	"time"
)

// Version is the metadata row for one saved resume version. Object keys are
// derived from the ID, so renaming never moves stored objects.
type Version struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	SnapshotKey string    `json:"snapshot_key,omitempty"`
	ArtifactKey string    `json:"artifact_key,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// HasSnapshot reports whether the version carries editable document data.
func (v Version) HasSnapshot() bool {
	return v.SnapshotKey != ""
}

// Repo defines persistence operations for version metadata.
type Repo interface {
	Create(ctx context.Context, v Version) error
	List(ctx context.Context) ([]Version, error)
	GetByID(ctx context.Context, id string) (Version, error)
	GetByName(ctx context.Context, name string) (Version, error)
	Rename(ctx context.Context, id, newName string) (Version, error)
	SetArtifactKey(ctx context.Context, id, artifactKey string) error
	Delete(ctx context.Context, id string) error
}
