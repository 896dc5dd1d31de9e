package versions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const versionColumns = `id, name, snapshot_key, artifact_key, created_at, updated_at`

// Create inserts a new version.
func (r *PGRepo) Create(ctx context.Context, v Version) error {
	const query = `
INSERT INTO resume_versions (id, name, snapshot_key, artifact_key, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.DB.ExecContext(ctx, query, v.ID, v.Name, v.SnapshotKey, v.ArtifactKey, v.CreatedAt, v.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrNameTaken
		}
		return fmt.Errorf("insert version: %w", err)
	}
	return nil
}

// List returns every version, most recently updated first.
func (r *PGRepo) List(ctx context.Context) ([]Version, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT `+versionColumns+` FROM resume_versions ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list versions: %w", err)
	}
	defer rows.Close()

	var out []Version
	for rows.Next() {
		v, err := scanVersion(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// GetByID returns the version with the given ID.
func (r *PGRepo) GetByID(ctx context.Context, id string) (Version, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+versionColumns+` FROM resume_versions WHERE id = $1`, id)
	return scanVersionRow(row)
}

// GetByName returns the version with the given name.
func (r *PGRepo) GetByName(ctx context.Context, name string) (Version, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+versionColumns+` FROM resume_versions WHERE name = $1`, name)
	return scanVersionRow(row)
}

// Rename updates the name of a version.
func (r *PGRepo) Rename(ctx context.Context, id, newName string) (Version, error) {
	row := r.DB.QueryRowContext(ctx, `
UPDATE resume_versions SET name = $2, updated_at = $3 WHERE id = $1
RETURNING `+versionColumns, id, newName, time.Now().UTC())
	v, err := scanVersionRow(row)
	if err != nil {
		if isUniqueViolation(err) {
			return Version{}, ErrNameTaken
		}
		return Version{}, err
	}
	return v, nil
}

// SetArtifactKey records the artifact object key for a version.
func (r *PGRepo) SetArtifactKey(ctx context.Context, id, artifactKey string) error {
	res, err := r.DB.ExecContext(ctx, `
UPDATE resume_versions SET artifact_key = $2, updated_at = $3 WHERE id = $1`, id, artifactKey, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("set artifact key: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a version.
func (r *PGRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM resume_versions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete version: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVersion(row rowScanner) (Version, error) {
	var v Version
	if err := row.Scan(&v.ID, &v.Name, &v.SnapshotKey, &v.ArtifactKey, &v.CreatedAt, &v.UpdatedAt); err != nil {
		return Version{}, fmt.Errorf("scan version: %w", err)
	}
	return v, nil
}

func scanVersionRow(row *sql.Row) (Version, error) {
	v, err := scanVersion(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Version{}, ErrNotFound
		}
		return Version{}, err
	}
	return v, nil
}

// isUniqueViolation matches Postgres unique constraint errors without
// depending on driver error types.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "23505")
}

var _ Repo = (*PGRepo)(nil)
