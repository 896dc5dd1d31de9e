package versions

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMockRepo(t *testing.T) (*PGRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return &PGRepo{DB: db}, mock
}

func TestPGRepoCreate(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now().UTC()
	v := Version{
		ID:          "ver-1",
		Name:        "Backend 2026",
		SnapshotKey: "resumes/ver-1.json",
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	mock.ExpectExec("INSERT INTO resume_versions").
		WithArgs(v.ID, v.Name, v.SnapshotKey, "", v.CreatedAt, v.UpdatedAt).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), v); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoCreateDuplicateName(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("INSERT INTO resume_versions").
		WillReturnError(errors.New(`ERROR: duplicate key value violates unique constraint (SQLSTATE 23505)`))

	err := repo.Create(context.Background(), Version{ID: "ver-1", Name: "dup"})
	if !errors.Is(err, ErrNameTaken) {
		t.Fatalf("err = %v, want ErrNameTaken", err)
	}
}

func TestPGRepoGetByIDNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM resume_versions WHERE id").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "snapshot_key", "artifact_key", "created_at", "updated_at"}))

	if _, err := repo.GetByID(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestPGRepoList(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now().UTC()

	rows := sqlmock.NewRows([]string{"id", "name", "snapshot_key", "artifact_key", "created_at", "updated_at"}).
		AddRow("ver-2", "Newest", "resumes/ver-2.json", "resumes/ver-2.pdf", now, now).
		AddRow("ver-1", "Older", "resumes/ver-1.json", "", now.Add(-time.Hour), now.Add(-time.Hour))

	mock.ExpectQuery("SELECT (.+) FROM resume_versions ORDER BY updated_at DESC").
		WillReturnRows(rows)

	out, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(out) != 2 || out[0].ID != "ver-2" || out[1].ArtifactKey != "" {
		t.Fatalf("list = %+v", out)
	}
}

func TestPGRepoSetArtifactKeyNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("UPDATE resume_versions SET artifact_key").
		WithArgs("missing", "resumes/missing.pdf", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.SetArtifactKey(context.Background(), "missing", "resumes/missing.pdf"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestPGRepoDelete(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec("DELETE FROM resume_versions WHERE id").
		WithArgs("ver-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Delete(context.Background(), "ver-1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
