package resumes

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGSetPublicFiltersByOwner(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	repo := &PGRepo{DB: db}

	mock.ExpectExec("UPDATE resumes SET is_public = \\$3, updated_at = now\\(\\) WHERE id = \\$1 AND user_id = \\$2").
		WithArgs("r1", "intruder", true).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.SetPublic(context.Background(), "r1", "intruder", true); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGGetScansNullOwner(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	repo := &PGRepo{DB: db}
	now := time.Now().UTC()

	mock.ExpectQuery("SELECT (.+) FROM resumes WHERE id = \\$1").
		WithArgs("r1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "resume", "is_public", "created_at", "updated_at"}).
			AddRow("r1", nil, []byte(`{"name":"Ada"}`), true, now, now))

	resume, err := repo.Get(context.Background(), "r1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if resume.UserID != "" || string(resume.Resume) != `{"name":"Ada"}` {
		t.Fatalf("unexpected resume %+v", resume)
	}
}

func TestPGReassignOwner(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	repo := &PGRepo{DB: db}

	mock.ExpectExec("UPDATE resumes SET user_id = \\$2").
		WithArgs("u1", "anon").
		WillReturnResult(sqlmock.NewResult(0, 3))

	moved, err := repo.ReassignOwner(context.Background(), "u1", "anon")
	if err != nil || moved != 3 {
		t.Fatalf("ReassignOwner = %d, %v", moved, err)
	}
}
