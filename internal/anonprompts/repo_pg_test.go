package anonprompts

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRecordDeletesExcessByIDList(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	svc := NewService(&PGRepo{DB: db}, 2)
	now := time.Now().UTC()

	mock.ExpectExec("INSERT INTO anonymous_prompts").
		WithArgs("newest").
		WillReturnResult(sqlmock.NewResult(4, 1))
	mock.ExpectQuery("SELECT id, prompt, created_at FROM anonymous_prompts ORDER BY created_at, id").
		WillReturnRows(sqlmock.NewRows([]string{"id", "prompt", "created_at"}).
			AddRow(int64(1), "a", now.Add(-3*time.Minute)).
			AddRow(int64(2), "b", now.Add(-2*time.Minute)).
			AddRow(int64(3), "c", now.Add(-time.Minute)).
			AddRow(int64(4), "newest", now))
	mock.ExpectExec("DELETE FROM anonymous_prompts WHERE id IN \\(\\$1, \\$2\\)").
		WithArgs(int64(1), int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 2))

	if err := svc.Record(context.Background(), "newest"); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRecordWithinCapSkipsDelete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	svc := NewService(&PGRepo{DB: db}, 100)
	mock.ExpectExec("INSERT INTO anonymous_prompts").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery("SELECT id, prompt, created_at FROM anonymous_prompts").
		WillReturnRows(sqlmock.NewRows([]string{"id", "prompt", "created_at"}).AddRow(int64(1), "only", time.Now()))

	if err := svc.Record(context.Background(), "only"); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
