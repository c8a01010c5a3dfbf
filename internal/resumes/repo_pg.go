package resumes

import (
	"context"
	"database/sql"
	"errors"
)

type PGRepo struct {
	DB *sql.DB
}

const resumeColumns = `id, user_id, resume, is_public, created_at, updated_at`

func (r *PGRepo) Create(ctx context.Context, resume Resume) error {
	const query = `
INSERT INTO resumes (id, user_id, resume, is_public, created_at, updated_at)
VALUES ($1, $2, $3, $4, now(), now())`
	_, err := r.DB.ExecContext(ctx, query,
		resume.ID,
		nullableString(resume.UserID),
		[]byte(resume.Resume),
		resume.IsPublic,
	)
	return err
}

func (r *PGRepo) Get(ctx context.Context, id string) (Resume, error) {
	query := `SELECT ` + resumeColumns + ` FROM resumes WHERE id = $1`
	return scanResume(r.DB.QueryRowContext(ctx, query, id))
}

func (r *PGRepo) ListByUser(ctx context.Context, userID string) ([]Resume, error) {
	query := `SELECT ` + resumeColumns + ` FROM resumes WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Resume, 0)
	for rows.Next() {
		resume, err := scanResume(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, resume)
	}
	return out, rows.Err()
}

func (r *PGRepo) ClearOwner(ctx context.Context, id, ownerID string) error {
	const query = `UPDATE resumes SET user_id = NULL, updated_at = now() WHERE id = $1 AND user_id = $2`
	return execOne(ctx, r.DB, query, id, ownerID)
}

func (r *PGRepo) SetPublic(ctx context.Context, id, ownerID string, isPublic bool) error {
	const query = `UPDATE resumes SET is_public = $3, updated_at = now() WHERE id = $1 AND user_id = $2`
	return execOne(ctx, r.DB, query, id, ownerID, isPublic)
}

func (r *PGRepo) ReassignOwner(ctx context.Context, fromUser, toUser string) (int, error) {
	const query = `UPDATE resumes SET user_id = $2, updated_at = now() WHERE user_id = $1`
	res, err := r.DB.ExecContext(ctx, query, fromUser, toUser)
	if err != nil {
		return 0, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(affected), nil
}

func (r *PGRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx, `SELECT count(*) FROM resumes`).Scan(&count)
	return count, err
}

func execOne(ctx context.Context, db *sql.DB, query string, args ...any) error {
	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
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

func scanResume(row rowScanner) (Resume, error) {
	var resume Resume
	var userID sql.NullString
	var body []byte
	err := row.Scan(&resume.ID, &userID, &body, &resume.IsPublic, &resume.CreatedAt, &resume.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Resume{}, ErrNotFound
		}
		return Resume{}, err
	}
	if userID.Valid {
		resume.UserID = userID.String
	}
	resume.Resume = body
	return resume, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
