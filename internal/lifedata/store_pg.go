package lifedata

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// Table describes how a record type maps to its Postgres table. Columns
// lists the data columns between user_id and created_at.
type Table[T any] struct {
	Name    string
	Columns []string
	Values  func(*T) []any
	Targets func(*T) []any
}

var (
	ExperiencesTable = Table[Experience]{
		Name:    "user_experiences",
		Columns: []string{"title", "company", "period", "description"},
		Values: func(e *Experience) []any {
			return []any{e.Title, e.Company, e.Period, e.Description}
		},
		Targets: func(e *Experience) []any {
			return []any{&e.Title, &e.Company, &e.Period, &e.Description}
		},
	}
	EducationTable = Table[Education]{
		Name:    "user_education",
		Columns: []string{"degree", "institution", "period", "description"},
		Values: func(e *Education) []any {
			return []any{e.Degree, e.Institution, e.Period, e.Description}
		},
		Targets: func(e *Education) []any {
			return []any{&e.Degree, &e.Institution, &e.Period, &e.Description}
		},
	}
	CertificationsTable = Table[Certification]{
		Name:    "user_certifications",
		Columns: []string{"name", "issuer", "date"},
		Values: func(c *Certification) []any {
			return []any{c.Name, c.Issuer, c.Date}
		},
		Targets: func(c *Certification) []any {
			return []any{&c.Name, &c.Issuer, &c.Date}
		},
	}
)

type PGStore[T any, P record[T]] struct {
	DB    *sql.DB
	Table Table[T]
}

func NewPGStore[T any, P record[T]](db *sql.DB, table Table[T]) *PGStore[T, P] {
	return &PGStore[T, P]{DB: db, Table: table}
}

func (s *PGStore[T, P]) selectColumns() string {
	cols := append([]string{"id", "user_id"}, s.Table.Columns...)
	cols = append(cols, "created_at", "updated_at")
	return strings.Join(cols, ", ")
}

func (s *PGStore[T, P]) scan(row rowScanner) (T, error) {
	var item T
	m := P(&item).meta()
	dest := append([]any{&m.ID, &m.UserID}, s.Table.Targets(&item)...)
	dest = append(dest, &m.CreatedAt, &m.UpdatedAt)
	if err := row.Scan(dest...); err != nil {
		var zero T
		if errors.Is(err, sql.ErrNoRows) {
			return zero, ErrNotFound
		}
		return zero, err
	}
	return item, nil
}

func (s *PGStore[T, P]) List(ctx context.Context, userID string) ([]T, error) {
	query := `SELECT ` + s.selectColumns() + ` FROM ` + s.Table.Name + ` WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]T, 0)
	for rows.Next() {
		item, err := s.scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func (s *PGStore[T, P]) Owner(ctx context.Context, id string) (string, error) {
	query := `SELECT user_id FROM ` + s.Table.Name + ` WHERE id = $1`
	var owner string
	err := s.DB.QueryRowContext(ctx, query, id).Scan(&owner)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	return owner, err
}

// Insert writes every item in a single multi-row statement.
func (s *PGStore[T, P]) Insert(ctx context.Context, items ...T) error {
	if len(items) == 0 {
		return nil
	}
	cols := append([]string{"id", "user_id"}, s.Table.Columns...)
	cols = append(cols, "created_at", "updated_at")

	groups := make([]string, 0, len(items))
	args := make([]any, 0, len(items)*len(cols))
	for i := range items {
		m := P(&items[i]).meta()
		values := append([]any{m.ID, m.UserID}, s.Table.Values(&items[i])...)
		values = append(values, m.CreatedAt, m.UpdatedAt)

		placeholders := make([]string, len(values))
		for j := range values {
			placeholders[j] = fmt.Sprintf("$%d", len(args)+j+1)
		}
		groups = append(groups, "("+strings.Join(placeholders, ", ")+")")
		args = append(args, values...)
	}

	query := `INSERT INTO ` + s.Table.Name + ` (` + strings.Join(cols, ", ") + `) VALUES ` + strings.Join(groups, ", ")
	_, err := s.DB.ExecContext(ctx, query, args...)
	return err
}

func (s *PGStore[T, P]) Update(ctx context.Context, item T) (T, error) {
	m := P(&item).meta()
	sets := make([]string, 0, len(s.Table.Columns)+1)
	for i, col := range s.Table.Columns {
		sets = append(sets, fmt.Sprintf("%s = $%d", col, i+3))
	}
	sets = append(sets, "updated_at = now()")

	query := `UPDATE ` + s.Table.Name + ` SET ` + strings.Join(sets, ", ") +
		` WHERE id = $1 AND user_id = $2 RETURNING ` + s.selectColumns()
	args := append([]any{m.ID, m.UserID}, s.Table.Values(&item)...)
	return s.scan(s.DB.QueryRowContext(ctx, query, args...))
}

func (s *PGStore[T, P]) Delete(ctx context.Context, id, userID string) error {
	query := `DELETE FROM ` + s.Table.Name + ` WHERE id = $1 AND user_id = $2`
	res, err := s.DB.ExecContext(ctx, query, id, userID)
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

func (s *PGStore[T, P]) DeleteByUser(ctx context.Context, userID string) (int, error) {
	return execCount(ctx, s.DB, `DELETE FROM `+s.Table.Name+` WHERE user_id = $1`, userID)
}

// PGTagStore stores skills or hobbies in Table.
type PGTagStore struct {
	DB    *sql.DB
	Table string
}

func (s *PGTagStore) List(ctx context.Context, userID string) ([]Tag, error) {
	query := `SELECT id, user_id, name, created_at FROM ` + s.Table + ` WHERE user_id = $1 ORDER BY created_at`
	rows, err := s.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Tag, 0)
	for rows.Next() {
		var tag Tag
		if err := rows.Scan(&tag.ID, &tag.UserID, &tag.Name, &tag.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, tag)
	}
	return out, rows.Err()
}

func (s *PGTagStore) Exists(ctx context.Context, userID, name string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM ` + s.Table + ` WHERE user_id = $1 AND name = $2)`
	var exists bool
	err := s.DB.QueryRowContext(ctx, query, userID, name).Scan(&exists)
	return exists, err
}

func (s *PGTagStore) Insert(ctx context.Context, tag Tag) error {
	query := `INSERT INTO ` + s.Table + ` (id, user_id, name, created_at) VALUES ($1, $2, $3, $4)`
	_, err := s.DB.ExecContext(ctx, query, tag.ID, tag.UserID, tag.Name, tag.CreatedAt)
	return err
}

func (s *PGTagStore) DeleteByName(ctx context.Context, userID, name string) (int, error) {
	return execCount(ctx, s.DB, `DELETE FROM `+s.Table+` WHERE user_id = $1 AND name = $2`, userID, name)
}

func (s *PGTagStore) DeleteByUser(ctx context.Context, userID string) (int, error) {
	return execCount(ctx, s.DB, `DELETE FROM `+s.Table+` WHERE user_id = $1`, userID)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func execCount(ctx context.Context, db *sql.DB, query string, args ...any) (int, error) {
	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(affected), nil
}
