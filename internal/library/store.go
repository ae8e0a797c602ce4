package library

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a sheet id or name matches nothing.
var ErrNotFound = errors.New("library: sheet not found")

// Sheet is a saved sheet row.
type Sheet struct {
	ID        string
	Name      string
	Body      string
	Mode      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Store handles saved sheets.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Save upserts by name: saving under an existing name replaces that sheet's
// body and mode. Returns the stored sheet with its id filled in.
func (s *Store) Save(ctx context.Context, name, body, mode string) (Sheet, error) {
	now := Now()
	sh := Sheet{ID: uuid.NewString(), Name: name, Body: body, Mode: mode, CreatedAt: now, UpdatedAt: now}

	_, err := s.db.ExecContext(ctx, `
	INSERT INTO sheets(id, name, body, mode, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?)
	ON CONFLICT(name) DO UPDATE SET
	 body=excluded.body,
	 mode=excluded.mode,
	 updated_at=excluded.updated_at;
	`, sh.ID, sh.Name, sh.Body, sh.Mode, sh.CreatedAt, sh.UpdatedAt)
	if err != nil {
		return Sheet{}, err
	}

	// The conflict path keeps the original id; read it back.
	row := s.db.QueryRowContext(ctx, `SELECT id, created_at FROM sheets WHERE name = ?`, name)
	if err := row.Scan(&sh.ID, &sh.CreatedAt); err != nil {
		return Sheet{}, err
	}
	return sh, nil
}

// Get loads one sheet by id.
func (s *Store) Get(ctx context.Context, id string) (Sheet, error) {
	row := s.db.QueryRowContext(ctx, `
	SELECT id, name, body, mode, created_at, updated_at FROM sheets WHERE id = ?`, id)
	var sh Sheet
	err := row.Scan(&sh.ID, &sh.Name, &sh.Body, &sh.Mode, &sh.CreatedAt, &sh.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Sheet{}, ErrNotFound
	}
	if err != nil {
		return Sheet{}, err
	}
	return sh, nil
}

// List returns all saved sheets, most recently updated first.
func (s *Store) List(ctx context.Context) ([]Sheet, error) {
	rows, err := s.db.QueryContext(ctx, `
	SELECT id, name, body, mode, created_at, updated_at FROM sheets ORDER BY updated_at DESC, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Sheet
	for rows.Next() {
		var sh Sheet
		if err := rows.Scan(&sh.ID, &sh.Name, &sh.Body, &sh.Mode, &sh.CreatedAt, &sh.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, sh)
	}
	return out, rows.Err()
}

// Delete removes a sheet by id.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM sheets WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
