package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/jask/moneylens/internal/ledger"
)

// TagRepo handles tags.
type TagRepo struct {
	db *sql.DB
}

func NewTagRepo(db *sql.DB) *TagRepo { return &TagRepo{db: db} }

func (r *TagRepo) Upsert(ctx context.Context, t ledger.Tag) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO tags(id, name) VALUES (?, ?)
	ON CONFLICT(id) DO UPDATE SET name=excluded.name;
	`, t.ID.String(), t.Name)
	return err
}

func (r *TagRepo) ByName(ctx context.Context, name string) (*ledger.Tag, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, name FROM tags WHERE name = ?`, name)
	var rawID string
	var t ledger.Tag
	if err := row.Scan(&rawID, &t.Name); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, fmt.Errorf("tag id: %w", err)
	}
	t.ID = id
	return &t, nil
}

func (r *TagRepo) List(ctx context.Context) ([]ledger.Tag, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM tags ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []ledger.Tag
	for rows.Next() {
		var rawID string
		var t ledger.Tag
		if err := rows.Scan(&rawID, &t.Name); err != nil {
			return nil, err
		}
		id, err := uuid.Parse(rawID)
		if err != nil {
			return nil, fmt.Errorf("tag id: %w", err)
		}
		t.ID = id
		out = append(out, t)
	}
	return out, rows.Err()
}
