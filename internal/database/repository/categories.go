package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/jask/moneylens/internal/ledger"
)

// CategoryRepo handles categories.
type CategoryRepo struct {
	db *sql.DB
}

func NewCategoryRepo(db *sql.DB) *CategoryRepo {
	return &CategoryRepo{db: db}
}

// Upsert inserts or updates a category. The type column never changes on
// update; a category's type is fixed at creation.
func (r *CategoryRepo) Upsert(ctx context.Context, c ledger.Category) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO categories(id, name, icon, color, is_default, type)
	VALUES (?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
	 name=excluded.name,
	 icon=excluded.icon,
	 color=excluded.color,
	 is_default=excluded.is_default;
	`, c.ID.String(), c.Name, c.Icon, c.Color, c.IsDefault, string(c.Type))
	return err
}

func (r *CategoryRepo) List(ctx context.Context) ([]ledger.Category, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, icon, color, is_default, type FROM categories ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []ledger.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *CategoryRepo) Get(ctx context.Context, id uuid.UUID) (*ledger.Category, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, icon, color, is_default, type FROM categories WHERE id = ?`, id.String())
	c, err := scanCategory(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// ByName resolves a category by exact name, used by auto-categorization to
// map a suggested name onto a stored category.
func (r *CategoryRepo) ByName(ctx context.Context, name string) (*ledger.Category, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, icon, color, is_default, type FROM categories WHERE name = ?`, name)
	c, err := scanCategory(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// Delete removes a category. Categories still referenced by transactions or
// budgets are protected.
func (r *CategoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	raw := id.String()
	var refs int
	row := r.db.QueryRowContext(ctx, `
	SELECT (SELECT COUNT(*) FROM transactions WHERE category_id = ?)
	     + (SELECT COUNT(*) FROM budgets WHERE category_id = ?)`, raw, raw)
	if err := row.Scan(&refs); err != nil {
		return err
	}
	if refs > 0 {
		return ErrCategoryInUse
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, raw)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanCategory(row scanner) (ledger.Category, error) {
	var c ledger.Category
	var rawID, rawType string
	if err := row.Scan(&rawID, &c.Name, &c.Icon, &c.Color, &c.IsDefault, &rawType); err != nil {
		return ledger.Category{}, err
	}
	id, err := uuid.Parse(rawID)
	if err != nil {
		return ledger.Category{}, fmt.Errorf("category id: %w", err)
	}
	c.ID = id
	c.Type, err = ledger.ParseTransactionType(rawType)
	if err != nil {
		return ledger.Category{}, err
	}
	return c, nil
}
