package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jask/moneylens/internal/ledger"
)

// BudgetRepo handles budgets.
type BudgetRepo struct {
	db *sql.DB
}

func NewBudgetRepo(db *sql.DB) *BudgetRepo { return &BudgetRepo{db: db} }

// Upsert stores a budget. Budgets only make sense for expense categories, so
// the referenced category must exist and carry the expense type.
func (r *BudgetRepo) Upsert(ctx context.Context, b ledger.Budget) error {
	var rawType string
	row := r.db.QueryRowContext(ctx, `SELECT type FROM categories WHERE id = ?`, b.CategoryID.String())
	if err := row.Scan(&rawType); err != nil {
		if err == sql.ErrNoRows {
			return fmt.Errorf("category %s: %w", b.CategoryID, ErrNotFound)
		}
		return err
	}
	catType, err := ledger.ParseTransactionType(rawType)
	if err != nil {
		return err
	}
	if catType != ledger.TypeExpense {
		return ErrCategoryTypeMismatch
	}

	_, err = r.db.ExecContext(ctx, `
	INSERT INTO budgets(id, category_id, amount, period)
	VALUES (?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
	 category_id=excluded.category_id,
	 amount=excluded.amount,
	 period=excluded.period;
	`, b.ID.String(), b.CategoryID.String(), b.Amount.String(), string(b.Period))
	return err
}

// List returns budgets with the category name denormalized from the join.
func (r *BudgetRepo) List(ctx context.Context) ([]ledger.Budget, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT b.id, b.category_id, COALESCE(c.name, ''), b.amount, b.period
	FROM budgets b LEFT JOIN categories c ON c.id = b.category_id
	ORDER BY c.name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ledger.Budget
	for rows.Next() {
		var b ledger.Budget
		var rawID, rawCategory, rawAmount, rawPeriod string
		if err := rows.Scan(&rawID, &rawCategory, &b.CategoryName, &rawAmount, &rawPeriod); err != nil {
			return nil, err
		}
		if b.ID, err = uuid.Parse(rawID); err != nil {
			return nil, fmt.Errorf("budget id: %w", err)
		}
		if b.CategoryID, err = uuid.Parse(rawCategory); err != nil {
			return nil, fmt.Errorf("budget category id: %w", err)
		}
		if b.Amount, err = decimal.NewFromString(rawAmount); err != nil {
			return nil, fmt.Errorf("budget amount: %w", err)
		}
		if b.Period, err = ledger.ParseBudgetPeriod(rawPeriod); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *BudgetRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM budgets WHERE id = ?`, id.String())
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
