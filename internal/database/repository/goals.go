package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jask/moneylens/internal/ledger"
)

// GoalRepo handles savings goals.
type GoalRepo struct {
	db *sql.DB
}

func NewGoalRepo(db *sql.DB) *GoalRepo { return &GoalRepo{db: db} }

func (r *GoalRepo) Upsert(ctx context.Context, g ledger.Goal) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO goals(id, name, target_amount, current_amount, deadline)
	VALUES (?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
	 name=excluded.name,
	 target_amount=excluded.target_amount,
	 current_amount=excluded.current_amount,
	 deadline=excluded.deadline;
	`, g.ID.String(), g.Name, g.TargetAmount.String(), g.CurrentAmount.String(), g.Deadline)
	return err
}

func (r *GoalRepo) List(ctx context.Context) ([]ledger.Goal, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, target_amount, current_amount, deadline FROM goals ORDER BY deadline`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ledger.Goal
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (r *GoalRepo) Get(ctx context.Context, id uuid.UUID) (*ledger.Goal, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, target_amount, current_amount, deadline FROM goals WHERE id = ?`, id.String())
	g, err := scanGoal(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &g, nil
}

// AddContribution applies a contribution through the ledger clamp rule and
// persists the resulting amount.
func (r *GoalRepo) AddContribution(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (ledger.Goal, error) {
	g, err := r.Get(ctx, id)
	if err != nil {
		return ledger.Goal{}, err
	}
	next := g.WithContribution(amount)
	_, err = r.db.ExecContext(ctx, `UPDATE goals SET current_amount = ? WHERE id = ?`,
		next.CurrentAmount.String(), id.String())
	if err != nil {
		return ledger.Goal{}, err
	}
	return next, nil
}

func (r *GoalRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM goals WHERE id = ?`, id.String())
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanGoal(row scanner) (ledger.Goal, error) {
	var g ledger.Goal
	var rawID, rawTarget, rawCurrent string
	if err := row.Scan(&rawID, &g.Name, &rawTarget, &rawCurrent, &g.Deadline); err != nil {
		return ledger.Goal{}, err
	}
	id, err := uuid.Parse(rawID)
	if err != nil {
		return ledger.Goal{}, fmt.Errorf("goal id: %w", err)
	}
	g.ID = id
	if g.TargetAmount, err = decimal.NewFromString(rawTarget); err != nil {
		return ledger.Goal{}, fmt.Errorf("goal target: %w", err)
	}
	if g.CurrentAmount, err = decimal.NewFromString(rawCurrent); err != nil {
		return ledger.Goal{}, fmt.Errorf("goal current: %w", err)
	}
	return g, nil
}
