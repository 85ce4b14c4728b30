package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/jask/moneylens/internal/ledger"
)

// AccountRepo handles accounts.
type AccountRepo struct {
	db *sql.DB
}

func NewAccountRepo(db *sql.DB) *AccountRepo {
	return &AccountRepo{db: db}
}

func (r *AccountRepo) Upsert(ctx context.Context, a ledger.Account) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO accounts(id, name) VALUES (?, ?)
	ON CONFLICT(id) DO UPDATE SET name=excluded.name;
	`, a.ID.String(), a.Name)
	return err
}

func (r *AccountRepo) List(ctx context.Context) ([]ledger.Account, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM accounts ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []ledger.Account
	for rows.Next() {
		var rawID string
		var a ledger.Account
		if err := rows.Scan(&rawID, &a.Name); err != nil {
			return nil, err
		}
		id, err := uuid.Parse(rawID)
		if err != nil {
			return nil, fmt.Errorf("account id: %w", err)
		}
		a.ID = id
		out = append(out, a)
	}
	return out, rows.Err()
}

// Delete removes an account. Transactions referencing it keep their rows;
// their account link is cleared first.
func (r *AccountRepo) Delete(ctx context.Context, id uuid.UUID) error {
	raw := id.String()
	if _, err := r.db.ExecContext(ctx,
		`UPDATE transactions SET account_id = NULL WHERE account_id = ?`, raw); err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM accounts WHERE id = ?`, raw)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
