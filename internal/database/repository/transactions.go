package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jask/moneylens/internal/ledger"
)

// TransactionFilters defines list filters. Nil fields are unconstrained; set
// fields combine with AND.
type TransactionFilters struct {
	Type       *ledger.TransactionType
	CategoryID *uuid.UUID
	AccountID  *uuid.UUID
	From       *time.Time // inclusive
	To         *time.Time // exclusive
	Search     string     // matches note or category name, case-insensitive
}

// TransactionRepo handles transactions.
type TransactionRepo struct {
	db *sql.DB
}

func NewTransactionRepo(db *sql.DB) *TransactionRepo { return &TransactionRepo{db: db} }

const transactionColumns = `
 t.id, t.amount, t.type, t.date, t.note, t.category_id, COALESCE(c.name, ''),
 t.account_id, t.recurring, t.recurring_pattern`

// Insert stores a transaction. The category, when set, must exist and carry
// the same type as the transaction.
func (r *TransactionRepo) Insert(ctx context.Context, t ledger.Transaction) error {
	if err := r.checkCategoryType(ctx, t.CategoryID, t.Type); err != nil {
		return err
	}

	var categoryID, accountID, pattern interface{}
	if t.CategoryID != uuid.Nil {
		categoryID = t.CategoryID.String()
	}
	if t.AccountID != nil {
		accountID = t.AccountID.String()
	}
	if t.RecurringPattern != nil {
		pattern = string(*t.RecurringPattern)
	}

	_, err := r.db.ExecContext(ctx, `
	INSERT INTO transactions(id, amount, type, date, note, category_id, account_id, recurring, recurring_pattern)
	VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?);
	`, t.ID.String(), t.Amount.String(), string(t.Type), t.Date, t.Note,
		categoryID, accountID, t.Recurring, pattern)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// UpdateCategory reassigns the transaction's category, enforcing the type
// consistency rule against the transaction's stored type.
func (r *TransactionRepo) UpdateCategory(ctx context.Context, id, categoryID uuid.UUID) error {
	var rawType string
	row := r.db.QueryRowContext(ctx, `SELECT type FROM transactions WHERE id = ?`, id.String())
	if err := row.Scan(&rawType); err != nil {
		if err == sql.ErrNoRows {
			return ErrNotFound
		}
		return err
	}
	tt, err := ledger.ParseTransactionType(rawType)
	if err != nil {
		return err
	}
	if err := r.checkCategoryType(ctx, categoryID, tt); err != nil {
		return err
	}

	var raw interface{}
	if categoryID != uuid.Nil {
		raw = categoryID.String()
	}
	_, err = r.db.ExecContext(ctx, `UPDATE transactions SET category_id = ? WHERE id = ?`, raw, id.String())
	return err
}

// ClearRecurring demotes a recurring head row to a plain transaction. The
// recurring flag moves forward to the newest materialized occurrence.
func (r *TransactionRepo) ClearRecurring(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE transactions SET recurring = 0, recurring_pattern = NULL WHERE id = ?`, id.String())
	return err
}

// ListRecurring returns the active recurring head rows.
func (r *TransactionRepo) ListRecurring(ctx context.Context) ([]ledger.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+transactionColumns+
		" FROM transactions t LEFT JOIN categories c ON c.id = t.category_id"+
		" WHERE t.recurring = 1 ORDER BY t.date")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []ledger.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *TransactionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id.String())
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *TransactionRepo) AttachTag(ctx context.Context, transactionID, tagID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO transaction_tags(transaction_id, tag_id) VALUES(?, ?)`,
		transactionID.String(), tagID.String())
	return err
}

func (r *TransactionRepo) RemoveTag(ctx context.Context, transactionID, tagID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM transaction_tags WHERE transaction_id = ? AND tag_id = ?`,
		transactionID.String(), tagID.String())
	return err
}

func (r *TransactionRepo) List(ctx context.Context, f TransactionFilters) ([]ledger.Transaction, error) {
	var where []string
	var args []interface{}

	if f.Type != nil {
		where = append(where, "t.type = ?")
		args = append(args, string(*f.Type))
	}
	if f.CategoryID != nil {
		where = append(where, "t.category_id = ?")
		args = append(args, f.CategoryID.String())
	}
	if f.AccountID != nil {
		where = append(where, "t.account_id = ?")
		args = append(args, f.AccountID.String())
	}
	if f.From != nil {
		where = append(where, "t.date >= ?")
		args = append(args, *f.From)
	}
	if f.To != nil {
		where = append(where, "t.date < ?")
		args = append(args, *f.To)
	}
	if f.Search != "" {
		where = append(where, "(t.note LIKE ? OR COALESCE(c.name, '') LIKE ?)")
		pattern := "%" + f.Search + "%"
		args = append(args, pattern, pattern)
	}

	query := "SELECT " + transactionColumns +
		" FROM transactions t LEFT JOIN categories c ON c.id = t.category_id"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY t.date DESC, t.created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ledger.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		tags, err := r.fetchTags(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Tags = tags
	}
	return out, nil
}

func (r *TransactionRepo) Get(ctx context.Context, id uuid.UUID) (*ledger.Transaction, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+transactionColumns+
		" FROM transactions t LEFT JOIN categories c ON c.id = t.category_id WHERE t.id = ?",
		id.String())
	t, err := scanTransaction(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	tags, err := r.fetchTags(ctx, t.ID)
	if err != nil {
		return nil, err
	}
	t.Tags = tags
	return &t, nil
}

func (r *TransactionRepo) fetchTags(ctx context.Context, transactionID uuid.UUID) ([]ledger.Tag, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT t.id, t.name FROM tags t JOIN transaction_tags tt ON tt.tag_id = t.id
		 WHERE tt.transaction_id = ? ORDER BY t.name`, transactionID.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var tags []ledger.Tag
	for rows.Next() {
		var rawID, name string
		if err := rows.Scan(&rawID, &name); err != nil {
			return nil, err
		}
		id, err := uuid.Parse(rawID)
		if err != nil {
			return nil, fmt.Errorf("tag id: %w", err)
		}
		tags = append(tags, ledger.Tag{ID: id, Name: name})
	}
	return tags, rows.Err()
}

// checkCategoryType enforces the type consistency rule. An unset category
// (uuid.Nil) is always allowed.
func (r *TransactionRepo) checkCategoryType(ctx context.Context, categoryID uuid.UUID, tt ledger.TransactionType) error {
	if categoryID == uuid.Nil {
		return nil
	}
	var rawType string
	row := r.db.QueryRowContext(ctx, `SELECT type FROM categories WHERE id = ?`, categoryID.String())
	if err := row.Scan(&rawType); err != nil {
		if err == sql.ErrNoRows {
			return fmt.Errorf("category %s: %w", categoryID, ErrNotFound)
		}
		return err
	}
	catType, err := ledger.ParseTransactionType(rawType)
	if err != nil {
		return err
	}
	if catType != tt {
		return ErrCategoryTypeMismatch
	}
	return nil
}

func scanTransaction(row scanner) (ledger.Transaction, error) {
	var t ledger.Transaction
	var rawID, rawAmount, rawType, categoryName string
	var rawCategory, rawAccount, rawPattern sql.NullString
	if err := row.Scan(&rawID, &rawAmount, &rawType, &t.Date, &t.Note,
		&rawCategory, &categoryName, &rawAccount, &t.Recurring, &rawPattern); err != nil {
		return ledger.Transaction{}, err
	}

	id, err := uuid.Parse(rawID)
	if err != nil {
		return ledger.Transaction{}, fmt.Errorf("transaction id: %w", err)
	}
	t.ID = id

	t.Amount, err = decimal.NewFromString(rawAmount)
	if err != nil {
		return ledger.Transaction{}, fmt.Errorf("transaction amount: %w", err)
	}
	t.Type, err = ledger.ParseTransactionType(rawType)
	if err != nil {
		return ledger.Transaction{}, err
	}
	t.CategoryName = categoryName

	if rawCategory.Valid {
		cid, err := uuid.Parse(rawCategory.String)
		if err != nil {
			return ledger.Transaction{}, fmt.Errorf("transaction category id: %w", err)
		}
		t.CategoryID = cid
	}
	if rawAccount.Valid {
		aid, err := uuid.Parse(rawAccount.String)
		if err != nil {
			return ledger.Transaction{}, fmt.Errorf("transaction account id: %w", err)
		}
		t.AccountID = &aid
	}
	if rawPattern.Valid {
		p, err := ledger.ParseRecurringPattern(rawPattern.String)
		if err != nil {
			return ledger.Transaction{}, err
		}
		t.RecurringPattern = &p
	}
	return t, nil
}
