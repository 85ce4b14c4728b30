// Package ledger defines the value types the metrics engine computes over.
// Entities are read-only snapshots owned by the persistence layer; nothing in
// this package performs I/O.
package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType says which direction money moved. The sign of a transaction
// is carried here; Amount is always non-negative.
type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

// ParseTransactionType validates a stored raw value at the persistence
// boundary. The engine itself only ever sees the closed enum.
func ParseTransactionType(s string) (TransactionType, error) {
	switch TransactionType(strings.ToLower(strings.TrimSpace(s))) {
	case TypeIncome:
		return TypeIncome, nil
	case TypeExpense:
		return TypeExpense, nil
	default:
		return "", fmt.Errorf("invalid transaction type %q", s)
	}
}

// BudgetPeriod is the window a budget ceiling applies to.
type BudgetPeriod string

const (
	PeriodWeekly  BudgetPeriod = "weekly"
	PeriodMonthly BudgetPeriod = "monthly"
	PeriodYearly  BudgetPeriod = "yearly"
)

func ParseBudgetPeriod(s string) (BudgetPeriod, error) {
	switch BudgetPeriod(strings.ToLower(strings.TrimSpace(s))) {
	case PeriodWeekly:
		return PeriodWeekly, nil
	case PeriodMonthly:
		return PeriodMonthly, nil
	case PeriodYearly:
		return PeriodYearly, nil
	default:
		return "", fmt.Errorf("invalid budget period %q", s)
	}
}

// RecurringPattern is the repeat cadence of a recurring transaction.
type RecurringPattern string

const (
	RecurDaily   RecurringPattern = "daily"
	RecurWeekly  RecurringPattern = "weekly"
	RecurMonthly RecurringPattern = "monthly"
	RecurYearly  RecurringPattern = "yearly"
)

func ParseRecurringPattern(s string) (RecurringPattern, error) {
	switch RecurringPattern(strings.ToLower(strings.TrimSpace(s))) {
	case RecurDaily:
		return RecurDaily, nil
	case RecurWeekly:
		return RecurWeekly, nil
	case RecurMonthly:
		return RecurMonthly, nil
	case RecurYearly:
		return RecurYearly, nil
	default:
		return "", fmt.Errorf("invalid recurring pattern %q", s)
	}
}

// Next returns the next occurrence after t for this pattern.
func (p RecurringPattern) Next(t time.Time) time.Time {
	switch p {
	case RecurDaily:
		return t.AddDate(0, 0, 1)
	case RecurWeekly:
		return t.AddDate(0, 0, 7)
	case RecurMonthly:
		return t.AddDate(0, 1, 0)
	case RecurYearly:
		return t.AddDate(1, 0, 0)
	default:
		return t
	}
}

// Tag labels a transaction. Many-to-many, optional.
type Tag struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// Transaction is a single income or expense record. Amount is non-negative;
// CategoryName is denormalized by the store so aggregation and search do not
// need a category lookup.
type Transaction struct {
	ID               uuid.UUID
	Amount           decimal.Decimal
	Type             TransactionType
	Date             time.Time
	Note             string
	CategoryID       uuid.UUID
	CategoryName     string
	AccountID        *uuid.UUID
	Tags             []Tag
	Recurring        bool
	RecurringPattern *RecurringPattern
}

// Category groups transactions. Type is fixed at creation and constrains
// which transactions may reference the category.
type Category struct {
	ID        uuid.UUID
	Name      string
	Icon      string
	Color     string
	IsDefault bool
	Type      TransactionType
}

// Budget is a spending ceiling for one expense category over a period.
type Budget struct {
	ID           uuid.UUID
	CategoryID   uuid.UUID
	CategoryName string
	Amount       decimal.Decimal
	Period       BudgetPeriod
}

// Goal is a savings target with a deadline.
type Goal struct {
	ID            uuid.UUID
	Name          string
	TargetAmount  decimal.Decimal
	CurrentAmount decimal.Decimal
	Deadline      time.Time
}

// WithContribution returns the goal after adding amount to its current total,
// clamped so CurrentAmount never exceeds TargetAmount. Every store that
// mutates a goal must apply this rule.
func (g Goal) WithContribution(amount decimal.Decimal) Goal {
	if amount.IsNegative() {
		return g
	}
	next := g.CurrentAmount.Add(amount)
	if next.GreaterThan(g.TargetAmount) {
		next = g.TargetAmount
	}
	g.CurrentAmount = next
	return g
}

// Account is a named bucket of transactions. Its balance is derived, never
// stored.
type Account struct {
	ID   uuid.UUID
	Name string
}
