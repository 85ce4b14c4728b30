package analytics

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jask/moneylens/internal/ledger"
)

// TxFilter selects transactions. All supplied predicates must match
// (conjunctive); nil/empty fields are ignored.
type TxFilter struct {
	Type       *ledger.TransactionType
	CategoryID *uuid.UUID
	AccountID  *uuid.UUID
	Interval   *Interval
	Search     string
}

// Filter returns the transactions matching f, preserving input order. It has
// no hidden state: the same snapshot and filter always yield the same result.
func Filter(txns []ledger.Transaction, f TxFilter) []ledger.Transaction {
	search := strings.ToLower(strings.TrimSpace(f.Search))
	var out []ledger.Transaction
	for _, t := range txns {
		if f.Type != nil && t.Type != *f.Type {
			continue
		}
		if f.CategoryID != nil && t.CategoryID != *f.CategoryID {
			continue
		}
		if f.AccountID != nil {
			if t.AccountID == nil || *t.AccountID != *f.AccountID {
				continue
			}
		}
		if f.Interval != nil && !f.Interval.Contains(t.Date) {
			continue
		}
		if search != "" && !matchesSearch(t, search) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func matchesSearch(t ledger.Transaction, lowered string) bool {
	return strings.Contains(strings.ToLower(t.Note), lowered) ||
		strings.Contains(strings.ToLower(t.CategoryName), lowered)
}

// Sum totals the amounts of the given type. Income and expense are never
// mixed in one accumulator.
func Sum(txns []ledger.Transaction, tt ledger.TransactionType) decimal.Decimal {
	total := decimal.Zero
	for _, t := range txns {
		if t.Type == tt {
			total = total.Add(t.Amount)
		}
	}
	return total
}

// Balance is net worth over the snapshot: income minus expense.
func Balance(txns []ledger.Transaction) decimal.Decimal {
	return Sum(txns, ledger.TypeIncome).Sub(Sum(txns, ledger.TypeExpense))
}

// AccountBalance is the signed total of transactions referencing accountID.
func AccountBalance(txns []ledger.Transaction, accountID uuid.UUID) decimal.Decimal {
	var scoped []ledger.Transaction
	for _, t := range txns {
		if t.AccountID != nil && *t.AccountID == accountID {
			scoped = append(scoped, t)
		}
	}
	return Balance(scoped)
}

// SumByCategory totals amounts per category. Transactions without a category
// are skipped rather than failing the whole aggregation.
func SumByCategory(txns []ledger.Transaction) map[uuid.UUID]decimal.Decimal {
	out := make(map[uuid.UUID]decimal.Decimal)
	for _, t := range txns {
		if t.CategoryID == uuid.Nil {
			continue
		}
		out[t.CategoryID] = out[t.CategoryID].Add(t.Amount)
	}
	return out
}

// DayTotal holds one calendar day's separated totals.
type DayTotal struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
}

// GroupByDay buckets transactions by the start of their calendar day in loc.
func GroupByDay(txns []ledger.Transaction, loc *time.Location) map[time.Time]DayTotal {
	if loc == nil {
		loc = time.Local
	}
	out := make(map[time.Time]DayTotal)
	for _, t := range txns {
		d := t.Date.In(loc)
		day := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc)
		dt := out[day]
		switch t.Type {
		case ledger.TypeIncome:
			dt.Income = dt.Income.Add(t.Amount)
		case ledger.TypeExpense:
			dt.Expense = dt.Expense.Add(t.Amount)
		}
		out[day] = dt
	}
	return out
}

// PeriodTotals holds separated income and expense sums for a window.
type PeriodTotals struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
}

// TotalsForPeriod sums income and expense inside the statistics window for p.
func TotalsForPeriod(txns []ledger.Transaction, p Period, now time.Time, loc *time.Location) PeriodTotals {
	iv := StatisticsWindow(p, now, loc)
	scoped := Filter(txns, TxFilter{Interval: &iv})
	return PeriodTotals{
		Income:  Sum(scoped, ledger.TypeIncome),
		Expense: Sum(scoped, ledger.TypeExpense),
	}
}

// CategoryShare is one category's slice of the period's expense total.
type CategoryShare struct {
	CategoryID   uuid.UUID
	CategoryName string
	Amount       decimal.Decimal
	Percentage   decimal.Decimal
}

// CategoryBreakdown ranks expense categories over the statistics window,
// largest first, with each share as a percentage of the window's expense
// total. Categories with nothing spent are omitted. Ties order by name so the
// result is stable.
func CategoryBreakdown(txns []ledger.Transaction, p Period, now time.Time, loc *time.Location) []CategoryShare {
	iv := StatisticsWindow(p, now, loc)
	expense := ledger.TypeExpense
	scoped := Filter(txns, TxFilter{Type: &expense, Interval: &iv})

	names := make(map[uuid.UUID]string)
	for _, t := range scoped {
		if t.CategoryID != uuid.Nil {
			names[t.CategoryID] = t.CategoryName
		}
	}

	totals := SumByCategory(scoped)
	shares := make([]CategoryShare, 0, len(totals))
	grand := decimal.Zero
	for id, amount := range totals {
		if amount.IsZero() {
			continue
		}
		grand = grand.Add(amount)
		shares = append(shares, CategoryShare{CategoryID: id, CategoryName: names[id], Amount: amount})
	}
	sort.Slice(shares, func(i, j int) bool {
		if !shares[i].Amount.Equal(shares[j].Amount) {
			return shares[i].Amount.GreaterThan(shares[j].Amount)
		}
		return shares[i].CategoryName < shares[j].CategoryName
	})
	if grand.IsPositive() {
		hundred := decimal.NewFromInt(100)
		for i := range shares {
			shares[i].Percentage = shares[i].Amount.Div(grand).Mul(hundred)
		}
	}
	return shares
}
