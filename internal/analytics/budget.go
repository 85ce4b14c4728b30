package analytics

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jask/moneylens/internal/ledger"
)

// BudgetStatus is the evaluated state of one budget at a point in time.
type BudgetStatus struct {
	Spent     decimal.Decimal
	Remaining decimal.Decimal
	Progress  decimal.Decimal // in [0, 1]
}

// BudgetSpent sums expense transactions in the budget's category over its
// spend window ending at now.
func BudgetSpent(b ledger.Budget, txns []ledger.Transaction, now time.Time, loc *time.Location) decimal.Decimal {
	iv := BudgetWindow(b.Period, now, loc)
	total := decimal.Zero
	for _, t := range txns {
		if t.Type != ledger.TypeExpense || t.CategoryID != b.CategoryID {
			continue
		}
		if !iv.Contains(t.Date) {
			continue
		}
		total = total.Add(t.Amount)
	}
	return total
}

// BudgetRemaining is the ceiling minus spend. Negative means overspent.
func BudgetRemaining(b ledger.Budget, txns []ledger.Transaction, now time.Time, loc *time.Location) decimal.Decimal {
	return b.Amount.Sub(BudgetSpent(b, txns, now, loc))
}

// BudgetProgress is spent/amount capped at 1. A non-positive ceiling yields 0.
func BudgetProgress(b ledger.Budget, txns []ledger.Transaction, now time.Time, loc *time.Location) decimal.Decimal {
	if !b.Amount.IsPositive() {
		return decimal.Zero
	}
	progress := BudgetSpent(b, txns, now, loc).Div(b.Amount)
	one := decimal.NewFromInt(1)
	if progress.GreaterThan(one) {
		return one
	}
	return progress
}

// StatusForBudget evaluates spend, remaining, and progress in one pass.
func StatusForBudget(b ledger.Budget, txns []ledger.Transaction, now time.Time, loc *time.Location) BudgetStatus {
	spent := BudgetSpent(b, txns, now, loc)
	st := BudgetStatus{
		Spent:     spent,
		Remaining: b.Amount.Sub(spent),
		Progress:  decimal.Zero,
	}
	if b.Amount.IsPositive() {
		one := decimal.NewFromInt(1)
		st.Progress = spent.Div(b.Amount)
		if st.Progress.GreaterThan(one) {
			st.Progress = one
		}
	}
	return st
}
