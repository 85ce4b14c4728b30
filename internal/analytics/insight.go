package analytics

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jask/moneylens/internal/ledger"
)

// highWeeklySpend is the fixed currency-agnostic threshold above which the
// weekly reduce-spending tip fires.
var highWeeklySpend = decimal.NewFromInt(1000)

var (
	topShareTipThreshold  = decimal.NewFromFloat(0.3)
	alertWarningProgress  = decimal.NewFromFloat(0.8)
	alertCriticalProgress = decimal.NewFromFloat(0.9)
)

// InsightEngine turns aggregated data into human-readable observations. It is
// stateless; Currency only affects string formatting.
type InsightEngine struct {
	Currency string
	Loc      *time.Location
}

func (e InsightEngine) loc() *time.Location {
	if e.Loc != nil {
		return e.Loc
	}
	return time.Local
}

func (e InsightEngine) money(d decimal.Decimal) string {
	return e.Currency + d.StringFixed(2)
}

// Insights evaluates the spending-observation rules over the snapshot. Rules
// are independent; each contributes at most one line.
func (e InsightEngine) Insights(txns []ledger.Transaction, now time.Time) []string {
	loc := e.loc()
	local := now.In(loc)
	thisMonthStart := startOfMonth(local, loc)
	lastMonthStart := thisMonthStart.AddDate(0, -1, 0)

	thisMonth := Interval{Start: thisMonthStart, End: now, HasStart: true, HasEnd: true}
	lastMonth := Interval{Start: lastMonthStart, End: thisMonthStart, HasStart: true, HasEnd: true}

	expense := ledger.TypeExpense
	thisTotal := Sum(Filter(txns, TxFilter{Type: &expense, Interval: &thisMonth}), expense)
	lastTotal := Sum(Filter(txns, TxFilter{Type: &expense, Interval: &lastMonth}), expense)

	var insights []string
	hundred := decimal.NewFromInt(100)

	// Month-over-month trend.
	if lastTotal.IsPositive() {
		if thisTotal.GreaterThan(lastTotal) {
			pct := thisTotal.Sub(lastTotal).Div(lastTotal).Mul(hundred)
			insights = append(insights, fmt.Sprintf(
				"Your spending increased by %.1f%% this month. Consider reviewing your budget.",
				pct.InexactFloat64()))
		} else if thisTotal.LessThan(lastTotal) {
			pct := lastTotal.Sub(thisTotal).Div(lastTotal).Mul(hundred)
			insights = append(insights, fmt.Sprintf(
				"Great job! You saved %.1f%% compared to last month.",
				pct.InexactFloat64()))
		}
	}

	// Top category this month.
	shares := CategoryBreakdown(txns, PeriodMonth, now, loc)
	if len(shares) > 0 && thisTotal.IsPositive() {
		top := shares[0]
		pct := top.Amount.Div(thisTotal).Mul(hundred)
		insights = append(insights, fmt.Sprintf(
			"Your biggest expense category is %s (%.1f%% of total).",
			top.CategoryName, pct.InexactFloat64()))
	}

	// Daily average.
	days := decimal.NewFromInt(int64(local.Day()))
	insights = append(insights, fmt.Sprintf(
		"You're spending an average of %s per day this month.",
		e.money(thisTotal.Div(days))))

	// Savings opportunity: top category dominating the month.
	if len(shares) > 0 && thisTotal.IsPositive() {
		top := shares[0]
		if top.Amount.GreaterThan(thisTotal.Mul(topShareTipThreshold)) {
			insights = append(insights, fmt.Sprintf(
				"Tip: Consider reducing spending on %s to save more.", top.CategoryName))
		}
	}

	return insights
}

// Recommendations evaluates the actionable rules: budgets close to their
// ceiling and an unusually expensive calendar week.
func (e InsightEngine) Recommendations(txns []ledger.Transaction, budgets []ledger.Budget, now time.Time) []string {
	loc := e.loc()
	var recs []string

	for _, b := range budgets {
		st := StatusForBudget(b, txns, now, loc)
		if st.Progress.GreaterThanOrEqual(alertCriticalProgress) {
			pct := st.Progress.Mul(decimal.NewFromInt(100)).IntPart()
			recs = append(recs, fmt.Sprintf(
				"You've used %d%% of your %s budget. Only %s left.",
				pct, b.CategoryName, e.money(st.Remaining)))
		}
	}

	weekStart := startOfISOWeek(now.In(loc))
	week := Interval{Start: weekStart, End: now, HasStart: true, HasEnd: true}
	expense := ledger.TypeExpense
	weekTotal := Sum(Filter(txns, TxFilter{Type: &expense, Interval: &week}), expense)
	if weekTotal.GreaterThan(highWeeklySpend) {
		recs = append(recs, "Your weekly spending is high. Try to reduce unnecessary expenses.")
	}

	return recs
}

// AlertLevel grades a budget alert.
type AlertLevel string

const (
	AlertWarning  AlertLevel = "warning"  // progress in [0.8, 0.9)
	AlertExceeded AlertLevel = "exceeded" // remaining below zero
)

// BudgetAlert pairs a budget with the trigger it hit.
type BudgetAlert struct {
	Budget ledger.Budget
	Level  AlertLevel
	Status BudgetStatus
}

// BudgetAlerts evaluates the two notification triggers for every budget.
// The triggers fire independently: each budget yields one entry per trigger
// that applies.
func BudgetAlerts(budgets []ledger.Budget, txns []ledger.Transaction, now time.Time, loc *time.Location) []BudgetAlert {
	var alerts []BudgetAlert
	for _, b := range budgets {
		st := StatusForBudget(b, txns, now, loc)
		if st.Progress.GreaterThanOrEqual(alertWarningProgress) && st.Progress.LessThan(alertCriticalProgress) {
			alerts = append(alerts, BudgetAlert{Budget: b, Level: AlertWarning, Status: st})
		}
		if st.Remaining.IsNegative() {
			alerts = append(alerts, BudgetAlert{Budget: b, Level: AlertExceeded, Status: st})
		}
	}
	return alerts
}
