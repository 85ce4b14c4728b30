package analytics

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jask/moneylens/internal/ledger"
)

// GoalStatus is the evaluated state of one savings goal.
type GoalStatus struct {
	Progress      decimal.Decimal // in [0, 1]
	DaysRemaining int             // negative when the deadline has passed
}

// GoalProgress is current/target capped at 1. A non-positive target yields 0.
func GoalProgress(g ledger.Goal) decimal.Decimal {
	if !g.TargetAmount.IsPositive() {
		return decimal.Zero
	}
	progress := g.CurrentAmount.Div(g.TargetAmount)
	one := decimal.NewFromInt(1)
	if progress.GreaterThan(one) {
		return one
	}
	return progress
}

// GoalDaysRemaining is the whole-day difference from now to the deadline,
// truncated toward zero. Overdue goals report a negative count.
func GoalDaysRemaining(g ledger.Goal, now time.Time) int {
	return int(g.Deadline.Sub(now).Hours() / 24)
}

// StatusForGoal evaluates progress and days remaining together.
func StatusForGoal(g ledger.Goal, now time.Time) GoalStatus {
	return GoalStatus{
		Progress:      GoalProgress(g),
		DaysRemaining: GoalDaysRemaining(g, now),
	}
}
