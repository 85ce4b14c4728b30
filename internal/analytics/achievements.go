package analytics

import (
	"time"

	"github.com/jask/moneylens/internal/ledger"
)

// CheckAchievements evaluates every locked achievement's requirement against
// the snapshot and returns the full list with newly satisfied ones unlocked
// and stamped with now. Unlocking is monotonic: already-unlocked entries are
// returned untouched. The inputs are never mutated.
func CheckAchievements(
	txns []ledger.Transaction,
	goals []ledger.Goal,
	budgets []ledger.Budget,
	achievements []ledger.Achievement,
	now time.Time,
	loc *time.Location,
) []ledger.Achievement {
	out := make([]ledger.Achievement, len(achievements))
	copy(out, achievements)

	for i, a := range out {
		if a.Unlocked {
			continue
		}
		if requirementMet(a.Requirement, txns, goals, budgets, now, loc) {
			unlockedAt := now
			out[i].Unlocked = true
			out[i].UnlockedAt = &unlockedAt
		}
	}
	return out
}

func requirementMet(
	r ledger.Requirement,
	txns []ledger.Transaction,
	goals []ledger.Goal,
	budgets []ledger.Budget,
	now time.Time,
	loc *time.Location,
) bool {
	switch r.Kind {
	case ledger.RequireTransactionCount:
		return len(txns) >= r.Count

	case ledger.RequireTotalSaved:
		return Balance(txns).GreaterThanOrEqual(r.Amount)

	case ledger.RequireStreakDays:
		// Approximation carried over from the original system: counts
		// transactions, not consecutive days.
		return len(txns) >= r.Count

	case ledger.RequireBudgetsMet:
		met := 0
		for _, b := range budgets {
			if !BudgetRemaining(b, txns, now, loc).IsNegative() {
				met++
			}
		}
		return met >= r.Count

	case ledger.RequireCategorySpending:
		// Reserved; never unlocks.
		return false

	case ledger.RequireGoalCompleted:
		for _, g := range goals {
			if g.CurrentAmount.GreaterThanOrEqual(g.TargetAmount) {
				return true
			}
		}
		return false

	default:
		return false
	}
}
