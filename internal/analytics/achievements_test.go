package analytics

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/jask/moneylens/internal/ledger"
)

func achievement(kind ledger.RequirementKind, count int, amount string) ledger.Achievement {
	r := ledger.Requirement{Kind: kind, Count: count}
	if amount != "" {
		r.Amount = dec(amount)
	}
	return ledger.Achievement{
		ID:          uuid.New(),
		Title:       string(kind),
		Requirement: r,
	}
}

func TestCheckAchievementsFirstTransaction(t *testing.T) {
	// One transaction satisfies a count-of-1 requirement; the unlock is
	// stamped with now.
	achs := []ledger.Achievement{achievement(ledger.RequireTransactionCount, 1, "")}
	txns := []ledger.Transaction{
		tx("5", ledger.TypeExpense, fixedNow.AddDate(0, 0, -1), foodID, "Food"),
	}

	got := CheckAchievements(txns, nil, nil, achs, fixedNow, time.UTC)
	if !got[0].Unlocked {
		t.Fatal("count-of-1 achievement should unlock with one transaction")
	}
	if got[0].UnlockedAt == nil || !got[0].UnlockedAt.Equal(fixedNow) {
		t.Fatalf("UnlockedAt = %v, want %v", got[0].UnlockedAt, fixedNow)
	}
	if achs[0].Unlocked {
		t.Fatal("input slice must not be mutated")
	}
}

func TestCheckAchievementsMonotonic(t *testing.T) {
	earlier := fixedNow.AddDate(0, 0, -10)
	a := achievement(ledger.RequireTransactionCount, 1, "")
	a.Unlocked = true
	a.UnlockedAt = &earlier

	// Requirement no longer holds, but the unlock must survive.
	got := CheckAchievements(nil, nil, nil, []ledger.Achievement{a}, fixedNow, time.UTC)
	if !got[0].Unlocked {
		t.Fatal("unlocked achievement must stay unlocked")
	}
	if !got[0].UnlockedAt.Equal(earlier) {
		t.Fatalf("UnlockedAt = %v, original stamp %v must be kept", got[0].UnlockedAt, earlier)
	}
}

func TestCheckAchievementsTotalSaved(t *testing.T) {
	achs := []ledger.Achievement{achievement(ledger.RequireTotalSaved, 0, "1000")}
	txns := []ledger.Transaction{
		tx("1500", ledger.TypeIncome, fixedNow.AddDate(0, 0, -5), salaryID, "Salary"),
		tx("400", ledger.TypeExpense, fixedNow.AddDate(0, 0, -2), foodID, "Food"),
	}

	// Balance is 1100, above the 1000 requirement.
	got := CheckAchievements(txns, nil, nil, achs, fixedNow, time.UTC)
	if !got[0].Unlocked {
		t.Fatal("total-saved achievement should unlock at balance 1100")
	}

	// One more expense drops the balance to 900; a fresh copy stays locked.
	txns = append(txns, tx("200", ledger.TypeExpense, fixedNow.AddDate(0, 0, -1), foodID, "Food"))
	got = CheckAchievements(txns, nil, nil, achs, fixedNow, time.UTC)
	if got[0].Unlocked {
		t.Fatal("total-saved achievement should stay locked at balance 900")
	}
}

func TestCheckAchievementsBudgetsMet(t *testing.T) {
	budgets := []ledger.Budget{
		{ID: uuid.New(), CategoryID: foodID, CategoryName: "Food", Amount: dec("100"), Period: ledger.PeriodMonthly},
		{ID: uuid.New(), CategoryID: transportID, CategoryName: "Transport", Amount: dec("100"), Period: ledger.PeriodMonthly},
	}
	txns := []ledger.Transaction{
		tx("150", ledger.TypeExpense, fixedNow.AddDate(0, 0, -1), foodID, "Food"), // overspent
		tx("40", ledger.TypeExpense, fixedNow.AddDate(0, 0, -1), transportID, "Transport"),
	}

	achs := []ledger.Achievement{achievement(ledger.RequireBudgetsMet, 2, "")}
	got := CheckAchievements(txns, nil, budgets, achs, fixedNow, time.UTC)
	if got[0].Unlocked {
		t.Fatal("only one of two budgets is within ceiling, must stay locked")
	}

	achs = []ledger.Achievement{achievement(ledger.RequireBudgetsMet, 1, "")}
	got = CheckAchievements(txns, nil, budgets, achs, fixedNow, time.UTC)
	if !got[0].Unlocked {
		t.Fatal("one budget within ceiling satisfies count 1")
	}
}

func TestCheckAchievementsGoalCompleted(t *testing.T) {
	goals := []ledger.Goal{
		{ID: uuid.New(), Name: "Trip", TargetAmount: dec("500"), CurrentAmount: dec("500")},
	}
	achs := []ledger.Achievement{achievement(ledger.RequireGoalCompleted, 0, "")}

	got := CheckAchievements(nil, goals, nil, achs, fixedNow, time.UTC)
	if !got[0].Unlocked {
		t.Fatal("a goal at its target should unlock the completion achievement")
	}

	goals[0].CurrentAmount = dec("499")
	got = CheckAchievements(nil, goals, nil, achs, fixedNow, time.UTC)
	if got[0].Unlocked {
		t.Fatal("an unfinished goal must not unlock the completion achievement")
	}
}

func TestCheckAchievementsCategorySpendingNeverUnlocks(t *testing.T) {
	achs := []ledger.Achievement{achievement(ledger.RequireCategorySpending, 0, "1")}
	txns := []ledger.Transaction{
		tx("1000", ledger.TypeExpense, fixedNow.AddDate(0, 0, -1), foodID, "Food"),
	}
	got := CheckAchievements(txns, nil, nil, achs, fixedNow, time.UTC)
	if got[0].Unlocked {
		t.Fatal("category-spending requirement is reserved, must never unlock")
	}
}

func TestDefaultAchievementsStartLocked(t *testing.T) {
	for _, a := range ledger.DefaultAchievements() {
		if a.Unlocked || a.UnlockedAt != nil {
			t.Fatalf("default achievement %q must start locked", a.Title)
		}
	}
	if got := len(ledger.DefaultAchievements()); got != 5 {
		t.Fatalf("default achievement count = %d, want 5", got)
	}
}
