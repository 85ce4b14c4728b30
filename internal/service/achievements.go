package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/jask/moneylens/internal/analytics"
	"github.com/jask/moneylens/internal/database/repository"
	"github.com/jask/moneylens/internal/ledger"
	"github.com/jask/moneylens/internal/prefs"
)

// AchievementService re-evaluates achievements against the current data and
// persists any new unlocks. Achievements live in prefs, not the database, so
// a data reset never revokes them.
type AchievementService struct {
	Transactions *repository.TransactionRepo
	Goals        *repository.GoalRepo
	Budgets      *repository.BudgetRepo
	Loc          *time.Location
	Log          zerolog.Logger
}

// Refresh loads the stored set, checks every locked entry, and saves when
// something unlocked. The updated set is returned either way.
func (s *AchievementService) Refresh(ctx context.Context, now time.Time) ([]ledger.Achievement, error) {
	achs, err := prefs.LoadAchievements()
	if err != nil {
		return nil, err
	}

	txns, err := s.Transactions.List(ctx, repository.TransactionFilters{})
	if err != nil {
		return nil, err
	}
	goals, err := s.Goals.List(ctx)
	if err != nil {
		return nil, err
	}
	budgets, err := s.Budgets.List(ctx)
	if err != nil {
		return nil, err
	}

	updated := analytics.CheckAchievements(txns, goals, budgets, achs, now, s.Loc)

	changed := false
	for i := range updated {
		if updated[i].Unlocked && !achs[i].Unlocked {
			changed = true
			s.Log.Info().Str("achievement", updated[i].Title).Msg("achievement unlocked")
		}
	}
	if changed {
		if err := prefs.SaveAchievements(updated); err != nil {
			return nil, err
		}
	}
	return updated, nil
}
