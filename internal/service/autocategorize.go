package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jask/moneylens/internal/analytics"
	"github.com/jask/moneylens/internal/database/repository"
	"github.com/jask/moneylens/internal/ledger"
)

// AutoCategorizer assigns categories to uncategorized transactions from
// their note text. Suggestions that do not resolve to a stored category of
// the right type are skipped, never forced.
type AutoCategorizer struct {
	Transactions *repository.TransactionRepo
	Categories   *repository.CategoryRepo
	Log          zerolog.Logger
}

// Suggest resolves the keyword suggestion for a single transaction against
// the stored categories. Returns nil when there is no usable suggestion.
func (s *AutoCategorizer) Suggest(ctx context.Context, t ledger.Transaction) (*ledger.Category, error) {
	name, ok := analytics.SuggestCategory(t.Note, t.Type)
	if !ok {
		return nil, nil
	}
	cat, err := s.Categories.ByName(ctx, name)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if cat.Type != t.Type {
		return nil, nil
	}
	return cat, nil
}

// Run applies suggestions to every uncategorized transaction and reports how
// many were assigned.
func (s *AutoCategorizer) Run(ctx context.Context) (int, error) {
	txns, err := s.Transactions.List(ctx, repository.TransactionFilters{})
	if err != nil {
		return 0, err
	}

	assigned := 0
	for _, t := range txns {
		if t.CategoryID != uuid.Nil {
			continue
		}
		cat, err := s.Suggest(ctx, t)
		if err != nil {
			return assigned, err
		}
		if cat == nil {
			continue
		}
		if err := s.Transactions.UpdateCategory(ctx, t.ID, cat.ID); err != nil {
			return assigned, err
		}
		s.Log.Debug().
			Str("transaction", t.ID.String()).
			Str("category", cat.Name).
			Msg("auto-categorized")
		assigned++
	}
	return assigned, nil
}
