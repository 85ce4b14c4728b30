package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jask/moneylens/internal/database/repository"
)

// maxCatchUpPerTemplate bounds how many missed occurrences one template can
// backfill in a single run, so a database untouched for years does not flood
// the ledger on open.
const maxCatchUpPerTemplate = 60

// RecurringService materializes due occurrences of recurring transactions.
// Each recurring row is the head of its chain; materializing inserts the next
// occurrence as the new head and demotes the old one to a plain transaction,
// which keeps the pass idempotent.
type RecurringService struct {
	Transactions *repository.TransactionRepo
	Log          zerolog.Logger
}

// Materialize inserts every occurrence due at or before now and returns how
// many rows were created.
func (s *RecurringService) Materialize(ctx context.Context, now time.Time) (int, error) {
	heads, err := s.Transactions.ListRecurring(ctx)
	if err != nil {
		return 0, err
	}

	created := 0
	for _, head := range heads {
		if head.RecurringPattern == nil {
			continue
		}
		pattern := *head.RecurringPattern

		for i := 0; i < maxCatchUpPerTemplate; i++ {
			next := pattern.Next(head.Date)
			if next.After(now) {
				break
			}

			occurrence := head
			occurrence.ID = uuid.New()
			occurrence.Date = next
			occurrence.Tags = nil
			if err := s.Transactions.Insert(ctx, occurrence); err != nil {
				return created, err
			}
			if err := s.Transactions.ClearRecurring(ctx, head.ID); err != nil {
				return created, err
			}
			s.Log.Debug().
				Str("template", head.ID.String()).
				Time("date", next).
				Msg("materialized recurring transaction")

			head = occurrence
			created++
		}
	}
	return created, nil
}
