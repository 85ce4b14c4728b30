package database

import (
	"context"
	"database/sql"

	"github.com/jask/moneylens/internal/database/repository"
	"github.com/jask/moneylens/internal/ledger"
)

// SeedDefaults ensures the baseline categories exist for new databases.
// It is idempotent and safe to run on every startup: defaults carry stable
// ids, so reseeding never duplicates rows or clobbers user categories.
func SeedDefaults(ctx context.Context, db *sql.DB) error {
	catRepo := repository.NewCategoryRepo(db)
	existing, err := catRepo.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}
	for _, c := range ledger.DefaultCategories() {
		if err := catRepo.Upsert(ctx, c); err != nil {
			return err
		}
	}
	return nil
}
