// Package testdata seeds a demo dataset for trying the app without entering
// months of history by hand.
package testdata

import (
	"context"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jask/moneylens/internal/database/repository"
	"github.com/jask/moneylens/internal/ledger"
)

// Repos bundles repos used by Seed.
type Repos struct {
	Accounts     *repository.AccountRepo
	Categories   *repository.CategoryRepo
	Transactions *repository.TransactionRepo
	Budgets      *repository.BudgetRepo
	Goals        *repository.GoalRepo
}

var demoNotes = map[string][]string{
	"Food":          {"Lunch at cafe", "Groceries", "Pizza night", "Coffee"},
	"Transport":     {"Uber ride", "Gas station", "Metro card"},
	"Entertainment": {"Netflix", "Cinema tickets", "Concert"},
	"Bills":         {"Internet bill", "Electricity bill", "Phone payment"},
	"Shopping":      {"Amazon order", "New shoes"},
}

// Seed creates sample data on top of the default categories. The default
// category set must already be seeded.
func Seed(ctx context.Context, repos Repos) error {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	acct := ledger.Account{ID: uuid.New(), Name: "Sample Checking"}
	if err := repos.Accounts.Upsert(ctx, acct); err != nil {
		return err
	}

	cats, err := repos.Categories.List(ctx)
	if err != nil {
		return err
	}
	byName := make(map[string]ledger.Category, len(cats))
	for _, c := range cats {
		byName[c.Name] = c
	}

	now := time.Now().UTC()

	// Four months of salary so forecasts and month-over-month insights have
	// history to chew on.
	if salary, ok := byName["Salary"]; ok {
		for m := 0; m < 4; m++ {
			date := time.Date(now.Year(), now.Month(), 1, 9, 0, 0, 0, time.UTC).AddDate(0, -m, 0)
			err := repos.Transactions.Insert(ctx, ledger.Transaction{
				ID:         uuid.New(),
				Amount:     decimal.NewFromInt(3200),
				Type:       ledger.TypeIncome,
				Date:       date,
				Note:       "Monthly salary",
				CategoryID: salary.ID,
				AccountID:  &acct.ID,
			})
			if err != nil {
				return err
			}
		}
	}

	for name, notes := range demoNotes {
		cat, ok := byName[name]
		if !ok {
			continue
		}
		for i := 0; i < 8; i++ {
			amount := decimal.NewFromInt(int64(rng.Intn(120) + 5))
			err := repos.Transactions.Insert(ctx, ledger.Transaction{
				ID:         uuid.New(),
				Amount:     amount,
				Type:       ledger.TypeExpense,
				Date:       now.AddDate(0, 0, -rng.Intn(100)),
				Note:       notes[rng.Intn(len(notes))],
				CategoryID: cat.ID,
				AccountID:  &acct.ID,
			})
			if err != nil {
				return err
			}
		}
	}

	if food, ok := byName["Food"]; ok {
		err := repos.Budgets.Upsert(ctx, ledger.Budget{
			ID: uuid.New(), CategoryID: food.ID,
			Amount: decimal.NewFromInt(500), Period: ledger.PeriodMonthly,
		})
		if err != nil {
			return err
		}
	}
	if transport, ok := byName["Transport"]; ok {
		err := repos.Budgets.Upsert(ctx, ledger.Budget{
			ID: uuid.New(), CategoryID: transport.ID,
			Amount: decimal.NewFromInt(150), Period: ledger.PeriodWeekly,
		})
		if err != nil {
			return err
		}
	}

	return repos.Goals.Upsert(ctx, ledger.Goal{
		ID:            uuid.New(),
		Name:          "Emergency fund",
		TargetAmount:  decimal.NewFromInt(5000),
		CurrentAmount: decimal.NewFromInt(1250),
		Deadline:      now.AddDate(1, 0, 0),
	})
}
