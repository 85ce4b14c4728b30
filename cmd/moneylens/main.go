package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/jask/moneylens/internal/config"
	"github.com/jask/moneylens/internal/database"
	"github.com/jask/moneylens/internal/database/repository"
	"github.com/jask/moneylens/internal/logger"
	"github.com/jask/moneylens/internal/service"
	"github.com/jask/moneylens/internal/testdata"
	"github.com/jask/moneylens/internal/tui"
)

func main() {
	demo := flag.Bool("demo", false, "seed sample data into an empty database")
	flag.Parse()

	// optional .env for local overrides
	_ = godotenv.Load()

	log := logger.New()
	ctx := logger.WithContext(context.Background(), log)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		log.Fatal().Err(err).Msg("mkdir db dir")
	}

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatal().Err(err).Msg("open db")
	}
	defer db.Close()

	if err := database.RunMigrations(db); err != nil {
		log.Fatal().Err(err).Msg("migrate")
	}
	if err := database.SeedDefaults(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("seed defaults")
	}

	// repositories
	txRepo := repository.NewTransactionRepo(db)
	acctRepo := repository.NewAccountRepo(db)
	catRepo := repository.NewCategoryRepo(db)
	budgetRepo := repository.NewBudgetRepo(db)
	goalRepo := repository.NewGoalRepo(db)

	if *demo {
		err := testdata.Seed(ctx, testdata.Repos{
			Accounts:     acctRepo,
			Categories:   catRepo,
			Transactions: txRepo,
			Budgets:      budgetRepo,
			Goals:        goalRepo,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("seed demo data")
		}
		log.Info().Msg("demo data seeded")
	}

	loc := cfg.UI.Location()

	// services
	categorizer := &service.AutoCategorizer{Transactions: txRepo, Categories: catRepo, Log: log}
	duplicates := &service.DuplicateService{Transactions: txRepo}
	recurring := &service.RecurringService{Transactions: txRepo, Log: log}
	achievements := &service.AchievementService{
		Transactions: txRepo, Goals: goalRepo, Budgets: budgetRepo, Loc: loc, Log: log,
	}
	maintenance := &service.MaintenanceService{DB: db}

	// catch up recurring transactions before the first render
	if n, err := recurring.Materialize(ctx, database.Now()); err != nil {
		log.Warn().Err(err).Msg("recurring catch-up")
	} else if n > 0 {
		log.Info().Int("created", n).Msg("materialized recurring transactions")
	}

	p := tea.NewProgram(tui.New(ctx, cfg,
		tui.Repos{Transactions: txRepo, Categories: catRepo, Budgets: budgetRepo, Goals: goalRepo},
		tui.Services{Categorizer: categorizer, Duplicates: duplicates, Achievements: achievements, Maintenance: maintenance},
		loc,
	), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
	}
}
