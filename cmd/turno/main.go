package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/alexanderramin/turno/internal/cli"
	"github.com/alexanderramin/turno/internal/db"
	"github.com/alexanderramin/turno/internal/engine"
	"github.com/alexanderramin/turno/internal/events"
	"github.com/alexanderramin/turno/internal/repository"
	"github.com/alexanderramin/turno/internal/service"
	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Optional .env for local overrides; absence is fine.
	_ = godotenv.Load()

	// Determine DB path: env var or default ~/.turno/turno.db
	dbPath := os.Getenv("TURNO_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".turno", "turno.db")
	}

	userID := os.Getenv("TURNO_USER")
	if userID == "" {
		userID = "local"
	}

	loc := time.Local
	if tz := os.Getenv("TURNO_TZ"); tz != "" {
		parsed, err := time.LoadLocation(tz)
		if err != nil {
			return fmt.Errorf("invalid TURNO_TZ %q: %w", tz, err)
		}
		loc = parsed
	}

	// Open database
	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	categoryRepo := repository.NewSQLiteCategoryRepo(database)
	workTypeRepo := repository.NewSQLiteWorkTypeRepo(database)
	templateRepo := repository.NewSQLiteTemplateRepo(database)
	sessionRepo := repository.NewSQLiteSessionRepo(database)
	salaryRepo := repository.NewSQLiteSalaryRepo(database)
	contactRepo := repository.NewSQLiteContactRepo(database)
	settingsRepo := repository.NewSQLiteSettingsRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	bus := events.NewBus()
	cfg := engine.LoadConfig()

	salarySvc := service.NewSalaryService(salaryRepo, sessionRepo, workTypeRepo, settingsRepo, cfg.Pay, nil, bus)

	app := &cli.App{
		Engine:     engine.New(sessionRepo, templateRepo, workTypeRepo, uow, cfg),
		Categories: service.NewCategoryService(categoryRepo, workTypeRepo, bus),
		WorkTypes:  service.NewWorkTypeService(workTypeRepo, categoryRepo, contactRepo, bus),
		Checklists: service.NewChecklistService(templateRepo, workTypeRepo, uow, bus),
		Salaries:   salarySvc,
		Settings:   service.NewSettingsService(settingsRepo),
		Bus:        bus,
		UserID:     userID,
		Location:   loc,
	}

	// Detect interactive terminal for forms and the watch view.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if os.Getenv("TURNO_LOG") != "" {
		service.StartChangeLogger(ctx, bus, os.Stderr)
	}

	// Optional background salary refresh, e.g. TURNO_SALARY_REFRESH=15m.
	if raw := os.Getenv("TURNO_SALARY_REFRESH"); raw != "" {
		every, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("invalid TURNO_SALARY_REFRESH %q: %w", raw, err)
		}
		if err := salarySvc.StartAutoRefresh(ctx, userID, every); err != nil {
			return err
		}
	}

	// Execute root command
	rootCmd := cli.NewRootCmd(app)
	return rootCmd.ExecuteContext(ctx)
}
