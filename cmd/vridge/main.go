package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/vlanet/vridge/internal/cli"
	"github.com/vlanet/vridge/internal/config"
	"github.com/vlanet/vridge/internal/db"
	"github.com/vlanet/vridge/internal/repository"
	"github.com/vlanet/vridge/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "vridge: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.LoadConfig()

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return err
	}
	defer database.Close()

	return cli.NewRootCmd(newApp(cfg, database)).Execute()
}

// newApp wires the schedule services for one process. All reads share the
// pool; imports go through the unit of work.
func newApp(cfg config.Config, database *sql.DB) *cli.App {
	projects := repository.NewSQLiteProjectRepo(database)
	phases := repository.NewSQLitePhaseRepo(database)

	var (
		observer service.UseCaseObserver = service.NoopUseCaseObserver{}
		logger   *slog.Logger
	)
	if cfg.LogCalls {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
		observer = service.NewLogUseCaseObserver(logger)
	}

	return &cli.App{
		Projects: service.NewProjectService(projects),
		Phases:   service.NewPhaseService(phases, projects, observer),
		Calendar: service.NewCalendarService(projects, phases, service.CalendarSettings{
			SensitiveTypes: cfg.ConflictTypes,
			Policy:         cfg.SeverityMode,
			EscalateAbove:  cfg.EscalateAbove,
			Workers:        cfg.Workers,
			Logger:         logger,
		}, observer),
		Import: service.NewImportService(db.NewSQLiteUnitOfWork(database), observer),
		// Forms need a terminal on stdin.
		IsInteractive: func() bool {
			fd := os.Stdin.Fd()
			return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
		},
	}
}
