package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	_ "time/tzdata"

	"github.com/alexanderramin/taskrange/internal/cli"
	"github.com/alexanderramin/taskrange/internal/cli/formatter"
	"github.com/alexanderramin/taskrange/internal/config"
	"github.com/alexanderramin/taskrange/internal/db"
	"github.com/alexanderramin/taskrange/internal/repository"
	"github.com/alexanderramin/taskrange/internal/service"
	"github.com/mattn/go-isatty"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		formatter.DisableColor()
	}

	var database *sql.DB
	defer func() {
		if database != nil {
			database.Close()
		}
	}()

	app := &cli.App{}
	app.Bootstrap = func(configPath string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		loc, err := cfg.Location()
		if err != nil {
			return err
		}

		database, err = db.OpenDB(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}

		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

		// Metrics are always collected so `serve` can expose them.
		registry := prometheus.NewRegistry()
		registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		metrics, err := service.NewMetricsUseCaseObserver(registry)
		if err != nil {
			return fmt.Errorf("registering metrics: %w", err)
		}
		observers := []service.UseCaseObserver{metrics}
		if cfg.LogUseCases {
			observers = append(observers, service.NewSlogUseCaseObserver(logger))
		}

		taskRepo := repository.NewSQLiteTaskRepo(database)
		uow := db.NewSQLiteUnitOfWork(database)

		app.Import = service.NewImportService(uow, loc, observers...)
		app.Query = service.NewQueryService(taskRepo, loc, observers...)
		app.Validation = service.NewValidationService(observers...)
		app.Location = loc
		app.Addr = cfg.Addr
		app.ShutdownTimeout = cfg.ShutdownTimeout
		app.Metrics = registry
		app.Logger = logger
		return nil
	}

	return cli.NewRootCmd(app).Execute()
}
