package main

import (
	"fmt"
	"os"

	"github.com/alexanderramin/repsheet/internal/cli"
	"github.com/alexanderramin/repsheet/internal/config"
	"github.com/alexanderramin/repsheet/internal/db"
	"github.com/alexanderramin/repsheet/internal/repository"
	"github.com/alexanderramin/repsheet/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Config file: env var or default ~/.repsheet/config.yaml
	configPath := os.Getenv("REPSHEET_CONFIG")
	if configPath == "" {
		configPath = config.DefaultPath()
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	database, err := db.OpenDB(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	uow := db.NewSQLiteUnitOfWork(database)

	var observers []service.UseCaseObserver
	if cfg.Log.Calls {
		observers = append(observers, service.NewLogUseCaseObserver(os.Stderr))
	}

	app := &cli.App{
		Programs: service.NewProgramService(repository.NewSQLiteProgramRepo(database), uow, observers...),
		Library:  service.NewLibraryService(repository.NewSQLiteSnapshotRepo(database), uow, observers...),
		Defaults: cfg.Settings(),
		Mode:     cfg.Mode(),
	}

	// The sheet editor needs a terminal on both ends.
	app.IsInteractive = func() bool {
		in, out := os.Stdin.Fd(), os.Stdout.Fd()
		return (isatty.IsTerminal(in) || isatty.IsCygwinTerminal(in)) &&
			(isatty.IsTerminal(out) || isatty.IsCygwinTerminal(out))
	}

	return cli.NewRootCmd(app).Execute()
}
