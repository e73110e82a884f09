package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/alexanderramin/estimate/internal/cli"
	"github.com/alexanderramin/estimate/internal/config"
	"github.com/alexanderramin/estimate/internal/db"
	"github.com/alexanderramin/estimate/internal/render"
	"github.com/alexanderramin/estimate/internal/repository"
	"github.com/alexanderramin/estimate/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()

	var logOut io.Writer
	if cfg.LogUseCases {
		logOut = os.Stderr
	}

	app := &cli.App{
		Config:   cfg,
		PDF:      render.NewChromePDF(cfg.ChromeBin, cfg.PDFTimeout()),
		Observer: service.NewLogUseCaseObserver(logOut),
	}

	// Open the history database only when recording is enabled.
	if cfg.HistoryEnabled() {
		if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
			return fmt.Errorf("creating history directory: %w", err)
		}
		database, err := db.OpenDB(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("opening history database: %w", err)
		}
		defer database.Close()

		app.Runs = repository.NewSQLiteRunRepo(database)
		app.UoW = db.NewSQLiteUnitOfWork(database)
	}

	// Detect interactive terminal for prompts and the spinner.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}
