package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/Neoksnaman/ProTrack/internal/app"
	"github.com/Neoksnaman/ProTrack/internal/backup"
	"github.com/Neoksnaman/ProTrack/internal/cache"
	"github.com/Neoksnaman/ProTrack/internal/cli"
	"github.com/Neoksnaman/ProTrack/internal/config"
	"github.com/Neoksnaman/ProTrack/internal/db"
	"github.com/Neoksnaman/ProTrack/internal/intelligence"
	"github.com/Neoksnaman/ProTrack/internal/llm"
	"github.com/Neoksnaman/ProTrack/internal/metrics"
	"github.com/Neoksnaman/ProTrack/internal/repository"
	"github.com/Neoksnaman/ProTrack/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	cfg, err := config.Load(cli.ConfigPath(os.Args[1:]))
	if err != nil {
		return err
	}
	level, err := cfg.SlogLevel()
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	// Open database
	database, err := db.Open(ctx, cfg.Dialect(), cfg.DB.DSN)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	store := repository.NewStore(database)
	m := metrics.New()

	c := cache.New(store, cache.WithLogger(logger))
	m.WatchCache(c)
	if err := c.Load(ctx); err != nil {
		return fmt.Errorf("loading users and clients: %w", err)
	}
	if err := c.Wait(ctx); err != nil {
		logger.Warn("secondary_load_failed", "error", err.Error())
	}

	opts := []app.Option{
		app.WithLogger(logger),
		app.WithObservers(service.NewLogUseCaseObserver(os.Stderr, level), m),
	}

	// Summaries are only wired when the LLM is enabled.
	if cfg.LLM.Enabled {
		observers := llm.Observers{m}
		if cfg.LLM.LogCalls {
			observers = append(observers, llm.NewLogObserver(logger))
		}
		opts = append(opts, app.WithSummarizer(intelligence.NewSummarizer(llm.NewOllamaClient(cfg.LLM, observers))))
	}

	if cfg.Backup.Enabled() {
		opts = append(opts, app.WithBackups(backup.NewWriter(backup.OpenOnFirstPut(cfg.Backup), logger)))
	}

	a := &cli.App{
		App:     app.New(store, c, opts...),
		Metrics: m.Handler(),
		Addr:    cfg.Addr,
	}
	a.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(a).ExecuteContext(ctx)
}
