package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/algajon/autosallon/cascade"
	"github.com/algajon/autosallon/config"
	"github.com/algajon/autosallon/fetch"
	"github.com/algajon/autosallon/money"
	"github.com/algajon/autosallon/record"
	"github.com/algajon/autosallon/scraper"
	"github.com/algajon/autosallon/store"
)

func main() {
	// ── 1. Load configuration ───────────────────────────────────────
	_ = godotenv.Load() // best-effort; env vars win over .env
	cfg := config.Load()

	// ── 2. Initialise structured logging ────────────────────────────
	initLogger(cfg.Log)

	if len(cfg.Harvest.StartURLs) == 0 {
		slog.Error("no start URLs configured, set AUTOSALLON_START_URLS")
		os.Exit(1)
	}
	slog.Info("autosallon starting",
		"startURLs", len(cfg.Harvest.StartURLs),
		"maxPages", cfg.Harvest.MaxPages,
		"rate", cfg.Price.Rate,
	)

	// ── 3. Launch browser ───────────────────────────────────────────
	browser, err := scraper.NewBrowser(cfg.Browser)
	if err != nil {
		slog.Error("failed to launch browser", "error", err)
		os.Exit(1)
	}
	defer browser.Close()

	// ── 4. Open sinks ───────────────────────────────────────────────
	var sinks store.Multi
	if cfg.Output.CSVPath != "" {
		csvSink, err := store.OpenCSVFile(cfg.Output.CSVPath)
		if err != nil {
			slog.Error("failed to open csv sink", "path", cfg.Output.CSVPath, "error", err)
			os.Exit(1)
		}
		sinks = append(sinks, csvSink)
	}
	if cfg.Output.MySQLDSN != "" {
		dbSink, err := store.NewMySQLSink(cfg.Output.MySQLDSN, cfg.Output.MySQLTable)
		if err != nil {
			slog.Error("failed to open mysql sink", "error", err)
			os.Exit(1)
		}
		sinks = append(sinks, dbSink)
	}
	if len(sinks) == 0 {
		slog.Error("no output sinks configured")
		os.Exit(1)
	}
	defer func() {
		if err := sinks.Close(); err != nil {
			slog.Error("closing sinks", "error", err)
		}
	}()

	// ── 5. Wire the pipeline ────────────────────────────────────────
	ctrl := cascade.New(cascade.Config{
		MaxRetries:  cfg.Harvest.MaxRetries,
		BackoffBase: cfg.Harvest.BackoffBase,
		MaxListings: cfg.Harvest.MaxListings,
	}, slog.Default())

	merger := record.New(record.Config{
		Rate: cfg.Price.Rate,
		Band: money.Band{Min: cfg.Price.BandMin, Max: cfg.Price.BandMax},
	}, nil)

	fetcher := fetch.New(cfg.Browser.DefaultProxy)

	runner := scraper.NewRunner(cfg.Harvest, browser, fetcher, ctrl, merger, sinks, slog.Default())

	// ── 6. Run until done or signalled ──────────────────────────────
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	written, err := runner.Run(ctx)
	if err != nil && ctx.Err() == nil {
		slog.Error("run failed", "written", written, "error", err)
		os.Exit(1)
	}
	slog.Info("autosallon stopped", "written", written)
}

// initLogger configures slog based on the log config.
func initLogger(cfg config.Log) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	slog.SetDefault(slog.New(handler))
}
