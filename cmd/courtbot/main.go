package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alejandrodnm/courtbot/config"
	"github.com/alejandrodnm/courtbot/internal/adapters/notify"
	"github.com/alejandrodnm/courtbot/internal/adapters/storage"
	"github.com/alejandrodnm/courtbot/internal/adapters/venue"
	"github.com/alejandrodnm/courtbot/internal/application/strategy"
	"github.com/alejandrodnm/courtbot/internal/domain"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config file")
	verbose := flag.Bool("verbose", false, "set log level to debug")
	logFormat := flag.String("format", "", "log format: text|json (overrides config)")
	noJournal := flag.Bool("no-journal", false, "disable the SQLite trade journal")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			slog.Error("failed to load config", "err", err, "path", *configPath)
			os.Exit(1)
		}
		cfg = config.Default()
	}

	if *verbose {
		cfg.Log.Level = "debug"
	}
	if *logFormat != "" {
		cfg.Log.Format = *logFormat
	}
	setupLogger(cfg.Log)

	slog.Info("courtbot starting",
		"config", *configPath,
		"edge_threshold", cfg.Strategy.EdgeThreshold,
		"cooldown", cfg.Cooldown(),
		"journal", !*noJournal,
	)

	var journal *storage.Journal
	if !*noJournal {
		journal, err = storage.NewJournal(cfg.Storage.DSN)
		if err != nil {
			slog.Error("failed to open journal", "err", err, "dsn", cfg.Storage.DSN)
			os.Exit(1)
		}
		defer journal.Close()
	}

	notifier := notify.NewConsole()
	paper := venue.NewPaper(domain.InitialCapital)

	engineCfg := strategy.Config{
		Ticker: domain.TickerTeamA,
		Limits: domain.Limits{
			MaxContracts: cfg.Risk.MaxContracts,
			MaxExposure:  cfg.Risk.MaxExposure,
			MinCapital:   cfg.Risk.MinCapital,
			Tick:         cfg.Risk.Tick,
			PriceFloor:   cfg.Risk.PriceFloor,
			PriceCeil:    cfg.Risk.PriceCeil,
		},
		EdgeThreshold: cfg.Strategy.EdgeThreshold,
		Cooldown:      cfg.Cooldown(),
		UnwindSeconds: cfg.Strategy.UnwindSeconds,
	}

	var eng *strategy.Engine
	if journal != nil {
		eng = strategy.New(engineCfg, paper, journal, notifier)
	} else {
		eng = strategy.New(engineCfg, paper, nil, notifier)
	}
	paper.Bind(eng)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	runPaperSession(ctx, eng, paper)

	slog.Info("courtbot stopped cleanly")
}

func setupLogger(cfg config.LogConfig) {
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
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}
