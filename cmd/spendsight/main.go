package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"spendsight/internal/backend"
	"spendsight/internal/config"
	applog "spendsight/internal/log"
	"spendsight/internal/notify"
	"spendsight/internal/runner"
)

func main() {
	// Load .env file if present (ignore errors for production)
	_ = godotenv.Load()

	cfg := config.Load()

	logger := applog.New(applog.Config{
		Level:     parseLogLevel(cfg.LogLevel),
		Component: applog.ComponentApp,
	})
	applog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", applog.FieldError, err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	factory := backend.NewFactory(logger.Logger)
	res, err := factory.CreateSource(ctx, cfg)
	if err != nil {
		logger.Error("Failed to initialize ledger source",
			applog.FieldSource, cfg.LedgerSource,
			applog.FieldError, err)
		os.Exit(1)
	}
	defer func() {
		if err := res.Cleanup(); err != nil {
			logger.Warn("Ledger source cleanup failed", applog.FieldError, err)
		}
	}()

	var notifier runner.Notifier
	if cfg.AMQPURL != "" {
		client, err := notify.NewClient(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			// The report still gets produced without a broker.
			logger.Warn("AMQP unavailable, continuing without notifications",
				applog.FieldExchange, cfg.AMQPExchange,
				applog.FieldError, err)
		} else {
			defer client.Close()
			notifier = client
		}
	}

	r := runner.New(cfg, res.Source, notifier, logger)
	summary, err := r.Run(ctx)
	if err != nil {
		logger.Error("Analysis run failed", applog.FieldError, err)
		os.Exit(1)
	}

	logger.Info("Insights ready",
		applog.FieldRunID, summary.RunID,
		applog.FieldTransactions, summary.Transactions,
		applog.FieldPath, summary.ReportPath,
		"charts_dir", summary.ChartsDir)
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
