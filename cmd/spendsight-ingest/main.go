// Command spendsight-ingest copies a CSV ledger into the SQLite store so
// later runs can use LEDGER_SOURCE=sqlite.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"spendsight/internal/config"
	"spendsight/internal/ledger/csvfile"
	applog "spendsight/internal/log"
	"spendsight/internal/storage"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	csvPath := flag.String("csv", cfg.CSVPath, "CSV file to ingest")
	dbPath := flag.String("db", cfg.SQLiteDBPath, "SQLite database path")
	flag.Parse()

	logger := applog.New(applog.Config{Component: applog.ComponentStorage})
	applog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	l, err := csvfile.New(*csvPath).Load(ctx)
	if err != nil {
		logger.Error("Failed to load CSV ledger",
			applog.FieldPath, *csvPath,
			applog.FieldError, err)
		os.Exit(1)
	}

	repo, err := storage.NewSQLiteRepository(*dbPath)
	if err != nil {
		logger.Error("Failed to open SQLite store",
			applog.FieldPath, *dbPath,
			applog.FieldError, err)
		os.Exit(1)
	}
	defer repo.Close()

	n, err := repo.Import(ctx, l)
	if err != nil {
		logger.Error("Ingest failed",
			applog.FieldOperation, applog.OpIngest,
			applog.FieldError, err)
		os.Exit(1)
	}

	logger.Info("Ingest completed",
		applog.FieldOperation, applog.OpIngest,
		applog.FieldPath, *dbPath,
		applog.FieldTransactions, n)
}
