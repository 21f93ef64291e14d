// Package backend selects and constructs the configured ledger source.
package backend

import (
	"context"
	"fmt"
	"log/slog"

	"spendsight/internal/config"
	"spendsight/internal/ledger"
	"spendsight/internal/ledger/csvfile"
	"spendsight/internal/ledger/sheets"
	"spendsight/internal/storage"
)

// SourceType identifies a ledger source implementation.
type SourceType string

const (
	CSVSource    SourceType = "csv"
	SQLiteSource SourceType = "sqlite"
	SheetsSource SourceType = "sheets"
)

func (t SourceType) IsValid() bool {
	switch t {
	case CSVSource, SQLiteSource, SheetsSource:
		return true
	}
	return false
}

// Result bundles a constructed source with its cleanup function.
type Result struct {
	Source  ledger.Source
	Cleanup func() error
}

// Factory builds ledger sources from configuration.
type Factory struct {
	logger *slog.Logger
}

func NewFactory(logger *slog.Logger) *Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &Factory{logger: logger}
}

// CreateSource constructs the source named by cfg.LedgerSource.
func (f *Factory) CreateSource(ctx context.Context, cfg *config.Config) (*Result, error) {
	t := SourceType(cfg.LedgerSource)
	if !t.IsValid() {
		return nil, fmt.Errorf("invalid ledger source: %s", cfg.LedgerSource)
	}

	switch t {
	case SQLiteSource:
		repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize SQLite repository: %w", err)
		}
		f.logger.Info("Initialized SQLite ledger source", "db_path", cfg.SQLiteDBPath)
		return &Result{Source: repo, Cleanup: repo.Close}, nil

	case SheetsSource:
		src, err := sheets.New(ctx, cfg.GoogleSpreadsheetID, cfg.GoogleSheetName)
		if err != nil {
			return nil, fmt.Errorf("initialize Sheets ledger source: %w", err)
		}
		f.logger.Info("Initialized Google Sheets ledger source",
			"spreadsheet_id", cfg.GoogleSpreadsheetID,
			"sheet", cfg.GoogleSheetName)
		return &Result{Source: src, Cleanup: func() error { return nil }}, nil

	default:
		f.logger.Info("Initialized CSV ledger source", "path", cfg.CSVPath)
		return &Result{Source: csvfile.New(cfg.CSVPath), Cleanup: func() error { return nil }}, nil
	}
}
