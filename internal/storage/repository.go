// Package storage is the SQLite-backed ledger store. The database file is
// an input artifact like the CSV: the ingest command fills it once and
// analysis runs read it; nothing is written during analysis.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"spendsight/internal/core"
	"spendsight/internal/ledger"

	_ "modernc.org/sqlite"
)

type SQLiteRepository struct {
	db *sql.DB
}

var _ ledger.Source = (*SQLiteRepository)(nil)

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Load implements ledger.Source.
func (r *SQLiteRepository) Load(ctx context.Context) (core.Ledger, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT occurred_at, category, amount_cents FROM transactions ORDER BY id`)
	if err != nil {
		return nil, &ledger.LoadError{Source: "sqlite", Err: err}
	}
	defer rows.Close()

	var l core.Ledger
	for rows.Next() {
		var occurredAt, category string
		var cents int64
		if err := rows.Scan(&occurredAt, &category, &cents); err != nil {
			return nil, &ledger.LoadError{Source: "sqlite", Err: err}
		}
		date, err := time.Parse(time.RFC3339, occurredAt)
		if err != nil {
			return nil, &ledger.LoadError{Source: "sqlite", Err: fmt.Errorf("row %d: %w", len(l)+1, err)}
		}
		t := core.Transaction{Date: date, Category: category, Amount: core.Money{Cents: cents}}
		if err := t.Validate(); err != nil {
			return nil, &ledger.LoadError{Source: "sqlite", Err: fmt.Errorf("row %d: %w", len(l)+1, err)}
		}
		l = append(l, t)
	}
	if err := rows.Err(); err != nil {
		return nil, &ledger.LoadError{Source: "sqlite", Err: err}
	}

	slog.InfoContext(ctx, "Loaded ledger from SQLite", "transactions", len(l))
	return l, nil
}

// Import bulk-inserts a parsed ledger inside one transaction and returns
// the number of rows written.
func (r *SQLiteRepository) Import(ctx context.Context, l core.Ledger) (int, error) {
	if err := l.Validate(); err != nil {
		return 0, fmt.Errorf("validate ledger: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO transactions (occurred_at, category, amount_cents) VALUES (?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, t := range l {
		if _, err := stmt.ExecContext(ctx, t.Date.Format(time.RFC3339), t.Category, t.Amount.Cents); err != nil {
			return 0, fmt.Errorf("insert transaction %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit import: %w", err)
	}

	slog.InfoContext(ctx, "Imported ledger into SQLite", "transactions", len(l))
	return len(l), nil
}
