package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"spendsight/internal/core"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "ledger.db"))
	if err != nil {
		t.Fatalf("NewSQLiteRepository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestImportAndLoadRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	in := core.Ledger{
		{Date: time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC), Category: "Coffee", Amount: core.Money{Cents: 300}},
		{Date: time.Date(2024, 1, 2, 12, 0, 0, 0, time.UTC), Category: "Taxi", Amount: core.Money{Cents: 1200}},
	}

	n, err := repo.Import(ctx, in)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if n != 2 {
		t.Fatalf("imported %d rows, want 2", n)
	}

	out, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("loaded %d transactions, want 2", len(out))
	}
	// Insertion order preserved.
	if out[0].Category != "Coffee" || out[1].Category != "Taxi" {
		t.Errorf("order = %s, %s", out[0].Category, out[1].Category)
	}
	if !out[0].Date.Equal(in[0].Date) || out[0].Amount.Cents != 300 {
		t.Errorf("first transaction = %+v", out[0])
	}
}

func TestImportRejectsInvalidLedger(t *testing.T) {
	repo := newTestRepo(t)

	bad := core.Ledger{{Date: time.Time{}, Category: "X", Amount: core.Money{Cents: 1}}}
	if _, err := repo.Import(context.Background(), bad); err == nil {
		t.Fatal("expected validation error")
	}

	// Nothing must have been written.
	out, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("store should be empty, got %d rows", len(out))
	}
}

func TestLoadEmptyStore(t *testing.T) {
	repo := newTestRepo(t)
	out, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("got %d transactions, want 0", len(out))
	}
}
