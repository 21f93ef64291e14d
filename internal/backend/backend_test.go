package backend

import (
	"context"
	"path/filepath"
	"testing"

	"spendsight/internal/config"
)

func TestSourceTypeIsValid(t *testing.T) {
	for _, valid := range []SourceType{CSVSource, SQLiteSource, SheetsSource} {
		if !valid.IsValid() {
			t.Errorf("%s should be valid", valid)
		}
	}
	for _, invalid := range []SourceType{"", "postgres", "CSV"} {
		if invalid.IsValid() {
			t.Errorf("%q should be invalid", invalid)
		}
	}
}

func TestCreateSourceCSV(t *testing.T) {
	f := NewFactory(nil)
	res, err := f.CreateSource(context.Background(), &config.Config{
		LedgerSource: "csv",
		CSVPath:      "./budget.csv",
	})
	if err != nil {
		t.Fatalf("CreateSource: %v", err)
	}
	if res.Source == nil {
		t.Fatal("source should not be nil")
	}
	if err := res.Cleanup(); err != nil {
		t.Errorf("Cleanup: %v", err)
	}
}

func TestCreateSourceSQLite(t *testing.T) {
	f := NewFactory(nil)
	res, err := f.CreateSource(context.Background(), &config.Config{
		LedgerSource: "sqlite",
		SQLiteDBPath: filepath.Join(t.TempDir(), "ledger.db"),
	})
	if err != nil {
		t.Fatalf("CreateSource: %v", err)
	}
	defer res.Cleanup()

	l, err := res.Source.Load(context.Background())
	if err != nil {
		t.Fatalf("Load from fresh store: %v", err)
	}
	if len(l) != 0 {
		t.Errorf("fresh store should be empty, got %d", len(l))
	}
}

func TestCreateSourceInvalid(t *testing.T) {
	f := NewFactory(nil)
	if _, err := f.CreateSource(context.Background(), &config.Config{LedgerSource: "postgres"}); err == nil {
		t.Fatal("expected error for unknown source")
	}
}
