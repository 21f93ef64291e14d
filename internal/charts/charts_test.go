package charts

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"spendsight/internal/analysis"
	"spendsight/internal/core"
)

func fixtureResults(t *testing.T) analysis.Results {
	t.Helper()
	day := func(y int, m time.Month, d int, cat string, cents int64) core.Transaction {
		return core.Transaction{
			Date:     time.Date(y, m, d, 10, 0, 0, 0, time.UTC),
			Category: cat,
			Amount:   core.Money{Cents: cents},
		}
	}
	l := core.Ledger{
		day(2023, time.December, 5, "Coffee", 280),
		day(2024, time.January, 1, "Coffee", 300),
		day(2024, time.January, 2, "Taxi", 1200),
		day(2024, time.February, 10, "Restaurant", 4500),
		day(2024, time.February, 11, "Coffee", 350),
	}
	return analysis.Run(context.Background(), l, analysis.DefaultOptions())
}

func TestRenderAllWritesEveryView(t *testing.T) {
	dir := t.TempDir()
	c := NewRenderer(dir, nil)

	if err := c.RenderAll(context.Background(), fixtureResults(t), 3); err != nil {
		t.Fatalf("RenderAll: %v", err)
	}

	for _, v := range c.views() {
		path := filepath.Join(dir, v.file)
		info, err := os.Stat(path)
		if err != nil {
			t.Errorf("%s not written: %v", v.file, err)
			continue
		}
		if info.Size() == 0 {
			t.Errorf("%s is empty", v.file)
		}
	}
}

func TestRenderAllEmptyResultsSkipsEverything(t *testing.T) {
	dir := t.TempDir()
	c := NewRenderer(dir, nil)

	if err := c.RenderAll(context.Background(), analysis.Results{}, 2); err != nil {
		t.Fatalf("RenderAll on empty results: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("empty results should render nothing, found %d files", len(entries))
	}
}

func TestRenderAllCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewRenderer(t.TempDir(), nil)
	if err := c.RenderAll(ctx, fixtureResults(t), 2); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}
