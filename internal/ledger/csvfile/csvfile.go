// Package csvfile loads the transaction ledger from a local CSV file with
// date, category and amount columns.
package csvfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"spendsight/internal/core"
	"spendsight/internal/ledger"
)

// Source reads a CSV ledger. The file must carry a header naming at least
// the date, category and amount columns; extra columns are ignored.
type Source struct {
	path string
}

var _ ledger.Source = (*Source)(nil)

func New(path string) *Source {
	return &Source{path: path}
}

func (s *Source) Load(ctx context.Context) (core.Ledger, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, &ledger.LoadError{Source: s.path, Err: err}
	}
	defer f.Close()

	l, err := Parse(f)
	if err != nil {
		return nil, &ledger.LoadError{Source: s.path, Err: err}
	}

	slog.InfoContext(ctx, "Loaded ledger from CSV",
		"path", s.path,
		"transactions", len(l))
	return l, nil
}

// Parse reads CSV ledger rows from r. Exposed separately so the ingest
// command can parse without going through a file path.
func Parse(r io.Reader) (core.Ledger, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("missing header row")
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols, err := columnIndexes(header)
	if err != nil {
		return nil, err
	}

	var l core.Ledger
	for row := 2; ; row++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}

		t, err := parseRecord(record, cols)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		l = append(l, t)
	}
	return l, nil
}

type columns struct {
	date, category, amount int
}

func columnIndexes(header []string) (columns, error) {
	cols := columns{date: -1, category: -1, amount: -1}
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "date":
			cols.date = i
		case "category":
			cols.category = i
		case "amount":
			cols.amount = i
		}
	}
	var missing []string
	if cols.date == -1 {
		missing = append(missing, "date")
	}
	if cols.category == -1 {
		missing = append(missing, "category")
	}
	if cols.amount == -1 {
		missing = append(missing, "amount")
	}
	if len(missing) > 0 {
		return cols, fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}
	return cols, nil
}

func parseRecord(record []string, cols columns) (core.Transaction, error) {
	max := cols.date
	if cols.category > max {
		max = cols.category
	}
	if cols.amount > max {
		max = cols.amount
	}
	if len(record) <= max {
		return core.Transaction{}, fmt.Errorf("short record: %d fields", len(record))
	}

	date, err := ledger.ParseDate(strings.TrimSpace(record[cols.date]))
	if err != nil {
		return core.Transaction{}, err
	}
	amount, err := core.ParseMoney(record[cols.amount])
	if err != nil {
		return core.Transaction{}, fmt.Errorf("amount %q: %w", record[cols.amount], err)
	}

	t := core.Transaction{
		Date:     date,
		Category: strings.TrimSpace(record[cols.category]),
		Amount:   amount,
	}
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}
	return t, nil
}
