// Package ledger defines the inbound port for transaction sources and the
// shared load-time failure type.
package ledger

import (
	"context"
	"fmt"
	"time"

	"spendsight/internal/core"
)

// Source loads the full transaction ledger for one run. Implementations
// must validate every transaction; a single invalid row fails the load.
type Source interface {
	Load(ctx context.Context) (core.Ledger, error)
}

// LoadError is a fatal ledger load failure. Every aggregation assumes a
// valid ledger, so the run aborts before any aggregation executes.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load ledger from %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// dateFormats are tried in order when parsing transaction timestamps.
var dateFormats = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDate parses a transaction timestamp in any accepted source format.
func ParseDate(s string) (time.Time, error) {
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", s)
}
