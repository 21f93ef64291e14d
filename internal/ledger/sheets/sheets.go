// Package sheets loads the transaction ledger from a Google Sheets range.
package sheets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"spendsight/internal/core"
	"spendsight/internal/ledger"
)

// Source reads date/category/amount rows from one sheet. The first row is
// treated as a header when its date cell does not parse.
type Source struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
}

var _ ledger.Source = (*Source)(nil)

// New creates a Sheets-backed ledger source using Service Account
// credentials from GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE
// or GOOGLE_APPLICATION_CREDENTIALS.
func New(ctx context.Context, spreadsheetID, sheetName string) (*Source, error) {
	if strings.TrimSpace(spreadsheetID) == "" {
		return nil, errors.New("missing spreadsheet ID")
	}
	if strings.TrimSpace(sheetName) == "" {
		return nil, errors.New("missing sheet name")
	}

	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &Source{svc: svc, spreadsheetID: spreadsheetID, sheetName: sheetName}, nil
}

func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	serviceAccountJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	serviceAccountFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if serviceAccountJSON == "" && serviceAccountFile == "" {
		serviceAccountFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentialsJSON []byte
	var err error
	switch {
	case serviceAccountJSON != "":
		credentialsJSON = []byte(serviceAccountJSON)
	case serviceAccountFile != "":
		credentialsJSON, err = os.ReadFile(serviceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsReadonlyScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return service, nil
}

func (s *Source) Load(ctx context.Context) (core.Ledger, error) {
	rng := fmt.Sprintf("%s!A:C", s.sheetName)
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, &ledger.LoadError{Source: "sheets", Err: fmt.Errorf("read range %s: %w", rng, err)}
	}

	l, err := parseRows(resp.Values)
	if err != nil {
		return nil, &ledger.LoadError{Source: "sheets", Err: err}
	}

	slog.InfoContext(ctx, "Loaded ledger from Google Sheets",
		"spreadsheet_id", s.spreadsheetID,
		"sheet", s.sheetName,
		"transactions", len(l))
	return l, nil
}

// parseRows converts a values matrix (as returned by the Sheets API) into
// a validated ledger.
func parseRows(values [][]interface{}) (core.Ledger, error) {
	var l core.Ledger
	for i, raw := range values {
		row := toStrings(raw)
		if len(row) < 3 {
			return nil, fmt.Errorf("row %d: want 3 cells, got %d", i+1, len(row))
		}

		date, err := ledger.ParseDate(row[0])
		if err != nil {
			// A non-date first cell on the first row is the header.
			if i == 0 {
				continue
			}
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		amount, err := core.ParseMoney(row[2])
		if err != nil {
			return nil, fmt.Errorf("row %d: amount %q: %w", i+1, row[2], err)
		}

		t := core.Transaction{Date: date, Category: strings.TrimSpace(row[1]), Amount: amount}
		if err := t.Validate(); err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		l = append(l, t)
	}
	return l, nil
}

func toStrings(raw []interface{}) []string {
	out := make([]string, len(raw))
	for i, v := range raw {
		out[i] = strings.TrimSpace(fmt.Sprint(v))
	}
	return out
}
