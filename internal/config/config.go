package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	// Ledger source
	LedgerSource string // csv, sqlite or sheets
	CSVPath      string
	SQLiteDBPath string

	// Google Sheets source
	GoogleSpreadsheetID string
	GoogleSheetName     string

	// Output
	OutputDir     string
	ChartsDir     string
	CurrencyLabel string

	// Aggregation
	TopTransactions int

	// Chart rendering
	ChartWorkers int

	// Optional run-completed notification
	AMQPURL      string
	AMQPExchange string

	// Logging
	LogLevel string
}

func Load() *Config {
	return &Config{
		LedgerSource: getEnv("LEDGER_SOURCE", "csv"),
		CSVPath:      getEnv("CSV_PATH", "./budget.csv"),
		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/ledger.db"),

		GoogleSpreadsheetID: getEnv("GOOGLE_SPREADSHEET_ID", ""),
		GoogleSheetName:     getEnv("GOOGLE_SHEET_NAME", "Transactions"),

		OutputDir:     getEnv("OUTPUT_DIR", "."),
		ChartsDir:     getEnv("CHARTS_DIR", "./charts"),
		CurrencyLabel: getEnv("CURRENCY_LABEL", "AZN (Manat)"),

		TopTransactions: getEnvInt("TOP_TRANSACTIONS", 15),
		ChartWorkers:    getEnvInt("CHART_WORKERS", 4),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "spendsight"),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	validSources := []string{"csv", "sqlite", "sheets"}
	isValidSource := false
	for _, s := range validSources {
		if c.LedgerSource == s {
			isValidSource = true
			break
		}
	}
	if !isValidSource {
		errors = append(errors, fmt.Sprintf("invalid ledger source '%s': must be one of %v", c.LedgerSource, validSources))
	}

	switch c.LedgerSource {
	case "csv":
		if c.CSVPath == "" {
			errors = append(errors, "CSV path cannot be empty when using csv source")
		}
	case "sqlite":
		if c.SQLiteDBPath == "" {
			errors = append(errors, "SQLite database path cannot be empty when using sqlite source")
		}
	case "sheets":
		if c.GoogleSpreadsheetID == "" {
			errors = append(errors, "Google Spreadsheet ID is required when using sheets source")
		}
		if c.GoogleSheetName == "" {
			errors = append(errors, "Google Sheet name is required when using sheets source")
		}
	}

	if c.TopTransactions < 1 {
		errors = append(errors, fmt.Sprintf("invalid top transactions count %d: must be positive", c.TopTransactions))
	}
	if c.ChartWorkers < 1 {
		errors = append(errors, fmt.Sprintf("invalid chart workers count %d: must be positive", c.ChartWorkers))
	}
	if c.OutputDir == "" {
		errors = append(errors, "output directory cannot be empty")
	}
	if c.ChartsDir == "" {
		errors = append(errors, "charts directory cannot be empty")
	}

	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
	}

	validLevels := []string{"debug", "info", "warn", "error"}
	isValidLevel := false
	for _, lvl := range validLevels {
		if strings.ToLower(c.LogLevel) == lvl {
			isValidLevel = true
			break
		}
	}
	if !isValidLevel {
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of %v", c.LogLevel, validLevels))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errors, "\n  - "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
