// Package config loads estimate settings from environment variables.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/alexanderramin/estimate/internal/domain"
)

// Config holds all runtime settings.
type Config struct {
	DBPath       string
	History      bool
	LogUseCases  bool
	Locale       string
	HTMLLang     string
	ChromeBin    string
	PDFTimeoutMs int
	BatchJobs    int
}

// Default returns a Config with sensible defaults. DBPath is left empty and
// resolved against the home directory by Load.
func Default() Config {
	return Config{
		History:      true,
		LogUseCases:  false,
		Locale:       "de",
		HTMLLang:     "de",
		PDFTimeoutMs: 30000,
		BatchJobs:    4,
	}
}

// Load reads configuration from environment variables, falling back to
// defaults for any unset or invalid values.
func Load() Config {
	cfg := Default()

	cfg.DBPath = os.Getenv("ESTIMATE_DB")
	if cfg.DBPath == "" {
		if home, err := os.UserHomeDir(); err == nil {
			cfg.DBPath = filepath.Join(home, ".estimate", "history.db")
		}
	}
	if v := os.Getenv("ESTIMATE_HISTORY"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.History = b
		}
	}
	if v := os.Getenv("ESTIMATE_LOG"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.LogUseCases = b
		}
	}
	if v := os.Getenv("ESTIMATE_LOCALE"); v != "" {
		if _, ok := domain.NumberFormatFor(v); ok {
			cfg.Locale = v
		}
	}
	if v := os.Getenv("ESTIMATE_HTML_LANG"); v != "" {
		cfg.HTMLLang = v
	}
	cfg.ChromeBin = os.Getenv("ESTIMATE_CHROME_BIN")
	if v := os.Getenv("ESTIMATE_PDF_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.PDFTimeoutMs = n
		}
	}
	if v := os.Getenv("ESTIMATE_BATCH_JOBS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.BatchJobs = n
		}
	}

	return cfg
}

// NumberFormat returns the display format for the configured locale.
func (c Config) NumberFormat() domain.NumberFormat {
	if f, ok := domain.NumberFormatFor(c.Locale); ok {
		return f
	}
	return domain.GermanFormat
}

// PDFTimeout returns the PDF rendering deadline.
func (c Config) PDFTimeout() time.Duration {
	return time.Duration(c.PDFTimeoutMs) * time.Millisecond
}

// HistoryEnabled reports whether runs should be recorded.
func (c Config) HistoryEnabled() bool {
	return c.History && c.DBPath != ""
}
