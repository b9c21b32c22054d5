// Package config carries the process configuration as an explicit value
// object. Components receive a Config (or the fields they need) through
// their constructors instead of reading the environment ad hoc.
package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Defaults applied when the environment leaves a knob unset.
const (
	DefaultSheetRange  = "testcase!A1:E100"
	DefaultHistoryPath = "history/test_history.json"
	DefaultCredentials = "credentials.json"
	DefaultListenAddr  = ":5000"
)

// Config is the full process configuration.
type Config struct {
	// Case source: a spreadsheet id (or full sheets URL) plus an A1 range,
	// or a local cases file overriding the sheet entirely
	SheetID         string
	SheetRange      string
	CredentialsFile string
	CasesFile       string

	// Local history store
	HistoryPath string

	// Remote artifact repository (GitHub Actions)
	GitHubOwner      string
	GitHubRepo       string
	GitHubToken      string
	GitHubActionsURL string

	// Dashboard server
	ListenAddr string
}

// FromEnv loads configuration from the process environment, after merging
// an optional .env file (existing variables win over the file).
func FromEnv() Config {
	// Missing .env is fine, it is a local-development convenience
	_ = godotenv.Load()

	return Config{
		SheetID:          getenv("SHEET_ID", ""),
		SheetRange:       getenv("SHEET_RANGE", DefaultSheetRange),
		CredentialsFile:  getenv("GOOGLE_CREDENTIALS", DefaultCredentials),
		CasesFile:        getenv("CASES_FILE", ""),
		HistoryPath:      getenv("HISTORY_PATH", DefaultHistoryPath),
		GitHubOwner:      getenv("GITHUB_OWNER", ""),
		GitHubRepo:       getenv("GITHUB_REPO", ""),
		GitHubToken:      getenv("GITHUB_TOKEN", ""),
		GitHubActionsURL: getenv("GITHUB_ACTIONS_URL", ""),
		ListenAddr:       getenv("LISTEN_ADDR", DefaultListenAddr),
	}
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
