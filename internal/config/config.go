// Package config provides runtime configuration values for the service.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds configuration knobs for the HTTP server and the spreadsheet
// backend.
type Config struct {
	HTTPAddr        string
	ShutdownTimeout time.Duration

	// SpreadsheetID identifies the Google spreadsheet holding the Orders,
	// Users and Mutex sheets.
	SpreadsheetID string
	// ClientEmail and PrivateKey are the service account credentials used
	// to authenticate against the Sheets API.
	ClientEmail string
	PrivateKey  string

	// LockRetryInterval is the pause between attempts to acquire the
	// spreadsheet lock; LockWaitBudget caps the total wall-clock time spent
	// acquiring it.
	LockRetryInterval time.Duration
	LockWaitBudget    time.Duration
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoienv(key string, def int) int {
	v := getenv(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func durenvms(key string, defMs int) time.Duration {
	ms := atoienv(key, defMs)
	return time.Duration(ms) * time.Millisecond
}

func durenvs(key string, defSec int) time.Duration {
	sec := atoienv(key, defSec)
	return time.Duration(sec) * time.Second
}

// Load collects configuration from environment with defaults.
func Load() Config {
	return Config{
		HTTPAddr:          getenv("HTTP_ADDR", ":8080"),
		ShutdownTimeout:   durenvs("SHUTDOWN_TIMEOUT", 15),
		SpreadsheetID:     getenv("GOOGLE_SPREADSHEET_ID", ""),
		ClientEmail:       getenv("GOOGLE_CLIENT_EMAIL", ""),
		PrivateKey:        getenv("GOOGLE_CLIENT_PRIVATE_KEY", ""),
		LockRetryInterval: durenvms("LOCK_RETRY_INTERVAL_MS", 500),
		LockWaitBudget:    durenvms("LOCK_WAIT_BUDGET_MS", 2500),
	}
}
