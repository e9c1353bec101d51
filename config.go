package main

import (
	"os"
	"strings"
	"time"
)

const defaultAPIBase = "http://localhost:8000"

// Config holds the settings shared by the API client and the page sessions.
type Config struct {
	APIBase      string
	PollInterval time.Duration
}

// DefaultConfig reads the environment once. API_BASE points at the sheSafe
// backend; everything else has a fixed default.
func DefaultConfig() Config {
	base := os.Getenv("API_BASE")
	if base == "" {
		base = defaultAPIBase
	}
	return Config{
		APIBase:      strings.TrimRight(base, "/"),
		PollInterval: 3 * time.Second,
	}
}
