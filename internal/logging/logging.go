// Package logging configures the process-wide structured logger shared by
// every component (SPEC_FULL.md §2 C13), built on hclog the way the
// teacher's plugin layer does (internal/modules/pluginmodule/*.go).
package logging

import (
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
)

// New builds the root logger for the process. level is one of
// debug/info/warn/error (default info for an unrecognised value); json
// toggles structured JSON output for log aggregators.
func New(name, level string, json bool) hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{
		Name:       name,
		Level:      levelFromString(level),
		Output:     os.Stderr,
		JSONFormat: json,
	})
}

func levelFromString(level string) hclog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return hclog.Debug
	case "warn", "warning":
		return hclog.Warn
	case "error":
		return hclog.Error
	default:
		return hclog.Info
	}
}
