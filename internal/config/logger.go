package config

import (
	"os"
	"path/filepath"

	charmlog "github.com/charmbracelet/log"
)

// AutoLogger is the logger wired into every vt.Terminal when repeated-crash
// detection (HasRepeatedCrashes) has auto-enabled verbose logging. It
// satisfies vt.Logger's Warnf method structurally, so this package never
// needs to import internal/vt.
type AutoLogger struct {
	enabled bool
	log     *charmlog.Logger
}

// NewAutoLogger opens ~/.vtterm.log in append mode and returns a logger
// that writes to it only when enabled is true. A disabled logger's Warnf is
// a no-op, so health.LoggingAuto fully controls whether anything reaches
// disk — callers can construct one unconditionally.
func NewAutoLogger(enabled bool) *AutoLogger {
	a := &AutoLogger{enabled: enabled}
	if !enabled {
		return a
	}
	home, err := os.UserHomeDir()
	if err != nil {
		a.enabled = false
		return a
	}
	f, err := os.OpenFile(filepath.Join(home, ".vtterm.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		a.enabled = false
		return a
	}
	a.log = charmlog.NewWithOptions(f, charmlog.Options{
		Prefix:          "vtterm",
		ReportTimestamp: true,
	})
	return a
}

// Warnf implements vt.Logger.
func (a *AutoLogger) Warnf(format string, args ...interface{}) {
	if !a.enabled || a.log == nil {
		return
	}
	a.log.Warnf(format, args...)
}
