// Package display renders terminal output: ANSI styling helpers and an
// aligned table for the daily timetable.
//
// Colors respect the NO_COLOR convention (https://no-color.org/) and are
// disabled automatically when stdout is piped or redirected.
package display

import (
	"fmt"
	"os"
)

// ANSI escape codes for styling.
const (
	reset  = "\033[0m"
	bold   = "\033[1m"
	dim    = "\033[2m"
	green  = "\033[32m"
	yellow = "\033[33m"
)

// enabled reports whether color output is active. Set once at init time.
var enabled bool

func init() {
	enabled = shouldEnable()
}

// shouldEnable determines whether to use color output.
func shouldEnable() bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	// FORCE_COLOR wins over terminal detection. Used in tests.
	if _, ok := os.LookupEnv("FORCE_COLOR"); ok {
		return true
	}
	return isTerminal(os.Stdout)
}

// isTerminal reports whether f is connected to a terminal, by checking
// for a character device.
func isTerminal(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}

// SetEnabled overrides the auto-detected color state.
func SetEnabled(b bool) {
	enabled = b
}

func style(code, s string) string {
	if !enabled {
		return s
	}
	return fmt.Sprintf("%s%s%s", code, s, reset)
}

// Bold renders s in bold.
func Bold(s string) string { return style(bold, s) }

// Dim renders s dimmed, used for events that have already passed.
func Dim(s string) string { return style(dim, s) }

// Accent renders s in the accent color, used for the next prayer.
func Accent(s string) string { return style(green, s) }

// Warn renders s in the warning color.
func Warn(s string) string { return style(yellow, s) }
