package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/oeg-upm/metacheck/schema"
)

// Color variables for console output.
var (
	PitfallColor = color.New(color.FgRed, color.Bold) // definite defect
	WarningColor = color.New(color.FgYellow)          // advisory signal
	CleanColor   = color.New(color.FgCyan)            // nothing triggered
)

// GetPlainLabel returns a plain text label for a check's severity class.
// This is the core logic used for CSV, JSON, and table printing.
func GetPlainLabel(severity schema.Severity) string {
	if severity == schema.PitfallSeverity {
		return "Pitfall"
	}
	return "Warning"
}

// GetColorLabel returns a colored severity label for console tables. A zero
// trigger count renders in the clean color regardless of severity.
func GetColorLabel(severity schema.Severity, countTriggered int) string {
	text := GetPlainLabel(severity)
	if countTriggered == 0 {
		return CleanColor.Sprint(text)
	}
	if severity == schema.PitfallSeverity {
		return PitfallColor.Sprint(text)
	}
	return WarningColor.Sprint(text)
}

// SelectOutputFile returns the appropriate file handle for output based on
// the provided file path. An empty path selects os.Stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetCacheDBFilePath returns the path to the SQLite DB file for probe cache storage.
func GetCacheDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".metacheck_cache.db"
	}
	return filepath.Join(homeDir, ".metacheck_cache.db")
}

// GetResultsDBFilePath returns the path to the SQLite DB file for results storage.
func GetResultsDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".metacheck_results.db"
	}
	return filepath.Join(homeDir, ".metacheck_results.db")
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
