//go:build basic

package integration

import (
	"bytes"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMetacheckAnalyzeOffline runs the full CLI against sample records with
// network probes disabled and SQLite storage in a throwaway location.
func TestMetacheckAnalyzeOffline(t *testing.T) {
	recordDir := writeSampleRecords(t)
	dbDir := t.TempDir()
	cacheDB := filepath.Join(dbDir, "cache.db")
	resultsDB := filepath.Join(dbDir, "results.db")

	baseArgs := []string{
		"--cache-backend", "sqlite",
		"--cache-db-connect", cacheDB,
		"--results-backend", "sqlite",
		"--results-db-connect", resultsDB,
	}

	t.Run("analyze with json summary", func(t *testing.T) {
		summaryFile := filepath.Join(dbDir, "summary.json")
		args := append([]string{"analyze", recordDir, "--skip-probes", "--output", "json", "--summary-file", summaryFile}, baseArgs...)
		require.NoError(t, runMetacheckCommand(t, args...))

		out, err := os.ReadFile(summaryFile)
		require.NoError(t, err)

		var report struct {
			TotalRepos int `json:"total_repos"`
			Aggregate  []struct {
				CheckID        string `json:"check_id"`
				CountTriggered int    `json:"count_triggered"`
			} `json:"aggregate"`
		}
		require.NoError(t, json.Unmarshal(out, &report))
		assert.Equal(t, 2, report.TotalRepos)
		assert.Len(t, report.Aggregate, 28, "Every catalog check appears in the aggregate")
	})

	t.Run("checks listing", func(t *testing.T) {
		metacheckPath := getMetacheckBinary()
		cmd := exec.Command(metacheckPath, "checks")
		var stdout bytes.Buffer
		cmd.Stdout = &stdout
		require.NoError(t, cmd.Run())
		assert.Contains(t, stdout.String(), "28 checks in catalog")
	})

	t.Run("cache status", func(t *testing.T) {
		args := append([]string{"cache", "status"}, baseArgs...)
		require.NoError(t, runMetacheckCommand(t, args...))
	})

	t.Run("results status", func(t *testing.T) {
		args := append([]string{"results", "status"}, baseArgs...)
		require.NoError(t, runMetacheckCommand(t, args...))
	})

	t.Run("results export", func(t *testing.T) {
		exportFile := filepath.Join(dbDir, "findings.parquet")
		args := append([]string{"results", "export", "--output-file", exportFile}, baseArgs...)
		require.NoError(t, runMetacheckCommand(t, args...))
	})

	t.Run("cache clear", func(t *testing.T) {
		args := append([]string{"cache", "clear"}, baseArgs...)
		require.NoError(t, runMetacheckCommand(t, args...))
	})

	t.Run("results clear", func(t *testing.T) {
		args := append([]string{"results", "clear"}, baseArgs...)
		require.NoError(t, runMetacheckCommand(t, args...))
	})
}

// TestMetacheckVersion verifies the version command runs cleanly.
func TestMetacheckVersion(t *testing.T) {
	metacheckPath := getMetacheckBinary()
	cmd := exec.Command(metacheckPath, "version")
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	require.NoError(t, cmd.Run())
	assert.Contains(t, stdout.String(), "metacheck CLI")
}
