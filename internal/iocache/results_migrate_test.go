package iocache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oeg-upm/metacheck/schema"
)

func TestMigrateResults_NoneBackend(t *testing.T) {
	err := MigrateResults(schema.NoneBackend, "", -1)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "migrations are not supported for NoneBackend")
}

func TestMigrateResults_SQLite(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test_migration.db")

	// Migrate to latest
	err := MigrateResults(schema.SQLiteBackend, dbPath, -1)
	require.NoError(t, err)

	_, err = os.Stat(dbPath)
	assert.NoError(t, err)

	// Re-running is a no-op
	err = MigrateResults(schema.SQLiteBackend, dbPath, -1)
	assert.NoError(t, err)

	// Pin to version 1
	err = MigrateResults(schema.SQLiteBackend, dbPath, 1)
	assert.NoError(t, err)

	// Roll everything back
	err = MigrateResults(schema.SQLiteBackend, dbPath, 0)
	assert.NoError(t, err)

	// And back up again
	err = MigrateResults(schema.SQLiteBackend, dbPath, 1)
	assert.NoError(t, err)
}

func TestMigrateResults_SQLiteInMemory(t *testing.T) {
	err := MigrateResults(schema.SQLiteBackend, ":memory:", -1)
	require.NoError(t, err)
}
