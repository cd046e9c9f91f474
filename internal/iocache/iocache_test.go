package iocache

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oeg-upm/metacheck/internal/contract"
	"github.com/oeg-upm/metacheck/schema"
)

func TestInitStores(t *testing.T) {
	t.Run("single setup", func(t *testing.T) {
		initOnce = sync.Once{}  // Reset for test
		closeOnce = sync.Once{} // Reset for test

		err := InitStores(schema.SQLiteBackend, ":memory:", schema.SQLiteBackend, ":memory:")
		assert.NoError(t, err, "Failed to initialize stores")

		assert.NotNil(t, Manager.GetCacheStore(), "Cache store should not be nil")
		assert.NotNil(t, Manager.GetResultsStore(), "Results store should not be nil")

		CloseStores()
	})

	t.Run("idempotent setup and close", func(t *testing.T) {
		initOnce = sync.Once{}
		closeOnce = sync.Once{}

		err1 := InitStores(schema.SQLiteBackend, ":memory:", "", "")
		err2 := InitStores(schema.SQLiteBackend, ":memory:", "", "")

		assert.NoError(t, err1, "First init should not fail")
		assert.NoError(t, err2, "Second init should not fail")

		CloseStores()
		CloseStores()
	})

	t.Run("empty backends leave stores nil", func(t *testing.T) {
		initOnce = sync.Once{}
		closeOnce = sync.Once{}

		err := InitStores("", "", "", "")
		assert.NoError(t, err, "Init with no backends should not fail")
		assert.Nil(t, Manager.GetCacheStore(), "Cache store should be nil when unconfigured")
		assert.Nil(t, Manager.GetResultsStore(), "Results store should be nil when unconfigured")

		CloseStores()
	})

	t.Run("invalid mysql connection fails", func(t *testing.T) {
		initOnce = sync.Once{}
		closeOnce = sync.Once{}
		defer func() {
			initOnce = sync.Once{}
			closeOnce = sync.Once{}
		}()

		err := InitStores(schema.MySQLBackend, "invalid://connection", "", "")
		assert.Error(t, err, "Expected error for invalid MySQL connection string")
	})
}

func TestProbeCacheStoreSQLite(t *testing.T) {
	newStore := func(t *testing.T) contract.CacheStore {
		store, err := NewProbeCacheStore(schema.SQLiteBackend, ":memory:")
		require.NoError(t, err, "Failed to create SQLite probe cache")
		t.Cleanup(func() { _ = store.Close() })
		return store
	}

	t.Run("set and get round trip", func(t *testing.T) {
		store := newStore(t)

		code := 200
		outcome := schema.ProbeOutcome{IsAccessible: true, StatusCode: &code}
		require.NoError(t, store.Set("https://example.org", outcome, 1234567890))

		got, ts, found, err := store.Get("https://example.org")
		require.NoError(t, err, "Get should not fail")
		assert.True(t, found, "Entry should be found")
		assert.Equal(t, int64(1234567890), ts, "Timestamp mismatch")
		assert.True(t, got.IsAccessible)
		require.NotNil(t, got.StatusCode)
		assert.Equal(t, 200, *got.StatusCode)
		assert.Nil(t, got.Error, "No error was stored")
	})

	t.Run("null status and error columns", func(t *testing.T) {
		store := newStore(t)

		msg := "connection refused"
		outcome := schema.ProbeOutcome{IsAccessible: false, Error: &msg}
		require.NoError(t, store.Set("https://dead.example.org", outcome, 2000))

		got, _, found, err := store.Get("https://dead.example.org")
		require.NoError(t, err)
		assert.True(t, found)
		assert.False(t, got.IsAccessible)
		assert.Nil(t, got.StatusCode, "Status code should stay nil through storage")
		require.NotNil(t, got.Error)
		assert.Equal(t, "connection refused", *got.Error)
	})

	t.Run("upsert replaces the previous outcome", func(t *testing.T) {
		store := newStore(t)

		code := 404
		require.NoError(t, store.Set("https://example.org", schema.ProbeOutcome{IsAccessible: false, StatusCode: &code}, 1000))
		code2 := 200
		require.NoError(t, store.Set("https://example.org", schema.ProbeOutcome{IsAccessible: true, StatusCode: &code2}, 2000))

		got, ts, found, err := store.Get("https://example.org")
		require.NoError(t, err)
		assert.True(t, found)
		assert.True(t, got.IsAccessible, "Second write should win")
		assert.Equal(t, int64(2000), ts)
	})

	t.Run("miss on unknown url", func(t *testing.T) {
		store := newStore(t)

		_, _, found, err := store.Get("https://never-probed.example.org")
		assert.NoError(t, err, "A miss is not an error")
		assert.False(t, found, "Unknown URL should be a miss")
	})

	t.Run("status reflects entry range", func(t *testing.T) {
		store := newStore(t)

		for i, url := range []string{"https://a.example", "https://b.example", "https://c.example"} {
			require.NoError(t, store.Set(url, schema.ProbeOutcome{IsAccessible: true}, int64(1000+i*500)))
		}

		status, err := store.GetStatus()
		require.NoError(t, err, "GetStatus should not fail")
		assert.Equal(t, schema.SQLiteBackend, status.Backend)
		assert.Equal(t, ":memory:", status.Location)
		assert.Equal(t, 3, status.EntryCount)
		assert.Equal(t, int64(1000), status.OldestUnix)
		assert.Equal(t, int64(2000), status.NewestUnix)
	})

	t.Run("status on empty store", func(t *testing.T) {
		store := newStore(t)

		status, err := store.GetStatus()
		require.NoError(t, err)
		assert.Equal(t, 0, status.EntryCount)
		assert.Zero(t, status.OldestUnix)
		assert.Zero(t, status.NewestUnix)
	})
}

func TestProbeCacheStoreNoneBackend(t *testing.T) {
	store, err := NewProbeCacheStore(schema.NoneBackend, "")
	require.NoError(t, err, "Failed to create none backend store")

	// Set is a no-op
	assert.NoError(t, store.Set("https://example.org", schema.ProbeOutcome{IsAccessible: true}, 1000))

	// Get always misses
	_, _, found, err := store.Get("https://example.org")
	assert.NoError(t, err)
	assert.False(t, found, "None backend should never report a hit")

	status, err := store.GetStatus()
	assert.NoError(t, err)
	assert.Equal(t, schema.NoneBackend, status.Backend)
	assert.Equal(t, 0, status.EntryCount)

	assert.NoError(t, store.Close(), "Close on none backend should not error")
}

func TestResultsStoreSQLite(t *testing.T) {
	store, err := NewResultsStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err, "Failed to create SQLite results store")
	defer func() { _ = store.Close() }()

	started := time.Unix(1700000000, 0)
	runID, err := store.BeginRun(started, map[string]any{"workers": 4})
	require.NoError(t, err, "BeginRun should not fail")
	assert.Positive(t, runID, "Run IDs start at 1")

	finding := schema.Finding{
		CheckID:  "P001",
		Severity: schema.PitfallSeverity,
		HasIssue: true,
		FileName: "alpha.json",
		Evidence: map[string]any{"field": "license"},
	}
	require.NoError(t, store.RecordFinding(runID, finding))
	require.NoError(t, store.RecordFinding(runID, schema.Finding{
		CheckID:  "W002",
		Severity: schema.WarningSeverity,
		HasIssue: false,
		FileName: "alpha.json",
	}))

	require.NoError(t, store.EndRun(runID, started.Add(time.Minute), 1))

	t.Run("export preserves order and content", func(t *testing.T) {
		findings, err := store.ExportFindings()
		require.NoError(t, err, "ExportFindings should not fail")
		require.Len(t, findings, 2)

		assert.Equal(t, runID, findings[0].RunID)
		assert.Equal(t, "P001", findings[0].CheckID)
		assert.Equal(t, schema.PitfallSeverity, findings[0].Severity)
		assert.True(t, findings[0].HasIssue)
		assert.Equal(t, "alpha.json", findings[0].FileName)
		assert.Contains(t, findings[0].EvidenceJSON, `"field":"license"`)

		assert.Equal(t, "W002", findings[1].CheckID)
		assert.False(t, findings[1].HasIssue)
	})

	t.Run("status counts runs and findings", func(t *testing.T) {
		status, err := store.GetStatus()
		require.NoError(t, err)
		assert.Equal(t, schema.SQLiteBackend, status.Backend)
		assert.Equal(t, 1, status.RunCount)
		assert.Equal(t, 2, status.FindingCount)
	})

	t.Run("clear removes everything", func(t *testing.T) {
		require.NoError(t, store.Clear())

		status, err := store.GetStatus()
		require.NoError(t, err)
		assert.Equal(t, 0, status.RunCount)
		assert.Equal(t, 0, status.FindingCount)

		findings, err := store.ExportFindings()
		require.NoError(t, err)
		assert.Empty(t, findings)
	})
}

func TestResultsStoreNoneBackend(t *testing.T) {
	store, err := NewResultsStore(schema.NoneBackend, "")
	require.NoError(t, err, "Failed to create none backend results store")

	runID, err := store.BeginRun(time.Now(), nil)
	assert.NoError(t, err)
	assert.Zero(t, runID, "None backend returns a zero run ID")

	assert.NoError(t, store.RecordFinding(runID, schema.Finding{CheckID: "P001"}))
	assert.NoError(t, store.EndRun(runID, time.Now(), 0))

	findings, err := store.ExportFindings()
	assert.NoError(t, err)
	assert.Nil(t, findings, "Nothing is stored on the none backend")

	assert.NoError(t, store.Close())
}

func TestClearCache(t *testing.T) {
	t.Run("SQLite removes the database file", func(t *testing.T) {
		dbPath := filepath.Join(t.TempDir(), "probe_cache.db")

		db, err := sql.Open("sqlite", dbPath)
		require.NoError(t, err, "Failed to create database")
		_, err = db.Exec("CREATE TABLE probe_cache (url TEXT PRIMARY KEY)")
		require.NoError(t, err)
		require.NoError(t, db.Close())

		require.NoError(t, ClearCache(schema.SQLiteBackend, dbPath, ""))

		_, err = os.Stat(dbPath)
		assert.True(t, os.IsNotExist(err), "Database file should be removed")
	})

	t.Run("SQLite tolerates a missing file", func(t *testing.T) {
		dbPath := filepath.Join(t.TempDir(), "never_created.db")
		assert.NoError(t, ClearCache(schema.SQLiteBackend, dbPath, ""))
	})

	t.Run("SQLite requires a file path", func(t *testing.T) {
		assert.Error(t, ClearCache(schema.SQLiteBackend, "", ""))
	})

	t.Run("none backend is a no-op", func(t *testing.T) {
		assert.NoError(t, ClearCache(schema.NoneBackend, "", ""))
	})

	t.Run("unsupported backend", func(t *testing.T) {
		assert.Error(t, ClearCache("unsupported", "", ""))
	})
}

func TestClearResults(t *testing.T) {
	t.Run("SQLite removes the database file", func(t *testing.T) {
		dbPath := filepath.Join(t.TempDir(), "results.db")

		store, err := NewResultsStore(schema.SQLiteBackend, dbPath)
		require.NoError(t, err)
		require.NoError(t, store.Close())

		require.NoError(t, ClearResults(schema.SQLiteBackend, dbPath, ""))

		_, err = os.Stat(dbPath)
		assert.True(t, os.IsNotExist(err), "Database file should be removed")
	})

	t.Run("none backend is a no-op", func(t *testing.T) {
		assert.NoError(t, ClearResults(schema.NoneBackend, "", ""))
	})
}

func TestStoreManagerConcurrentAccess(t *testing.T) {
	initOnce = sync.Once{}
	closeOnce = sync.Once{}

	require.NoError(t, InitStores(schema.SQLiteBackend, ":memory:", "", ""))
	defer CloseStores()

	const numGoroutines = 10
	done := make(chan bool, numGoroutines)

	for i := range numGoroutines {
		go func(id int) {
			defer func() { done <- true }()
			store := Manager.GetCacheStore()
			if store == nil {
				t.Errorf("Goroutine %d: GetCacheStore returned nil", id)
				return
			}
			err := store.Set("https://shared.example", schema.ProbeOutcome{IsAccessible: true}, int64(1000+id))
			if err != nil {
				t.Errorf("Goroutine %d: Set failed: %v", id, err)
			}
		}(i)
	}

	for range numGoroutines {
		<-done
	}
}
