package iocache

import (
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/go-sql-driver/mysql"  // MySQL driver
	_ "github.com/jackc/pgx/v5/stdlib"  // PostgreSQL driver
	_ "modernc.org/sqlite"              // SQLite driver

	"github.com/oeg-upm/metacheck/internal/contract"
	"github.com/oeg-upm/metacheck/schema"
)

// probeCacheTable is the name of the table for probe outcome caching.
const probeCacheTable = "probe_cache"

// ProbeCacheStore persists URL probe outcomes in a SQL backend so repeated
// batch runs do not hammer the same hosts.
type ProbeCacheStore struct {
	db       *sql.DB
	backend  schema.DatabaseBackend
	location string
}

var _ contract.CacheStore = &ProbeCacheStore{} // Compile-time check

// openBackend opens and pings a database connection for the given backend.
func openBackend(backend schema.DatabaseBackend, connStr, sqliteFallback string) (*sql.DB, string, error) {
	var db *sql.DB
	var err error
	location := connStr

	switch backend {
	case schema.SQLiteBackend:
		if location == "" {
			location = sqliteFallback
		}
		db, err = sql.Open("sqlite", location)
		if err != nil {
			return nil, "", fmt.Errorf("failed to open SQLite database at %q: %w. Ensure the directory is writable", location, err)
		}
		// A single connection avoids "database is locked" errors
		db.SetMaxOpenConns(1)

	case schema.MySQLBackend:
		// connStr: user:password@tcp(host:port)/dbname
		db, err = sql.Open("mysql", connStr)
		if err != nil {
			return nil, "", fmt.Errorf("failed to connect to MySQL: %w. Check connection format: user:password@tcp(host:port)/dbname", err)
		}

	case schema.PostgreSQLBackend:
		// connStr: host=localhost port=5432 user=postgres dbname=mydb
		db, err = sql.Open("pgx", connStr)
		if err != nil {
			return nil, "", fmt.Errorf("failed to connect to PostgreSQL: %w. Check connection format: host=localhost port=5432 user=postgres dbname=mydb", err)
		}

	default:
		return nil, "", fmt.Errorf("unsupported database backend: %s. Must be sqlite, mysql, postgresql, or none", backend)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, "", fmt.Errorf("failed to connect to %s database. Check that the server is running and connection parameters are valid: %w", backend, err)
	}
	return db, location, nil
}

// NewProbeCacheStore initializes a probe cache for the given backend. The
// NoneBackend yields a no-op store so callers never branch on nil.
func NewProbeCacheStore(backend schema.DatabaseBackend, connStr string) (contract.CacheStore, error) {
	if backend == schema.NoneBackend {
		return &ProbeCacheStore{backend: backend}, nil
	}

	db, location, err := openBackend(backend, connStr, GetCacheDBFilePath())
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(probeCacheCreateQuery(backend)); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create table %s: %w", probeCacheTable, err)
	}

	return &ProbeCacheStore{db: db, backend: backend, location: location}, nil
}

func probeCacheCreateQuery(backend schema.DatabaseBackend) string {
	switch backend {
	case schema.MySQLBackend:
		return `
			CREATE TABLE IF NOT EXISTS probe_cache (
				url VARCHAR(767) PRIMARY KEY,
				is_accessible BOOLEAN NOT NULL,
				status_code INT NULL,
				probe_error TEXT NULL,
				probe_timestamp BIGINT NOT NULL
			);
		`
	case schema.PostgreSQLBackend:
		return `
			CREATE TABLE IF NOT EXISTS probe_cache (
				url TEXT PRIMARY KEY,
				is_accessible BOOLEAN NOT NULL,
				status_code INTEGER NULL,
				probe_error TEXT NULL,
				probe_timestamp BIGINT NOT NULL
			);
		`
	default: // SQLite
		return `
			CREATE TABLE IF NOT EXISTS probe_cache (
				url TEXT PRIMARY KEY,
				is_accessible INTEGER NOT NULL,
				status_code INTEGER NULL,
				probe_error TEXT NULL,
				probe_timestamp INTEGER NOT NULL
			);
		`
	}
}

// Get retrieves a cached probe outcome for the URL. The third return is
// false on a cache miss.
func (ps *ProbeCacheStore) Get(url string) (schema.ProbeOutcome, int64, bool, error) {
	if ps.backend == schema.NoneBackend || ps.db == nil {
		return schema.ProbeOutcome{}, 0, false, nil
	}

	query := `SELECT is_accessible, status_code, probe_error, probe_timestamp FROM probe_cache WHERE url = ?`
	if ps.backend == schema.PostgreSQLBackend {
		query = `SELECT is_accessible, status_code, probe_error, probe_timestamp FROM probe_cache WHERE url = $1`
	}

	var outcome schema.ProbeOutcome
	var statusCode sql.NullInt64
	var probeError sql.NullString
	var ts int64
	row := ps.db.QueryRow(query, url)
	if err := row.Scan(&outcome.IsAccessible, &statusCode, &probeError, &ts); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return schema.ProbeOutcome{}, 0, false, nil
		}
		return schema.ProbeOutcome{}, 0, false, err
	}
	if statusCode.Valid {
		code := int(statusCode.Int64)
		outcome.StatusCode = &code
	}
	if probeError.Valid {
		msg := probeError.String
		outcome.Error = &msg
	}
	return outcome, ts, true, nil
}

// Set inserts or replaces the probe outcome for the URL.
func (ps *ProbeCacheStore) Set(url string, outcome schema.ProbeOutcome, timestamp int64) error {
	if ps.backend == schema.NoneBackend || ps.db == nil {
		return nil
	}

	var statusCode sql.NullInt64
	if outcome.StatusCode != nil {
		statusCode = sql.NullInt64{Int64: int64(*outcome.StatusCode), Valid: true}
	}
	var probeError sql.NullString
	if outcome.Error != nil {
		probeError = sql.NullString{String: *outcome.Error, Valid: true}
	}

	_, err := ps.db.Exec(ps.upsertQuery(), url, outcome.IsAccessible, statusCode, probeError, timestamp)
	return err
}

func (ps *ProbeCacheStore) upsertQuery() string {
	switch ps.backend {
	case schema.MySQLBackend:
		return `INSERT INTO probe_cache (url, is_accessible, status_code, probe_error, probe_timestamp) VALUES (?, ?, ?, ?, ?) AS new
			ON DUPLICATE KEY UPDATE is_accessible = new.is_accessible, status_code = new.status_code, probe_error = new.probe_error, probe_timestamp = new.probe_timestamp`
	case schema.PostgreSQLBackend:
		return `INSERT INTO probe_cache (url, is_accessible, status_code, probe_error, probe_timestamp) VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (url) DO UPDATE SET is_accessible = EXCLUDED.is_accessible, status_code = EXCLUDED.status_code, probe_error = EXCLUDED.probe_error, probe_timestamp = EXCLUDED.probe_timestamp`
	default: // SQLite
		return `INSERT OR REPLACE INTO probe_cache (url, is_accessible, status_code, probe_error, probe_timestamp) VALUES (?, ?, ?, ?, ?)`
	}
}

// GetStatus returns status information about the probe cache.
func (ps *ProbeCacheStore) GetStatus() (schema.CacheStatus, error) {
	status := schema.CacheStatus{
		Backend:  ps.backend,
		Location: ps.location,
	}
	if ps.backend == schema.NoneBackend || ps.db == nil {
		return status, nil
	}

	row := ps.db.QueryRow(`SELECT COUNT(*) FROM probe_cache`)
	if err := row.Scan(&status.EntryCount); err != nil {
		return status, fmt.Errorf("failed to count cache entries: %w", err)
	}
	if status.EntryCount == 0 {
		return status, nil
	}

	row = ps.db.QueryRow(`SELECT MIN(probe_timestamp), MAX(probe_timestamp) FROM probe_cache`)
	if err := row.Scan(&status.OldestUnix, &status.NewestUnix); err != nil {
		return status, fmt.Errorf("failed to get cache entry range: %w", err)
	}
	return status, nil
}

// Close closes the underlying DB connection.
func (ps *ProbeCacheStore) Close() error {
	if ps.db != nil {
		return ps.db.Close()
	}
	return nil
}
