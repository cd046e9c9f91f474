package iocache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/oeg-upm/metacheck/internal/contract"
	"github.com/oeg-upm/metacheck/schema"
)

// Results store table names.
const (
	checkRunsTable     = "check_runs"
	checkFindingsTable = "check_findings"
)

// ResultsStoreImpl tracks evaluation runs and their findings in a SQL
// backend.
type ResultsStoreImpl struct {
	db       *sql.DB
	backend  schema.DatabaseBackend
	location string
}

var _ contract.ResultsStore = &ResultsStoreImpl{} // Compile-time check

// NewResultsStore initializes a results store for the given backend.
func NewResultsStore(backend schema.DatabaseBackend, connStr string) (contract.ResultsStore, error) {
	if backend == schema.NoneBackend {
		return &ResultsStoreImpl{backend: backend}, nil
	}

	db, location, err := openBackend(backend, connStr, GetResultsDBFilePath())
	if err != nil {
		return nil, err
	}

	for _, query := range resultsCreateQueries(backend) {
		if _, err := db.Exec(query); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to create results tables: %w", err)
		}
	}

	return &ResultsStoreImpl{db: db, backend: backend, location: location}, nil
}

func resultsCreateQueries(backend schema.DatabaseBackend) []string {
	switch backend {
	case schema.MySQLBackend:
		return []string{`
			CREATE TABLE IF NOT EXISTS check_runs (
				id BIGINT AUTO_INCREMENT PRIMARY KEY,
				started_at BIGINT NOT NULL,
				ended_at BIGINT NULL,
				total_repos INT NULL,
				config_json TEXT NULL
			);
		`, `
			CREATE TABLE IF NOT EXISTS check_findings (
				id BIGINT AUTO_INCREMENT PRIMARY KEY,
				run_id BIGINT NOT NULL,
				check_id VARCHAR(16) NOT NULL,
				severity VARCHAR(16) NOT NULL,
				has_issue BOOLEAN NOT NULL,
				file_name TEXT NOT NULL,
				evidence_json TEXT NULL,
				recorded_at BIGINT NOT NULL
			);
		`}
	case schema.PostgreSQLBackend:
		return []string{`
			CREATE TABLE IF NOT EXISTS check_runs (
				id BIGSERIAL PRIMARY KEY,
				started_at BIGINT NOT NULL,
				ended_at BIGINT NULL,
				total_repos INTEGER NULL,
				config_json TEXT NULL
			);
		`, `
			CREATE TABLE IF NOT EXISTS check_findings (
				id BIGSERIAL PRIMARY KEY,
				run_id BIGINT NOT NULL,
				check_id TEXT NOT NULL,
				severity TEXT NOT NULL,
				has_issue BOOLEAN NOT NULL,
				file_name TEXT NOT NULL,
				evidence_json TEXT NULL,
				recorded_at BIGINT NOT NULL
			);
		`}
	default: // SQLite
		return []string{`
			CREATE TABLE IF NOT EXISTS check_runs (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				started_at INTEGER NOT NULL,
				ended_at INTEGER NULL,
				total_repos INTEGER NULL,
				config_json TEXT NULL
			);
		`, `
			CREATE TABLE IF NOT EXISTS check_findings (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				run_id INTEGER NOT NULL,
				check_id TEXT NOT NULL,
				severity TEXT NOT NULL,
				has_issue INTEGER NOT NULL,
				file_name TEXT NOT NULL,
				evidence_json TEXT NULL,
				recorded_at INTEGER NOT NULL
			);
		`}
	}
}

// BeginRun creates a new run row and returns its ID.
func (rs *ResultsStoreImpl) BeginRun(startTime time.Time, configParams map[string]any) (int64, error) {
	if rs.backend == schema.NoneBackend || rs.db == nil {
		return 0, nil
	}

	configJSON, err := json.Marshal(configParams)
	if err != nil {
		return 0, fmt.Errorf("failed to encode run config: %w", err)
	}

	if rs.backend == schema.PostgreSQLBackend {
		var runID int64
		row := rs.db.QueryRow(
			`INSERT INTO check_runs (started_at, config_json) VALUES ($1, $2) RETURNING id`,
			startTime.Unix(), string(configJSON))
		if err := row.Scan(&runID); err != nil {
			return 0, fmt.Errorf("failed to begin run: %w", err)
		}
		return runID, nil
	}

	res, err := rs.db.Exec(
		`INSERT INTO check_runs (started_at, config_json) VALUES (?, ?)`,
		startTime.Unix(), string(configJSON))
	if err != nil {
		return 0, fmt.Errorf("failed to begin run: %w", err)
	}
	return res.LastInsertId()
}

// EndRun records the completion time and repository count for a run.
func (rs *ResultsStoreImpl) EndRun(runID int64, endTime time.Time, totalRepos int) error {
	if rs.backend == schema.NoneBackend || rs.db == nil {
		return nil
	}

	query := `UPDATE check_runs SET ended_at = ?, total_repos = ? WHERE id = ?`
	if rs.backend == schema.PostgreSQLBackend {
		query = `UPDATE check_runs SET ended_at = $1, total_repos = $2 WHERE id = $3`
	}
	if _, err := rs.db.Exec(query, endTime.Unix(), totalRepos, runID); err != nil {
		return fmt.Errorf("failed to end run %d: %w", runID, err)
	}
	return nil
}

// RecordFinding stores one finding under a run.
func (rs *ResultsStoreImpl) RecordFinding(runID int64, finding schema.Finding) error {
	if rs.backend == schema.NoneBackend || rs.db == nil {
		return nil
	}

	evidenceJSON, err := json.Marshal(finding.Evidence)
	if err != nil {
		return fmt.Errorf("failed to encode evidence for %s: %w", finding.CheckID, err)
	}

	query := `INSERT INTO check_findings (run_id, check_id, severity, has_issue, file_name, evidence_json, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	if rs.backend == schema.PostgreSQLBackend {
		query = `INSERT INTO check_findings (run_id, check_id, severity, has_issue, file_name, evidence_json, recorded_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`
	}
	_, err = rs.db.Exec(query, runID, finding.CheckID, string(finding.Severity),
		finding.HasIssue, finding.FileName, string(evidenceJSON), time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to record finding %s: %w", finding.CheckID, err)
	}
	return nil
}

// ExportFindings returns every stored finding ordered by run and insertion.
func (rs *ResultsStoreImpl) ExportFindings() ([]schema.StoredFinding, error) {
	if rs.backend == schema.NoneBackend || rs.db == nil {
		return nil, nil
	}

	rows, err := rs.db.Query(`SELECT run_id, check_id, severity, has_issue, file_name, evidence_json, recorded_at
		FROM check_findings ORDER BY run_id, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query findings: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var findings []schema.StoredFinding
	for rows.Next() {
		var f schema.StoredFinding
		var severity string
		var evidenceJSON sql.NullString
		if err := rows.Scan(&f.RunID, &f.CheckID, &severity, &f.HasIssue, &f.FileName, &evidenceJSON, &f.RecordedAt); err != nil {
			return nil, fmt.Errorf("failed to scan finding: %w", err)
		}
		f.Severity = schema.Severity(severity)
		f.EvidenceJSON = evidenceJSON.String
		findings = append(findings, f)
	}
	return findings, rows.Err()
}

// GetStatus returns status information about the results store.
func (rs *ResultsStoreImpl) GetStatus() (schema.ResultsStatus, error) {
	status := schema.ResultsStatus{
		Backend:  rs.backend,
		Location: rs.location,
	}
	if rs.backend == schema.NoneBackend || rs.db == nil {
		return status, nil
	}

	row := rs.db.QueryRow(`SELECT COUNT(*) FROM check_runs`)
	if err := row.Scan(&status.RunCount); err != nil {
		return status, fmt.Errorf("failed to count runs: %w", err)
	}
	row = rs.db.QueryRow(`SELECT COUNT(*) FROM check_findings`)
	if err := row.Scan(&status.FindingCount); err != nil {
		return status, fmt.Errorf("failed to count findings: %w", err)
	}
	return status, nil
}

// Clear removes all runs and findings.
func (rs *ResultsStoreImpl) Clear() error {
	if rs.backend == schema.NoneBackend || rs.db == nil {
		return nil
	}
	for _, table := range []string{checkFindingsTable, checkRunsTable} {
		if _, err := rs.db.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("failed to clear table %s: %w", table, err)
		}
	}
	return nil
}

// Close closes the underlying DB connection.
func (rs *ResultsStoreImpl) Close() error {
	if rs.db != nil {
		return rs.db.Close()
	}
	return nil
}
