// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/oeg-upm/metacheck/schema"
)

// Rule is the contract every catalog check implements. Evaluate must never
// panic on malformed or missing data: absence of evidence yields a finding
// with HasIssue=false and all evidence fields null. Rules are deterministic
// and side-effect-free, except those carrying a Prober, which may block on
// network I/O.
type Rule interface {
	// ID returns the stable check identifier, e.g. "P016".
	ID() string

	// Severity returns whether the check reports a pitfall or a warning.
	Severity() schema.Severity

	// Description returns a one-line summary of what the check detects.
	Description() string

	// Evaluate applies the check to one record. fileName identifies the
	// record document for evidence purposes.
	Evaluate(ctx context.Context, rec schema.MetadataRecord, fileName string) schema.Finding
}

// Prober classifies URL reachability. The single classification table lives
// behind this interface so every URL-liveness rule shares it, and tests can
// substitute a canned implementation.
type Prober interface {
	// Probe validates the URL shape and, when well-formed, issues a
	// timeout-bounded existence probe. It never returns an error: network
	// failures are folded into the outcome.
	Probe(ctx context.Context, url string) schema.ProbeOutcome
}

// RecordSource supplies MetadataRecord documents to the batch evaluator.
type RecordSource interface {
	// Load parses one record document. A failed load skips the repository,
	// never the batch.
	Load(path string) (schema.MetadataRecord, error)
}

// CacheStore is durable storage for probe outcomes keyed by URL.
type CacheStore interface {
	Get(url string) (schema.ProbeOutcome, int64, bool, error)
	Set(url string, outcome schema.ProbeOutcome, timestamp int64) error
	GetStatus() (schema.CacheStatus, error)
	Close() error
}

// ResultsStore tracks evaluation runs and their findings.
type ResultsStore interface {
	// BeginRun creates a new run and returns its unique ID.
	BeginRun(startTime time.Time, configParams map[string]any) (int64, error)

	// EndRun updates the run with completion data.
	EndRun(runID int64, endTime time.Time, totalRepos int) error

	// RecordFinding stores one finding under a run.
	RecordFinding(runID int64, finding schema.Finding) error

	// ExportFindings returns every stored finding for export.
	ExportFindings() ([]schema.StoredFinding, error)

	GetStatus() (schema.ResultsStatus, error)
	Clear() error
	Close() error
}

// StoreManager hands out the configured stores. It exists so the store layer
// can be mocked for testing.
type StoreManager interface {
	GetCacheStore() CacheStore
	GetResultsStore() ResultsStore
}
