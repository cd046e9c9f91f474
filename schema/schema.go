// Package schema has models, constants and global variables for all parts of metacheck.
package schema

// ExtractionEntry is one harvested fact about a metadata attribute, as
// produced by the harvesting step. Entries are arbitrary JSON objects, so the
// type is a loose map with accessor methods that treat absence and wrong
// types as "no data" rather than errors.
type ExtractionEntry map[string]any

// Source returns the provenance source string (file path or technique label).
func (e ExtractionEntry) Source() string {
	s, _ := AsString(e["source"])
	return s
}

// Technique returns the extraction technique label (e.g. "code_parser").
func (e ExtractionEntry) Technique() string {
	s, _ := AsString(e["technique"])
	return s
}

// Result returns the nested result object, or nil when absent or not an object.
func (e ExtractionEntry) Result() map[string]any {
	m, _ := AsMap(e["result"])
	return m
}

// Value returns result.value and whether it is present.
func (e ExtractionEntry) Value() (any, bool) {
	r := e.Result()
	if r == nil {
		return nil, false
	}
	v, ok := r["value"]
	return v, ok
}

// ValueString returns result.value as a string. The second return is false
// when the value is absent or not a string.
func (e ExtractionEntry) ValueString() (string, bool) {
	v, ok := e.Value()
	if !ok {
		return "", false
	}
	return AsString(v)
}

// ResultString returns a string field of the nested result object.
func (e ExtractionEntry) ResultString(key string) (string, bool) {
	r := e.Result()
	if r == nil {
		return "", false
	}
	return AsString(r[key])
}

// MetadataRecord maps attribute names to ordered extraction entry lists for
// one analyzed repository. Records are read-only for the lifetime of an
// evaluation pass.
type MetadataRecord map[string]any

// Entries returns the entry list for an attribute in extraction order.
// It returns nil when the attribute is absent or not a list; callers treat
// nil as "no data".
func (r MetadataRecord) Entries(attribute string) []ExtractionEntry {
	raw, ok := r[attribute]
	if !ok {
		return nil
	}
	list, ok := raw.([]any)
	if !ok {
		return nil
	}
	entries := make([]ExtractionEntry, 0, len(list))
	for _, item := range list {
		if m, ok := AsMap(item); ok {
			entries = append(entries, ExtractionEntry(m))
		}
	}
	return entries
}

// Finding is the output of one check applied to one record. Evidence always
// carries the full field set documented by the check, nulled when
// inapplicable; consumers depend on that invariant.
type Finding struct {
	CheckID     string         `json:"check_id"`
	Severity    Severity       `json:"severity"`
	Description string         `json:"description"`
	HasIssue    bool           `json:"has_issue"`
	FileName    string         `json:"file_name"`
	Evidence    map[string]any `json:"evidence"`
}

// RepoResult groups every finding for one repository, or records why the
// repository was skipped.
type RepoResult struct {
	FileName   string    `json:"file_name"`
	Findings   []Finding `json:"findings,omitempty"`
	Skipped    bool      `json:"skipped"`
	SkipReason string    `json:"skip_reason,omitempty"`
}

// AggregateStat summarizes one check across the whole batch.
type AggregateStat struct {
	CheckID        string   `json:"check_id"`
	Severity       Severity `json:"severity"`
	Description    string   `json:"description"`
	CountTriggered int      `json:"count_triggered"`
	TotalRepos     int      `json:"total_repos"`
	Percentage     float64  `json:"percentage"`
}

// BatchReport is the final output of a batch run. It is built incrementally
// and never left partially corrupted by a single repository failure.
type BatchReport struct {
	Results    []RepoResult    `json:"results"`
	Aggregate  []AggregateStat `json:"aggregate"`
	TotalRepos int             `json:"total_repos"`
	Skipped    int             `json:"skipped"`
}

// ProbeOutcome is the classification of one accessibility probe.
type ProbeOutcome struct {
	IsAccessible bool    `json:"is_accessible"`
	StatusCode   *int    `json:"status_code"`
	Error        *string `json:"error"`
}

// StoredFinding is a finding as persisted by the results store, flattened
// for export.
type StoredFinding struct {
	RunID        int64
	CheckID      string
	Severity     Severity
	HasIssue     bool
	FileName     string
	EvidenceJSON string
	RecordedAt   int64
}

// CacheStatus holds status information for the probe cache store.
type CacheStatus struct {
	Backend    DatabaseBackend
	Location   string
	EntryCount int
	OldestUnix int64
	NewestUnix int64
}

// ResultsStatus holds status information for the results store.
type ResultsStatus struct {
	Backend      DatabaseBackend
	Location     string
	RunCount     int
	FindingCount int
}
