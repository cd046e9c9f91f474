// Package parquet exports stored check findings to Parquet files using
// github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/oeg-upm/metacheck/schema"
)

// FindingRecord is one persisted check finding, flattened for columnar
// export. It maps to the check_findings database table.
type FindingRecord struct {
	// RunID references the evaluation run the finding belongs to
	RunID int64 `parquet:"run_id,snappy"`

	// CheckID is the stable check identifier, e.g. "P016"
	CheckID string `parquet:"check_id,snappy"`

	// Severity is "pitfall" or "warning"
	Severity string `parquet:"severity,snappy"`

	// HasIssue reports whether the check actually triggered
	HasIssue bool `parquet:"has_issue,snappy"`

	// FileName identifies the record document that was evaluated
	FileName string `parquet:"file_name,snappy"`

	// EvidenceJSON holds the JSON-encoded evidence map (nullable)
	EvidenceJSON *string `parquet:"evidence_json,optional,snappy"`

	// RecordedAt is when the finding was persisted
	RecordedAt time.Time `parquet:"recorded_at,snappy"`
}

// ConvertStoredFindings maps persisted findings to their Parquet form.
func ConvertStoredFindings(findings []schema.StoredFinding) []FindingRecord {
	records := make([]FindingRecord, 0, len(findings))
	for _, f := range findings {
		record := FindingRecord{
			RunID:      f.RunID,
			CheckID:    f.CheckID,
			Severity:   string(f.Severity),
			HasIssue:   f.HasIssue,
			FileName:   f.FileName,
			RecordedAt: time.Unix(f.RecordedAt, 0),
		}
		if f.EvidenceJSON != "" {
			evidence := f.EvidenceJSON
			record.EvidenceJSON = &evidence
		}
		records = append(records, record)
	}
	return records
}

// WriteFindingsParquet writes finding records to a Parquet file. The schema
// is derived from the FindingRecord struct tags.
func WriteFindingsParquet(data []FindingRecord, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[FindingRecord](file)

	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	return writer.Close()
}
