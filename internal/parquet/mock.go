package parquet

import "time"

// MockFetchFindingRecords returns sample finding records for demos and tests.
func MockFetchFindingRecords() []FindingRecord {
	licenseEvidence := `{"source":"LICENSE.md","placeholders":["[year]","[fullname]"]}`
	probeEvidence := `{"url":"https://example.org/issues","status_code":404}`

	return []FindingRecord{
		{
			RunID:        1,
			CheckID:      "P002",
			Severity:     "pitfall",
			HasIssue:     true,
			FileName:     "widget-parser.json",
			EvidenceJSON: &licenseEvidence,
			RecordedAt:   time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
		},
		{
			RunID:        1,
			CheckID:      "P011",
			Severity:     "pitfall",
			HasIssue:     true,
			FileName:     "widget-parser.json",
			EvidenceJSON: &probeEvidence,
			RecordedAt:   time.Date(2025, 6, 1, 10, 0, 1, 0, time.UTC),
		},
		{
			RunID:      2,
			CheckID:    "W001",
			Severity:   "warning",
			HasIssue:   false,
			FileName:   "data-pipeline.json",
			RecordedAt: time.Date(2025, 6, 2, 9, 30, 0, 0, time.UTC),
		},
	}
}
