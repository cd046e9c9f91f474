// Package outwriter has output and writer logic.
package outwriter

import (
	"time"

	"github.com/oeg-upm/metacheck/internal/contract"
	"github.com/oeg-upm/metacheck/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for
// the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteSummary prints the aggregate batch report using the configured
// output format.
func (ow *OutWriter) WriteSummary(report *schema.BatchReport, cfg *contract.Config, duration time.Duration) error {
	return WriteSummaryReport(report, cfg, duration)
}

// WriteCatalog prints the check catalog listing using the configured
// output format.
func (ow *OutWriter) WriteCatalog(rules []contract.Rule, cfg *contract.Config) error {
	return WriteCatalogListing(rules, cfg)
}
