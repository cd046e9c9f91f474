package iocache

import (
	"errors"
	"fmt"

	"github.com/oeg-upm/metacheck/internal/parquet"
)

// ExecuteResultsExport exports every stored finding to a Parquet file.
func ExecuteResultsExport(outputFile string) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	store := Manager.GetResultsStore()
	if store == nil {
		return errors.New("results store is not configured")
	}

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get results status: %w", err)
	}
	if status.FindingCount == 0 {
		return errors.New("no findings found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total runs: %d\n", status.RunCount)
	fmt.Printf("Total findings: %d\n", status.FindingCount)

	findings, err := store.ExportFindings()
	if err != nil {
		return fmt.Errorf("failed to retrieve findings: %w", err)
	}

	records := parquet.ConvertStoredFindings(findings)
	if err := parquet.WriteFindingsParquet(records, outputFile); err != nil {
		return fmt.Errorf("failed to write findings: %w", err)
	}
	fmt.Printf("Exported %d findings to: %s\n", len(records), outputFile)

	return nil
}
