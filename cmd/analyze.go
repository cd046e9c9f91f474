package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oeg-upm/metacheck/core"
	"github.com/oeg-upm/metacheck/internal/contract"
)

// analyzeCmd evaluates metadata records against the check catalog.
var analyzeCmd = &cobra.Command{
	Use:   "analyze <record.json|dir> [more inputs...]",
	Short: "Evaluate extracted metadata records against the check catalog.",
	Long: `Run every quality check over one or more extracted metadata records
and print an aggregate summary of how often each check triggered.

Inputs are JSON record files or directories holding them. Records that fail
to parse are skipped with a warning; the run fails only when nothing loads.

URL-liveness checks probe the referenced hosts. Probe outcomes are cached in
the configured backend so repeated runs stay fast, and --skip-probes turns
the network off entirely for offline runs.

Examples:
  # Evaluate a directory of extraction outputs
  metacheck analyze ./records/

  # Offline run with per-repo findings documents
  metacheck analyze ./records/ --skip-probes --findings-dir ./findings

  # Track results over time in PostgreSQL
  METACHECK_RESULTS_DB_CONNECT="host=db port=5432 user=mc dbname=mc" \
    metacheck analyze ./records/ --results-backend postgresql

  # Export the summary for spreadsheets
  metacheck analyze ./records/ --output csv --summary-file summary.csv`,
	Args:    cobra.MinimumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteBatchEvaluation(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot run batch evaluation", err)
		}
	},
}
