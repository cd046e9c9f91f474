package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/oeg-upm/metacheck/core"
	"github.com/oeg-upm/metacheck/internal/contract"
	"github.com/oeg-upm/metacheck/schema"
)

// checksSetup loads minimal configuration needed to render the catalog.
// Listing checks never touches the network or a database.
func checksSetup(_ *cobra.Command, _ []string) error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	switch out := schema.OutputMode(viper.GetString("output")); out {
	case schema.TextOut, schema.JSONOut, schema.CSVOut:
		cfg.Output = out
	default:
		cfg.Output = schema.TextOut
	}
	cfg.SummaryFile = viper.GetString("summary-file")
	cfg.SkipProbes = true

	return nil
}

// checksCmd lists the check catalog.
var checksCmd = &cobra.Command{
	Use:   "checks",
	Short: "List every quality check in the catalog.",
	Long: `Print the full check catalog with identifiers, severities, and
descriptions.

Pitfalls (P...) flag definite metadata defects; warnings (W...) flag
patterns that usually deserve attention but may be intentional.

Examples:
  # Human-readable listing
  metacheck checks

  # Machine-readable listing
  metacheck checks --output json`,
	PreRunE: checksSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteCatalogListing(cfg, storeManager); err != nil {
			contract.LogFatal("Cannot list checks", err)
		}
	},
}
