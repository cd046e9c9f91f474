// Package cmd defines the command-line interface for metacheck.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/oeg-upm/metacheck/internal/contract"
	"github.com/oeg-upm/metacheck/schema"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(checksCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(resultsCmd)

	// Add the cache subcommands to the parent cache command
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheStatusCmd)

	// Add the results subcommands to the parent results command
	resultsCmd.AddCommand(resultsClearCmd)
	resultsCmd.AddCommand(resultsStatusCmd)
	resultsCmd.AddCommand(resultsExportCmd)
	resultsCmd.AddCommand(resultsMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().StringP("output", "o", string(schema.TextOut), "Output format: text, json, csv")
	rootCmd.PersistentFlags().String("summary-file", "", "Optional path to write the aggregate summary (defaults to stdout)")
	rootCmd.PersistentFlags().String("findings-dir", "", "Optional directory for per-repository findings documents")
	rootCmd.PersistentFlags().IntP("workers", "w", contract.DefaultWorkers, "Number of concurrent workers")
	rootCmd.PersistentFlags().String("probe-timeout", contract.DefaultProbeTimeout.String(), "Timeout for each URL probe")
	rootCmd.PersistentFlags().Bool("skip-probes", false, "Skip network probes entirely (offline mode)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("cache-backend", string(schema.SQLiteBackend), "Probe cache backend: sqlite, mysql, postgresql, none")
	rootCmd.PersistentFlags().String("cache-db-connect", "", "Probe cache connection string (prefer env var; plaintext)")
	rootCmd.PersistentFlags().String("cache-ttl", contract.DefaultCacheTTL.String(), "How long cached probe outcomes stay fresh")
	rootCmd.PersistentFlags().String("results-backend", "", "Results store backend: sqlite, mysql, postgresql, none (empty disables)")
	rootCmd.PersistentFlags().String("results-db-connect", "", "Results store connection string (prefer env var; plaintext)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of resultsExportCmd to Viper
	resultsExportCmd.Flags().String("output-file", "", "Path to write the Parquet export")
	if err := viper.BindPFlags(resultsExportCmd.Flags()); err != nil {
		contract.LogFatal("Error binding results export flags", err)
	}

	// Bind all flags of resultsMigrateCmd to Viper
	resultsMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(resultsMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding results migrate flags", err)
	}
}
