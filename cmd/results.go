package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/oeg-upm/metacheck/internal/contract"
	"github.com/oeg-upm/metacheck/internal/iocache"
	"github.com/oeg-upm/metacheck/schema"
)

// resultsSetup loads minimal configuration needed for results operations.
// This is used by commands that need results access without full shared setup.
func resultsSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get results-related config values
	backendStr := viper.GetString("results-backend")
	connStr := viper.GetString("results-db-connect")

	// Handle empty backend as SQLite so plain "results status" works
	var backend schema.DatabaseBackend
	if backendStr == "" {
		backend = schema.SQLiteBackend
	} else {
		backend = schema.DatabaseBackend(backendStr)
	}

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// Initialize the results store only; probe caching stays off here
	if err := iocache.InitStores("", "", backend, connStr); err != nil {
		return fmt.Errorf("failed to initialize results store: %w", err)
	}

	cfg.ResultsBackend = backend
	cfg.ResultsDBConnect = connStr

	return nil
}

// resultsSetupWrapper wraps resultsSetup to provide PreRunE for results commands.
func resultsSetupWrapper(_ *cobra.Command, _ []string) error {
	return resultsSetup()
}

// resultsMigrateSetup loads minimal configuration needed for migrate
// operations. It does NOT initialize stores or create tables, allowing
// migrations to run on a fresh database.
func resultsMigrateSetup(_ *cobra.Command, _ []string) error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backendStr := viper.GetString("results-backend")
	connStr := viper.GetString("results-db-connect")

	var backend schema.DatabaseBackend
	if backendStr == "" {
		backend = schema.SQLiteBackend
	} else {
		backend = schema.DatabaseBackend(backendStr)
	}

	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// For SQLite backend with empty connection string, use default path
	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = contract.GetResultsDBFilePath()
	}

	cfg.ResultsBackend = backend
	cfg.ResultsDBConnect = connStr

	return nil
}

// resultsCmd focused on results data management.
var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "Manage historical evaluation results and exports",
	Long: `Manage historical evaluation results used for trend tracking.

When enabled, metacheck records every evaluation run, storing:
- Run metadata (timestamp, configuration, repository count)
- Every finding with its evidence

This enables longitudinal quality tracking and data export for BI tools.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  status  - Show results tracking statistics
  export  - Export findings to Parquet for analytics
  clear   - Remove all stored results
  migrate - Run database schema migrations

Examples:
  # Check tracking status
  metacheck results status

  # Export for analysis in pandas/DuckDB
  metacheck results export --output-file findings.parquet`,
}

// resultsClearCmd clears the results data.
var resultsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all stored evaluation results",
	Long: `Delete all stored evaluation runs and findings.

WARNING: This action cannot be undone. Consider exporting data first.

Examples:
  # Export before clearing
  metacheck results export --output-file backup.parquet
  metacheck results clear`,
	PreRunE: resultsSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		dbFilePath := cfg.ResultsDBConnect
		if dbFilePath == "" {
			dbFilePath = contract.GetResultsDBFilePath()
		}
		if err := iocache.ClearResults(cfg.ResultsBackend, dbFilePath, cfg.ResultsDBConnect); err != nil {
			contract.LogFatal("Failed to clear results data", err)
		}
		fmt.Println("Results data cleared successfully.")
	},
}

// resultsStatusCmd shows results store status.
var resultsStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display results tracking statistics and connection details",
	Long: `Show detailed information about stored evaluation results.

Displays:
- Backend type and location
- Total number of recorded runs
- Total number of stored findings

Examples:
  # Check results status
  metacheck results status`,
	PreRunE: resultsSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := iocache.Manager.GetResultsStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get results status", err)
		}
		iocache.PrintResultsStatus(status)
	},
}

// resultsExportCmd exports findings to Parquet.
var resultsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export stored findings to a Parquet file",
	Long: `Export every stored finding to Parquet for external analytics.

The resulting file can be loaded with Apache Spark, Pandas (via pyarrow),
DuckDB, or any other Parquet-compatible tool.

Examples:
  # Export all findings
  metacheck results export --output-file findings.parquet`,
	PreRunE: resultsSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ExecuteResultsExport(viper.GetString("output-file")); err != nil {
			contract.LogFatal("Failed to export results", err)
		}
	},
}

// resultsMigrateCmd runs schema migrations for the results store.
var resultsMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations for the results store",
	Long: `Apply or roll back results store schema migrations.

Use --target-version to control the migration target:
  -1  migrate to the latest version (default)
   0  roll back all migrations
   N  migrate to version N

Examples:
  # Migrate to the latest schema
  metacheck results migrate

  # Roll everything back
  metacheck results migrate --target-version 0`,
	PreRunE: resultsMigrateSetup,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := iocache.MigrateResults(cfg.ResultsBackend, cfg.ResultsDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
