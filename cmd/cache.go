package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/oeg-upm/metacheck/internal/contract"
	"github.com/oeg-upm/metacheck/internal/iocache"
	"github.com/oeg-upm/metacheck/schema"
)

// cacheSetup loads minimal configuration needed for cache operations.
// This is used by commands that need cache access without full shared setup.
func cacheSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get cache-related config values
	backend := schema.DatabaseBackend(viper.GetString("cache-backend"))
	connStr := viper.GetString("cache-db-connect")

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// Initialize the probe cache only; results tracking stays off here
	if err := iocache.InitStores(backend, connStr, "", ""); err != nil {
		return fmt.Errorf("failed to initialize cache: %w", err)
	}

	cfg.CacheBackend = backend
	cfg.CacheDBConnect = connStr

	return nil
}

// cacheSetupWrapper wraps cacheSetup to provide PreRunE for cache commands.
func cacheSetupWrapper(_ *cobra.Command, _ []string) error {
	return cacheSetup()
}

// cacheCmd focused on probe cache management.
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the URL probe cache (improves performance)",
	Long: `Manage the probe cache that speeds up repeated evaluations.

Metacheck caches URL probe outcomes so repeated runs over the same records
do not re-contact the same hosts. Entries expire after the configured TTL.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  status - Show cache statistics and connection info
  clear  - Remove all cached probe outcomes

Examples:
  # Check cache status
  metacheck cache status

  # Clear cache after hosts changed
  metacheck cache clear`,
}

// cacheClearCmd clears the probe cache.
var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached probe outcomes",
	Long: `Delete all cached URL probe outcomes from the configured backend.

Use this when:
- Previously dead hosts have come back
- Cache may be stale or corrupted
- Testing probe behavior without cache

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the cache table

Examples:
  # Clear SQLite cache (default)
  metacheck cache clear

  # Clear MySQL cache (set connection string via env variable)
  METACHECK_CACHE_BACKEND=mysql METACHECK_CACHE_DB_CONNECT="..." metacheck cache clear`,
	PreRunE: cacheSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		dbFilePath := cfg.CacheDBConnect
		if dbFilePath == "" {
			dbFilePath = contract.GetCacheDBFilePath()
		}
		if err := iocache.ClearCache(cfg.CacheBackend, dbFilePath, cfg.CacheDBConnect); err != nil {
			contract.LogFatal("Failed to clear cache", err)
		}
		fmt.Println("Cache cleared successfully.")
	},
}

// cacheStatusCmd shows probe cache status.
var cacheStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display cache statistics and connection details",
	Long: `Show detailed information about the probe cache.

Displays:
- Backend type and location
- Total number of cached probe outcomes
- Oldest and newest entry timestamps

Examples:
  # Check cache status
  metacheck cache status`,
	PreRunE: cacheSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := iocache.Manager.GetCacheStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get cache status", err)
		}
		iocache.PrintCacheStatus(status)
	},
}
