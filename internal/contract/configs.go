package contract

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/oeg-upm/metacheck/schema"
)

// Default values for configuration.
const (
	DefaultProbeTimeout = 10 * time.Second
	DefaultCacheTTL     = 24 * time.Hour
	MaxWorkers          = 64
)

// DefaultWorkers is the default number of concurrent workers to use.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// Config holds the runtime configuration for a batch evaluation.
// This struct remains the "final, validated" config.
type Config struct {
	Inputs       []string // Record documents or directories holding them
	FindingsDir  string   // Directory for per-repo finding documents
	SummaryFile  string   // File path for the aggregate summary ("" = stdout)
	Output       schema.OutputMode
	Workers      int
	ProbeTimeout time.Duration
	SkipProbes   bool // Classify every probe as inaccessible-without-I/O; offline runs
	UseColors    bool

	CacheBackend   schema.DatabaseBackend
	CacheDBConnect string // Please use env var as this is plaintext
	CacheTTL       time.Duration

	ResultsBackend   schema.DatabaseBackend
	ResultsDBConnect string // Please use env var as this is plaintext
}

// Clone returns a shallow copy of the config with its own inputs slice.
func (c *Config) Clone() *Config {
	clone := *c
	clone.Inputs = append([]string(nil), c.Inputs...)
	return &clone
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// Set manually from positional args, so no tag
	Inputs []string

	FindingsDir      string `mapstructure:"findings-dir"`
	SummaryFile      string `mapstructure:"summary-file"`
	Output           string `mapstructure:"output"`
	Workers          int    `mapstructure:"workers"`
	ProbeTimeout     string `mapstructure:"probe-timeout"`
	SkipProbes       bool   `mapstructure:"skip-probes"`
	Color            string `mapstructure:"color"`
	CacheBackend     string `mapstructure:"cache-backend"`
	CacheDBConnect   string `mapstructure:"cache-db-connect"`
	CacheTTL         string `mapstructure:"cache-ttl"`
	ResultsBackend   string `mapstructure:"results-backend"`
	ResultsDBConnect string `mapstructure:"results-db-connect"`
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	cfg.Inputs = input.Inputs
	cfg.FindingsDir = input.FindingsDir
	cfg.SummaryFile = input.SummaryFile
	cfg.SkipProbes = input.SkipProbes

	switch out := schema.OutputMode(strings.ToLower(input.Output)); out {
	case schema.TextOut, schema.JSONOut, schema.CSVOut:
		cfg.Output = out
	default:
		return fmt.Errorf("invalid output mode '%s'. must be text, json, csv", input.Output)
	}

	cfg.Workers = input.Workers
	if cfg.Workers < 1 {
		cfg.Workers = DefaultWorkers
	}
	if cfg.Workers > MaxWorkers {
		return fmt.Errorf("workers must be at most %d, got %d", MaxWorkers, cfg.Workers)
	}

	var err error
	cfg.ProbeTimeout, err = parseDurationDefault(input.ProbeTimeout, DefaultProbeTimeout)
	if err != nil {
		return fmt.Errorf("invalid probe-timeout: %w", err)
	}
	cfg.CacheTTL, err = parseDurationDefault(input.CacheTTL, DefaultCacheTTL)
	if err != nil {
		return fmt.Errorf("invalid cache-ttl: %w", err)
	}

	cfg.UseColors, err = ParseBoolString(defaultString(input.Color, "yes"))
	if err != nil {
		return fmt.Errorf("invalid color flag: %w", err)
	}

	return validateBackendConfigs(cfg, input)
}

// ValidateDatabaseConnectionString validates the format of database connection
// strings for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateBackendConfigs validates cache and results backend configurations.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	cfg.CacheBackend = schema.DatabaseBackend(strings.ToLower(input.CacheBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.CacheBackend]; !ok {
		return fmt.Errorf("invalid cache backend '%s'. must be sqlite, mysql, postgresql, none", input.CacheBackend)
	}
	cfg.CacheDBConnect = input.CacheDBConnect
	if err := ValidateDatabaseConnectionString(cfg.CacheBackend, cfg.CacheDBConnect); err != nil {
		return err
	}

	cfg.ResultsBackend = schema.DatabaseBackend(strings.ToLower(input.ResultsBackend))
	if cfg.ResultsBackend == "" {
		cfg.ResultsBackend = schema.NoneBackend
		return nil
	}
	if _, ok := schema.ValidDatabaseBackends[cfg.ResultsBackend]; !ok {
		return fmt.Errorf("invalid results backend '%s'. must be sqlite, mysql, postgresql, none", input.ResultsBackend)
	}
	cfg.ResultsDBConnect = input.ResultsDBConnect
	if err := ValidateDatabaseConnectionString(cfg.ResultsBackend, cfg.ResultsDBConnect); err != nil {
		return err
	}

	// Cache and results must not share one SQLite file
	if cfg.CacheBackend == schema.SQLiteBackend && cfg.ResultsBackend == schema.SQLiteBackend {
		cachePath := cfg.CacheDBConnect
		if cachePath == "" {
			cachePath = GetCacheDBFilePath()
		}
		resultsPath := cfg.ResultsDBConnect
		if resultsPath == "" {
			resultsPath = GetResultsDBFilePath()
		}
		if cachePath == resultsPath {
			return fmt.Errorf("cache and results storage must use different SQLite database files. Both resolve to %q", cachePath)
		}
	}

	return nil
}

func parseDurationDefault(s string, fallback time.Duration) (time.Duration, error) {
	if strings.TrimSpace(s) == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("duration must be positive, got %s", s)
	}
	return d, nil
}

func defaultString(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
