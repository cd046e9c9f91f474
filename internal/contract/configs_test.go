package contract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oeg-upm/metacheck/schema"
)

// rawInput returns a minimally valid raw config.
func rawInput() *ConfigRawInput {
	return &ConfigRawInput{
		Inputs:       []string{"records/"},
		Output:       "text",
		Workers:      4,
		CacheBackend: "sqlite",
	}
}

func TestProcessAndValidate(t *testing.T) {
	t.Run("valid input populates config", func(t *testing.T) {
		cfg := &Config{}
		input := rawInput()
		input.ProbeTimeout = "30s"
		input.CacheTTL = "48h"
		input.SkipProbes = true

		require.NoError(t, ProcessAndValidate(cfg, input))
		assert.Equal(t, []string{"records/"}, cfg.Inputs)
		assert.Equal(t, schema.TextOut, cfg.Output)
		assert.Equal(t, 4, cfg.Workers)
		assert.Equal(t, 30*time.Second, cfg.ProbeTimeout)
		assert.Equal(t, 48*time.Hour, cfg.CacheTTL)
		assert.True(t, cfg.SkipProbes)
		assert.True(t, cfg.UseColors)
		assert.Equal(t, schema.SQLiteBackend, cfg.CacheBackend)
		assert.Equal(t, schema.NoneBackend, cfg.ResultsBackend)
	})

	t.Run("defaults fill empty durations", func(t *testing.T) {
		cfg := &Config{}
		require.NoError(t, ProcessAndValidate(cfg, rawInput()))
		assert.Equal(t, DefaultProbeTimeout, cfg.ProbeTimeout)
		assert.Equal(t, DefaultCacheTTL, cfg.CacheTTL)
	})

	t.Run("output mode is case-insensitive", func(t *testing.T) {
		cfg := &Config{}
		input := rawInput()
		input.Output = "JSON"
		require.NoError(t, ProcessAndValidate(cfg, input))
		assert.Equal(t, schema.JSONOut, cfg.Output)
	})

	t.Run("invalid output mode", func(t *testing.T) {
		cfg := &Config{}
		input := rawInput()
		input.Output = "yaml"
		assert.Error(t, ProcessAndValidate(cfg, input))
	})

	t.Run("non-positive workers fall back to default", func(t *testing.T) {
		cfg := &Config{}
		input := rawInput()
		input.Workers = 0
		require.NoError(t, ProcessAndValidate(cfg, input))
		assert.Equal(t, DefaultWorkers, cfg.Workers)
	})

	t.Run("workers above the cap are rejected", func(t *testing.T) {
		cfg := &Config{}
		input := rawInput()
		input.Workers = MaxWorkers + 1
		assert.Error(t, ProcessAndValidate(cfg, input))
	})

	t.Run("invalid probe timeout", func(t *testing.T) {
		cfg := &Config{}
		input := rawInput()
		input.ProbeTimeout = "soon"
		assert.Error(t, ProcessAndValidate(cfg, input))
	})

	t.Run("negative cache ttl", func(t *testing.T) {
		cfg := &Config{}
		input := rawInput()
		input.CacheTTL = "-1h"
		assert.Error(t, ProcessAndValidate(cfg, input))
	})

	t.Run("color flag parsed", func(t *testing.T) {
		cfg := &Config{}
		input := rawInput()
		input.Color = "no"
		require.NoError(t, ProcessAndValidate(cfg, input))
		assert.False(t, cfg.UseColors)
	})

	t.Run("invalid color flag", func(t *testing.T) {
		cfg := &Config{}
		input := rawInput()
		input.Color = "maybe"
		assert.Error(t, ProcessAndValidate(cfg, input))
	})

	t.Run("invalid cache backend", func(t *testing.T) {
		cfg := &Config{}
		input := rawInput()
		input.CacheBackend = "redis"
		assert.Error(t, ProcessAndValidate(cfg, input))
	})

	t.Run("empty results backend disables tracking", func(t *testing.T) {
		cfg := &Config{}
		require.NoError(t, ProcessAndValidate(cfg, rawInput()))
		assert.Equal(t, schema.NoneBackend, cfg.ResultsBackend)
	})

	t.Run("cache and results must not share a sqlite file", func(t *testing.T) {
		cfg := &Config{}
		input := rawInput()
		input.ResultsBackend = "sqlite"
		input.CacheDBConnect = "/tmp/shared.db"
		input.ResultsDBConnect = "/tmp/shared.db"
		err := ProcessAndValidate(cfg, input)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "different SQLite database files")
	})

	t.Run("separate sqlite files are fine", func(t *testing.T) {
		cfg := &Config{}
		input := rawInput()
		input.ResultsBackend = "sqlite"
		input.CacheDBConnect = "/tmp/cache.db"
		input.ResultsDBConnect = "/tmp/results.db"
		assert.NoError(t, ProcessAndValidate(cfg, input))
	})
}

func TestValidateDatabaseConnectionString(t *testing.T) {
	tests := []struct {
		name    string
		backend schema.DatabaseBackend
		connStr string
		wantErr bool
	}{
		{"sqlite accepts empty", schema.SQLiteBackend, "", false},
		{"none accepts anything", schema.NoneBackend, "whatever", false},
		{"mysql valid", schema.MySQLBackend, "user:pass@tcp(localhost:3306)/checks", false},
		{"mysql missing tcp", schema.MySQLBackend, "user:pass@localhost/checks", true},
		{"mysql empty", schema.MySQLBackend, "", true},
		{"postgres valid", schema.PostgreSQLBackend, "host=localhost port=5432 dbname=checks", false},
		{"postgres missing host", schema.PostgreSQLBackend, "dbname=checks", true},
		{"postgres missing dbname", schema.PostgreSQLBackend, "host=localhost", true},
		{"postgres empty", schema.PostgreSQLBackend, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDatabaseConnectionString(tt.backend, tt.connStr)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfigClone(t *testing.T) {
	orig := &Config{
		Inputs:  []string{"a.json", "b.json"},
		Workers: 8,
	}
	clone := orig.Clone()

	clone.Inputs[0] = "changed.json"
	clone.Workers = 1

	assert.Equal(t, "a.json", orig.Inputs[0], "clone must own its inputs slice")
	assert.Equal(t, 8, orig.Workers)
}
