package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("STORAGE_BACKEND", "")
	t.Setenv("LEDGER_STORAGE_KEY", "")
	t.Setenv("LEDGER_STRICT_AMOUNTS", "")
	t.Setenv("LOAD_ON_START", "")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, StorageSQLite, cfg.StorageBackend)
	assert.Equal(t, "earningsData", cfg.Ledger.StorageKey)
	assert.False(t, cfg.Ledger.StrictAmounts)
	assert.True(t, cfg.Ledger.LoadOnStart)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("STORAGE_BACKEND", "Memory")
	t.Setenv("LEDGER_STORAGE_KEY", "rider-42")
	t.Setenv("LEDGER_STRICT_AMOUNTS", "true")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "30")
	t.Setenv("CORS_ORIGINS", "http://a.test,http://b.test")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, StorageMemory, cfg.StorageBackend)
	assert.Equal(t, "rider-42", cfg.Ledger.StorageKey)
	assert.True(t, cfg.Ledger.StrictAmounts)
	assert.Equal(t, 30, cfg.RateLimitPerMinute)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
}

func TestConfig_Validate(t *testing.T) {
	valid := func() Config {
		return Config{
			Port:               "8080",
			StorageBackend:     StorageMemory,
			Ledger:             LedgerConfig{StorageKey: "earningsData"},
			RateLimitPerMinute: 60,
			RateLimitBurst:     5,
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"valid memory", func(c *Config) {}, ""},
		{"invalid port", func(c *Config) { c.Port = "abc" }, "invalid port 'abc'"},
		{"port out of range", func(c *Config) { c.Port = "70000" }, "invalid port '70000'"},
		{"blank storage key", func(c *Config) { c.Ledger.StorageKey = "  " }, "LEDGER_STORAGE_KEY is required"},
		{"zero rate limit", func(c *Config) { c.RateLimitBurst = 0 }, "must be positive"},
		{"unknown backend", func(c *Config) { c.StorageBackend = "redis" }, "unsupported STORAGE_BACKEND 'redis'"},
		{"sqlite without path", func(c *Config) { c.StorageBackend = StorageSQLite }, "SQLITE_PATH is required"},
		{"sqlite with path", func(c *Config) { c.StorageBackend = StorageSQLite; c.SQLitePath = "x.db" }, ""},
		{"postgres without url", func(c *Config) { c.StorageBackend = StoragePostgres }, "DATABASE_URL is required"},
		{"s3 without bucket", func(c *Config) { c.StorageBackend = StorageS3 }, "S3_BUCKET is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)

			err := cfg.validate()

			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
