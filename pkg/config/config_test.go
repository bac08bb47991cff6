package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "https://www.info.gov.hk", cfg.BaseURL)
	assert.Equal(t, time.Now().Format("20060102"), cfg.StartDate)
	assert.Equal(t, 3, cfg.MaxConcurrency)
	assert.Equal(t, 80.0, cfg.MemoryThresholdPercent)
	assert.Equal(t, time.Second, cfg.MemoryCheckInterval)
	assert.Equal(t, 60*time.Second, cfg.PageLoadTimeout)
	assert.Equal(t, 2000, cfg.ChunkSize)
	assert.Equal(t, []string{"elastic"}, cfg.StoreBackends)
	assert.Equal(t, 48*time.Hour, cfg.VisitedTTL)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("MAX_CONCURRENCY", "5")
	t.Setenv("MEMORY_THRESHOLD_PERCENT", "65.5")
	t.Setenv("START_DATE", "20260101")
	t.Setenv("END_DATE", "20260131")
	t.Setenv("STORE_BACKENDS", "elastic, postgres")

	cfg := Load()

	assert.Equal(t, 5, cfg.MaxConcurrency)
	assert.Equal(t, 65.5, cfg.MemoryThresholdPercent)
	assert.Equal(t, "20260101", cfg.StartDate)
	assert.Equal(t, "20260131", cfg.EndDate)
	assert.Equal(t, []string{"elastic", "postgres"}, cfg.StoreBackends)
}

func TestLoadIgnoresUnparsableNumbers(t *testing.T) {
	t.Setenv("MAX_CONCURRENCY", "lots")

	cfg := Load()
	assert.Equal(t, 3, cfg.MaxConcurrency)
}

func TestBackendEnabled(t *testing.T) {
	cfg := &Config{StoreBackends: []string{"elastic", "postgres"}}

	assert.True(t, cfg.BackendEnabled("elastic"))
	assert.True(t, cfg.BackendEnabled("postgres"))
	assert.False(t, cfg.BackendEnabled("sqlite"))
}
