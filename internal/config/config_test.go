package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/speedwagon-io/ecomonitor/internal/config"
	"github.com/speedwagon-io/ecomonitor/internal/generator"
	"github.com/speedwagon-io/ecomonitor/internal/threshold"
)

func TestLoad(t *testing.T) {
	cfg, err := config.Load("testdata/full.yaml")
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, ":9091", cfg.HTTP.Address)
	assert.Equal(t, ":9090", cfg.Health.Address)
	assert.Equal(t, 2*time.Second, cfg.Monitor.RefreshInterval)
	assert.Equal(t, 500*time.Millisecond, cfg.Dashboard.ClockInterval)
	assert.Equal(t, threshold.Rule{WarningAbove: 70, ExceededAbove: 95}, cfg.Thresholds)

	require.Len(t, cfg.Monitor.Parameters, 2)
	assert.Equal(t, generator.Parameter{Code: "pm10", Label: "PM10", Unit: "µg/m³", Base: 50, Range: 30, Limit: 80}, cfg.Monitor.Parameters[1])

	assert.Equal(t, config.AdapterNATS, cfg.Publisher.Adapter)
	assert.Equal(t, "nats://broker:4222", cfg.Publisher.NATS.URL)
	assert.Equal(t, "eco.test", cfg.Publisher.NATS.Subject)
	assert.Equal(t, 5, cfg.Publisher.NATS.Retry.MaxAttempts)
	assert.Equal(t, 200*time.Millisecond, cfg.Publisher.NATS.Retry.InitialDelay)
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load("testdata/minimal.yaml")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "mock", cfg.Monitor.Source)
	assert.Equal(t, 5*time.Second, cfg.Monitor.RefreshInterval)
	assert.Equal(t, time.Second, cfg.Dashboard.ClockInterval)
	assert.Equal(t, 30*time.Millisecond, cfg.Dashboard.ProgressInterval)
	assert.Equal(t, 800*time.Millisecond, cfg.Dashboard.StatusInterval)
	assert.Equal(t, threshold.DefaultRule(), cfg.Thresholds)
	assert.Equal(t, generator.DefaultParameters(), cfg.Monitor.Parameters)
	assert.Equal(t, config.AdapterLog, cfg.Publisher.Adapter)
	assert.Equal(t, 8, cfg.Stream.Buffer)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("REFRESH_INTERVAL", "250ms")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := config.Load("testdata/minimal.yaml")
	require.NoError(t, err)

	assert.Equal(t, 250*time.Millisecond, cfg.Monitor.RefreshInterval)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadFromConfigPathEnv(t *testing.T) {
	path, err := filepath.Abs("testdata/full.yaml")
	require.NoError(t, err)
	t.Setenv("CONFIG_PATH", path)

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, ":9091", cfg.HTTP.Address)
}

func TestLoadValidation(t *testing.T) {
	_, err := config.Load("testdata/bad_limit.yaml")
	require.Error(t, err)
	assert.ErrorIs(t, err, threshold.ErrInvalidRule)
	assert.Contains(t, err.Error(), "limit must be positive")
}

func TestLoadInvalidFile(t *testing.T) {
	_, err := config.Load("testdata/broken.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file not found")

	assert.Panics(t, func() {
		config.MustLoad(filepath.Join(t.TempDir(), "absent.yaml"))
	})
}

func TestUnknownAdapter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("publisher:\n  adapter: kafka\n"), 0o600))

	_, err := config.Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown publisher adapter "kafka"`)
}
