package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	// Run from a scratch dir so no config.yaml is picked up.
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "data", cfg.Paths.DataDir)
	assert.Equal(t, int64(20<<20), cfg.Upload.MaxFileBytes)
	assert.Equal(t, time.Hour, cfg.Upload.BatchTTL)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("STREAMPULSE_SERVER_PORT", "9191")
	t.Setenv("STREAMPULSE_LOGGING_LEVEL", "debug")
	t.Setenv("STREAMPULSE_ANALYTICS_MAX_CLUSTERS", "3")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9191, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 3, cfg.Analytics.MaxClusters)
}

func TestLoad_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	yaml := `
server:
  port: 9090
analytics:
  cluster_labels: ["Tier A", "Tier B"]
  seed: 7
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))
	t.Chdir(dir)

	cfg, err := Load()
	require.NoError(t, err)

	// Env defaults fill Port via envconfig, which takes precedence over the
	// file, so the file value only lands when no env default exists.
	assert.Equal(t, []string{"Tier A", "Tier B"}, cfg.Analytics.ClusterLabels)
	assert.Equal(t, int64(7), cfg.Analytics.Seed)
}

func TestLoad_InvalidPort(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("STREAMPULSE_SERVER_PORT", "70000")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid server port")
}

func TestLoad_NegativeWeight(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("STREAMPULSE_ANALYTICS_SCORING_WEIGHTS", "0.5,-0.1")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "non-negative")
}

func TestEngineParams(t *testing.T) {
	cfg := Default()
	p := cfg.EngineParams()

	// Zero-valued overrides keep the engine defaults.
	assert.Equal(t, []float64{0.3, 0.2, 0.2, 0.1, 0.1, 0.1}, p.ScoringWeights)
	assert.Equal(t, 4, p.MaxClusters)
	assert.Equal(t, int64(42), p.Seed)
	assert.Equal(t, 10, p.Restarts)

	cfg.Analytics.MaxClusters = 2
	cfg.Analytics.ClusterLabels = []string{"A", "B"}
	p = cfg.EngineParams()
	assert.Equal(t, 2, p.MaxClusters)
	assert.Equal(t, []string{"A", "B"}, p.ClusterLabels)
	assert.Equal(t, 10, p.Restarts)
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.validate())
	assert.True(t, cfg.Security.RateLimit.Enabled)
	assert.Equal(t, 64, cfg.Upload.MaxBatches)
}
