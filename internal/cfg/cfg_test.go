package cfg_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vgsales-predictor/internal/cfg"
)

func TestLoad_Defaults(t *testing.T) {
	c, err := cfg.Load()
	require.NoError(t, err)

	assert.Equal(t, "data/vgsales.csv", c.DataPath)
	assert.Equal(t, 10, c.Estimators)
	assert.Equal(t, int64(42), c.Seed)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, "vgsales.png", c.ChartPath)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("VGS_DATA_PATH", "/tmp/other.csv")
	t.Setenv("VGS_ESTIMATORS", "25")
	t.Setenv("VGS_LOG_LEVEL", "debug")

	c, err := cfg.Load()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/other.csv", c.DataPath)
	assert.Equal(t, 25, c.Estimators)
	assert.Equal(t, "debug", c.LogLevel)
}

func TestLoad_FileThenEnvPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("estimators: 5\nseed: 7\n"), 0o644))
	t.Setenv("VGS_CONFIG", path)
	t.Setenv("VGS_ESTIMATORS", "20")

	c, err := cfg.Load()
	require.NoError(t, err)

	// Env beats file; file beats defaults.
	assert.Equal(t, 20, c.Estimators)
	assert.Equal(t, int64(7), c.Seed)
}

func TestLoad_RejectsBadEstimators(t *testing.T) {
	t.Setenv("VGS_ESTIMATORS", "0")

	_, err := cfg.Load()
	assert.Error(t, err)
}
