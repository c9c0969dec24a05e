package common

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultConfig(t *testing.T) {
	config := NewDefaultConfig()

	assert.Equal(t, "development", config.Environment)
	assert.Equal(t, "0.0.0.0", config.Server.Host)
	assert.Equal(t, 8080, config.Server.Port)
	assert.Equal(t, 100, config.Calculation.IRRMaxIterations)
	assert.Equal(t, 1e-4, config.Calculation.IRRTolerance)
	assert.Equal(t, "info", config.Logging.Level)
	assert.False(t, config.IsProduction())
}

func TestLoadConfig_FileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "folio.toml")
	content := `
environment = "production"

[server]
port = 9090

[calculation]
irr_max_iterations = 200
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "production", config.Environment)
	assert.True(t, config.IsProduction())
	assert.Equal(t, 9090, config.Server.Port)
	assert.Equal(t, 200, config.Calculation.IRRMaxIterations)

	// untouched fields keep their defaults
	assert.Equal(t, "0.0.0.0", config.Server.Host)
	assert.Equal(t, 1e-4, config.Calculation.IRRTolerance)
}

func TestLoadConfig_MissingFileSkipped(t *testing.T) {
	config, err := LoadConfig("/nonexistent/folio.toml")
	require.NoError(t, err)
	assert.Equal(t, 8080, config.Server.Port)
}

func TestLoadConfig_InvalidTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("this is not toml ==="), 0644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("FOLIO_ENV", "prod")
	t.Setenv("FOLIO_PORT", "7070")
	t.Setenv("FOLIO_LOG_LEVEL", "debug")
	t.Setenv("FOLIO_IRR_MAX_ITERATIONS", "50")
	t.Setenv("FOLIO_IRR_TOLERANCE", "0.001")

	config, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "prod", config.Environment)
	assert.True(t, config.IsProduction())
	assert.Equal(t, 7070, config.Server.Port)
	assert.Equal(t, "debug", config.Logging.Level)
	assert.Equal(t, 50, config.Calculation.IRRMaxIterations)
	assert.Equal(t, 0.001, config.Calculation.IRRTolerance)
}

func TestLoadConfig_BadEnvValuesIgnored(t *testing.T) {
	t.Setenv("FOLIO_PORT", "not-a-port")
	t.Setenv("FOLIO_IRR_MAX_ITERATIONS", "-5")
	t.Setenv("FOLIO_IRR_TOLERANCE", "0")

	config, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 8080, config.Server.Port)
	assert.Equal(t, 100, config.Calculation.IRRMaxIterations)
	assert.Equal(t, 1e-4, config.Calculation.IRRTolerance)
}

func TestServerConfig_TimeoutParsing(t *testing.T) {
	c := ServerConfig{ReadTimeout: "15s", WriteTimeout: "2m"}
	assert.Equal(t, 15*time.Second, c.GetReadTimeout())
	assert.Equal(t, 2*time.Minute, c.GetWriteTimeout())

	// unparseable values fall back
	bad := ServerConfig{ReadTimeout: "soon", WriteTimeout: ""}
	assert.Equal(t, 30*time.Second, bad.GetReadTimeout())
	assert.Equal(t, 60*time.Second, bad.GetWriteTimeout())
}
