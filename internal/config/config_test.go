package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdirTemp moves into an empty directory so no stray .env is picked up.
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func TestLoadDefaults(t *testing.T) {
	chdirTemp(t)
	t.Setenv("DATA_DIR", "/tmp/fitlog-test")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultPort, cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Origins())
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, DefaultFitbitTimeout, cfg.Fitbit.Timeout)
	assert.Equal(t, "/tmp/fitlog-test/data.json", cfg.Paths().DataFile())
	assert.False(t, cfg.FitbitConfigured())
}

func TestLoadPrecedence(t *testing.T) {
	dir := chdirTemp(t)
	yamlPath := filepath.Join(dir, "fitlog.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(`
server:
  port: 4000
  cors_origins: "http://localhost:5173, http://127.0.0.1:5173"
log:
  format: console
fitbit:
  client_id: from-yaml
  timeout: 3s
`), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("FITBIT_CLIENT_SECRET=from-dotenv\nFITBIT_REDIRECT_URI=http://localhost:4000/auth/fitbit/callback\n"), 0o600))
	t.Setenv("PORT", "5000")
	t.Setenv("DATA_DIR", dir)

	cfg, err := Load(yamlPath)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = os.Unsetenv("FITBIT_CLIENT_SECRET")
		_ = os.Unsetenv("FITBIT_REDIRECT_URI")
	})

	assert.Equal(t, 5000, cfg.Server.Port, "env overrides yaml")
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 3*time.Second, cfg.Fitbit.Timeout)
	assert.Equal(t, []string{"http://localhost:5173", "http://127.0.0.1:5173"}, cfg.Origins())
	assert.Equal(t, "from-yaml", cfg.Fitbit.ClientID)
	assert.Equal(t, "from-dotenv", cfg.Fitbit.ClientSecret)
	assert.True(t, cfg.FitbitConfigured())
}

func TestValidate(t *testing.T) {
	base := Config{
		Server: ServerConfig{Port: 3001},
		Log:    LogConfig{Format: "json"},
		Fitbit: FitbitConfig{Timeout: time.Second},
	}
	require.NoError(t, base.Validate())

	bad := base
	bad.Server.Port = 70000
	assert.Error(t, bad.Validate())

	bad = base
	bad.Log.Format = "xml"
	assert.Error(t, bad.Validate())

	bad = base
	bad.Fitbit.Timeout = -time.Second
	assert.Error(t, bad.Validate())
}

func TestLoadMissingConfigFile(t *testing.T) {
	chdirTemp(t)
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
