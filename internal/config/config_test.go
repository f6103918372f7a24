package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kittclouds/moodreel/internal/logging"
)

// chdir into an empty directory so DefaultPaths never match a stray file.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr())
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
catalog:
  path: /srv/movies.csv
  derive_trailers: false
recommend:
  default_top_n: 8
server:
  port: 9090
  read_timeout: 3s
  cors_origins: [https://example.org]
history:
  driver: sqlite
  dsn: /var/lib/moodreel/history.db
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/srv/movies.csv", cfg.Catalog.Path)
	assert.False(t, cfg.Catalog.DeriveTrailers)
	assert.Equal(t, 8, cfg.Recommend.DefaultTopN)
	assert.Equal(t, 50, cfg.Recommend.MaxTopN)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 3*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, []string{"https://example.org"}, cfg.Server.CORSOrigins)
	assert.Equal(t, "sqlite", cfg.History.Driver)
}

func TestLoad_EnvOverridesDefaults(t *testing.T) {
	isolate(t)
	t.Setenv("MOODREEL_SERVER_PORT", "7000")
	t.Setenv("MOODREEL_CATALOG_PATH", "/env/movies.csv")
	t.Setenv("MOODREEL_LOGGING_LEVEL", "debug")
	t.Setenv("MOODREEL_SERVER_CORS_ORIGINS", "https://a.test, https://b.test")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 7000, cfg.Server.Port)
	assert.Equal(t, "/env/movies.csv", cfg.Catalog.Path)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, []string{"https://a.test", "https://b.test"}, cfg.Server.CORSOrigins)
}

func TestLoad_ConfigPathEnv(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "elsewhere.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 6060\n"), 0o644))
	t.Setenv(PathEnvVar, path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 6060, cfg.Server.Port)
}

func TestLoad_ValidationFails(t *testing.T) {
	isolate(t)
	t.Setenv("MOODREEL_HISTORY_DRIVER", "postgres")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation")
}

func TestValidate(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	cfg.Recommend.MaxTopN = 2
	assert.Error(t, cfg.Validate(), "max below default")

	cfg = Default()
	cfg.Server.Port = 0
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.History.Driver = "sqlite"
	cfg.History.DSN = ""
	assert.Error(t, cfg.Validate())
}

func TestValidate_AcceptsEveryLogLevel(t *testing.T) {
	for _, level := range logging.Levels {
		cfg := Default()
		cfg.Logging.Level = level
		assert.NoError(t, cfg.Validate(), level)
	}

	cfg := Default()
	cfg.Logging.Level = "verbose"
	assert.Error(t, cfg.Validate())
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "server.read_timeout", envKey("MOODREEL_SERVER_READ_TIMEOUT"))
	assert.Equal(t, "catalog.derive_trailers", envKey("MOODREEL_CATALOG_DERIVE_TRAILERS"))
	assert.Equal(t, "", envKey("MOODREEL_CONFIG"))
}
