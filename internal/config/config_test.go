package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_DefaultValues(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Address())
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, int64(1<<20), cfg.Server.MaxBodyBytes)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "basic", cfg.Forms.Default)
	assert.Empty(t, cfg.Forms.VariantsDir)
	assert.Equal(t, "regform", cfg.Theme.Name)
	assert.Equal(t, "light", cfg.Theme.Variant)
}

func TestLoadConfig_FromFile(t *testing.T) {
	clearEnv(t)

	configContent := `
server:
  host: "127.0.0.1"
  port: 9000
  read_timeout: 60s
log:
  level: "debug"
  format: "text"
forms:
  default: profile
  variants_dir: /etc/regform/forms
theme:
  variant: dark
`
	tmpFile := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(tmpFile, []byte(configContent), 0o644))

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, 60*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "profile", cfg.Forms.Default)
	assert.Equal(t, "/etc/regform/forms", cfg.Forms.VariantsDir)
	assert.Equal(t, "dark", cfg.Theme.Variant)
}

func TestLoadConfig_EnvironmentOverride(t *testing.T) {
	clearEnv(t)

	t.Setenv("REGFORM_SERVER_PORT", "3000")
	t.Setenv("REGFORM_LOG_LEVEL", "warn")
	t.Setenv("REGFORM_FORMS_DEFAULT", "academic")
	t.Setenv("REGFORM_CATALOG_FILE", "/srv/programs.yaml")

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "academic", cfg.Forms.Default)
	assert.Equal(t, "/srv/programs.yaml", cfg.Catalog.File)
}

func TestLoadConfig_FileNotFound_UsesDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig("/nonexistent/path/config.yaml")
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestLoadConfig_InvalidFile(t *testing.T) {
	clearEnv(t)

	tmpFile := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(tmpFile, []byte("invalid: yaml: content: [[["), 0o644))

	_, err := LoadConfig(tmpFile)
	assert.Error(t, err)
}

func TestLoadConfig_RejectsInvalidValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("REGFORM_LOG_FORMAT", "xml")

	_, err := LoadConfig("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log.format")

	clearEnv(t)
	t.Setenv("REGFORM_SERVER_PORT", "70000")
	_, err = LoadConfig("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server.port")
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)

	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("REGFORM_SERVER_PORT=4100\nREGFORM_LOG_LEVEL=debug\n"), 0o644))
	t.Setenv("REGFORM_LOG_LEVEL", "error")

	loaded, err := LoadDotEnv(envFile)
	require.NoError(t, err)
	assert.True(t, loaded)
	t.Cleanup(func() { _ = os.Unsetenv("REGFORM_SERVER_PORT") })

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, 4100, cfg.Server.Port)
	assert.Equal(t, "error", cfg.Log.Level, "existing environment wins over .env")

	loaded, err = LoadDotEnv(filepath.Join(dir, "missing.env"))
	require.NoError(t, err)
	assert.False(t, loaded)
}

func TestNewLogger_Formats(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LogConfig{Level: "info", Format: "json"}, &buf)
	logger.Info("hello", "variant", "basic")
	assert.True(t, strings.HasPrefix(buf.String(), "{"), "json handler output: %s", buf.String())
	assert.Contains(t, buf.String(), `"variant":"basic"`)

	buf.Reset()
	logger = NewLogger(LogConfig{Level: "info", Format: "text"}, &buf)
	logger.Info("hello", "variant", "basic")
	assert.Contains(t, buf.String(), "variant=basic")

	buf.Reset()
	logger = NewLogger(LogConfig{Level: "warn", Format: "text"}, &buf)
	logger.Info("dropped")
	assert.Empty(t, buf.String())
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"invalid": slog.LevelInfo,
	}
	for name, want := range cases {
		assert.Equal(t, want, ParseLevel(name), name)
	}
}

func TestSetupLogger(t *testing.T) {
	logger := SetupLogger(&Config{Log: LogConfig{Level: "debug", Format: "text"}})
	assert.NotNil(t, logger)
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, kv := range os.Environ() {
		key, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(key, EnvPrefix+"_") {
			t.Setenv(key, "")
			require.NoError(t, os.Unsetenv(key))
		}
	}
}
