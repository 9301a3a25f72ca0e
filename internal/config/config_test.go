package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aretw0/reattach/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoad_YAMLAndEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	path := writeFile(t, "reattach.yaml", `
log_level: debug
mode: reattach-overrides
font_timeout: 5s
store:
  driver: sqlite
  path: reports.db
http:
  port: 9000
`)
	t.Setenv("REATTACH_HTTP_PORT", "9100")
	t.Setenv("REATTACH_LOCK_TTL", "1m")

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "reattach-overrides", cfg.Mode)
	assert.Equal(t, 5*time.Second, cfg.FontTimeout)
	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, 9100, cfg.HTTP.Port, "env wins over file")
	assert.Equal(t, time.Minute, cfg.Lock.TTL)
}

func TestLoad_JSON(t *testing.T) {
	t.Chdir(t.TempDir())
	path := writeFile(t, "reattach.json", `{"store": {"driver": "redis", "redis_addr": "localhost:6379", "redis_db": 2}}`)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "localhost:6379", cfg.Store.RedisAddr)
	assert.Equal(t, 2, cfg.Store.RedisDB)
}

func TestLoad_EnvFile(t *testing.T) {
	t.Chdir(t.TempDir())
	envFile := writeFile(t, "test.env", "REATTACH_STORE_DRIVER=memory\nREATTACH_LOG_LEVEL=warn\n")
	t.Setenv("REATTACH_LOG_LEVEL", "error")
	// godotenv sets variables it loads; register them for cleanup.
	t.Setenv("REATTACH_STORE_DRIVER", "")
	require.NoError(t, os.Unsetenv("REATTACH_STORE_DRIVER"))

	cfg, err := config.Load("", envFile)
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.Store.Driver)
	assert.Equal(t, "error", cfg.LogLevel, "process env is not overwritten")
}

func TestLoad_Invalid(t *testing.T) {
	t.Chdir(t.TempDir())

	path := writeFile(t, "bad.yaml", "store:\n  driver: redis\n")
	_, err := config.Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RedisAddr")

	path = writeFile(t, "bad-mode.yaml", "mode: explode\n")
	_, err = config.Load(path)
	assert.Error(t, err)

	t.Setenv("REATTACH_FONT_TIMEOUT", "soon")
	_, err = config.Load("")
	assert.ErrorContains(t, err, "REATTACH_FONT_TIMEOUT")
}

func TestLoad_StoreProtection(t *testing.T) {
	t.Chdir(t.TempDir())
	path := writeFile(t, "protected.yaml", `
store:
  driver: memory
  encryption_key: MDEyMzQ1Njc4OWFiY2RlZjAxMjM0NTY3ODlhYmNkZWY=
  redact: ['\d{3}-\d{4}']
`)
	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{`\d{3}-\d{4}`}, cfg.Store.Redact)

	t.Setenv("REATTACH_STORE_KEY", "not base64!")
	_, err = config.Load(path)
	assert.ErrorContains(t, err, "EncryptionKey")
}

func TestLoad_ModeAliases(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, mode := range []string{"reattachInstance", "copyOverrides"} {
		path := writeFile(t, "reattach.yaml", "mode: "+mode+"\n")
		cfg, err := config.Load(path)
		require.NoError(t, err, mode)
		assert.Equal(t, mode, cfg.Mode)
	}

	path := writeFile(t, "reattach.yaml", "mode: detach\n")
	_, err := config.Load(path)
	assert.ErrorContains(t, err, "Mode")
}
