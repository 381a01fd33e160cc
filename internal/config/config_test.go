package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gotest.tools/v3/assert"

	"tasker/internal/config"
	"tasker/internal/store"
)

// isolate points every config source at an empty temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)
	t.Setenv(config.EnvFile, "")
	t.Setenv(config.EnvLogLevel, "")
	t.Setenv(config.EnvLock, "")
	t.Setenv(config.EnvLockTimeout, "")
	return dir
}

func writeConfig(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := config.Load(config.Options{})

	require.NoError(t, err)
	assert.Equal(t, cfg.File, config.DefaultFile)
	assert.Equal(t, cfg.LogLevel, config.DefaultLogLevel)
	assert.Equal(t, cfg.Lock, false)
	assert.Equal(t, cfg.LockTimeout.Duration, config.DefaultLockTimeout)
	assert.Equal(t, config.DefaultLockTimeout, store.DefaultLockTimeout)
	assert.Equal(t, cfg.Source, "")
}

func TestLoad_DefaultConfigFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, config.AppName, config.ConfigFile)
	writeConfig(t, path, `
file = "/var/tmp/my-tasks.json"
log_level = "info"
lock = true
lock_timeout = "750ms"
`)

	cfg, err := config.Load(config.Options{})

	require.NoError(t, err)
	assert.Equal(t, cfg.File, "/var/tmp/my-tasks.json")
	assert.Equal(t, cfg.LogLevel, "info")
	assert.Equal(t, cfg.Lock, true)
	assert.Equal(t, cfg.LockTimeout.Duration, 750*time.Millisecond)
	assert.Equal(t, cfg.Source, path)
}

func TestLoad_Precedence(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.toml")
	writeConfig(t, path, `
file = "from-file.json"
log_level = "info"
`)

	t.Run("env overrides file", func(t *testing.T) {
		t.Setenv(config.EnvFile, "from-env.json")
		t.Setenv(config.EnvLock, "true")
		t.Setenv(config.EnvLockTimeout, "2s")

		cfg, err := config.Load(config.Options{ConfigPath: path})

		require.NoError(t, err)
		assert.Equal(t, cfg.File, "from-env.json")
		assert.Equal(t, cfg.LogLevel, "info")
		assert.Equal(t, cfg.Lock, true)
		assert.Equal(t, cfg.LockTimeout.Duration, 2*time.Second)
	})

	t.Run("flags override env", func(t *testing.T) {
		t.Setenv(config.EnvFile, "from-env.json")
		t.Setenv(config.EnvLogLevel, "error")

		cfg, err := config.Load(config.Options{ConfigPath: path, File: "from-flag.json", Debug: true})

		require.NoError(t, err)
		assert.Equal(t, cfg.File, "from-flag.json")
		assert.Equal(t, cfg.LogLevel, "debug")
		assert.Equal(t, cfg.Debug, true)
	})
}

func TestLoad_ExpandsHome(t *testing.T) {
	dir := isolate(t)

	cfg, err := config.Load(config.Options{File: "~/tasks.json"})

	require.NoError(t, err)
	assert.Equal(t, cfg.File, filepath.Join(dir, "tasks.json"))
}

func TestLoad_Errors(t *testing.T) {
	testCases := []struct {
		name        string
		config      string
		env         map[string]string
		explicit    bool
		errContains string
	}{
		{
			name:        "explicit config file missing",
			explicit:    true,
			errContains: "read config file",
		},
		{
			name:        "malformed toml",
			config:      `file = `,
			errContains: "parse config file",
		},
		{
			name:        "unknown key",
			config:      "file = \"a.json\"\ncolour = \"red\"\n",
			errContains: "unknown keys: colour",
		},
		{
			name:        "bad lock timeout in file",
			config:      `lock_timeout = "soon"`,
			errContains: "parse config file",
		},
		{
			name:        "bad log level",
			config:      `log_level = "loud"`,
			errContains: "invalid log level",
		},
		{
			name:        "bad lock env",
			env:         map[string]string{config.EnvLock: "maybe"},
			errContains: config.EnvLock,
		},
		{
			name:        "bad lock timeout env",
			env:         map[string]string{config.EnvLockTimeout: "forever"},
			errContains: config.EnvLockTimeout,
		},
		{
			name:        "negative lock timeout",
			config:      `lock_timeout = "-1s"`,
			errContains: "must not be negative",
		},
		{
			name:        "empty file path",
			config:      `file = "  "`,
			errContains: "task file path is empty",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			dir := isolate(t)
			path := filepath.Join(dir, "tasker.toml")
			if tc.config != "" {
				writeConfig(t, path, tc.config)
			}
			for k, v := range tc.env {
				t.Setenv(k, v)
			}

			opts := config.Options{}
			if tc.explicit || tc.config != "" {
				opts.ConfigPath = path
			}

			_, err := config.Load(opts)

			require.Error(t, err)
			require.ErrorContains(t, err, tc.errContains)
		})
	}
}

func TestDefaultConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	assert.Equal(t, config.DefaultConfigPath(), filepath.Join("/xdg", "tasker", "config.toml"))

	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("HOME", "/home/someone")
	assert.Equal(t, config.DefaultConfigPath(), filepath.Join("/home/someone", ".config", "tasker", "config.toml"))
}
