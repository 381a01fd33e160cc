// Package config resolves tasker settings from defaults, a TOML file,
// environment variables and command-line flags, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"tasker/internal/store"
)

const (
	// AppName is the application directory name.
	AppName = "tasker"

	// ConfigFile is the config filename inside the config directory.
	ConfigFile = "config.toml"

	// DefaultFile is the task file used when nothing else is configured.
	DefaultFile = "tasks.json"

	// DefaultLogLevel keeps stderr empty on successful runs.
	DefaultLogLevel = "warn"

	// DefaultLockTimeout bounds the wait for the task file lock.
	DefaultLockTimeout = store.DefaultLockTimeout
)

// Environment variables read by Load.
const (
	EnvFile        = "TASKER_FILE"
	EnvLogLevel    = "TASKER_LOG_LEVEL"
	EnvLock        = "TASKER_LOCK"
	EnvLockTimeout = "TASKER_LOCK_TIMEOUT"
)

// Duration is a time.Duration decoded from strings like "750ms" or "5s".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Config holds resolved settings.
type Config struct {
	// File is the task file path.
	File string `toml:"file"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"log_level"`

	// Lock enables the advisory lock around load and save.
	Lock bool `toml:"lock"`

	// LockTimeout bounds the wait for the lock.
	LockTimeout Duration `toml:"lock_timeout"`

	// Debug forces debug logging. Set by --debug.
	Debug bool `toml:"-"`

	// Source is the config file that was read, empty if none.
	Source string `toml:"-"`
}

// Options carries the flag values that override every other source.
type Options struct {
	// ConfigPath selects the config file. Empty means DefaultConfigPath,
	// which may be absent. An explicit path must exist.
	ConfigPath string

	// File overrides the task file path.
	File string

	// Debug enables debug logging.
	Debug bool
}

// New returns a Config with built-in defaults.
func New() *Config {
	return &Config{
		File:        DefaultFile,
		LogLevel:    DefaultLogLevel,
		LockTimeout: Duration{DefaultLockTimeout},
	}
}

// Load resolves configuration.
func Load(opts Options) (*Config, error) {
	cfg := New()

	path := opts.ConfigPath
	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath()
	}
	if path != "" {
		path = expandPath(path)
		if err := cfg.loadFile(path, explicit); err != nil {
			return nil, err
		}
	}

	if err := cfg.loadEnv(); err != nil {
		return nil, err
	}

	if opts.File != "" {
		cfg.File = opts.File
	}
	if opts.Debug {
		cfg.Debug = true
		cfg.LogLevel = "debug"
	}

	cfg.File = expandPath(cfg.File)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultConfigPath returns the default config file path.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
// Returns "" if no home directory can be determined.
func DefaultConfigPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName, ConfigFile)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", AppName, ConfigFile)
}

// Validate checks resolved values.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.File) == "" {
		return errors.New("task file path is empty")
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("invalid log level %q, must be one of: debug, info, warn, error", c.LogLevel)
	}
	if c.LockTimeout.Duration < 0 {
		return fmt.Errorf("invalid lock timeout %s, must not be negative", c.LockTimeout)
	}
	return nil
}

// loadFile decodes a TOML config file over c.
func (c *Config) loadFile(path string, mustExist bool) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) && !mustExist {
			return nil
		}
		return fmt.Errorf("read config file %s: %w", path, err)
	}

	md, err := toml.DecodeFile(path, c)
	if err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return fmt.Errorf("config file %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	c.Source = path
	return nil
}

// loadEnv overrides c from TASKER_* environment variables.
func (c *Config) loadEnv() error {
	if v := os.Getenv(EnvFile); v != "" {
		c.File = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv(EnvLock); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %q", EnvLock, v)
		}
		c.Lock = b
	}
	if v := os.Getenv(EnvLockTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %q", EnvLockTimeout, v)
		}
		c.LockTimeout = Duration{d}
	}
	return nil
}

// expandPath expands a leading ~ and environment variables.
func expandPath(p string) string {
	if p == "" {
		return p
	}

	expanded := os.ExpandEnv(p)
	if expanded != "~" && !strings.HasPrefix(expanded, "~/") {
		return expanded
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return expanded
	}
	if expanded == "~" {
		return home
	}
	return filepath.Join(home, expanded[2:])
}
