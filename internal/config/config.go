// Package config loads todomvc settings from defaults, an optional TOML file,
// and TODOMVC_* environment variables. Command-line flags are applied last by
// the caller.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/Makepad-fr/todomvc/internal/logging"
	"github.com/Makepad-fr/todomvc/internal/persist"
	"github.com/Makepad-fr/todomvc/internal/store"
)

const (
	DefaultBackend   = store.BackendJSON
	DefaultRedisAddr = "localhost:6379"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)

// Config is the full application configuration.
type Config struct {
	// Key is the slot the task list is stored under.
	Key   string      `toml:"key"`
	Store StoreConfig `toml:"store"`
	Log   LogConfig   `toml:"log"`
	UI    UIConfig    `toml:"ui"`
}

type StoreConfig struct {
	Backend   string `toml:"backend"`
	Path      string `toml:"path"` // json file or sqlite database
	RedisAddr string `toml:"redis_addr"`
	RedisDB   int    `toml:"redis_db"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
	File   string `toml:"file"` // TUI sessions log only here
}

type UIConfig struct {
	NoColor bool `toml:"no_color"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Key: persist.DefaultKey,
		Store: StoreConfig{
			Backend:   DefaultBackend,
			RedisAddr: DefaultRedisAddr,
		},
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/todomvc/config.toml (or the platform
// equivalent).
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "todomvc", "config.toml")
}

// Load layers defaults, the TOML file at path, and the environment. An empty
// path tries DefaultPath and tolerates it being absent; an explicit path must
// exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if path != "" {
		if err := loadFile(&cfg, path); err != nil {
			if explicit || !errors.Is(err, os.ErrNotExist) {
				return cfg, err
			}
		}
	}
	if err := applyEnv(&cfg, os.LookupEnv); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func loadFile(cfg *Config, path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("config %s: %w", path, err)
	}
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		keys := make([]string, 0, len(undec))
		for _, k := range undec {
			keys = append(keys, k.String())
		}
		return fmt.Errorf("config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return nil
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	str := func(name string, dst *string) {
		if v, ok := lookup(name); ok && v != "" {
			*dst = v
		}
	}
	str("TODOMVC_KEY", &cfg.Key)
	str("TODOMVC_STORE", &cfg.Store.Backend)
	str("TODOMVC_PATH", &cfg.Store.Path)
	str("TODOMVC_REDIS_ADDR", &cfg.Store.RedisAddr)
	str("TODOMVC_LOG_LEVEL", &cfg.Log.Level)
	str("TODOMVC_LOG_FORMAT", &cfg.Log.Format)
	str("TODOMVC_LOG_FILE", &cfg.Log.File)

	if v, ok := lookup("TODOMVC_REDIS_DB"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("TODOMVC_REDIS_DB: %w", err)
		}
		cfg.Store.RedisDB = n
	}
	if _, ok := lookup("NO_COLOR"); ok {
		cfg.UI.NoColor = true
	}
	return nil
}

// Validate rejects settings no component can honour.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Key) == "" {
		errs = append(errs, errors.New("key must not be empty"))
	}
	if !slices.Contains(store.Backends, c.Store.Backend) {
		errs = append(errs, fmt.Errorf("store.backend %q: must be one of %v", c.Store.Backend, store.Backends))
	}
	if c.Store.Backend == store.BackendRedis && c.Store.RedisAddr == "" {
		errs = append(errs, errors.New("store.redis_addr is required for the redis backend"))
	}
	if c.Store.RedisDB < 0 {
		errs = append(errs, fmt.Errorf("store.redis_db %d: must not be negative", c.Store.RedisDB))
	}
	if !logging.ValidLevel(c.Log.Level) {
		errs = append(errs, fmt.Errorf("log.level %q: must be one of debug, info, warn, error", c.Log.Level))
	}
	if !logging.ValidFormat(c.Log.Format) {
		errs = append(errs, fmt.Errorf("log.format %q: must be one of text, json, logfmt", c.Log.Format))
	}
	return errors.Join(errs...)
}
