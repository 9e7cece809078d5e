// Package config resolves figspec settings from defaults, a config file,
// the environment and command flags, in increasing order of precedence.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/figspec/internal/logging"
	"github.com/aretw0/figspec/pkg/domain"
)

// Store backends.
const (
	StoreFile  = "file"
	StoreRedis = "redis"
)

// SearchNames are tried in the working directory when no config path is given.
var SearchNames = []string{".figspec.yaml", ".figspec.yml", ".figspec.toml", ".figspec.json"}

// Config holds every setting the CLI and servers read.
type Config struct {
	StatePath        string `json:"state" yaml:"state" toml:"state"`
	Store            string `json:"store" yaml:"store" toml:"store"`
	UISystem         string `json:"uiSystem" yaml:"uiSystem" toml:"uiSystem"`
	MaxTextLen       int    `json:"maxTextLen" yaml:"maxTextLen" toml:"maxTextLen"`
	IncludeInvisible bool   `json:"includeInvisible" yaml:"includeInvisible" toml:"includeInvisible"`
	Absorb           bool   `json:"absorb" yaml:"absorb" toml:"absorb"`
	LogLevel         string `json:"logLevel" yaml:"logLevel" toml:"logLevel"`

	Redis RedisConfig `json:"redis" yaml:"redis" toml:"redis"`
}

// RedisConfig configures the Redis store.
type RedisConfig struct {
	Addr     string `json:"addr" yaml:"addr" toml:"addr"`
	Password string `json:"password" yaml:"password" toml:"password"`
	DB       int    `json:"db" yaml:"db" toml:"db"`
	Prefix   string `json:"prefix" yaml:"prefix" toml:"prefix"`
	// Key names the document; empty means the base name of StatePath.
	Key string `json:"key" yaml:"key" toml:"key"`
	// TTL is a Go duration string; empty means no expiry.
	TTL string `json:"ttl" yaml:"ttl" toml:"ttl"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		StatePath:  domain.DefaultStatePath,
		Store:      StoreFile,
		UISystem:   domain.UIKit,
		MaxTextLen: 200,
		Absorb:     true,
		LogLevel:   "warn",
		Redis: RedisConfig{
			Addr:   "localhost:6379",
			Prefix: "figspec:state:",
		},
	}
}

// Load reads defaults, then the config file, then the environment.
// path may be empty, in which case FIGSPEC_CONFIG and then SearchNames in
// the working directory are tried. It returns the file actually read, or "".
func Load(path string) (*Config, string, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("FIGSPEC_CONFIG")
	}
	if path == "" {
		path = search(".")
	}
	if path != "" {
		if err := loadFile(path, cfg); err != nil {
			return nil, "", err
		}
	}

	if err := cfg.ApplyEnvOverrides(); err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func search(dir string) string {
	for _, name := range SearchNames {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// loadFile decodes path over cfg based on its extension.
func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return fmt.Errorf("decode TOML %s: %w", path, err)
		}
	case ".json":
		if err := json.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("decode JSON %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("decode YAML %s: %w", path, err)
		}
	default:
		return fmt.Errorf("unsupported config format %q (want .yaml, .yml, .toml or .json)", filepath.Ext(path))
	}
	return nil
}

// ApplyEnvOverrides overlays FIGSPEC_* variables.
func (c *Config) ApplyEnvOverrides() error {
	if v := os.Getenv("FIGSPEC_STATE"); v != "" {
		c.StatePath = v
	}
	if v := os.Getenv("FIGSPEC_STORE"); v != "" {
		c.Store = v
	}
	if v := os.Getenv("FIGSPEC_UI_SYSTEM"); v != "" {
		c.UISystem = v
	}
	if v := os.Getenv("FIGSPEC_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}

	if v := os.Getenv("FIGSPEC_REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
	}
	if v := os.Getenv("FIGSPEC_REDIS_PASSWORD"); v != "" {
		c.Redis.Password = v
	}
	if v := os.Getenv("FIGSPEC_REDIS_KEY"); v != "" {
		c.Redis.Key = v
	}

	if v := os.Getenv("FIGSPEC_MAX_TEXT_LEN"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("FIGSPEC_MAX_TEXT_LEN: %w", err)
		}
		c.MaxTextLen = n
	}
	if v := os.Getenv("FIGSPEC_INCLUDE_INVISIBLE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("FIGSPEC_INCLUDE_INVISIBLE: %w", err)
		}
		c.IncludeInvisible = b
	}
	if v := os.Getenv("FIGSPEC_ABSORB"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("FIGSPEC_ABSORB: %w", err)
		}
		c.Absorb = b
	}
	return nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.StatePath == "" {
		return fmt.Errorf("state path must not be empty")
	}
	if c.Store != StoreFile && c.Store != StoreRedis {
		return fmt.Errorf("unknown store %q (want %s or %s)", c.Store, StoreFile, StoreRedis)
	}
	if !slices.Contains(domain.UISystems, c.UISystem) {
		return fmt.Errorf("unknown ui system %q (want one of %v)", c.UISystem, domain.UISystems)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if _, err := c.RedisTTL(); err != nil {
		return err
	}
	return nil
}

// RedisTTL parses Redis.TTL.
func (c *Config) RedisTTL() (time.Duration, error) {
	if c.Redis.TTL == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Redis.TTL)
	if err != nil {
		return 0, fmt.Errorf("redis ttl: %w", err)
	}
	return d, nil
}

// StateKey is the document key: Redis.Key when set for the Redis store,
// otherwise the state file's base name without its .json suffix.
func (c *Config) StateKey() string {
	if c.Store == StoreRedis && c.Redis.Key != "" {
		return c.Redis.Key
	}
	return strings.TrimSuffix(filepath.Base(c.StatePath), ".json")
}
