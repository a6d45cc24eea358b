// Package config loads swcatalog settings from YAML files, the environment
// and built-in defaults, in that order of precedence.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all swcatalog configuration.
type Config struct {
	API      API      `yaml:"api"`
	Resolver Resolver `yaml:"resolver"`
	Log      Log      `yaml:"log"`
	Serve    Serve    `yaml:"serve"`
}

// API holds upstream client settings.
type API struct {
	BaseURL       string        `yaml:"base_url"`
	Timeout       time.Duration `yaml:"timeout"`
	UserAgent     string        `yaml:"user_agent"`
	RatePerSecond float64       `yaml:"rate_per_second"`
	MaxRetries    int           `yaml:"max_retries"` // 0 disables retries
}

// Resolver holds cross-reference resolution settings.
type Resolver struct {
	Concurrency int `yaml:"concurrency"` // related fetches in flight per resolve
}

// Log holds logging settings.
type Log struct {
	File string `yaml:"file"` // empty: discard in TUI mode, stderr otherwise
}

// Serve holds HTTP surface settings.
type Serve struct {
	Addr string `yaml:"addr"`
}

// DefaultConfig returns the built-in settings, pointed at the public API.
func DefaultConfig() Config {
	return Config{
		API: API{
			BaseURL:       "https://swapi.info/api",
			Timeout:       15 * time.Second,
			UserAgent:     "swcatalog/dev",
			RatePerSecond: 10,
		},
		Resolver: Resolver{
			Concurrency: 4,
		},
		Serve: Serve{
			Addr: "127.0.0.1:8080",
		},
	}
}

// DefaultPaths returns the user and project config paths in increasing
// priority. The user path is omitted when the home directory is unknown.
func DefaultPaths() []string {
	var paths []string
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "swcatalog", "config.yaml"))
	}
	return append(paths, ".swcatalog.yaml")
}

// Load decodes one file over the defaults. A missing or empty file yields
// the defaults; malformed YAML and unknown keys are errors.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if len(data) == 0 {
		return &cfg, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
				if errors.Is(err, io.EOF) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	return &cfg, nil
}

// LoadLayered applies each file in paths over the defaults; later files win
// key by key. Empty and missing paths are skipped.
func LoadLayered(paths ...string) (*Config, error) {
	cfg := DefaultConfig()

	for _, path := range paths {
		if path == "" {
			continue
		}
		layer, err := loadLayer(path)
		if err != nil {
			return nil, err
		}
		if layer == nil {
			continue
		}
		cfg.merge(layer)
	}

	return &cfg, nil
}

// Validate rejects settings the client or resolver cannot run with.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return errors.New("config: api.base_url cannot be empty")
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("config: api.timeout must be positive, got %v", c.API.Timeout)
	}
	if c.API.RatePerSecond <= 0 {
		return fmt.Errorf("config: api.rate_per_second must be positive, got %v", c.API.RatePerSecond)
	}
	if c.API.MaxRetries < 0 {
		return fmt.Errorf("config: api.max_retries must be non-negative, got %d", c.API.MaxRetries)
	}
	if c.Resolver.Concurrency <= 0 {
		return fmt.Errorf("config: resolver.concurrency must be positive, got %d", c.Resolver.Concurrency)
	}
	return nil
}

// ApplyEnv overrides settings from SWCATALOG_* variables.
// Supported variables: SWCATALOG_BASE_URL, SWCATALOG_TIMEOUT,
// SWCATALOG_RATE_PER_SECOND, SWCATALOG_MAX_RETRIES, SWCATALOG_LOG_FILE,
// SWCATALOG_ADDR.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("SWCATALOG_BASE_URL"); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv("SWCATALOG_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("config: invalid SWCATALOG_TIMEOUT %q: %w", v, err)
		}
		c.API.Timeout = d
	}
	if v := os.Getenv("SWCATALOG_RATE_PER_SECOND"); v != "" {
		r, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("config: invalid SWCATALOG_RATE_PER_SECOND %q: %w", v, err)
		}
		c.API.RatePerSecond = r
	}
	if v := os.Getenv("SWCATALOG_MAX_RETRIES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: invalid SWCATALOG_MAX_RETRIES %q: %w", v, err)
		}
		c.API.MaxRetries = n
	}
	if v := os.Getenv("SWCATALOG_LOG_FILE"); v != "" {
		c.Log.File = v
	}
	if v := os.Getenv("SWCATALOG_ADDR"); v != "" {
		c.Serve.Addr = v
	}
	return nil
}

// rawConfig is one file layer; nil pointers mark keys the file leaves unset.
type rawConfig struct {
	API      *rawAPI      `yaml:"api"`
	Resolver *rawResolver `yaml:"resolver"`
	Log      *rawLog      `yaml:"log"`
	Serve    *rawServe    `yaml:"serve"`
}

type rawAPI struct {
	BaseURL       *string        `yaml:"base_url"`
	Timeout       *time.Duration `yaml:"timeout"`
	UserAgent     *string        `yaml:"user_agent"`
	RatePerSecond *float64       `yaml:"rate_per_second"`
	MaxRetries    *int           `yaml:"max_retries"`
}

type rawResolver struct {
	Concurrency *int `yaml:"concurrency"`
}

type rawLog struct {
	File *string `yaml:"file"`
}

type rawServe struct {
	Addr *string `yaml:"addr"`
}

// loadLayer decodes path into a rawConfig, or returns nil when there is
// nothing to merge.
func loadLayer(path string) (*rawConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if len(data) == 0 {
		return nil, nil
	}

	var raw rawConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	return &raw, nil
}

// merge copies the keys set in layer.
func (c *Config) merge(layer *rawConfig) {
	if a := layer.API; a != nil {
		if a.BaseURL != nil {
			c.API.BaseURL = *a.BaseURL
		}
		if a.Timeout != nil {
			c.API.Timeout = *a.Timeout
		}
		if a.UserAgent != nil {
			c.API.UserAgent = *a.UserAgent
		}
		if a.RatePerSecond != nil {
			c.API.RatePerSecond = *a.RatePerSecond
		}
		if a.MaxRetries != nil {
			c.API.MaxRetries = *a.MaxRetries
		}
	}
	if layer.Resolver != nil && layer.Resolver.Concurrency != nil {
		c.Resolver.Concurrency = *layer.Resolver.Concurrency
	}
	if layer.Log != nil && layer.Log.File != nil {
		c.Log.File = *layer.Log.File
	}
	if layer.Serve != nil && layer.Serve.Addr != nil {
		c.Serve.Addr = *layer.Serve.Addr
	}
}
