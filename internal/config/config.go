// Package config handles layered YAML configuration with environment overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all contactbook configuration.
type Config struct {
	Store Store `yaml:"store"`
	Log   Log   `yaml:"log"`
}

// Store selects and locates the key-value backend.
type Store struct {
	Backend string `yaml:"backend"` // "json" | "sqlite" | "memory"
	Dir     string `yaml:"dir"`
	Name    string `yaml:"name"` // Store identifier, e.g. "Contacts"
}

// Log holds logger settings.
type Log struct {
	Level string `yaml:"level"` // "debug" | "info" | "warn" | "error"
	File  string `yaml:"file"`  // Empty writes to stderr
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Store: Store{
			Backend: "json",
			Dir:     ".contactbook",
			Name:    "Contacts",
		},
		Log: Log{
			Level: "warn",
		},
	}
}

// Load reads a single YAML config file at path and returns a Config.
// For merging multiple config sources, use LoadLayered instead.
// If the file does not exist, defaults are returned without error.
// If the file contains invalid YAML or unknown fields, an error is returned.
func Load(path string) (*Config, error) {
	return LoadLayered(path)
}

// LoadLayered loads config from multiple paths with increasing priority.
// Later paths override earlier ones. Missing files are skipped.
func LoadLayered(paths ...string) (*Config, error) {
	cfg := DefaultConfig()

	for _, path := range paths {
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

// Validate checks that config values are usable.
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case "json", "sqlite":
		if c.Store.Dir == "" {
			return fmt.Errorf("config: store.dir cannot be empty for backend %q", c.Store.Backend)
		}
	case "memory":
		// no directory needed
	default:
		return fmt.Errorf("config: store.backend must be \"json\", \"sqlite\" or \"memory\", got %q", c.Store.Backend)
	}
	if c.Store.Name == "" {
		return errors.New("config: store.name cannot be empty")
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return fmt.Errorf("config: log.level must be one of debug, info, warn, error, got %q", c.Log.Level)
	}
	return nil
}

// ApplyEnv applies environment variable overrides to the config.
// Supported variables: CONTACTBOOK_STORE_BACKEND, CONTACTBOOK_STORE_DIR,
// CONTACTBOOK_STORE_NAME, CONTACTBOOK_LOG_LEVEL.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("CONTACTBOOK_STORE_BACKEND"); v != "" {
		c.Store.Backend = v
	}
	if v := os.Getenv("CONTACTBOOK_STORE_DIR"); v != "" {
		c.Store.Dir = v
	}
	if v := os.Getenv("CONTACTBOOK_STORE_NAME"); v != "" {
		c.Store.Name = v
	}
	if v := os.Getenv("CONTACTBOOK_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
}

// rawConfig mirrors Config but uses pointers to distinguish set vs unset fields.
type rawConfig struct {
	Store *rawStore `yaml:"store"`
	Log   *rawLog   `yaml:"log"`
}

type rawStore struct {
	Backend *string `yaml:"backend"`
	Dir     *string `yaml:"dir"`
	Name    *string `yaml:"name"`
}

type rawLog struct {
	Level *string `yaml:"level"`
	File  *string `yaml:"file"`
}

// loadLayer reads a single config file into a rawConfig for selective merging.
// Returns nil if the file does not exist. Rejects unknown fields.
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
		// Comment-only YAML files produce EOF with no decoded content.
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	return &raw, nil
}

// merge applies non-nil fields from a rawConfig layer onto this Config.
func (c *Config) merge(layer *rawConfig) {
	if layer.Store != nil {
		if layer.Store.Backend != nil {
			c.Store.Backend = *layer.Store.Backend
		}
		if layer.Store.Dir != nil {
			c.Store.Dir = *layer.Store.Dir
		}
		if layer.Store.Name != nil {
			c.Store.Name = *layer.Store.Name
		}
	}
	if layer.Log != nil {
		if layer.Log.Level != nil {
			c.Log.Level = *layer.Log.Level
		}
		if layer.Log.File != nil {
			c.Log.File = *layer.Log.File
		}
	}
}
