// Package config loads tool configuration from a TOML file.
//
// The default location is ~/.config/linea/config.toml. Every field has a
// working default, so a missing file is not an error.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/Scripta-Qumranica-Electronica/linea/pkg/linear"
)

// Config holds all tunable settings.
type Config struct {
	// MaxOrders caps reading-order enumeration per line.
	MaxOrders int `toml:"max_orders"`

	Filter FilterConfig `toml:"filter"`
	Cache  CacheConfig  `toml:"cache"`
	Store  StoreConfig  `toml:"store"`
}

// FilterConfig controls which interpretations appear in text output.
type FilterConfig struct {
	// IncludeReconstructed keeps reconstructed readings in plain text.
	IncludeReconstructed bool `toml:"include_reconstructed"`
	// SignTypes lists the sign-type codes to render, e.g. ["LETTER", "SPACE"].
	// Empty means the default letter-and-space set.
	SignTypes []string `toml:"sign_types"`
}

// CacheConfig selects and configures the result cache.
type CacheConfig struct {
	// Backend is "file", "redis" or "none".
	Backend string `toml:"backend"`
	// Dir overrides the file cache directory.
	Dir string `toml:"dir"`

	Redis RedisConfig `toml:"redis"`
}

// RedisConfig mirrors the connection settings of the redis client.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// StoreConfig selects and configures the edition store.
type StoreConfig struct {
	// Backend is "file" or "mongo".
	Backend string `toml:"backend"`
	// Dir overrides the file store directory.
	Dir string `toml:"dir"`

	Mongo MongoConfig `toml:"mongo"`
}

// MongoConfig mirrors the connection settings of the mongo store.
type MongoConfig struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		MaxOrders: linear.DefaultMaxOrders,
		Cache:     CacheConfig{Backend: "file"},
		Store:     StoreConfig{Backend: "file"},
	}
}

// Path returns the default config file location.
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".config", "linea", "config.toml"), nil
}

// Load reads the config file at path, or the default location when path is
// empty. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		p, err := Path()
		if err != nil {
			return cfg, err
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if cfg.MaxOrders <= 0 {
		cfg.MaxOrders = linear.DefaultMaxOrders
	}
	return cfg, nil
}
