package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the felld configuration.
type Config struct {
	MaxBlocks      int    `yaml:"max_blocks" json:"max_blocks"`
	OmitStartBlock bool   `yaml:"omit_start_block" json:"omit_start_block"`
	BlocksFile     string `yaml:"blocks_file" json:"blocks_file"` // minecraft-data blocks.json[.zst], empty = built-in
	TagsFile       string `yaml:"tags_file" json:"tags_file"`     // tag pack, empty = built-in
	Seed           int64  `yaml:"seed" json:"seed"`
	Terrain        string `yaml:"terrain" json:"terrain"` // "flat" or "hills"
	Trees          int    `yaml:"trees" json:"trees"`
	ForestRadius   int    `yaml:"forest_radius" json:"forest_radius"`
	MetricsAddr    string `yaml:"metrics_addr" json:"metrics_addr"` // empty = no metrics endpoint
	LogLevel       string `yaml:"log_level" json:"log_level"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		MaxBlocks:    256,
		Trees:        8,
		Terrain:      "flat",
		ForestRadius: 24,
		LogLevel:     "info",
	}
}

// Load reads a YAML config file. Fields missing from the file keep their
// default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.MaxBlocks <= 0 {
		return fmt.Errorf("max_blocks must be positive, got %d", c.MaxBlocks)
	}
	if c.Trees < 0 {
		return fmt.Errorf("trees cannot be negative")
	}
	if c.Terrain != "flat" && c.Terrain != "hills" {
		return fmt.Errorf("terrain must be flat or hills, got %q", c.Terrain)
	}
	if c.ForestRadius < 0 {
		return fmt.Errorf("forest_radius cannot be negative")
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.ToUpper(c.LogLevel))); err != nil {
		return 0, fmt.Errorf("log_level %q: %w", c.LogLevel, err)
	}
	return l, nil
}

// Merge applies file-loaded config values into cfg, but only for fields
// that were NOT explicitly set via CLI flags. explicitFlags contains the
// flag names that were explicitly provided on the command line.
func Merge(cfg *Config, fromFile *Config, explicitFlags map[string]bool) {
	if !explicitFlags["max-blocks"] {
		cfg.MaxBlocks = fromFile.MaxBlocks
	}
	if !explicitFlags["omit-start"] {
		cfg.OmitStartBlock = fromFile.OmitStartBlock
	}
	if !explicitFlags["blocks"] {
		cfg.BlocksFile = fromFile.BlocksFile
	}
	if !explicitFlags["tags"] {
		cfg.TagsFile = fromFile.TagsFile
	}
	if !explicitFlags["seed"] {
		cfg.Seed = fromFile.Seed
	}
	if !explicitFlags["terrain"] {
		cfg.Terrain = fromFile.Terrain
	}
	if !explicitFlags["trees"] {
		cfg.Trees = fromFile.Trees
	}
	if !explicitFlags["radius"] {
		cfg.ForestRadius = fromFile.ForestRadius
	}
	if !explicitFlags["metrics-addr"] {
		cfg.MetricsAddr = fromFile.MetricsAddr
	}
	if !explicitFlags["log-level"] {
		cfg.LogLevel = fromFile.LogLevel
	}
}
