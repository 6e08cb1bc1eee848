// Package config loads filepurge settings and holds the compiled-in
// protection and category tables.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Defaults for scan and safety limits.
const (
	DefaultMaxFiles          = 5000
	DefaultMaxDepth          = 20
	DefaultMaxFileSizeMB     = 10240
	DefaultMinConfidence     = 0.7
	DefaultExcludeRecentDays = 7
	ProgressInterval         = 100
)

// Config is the on-disk YAML settings file. Every field has a default, so a
// missing file is not an error.
type Config struct {
	DataDir string `yaml:"data_dir"`

	MaxFiles      int     `yaml:"max_files"`
	MaxDepth      int     `yaml:"max_depth"`
	MaxFileSizeMB float64 `yaml:"max_file_size_mb"`

	MinConfidence     float64 `yaml:"min_confidence"`
	ExcludeRecentDays float64 `yaml:"exclude_recent_days"`
	Simulation        *bool   `yaml:"simulation"`

	// ExtraProtected extends the compiled-in system folder list.
	ExtraProtected []string `yaml:"extra_protected"`

	LogLevel string `yaml:"log_level"`
	LogFile  string `yaml:"log_file"`
}

// Default returns a config with all defaults applied.
func Default() Config {
	home, _ := os.UserHomeDir()
	sim := true
	return Config{
		DataDir:           filepath.Join(home, ".filepurge"),
		MaxFiles:          DefaultMaxFiles,
		MaxDepth:          DefaultMaxDepth,
		MaxFileSizeMB:     DefaultMaxFileSizeMB,
		MinConfidence:     DefaultMinConfidence,
		ExcludeRecentDays: DefaultExcludeRecentDays,
		Simulation:        &sim,
		LogLevel:          "info",
	}
}

// DefaultPath returns the config file location, honoring FILEPURGE_CONFIG.
func DefaultPath() string {
	if env := os.Getenv("FILEPURGE_CONFIG"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".filepurge", "config.yaml")
}

// Load reads the YAML config at path and fills in defaults for missing
// fields. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

// Save writes the config as YAML, creating parent directories.
func (c Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func (c *Config) applyDefaults() {
	d := Default()
	if c.DataDir == "" {
		c.DataDir = d.DataDir
	}
	if c.MaxFiles <= 0 {
		c.MaxFiles = d.MaxFiles
	}
	if c.MaxDepth <= 0 {
		c.MaxDepth = d.MaxDepth
	}
	if c.MaxFileSizeMB <= 0 {
		c.MaxFileSizeMB = d.MaxFileSizeMB
	}
	if c.MinConfidence <= 0 {
		c.MinConfidence = d.MinConfidence
	}
	if c.ExcludeRecentDays < 0 {
		c.ExcludeRecentDays = d.ExcludeRecentDays
	}
	if c.Simulation == nil {
		c.Simulation = d.Simulation
	}
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
}

// Simulate reports whether purge runs in simulation mode.
func (c Config) Simulate() bool {
	return c.Simulation == nil || *c.Simulation
}

// DBPath is the scan history database location.
func (c Config) DBPath() string {
	return filepath.Join(c.DataDir, "filepurge.db")
}

// FeedbackPath is the JSON feedback file location.
func (c Config) FeedbackPath() string {
	return filepath.Join(c.DataDir, "feedback.json")
}

// TrashDir is where non-permanent deletions are moved.
func (c Config) TrashDir() string {
	return filepath.Join(c.DataDir, "trash")
}
