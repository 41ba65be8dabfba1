package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alvmarrod/web-pathfinder/internal/resolver"
	"github.com/alvmarrod/web-pathfinder/internal/search"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Search profiles
const (
	ProfileClassic  = "classic"
	ProfileExtended = "extended"
)

// Config holds all runtime configuration parameters
type Config struct {
	ListenAddr       string   `json:"listen_addr" yaml:"listen_addr"`
	WSPath           string   `json:"ws_path" yaml:"ws_path"`
	MetricsPath      string   `json:"metrics_path" yaml:"metrics_path"`
	LogLevel         string   `json:"log_level" yaml:"log_level"`
	Profile          string   `json:"profile" yaml:"profile"`
	MaxDepth         int      `json:"max_depth" yaml:"max_depth"`
	BranchLimit      int      `json:"branch_limit" yaml:"branch_limit"`
	IDSMaxDepth      int      `json:"ids_max_depth" yaml:"ids_max_depth"`
	DefaultMaxNodes  int      `json:"default_max_nodes" yaml:"default_max_nodes"`
	RequestTimeoutMs int      `json:"request_timeout_ms" yaml:"request_timeout_ms"`
	UserAgent        string   `json:"user_agent" yaml:"user_agent"`
	StepDelayMs      int      `json:"step_delay_ms" yaml:"step_delay_ms"`
	ChildDelayMs     int      `json:"child_delay_ms" yaml:"child_delay_ms"`
	RestartDelayMs   int      `json:"restart_delay_ms" yaml:"restart_delay_ms"`
	ReservedMarkers  []string `json:"reserved_markers" yaml:"reserved_markers"`
}

// Default returns a configuration with every default applied
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// LoadConfig reads and validates configuration from a JSON or YAML file.
// An empty path returns the defaults.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	// Apply defaults for missing values
	applyDefaults(&cfg)

	// Validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for unspecified fields
func applyDefaults(cfg *Config) {
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":8000"
	}
	if cfg.WSPath == "" {
		cfg.WSPath = "/ws"
	}
	if cfg.MetricsPath == "" {
		cfg.MetricsPath = "metrics.log"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.Profile == "" {
		cfg.Profile = ProfileExtended
	}

	profile := search.ExtendedOptions()
	if cfg.Profile == ProfileClassic {
		profile = search.ClassicOptions()
	}
	if cfg.MaxDepth == 0 {
		cfg.MaxDepth = profile.MaxDepth
	}
	if cfg.BranchLimit == 0 {
		cfg.BranchLimit = profile.BranchLimit
	}
	if cfg.IDSMaxDepth == 0 {
		cfg.IDSMaxDepth = profile.IDSMaxDepth
	}
	if cfg.StepDelayMs == 0 {
		cfg.StepDelayMs = int(profile.StepDelay.Milliseconds())
	}
	if cfg.ChildDelayMs == 0 {
		cfg.ChildDelayMs = int(profile.ChildDelay.Milliseconds())
	}
	if cfg.RestartDelayMs == 0 {
		cfg.RestartDelayMs = int(profile.RestartDelay.Milliseconds())
	}

	if cfg.DefaultMaxNodes == 0 {
		cfg.DefaultMaxNodes = search.DefaultMaxNodes
	}
	if cfg.RequestTimeoutMs == 0 {
		cfg.RequestTimeoutMs = 5000
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "Mozilla/5.0 (Educational Project)"
	}
	if cfg.ReservedMarkers == nil {
		cfg.ReservedMarkers = append([]string(nil), resolver.DefaultReservedMarkers...)
	}
}

// validate checks that values are sensible
func validate(cfg *Config) error {
	if cfg.Profile != ProfileClassic && cfg.Profile != ProfileExtended {
		return fmt.Errorf("profile must be %q or %q", ProfileClassic, ProfileExtended)
	}
	if _, err := logrus.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	if !strings.HasPrefix(cfg.WSPath, "/") {
		return fmt.Errorf("ws_path must start with /")
	}
	if cfg.MaxDepth < 1 {
		return fmt.Errorf("max_depth must be >= 1")
	}
	if cfg.BranchLimit < 1 {
		return fmt.Errorf("branch_limit must be >= 1")
	}
	if cfg.IDSMaxDepth < 1 {
		return fmt.Errorf("ids_max_depth must be >= 1")
	}
	if cfg.DefaultMaxNodes < 1 {
		return fmt.Errorf("default_max_nodes must be >= 1")
	}
	if cfg.RequestTimeoutMs < 100 {
		return fmt.Errorf("request_timeout_ms must be >= 100")
	}
	if cfg.StepDelayMs < 0 || cfg.ChildDelayMs < 0 || cfg.RestartDelayMs < 0 {
		return fmt.Errorf("delays must not be negative")
	}
	return nil
}

// SearchOptions converts the configuration into engine bounds
func (c *Config) SearchOptions() search.Options {
	opts := search.ExtendedOptions()
	if c.Profile == ProfileClassic {
		opts = search.ClassicOptions()
	}

	opts.MaxDepth = c.MaxDepth
	opts.BranchLimit = c.BranchLimit
	opts.IDSMaxDepth = c.IDSMaxDepth
	opts.StepDelay = time.Duration(c.StepDelayMs) * time.Millisecond
	opts.ChildDelay = time.Duration(c.ChildDelayMs) * time.Millisecond
	opts.RestartDelay = time.Duration(c.RestartDelayMs) * time.Millisecond
	return opts
}

// ResolverConfig converts the configuration into fetch settings
func (c *Config) ResolverConfig() resolver.Config {
	return resolver.Config{
		UserAgent:       c.UserAgent,
		Timeout:         time.Duration(c.RequestTimeoutMs) * time.Millisecond,
		ReservedMarkers: c.ReservedMarkers,
	}
}

// Level returns the parsed log level, info if unparsable
func (c *Config) Level() logrus.Level {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}
