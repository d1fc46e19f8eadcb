package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v2"

	"github.com/tiercache/tiercache/pkg/errors"
)

// Configuration represents the complete application configuration
type Configuration struct {
	Tiers   []TierConfig  `yaml:"tiers"`
	Backing BackingConfig `yaml:"backing"`
	Metrics MetricsConfig `yaml:"metrics"`
	Logging LoggingConfig `yaml:"logging"`
}

// TierConfig describes one cache tier, nearest first
type TierConfig struct {
	Capacity int    `yaml:"capacity"`
	Policy   string `yaml:"policy"`
}

// BackingConfig selects and tunes the backing store collaborator
type BackingConfig struct {
	// Mode is "simulated" or "s3"
	Mode string `yaml:"mode"`

	// Simulated store tuning
	Latency          time.Duration `yaml:"latency"`
	FetchesPerSecond float64       `yaml:"fetches_per_second"`

	// S3 store settings
	S3 S3Config `yaml:"s3"`
}

// S3Config represents S3 backing store settings
type S3Config struct {
	Bucket        string        `yaml:"bucket"`
	Prefix        string        `yaml:"prefix"`
	Region        string        `yaml:"region"`
	FetchTimeout  time.Duration `yaml:"fetch_timeout"`
	FallbackValue string        `yaml:"fallback_value"`
}

// MetricsConfig represents metrics settings
type MetricsConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Port      int    `yaml:"port"`
	Path      string `yaml:"path"`
	Namespace string `yaml:"namespace"`
}

// LoggingConfig represents logging settings
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Backing store modes
const (
	BackingSimulated = "simulated"
	BackingS3        = "s3"
)

// NewDefault returns a configuration with sensible defaults: the two-tier
// reference layout with a simulated backing store.
func NewDefault() *Configuration {
	return &Configuration{
		Tiers: []TierConfig{
			{Capacity: 3, Policy: "LRU"},
			{Capacity: 2, Policy: "LFU"},
		},
		Backing: BackingConfig{
			Mode:             BackingSimulated,
			Latency:          0,
			FetchesPerSecond: 0, // unlimited
		},
		Metrics: MetricsConfig{
			Enabled:   true,
			Port:      8080,
			Path:      "/metrics",
			Namespace: "tiercache",
		},
		Logging: LoggingConfig{
			Level:  "INFO",
			Format: "json",
		},
	}
}

// LoadFromFile loads configuration from a YAML file
func (c *Configuration) LoadFromFile(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return errors.NewError(errors.ErrCodeConfigLoad, "failed to read config file").
			WithComponent("config").
			WithDetail("file", filename).
			WithCause(err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return errors.NewError(errors.ErrCodeConfigLoad, "failed to parse config file").
			WithComponent("config").
			WithDetail("file", filename).
			WithCause(err)
	}

	return nil
}

// LoadFromEnv loads configuration overrides from environment variables
func (c *Configuration) LoadFromEnv() error {
	if val := os.Getenv("TIERCACHE_LOG_LEVEL"); val != "" {
		c.Logging.Level = val
	}
	if val := os.Getenv("TIERCACHE_METRICS_PORT"); val != "" {
		if port, err := strconv.Atoi(val); err == nil {
			c.Metrics.Port = port
		}
	}
	if val := os.Getenv("TIERCACHE_METRICS_ENABLED"); val != "" {
		c.Metrics.Enabled = strings.ToLower(val) == "true"
	}
	if val := os.Getenv("TIERCACHE_BACKING_MODE"); val != "" {
		c.Backing.Mode = val
	}
	if val := os.Getenv("TIERCACHE_BACKING_LATENCY"); val != "" {
		if duration, err := time.ParseDuration(val); err == nil {
			c.Backing.Latency = duration
		}
	}
	if val := os.Getenv("TIERCACHE_S3_BUCKET"); val != "" {
		c.Backing.S3.Bucket = val
	}
	if val := os.Getenv("TIERCACHE_S3_REGION"); val != "" {
		c.Backing.S3.Region = val
	}

	return nil
}

// SaveToFile saves the configuration to a YAML file
func (c *Configuration) SaveToFile(filename string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(filename), 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(filename, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration
func (c *Configuration) Validate() error {
	for i, tier := range c.Tiers {
		if tier.Capacity <= 0 {
			return errors.NewError(errors.ErrCodeConfigValidation, "tier capacity must be positive").
				WithComponent("config").
				WithDetail("tier", i+1).
				WithDetail("capacity", tier.Capacity)
		}
		if !knownPolicy(tier.Policy) {
			return errors.NewError(errors.ErrCodeConfigValidation, "unknown eviction policy").
				WithComponent("config").
				WithDetail("tier", i+1).
				WithDetail("policy", tier.Policy)
		}
	}

	switch c.Backing.Mode {
	case BackingSimulated:
		// No required settings.
	case BackingS3:
		if c.Backing.S3.Bucket == "" {
			return errors.NewError(errors.ErrCodeConfigValidation, "s3 backing requires a bucket").
				WithComponent("config")
		}
	default:
		return errors.NewError(errors.ErrCodeConfigValidation, "unknown backing mode").
			WithComponent("config").
			WithDetail("mode", c.Backing.Mode)
	}

	if c.Metrics.Enabled && (c.Metrics.Port <= 0 || c.Metrics.Port > 65535) {
		return errors.NewError(errors.ErrCodeConfigValidation, "metrics port out of range").
			WithComponent("config").
			WithDetail("port", c.Metrics.Port)
	}

	validLogLevels := []string{"DEBUG", "INFO", "WARN", "ERROR"}
	logLevelValid := false
	for _, level := range validLogLevels {
		if strings.ToUpper(c.Logging.Level) == level {
			logLevelValid = true
			break
		}
	}
	if !logLevelValid {
		return errors.NewError(errors.ErrCodeConfigValidation,
			fmt.Sprintf("invalid log level %q (must be one of: %s)",
				c.Logging.Level, strings.Join(validLogLevels, ", "))).
			WithComponent("config")
	}

	return nil
}

// knownPolicy mirrors the cache package's policy names without importing it
// (config sits below the cache package in the dependency order).
func knownPolicy(name string) bool {
	switch strings.ToUpper(name) {
	case "LRU", "LFU":
		return true
	default:
		return false
	}
}
