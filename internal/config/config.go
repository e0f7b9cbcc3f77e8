// Package config loads application configuration from an optional YAML
// file and the environment, with env vars taking precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Snapshot backend names.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Config holds the runtime settings of the registry.
type Config struct {
	// SnapshotBackend selects the persistence medium: memory, file
	// or sqlite.
	SnapshotBackend string `yaml:"snapshot_backend"`
	// SnapshotPath is the file path used by the file and sqlite
	// backends.
	SnapshotPath string `yaml:"snapshot_path"`
	// CreateDelay is the simulated network latency on record creation.
	CreateDelay time.Duration `yaml:"create_delay"`
	// ValidityMinutes is the default record lifetime.
	ValidityMinutes int `yaml:"validity_minutes"`
	// LogBufferSize caps the in-memory event log.
	LogBufferSize int `yaml:"log_buffer_size"`
}

func defaults() *Config {
	return &Config{
		SnapshotBackend: BackendFile,
		SnapshotPath:    "shortlinks.json",
		CreateDelay:     500 * time.Millisecond,
		ValidityMinutes: 30,
		LogBufferSize:   1000,
	}
}

// Load builds the configuration: defaults, then the YAML file named by
// SHORTLINKS_CONFIG (if any), then environment variables. A .env file
// in the working directory is honored.
func Load() (*Config, error) {
	_ = godotenv.Load() // ignore error when no .env exists

	cfg := defaults()

	if path := os.Getenv("SHORTLINKS_CONFIG"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.SnapshotBackend = getEnv("SHORTLINKS_BACKEND", cfg.SnapshotBackend)
	cfg.SnapshotPath = getEnv("SHORTLINKS_SNAPSHOT", cfg.SnapshotPath)
	cfg.CreateDelay = getEnvDuration("SHORTLINKS_CREATE_DELAY", cfg.CreateDelay)
	cfg.ValidityMinutes = getEnvInt("SHORTLINKS_VALIDITY_MINUTES", cfg.ValidityMinutes)
	cfg.LogBufferSize = getEnvInt("SHORTLINKS_LOG_BUFFER", cfg.LogBufferSize)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("config file %s does not exist", path)
		}
		return fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}
	return nil
}

func (c *Config) validate() error {
	switch c.SnapshotBackend {
	case BackendMemory, BackendFile, BackendSQLite:
	default:
		return fmt.Errorf("unknown snapshot backend %q", c.SnapshotBackend)
	}
	if c.SnapshotBackend != BackendMemory && c.SnapshotPath == "" {
		return errors.New("snapshot path is required for durable backends")
	}
	if c.ValidityMinutes < 1 {
		return errors.New("validity minutes must be positive")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
