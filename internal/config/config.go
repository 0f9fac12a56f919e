package config

import (
	"fmt"
	"os"
	"strconv"

	"sigs.k8s.io/yaml"
)

// Config holds the application configuration
type Config struct {
	Port           string `json:"port"`
	Environment    string `json:"environment"`
	MaxFileSize    int64  `json:"maxFileSize"` // in bytes
	WindowLimit    int    `json:"windowLimit"`
	LookaheadLimit int    `json:"lookaheadLimit"`
	LogLevel       string `json:"logLevel"`
}

// ConfigFileEnv names the environment variable pointing at an optional YAML
// configuration file.
const ConfigFileEnv = "LZCODEC_CONFIG"

func defaults() *Config {
	return &Config{
		Port:           "8080",
		Environment:    "development",
		MaxFileSize:    50 * 1024 * 1024, // 50MB default
		WindowLimit:    4096,
		LookaheadLimit: 64,
		LogLevel:       "INFO",
	}
}

// Load loads configuration from environment variables with defaults
func Load() *Config {
	cfg := defaults()
	applyEnv(cfg)
	return cfg
}

// LoadWithFile loads the YAML file at path over the defaults, then applies
// environment variables on top. An empty path behaves like Load.
func LoadWithFile(path string) (*Config, error) {
	cfg := defaults()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		if err := yaml.UnmarshalStrict(raw, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}
	applyEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the limits are usable.
func (c *Config) Validate() error {
	if c.WindowLimit <= 0 {
		return fmt.Errorf("window limit must be positive, got %d", c.WindowLimit)
	}
	if c.LookaheadLimit <= 0 {
		return fmt.Errorf("lookahead limit must be positive, got %d", c.LookaheadLimit)
	}
	if c.MaxFileSize <= 0 {
		return fmt.Errorf("max file size must be positive, got %d", c.MaxFileSize)
	}
	return nil
}

func applyEnv(cfg *Config) {
	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.Environment = getEnv("GO_ENV", cfg.Environment)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.MaxFileSize = int64(getEnvInt("MAX_FILE_SIZE", int(cfg.MaxFileSize)))
	cfg.WindowLimit = getEnvInt("LZ_WINDOW_LIMIT", cfg.WindowLimit)
	cfg.LookaheadLimit = getEnvInt("LZ_LOOKAHEAD_LIMIT", cfg.LookaheadLimit)
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt is getEnv for integers; unparsable values fall back to the default.
func getEnvInt(key string, defaultValue int) int {
	if value, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return value
	}
	return defaultValue
}
