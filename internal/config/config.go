// Package config provides configuration loading for the Smart Task API.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Storage provider names.
const (
	StorageProviderSQLite   = "sqlite"
	StorageProviderPostgres = "postgres"
)

// Config represents the application configuration
type Config struct {
	Server      ServerConfig      `yaml:"server" json:"server"`
	Storage     StorageConfig     `yaml:"storage" json:"storage"`
	Suggestions SuggestionsConfig `yaml:"suggestions" json:"suggestions"`
	Logging     LoggingConfig     `yaml:"logging" json:"logging"`
}

// ServerConfig represents HTTP server configuration
type ServerConfig struct {
	Host         string `yaml:"host" json:"host"`
	Port         int    `yaml:"port" json:"port"`
	ReadTimeout  int    `yaml:"read_timeout_seconds" json:"read_timeout_seconds"`
	WriteTimeout int    `yaml:"write_timeout_seconds" json:"write_timeout_seconds"`
}

// StorageConfig represents database configuration
type StorageConfig struct {
	Provider     string `yaml:"provider" json:"provider"`
	DSN          string `yaml:"dsn" json:"dsn"`
	MaxOpenConns int    `yaml:"max_open_conns" json:"max_open_conns"`
	MaxIdleConns int    `yaml:"max_idle_conns" json:"max_idle_conns"`
}

// SuggestionsConfig represents suggestion engine configuration
type SuggestionsConfig struct {
	TopKeywords   int `yaml:"top_keywords" json:"top_keywords"`
	MaxPerKeyword int `yaml:"max_per_keyword" json:"max_per_keyword"`
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level" json:"level"`
	Format string `yaml:"format" json:"format"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         "localhost",
			Port:         8080,
			ReadTimeout:  30,
			WriteTimeout: 30,
		},
		Storage: StorageConfig{
			Provider:     StorageProviderSQLite,
			DSN:          "./tasks.db",
			MaxOpenConns: 10,
			MaxIdleConns: 5,
		},
		Suggestions: SuggestionsConfig{
			TopKeywords:   5,
			MaxPerKeyword: 3,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// LoadConfig loads configuration from defaults, an optional YAML file, and
// environment variables, in increasing order of precedence
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	config := DefaultConfig()

	if err := loadFromFile(config); err != nil {
		return nil, err
	}
	loadFromEnv(config)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// loadFromFile overlays configuration from a YAML file when one is
// present. TASKAPI_CONFIG_FILE overrides the default ./config.yaml path.
func loadFromFile(config *Config) error {
	path := os.Getenv("TASKAPI_CONFIG_FILE")
	if path == "" {
		path = "config.yaml"
	}

	data, err := os.ReadFile(path) // #nosec G304 - path comes from the operator
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("error reading config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return fmt.Errorf("error parsing config file %s: %w", path, err)
	}

	return nil
}

// loadFromEnv loads configuration overrides from environment variables
func loadFromEnv(config *Config) {
	if host := os.Getenv("TASKAPI_HOST"); host != "" {
		config.Server.Host = host
	}
	setEnvInt("TASKAPI_PORT", &config.Server.Port)
	setEnvInt("TASKAPI_READ_TIMEOUT_SECONDS", &config.Server.ReadTimeout)
	setEnvInt("TASKAPI_WRITE_TIMEOUT_SECONDS", &config.Server.WriteTimeout)

	if provider := os.Getenv("TASKAPI_STORAGE_PROVIDER"); provider != "" {
		config.Storage.Provider = provider
	}
	if dsn := os.Getenv("TASKAPI_STORAGE_DSN"); dsn != "" {
		config.Storage.DSN = dsn
	}
	setEnvInt("TASKAPI_STORAGE_MAX_OPEN_CONNS", &config.Storage.MaxOpenConns)
	setEnvInt("TASKAPI_STORAGE_MAX_IDLE_CONNS", &config.Storage.MaxIdleConns)

	setEnvInt("TASKAPI_SUGGESTIONS_TOP_KEYWORDS", &config.Suggestions.TopKeywords)
	setEnvInt("TASKAPI_SUGGESTIONS_MAX_PER_KEYWORD", &config.Suggestions.MaxPerKeyword)

	if level := os.Getenv("TASKAPI_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if format := os.Getenv("TASKAPI_LOG_FORMAT"); format != "" {
		config.Logging.Format = format
	}
}

func setEnvInt(key string, target *int) {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			*target = parsed
		}
	}
}

// Validate checks the configuration for invalid values
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server timeouts must be positive")
	}

	switch c.Storage.Provider {
	case StorageProviderSQLite, StorageProviderPostgres:
	default:
		return fmt.Errorf("invalid storage provider: %q", c.Storage.Provider)
	}
	if c.Storage.DSN == "" {
		return fmt.Errorf("storage DSN is required")
	}

	if c.Suggestions.TopKeywords <= 0 {
		return fmt.Errorf("suggestions top_keywords must be positive")
	}
	if c.Suggestions.MaxPerKeyword <= 0 {
		return fmt.Errorf("suggestions max_per_keyword must be positive")
	}

	return nil
}
