// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigDir is the directory name for regraph configuration.
	DefaultConfigDir = ".regraph"
	// DefaultConfigFile is the default config file name.
	DefaultConfigFile = "config.yaml"
)

// Config holds static infrastructure configuration (read-only after init).
type Config struct {
	NER        NERConfig        `yaml:"ner,omitempty"`
	Registries RegistriesConfig `yaml:"registries,omitempty"`
	HTTP       HTTPConfig       `yaml:"http,omitempty"`
	SQLite     SQLiteConfig     `yaml:"sqlite,omitempty"`
	Neo4j      Neo4jConfig      `yaml:"neo4j,omitempty"`
	Logging    LoggingConfig    `yaml:"logging,omitempty"`
}

// NERConfig holds configuration for the entity tagging provider.
type NERConfig struct {
	Provider string `yaml:"provider,omitempty"`
	Model    string `yaml:"model,omitempty"`
	APIKey   string `yaml:"api_key,omitempty"`
}

// RegistriesConfig holds the registry API endpoints and credentials.
type RegistriesConfig struct {
	CompaniesHouseAPIKey string `yaml:"companies_house_api_key,omitempty"`
	CompaniesHouseURL    string `yaml:"companies_house_url,omitempty"`
	OpenCorporatesAPIKey string `yaml:"opencorporates_api_key,omitempty"`
	OpenCorporatesURL    string `yaml:"opencorporates_url,omitempty"`
	FindThatCharityURL   string `yaml:"findthatcharity_url,omitempty"`
}

// HTTPConfig bounds the registry HTTP client.
type HTTPConfig struct {
	Timeout    time.Duration `yaml:"timeout,omitempty"`
	MaxRetries int           `yaml:"max_retries,omitempty"`
	Backoff    time.Duration `yaml:"backoff,omitempty"`
	MaxBackoff time.Duration `yaml:"max_backoff,omitempty"`
}

// SQLiteConfig holds configuration for the custom-entity store.
type SQLiteConfig struct {
	// Path is the file path to the SQLite database.
	Path string `yaml:"path,omitempty"`
}

// Neo4jConfig holds configuration for the graph database.
type Neo4jConfig struct {
	URI      string `yaml:"uri,omitempty"`
	User     string `yaml:"user,omitempty"`
	Password string `yaml:"password,omitempty"`
	Database string `yaml:"database,omitempty"`
}

// LoggingConfig selects the log encoder and level.
type LoggingConfig struct {
	Mode  string `yaml:"mode,omitempty"`
	Level string `yaml:"level,omitempty"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		NER: NERConfig{
			Provider: "openai",
			Model:    "gpt-4o-mini",
		},
		HTTP: HTTPConfig{
			Timeout:    30 * time.Second,
			MaxRetries: 5,
			Backoff:    2 * time.Second,
			MaxBackoff: 60 * time.Second,
		},
		Neo4j: Neo4jConfig{
			URI:  "bolt://localhost:7687",
			User: "neo4j",
		},
		Logging: LoggingConfig{
			Mode:  "dev",
			Level: "info",
		},
	}
}

// Load loads configuration from the .regraph directory in the given path.
// A missing config file yields the defaults; environment variables
// override file values for credentials.
func Load(basePath string) (*Config, error) {
	cfg := Default()

	configFile := filepath.Join(basePath, DefaultConfigDir, DefaultConfigFile)
	data, err := os.ReadFile(configFile)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if key := os.Getenv("OPENAI_API_KEY"); key != "" && c.NER.APIKey == "" {
		c.NER.APIKey = key
	}
	if key := os.Getenv("COMPANIES_HOUSE_API_KEY"); key != "" && c.Registries.CompaniesHouseAPIKey == "" {
		c.Registries.CompaniesHouseAPIKey = key
	}
	if key := os.Getenv("OPENCORPORATES_API_KEY"); key != "" && c.Registries.OpenCorporatesAPIKey == "" {
		c.Registries.OpenCorporatesAPIKey = key
	}
	if password := os.Getenv("NEO4J_PASSWORD"); password != "" && c.Neo4j.Password == "" {
		c.Neo4j.Password = password
	}
}

// ConfigDir returns the path to the .regraph config directory.
func ConfigDir(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir)
}

// ConfigFilePath returns the path to the config file.
func ConfigFilePath(basePath string) string {
	return filepath.Join(basePath, DefaultConfigDir, DefaultConfigFile)
}

// Exists checks if a regraph config exists in the given path.
func Exists(basePath string) bool {
	_, err := os.Stat(ConfigFilePath(basePath))
	return err == nil
}
