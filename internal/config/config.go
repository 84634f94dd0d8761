package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the collator service configuration.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Database  DatabaseConfig  `yaml:"database"`
	Catalog   CatalogConfig   `yaml:"catalog"`
	Collation CollationConfig `yaml:"collation"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Auth      AuthConfig      `yaml:"auth"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings for the admin server.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds admin HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// DatabaseConfig holds index store connection settings.
type DatabaseConfig struct {
	Addrs            []string `yaml:"addrs"`
	Password         string   `yaml:"password"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// CatalogConfig holds catalog discovery and collation-source settings.
type CatalogConfig struct {
	// Endpoints maps logical service names to base URLs for discovery.
	Endpoints map[string]string `yaml:"endpoints"`
	// ServiceName is the logical name resolved for the catalog (default: catalog).
	ServiceName string `yaml:"service_name"`
	// Kinds restricts the fetch to the listed entity kinds, server-side,
	// in the given order. Empty means no filter.
	Kinds []string `yaml:"kinds"`
	// LocationTemplate overrides the document location template.
	LocationTemplate string `yaml:"location_template"`
	// RequestTimeout bounds the entity-listing request.
	RequestTimeoutSec int `yaml:"request_timeout_sec"`
}

// CollationConfig holds collation run and index settings.
type CollationConfig struct {
	IntervalSec int    `yaml:"interval_sec"`
	KeyPrefix   string `yaml:"key_prefix"`
	IndexName   string `yaml:"index_name"`
}

// EmbeddingConfig holds optional embedding enrichment settings.
// Embedding is enabled when Model is non-empty.
type EmbeddingConfig struct {
	APIKey     string `yaml:"api_key"`
	BaseURL    string `yaml:"base_url"`
	Model      string `yaml:"model"`
	Dimensions int    `yaml:"dimensions"`
	Provider   string `yaml:"provider"`
}

// Enabled reports whether embedding enrichment is configured.
func (e EmbeddingConfig) Enabled() bool { return e.Model != "" }

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Database.ReadinessTimeout <= 0 {
		c.Database.ReadinessTimeout = 10
	}
	if c.Catalog.ServiceName == "" {
		c.Catalog.ServiceName = "catalog"
	}
	if c.Catalog.RequestTimeoutSec <= 0 {
		c.Catalog.RequestTimeoutSec = 10
	}
	if c.Collation.IntervalSec <= 0 {
		c.Collation.IntervalSec = 300
	}
	if c.Collation.KeyPrefix == "" {
		c.Collation.KeyPrefix = "collator:"
	}
	if c.Collation.IndexName == "" {
		c.Collation.IndexName = "collator-docs"
	}
	if c.Embedding.Provider == "" {
		c.Embedding.Provider = "openai"
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if len(c.Database.Addrs) == 0 {
		return fmt.Errorf("database.addrs is required")
	}
	if len(c.Catalog.Endpoints) == 0 {
		return fmt.Errorf("catalog.endpoints is required")
	}
	if _, ok := c.Catalog.Endpoints[c.Catalog.ServiceName]; !ok {
		return fmt.Errorf("catalog.endpoints must contain an entry for service %q", c.Catalog.ServiceName)
	}
	if strings.Contains(c.Collation.KeyPrefix, " ") {
		return fmt.Errorf("collation.key_prefix must not contain spaces")
	}
	if c.Embedding.Enabled() && c.Embedding.Dimensions <= 0 {
		return fmt.Errorf("embedding.dimensions must be positive when embedding.model is set")
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
