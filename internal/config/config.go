// Package config loads the adapter configuration from a TOML file with
// environment variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

// ServerConfig holds options common to every adapter server.
type ServerConfig struct {
	LogLevel  string `toml:"log_level"`
	Transport string `toml:"transport"`
}

// StorageConfig holds the object storage connection options.
type StorageConfig struct {
	Endpoint  string `toml:"endpoint"`
	AccessKey string `toml:"access_key"`
	SecretKey string `toml:"secret_key"`
	UseSSL    bool   `toml:"use_ssl"`
}

// VectorConfig holds the vector database connection options.
type VectorConfig struct {
	Host   string `toml:"host"`
	Port   int    `toml:"port"`
	APIKey string `toml:"api_key"`
	UseTLS bool   `toml:"use_tls"`
}

// SearchConfig holds the web search backend options.
type SearchConfig struct {
	APIKey  string `toml:"api_key"`
	BaseURL string `toml:"base_url"`
	Model   string `toml:"model"`
}

// FlowConfig holds the flow engine connection options.
type FlowConfig struct {
	BaseURL string `toml:"base_url"`
	APIKey  string `toml:"api_key"`
}

// Config is the root configuration of the adapter servers.
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Storage StorageConfig `toml:"storage"`
	Vector  VectorConfig  `toml:"vector"`
	Search  SearchConfig  `toml:"search"`
	Flow    FlowConfig    `toml:"flow"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			LogLevel:  "info",
			Transport: "stdio",
		},
		Storage: StorageConfig{
			Endpoint: "localhost:9000",
		},
		Vector: VectorConfig{
			Host: "localhost",
			Port: 6334,
		},
		Search: SearchConfig{
			Model: "sonar",
		},
		Flow: FlowConfig{
			BaseURL: "http://localhost:7860",
		},
	}
}

// Load reads the configuration from path, falling back to defaults when
// the file does not exist, then applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("reading config file: %w", err)
			}
		} else {
			if err := toml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config file: %w", err)
			}
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

// DefaultPath returns the default configuration file location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "mcp-adapters.toml"
	}
	return filepath.Join(home, ".config", "mcp-adapters", "config.toml")
}

// applyEnv overrides file values with environment variables. Every
// setting has an MCP_ADAPTERS_ prefixed variable.
func (c *Config) applyEnv() {
	setString(&c.Server.LogLevel, "MCP_ADAPTERS_LOG_LEVEL")
	setString(&c.Server.Transport, "MCP_ADAPTERS_TRANSPORT")

	setString(&c.Storage.Endpoint, "MCP_ADAPTERS_STORAGE_ENDPOINT")
	setString(&c.Storage.AccessKey, "MCP_ADAPTERS_STORAGE_ACCESS_KEY")
	setString(&c.Storage.SecretKey, "MCP_ADAPTERS_STORAGE_SECRET_KEY")
	setBool(&c.Storage.UseSSL, "MCP_ADAPTERS_STORAGE_USE_SSL")

	setString(&c.Vector.Host, "MCP_ADAPTERS_VECTOR_HOST")
	setInt(&c.Vector.Port, "MCP_ADAPTERS_VECTOR_PORT")
	setString(&c.Vector.APIKey, "MCP_ADAPTERS_VECTOR_API_KEY")
	setBool(&c.Vector.UseTLS, "MCP_ADAPTERS_VECTOR_USE_TLS")

	setString(&c.Search.APIKey, "MCP_ADAPTERS_SEARCH_API_KEY")
	setString(&c.Search.BaseURL, "MCP_ADAPTERS_SEARCH_BASE_URL")
	setString(&c.Search.Model, "MCP_ADAPTERS_SEARCH_MODEL")

	setString(&c.Flow.BaseURL, "MCP_ADAPTERS_FLOW_BASE_URL")
	setString(&c.Flow.APIKey, "MCP_ADAPTERS_FLOW_API_KEY")
}

func setString(target *string, key string) {
	if value := os.Getenv(key); value != "" {
		*target = value
	}
}

func setBool(target *bool, key string) {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			*target = parsed
		}
	}
}

func setInt(target *int, key string) {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			*target = parsed
		}
	}
}
