package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Vault     VaultConfig     `yaml:"vault"`
	Catalog   CatalogConfig   `yaml:"catalog"`
	Auth      AuthConfig      `yaml:"auth"`
	Tailscale TailscaleConfig `yaml:"tailscale"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// VaultConfig locates the document vault on disk.
type VaultConfig struct {
	Path string `yaml:"path"`
}

// CatalogConfig locates the imported exercise-catalog database.
type CatalogConfig struct {
	Path           string `yaml:"path"`
	MigrationsPath string `yaml:"migrations_path"`
}

type AuthConfig struct {
	APIKey string `yaml:"api_key"`
}

type TailscaleConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Hostname string `yaml:"hostname"`
	StateDir string `yaml:"state_dir"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
// Env vars use the prefix IRONVAULT_ and underscore-separated paths:
//
//	IRONVAULT_SERVER_HOST, IRONVAULT_SERVER_PORT,
//	IRONVAULT_VAULT_PATH, IRONVAULT_CATALOG_PATH,
//	IRONVAULT_AUTH_API_KEY,
//	IRONVAULT_TS_ENABLED, IRONVAULT_TS_HOSTNAME, IRONVAULT_TS_STATE_DIR
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)
	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("IRONVAULT_SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("IRONVAULT_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("IRONVAULT_VAULT_PATH"); v != "" {
		cfg.Vault.Path = v
	}
	if v := os.Getenv("IRONVAULT_CATALOG_PATH"); v != "" {
		cfg.Catalog.Path = v
	}
	if v := os.Getenv("IRONVAULT_AUTH_API_KEY"); v != "" {
		cfg.Auth.APIKey = v
	}
	if v := os.Getenv("IRONVAULT_TS_ENABLED"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			cfg.Tailscale.Enabled = enabled
		}
	}
	if v := os.Getenv("IRONVAULT_TS_HOSTNAME"); v != "" {
		cfg.Tailscale.Hostname = v
	}
	if v := os.Getenv("IRONVAULT_TS_STATE_DIR"); v != "" {
		cfg.Tailscale.StateDir = v
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Catalog.Path == "" {
		cfg.Catalog.Path = "ironvault.db"
	}
	if cfg.Catalog.MigrationsPath == "" {
		cfg.Catalog.MigrationsPath = "migrations"
	}
	if cfg.Tailscale.Hostname == "" {
		cfg.Tailscale.Hostname = "ironvault"
	}
}

func (c *Config) validate() error {
	if c.Server.Port == 0 {
		return fmt.Errorf("server.port is required")
	}
	if c.Vault.Path == "" {
		return fmt.Errorf("vault.path is required")
	}
	if c.Auth.APIKey == "" {
		return fmt.Errorf("auth.api_key is required")
	}
	return nil
}
