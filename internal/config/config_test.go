package config

import (
	"os"
	"path/filepath"
	"testing"
)

const validYAML = `
server:
  host: "0.0.0.0"
  port: 8080
vault:
  path: "/data/vault"
catalog:
  path: "/data/catalog.db"
auth:
  api_key: "test-key-123"
`

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// TestLoadValid verifies that a well-formed YAML config loads with all fields populated.
func TestLoadValid(t *testing.T) {
	cfg, err := Load(writeTemp(t, validYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("server.host = %q, want %q", cfg.Server.Host, "0.0.0.0")
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("server.port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Vault.Path != "/data/vault" {
		t.Errorf("vault.path = %q, want %q", cfg.Vault.Path, "/data/vault")
	}
	if cfg.Catalog.Path != "/data/catalog.db" {
		t.Errorf("catalog.path = %q, want %q", cfg.Catalog.Path, "/data/catalog.db")
	}
	if cfg.Auth.APIKey != "test-key-123" {
		t.Errorf("auth.api_key = %q, want %q", cfg.Auth.APIKey, "test-key-123")
	}
}

// TestEnvOverride verifies that IRONVAULT_ env vars take precedence over YAML values.
// This ensures production deployments can override config via environment.
func TestEnvOverride(t *testing.T) {
	t.Setenv("IRONVAULT_VAULT_PATH", "/override/vault")
	t.Setenv("IRONVAULT_SERVER_PORT", "9999")
	t.Setenv("IRONVAULT_AUTH_API_KEY", "env-key")

	cfg, err := Load(writeTemp(t, validYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Vault.Path != "/override/vault" {
		t.Errorf("vault.path = %q, want %q", cfg.Vault.Path, "/override/vault")
	}
	if cfg.Server.Port != 9999 {
		t.Errorf("server.port = %d, want 9999", cfg.Server.Port)
	}
	if cfg.Auth.APIKey != "env-key" {
		t.Errorf("auth.api_key = %q, want %q", cfg.Auth.APIKey, "env-key")
	}
	// Unchanged fields should keep YAML values
	if cfg.Catalog.Path != "/data/catalog.db" {
		t.Errorf("catalog.path = %q, want %q", cfg.Catalog.Path, "/data/catalog.db")
	}
}

// TestDefaults verifies the catalog and tailscale fall-back values.
func TestDefaults(t *testing.T) {
	yaml := `
server:
  port: 8080
vault:
  path: "/data/vault"
auth:
  api_key: "key"
`
	cfg, err := Load(writeTemp(t, yaml))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Catalog.Path != "ironvault.db" {
		t.Errorf("catalog.path default = %q", cfg.Catalog.Path)
	}
	if cfg.Catalog.MigrationsPath != "migrations" {
		t.Errorf("catalog.migrations_path default = %q", cfg.Catalog.MigrationsPath)
	}
	if cfg.Tailscale.Hostname != "ironvault" {
		t.Errorf("tailscale.hostname default = %q", cfg.Tailscale.Hostname)
	}
}

// TestValidationMissingPort verifies that missing required fields produce a clear error.
// Prevents starting the server with incomplete configuration.
func TestValidationMissingPort(t *testing.T) {
	yaml := `
server:
  host: "0.0.0.0"
vault:
  path: "/data/vault"
auth:
  api_key: "key"
`
	_, err := Load(writeTemp(t, yaml))
	if err == nil {
		t.Fatal("expected validation error for missing port")
	}
}

// TestValidationMissingVaultPath verifies that the vault location is required.
func TestValidationMissingVaultPath(t *testing.T) {
	yaml := `
server:
  port: 8080
auth:
  api_key: "key"
`
	_, err := Load(writeTemp(t, yaml))
	if err == nil {
		t.Fatal("expected validation error for missing vault.path")
	}
}

// TestValidationMissingAPIKey verifies that a missing API key is rejected.
// Without an API key, the write endpoints would be unprotected.
func TestValidationMissingAPIKey(t *testing.T) {
	yaml := `
server:
  port: 8080
vault:
  path: "/data/vault"
auth: {}
`
	_, err := Load(writeTemp(t, yaml))
	if err == nil {
		t.Fatal("expected validation error for missing api_key")
	}
}

// TestLoadMissingFile verifies that a missing config file returns a clear error.
func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}
