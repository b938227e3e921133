// ABOUTME: Tests for configuration loading and parsing
// ABOUTME: Covers YAML loading, env var expansion, secret validation, and TTL parsing

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("writing config file: %v", err)
	}
	return configPath
}

func TestLoad_ValidConfig(t *testing.T) {
	configPath := writeConfig(t, `
server:
  http_addr: "0.0.0.0:8080"

database:
  path: "./test.db"

auth:
  jwt_secret: "0123456789abcdef0123456789abcdef"
  token_ttl: "12h"

logging:
  level: "debug"
  format: "json"
`)

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.HTTPAddr != "0.0.0.0:8080" {
		t.Errorf("HTTPAddr = %q, want %q", cfg.Server.HTTPAddr, "0.0.0.0:8080")
	}
	if cfg.Database.Path != "./test.db" {
		t.Errorf("Database.Path = %q, want %q", cfg.Database.Path, "./test.db")
	}
	if cfg.Auth.TokenTTL != 12*time.Hour {
		t.Errorf("TokenTTL = %v, want %v", cfg.Auth.TokenTTL, 12*time.Hour)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "debug")
	}
}

func TestLoad_TokenTTLDefaultsTo24h(t *testing.T) {
	configPath := writeConfig(t, `
server:
  http_addr: "localhost:8080"
database:
  path: "./test.db"
auth:
  jwt_secret: "0123456789abcdef0123456789abcdef"
`)

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Auth.TokenTTL != DefaultTokenTTL {
		t.Errorf("TokenTTL = %v, want %v", cfg.Auth.TokenTTL, DefaultTokenTTL)
	}
}

func TestLoad_MissingSecretFails(t *testing.T) {
	configPath := writeConfig(t, `
server:
  http_addr: "localhost:8080"
database:
  path: "./test.db"
`)

	_, err := Load(configPath)
	if err == nil {
		t.Fatal("Load() should fail when auth.jwt_secret is missing")
	}
	if !strings.Contains(err.Error(), "jwt_secret") {
		t.Errorf("error = %v, want mention of jwt_secret", err)
	}
}

func TestLoad_ShortSecretFails(t *testing.T) {
	configPath := writeConfig(t, `
server:
  http_addr: "localhost:8080"
database:
  path: "./test.db"
auth:
  jwt_secret: "too-short"
`)

	_, err := Load(configPath)
	if err == nil {
		t.Fatal("Load() should fail when auth.jwt_secret is too short")
	}
	if !strings.Contains(err.Error(), "32 bytes") {
		t.Errorf("error = %v, want mention of minimum length", err)
	}
}

func TestLoad_EnvVarExpansion(t *testing.T) {
	t.Setenv("WORKBENCH_TEST_SECRET", "0123456789abcdef0123456789abcdef")

	configPath := writeConfig(t, `
server:
  http_addr: "localhost:8080"
database:
  path: "./test.db"
auth:
  jwt_secret: "${WORKBENCH_TEST_SECRET}"
`)

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Auth.JWTSecret != "0123456789abcdef0123456789abcdef" {
		t.Errorf("JWTSecret = %q, want expanded env value", cfg.Auth.JWTSecret)
	}
}

func TestLoad_UnsetEnvVarLeavesSecretEmpty(t *testing.T) {
	configPath := writeConfig(t, `
server:
  http_addr: "localhost:8080"
database:
  path: "./test.db"
auth:
  jwt_secret: "${WORKBENCH_UNSET_SECRET_VAR}"
`)

	// Expansion of an unset variable yields an empty secret, which must
	// fail validation rather than silently start with a weak key.
	_, err := Load(configPath)
	if err == nil {
		t.Fatal("Load() should fail when env var is unset")
	}
}

func TestLoad_InvalidTTLFails(t *testing.T) {
	configPath := writeConfig(t, `
server:
  http_addr: "localhost:8080"
database:
  path: "./test.db"
auth:
  jwt_secret: "0123456789abcdef0123456789abcdef"
  token_ttl: "one day"
`)

	_, err := Load(configPath)
	if err == nil {
		t.Fatal("Load() should fail on unparseable token_ttl")
	}
}

func TestLoad_NegativeTTLFails(t *testing.T) {
	configPath := writeConfig(t, `
server:
  http_addr: "localhost:8080"
database:
  path: "./test.db"
auth:
  jwt_secret: "0123456789abcdef0123456789abcdef"
  token_ttl: "-1h"
`)

	_, err := Load(configPath)
	if err == nil {
		t.Fatal("Load() should fail on negative token_ttl")
	}
}

func TestLoad_MissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	if err == nil {
		t.Fatal("Load() should fail for a missing file")
	}
}

func TestLoad_MissingHTTPAddrFails(t *testing.T) {
	configPath := writeConfig(t, `
database:
  path: "./test.db"
auth:
  jwt_secret: "0123456789abcdef0123456789abcdef"
`)

	_, err := Load(configPath)
	if err == nil {
		t.Fatal("Load() should fail when server.http_addr is missing")
	}
}
