package config_test

import (
	"strings"
	"testing"

	"github.com/rachaconta/backend/internal/config"
)

func TestLoadFromReaderAppliesDefaults(t *testing.T) {
	cfg, err := config.LoadFromReader(strings.NewReader(""))
	if err != nil {
		t.Fatalf("LoadFromReader failed: %v", err)
	}
	if cfg.Server.ListenAddr != ":8080" {
		t.Errorf("ListenAddr = %q, want :8080", cfg.Server.ListenAddr)
	}
	if cfg.AI.Model != "gemini-1.5-flash-latest" {
		t.Errorf("Model = %q, want gemini-1.5-flash-latest", cfg.AI.Model)
	}
	if cfg.Database.Path == "" {
		t.Error("Database.Path should have a default")
	}
}

func TestLoadFromReaderOverridesDefaults(t *testing.T) {
	yaml := `
server:
  listen_addr: ":9090"
  log_level: debug
database:
  path: /tmp/test.db
ai:
  model: gemini-2.0-flash
`
	cfg, err := config.LoadFromReader(strings.NewReader(yaml))
	if err != nil {
		t.Fatalf("LoadFromReader failed: %v", err)
	}
	if cfg.Server.ListenAddr != ":9090" {
		t.Errorf("ListenAddr = %q, want :9090", cfg.Server.ListenAddr)
	}
	if cfg.Server.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.Server.LogLevel)
	}
	if cfg.AI.Model != "gemini-2.0-flash" {
		t.Errorf("Model = %q, want gemini-2.0-flash", cfg.AI.Model)
	}
}

func TestLoadFromReaderRejectsUnknownFields(t *testing.T) {
	yaml := `
server:
  listen_adress: ":9090"
`
	if _, err := config.LoadFromReader(strings.NewReader(yaml)); err == nil {
		t.Fatal("expected error for unknown field, got nil")
	}
}

func TestValidateBadLogLevel(t *testing.T) {
	yaml := `
server:
  log_level: loud
`
	_, err := config.LoadFromReader(strings.NewReader(yaml))
	if err == nil {
		t.Fatal("expected error for invalid log level, got nil")
	}
	if !strings.Contains(err.Error(), "log_level") {
		t.Errorf("error should mention log_level, got: %v", err)
	}
}

func TestValidatePasswordRequiresTokenSecret(t *testing.T) {
	yaml := `
auth:
  password: super-secret-pw
`
	_, err := config.LoadFromReader(strings.NewReader(yaml))
	if err == nil {
		t.Fatal("expected error for password without token_secret, got nil")
	}
	if !strings.Contains(err.Error(), "token_secret") {
		t.Errorf("error should mention token_secret, got: %v", err)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	t.Setenv("LISTEN_ADDR", ":7070")
	t.Setenv("GEMINI_API_KEY", "env-key")

	yaml := `
server:
  listen_addr: ":9090"
`
	cfg, err := config.LoadFromReader(strings.NewReader(yaml))
	if err != nil {
		t.Fatalf("LoadFromReader failed: %v", err)
	}
	if cfg.Server.ListenAddr != ":7070" {
		t.Errorf("ListenAddr = %q, want env value :7070", cfg.Server.ListenAddr)
	}
	if cfg.AI.APIKey != "env-key" {
		t.Errorf("APIKey = %q, want env-key", cfg.AI.APIKey)
	}
}
