package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// validLogLevels lists the accepted server.log_level values.
var validLogLevels = []string{"", "debug", "info", "warn", "error"}

// Load reads the YAML configuration file at path and returns a validated
// [Config] with environment overrides applied. A missing file is not an
// error; defaults plus environment are used instead.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		cfg := Default()
		ApplyEnv(cfg)
		if err := Validate(cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	cfg, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader decodes a YAML config from r on top of the defaults,
// applies environment overrides, and validates the result.
// Useful in tests where configs are constructed from string literals.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}
	ApplyEnv(cfg)
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides cfg fields from the environment. The Google AI key
// follows the provider's conventional variables.
func ApplyEnv(cfg *Config) {
	setIfPresent(&cfg.Server.ListenAddr, "LISTEN_ADDR")
	setIfPresent(&cfg.Server.LogLevel, "LOG_LEVEL")
	setIfPresent(&cfg.Database.Path, "DB_PATH")
	setIfPresent(&cfg.AI.Model, "AI_MODEL")
	setIfPresent(&cfg.AI.APIKey, "GEMINI_API_KEY")
	setIfPresent(&cfg.AI.APIKey, "GOOGLE_API_KEY")
	setIfPresent(&cfg.Auth.Password, "AUTH_PASSWORD")
	setIfPresent(&cfg.Auth.TokenSecret, "AUTH_TOKEN_SECRET")
}

func setIfPresent(dst *string, key string) {
	if value := os.Getenv(key); value != "" {
		*dst = value
	}
}

// Validate checks that cfg contains a coherent set of values.
// It returns a joined error listing all validation failures found.
func Validate(cfg *Config) error {
	var errs []error

	if !slices.Contains(validLogLevels, cfg.Server.LogLevel) {
		errs = append(errs, fmt.Errorf("server.log_level %q is invalid; valid values: debug, info, warn, error", cfg.Server.LogLevel))
	}
	if cfg.Server.ListenAddr == "" {
		errs = append(errs, errors.New("server.listen_addr must not be empty"))
	}
	if cfg.Database.Path == "" {
		errs = append(errs, errors.New("database.path must not be empty"))
	}
	if cfg.AI.Model == "" {
		errs = append(errs, errors.New("ai.model must not be empty"))
	}
	if cfg.Auth.Password != "" && cfg.Auth.TokenSecret == "" {
		errs = append(errs, errors.New("auth.token_secret is required when auth.password is set"))
	}

	return errors.Join(errs...)
}
