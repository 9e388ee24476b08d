// Package config provides the configuration schema and loader for the
// RachaConta server.
package config

// Config is the root configuration structure. It is typically loaded from a
// YAML file using [Load] or [LoadFromReader], with environment variables
// taking precedence over file values (see [ApplyEnv]).
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	AI       AIConfig       `yaml:"ai"`
	Auth     AuthConfig     `yaml:"auth"`
}

// ServerConfig holds network and logging settings.
type ServerConfig struct {
	// ListenAddr is the TCP address the server listens on (e.g., ":8080").
	ListenAddr string `yaml:"listen_addr"`

	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
}

// DatabaseConfig holds SQLite settings.
type DatabaseConfig struct {
	// Path is the SQLite database file path.
	Path string `yaml:"path"`
}

// AIConfig holds the tip suggestion provider settings.
type AIConfig struct {
	// Model is the generative model identifier used for suggestions.
	Model string `yaml:"model"`

	// APIKey is the environment-default Google AI credential. A key saved
	// through the credential endpoint takes precedence per request.
	APIKey string `yaml:"api_key"`
}

// AuthConfig protects credential writes.
type AuthConfig struct {
	// Password, when set, is required (via /api/v1/auth/login) before the
	// stored credential can be changed. Empty disables protection.
	Password string `yaml:"password"`

	// TokenSecret signs session tokens. Required when Password is set.
	TokenSecret string `yaml:"token_secret"`
}

// Default returns the built-in configuration used when no file is present.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			ListenAddr: ":8080",
			LogLevel:   "info",
		},
		Database: DatabaseConfig{
			Path: "./data/rachaconta.db",
		},
		AI: AIConfig{
			Model: "gemini-1.5-flash-latest",
		},
	}
}
