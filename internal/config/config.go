// Package config loads the server configuration from a YAML file with
// environment variable overrides.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so YAML can carry values like "5m" or "24h".
type Duration time.Duration

// UnmarshalYAML parses a duration string.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML renders the duration back as a string.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Config is the top-level server configuration.
type Config struct {
	// Addr is the HTTP listen address, e.g. ":8080".
	Addr string `yaml:"addr"`

	// DBPath is the SQLite database file path.
	DBPath string `yaml:"db_path"`

	// StaticDir serves the frontend SPA when set; empty disables static serving.
	StaticDir string `yaml:"static_dir,omitempty"`

	Auth  AuthConfig  `yaml:"auth"`
	Rates RatesConfig `yaml:"rates"`
	Mail  MailConfig  `yaml:"mail"`
}

// AuthConfig configures session tokens.
type AuthConfig struct {
	// JWTSecret signs session tokens. Must be set in production.
	JWTSecret string `yaml:"jwt_secret"`

	// TokenTTL is how long session tokens remain valid.
	TokenTTL Duration `yaml:"token_ttl"`
}

// RatesConfig configures the public rate API polling.
type RatesConfig struct {
	// FiatURL and CryptoURL default to the public endpoints when empty.
	FiatURL   string `yaml:"fiat_url,omitempty"`
	CryptoURL string `yaml:"crypto_url,omitempty"`

	// Interval between polls.
	Interval Duration `yaml:"interval"`
}

// MailConfig configures the outbound transactional mail API.
type MailConfig struct {
	Endpoint string `yaml:"endpoint"`
	APIKey   string `yaml:"api_key"`
	From     string `yaml:"from"`

	// DemoRecipient receives every demo request notification.
	DemoRecipient string `yaml:"demo_recipient"`
}

// Default returns a Config with development defaults.
func Default() *Config {
	return &Config{
		Addr:   ":8080",
		DBPath: "./data/globalpocket.db",
		Auth: AuthConfig{
			JWTSecret: "dev-secret-change-me",
			TokenTTL:  Duration(24 * time.Hour),
		},
		Rates: RatesConfig{
			Interval: Duration(5 * time.Minute),
		},
	}
}

// Load reads a YAML config file and applies environment overrides.
// An empty path skips the file and uses defaults plus environment.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

// applyEnv overrides file values with environment variables when set.
func (c *Config) applyEnv() {
	c.Addr = getEnv("ADDR", c.Addr)
	c.DBPath = getEnv("DB_PATH", c.DBPath)
	c.StaticDir = getEnv("STATIC_DIR", c.StaticDir)
	c.Auth.JWTSecret = getEnv("JWT_SECRET", c.Auth.JWTSecret)
	c.Rates.FiatURL = getEnv("FIAT_RATES_URL", c.Rates.FiatURL)
	c.Rates.CryptoURL = getEnv("CRYPTO_RATES_URL", c.Rates.CryptoURL)
	c.Mail.Endpoint = getEnv("MAIL_ENDPOINT", c.Mail.Endpoint)
	c.Mail.APIKey = getEnv("MAIL_API_KEY", c.Mail.APIKey)
	c.Mail.From = getEnv("MAIL_FROM", c.Mail.From)
	c.Mail.DemoRecipient = getEnv("MAIL_DEMO_RECIPIENT", c.Mail.DemoRecipient)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
