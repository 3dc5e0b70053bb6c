// Package config loads hccopy configuration from its config file, .env
// files, and environment variables, with flags applied last by the CLI.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Credentials is one tenant's API credential triple.
type Credentials struct {
	Subdomain string `mapstructure:"subdomain" json:"subdomain"`
	Email     string `mapstructure:"email" json:"email"`
	APIToken  string `mapstructure:"api_token" json:"-"`
}

// Complete reports whether all three fields are present.
func (c Credentials) Complete() bool {
	return c.Subdomain != "" && c.Email != "" && c.APIToken != ""
}

// MaskedToken returns the API token with all but the leading and trailing
// four characters hidden, for confirmation prompts and logs.
func (c Credentials) MaskedToken() string {
	if c.APIToken == "" {
		return ""
	}
	if len(c.APIToken) <= 8 {
		return "***"
	}
	return c.APIToken[:4] + "..." + c.APIToken[len(c.APIToken)-4:]
}

// Config holds all configuration for hccopy.
type Config struct {
	Source    Credentials       `mapstructure:"source"`
	Dest      Credentials       `mapstructure:"dest"`
	LocaleMap map[string]string `mapstructure:"locale_map"`
}

// Load reads configuration with the following precedence, lowest first:
// config file (./.hccopy.yaml or ~/.config/hccopy/hccopy.yaml), then a
// ./.env file, then real environment variables. The original tool's
// *_ZENDESK_* variable names are honored so existing .env files keep
// working.
func Load() (*Config, error) {
	cfg := &Config{}

	// .env is optional and never overrides variables already exported.
	_ = godotenv.Load()

	if path := findConfigFile(); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := ValidateConfig(data); err != nil {
			return nil, fmt.Errorf("invalid config file %s: %w", path, err)
		}

		v := viper.New()
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
		if err := v.Unmarshal(cfg); err != nil {
			return nil, fmt.Errorf("failed to map config file %s: %w", path, err)
		}
	}

	applyEnv(&cfg.Source, "SOURCE")
	applyEnv(&cfg.Dest, "DEST")

	return cfg, nil
}

func applyEnv(creds *Credentials, prefix string) {
	if v := os.Getenv(prefix + "_ZENDESK_SUBDOMAIN"); v != "" {
		creds.Subdomain = v
	}
	if v := os.Getenv(prefix + "_ZENDESK_EMAIL"); v != "" {
		creds.Email = v
	}
	if v := os.Getenv(prefix + "_ZENDESK_API_TOKEN"); v != "" {
		creds.APIToken = v
	}
}

func findConfigFile() string {
	if path := os.Getenv("HCCOPY_CONFIG"); path != "" {
		return path
	}
	for _, name := range []string{".hccopy.yaml", ".hccopy.yml"} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	for _, name := range []string{"hccopy.yaml", "hccopy.yml"} {
		path := filepath.Join(home, ".config", "hccopy", name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
