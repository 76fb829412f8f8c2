package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// envOverrides lists the environment variables that take precedence over the file.
type envOverrides struct {
	APIKey       string   `envconfig:"GEMINI_API_KEY"`
	APIKeys      []string `envconfig:"GEMINI_API_KEYS"`
	Model        string   `envconfig:"GEMINI_MODEL"`
	LogLevel     string   `envconfig:"LOG_LEVEL"`
	ServerAddr   string   `envconfig:"SERVER_ADDR"`
	SettingsPath string   `envconfig:"SETTINGS_PATH"`
}

// Load reads the YAML file at path over Default, applies .env and environment
// overrides, and validates the result. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := LoadDotEnv(); err != nil {
		return nil, err
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDotEnv loads .env from the working directory when it exists.
// Variables already set in the environment win.
func LoadDotEnv(files ...string) error {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	var env envOverrides
	if err := envconfig.Process("", &env); err != nil {
		return fmt.Errorf("read environment: %w", err)
	}

	if env.APIKey != "" {
		c.Gemini.APIKeys = append([]string{env.APIKey}, c.Gemini.APIKeys...)
	}
	if len(env.APIKeys) > 0 {
		c.Gemini.APIKeys = append(c.Gemini.APIKeys, env.APIKeys...)
	}
	if env.Model != "" {
		c.Gemini.Model = env.Model
	}
	if env.LogLevel != "" {
		c.Logging.Level = env.LogLevel
	}
	if env.ServerAddr != "" {
		c.Server.Addr = env.ServerAddr
	}
	if env.SettingsPath != "" {
		c.Paths.Settings = env.SettingsPath
	}
	return nil
}
