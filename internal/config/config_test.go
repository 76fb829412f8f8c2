package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"GEMINI_API_KEY", "GEMINI_API_KEYS", "GEMINI_MODEL", "LOG_LEVEL", "SERVER_ADDR", "SETTINGS_PATH"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{
			name:   "default config",
			mutate: func(c *Config) {},
		},
		{
			name:   "zero values get defaults",
			mutate: func(c *Config) { c.Performance = PerformanceConfig{}; c.Pipeline.Attribution = "" },
		},
		{
			name:    "bad attribution",
			mutate:  func(c *Config) { c.Pipeline.Attribution = "sometimes" },
			wantErr: "pipeline.attribution",
		},
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.Logging.Level = "verbose" },
			wantErr: "logging.level",
		},
		{
			name:    "missing settings path",
			mutate:  func(c *Config) { c.Paths.Settings = "" },
			wantErr: "paths.settings is required",
		},
		{
			name:    "bad server addr",
			mutate:  func(c *Config) { c.Server.Addr = "nope" },
			wantErr: "server.addr",
		},
		{
			name:    "too many summaries",
			mutate:  func(c *Config) { c.Performance.MaxSummaries = 1000 },
			wantErr: "performance.max_summaries",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidateFillsDefaults(t *testing.T) {
	cfg := Default()
	cfg.Performance = PerformanceConfig{}
	cfg.Pipeline.Attribution = ""
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if cfg.Performance.MaxConcurrent != 2 || cfg.Performance.MaxSummaries != 4 {
		t.Errorf("Performance = %+v", cfg.Performance)
	}
	if cfg.Pipeline.Attribution != "everywhere" {
		t.Errorf("Attribution = %q", cfg.Pipeline.Attribution)
	}
}

func TestLoad(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
logging:
  level: "debug"
  format: "json"

paths:
  settings: "data/settings.yaml"
  output: "data/output"

gemini:
  api_keys: ["k1", "k2"]
  timeout: 45s

pipeline:
  attribution: turns

export:
  pdf: true
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("Level = %v, want %v", cfg.Logging.Level, "debug")
	}
	if cfg.Paths.Settings != "data/settings.yaml" {
		t.Errorf("Settings = %v, want %v", cfg.Paths.Settings, "data/settings.yaml")
	}
	if cfg.Paths.Watch != "data/input" {
		t.Errorf("Watch = %v, want default %v", cfg.Paths.Watch, "data/input")
	}
	if cfg.Gemini.Timeout != 45*time.Second {
		t.Errorf("Timeout = %v, want %v", cfg.Gemini.Timeout, 45*time.Second)
	}
	if cfg.Gemini.Model != "gemini-2.5-flash" {
		t.Errorf("Model = %v", cfg.Gemini.Model)
	}
	if cfg.Pipeline.Attribution != "turns" {
		t.Errorf("Attribution = %v", cfg.Pipeline.Attribution)
	}
	if !cfg.Export.PDF || cfg.Export.DOCX {
		t.Errorf("Export = %+v", cfg.Export)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEMINI_API_KEY", "primary")
	t.Setenv("GEMINI_API_KEYS", "a,b")
	t.Setenv("GEMINI_MODEL", "gemini-2.5-pro")
	t.Setenv("LOG_LEVEL", "WARN")
	t.Setenv("SERVER_ADDR", "0.0.0.0:9090")
	t.Setenv("SETTINGS_PATH", "/tmp/s.yaml")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if want := []string{"primary", "a", "b"}; !reflect.DeepEqual(cfg.Gemini.APIKeys, want) {
		t.Errorf("APIKeys = %v, want %v", cfg.Gemini.APIKeys, want)
	}
	if cfg.Gemini.Model != "gemini-2.5-pro" {
		t.Errorf("Model = %v", cfg.Gemini.Model)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Level = %v, want warn", cfg.Logging.Level)
	}
	if cfg.Server.Addr != "0.0.0.0:9090" {
		t.Errorf("Addr = %v", cfg.Server.Addr)
	}
	if cfg.Paths.Settings != "/tmp/s.yaml" {
		t.Errorf("Settings = %v", cfg.Paths.Settings)
	}
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("GEMINI_MODEL=from-dotenv\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("LoadDotEnv() error = %v", err)
	}
	if got := os.Getenv("GEMINI_MODEL"); got != "from-dotenv" {
		t.Errorf("GEMINI_MODEL = %q", got)
	}

	if err := LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Errorf("LoadDotEnv() missing file error = %v, want nil", err)
	}
}

func TestLoadInvalidFile(t *testing.T) {
	_, err := Load("nonexistent.yaml")
	if err == nil {
		t.Error("Load() should return error for nonexistent file")
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("logging: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load() should fail on malformed YAML")
	}
}

func TestLoadExampleConfig(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join("..", "..", "config.example.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Pipeline.Attribution != "everywhere" || cfg.Gemini.Timeout != 2*time.Minute {
		t.Errorf("cfg = %+v", cfg)
	}
}
