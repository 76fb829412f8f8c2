package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

type Config struct {
	Logging     LoggingConfig     `yaml:"logging"`
	Paths       PathsConfig       `yaml:"paths"`
	Gemini      GeminiConfig      `yaml:"gemini"`
	Pipeline    PipelineConfig    `yaml:"pipeline"`
	Export      ExportConfig      `yaml:"export"`
	Performance PerformanceConfig `yaml:"performance"`
	Server      ServerConfig      `yaml:"server"`
}

type LoggingConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=console json text"`
}

type PathsConfig struct {
	Settings string `yaml:"settings" validate:"required"`
	Watch    string `yaml:"watch"`
	Output   string `yaml:"output"`
}

type GeminiConfig struct {
	Model   string        `yaml:"model" validate:"required"`
	APIKeys []string      `yaml:"api_keys"`
	Timeout time.Duration `yaml:"timeout" validate:"min=0"`
}

type PipelineConfig struct {
	Attribution string `yaml:"attribution" validate:"oneof=everywhere turns"`
}

type ExportConfig struct {
	DOCX bool `yaml:"docx"`
	PDF  bool `yaml:"pdf"`
	Open bool `yaml:"open"`
}

type PerformanceConfig struct {
	MaxConcurrent int `yaml:"max_concurrent" validate:"min=1,max=64"`
	MaxSummaries  int `yaml:"max_summaries" validate:"min=1,max=64"`
}

type ServerConfig struct {
	Addr string `yaml:"addr" validate:"required,hostname_port"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Paths: PathsConfig{
			Settings: "settings.yaml",
			Watch:    "data/input",
		},
		Gemini: GeminiConfig{
			Model:   "gemini-2.5-flash",
			Timeout: 2 * time.Minute,
		},
		Pipeline: PipelineConfig{
			Attribution: "everywhere",
		},
		Performance: PerformanceConfig{
			MaxConcurrent: 2,
			MaxSummaries:  4,
		},
		Server: ServerConfig{
			Addr: "127.0.0.1:8080",
		},
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func (c *Config) Validate() error {
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "console"
	}
	if c.Pipeline.Attribution == "" {
		c.Pipeline.Attribution = "everywhere"
	}
	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 2
	}
	if c.Performance.MaxSummaries == 0 {
		c.Performance.MaxSummaries = 4
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.5-flash"
	}
	c.Logging.Level = strings.ToLower(c.Logging.Level)

	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.TrimPrefix(fe.Namespace(), "Config.")
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s: must satisfy %s=%s (got %v)", field, fe.Tag(), fe.Param(), fe.Value()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s is %s", field, fe.Tag()))
		}
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}
