package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

type TFrontendConfig struct {
	Addr             string `yaml:"addr"`
	ConnectTimeoutMs uint32 `yaml:"connect_timeout_ms"`
	RequestTimeoutMs uint32 `yaml:"request_timeout_ms"`
	MaxRetries       uint64 `yaml:"max_retries"`
}

func (c *TFrontendConfig) ConnectTimeout() time.Duration {
	return time.Duration(c.ConnectTimeoutMs) * time.Millisecond
}

func (c *TFrontendConfig) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutMs) * time.Millisecond
}

type TLoggerConfig struct {
	Level string `yaml:"level"`
}

type TConfig struct {
	Frontend TFrontendConfig `yaml:"frontend"`
	Logger   TLoggerConfig   `yaml:"logger"`
}

func NewDefault() *TConfig {
	return &TConfig{
		Frontend: TFrontendConfig{
			ConnectTimeoutMs: 5000,
			RequestTimeoutMs: 60000,
			MaxRetries:       3,
		},
		Logger: TLoggerConfig{Level: "info"},
	}
}

func NewFromPath(path string) (*TConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file %v: %w", path, err)
	}

	cfg := NewDefault()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("yaml unmarshal: %w", err)
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

func validateConfig(c *TConfig) error {
	if err := validateFrontendConfig(&c.Frontend); err != nil {
		return fmt.Errorf("validate `frontend`: %w", err)
	}

	return nil
}

func validateFrontendConfig(c *TFrontendConfig) error {
	if c.Addr == "" {
		return fmt.Errorf("missing required field `addr`")
	}

	if c.RequestTimeoutMs == 0 {
		return fmt.Errorf("field `request_timeout_ms` must be positive")
	}

	return nil
}
