// Package config loads the tools' settings file.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"dario.cat/mergo"
	"github.com/go-playground/validator/v10"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

// Config is the settings file.
type Config struct {
	Lint      LintConfig      `yaml:"lint"`
	Explorer  ExplorerConfig  `yaml:"explorer"`
	Plugins   []PluginConfig  `yaml:"plugins" validate:"dive"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Log       LogConfig       `yaml:"log"`
}

type LintConfig struct {
	// Disable turns off all linting.
	Disable         bool     `yaml:"disable"`
	DisabledLinters []string `yaml:"disabledLinters"`
}

type ExplorerConfig struct {
	Kubeconfig string `yaml:"kubeconfig"`
	Namespace  string `yaml:"namespace"`
}

// PluginConfig names a diagnostics plugin binary.
type PluginConfig struct {
	Name string   `yaml:"name" validate:"required"`
	Path string   `yaml:"path" validate:"required"`
	Args []string `yaml:"args"`
}

type TelemetryConfig struct {
	ServiceName      string `yaml:"serviceName" validate:"required"`
	OTLPEndpoint     string `yaml:"otlpEndpoint" validate:"omitempty,hostname_port"`
	PyroscopeAddress string `yaml:"pyroscopeAddress" validate:"omitempty,url"`
}

type LogConfig struct {
	Level string `yaml:"level" validate:"required,oneof=debug info warn error"`
}

// Default returns the settings used where the file is silent.
func Default() Config {
	return Config{
		Telemetry: TelemetryConfig{ServiceName: "kubetools"},
		Log:       LogConfig{Level: "info"},
	}
}

// Load reads the settings file at path. An empty path yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		cfg := Default()
		return &cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes settings, fills unset values from the defaults and validates
// the result.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := mergo.Merge(cfg, Default()); err != nil {
		return nil, fmt.Errorf("failed to apply defaults: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field constraints and that plugin names are unique. All
// problems are reported together.
func (c *Config) Validate() error {
	var errs error
	if err := validator.New().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("configuration validation failed: %w", err)
		}
		for _, fe := range verrs {
			errs = multierr.Append(errs, fmt.Errorf("%s: failed %q validation", fe.Namespace(), fe.Tag()))
		}
	}
	seen := map[string]bool{}
	for _, p := range c.Plugins {
		if p.Name != "" && seen[p.Name] {
			errs = multierr.Append(errs, fmt.Errorf("plugin %q is configured more than once", p.Name))
		}
		seen[p.Name] = true
	}
	return errs
}

// LintDisabled reports whether linting is turned off.
func (c *Config) LintDisabled() bool {
	return c.Lint.Disable
}

// LinterDisabled reports whether the named linter is turned off.
func (c *Config) LinterDisabled(name string) bool {
	return slices.Contains(c.Lint.DisabledLinters, name)
}
