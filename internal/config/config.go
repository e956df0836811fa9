// Package config provides configuration management for the OSM cleaner.
package config

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// Configuration validation errors.
var (
	ErrInvalidProcessKinds     = errors.New("cleaning.process_kinds must list node, way or relation")
	ErrInvalidPassthroughKinds = errors.New("cleaning.passthrough_kinds must list node, way, relation or bounds")
	ErrProcessKindNotPassed    = errors.New("every cleaning.process_kinds entry must be in cleaning.passthrough_kinds")
	ErrInvalidPostcodeMode     = errors.New("cleaning.postcode_mode must be 'extract' or 'preserve'")
	ErrInvalidOutputFormat     = errors.New("output.format must be 'table' or 'yaml'")
	ErrInvalidSampleEvery      = errors.New("sample.every must be at least 1")
	ErrInvalidLogLevel         = errors.New("logging.level must be one of: debug, info, warn, error")
)

// fieldErrors maps struct fields to the error reported when their tag check fails.
var fieldErrors = map[string]error{
	"Config.Cleaning.ProcessKinds":     ErrInvalidProcessKinds,
	"Config.Cleaning.PassthroughKinds": ErrInvalidPassthroughKinds,
	"Config.Cleaning.PostcodeMode":     ErrInvalidPostcodeMode,
	"Config.Output.Format":             ErrInvalidOutputFormat,
	"Config.Sample.Every":              ErrInvalidSampleEvery,
	"Config.Logging.Level":             ErrInvalidLogLevel,
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	return v
}

// Config represents the complete cleaner configuration.
type Config struct {
	Cleaning CleaningConfig `yaml:"cleaning"`
	Output   OutputConfig   `yaml:"output"`
	Sample   SampleConfig   `yaml:"sample"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// CleaningConfig controls which elements are cleaned and how.
type CleaningConfig struct {
	// ProcessKinds are the element kinds whose tags are cleaned.
	ProcessKinds []string `yaml:"process_kinds" validate:"min=1,dive,oneof=node way relation"`
	// PassthroughKinds are the top-level kinds the clean run writes out.
	PassthroughKinds []string `yaml:"passthrough_kinds" validate:"min=1,dive,oneof=node way relation bounds"`
	PostcodeMode     string   `yaml:"postcode_mode" validate:"oneof=extract preserve"`
}

// OutputConfig defines output behavior.
type OutputConfig struct {
	// Format is the audit report format.
	Format      string `yaml:"format" validate:"oneof=table yaml"`
	PrettyPrint bool   `yaml:"pretty_print"`
}

// SampleConfig defines the sampling interval.
type SampleConfig struct {
	Every int `yaml:"every" validate:"min=1"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level string `yaml:"level" validate:"oneof=debug info warn error"`
	JSON  bool   `yaml:"json"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Cleaning: CleaningConfig{
			ProcessKinds:     []string{"node", "way"},
			PassthroughKinds: []string{"node", "way", "relation", "bounds"},
			PostcodeMode:     "extract",
		},
		Output: OutputConfig{
			Format: "table",
		},
		Sample: SampleConfig{
			Every: 80,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadConfig loads configuration from a YAML file. Settings missing from
// the file keep their Default value.
func LoadConfig(fsys afero.Fs, path string) (*Config, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves configuration to a YAML file.
func (c *Config) SaveConfig(fsys afero.Fs, path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := afero.WriteFile(fsys, path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fieldError(verrs[0])
		}

		return err
	}

	for _, kind := range c.Cleaning.ProcessKinds {
		if !slices.Contains(c.Cleaning.PassthroughKinds, kind) {
			return fmt.Errorf("%w: %s", ErrProcessKindNotPassed, kind)
		}
	}

	return nil
}

func fieldError(fe validator.FieldError) error {
	field, _, _ := strings.Cut(fe.StructNamespace(), "[")
	name := strings.TrimPrefix(fe.Namespace(), "Config.")

	if sentinel, ok := fieldErrors[field]; ok {
		return fmt.Errorf("%w: %s=%v", sentinel, name, fe.Value())
	}

	return fmt.Errorf("%s: failed %q check", name, fe.Tag())
}

// String returns a string representation of the config.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Process: %v, PostcodeMode: %s, SampleEvery: %d, Level: %s}",
		c.Cleaning.ProcessKinds,
		c.Cleaning.PostcodeMode,
		c.Sample.Every,
		c.Logging.Level,
	)
}
