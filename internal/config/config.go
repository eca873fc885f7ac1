// Package config provides configuration types and defaults for the sourcechain command.
package config

import (
	"log/slog"

	"github.com/pkg/errors"
)

var (
	ErrSourceNameMustBeSet = errors.New("source name must be set")
	ErrStepTypeMustBeSet   = errors.New("step type must be set")
	ErrUnknownFormat       = errors.New("unknown output format")
)

// Output formats of the run report.
const (
	FormatText = "text"
	FormatYAML = "yaml"
)

// Config holds all configuration options for sourcechain.
type Config struct {
	Source   SourceConfig `mapstructure:"source"`
	Steps    []StepConfig `mapstructure:"steps"`
	Remove   []string     `mapstructure:"remove"`    // step names removed once every step is materialized
	Draw     string       `mapstructure:"draw"`      // DOT file written after the run
	Format   string       `mapstructure:"format"`    // "text" (default) or "yaml"
	LogLevel string       `mapstructure:"log_level"` // slog level name
}

// SourceConfig describes the source set of the chain.
type SourceConfig struct {
	Name  string   `mapstructure:"name"`
	Files []string `mapstructure:"files"`
}

// StepConfig describes one step of the chain.
type StepConfig struct {
	Type     string   `mapstructure:"type"`
	Name     string   `mapstructure:"name"` // generated when empty
	Patterns []string `mapstructure:"patterns"`
	Dir      string   `mapstructure:"dir"`
	Reverse  bool     `mapstructure:"reverse"`
}

// Defaults returns the default configuration.
func Defaults() Config {
	return Config{
		Source:   SourceConfig{Name: "main"},
		Format:   FormatText,
		LogLevel: "info",
	}
}

// Validate checks the configuration before any step is built.
func (c Config) Validate() error {
	if c.Source.Name == "" {
		return ErrSourceNameMustBeSet
	}

	for i, step := range c.Steps {
		if step.Type == "" {
			return errors.Wrapf(ErrStepTypeMustBeSet, "step %d", i)
		}
	}

	switch c.Format {
	case FormatText, FormatYAML:
	default:
		return errors.Wrapf(ErrUnknownFormat, "%q", c.Format)
	}

	_, err := c.Level()

	return err
}

// Level parses LogLevel.
func (c Config) Level() (slog.Level, error) {
	var level slog.Level

	err := level.UnmarshalText([]byte(c.LogLevel))
	if err != nil {
		return level, errors.Wrapf(err, "invalid log level %q", c.LogLevel)
	}

	return level, nil
}
