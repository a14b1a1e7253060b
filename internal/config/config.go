// Package config defines the assistant's configuration model and its
// YAML-backed loader.
package config

import (
	"time"
)

// Config is the root configuration for the coaching assistant.
type Config struct {
	Core    CoreConfig    `mapstructure:"core" yaml:"core"`
	Engine  EngineConfig  `mapstructure:"engine" yaml:"engine" validate:"required"`
	Health  HealthConfig  `mapstructure:"health" yaml:"health"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// CoreConfig contains core application settings.
type CoreConfig struct {
	DataDir string `mapstructure:"data_dir" yaml:"data_dir"`
	Debug   bool   `mapstructure:"debug" yaml:"debug"`
}

// EngineConfig controls tool execution defaults.
type EngineConfig struct {
	DefaultTimeout time.Duration `mapstructure:"default_timeout" yaml:"default_timeout" validate:"min=1ms"`
	Backoff        BackoffConfig `mapstructure:"backoff" yaml:"backoff"`
}

// BackoffConfig controls the retry delay schedule.
type BackoffConfig struct {
	InitialDelay time.Duration `mapstructure:"initial_delay" yaml:"initial_delay" validate:"min=1ms"`
	MaxDelay     time.Duration `mapstructure:"max_delay" yaml:"max_delay" validate:"min=1ms"`
	Multiplier   float64       `mapstructure:"multiplier" yaml:"multiplier" validate:"min=1"`
}

// HealthConfig controls how tool health probes run.
type HealthConfig struct {
	ProbeTimeout time.Duration `mapstructure:"probe_timeout" yaml:"probe_timeout" validate:"min=1ms"`
	Concurrency  int           `mapstructure:"concurrency" yaml:"concurrency" validate:"min=1,max=64"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level" validate:"omitempty,oneof=debug info warn error"`
	Format string `mapstructure:"format" yaml:"format" validate:"omitempty,oneof=json text"`
}
