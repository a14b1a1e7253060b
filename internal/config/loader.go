package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/comercialtoddy/CS2-Coach-AI-sub003/internal/types"
)

// ConfigLoader handles loading configuration from files.
type ConfigLoader interface {
	Load(path string) (*Config, error)
	LoadWithDefaults(path string) (*Config, error)
}

// viperConfigLoader implements ConfigLoader using Viper.
type viperConfigLoader struct {
	validator ConfigValidator
}

// NewConfigLoader creates a new ConfigLoader instance.
func NewConfigLoader(validator ConfigValidator) ConfigLoader {
	return &viperConfigLoader{
		validator: validator,
	}
}

// Load loads configuration from the specified file path.
// Returns an error if the file doesn't exist or cannot be parsed.
func (l *viperConfigLoader) Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	for key, value := range defaultSettings() {
		v.SetDefault(key, value)
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, types.WrapError(types.CONFIG_LOAD_FAILED, "failed to read config file", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, types.WrapError(types.CONFIG_LOAD_FAILED, "failed to unmarshal config", err)
	}

	// String fields support ${VAR_NAME} environment interpolation.
	cfg.Core.DataDir = interpolateString(cfg.Core.DataDir)
	cfg.Logging.Level = interpolateString(cfg.Logging.Level)
	cfg.Logging.Format = interpolateString(cfg.Logging.Format)

	if err := l.validator.Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadWithDefaults loads configuration from the specified file path.
// If the file doesn't exist, returns default configuration.
func (l *viperConfigLoader) LoadWithDefaults(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := DefaultConfig()
		if err := l.validator.Validate(cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	return l.Load(path)
}

// defaultSettings flattens DefaultConfig into viper keys so partial config
// files inherit defaults for omitted sections.
func defaultSettings() map[string]any {
	def := DefaultConfig()
	return map[string]any{
		"core.data_dir":                def.Core.DataDir,
		"core.debug":                   def.Core.Debug,
		"engine.default_timeout":       def.Engine.DefaultTimeout,
		"engine.backoff.initial_delay": def.Engine.Backoff.InitialDelay,
		"engine.backoff.max_delay":     def.Engine.Backoff.MaxDelay,
		"engine.backoff.multiplier":    def.Engine.Backoff.Multiplier,
		"health.probe_timeout":         def.Health.ProbeTimeout,
		"health.concurrency":           def.Health.Concurrency,
		"logging.level":                def.Logging.Level,
		"logging.format":               def.Logging.Format,
	}
}

// WriteDefault writes the default configuration as YAML to the given path,
// creating parent directories as needed. It refuses to overwrite an existing
// file.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return types.NewError(types.CONFIG_LOAD_FAILED, fmt.Sprintf("config file already exists: %s", path))
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return types.WrapError(types.CONFIG_LOAD_FAILED, "failed to create config directory", err)
	}

	data, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return types.WrapError(types.CONFIG_LOAD_FAILED, "failed to marshal default config", err)
	}

	return os.WriteFile(path, data, 0o644)
}

// interpolateString replaces ${VAR_NAME} with environment variable values.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

func interpolateString(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		varName := strings.TrimSuffix(strings.TrimPrefix(match, "${"), "}")
		if envValue := os.Getenv(varName); envValue != "" {
			return envValue
		}
		return match
	})
}
