// Package config loads the settings of the foprops command from
// an optional YAML file and FOPROPS_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the whole configuration.
type Config struct {
	Logger  LoggerConfig  `mapstructure:"logger" yaml:"logger"`
	Resolve ResolveConfig `mapstructure:"resolve" yaml:"resolve"`
}

// LoggerConfig selects the level, encoding and destinations of the logs.
type LoggerConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"` // "console" or "json"
	// LogFile, when not empty, receives a copy of the logs as JSON,
	// rotated according to the Max* fields.
	LogFile    string `mapstructure:"log_file" yaml:"log_file"`
	MaxSize    int    `mapstructure:"max_size" yaml:"max_size"` // megabytes
	MaxBackups int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge     int    `mapstructure:"max_age" yaml:"max_age"` // days
	Compress   bool   `mapstructure:"compress" yaml:"compress"`
}

// ResolveConfig drives the resolve command.
type ResolveConfig struct {
	// Properties to resolve on every node, by name.
	Properties []string `mapstructure:"properties" yaml:"properties"`
	// Workers is the number of documents resolved concurrently.
	Workers int    `mapstructure:"workers" yaml:"workers"`
	Units   string `mapstructure:"units" yaml:"units"`   // "pt" or "fixed"
	Format  string `mapstructure:"format" yaml:"format"` // "text" or "yaml"
}

// SetDefaults registers the default values on [v].
func SetDefaults(v *viper.Viper) {
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 10)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 28)
	v.SetDefault("logger.compress", false)

	v.SetDefault("resolve.properties", []string{"start-indent", "end-indent"})
	v.SetDefault("resolve.workers", 4)
	v.SetDefault("resolve.units", "pt")
	v.SetDefault("resolve.format", "text")
}

// New returns a viper instance with defaults and environment bindings.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix("FOPROPS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the configuration file at [path] (if not empty) into [v]
// and returns the validated result.
func Load(v *viper.Viper, path string) (Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the enumerated settings.
func (cfg Config) Validate() error {
	switch cfg.Logger.Format {
	case "console", "json":
	default:
		return fmt.Errorf("invalid logger format %q", cfg.Logger.Format)
	}
	switch cfg.Resolve.Units {
	case "pt", "fixed":
	default:
		return fmt.Errorf("invalid units %q", cfg.Resolve.Units)
	}
	switch cfg.Resolve.Format {
	case "text", "yaml":
	default:
		return fmt.Errorf("invalid output format %q", cfg.Resolve.Format)
	}
	if cfg.Resolve.Workers < 1 {
		return errors.New("at least one worker is required")
	}
	return nil
}
