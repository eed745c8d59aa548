// Package config loads the optional adminui.yaml file.
//
// The build step runs without any configuration file; every field has a
// default that reproduces the bare invocation. Unlike most YAML loaders in
// this family, no environment variables are expanded and no .env file is
// read: the page build reads nothing from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	ferrors "git.home.luguber.info/familyai/adminui/internal/foundation/errors"
)

// CurrentVersion is the only configuration schema version accepted by Load.
const CurrentVersion = "1.0"

// DefaultFileName is the file written by Init when no path is given.
const DefaultFileName = "adminui.yaml"

// Config is the adminui.yaml document.
type Config struct {
	Version    string           `yaml:"version"`
	Output     OutputConfig     `yaml:"output"`
	Logging    LoggingConfig    `yaml:"logging"`
	Monitoring MonitoringConfig `yaml:"monitoring"`
}

// OutputConfig represents output configuration
type OutputConfig struct {
	Directory     string `yaml:"directory"`
	BaseDirectory string `yaml:"base_directory,omitempty"`
}

// LoggingConfig selects the slog handler and level.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// MonitoringConfig represents monitoring configuration
type MonitoringConfig struct {
	Metrics MetricsConfig `yaml:"metrics"`
}

// MetricsConfig points at a node exporter textfile collector file. Empty disables metrics.
type MetricsConfig struct {
	Textfile string `yaml:"textfile,omitempty"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Version: CurrentVersion,
		Logging: LoggingConfig{Level: LogLevelInfo, Format: LogFormatText},
	}
}

// Load reads, normalizes and validates the configuration file at configPath.
func Load(configPath string) (*Config, error) {
	// #nosec G304 -- configPath is chosen by the operator.
	data, err := os.ReadFile(configPath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ferrors.ConfigError(fmt.Sprintf("configuration file not found: %s", configPath)).
			WithCause(err).
			Build()
	}
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryFileSystem, "read config file").
			WithContext("path", configPath).
			Build()
	}

	cfg := Default()
	cfg.Version = ""
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, ferrors.ConfigError("failed to unmarshal config").
			WithCause(err).
			WithContext("path", configPath).
			Build()
	}

	if cfg.Version != CurrentVersion {
		return nil, ferrors.ConfigError(fmt.Sprintf("unsupported configuration version: %q (expected %s)", cfg.Version, CurrentVersion)).
			WithContext("path", configPath).
			Build()
	}

	normalize(cfg)
	if err := validate(cfg); err != nil {
		return nil, ferrors.ConfigError("configuration validation failed").
			WithCause(err).
			WithContext("path", configPath).
			Build()
	}
	return cfg, nil
}

func normalize(cfg *Config) {
	cfg.Output.Directory = strings.TrimSpace(cfg.Output.Directory)
	cfg.Output.BaseDirectory = strings.TrimSpace(cfg.Output.BaseDirectory)
	cfg.Monitoring.Metrics.Textfile = strings.TrimSpace(cfg.Monitoring.Metrics.Textfile)
	cfg.Logging.Level = NormalizeLogLevel(string(cfg.Logging.Level))
	cfg.Logging.Format = NormalizeLogFormat(string(cfg.Logging.Format))
}

func validate(cfg *Config) error {
	var errs []error
	if cfg.Output.BaseDirectory != "" && cfg.Output.Directory == "" {
		errs = append(errs, errors.New("output.base_directory requires output.directory"))
	}
	if cfg.Output.Directory != "" && filepath.IsAbs(cfg.Output.Directory) && cfg.Output.BaseDirectory != "" {
		errs = append(errs, errors.New("output.directory must be relative when output.base_directory is set"))
	}
	if strings.HasSuffix(cfg.Monitoring.Metrics.Textfile, string(filepath.Separator)) {
		errs = append(errs, errors.New("monitoring.metrics.textfile must name a file"))
	}
	return errors.Join(errs...)
}

// OutputDir returns the configured output directory, or "" when none is set.
func (c *Config) OutputDir() string {
	if c == nil || c.Output.Directory == "" {
		return ""
	}
	if c.Output.BaseDirectory != "" {
		return filepath.Join(c.Output.BaseDirectory, c.Output.Directory)
	}
	return c.Output.Directory
}

// Init writes an example configuration file.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return ferrors.ConfigError(fmt.Sprintf("configuration file already exists: %s (use --force to overwrite)", configPath)).Build()
	}

	example := Default()
	example.Output.Directory = "dist"

	data, err := yaml.Marshal(example)
	if err != nil {
		return ferrors.InternalError("failed to marshal example config").WithCause(err).Build()
	}

	if dir := filepath.Dir(configPath); dir != "." {
		// #nosec G301 -- config lives next to the project.
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return ferrors.WrapError(err, ferrors.CategoryFileSystem, "create config directory").Build()
		}
	}
	// #nosec G306 -- configuration holds no secrets.
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "write config file").Build()
	}
	return nil
}
