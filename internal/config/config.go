// Package config provides configuration management for mcpdoctor using Viper.
package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/thoreinstein/mcpdoctor/internal/paths"
)

// Config represents the top-level configuration structure.
type Config struct {
	Version int `mapstructure:"version" yaml:"version"`

	// ConfigPath overrides the claude_desktop_config.json location.
	ConfigPath string `mapstructure:"config_path" yaml:"config_path"`

	// ProjectPath is the default project directory for coverage checks.
	ProjectPath string `mapstructure:"project_path" yaml:"project_path"`

	// CandidatePaths overrides the per-OS candidate config locations.
	CandidatePaths []string `mapstructure:"candidate_paths" yaml:"candidate_paths"`

	// CheckTimeout bounds each workspace access check.
	CheckTimeout time.Duration `mapstructure:"check_timeout" yaml:"check_timeout"`

	// SkipLiveChecks disables workspace access probing.
	SkipLiveChecks bool `mapstructure:"skip_live_checks" yaml:"skip_live_checks"`
}

// Default returns a configuration with default values.
func Default() *Config {
	return &Config{
		Version:      1,
		CheckTimeout: 2 * time.Second,
	}
}

// Init initializes Viper with default configuration.
// Call this once at application startup before accessing config values.
func Init() {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Search paths (in order of precedence)
	viper.AddConfigPath(".")
	viper.AddConfigPath(filepath.Join(paths.ConfigHome(), paths.AppName))

	viper.SetEnvPrefix("MCPDOCTOR")
	viper.AutomaticEnv()

	// Every key gets a default so AutomaticEnv values survive Unmarshal.
	viper.SetDefault("version", 1)
	viper.SetDefault("config_path", "")
	viper.SetDefault("project_path", "")
	viper.SetDefault("candidate_paths", []string{})
	viper.SetDefault("check_timeout", 2*time.Second)
	viper.SetDefault("skip_live_checks", false)
}

// Load reads the configuration file.
// If path is provided, it reads from that specific file.
// If path is empty, it searches in the default locations.
// Returns default values if no file is found and no explicit path was given.
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if path != "" {
				return nil, fmt.Errorf("config file not found at %s: %w", path, err)
			}
		} else {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}
