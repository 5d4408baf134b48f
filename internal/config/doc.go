// Package config provides configuration management for the mcpdoctor CLI.
//
// This package handles the tool's own settings file. It is distinct from
// the Claude Desktop configuration being diagnosed, which is read by
// internal/mcpconfig and never written here.
//
// # Configuration File
//
// The default configuration file location is ~/.config/mcpdoctor/config.yaml.
// The configuration file uses YAML format with the following structure:
//
//	version: 1
//	config_path: /custom/claude_desktop_config.json  # optional
//	project_path: /home/u/project                    # optional
//	check_timeout: 2s
//
// Every key can also be supplied through the environment with the
// MCPDOCTOR_ prefix, e.g. MCPDOCTOR_PROJECT_PATH.
//
// # Loading Configuration
//
// Call [Init] once at startup, then [Load]:
//
//	config.Init()
//	cfg, err := config.Load("")
//	if err != nil {
//	    return fmt.Errorf("loading config: %w", err)
//	}
//
// # Validation
//
// Loaded configurations can be validated with [Validate], which returns a
// slice of errors rather than stopping at the first problem.
package config
