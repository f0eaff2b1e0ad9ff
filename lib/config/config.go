// Copyright 2026 The Desk Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for the desk client.
//
// Configuration is loaded from a single YAML file specified by:
//   - DESK_CONFIG environment variable, or
//   - --config flag passed to the command
//
// Unlike a service deployment, a client has to be useful out of the
// box: when neither is set, the built-in defaults apply (local
// backend, well-known session path). A .env file in the working
// directory is loaded first, so DESK_CONFIG and DESK_SESSION_FILE can
// live next to a project checkout.
//
// The config file may contain environment-specific sections
// (development, staging, production) that override base values when
// the environment matches.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment represents the deployment environment.
type Environment string

const (
	// Development is for local development machines.
	Development Environment = "development"
	// Staging is for pre-production testing.
	Staging Environment = "staging"
	// Production is for production deployments.
	Production Environment = "production"
)

// Config is the master configuration for the desk client.
type Config struct {
	// Environment identifies the deployment type (development, staging, production).
	Environment Environment `yaml:"environment"`

	// Portal configures the backend connection.
	Portal PortalConfig `yaml:"portal"`

	// Session configures identity persistence.
	Session SessionConfig `yaml:"session"`

	// Operator configures the operator console capability.
	Operator OperatorConfig `yaml:"operator"`

	// Per-environment overrides, applied after the base config loads.
	Development *ConfigOverrides `yaml:"development,omitempty"`
	Staging     *ConfigOverrides `yaml:"staging,omitempty"`
	Production  *ConfigOverrides `yaml:"production,omitempty"`
}

// ConfigOverrides contains fields that can be overridden per environment.
type ConfigOverrides struct {
	Portal   *PortalConfig   `yaml:"portal,omitempty"`
	Session  *SessionConfig  `yaml:"session,omitempty"`
	Operator *OperatorConfig `yaml:"operator,omitempty"`
}

// PortalConfig configures the backend connection.
type PortalConfig struct {
	// BaseURL is the portal backend base URL.
	// Default: http://localhost:7000
	BaseURL string `yaml:"base_url"`
}

// SessionConfig configures identity persistence.
type SessionConfig struct {
	// File is the session file path. Empty selects the well-known
	// location (DESK_SESSION_FILE env, else ~/.config/desk/session.json).
	File string `yaml:"file"`
}

// OperatorConfig configures the operator console capability. The
// operator surface is a capability flag rather than a separate build:
// client installs leave it off, support-desk installs turn it on.
type OperatorConfig struct {
	// Enabled exposes the operator views in the console.
	Enabled bool `yaml:"enabled"`

	// Author is the name attached to operator comments.
	// Default: "operator"
	Author string `yaml:"author"`
}

// Default returns the default configuration — a usable local setup,
// since a client cannot demand a config file the way a service can.
func Default() *Config {
	return &Config{
		Environment: Development,
		Portal: PortalConfig{
			BaseURL: "http://localhost:7000",
		},
		Operator: OperatorConfig{
			Author: "operator",
		},
	}
}

// Load loads configuration from the DESK_CONFIG environment variable,
// falling back to defaults when it is not set. A .env file in the
// working directory is applied to the environment first; a missing
// .env is not an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	configPath := os.Getenv("DESK_CONFIG")
	if configPath == "" {
		return Default(), nil
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path. The file is
// merged over the defaults, then the matching environment section is
// applied.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	cfg.applyEnvironmentOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks invariants that would otherwise surface as confusing
// runtime failures.
func (c *Config) Validate() error {
	switch c.Environment {
	case Development, Staging, Production:
	default:
		return fmt.Errorf("unknown environment %q", c.Environment)
	}
	if c.Portal.BaseURL == "" {
		return fmt.Errorf("portal.base_url is required")
	}
	return nil
}

// applyEnvironmentOverrides applies the section matching Environment.
func (c *Config) applyEnvironmentOverrides() {
	var overrides *ConfigOverrides
	switch c.Environment {
	case Development:
		overrides = c.Development
	case Staging:
		overrides = c.Staging
	case Production:
		overrides = c.Production
	}
	if overrides == nil {
		return
	}

	if overrides.Portal != nil {
		c.Portal = *overrides.Portal
	}
	if overrides.Session != nil {
		c.Session = *overrides.Session
	}
	if overrides.Operator != nil {
		c.Operator = *overrides.Operator
	}
}
