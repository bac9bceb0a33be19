// Copyright 2026 The Pullbind Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration management for pullbind with support
// for multiple sources and a well-defined precedence order.
//
// Configuration sources (in precedence order, highest to lowest):
//  1. Command-line flags
//  2. Environment variables
//  3. Repository-specific configuration
//  4. Configuration file
//  5. Built-in defaults
//
// The package supports YAML configuration files with automatic discovery in
// standard locations and is designed to work with GitHub Enterprise
// deployments through a configurable API endpoint.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from multiple sources and applies them in
// the correct precedence order. If configPath is provided, it loads from
// that specific file. Otherwise it searches standard locations:
//   - .pullbind.yaml (current directory)
//   - .pullbind.yml (current directory)
//   - ~/.pullbind/config.yaml
//   - ~/.pullbind/config.yml
//
// Environment variables are applied after loading the config file, allowing
// runtime overrides. Returns an error if the specified config file cannot be
// loaded, but succeeds with defaults if no file is found in standard
// locations.
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if err := loadConfigFile(configPath, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	} else {
		defaultPaths := []string{
			".pullbind.yaml",
			".pullbind.yml",
			filepath.Join(os.Getenv("HOME"), ".pullbind", "config.yaml"),
			filepath.Join(os.Getenv("HOME"), ".pullbind", "config.yml"),
		}

		for _, path := range defaultPaths {
			if _, err := os.Stat(path); err == nil {
				if err := loadConfigFile(path, cfg); err != nil {
					return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
				}
				break
			}
		}
	}

	applyEnvOverrides(cfg)

	return cfg, nil
}

// loadConfigFile reads and parses a YAML config file
func loadConfigFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(cfg *Config) {
	if endpoint := os.Getenv("GITHUB_API_ENDPOINT"); endpoint != "" {
		cfg.GitHub.APIEndpoint = endpoint
	}
	if pageSize := os.Getenv("PULLBIND_PAGE_SIZE"); pageSize != "" {
		if size, err := strconv.Atoi(pageSize); err == nil && size > 0 {
			cfg.Defaults.PageSize = size
		}
	}
	if autoWait := os.Getenv("PULLBIND_RATE_LIMIT_AUTO_WAIT"); autoWait != "" {
		cfg.RateLimit.AutoWait = parseBool(autoWait)
	}
}

// parseBool parses various boolean representations
func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "true" || s == "yes" || s == "1" || s == "on"
}

// GetPageSize returns the effective page size for a repository, taking
// repository-specific overrides into account. The repo parameter is in
// "owner/repo" format.
func (c *Config) GetPageSize(repo string) int {
	if repoConfig, ok := c.Repositories[repo]; ok && repoConfig.PageSize > 0 {
		return repoConfig.PageSize
	}
	return c.Defaults.PageSize
}

// Validate checks if the configuration contains valid values. Call after
// loading configuration to catch invalid settings early.
func (c *Config) Validate() error {
	if c.Defaults.PageSize <= 0 {
		return fmt.Errorf("default page size must be positive, got: %d", c.Defaults.PageSize)
	}
	if c.Defaults.PageSize > 100 {
		return fmt.Errorf("default page size %d exceeds GitHub API limit of 100", c.Defaults.PageSize)
	}
	if c.GitHub.APIEndpoint == "" {
		return fmt.Errorf("GitHub API endpoint cannot be empty")
	}
	return nil
}
