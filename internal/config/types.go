// Copyright 2026 The Pullbind Authors
// SPDX-License-Identifier: Apache-2.0

package config

// Config is the root configuration structure. It consolidates settings from
// defaults, an optional YAML file, and environment overrides into a unified
// view used by the REST client and the CLI.
type Config struct {
	GitHub       GitHubConfig          `yaml:"github"`
	Defaults     DefaultsConfig        `yaml:"defaults"`
	Repositories map[string]RepoConfig `yaml:"repositories"`
	RateLimit    RateLimitConfig       `yaml:"rate_limit"`
}

// GitHubConfig contains GitHub-specific settings including the API endpoint
// and authentication configuration. Custom endpoints support GitHub
// Enterprise deployments.
type GitHubConfig struct {
	APIEndpoint string `yaml:"api_endpoint"`
	TokenEnv    string `yaml:"token_env"`
}

// DefaultsConfig contains default settings that apply to all operations
// unless overridden by repository-specific settings or command-line flags.
type DefaultsConfig struct {
	PageSize int `yaml:"page_size"`
}

// RepoConfig contains repository-specific overrides for fine-tuning behavior
// on individual repositories, such as smaller pages for repositories with
// very large pull requests.
type RepoConfig struct {
	PageSize int `yaml:"page_size"`
}

// RateLimitConfig controls behavior when the API reports an exhausted rate
// limit window: either wait for the reset automatically or fail with an
// error, optionally reporting progress during waits.
type RateLimitConfig struct {
	AutoWait     bool `yaml:"auto_wait"`
	ShowProgress bool `yaml:"show_progress"`
}

// DefaultConfig returns a Config with defaults suitable for public
// GitHub.com usage. Override for GitHub Enterprise or special requirements.
func DefaultConfig() *Config {
	return &Config{
		GitHub: GitHubConfig{
			APIEndpoint: "https://api.github.com",
			TokenEnv:    "GITHUB_TOKEN",
		},
		Defaults: DefaultsConfig{
			PageSize: 30,
		},
		Repositories: make(map[string]RepoConfig),
		RateLimit: RateLimitConfig{
			AutoWait:     false,
			ShowProgress: true,
		},
	}
}
