// Package config provides configuration loading and validation for the CLI
// and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents settings that can be loaded from a JSON file. All fields
// are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Inputs
	Profile string `json:"profile,omitempty"` // Path to the profile JSON file
	Job     string `json:"job,omitempty"`     // Path to an analyzed job description JSON file
	JobURL  string `json:"job_url,omitempty"` // URL to fetch the job posting from
	Role    string `json:"role,omitempty"`    // Target role for role-only tailoring
	Company string `json:"company,omitempty"` // Target company name

	// Behavior
	APIKey      string `json:"api_key,omitempty"`     // Gemini API key
	UseBrowser  bool   `json:"use_browser,omitempty"` // Use headless browser for SPA job boards
	Verbose     bool   `json:"verbose,omitempty"`     // Print detailed debug information
	Concurrency int    `json:"concurrency,omitempty"` // Parallel LLM calls in the rewrite pass

	// Server
	ListenAddr  string `json:"listen_addr,omitempty"`  // HTTP listen address
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL for the job store
	RedisURL    string `json:"redis_url,omitempty"`    // Redis URL for the job store
}

// LoadConfig loads configuration from a JSON file
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values. Required fields are
// enforced by CLI flag validation after merging, not here.
func (c *Config) Validate() error {
	if c.Job != "" && c.JobURL != "" {
		return fmt.Errorf("config error: 'job' and 'job_url' are mutually exclusive")
	}
	if c.DatabaseURL != "" && c.RedisURL != "" {
		return fmt.Errorf("config error: 'database_url' and 'redis_url' are mutually exclusive")
	}
	if c.Concurrency < 0 {
		return fmt.Errorf("config error: 'concurrency' must be non-negative")
	}

	if c.Profile != "" {
		if _, err := os.Stat(c.Profile); os.IsNotExist(err) {
			return fmt.Errorf("config error: profile file not found: %s", c.Profile)
		}
	}
	if c.Job != "" {
		if _, err := os.Stat(c.Job); os.IsNotExist(err) {
			return fmt.Errorf("config error: job file not found: %s", c.Job)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with unset fields filled from
// defaults. This applies config-file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Profile == "" {
		result.Profile = defaults.Profile
	}
	if result.Job == "" {
		result.Job = defaults.Job
	}
	if result.JobURL == "" {
		result.JobURL = defaults.JobURL
	}
	if result.Role == "" {
		result.Role = defaults.Role
	}
	if result.Company == "" {
		result.Company = defaults.Company
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.ListenAddr == "" {
		result.ListenAddr = defaults.ListenAddr
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.RedisURL == "" {
		result.RedisURL = defaults.RedisURL
	}
	if result.Concurrency == 0 {
		result.Concurrency = defaults.Concurrency
	}
	if !result.UseBrowser {
		result.UseBrowser = defaults.UseBrowser
	}
	if !result.Verbose {
		result.Verbose = defaults.Verbose
	}

	return result
}
