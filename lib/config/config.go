// Copyright 2026 The Tissuebox Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/tissueworks/tissuebox/lib/tissuefile"
)

// Config is the resolved tissue configuration.
type Config struct {
	// File is the tissuebox path commands operate on. Relative paths
	// resolve against the working directory of the invocation.
	File string `yaml:"file"`

	// GitHub configures issue promotion.
	GitHub GitHubConfig `yaml:"github"`

	// ExcludeFromGit controls whether first-run setup offers to add
	// the tissuebox to the repository's .git/info/exclude.
	ExcludeFromGit bool `yaml:"exclude_from_git"`
}

// GitHubConfig configures the API client used by promote.
type GitHubConfig struct {
	// Owner is the account issues are created under. The promote
	// command's --owner flag overrides it.
	Owner string `yaml:"owner"`

	// Repo is the repository issues are created in. The promote
	// command's --repo flag overrides it.
	Repo string `yaml:"repo"`

	// BaseURL is the API endpoint.
	// Default: https://api.github.com (override for GitHub Enterprise).
	BaseURL string `yaml:"base_url"`

	// TokenEnv names the environment variable holding the API token.
	// Default: GITHUB_TOKEN. The token itself never appears in the
	// settings file.
	TokenEnv string `yaml:"token_env"`
}

// Default returns the default configuration. The settings file only
// overrides these values, so every field has a working default and no
// file is required.
func Default() *Config {
	return &Config{
		File: tissuefile.DefaultPath,
		GitHub: GitHubConfig{
			BaseURL:  "https://api.github.com",
			TokenEnv: "GITHUB_TOKEN",
		},
		ExcludeFromGit: true,
	}
}

// DefaultPath returns the default settings file location,
// ~/.config/tissue/config.yaml (following os.UserConfigDir on other
// platforms).
func DefaultPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating user config directory: %w", err)
	}
	return filepath.Join(configDir, "tissue", "config.yaml"), nil
}

// Load loads configuration from the default path. A missing file is
// not an error; the defaults apply unchanged.
func Load() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return LoadFile(path)
}

// LoadFile loads configuration from a specific file path, merging the
// file's values over the defaults. A missing or empty file is not an
// error.
//
// Decoding is strict: keys the configuration does not define are
// rejected, so a typo fails loudly instead of silently falling back to
// a default.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return cfg, nil
		}
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if c.File == "" {
		errs = append(errs, fmt.Errorf("file is required"))
	}

	if c.GitHub.BaseURL == "" {
		errs = append(errs, fmt.Errorf("github.base_url is required"))
	}

	if c.GitHub.TokenEnv == "" {
		errs = append(errs, fmt.Errorf("github.token_env is required"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// Token reads the API token from the environment variable named by
// github.token_env. The error names the variable so the user knows
// what to export.
func (c *Config) Token() (string, error) {
	token := os.Getenv(c.GitHub.TokenEnv)
	if token == "" {
		return "", fmt.Errorf("%s environment variable not set; export a GitHub token to promote tissues", c.GitHub.TokenEnv)
	}
	return token, nil
}
