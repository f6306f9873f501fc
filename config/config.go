// Copyright 2026 The Parley Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the master configuration for the Parley client.
type Config struct {
	// Backend configures the remote messaging service.
	Backend BackendConfig `yaml:"backend"`

	// Session configures local session behavior.
	Session SessionConfig `yaml:"session"`

	// Notify configures how asynchronous events are surfaced.
	Notify NotifyConfig `yaml:"notify"`
}

// BackendConfig configures the remote messaging service.
type BackendConfig struct {
	// URL is the base URL of the backend API.
	// Default: https://api.parley.im
	URL string `yaml:"url"`

	// RequestTimeout bounds ordinary (non-long-poll) API calls.
	// Duration string, e.g. "30s". Default: 30s.
	RequestTimeout string `yaml:"request_timeout"`
}

// SessionConfig configures local session behavior.
type SessionConfig struct {
	// File is where the login token is persisted between runs.
	// Default: ${HOME}/.config/parley/session.json
	// The PARLEY_SESSION_FILE environment variable takes precedence
	// over this value.
	File string `yaml:"file"`

	// RefreshLimit is how many recent threads the startup cache
	// refresh requests. Default: 20.
	RefreshLimit int `yaml:"refresh_limit"`

	// Folders selects which thread folders the refresh covers.
	// Default: [inbox].
	Folders []string `yaml:"folders"`
}

// NotifyConfig configures how asynchronous events are surfaced.
type NotifyConfig struct {
	// Title enables terminal-title unread counters.
	// Default: true.
	Title *bool `yaml:"title"`

	// Preview includes message bodies in inline notifications.
	// Default: true.
	Preview *bool `yaml:"preview"`
}

// Default returns the built-in configuration. Unlike a server
// deployment, the client works without any config file; the file only
// overrides these values.
func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	enabled := true

	return &Config{
		Backend: BackendConfig{
			URL:            "https://api.parley.im",
			RequestTimeout: "30s",
		},
		Session: SessionConfig{
			File:         filepath.Join(homeDir, ".config", "parley", "session.json"),
			RefreshLimit: 20,
			Folders:      []string{"inbox"},
		},
		Notify: NotifyConfig{
			Title:   &enabled,
			Preview: &enabled,
		},
	}
}

// Load loads configuration from the PARLEY_CONFIG environment
// variable. An unset variable yields the defaults — the config file is
// optional for the client.
func Load() (*Config, error) {
	configPath := os.Getenv("PARLEY_CONFIG")
	if configPath == "" {
		return Default(), nil
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path, merging over
// the defaults. The config file is the single source of truth beyond
// the defaults; environment variables do not override config values.
// The only expansion performed is ${HOME} and similar path variables
// for portability.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	cfg.expandVariables()
	return cfg, nil
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in path
// fields.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}
	c.Session.File = expandVars(c.Session.File, vars)
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	parsed, err := url.Parse(c.Backend.URL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		errs = append(errs, fmt.Errorf("backend.url must be an absolute URL, got %q", c.Backend.URL))
	}

	if _, err := c.Timeout(); err != nil {
		errs = append(errs, fmt.Errorf("backend.request_timeout: %w", err))
	}

	if c.Session.RefreshLimit <= 0 {
		errs = append(errs, fmt.Errorf("session.refresh_limit must be positive, got %d", c.Session.RefreshLimit))
	}
	if len(c.Session.Folders) == 0 {
		errs = append(errs, fmt.Errorf("session.folders must not be empty"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// Timeout parses Backend.RequestTimeout.
func (c *Config) Timeout() (time.Duration, error) {
	return time.ParseDuration(c.Backend.RequestTimeout)
}

// SessionFile resolves the session file path, honoring the
// PARLEY_SESSION_FILE override.
func (c *Config) SessionFile() string {
	if path := os.Getenv("PARLEY_SESSION_FILE"); path != "" {
		return path
	}
	return c.Session.File
}

// TitleNotifications reports whether terminal-title counters are
// enabled.
func (c *Config) TitleNotifications() bool {
	return c.Notify.Title == nil || *c.Notify.Title
}

// PreviewNotifications reports whether inline notifications include
// message bodies.
func (c *Config) PreviewNotifications() bool {
	return c.Notify.Preview == nil || *c.Notify.Preview
}
