// Copyright 2026 The Podgraph Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/podgraph-foundation/podgraph/lib/rdf"
)

// Config is the configuration for the Podgraph CLI tools.
type Config struct {
	// Pod locates the pod and the identity used against it.
	Pod PodConfig `yaml:"pod"`

	// HTTP configures the transport.
	HTTP HTTPConfig `yaml:"http"`

	// Snapshots configures local dataset snapshots.
	Snapshots SnapshotsConfig `yaml:"snapshots"`
}

// PodConfig locates the pod and the acting identity.
type PodConfig struct {
	// BaseURL is the root address of the pod, for example
	// https://alice.pod.example/. Required.
	BaseURL string `yaml:"base_url"`

	// WebID is the acting agent's identity address. Optional; access
	// queries for the acting agent need it.
	WebID string `yaml:"webid"`

	// TokenFile is the path of a file holding a bearer token, one
	// line. Optional; requests are unauthenticated without it.
	// Obtaining and refreshing the token is outside Podgraph's scope.
	TokenFile string `yaml:"token_file"`
}

// HTTPConfig configures the transport.
type HTTPConfig struct {
	// Timeout is the per-request timeout as a Go duration string.
	// Default: 30s.
	Timeout string `yaml:"timeout"`
}

// SnapshotsConfig configures local dataset snapshots.
type SnapshotsConfig struct {
	// Directory is where snapshot files are written.
	// Default: ${HOME}/.cache/podgraph/snapshots.
	Directory string `yaml:"directory"`
}

// Default returns the default configuration. Defaults exist to give
// every optional field a sensible value; pod.base_url has no default
// and must come from the file.
func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	return &Config{
		HTTP: HTTPConfig{
			Timeout: "30s",
		},
		Snapshots: SnapshotsConfig{
			Directory: filepath.Join(homeDir, ".cache", "podgraph", "snapshots"),
		},
	}
}

// Load loads configuration from the file named by the PODGRAPH_CONFIG
// environment variable. There are no fallbacks: if the variable is not
// set, Load fails.
func Load() (*Config, error) {
	path := os.Getenv("PODGRAPH_CONFIG")
	if path == "" {
		return nil, fmt.Errorf("PODGRAPH_CONFIG environment variable not set; " +
			"set it to the path of your podgraph.yaml config file, or use --config flag")
	}
	return LoadFile(path)
}

// LoadFile loads configuration from a specific file path. The config
// file is the single source of truth; environment variables do not
// override config values. The only expansion performed is ${HOME} and
// similar path variables for portability.
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
	c.Pod.TokenFile = expandVars(c.Pod.TokenFile, vars)
	c.Snapshots.Directory = expandVars(c.Snapshots.Directory, vars)
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

	if c.Pod.BaseURL == "" {
		errs = append(errs, fmt.Errorf("pod.base_url is required"))
	} else if _, err := rdf.ParseIRI(c.Pod.BaseURL); err != nil {
		errs = append(errs, fmt.Errorf("pod.base_url: %w", err))
	}

	if c.Pod.WebID != "" {
		if _, err := rdf.ParseIRI(c.Pod.WebID); err != nil {
			errs = append(errs, fmt.Errorf("pod.webid: %w", err))
		}
	}

	if c.HTTP.Timeout != "" {
		if _, err := time.ParseDuration(c.HTTP.Timeout); err != nil {
			errs = append(errs, fmt.Errorf("http.timeout: %w", err))
		}
	}

	if c.Snapshots.Directory == "" {
		errs = append(errs, fmt.Errorf("snapshots.directory is required"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// Timeout returns the parsed per-request timeout. Call Validate first;
// an unparseable value falls back to the default here.
func (c *Config) Timeout() time.Duration {
	timeout, err := time.ParseDuration(c.HTTP.Timeout)
	if err != nil || timeout <= 0 {
		return 30 * time.Second
	}
	return timeout
}

// BearerToken reads the configured token file and returns its trimmed
// contents. Returns "" without error when no token file is configured.
func (c *Config) BearerToken() (string, error) {
	if c.Pod.TokenFile == "" {
		return "", nil
	}
	data, err := os.ReadFile(c.Pod.TokenFile)
	if err != nil {
		return "", fmt.Errorf("reading token file: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}
