// SPDX-License-Identifier: MPL-2.0

package config

import (
	"fmt"

	"archmate-cli/internal/catalog"
	"archmate-cli/internal/runner"
)

// DefaultCatalogURL is where the catalog is fetched from when no local
// path is configured.
const DefaultCatalogURL = "https://raw.githubusercontent.com/archmate/catalog/main/catalog.yaml"

type (
	// Config is the full archmate configuration.
	Config struct {
		Catalog CatalogConfig `mapstructure:"catalog" toml:"catalog"`
		Runner  RunnerConfig  `mapstructure:"runner" toml:"runner"`
		Finder  FinderConfig  `mapstructure:"finder" toml:"finder"`
		Log     LogConfig     `mapstructure:"log" toml:"log"`
		UI      UIConfig      `mapstructure:"ui" toml:"ui"`
	}

	// CatalogConfig controls where the catalog comes from and how it is
	// parsed.
	CatalogConfig struct {
		// URL is the remote catalog endpoint. Ignored when Path is set.
		URL string `mapstructure:"url" toml:"url"`
		// Path points at a local catalog file. Overrides URL.
		Path string `mapstructure:"path" toml:"path"`
		// Format is auto, line, or yaml.
		Format string `mapstructure:"format" toml:"format"`
		// CacheMaxAgeHours is how long a cached remote catalog stays
		// fresh.
		CacheMaxAgeHours int `mapstructure:"cache_max_age_hours" toml:"cache_max_age_hours"`
	}

	// RunnerConfig selects the command execution backend.
	RunnerConfig struct {
		// Kind is native or virtual.
		Kind string `mapstructure:"kind" toml:"kind"`
	}

	// FinderConfig controls the external fuzzy finder.
	FinderConfig struct {
		// Binary is the finder executable.
		Binary string `mapstructure:"binary" toml:"binary"`
	}

	// LogConfig controls the install history file.
	LogConfig struct {
		// Path is the install log location. Empty means the default
		// under the state directory.
		Path string `mapstructure:"path" toml:"path"`
	}

	// UIConfig holds presentation settings.
	UIConfig struct {
		// Verbose enables debug diagnostics.
		Verbose bool `mapstructure:"verbose" toml:"verbose"`
	}
)

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Catalog: CatalogConfig{
			URL:              DefaultCatalogURL,
			Format:           string(catalog.FormatAuto),
			CacheMaxAgeHours: 24,
		},
		Runner: RunnerConfig{Kind: string(runner.KindNative)},
		Finder: FinderConfig{Binary: "fzf"},
		UI:     UIConfig{},
	}
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	if !catalog.Format(c.Catalog.Format).IsValid() {
		return fmt.Errorf("catalog.format: unknown format %q (want auto, line, or yaml)", c.Catalog.Format)
	}
	if !runner.Kind(c.Runner.Kind).IsValid() {
		return fmt.Errorf("runner.kind: unknown runner %q (want native or virtual)", c.Runner.Kind)
	}
	if c.Catalog.CacheMaxAgeHours < 0 {
		return fmt.Errorf("catalog.cache_max_age_hours: must not be negative, got %d", c.Catalog.CacheMaxAgeHours)
	}
	if c.Finder.Binary == "" {
		return fmt.Errorf("finder.binary: must not be empty")
	}
	return nil
}
