// SPDX-License-Identifier: MPL-2.0

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"archmate-cli/internal/issue"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	// AppName is the application name, used in directory paths.
	AppName = "archmate"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "toml"
)

// ConfigDir returns the archmate configuration directory,
// $XDG_CONFIG_HOME/archmate with a ~/.config fallback.
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	if configDirOverride != "" {
		return configDirOverride, nil
	}
	return xdgDir("XDG_CONFIG_HOME", ".config")
}

// CacheDir returns the directory for the cached remote catalog,
// $XDG_CACHE_HOME/archmate with a ~/.cache fallback.
func CacheDir() (string, error) {
	if cacheDirOverride != "" {
		return cacheDirOverride, nil
	}
	return xdgDir("XDG_CACHE_HOME", ".cache")
}

// StateDir returns the directory for the install log,
// $XDG_STATE_HOME/archmate with a ~/.local/state fallback.
func StateDir() (string, error) {
	if stateDirOverride != "" {
		return stateDirOverride, nil
	}
	return xdgDir("XDG_STATE_HOME", filepath.Join(".local", "state"))
}

func xdgDir(envVar, homeFallback string) (string, error) {
	dir := os.Getenv(envVar)
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		dir = filepath.Join(home, homeFallback)
	}
	return filepath.Join(dir, AppName), nil
}

// DefaultPath returns the default config file location.
func DefaultPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFileName+"."+ConfigFileExt), nil
}

// Load reads the configuration. An explicit path must exist; the
// default path is optional and falls back to defaults when absent.
// The returned string is the file actually loaded, empty when defaults
// were used.
func Load(path string) (*Config, string, error) {
	v := viper.New()
	v.SetConfigType(ConfigFileExt)

	defaults := DefaultConfig()
	v.SetDefault("catalog.url", defaults.Catalog.URL)
	v.SetDefault("catalog.path", defaults.Catalog.Path)
	v.SetDefault("catalog.format", defaults.Catalog.Format)
	v.SetDefault("catalog.cache_max_age_hours", defaults.Catalog.CacheMaxAgeHours)
	v.SetDefault("runner.kind", defaults.Runner.Kind)
	v.SetDefault("finder.binary", defaults.Finder.Binary)
	v.SetDefault("log.path", defaults.Log.Path)
	v.SetDefault("ui.verbose", defaults.UI.Verbose)

	resolvedPath := ""
	if path != "" {
		if !fileExists(path) {
			return nil, "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(path).
				WithSuggestion("Verify the file path is correct").
				WithSuggestion("Run 'archmate config init' to create a starter config").
				Wrap(fmt.Errorf("config file not found: %s", path)).
				BuildError()
		}
		resolvedPath = path
	} else {
		defaultPath, err := DefaultPath()
		if err != nil {
			return nil, "", err
		}
		if fileExists(defaultPath) {
			resolvedPath = defaultPath
		}
	}

	if resolvedPath != "" {
		v.SetConfigFile(resolvedPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(resolvedPath).
				WithSuggestion("Check that the file contains valid TOML syntax").
				WithSuggestion("Run 'archmate config show' to see the effective configuration").
				Wrap(err).
				BuildError()
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", issue.NewErrorContext().
			WithOperation("validate configuration").
			WithResource(resolvedPath).
			WithSuggestion("Fix the offending field or remove it to use the default").
			Wrap(err).
			BuildError()
	}
	return &cfg, resolvedPath, nil
}

// CatalogCachePath returns where the remote catalog is cached.
func CatalogCachePath() (string, error) {
	dir, err := CacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "catalog"), nil
}

// InstallLogPath resolves the install log location: the configured
// path, or the default under the state directory.
func (c *Config) InstallLogPath() (string, error) {
	if c.Log.Path != "" {
		return c.Log.Path, nil
	}
	dir, err := StateDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "install.log"), nil
}

// CreateDefault writes a starter config file at the default path. It
// refuses to overwrite an existing file.
func CreateDefault() (string, error) {
	path, err := DefaultPath()
	if err != nil {
		return "", err
	}
	if fileExists(path) {
		return path, fmt.Errorf("config file already exists: %s", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(DefaultConfig())
	if err != nil {
		return "", fmt.Errorf("failed to encode default config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}
	return path, nil
}

// Render returns cfg as TOML, for the config show command.
func Render(cfg *Config) (string, error) {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("failed to encode config: %w", err)
	}
	return string(data), nil
}

// fileExists checks if a file exists and is not a directory.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}
