// SPDX-License-Identifier: MPL-2.0

// Package config loads the archmate configuration from a TOML file,
// layered over built-in defaults with viper. The file is optional; a
// missing file means defaults.
package config
