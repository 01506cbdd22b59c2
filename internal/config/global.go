// SPDX-License-Identifier: MPL-2.0

package config

// Directory overrides for tests. os.UserHomeDir does not reliably
// respect the HOME environment variable on all platforms.
var (
	configDirOverride string
	cacheDirOverride  string
	stateDirOverride  string
)

// Reset clears test overrides. Call from test cleanup to restore
// defaults.
func Reset() {
	configDirOverride = ""
	cacheDirOverride = ""
	stateDirOverride = ""
}

// SetConfigDirOverride sets a custom config directory path.
func SetConfigDirOverride(dir string) {
	configDirOverride = dir
}

// SetCacheDirOverride sets a custom cache directory path.
func SetCacheDirOverride(dir string) {
	cacheDirOverride = dir
}

// SetStateDirOverride sets a custom state directory path.
func SetStateDirOverride(dir string) {
	stateDirOverride = dir
}
