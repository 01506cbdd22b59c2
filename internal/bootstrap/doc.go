// SPDX-License-Identifier: MPL-2.0

// Package bootstrap verifies the host before any interactive work
// starts: the machine must be an Arch-based distribution, the package
// manager and privilege escalation must be present, and the fuzzy
// finder must exist or be installable. Optional helpers (flatpak, an
// AUR helper) only produce warnings when absent.
package bootstrap
