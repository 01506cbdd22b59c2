// SPDX-License-Identifier: MPL-2.0

// Package tui provides the small interactive widgets that are not
// delegated to the external fuzzy finder, currently the yes/no
// confirmation shown before a command runs.
package tui
