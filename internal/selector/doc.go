// SPDX-License-Identifier: MPL-2.0

// Package selector drives the interactive menu loop. Category and tool
// menus are rendered through an external fuzzy finder (fzf); the
// selector itself is a small state machine that moves between the main
// menu, a category's tool menu, and exit.
package selector
