// SPDX-License-Identifier: MPL-2.0

// Package issue provides user-facing error reporting primitives.
//
// ActionableError carries structured context (operation, resource,
// suggestions) for concise terminal diagnostics, while the issue registry
// holds longer markdown remediation pages rendered with Glamour for the
// handful of fatal startup failures where a one-liner is not enough.
package issue
