// SPDX-License-Identifier: MPL-2.0

// Package install runs one catalog tool's install command end to end:
// syntax check, confirmation, history logging, execution with output
// teed into the install log, and the final success or failure record.
package install
