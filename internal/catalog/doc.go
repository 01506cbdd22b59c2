// SPDX-License-Identifier: MPL-2.0

// Package catalog defines the tool catalog model and its parsers.
//
// A catalog is an immutable, fully-constructed snapshot of categories and
// the installable tools inside them, built once per run. Two source
// grammars are accepted: a colon-delimited line format and a YAML document
// validated against an embedded CUE schema before decoding. Parsing is
// all-or-nothing: a single malformed record fails the whole load so no
// partial catalog ever reaches the menu.
package catalog
