// SPDX-License-Identifier: MPL-2.0

// Package installog maintains the append-only install history file.
//
// Every install attempt writes a STARTED entry, then either SUCCEEDED
// or FAILED. Tool output captured during the run is teed into the log
// with an "  | " prefix so entries stay machine-parseable. The file is
// only ever opened for append; existing history is never rewritten.
package installog
