// SPDX-License-Identifier: MPL-2.0

// Package source acquires raw catalog bytes for one run.
//
// A Loader reads either a local file or a remote document fetched over
// plain HTTP GET. Remote content is cached on disk with a time-boxed
// staleness window; a JSON sidecar records when, from where, and with
// which content hash the cache was last written. When a fetch fails and
// a cache exists, the loader falls back to the cache with a warning.
package source
