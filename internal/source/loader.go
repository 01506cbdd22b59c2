// SPDX-License-Identifier: MPL-2.0

package source

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
)

type (
	// Origin says where the catalog bytes came from.
	Origin string

	// Result carries catalog bytes together with their provenance.
	Result struct {
		Data   []byte
		Origin Origin
		// Path is the file that was read, for local and cache origins.
		Path string
		// URL is the endpoint that was fetched, for remote origins.
		URL string
		// FetchedAt is when the remote content was downloaded. Zero for
		// local files.
		FetchedAt time.Time
	}

	// Loader resolves catalog bytes from a local file or a remote URL
	// with an on-disk cache.
	Loader struct {
		localPath string
		url       string
		cachePath string
		maxAge    time.Duration
		client    *Client
		logger    *log.Logger

		// now is swapped in tests to control staleness decisions.
		now func() time.Time
	}

	// LoaderOption configures a Loader.
	LoaderOption func(*Loader)
)

const (
	// OriginLocal means a user-provided file path was read directly.
	OriginLocal Origin = "local"
	// OriginRemote means the content was downloaded this run.
	OriginRemote Origin = "remote"
	// OriginCache means a previously downloaded copy was reused.
	OriginCache Origin = "cache"
)

// WithLocalPath makes the loader read a local file and skip all remote
// and cache handling.
func WithLocalPath(path string) LoaderOption {
	return func(l *Loader) {
		l.localPath = path
	}
}

// WithClient replaces the HTTP client used for remote fetches.
func WithClient(c *Client) LoaderOption {
	return func(l *Loader) {
		l.client = c
	}
}

// WithMaxAge sets how old a cached copy may be before it is refreshed.
func WithMaxAge(d time.Duration) LoaderOption {
	return func(l *Loader) {
		l.maxAge = d
	}
}

// WithLogger sets the logger used for cache fallback warnings.
func WithLogger(logger *log.Logger) LoaderOption {
	return func(l *Loader) {
		l.logger = logger
	}
}

// DefaultMaxAge is the staleness window applied when no override is
// configured.
const DefaultMaxAge = 24 * time.Hour

// NewLoader creates a loader for the given remote URL and cache file.
// Options can redirect it to a local path instead.
func NewLoader(url, cachePath string, opts ...LoaderOption) *Loader {
	l := &Loader{
		url:       url,
		cachePath: cachePath,
		maxAge:    DefaultMaxAge,
		client:    NewClient(),
		logger:    log.Default(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load resolves the catalog bytes. Local mode reads the configured file
// and returns ErrCatalogMissing when it does not exist. Remote mode
// serves a fresh cache without touching the network, refreshes a stale
// or absent cache, and falls back to any existing cache when the fetch
// fails.
func (l *Loader) Load(ctx context.Context) (*Result, error) {
	if l.localPath != "" {
		return l.loadLocal()
	}
	return l.loadRemote(ctx)
}

func (l *Loader) loadLocal() (*Result, error) {
	data, err := os.ReadFile(l.localPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrCatalogMissing, l.localPath)
		}
		return nil, fmt.Errorf("reading catalog file %s: %w", l.localPath, err)
	}
	return &Result{Data: data, Origin: OriginLocal, Path: l.localPath}, nil
}

func (l *Loader) loadRemote(ctx context.Context) (*Result, error) {
	if res, ok := l.freshCache(); ok {
		return res, nil
	}

	data, err := l.client.Fetch(ctx, l.url)
	if err != nil {
		if res, ok := l.anyCache(); ok {
			l.logger.Warn("catalog fetch failed, using cached copy",
				"url", l.url, "cache", l.cachePath, "err", err)
			return res, nil
		}
		return nil, err
	}

	fetchedAt := l.now()
	if werr := l.writeCache(data, fetchedAt); werr != nil {
		// A broken cache dir must not block this run; the content is
		// already in hand.
		l.logger.Warn("could not cache catalog", "path", l.cachePath, "err", werr)
	}
	return &Result{Data: data, Origin: OriginRemote, URL: l.url, FetchedAt: fetchedAt}, nil
}

// freshCache returns the cached copy when the sidecar says it is still
// within the staleness window.
func (l *Loader) freshCache() (*Result, bool) {
	sc, err := readSidecar(l.sidecarPath())
	if err != nil {
		return nil, false
	}
	if l.now().Sub(sc.FetchedAt) > l.maxAge {
		return nil, false
	}
	data, err := os.ReadFile(l.cachePath)
	if err != nil {
		return nil, false
	}
	return &Result{
		Data:      data,
		Origin:    OriginCache,
		Path:      l.cachePath,
		URL:       sc.URL,
		FetchedAt: sc.FetchedAt,
	}, true
}

// anyCache returns the cached copy regardless of age.
func (l *Loader) anyCache() (*Result, bool) {
	data, err := os.ReadFile(l.cachePath)
	if err != nil {
		return nil, false
	}
	res := &Result{Data: data, Origin: OriginCache, Path: l.cachePath, URL: l.url}
	if sc, err := readSidecar(l.sidecarPath()); err == nil {
		res.FetchedAt = sc.FetchedAt
	}
	return res, true
}

func (l *Loader) writeCache(data []byte, fetchedAt time.Time) error {
	if err := os.MkdirAll(filepath.Dir(l.cachePath), 0o755); err != nil {
		return fmt.Errorf("creating cache directory: %w", err)
	}
	if err := os.WriteFile(l.cachePath, data, 0o644); err != nil {
		return fmt.Errorf("writing catalog cache: %w", err)
	}
	return writeSidecar(l.sidecarPath(), Sidecar{
		FetchedAt:   fetchedAt,
		ContentHash: ContentHash(data),
		URL:         l.url,
		Size:        len(data),
	})
}

// Status describes the current cache state without loading anything.
// Used by the doctor and catalog commands.
func (l *Loader) Status() (Sidecar, bool) {
	sc, err := readSidecar(l.sidecarPath())
	if err != nil {
		return Sidecar{}, false
	}
	return sc, true
}

// Refresh forces a fetch and cache rewrite, ignoring any fresh cache.
func (l *Loader) Refresh(ctx context.Context) (*Result, error) {
	data, err := l.client.Fetch(ctx, l.url)
	if err != nil {
		return nil, err
	}
	fetchedAt := l.now()
	if werr := l.writeCache(data, fetchedAt); werr != nil {
		return nil, werr
	}
	return &Result{Data: data, Origin: OriginRemote, URL: l.url, FetchedAt: fetchedAt}, nil
}

func (l *Loader) sidecarPath() string {
	return l.cachePath + ".version.json"
}
