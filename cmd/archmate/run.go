// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"archmate-cli/internal/bootstrap"
	"archmate-cli/internal/catalog"
	"archmate-cli/internal/config"
	"archmate-cli/internal/install"
	"archmate-cli/internal/issue"
	"archmate-cli/internal/runner"
	"archmate-cli/internal/selector"
	"archmate-cli/internal/source"

	"github.com/charmbracelet/log"
)

// newLogger builds the diagnostic logger honoring the verbose flag.
func newLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "archmate"})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// loadConfig loads configuration and applies flag overrides on top.
func loadConfig() (*config.Config, error) {
	cfg, _, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if catalogOverride != "" {
		cfg.Catalog.Path = catalogOverride
	}
	if runnerOverride != "" {
		cfg.Runner.Kind = runnerOverride
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	if cfg.UI.Verbose {
		verbose = true
	}
	return cfg, nil
}

// newLoader builds the catalog loader for the given configuration.
func newLoader(cfg *config.Config, logger *log.Logger) (*source.Loader, error) {
	if cfg.Catalog.Path != "" {
		return source.NewLoader("", "", source.WithLocalPath(cfg.Catalog.Path), source.WithLogger(logger)), nil
	}
	cachePath, err := config.CatalogCachePath()
	if err != nil {
		return nil, err
	}
	return source.NewLoader(cfg.Catalog.URL, cachePath,
		source.WithMaxAge(time.Duration(cfg.Catalog.CacheMaxAgeHours)*time.Hour),
		source.WithLogger(logger),
	), nil
}

// loadCatalog acquires and parses the catalog.
func loadCatalog(ctx context.Context, cfg *config.Config, logger *log.Logger) (*catalog.Catalog, error) {
	loader, err := newLoader(cfg, logger)
	if err != nil {
		return nil, err
	}
	res, err := loader.Load(ctx)
	if err != nil {
		return nil, err
	}
	logger.Debug("catalog loaded", "origin", res.Origin, "bytes", len(res.Data))
	return catalog.Parse(res.Data, catalog.Format(cfg.Catalog.Format))
}

// runInteractive is the root command: bootstrap the host, load the
// catalog, and hand control to the menu loop.
func runInteractive(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, verbose))
		return &ExitError{Code: 1, Err: err}
	}
	logger := newLogger()

	checker := bootstrap.NewChecker(logger)
	report, err := checker.Ensure(ctx)
	if err != nil {
		return failWithIssue(bootstrapIssueID(err), err)
	}
	logger.Debug("bootstrap complete", "aur_helper", report.AURHelper)

	cat, err := loadCatalog(ctx, cfg, logger)
	if err != nil {
		return failWithIssue(catalogIssueID(err), err)
	}

	logPath, err := cfg.InstallLogPath()
	if err != nil {
		return &ExitError{Code: 1, Err: err}
	}

	run, err := runner.New(runner.Kind(cfg.Runner.Kind))
	if err != nil {
		return &ExitError{Code: 1, Err: err}
	}

	// The installer opens the log lazily, so browsing without
	// installing never creates the file.
	installer := install.New(run, logPath)
	defer func() { _ = installer.Close() }()
	finder := selector.NewFzfFinder(cfg.Finder.Binary)
	sel := selector.New(cat, finder, installer, logger)

	if err := sel.Run(ctx); err != nil {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, verbose))
		return &ExitError{Code: 1, Err: err}
	}
	return nil
}

// bootstrapIssueID maps a bootstrap failure to its issue page.
func bootstrapIssueID(err error) issue.Id {
	if errors.Is(err, bootstrap.ErrNotArch) {
		return issue.NotArchLinuxId
	}
	var ie *bootstrap.InstallError
	if errors.As(err, &ie) && ie.Dependency == "fzf" {
		return issue.FuzzyFinderMissingId
	}
	return issue.DependencyInstallFailedId
}

// catalogIssueID maps a catalog acquisition or parse failure to its
// issue page.
func catalogIssueID(err error) issue.Id {
	switch {
	case errors.Is(err, source.ErrCatalogMissing):
		return issue.CatalogMissingId
	case errors.Is(err, catalog.ErrEmptyCatalog):
		return issue.EmptyCatalogId
	case errors.Is(err, catalog.ErrParse):
		return issue.CatalogParseErrorId
	default:
		return issue.CatalogMissingId
	}
}

// failWithIssue prints the error followed by its rendered issue page,
// then wraps it in an ExitError.
func failWithIssue(id issue.Id, err error) error {
	fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, verbose))
	if page := issue.Get(id); page != nil {
		if rendered, rerr := page.Render("dark"); rerr == nil {
			fmt.Fprintln(os.Stderr, rendered)
		}
	}
	return &ExitError{Code: 1, Err: err}
}
