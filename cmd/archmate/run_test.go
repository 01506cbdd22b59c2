// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"testing"

	"archmate-cli/internal/bootstrap"
	"archmate-cli/internal/catalog"
	"archmate-cli/internal/issue"
	"archmate-cli/internal/source"
)

func TestExitError(t *testing.T) {
	t.Parallel()

	wrapped := errors.New("boom")
	err := &ExitError{Code: 2, Err: wrapped}
	if err.Error() != "boom" {
		t.Errorf("Error() = %q, want %q", err.Error(), "boom")
	}
	if !errors.Is(err, wrapped) {
		t.Error("errors.Is(err, wrapped) = false")
	}

	bare := &ExitError{Code: 3}
	if bare.Error() != "exit status 3" {
		t.Errorf("Error() = %q, want %q", bare.Error(), "exit status 3")
	}
}

func TestBootstrapIssueID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want issue.Id
	}{
		{"not arch", bootstrap.ErrNotArch, issue.NotArchLinuxId},
		{
			"fzf install failed",
			&bootstrap.InstallError{Dependency: "fzf", Package: "fzf"},
			issue.FuzzyFinderMissingId,
		},
		{
			"other install failed",
			&bootstrap.InstallError{Dependency: "pacman", Package: "pacman"},
			issue.DependencyInstallFailedId,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := bootstrapIssueID(tt.err); got != tt.want {
				t.Errorf("bootstrapIssueID() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCatalogIssueID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want issue.Id
	}{
		{"missing", fmt.Errorf("wrap: %w", source.ErrCatalogMissing), issue.CatalogMissingId},
		{"empty", catalog.ErrEmptyCatalog, issue.EmptyCatalogId},
		{
			"parse",
			&catalog.ParseError{Format: catalog.FormatLine, Line: 3, Reason: "missing field"},
			issue.CatalogParseErrorId,
		},
		{"unknown", errors.New("network sadness"), issue.CatalogMissingId},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := catalogIssueID(tt.err); got != tt.want {
				t.Errorf("catalogIssueID() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestGetVersionString(t *testing.T) {
	orig := Version
	defer func() { Version = orig }()

	Version = "dev"
	if got := getVersionString(); got != "dev (built from source)" {
		t.Errorf("getVersionString() = %q", got)
	}

	Version = "1.2.3"
	if got := getVersionString(); got == "" || got == "dev (built from source)" {
		t.Errorf("getVersionString() = %q, want release string", got)
	}
}
