// SPDX-License-Identifier: MPL-2.0

package bootstrap

import (
	"context"
	"errors"
	"os"
	"os/exec"

	"archmate-cli/internal/tui"

	"github.com/charmbracelet/log"
	"golang.org/x/exp/slices"
)

type (
	// Dependency is one external binary the tool relies on.
	Dependency struct {
		// Name is the human-readable label used in diagnostics.
		Name string
		// Binary is the executable looked up on PATH.
		Binary string
		// Package is the pacman package that provides the binary.
		Package string
		// Description says what the dependency is used for.
		Description string
		// Critical dependencies abort the run when absent and not
		// installable. Non-critical ones only produce a warning.
		Critical bool
	}

	// Status is the outcome of checking one dependency.
	Status struct {
		Dependency Dependency
		// Present reports whether the binary is on PATH, after any
		// install attempt.
		Present bool
		// Installed reports whether this run installed the binary.
		Installed bool
	}

	// Report collects the outcome of a full bootstrap pass.
	Report struct {
		Arch     bool
		Statuses []Status
		// AURHelper is the detected helper binary (yay or paru), empty
		// when none is installed.
		AURHelper string
	}

	// Checker verifies and provisions dependencies. The lookup and
	// install functions are fields so tests can substitute fakes.
	Checker struct {
		logger *log.Logger

		lookPath   func(string) (string, error)
		installPkg func(ctx context.Context, pkg string) error
		confirm    func(opts tui.ConfirmOptions) (bool, error)
	}
)

// Required returns the dependencies every run needs.
func Required() []Dependency {
	return []Dependency{
		{
			Name:        "pacman",
			Binary:      "pacman",
			Description: "Arch package manager, used to install tools",
			Critical:    true,
		},
		{
			Name:        "sudo",
			Binary:      "sudo",
			Description: "privilege escalation for package installs",
			Critical:    true,
		},
		{
			Name:        "fzf",
			Binary:      "fzf",
			Package:     "fzf",
			Description: "fuzzy finder driving the interactive menus",
			Critical:    true,
		},
		{
			Name:        "flatpak",
			Binary:      "flatpak",
			Package:     "flatpak",
			Description: "sandboxed app runtime, needed by some catalog entries",
			Critical:    false,
		},
	}
}

// aurHelpers are probed in order; the first one found wins.
var aurHelpers = []string{"yay", "paru"}

// AURHelpers returns the helper binaries probed during bootstrap, in
// probe order.
func AURHelpers() []string {
	return slices.Clone(aurHelpers)
}

// NewChecker creates a dependency checker that installs missing
// packages through sudo pacman.
func NewChecker(logger *log.Logger) *Checker {
	return &Checker{
		logger:   logger,
		lookPath: exec.LookPath,
		installPkg: func(ctx context.Context, pkg string) error {
			cmd := exec.CommandContext(ctx, "sudo", "pacman", "-S", "--noconfirm", pkg)
			cmd.Stdout = os.Stdout
			cmd.Stderr = os.Stderr
			cmd.Stdin = os.Stdin
			return cmd.Run()
		},
		confirm: tui.Confirm,
	}
}

// Ensure runs the full bootstrap pass: Arch detection, every required
// dependency, and AUR helper discovery. It returns a report alongside
// the first fatal error, so callers can still show partial results.
func (c *Checker) Ensure(ctx context.Context) (*Report, error) {
	report := &Report{Arch: DetectArch()}
	if !report.Arch {
		ok, err := c.confirm(tui.ConfirmOptions{
			Title:       "This does not look like an Arch-based system. Continue anyway?",
			Description: "Catalog commands assume pacman and may fail here.",
			Default:     false,
		})
		if err != nil && !errors.Is(err, tui.ErrCancelled) {
			return report, err
		}
		if !ok {
			return report, ErrNotArch
		}
		c.logger.Warn("continuing on a non-Arch host at the user's request")
	}

	for _, dep := range Required() {
		status, err := c.ensureOne(ctx, dep)
		report.Statuses = append(report.Statuses, status)
		if err != nil {
			return report, err
		}
	}

	report.AURHelper = c.detectAURHelper()
	if report.AURHelper == "" {
		c.logger.Warn("no AUR helper found; AUR catalog entries will fail",
			"hint", "install yay or paru manually")
	}
	return report, nil
}

func (c *Checker) ensureOne(ctx context.Context, dep Dependency) (Status, error) {
	status := Status{Dependency: dep}
	if _, err := c.lookPath(dep.Binary); err == nil {
		status.Present = true
		return status, nil
	}

	if !dep.Critical {
		c.logger.Warn("optional dependency missing", "binary", dep.Binary, "use", dep.Description)
		return status, nil
	}
	if dep.Package == "" {
		// Nothing sane to install pacman or sudo with from here.
		return status, &InstallError{Dependency: dep.Binary, Package: dep.Binary,
			Cause: errNotInstallable(dep.Binary)}
	}

	c.logger.Info("installing missing dependency", "binary", dep.Binary, "package", dep.Package)
	if err := c.installPkg(ctx, dep.Package); err != nil {
		return status, &InstallError{Dependency: dep.Binary, Package: dep.Package, Cause: err}
	}
	if _, err := c.lookPath(dep.Binary); err != nil {
		return status, &InstallError{Dependency: dep.Binary, Package: dep.Package}
	}
	status.Present = true
	status.Installed = true
	return status, nil
}

func (c *Checker) detectAURHelper() string {
	for _, helper := range aurHelpers {
		if _, err := c.lookPath(helper); err == nil {
			return helper
		}
	}
	return ""
}

type errNotInstallable string

func (e errNotInstallable) Error() string {
	return string(e) + " must be installed and configured by the administrator"
}
