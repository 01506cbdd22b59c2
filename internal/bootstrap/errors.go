// SPDX-License-Identifier: MPL-2.0

package bootstrap

import (
	"errors"
	"fmt"
)

var (
	// ErrNotArch indicates the host is not an Arch-based distribution.
	ErrNotArch = errors.New("host is not an Arch-based distribution")

	// ErrDependencyInstall indicates a critical dependency could not be
	// installed.
	ErrDependencyInstall = errors.New("dependency install failed")
)

type (
	// InstallError describes a failed attempt to provision a critical
	// dependency.
	InstallError struct {
		// Dependency is the binary that was being provisioned.
		Dependency string
		// Package is the pacman package that was attempted.
		Package string
		// Cause is the underlying failure, if any. Nil when the install
		// command succeeded but the binary still did not appear.
		Cause error
	}
)

func (e *InstallError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("installing %s (package %s): %v", e.Dependency, e.Package, e.Cause)
	}
	return fmt.Sprintf("installed package %s but %s is still not on PATH", e.Package, e.Dependency)
}

func (e *InstallError) Unwrap() error { return ErrDependencyInstall }
