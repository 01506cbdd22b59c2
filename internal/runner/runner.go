// SPDX-License-Identifier: MPL-2.0

package runner

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

// Runner kind constants.
const (
	KindNative  Kind = "native"
	KindVirtual Kind = "virtual"
)

type (
	// Kind identifies a runner implementation.
	Kind string

	// IO carries the streams a command runs against.
	IO struct {
		Stdin  io.Reader
		Stdout io.Writer
		Stderr io.Writer
		// Tee receives a copy of everything written to Stdout and
		// Stderr. It is a separate field rather than pre-wrapped into
		// Stdout so runners can still inspect the real stdout, which
		// the native runner needs for terminal detection.
		Tee io.Writer
	}

	// ExitCode is a process exit status in the POSIX 0-255 range.
	ExitCode int

	// Result is the outcome of running one command.
	Result struct {
		// ExitCode is the command's exit status.
		ExitCode ExitCode
		// Error is set only when the command could not be run at all. A
		// command that ran and failed has a non-zero ExitCode and a nil
		// Error.
		Error error
	}

	// Runner executes a single shell command.
	Runner interface {
		// Name returns the runner name.
		Name() string
		// Available reports whether this runner can execute on the
		// current system.
		Available() bool
		// Run executes command with the given streams. It never returns
		// nil.
		Run(ctx context.Context, command string, streams IO) *Result
	}
)

// IsValid reports whether k names a known runner kind.
func (k Kind) IsValid() bool {
	return k == KindNative || k == KindVirtual
}

// IsSuccess returns true if the exit code indicates success.
func (c ExitCode) IsSuccess() bool { return c == 0 }

func (c ExitCode) String() string { return strconv.Itoa(int(c)) }

// Success returns true if the command ran and exited zero.
func (r *Result) Success() bool {
	return r.ExitCode.IsSuccess() && r.Error == nil
}

// DefaultIO returns streams bound to the process's own stdio.
func DefaultIO() IO {
	return IO{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
}

// Writers returns the effective stdout and stderr with Tee applied.
// Runners (and runner fakes) must write through these rather than the
// raw fields.
func (s IO) Writers() (stdout, stderr io.Writer) {
	return teeWriter(s.Stdout, s.Tee), teeWriter(s.Stderr, s.Tee)
}

func teeWriter(w, tee io.Writer) io.Writer {
	switch {
	case tee == nil:
		return w
	case w == nil:
		return tee
	default:
		return io.MultiWriter(w, tee)
	}
}

// New returns the runner for the given kind.
func New(kind Kind) (Runner, error) {
	switch kind {
	case KindNative:
		return NewNativeRunner(), nil
	case KindVirtual:
		return NewVirtualRunner(), nil
	default:
		return nil, fmt.Errorf("unknown runner %q", kind)
	}
}

// ValidateSyntax parses command as POSIX shell without executing it.
// Used to surface obviously broken catalog entries before the user
// confirms anything.
func ValidateSyntax(command string) error {
	_, err := syntax.NewParser().Parse(strings.NewReader(command), "command")
	if err != nil {
		return fmt.Errorf("command syntax error: %w", err)
	}
	return nil
}
