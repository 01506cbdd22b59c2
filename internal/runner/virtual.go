// SPDX-License-Identifier: MPL-2.0

package runner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// VirtualRunner interprets commands in-process with mvdan.cc/sh.
type VirtualRunner struct{}

// NewVirtualRunner creates a new virtual runner.
func NewVirtualRunner() *VirtualRunner {
	return &VirtualRunner{}
}

// Name returns the runner name.
func (r *VirtualRunner) Name() string {
	return string(KindVirtual)
}

// Available returns whether this runner is available. The interpreter
// is built in, so it always is.
func (r *VirtualRunner) Available() bool {
	return true
}

// Run interprets command with the in-process shell.
func (r *VirtualRunner) Run(ctx context.Context, command string, streams IO) *Result {
	prog, err := syntax.NewParser().Parse(strings.NewReader(command), "command")
	if err != nil {
		return &Result{ExitCode: 1, Error: fmt.Errorf("parsing command: %w", err)}
	}

	stdout, stderr := streams.Writers()
	sh, err := interp.New(
		interp.Env(expand.ListEnviron(os.Environ()...)),
		interp.StdIO(streams.Stdin, stdout, stderr),
	)
	if err != nil {
		return &Result{ExitCode: 1, Error: fmt.Errorf("creating interpreter: %w", err)}
	}

	if err := sh.Run(ctx, prog); err != nil {
		var exitStatus interp.ExitStatus
		if errors.As(err, &exitStatus) {
			return &Result{ExitCode: ExitCode(exitStatus)}
		}
		return &Result{ExitCode: 1, Error: fmt.Errorf("command execution failed: %w", err)}
	}
	return &Result{ExitCode: 0}
}
