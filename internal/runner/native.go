// SPDX-License-Identifier: MPL-2.0

package runner

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/creack/pty"
	"golang.org/x/term"
)

// NativeRunner executes commands through the system shell.
type NativeRunner struct {
	// Shell overrides the default shell lookup.
	Shell string
}

// NewNativeRunner creates a new native runner.
func NewNativeRunner() *NativeRunner {
	return &NativeRunner{}
}

// Name returns the runner name.
func (r *NativeRunner) Name() string {
	return string(KindNative)
}

// Available returns whether a usable shell exists on this system.
func (r *NativeRunner) Available() bool {
	_, err := r.getShell()
	return err == nil
}

// Run executes command with `shell -c`. When stdout is a terminal the
// child gets a PTY so installers that probe for one (progress bars,
// sudo prompts) behave as if run by hand.
func (r *NativeRunner) Run(ctx context.Context, command string, streams IO) *Result {
	shell, err := r.getShell()
	if err != nil {
		return &Result{ExitCode: 1, Error: err}
	}

	cmd := exec.CommandContext(ctx, shell, "-c", command)

	if f, ok := streams.Stdout.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return r.runPTY(cmd, f, streams)
	}

	stdout, stderr := streams.Writers()
	cmd.Stdin = streams.Stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	return resultFromRun(cmd.Run())
}

// runPTY runs cmd attached to a pseudo-terminal, relaying its combined
// output to the terminal and any tee writer.
func (r *NativeRunner) runPTY(cmd *exec.Cmd, tty *os.File, streams IO) *Result {
	ptmx, err := pty.Start(cmd)
	if err != nil {
		return &Result{ExitCode: 1, Error: fmt.Errorf("starting command with pty: %w", err)}
	}
	defer func() { _ = ptmx.Close() }()

	_ = pty.InheritSize(tty, ptmx)

	if streams.Stdin != nil {
		// Forward user input to the child for its lifetime. The copy ends
		// when the PTY closes; its error is the usual EIO on child exit.
		go func() { _, _ = io.Copy(ptmx, streams.Stdin) }()
	}
	_, _ = io.Copy(teeWriter(streams.Stdout, streams.Tee), ptmx)

	return resultFromRun(cmd.Wait())
}

func resultFromRun(err error) *Result {
	if err == nil {
		return &Result{ExitCode: 0}
	}
	if exitErr, ok := err.(*exec.ExitError); ok {
		return &Result{ExitCode: ExitCode(exitErr.ExitCode())}
	}
	return &Result{ExitCode: 1, Error: fmt.Errorf("failed to execute command: %w", err)}
}

// getShell determines which shell to use: the configured override,
// $SHELL, then bash and sh from PATH.
func (r *NativeRunner) getShell() (string, error) {
	if r.Shell != "" {
		return r.Shell, nil
	}
	if shell := os.Getenv("SHELL"); shell != "" {
		return shell, nil
	}
	for _, candidate := range []string{"bash", "sh"} {
		if path, err := exec.LookPath(candidate); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("no usable shell found (set $SHELL or install bash)")
}
