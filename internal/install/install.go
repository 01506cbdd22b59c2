// SPDX-License-Identifier: MPL-2.0

package install

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"archmate-cli/internal/catalog"
	"archmate-cli/internal/installog"
	"archmate-cli/internal/runner"
	"archmate-cli/internal/tui"

	"github.com/charmbracelet/lipgloss"
)

// Outcome constants for one install attempt.
const (
	// OutcomeDeclined means the user answered no at the confirmation.
	OutcomeDeclined Outcome = "declined"
	// OutcomeSucceeded means the command ran and exited zero.
	OutcomeSucceeded Outcome = "succeeded"
	// OutcomeFailed means the command ran and exited non-zero.
	OutcomeFailed Outcome = "failed"
)

type (
	// Outcome classifies how an install attempt ended.
	Outcome string

	// Installer executes catalog tools and records them in the install
	// log. The log file is opened on the first confirmed install, so a
	// session where every prompt is declined never creates it.
	Installer struct {
		Runner  runner.Runner
		LogPath string
		Stdout  io.Writer
		Stderr  io.Writer

		// Confirm is the prompt shown before running. Replaced in tests.
		Confirm func(opts tui.ConfirmOptions) (bool, error)

		log *installog.Log
	}

	// Attempt is the result of one Install call.
	Attempt struct {
		Outcome  Outcome
		ExitCode runner.ExitCode
	}
)

var (
	cmdStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981")).Bold(true)
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")).Bold(true)
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981")).Bold(true)
)

// New creates an installer writing to the process stdio. The install
// log at logPath is not touched until an install is confirmed.
func New(r runner.Runner, logPath string) *Installer {
	return &Installer{
		Runner:  r,
		LogPath: logPath,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Confirm: tui.Confirm,
	}
}

// Close releases the install log if one was opened.
func (i *Installer) Close() error {
	if i.log == nil {
		return nil
	}
	return i.log.Close()
}

func (i *Installer) openLog() (*installog.Log, error) {
	if i.log != nil {
		return i.log, nil
	}
	log, err := installog.Open(i.LogPath)
	if err != nil {
		return nil, err
	}
	i.log = log
	return log, nil
}

// Install runs tool's command after user confirmation. A declined
// confirmation ends the attempt with no log entries. A command that
// runs and fails is reported in the returned Attempt, not as an error;
// the error return is reserved for infrastructure problems (prompt
// failure, log write failure).
func (i *Installer) Install(ctx context.Context, cat *catalog.Category, tool *catalog.Tool) (*Attempt, error) {
	if err := runner.ValidateSyntax(tool.Command); err != nil {
		fmt.Fprintf(i.Stderr, "%s %v\n", failStyle.Render("✗"), err)
		return &Attempt{Outcome: OutcomeFailed, ExitCode: 1}, nil
	}

	fmt.Fprintf(i.Stdout, "\n%s %s\n", cmdStyle.Render("$"), tool.Command)

	ok, err := i.Confirm(tui.ConfirmOptions{
		Title:       fmt.Sprintf("Install %s?", tool.Name),
		Description: tool.Description,
		Default:     true,
	})
	if err != nil {
		if errors.Is(err, tui.ErrCancelled) {
			return &Attempt{Outcome: OutcomeDeclined}, nil
		}
		return nil, fmt.Errorf("confirmation prompt: %w", err)
	}
	if !ok {
		return &Attempt{Outcome: OutcomeDeclined}, nil
	}

	log, err := i.openLog()
	if err != nil {
		return nil, err
	}
	if err := log.Started(cat.ID, tool.Name); err != nil {
		return nil, err
	}

	// The log copy rides in Tee rather than being folded into Stdout,
	// so runners still see the real stdout for terminal detection.
	logOut := log.OutputWriter()
	streams := runner.IO{
		Stdin:  os.Stdin,
		Stdout: i.Stdout,
		Stderr: i.Stderr,
		Tee:    logOut,
	}
	res := i.Runner.Run(ctx, tool.Command, streams)
	if cerr := logOut.Close(); cerr != nil {
		fmt.Fprintf(i.Stderr, "warning: flushing install log output: %v\n", cerr)
	}

	if res.Error != nil {
		fmt.Fprintf(i.Stderr, "%s %v\n", failStyle.Render("✗"), res.Error)
	}
	if !res.Success() {
		if err := log.Failed(cat.ID, tool.Name, int(res.ExitCode)); err != nil {
			return nil, err
		}
		fmt.Fprintf(i.Stderr, "%s %s failed (exit %s)\n", failStyle.Render("✗"), tool.Name, res.ExitCode)
		return &Attempt{Outcome: OutcomeFailed, ExitCode: res.ExitCode}, nil
	}

	if err := log.Succeeded(cat.ID, tool.Name); err != nil {
		return nil, err
	}
	fmt.Fprintf(i.Stdout, "%s %s installed\n", okStyle.Render("✓"), tool.Name)
	return &Attempt{Outcome: OutcomeSucceeded}, nil
}
