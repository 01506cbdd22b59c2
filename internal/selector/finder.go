// SPDX-License-Identifier: MPL-2.0

package selector

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// ErrCancelled is returned when the user dismisses a menu without
// choosing anything.
var ErrCancelled = errors.New("selection cancelled")

type (
	// Item is one selectable menu row.
	Item struct {
		// ID is the stable key returned on selection. Never displayed.
		ID string
		// Label is the primary display text.
		Label string
		// Detail is shown as a secondary column.
		Detail string
		// Preview is rendered in the finder's preview pane.
		Preview string
	}

	// Finder presents items and returns the chosen ID.
	Finder interface {
		// Pick shows items under the given prompt. It returns
		// ErrCancelled when the user backs out.
		Pick(ctx context.Context, prompt string, items []Item) (string, error)
	}

	// FzfFinder runs the external fzf binary.
	FzfFinder struct {
		// Binary is the finder executable, fzf by default.
		Binary string
	}
)

// NewFzfFinder creates a finder using the given binary, or "fzf" when
// empty.
func NewFzfFinder(binary string) *FzfFinder {
	if binary == "" {
		binary = "fzf"
	}
	return &FzfFinder{Binary: binary}
}

// fzf exit statuses: 1 means no match, 130 means interrupted with
// ctrl-c or esc.
const (
	fzfExitNoMatch     = 1
	fzfExitInterrupted = 130
)

// Pick feeds items to fzf as tab-delimited rows and parses the chosen
// row's hidden ID column back out.
func (f *FzfFinder) Pick(ctx context.Context, prompt string, items []Item) (string, error) {
	var input strings.Builder
	hasPreview := false
	for _, item := range items {
		preview := strings.NewReplacer("\t", " ", "\n", " ").Replace(item.Preview)
		if preview != "" {
			hasPreview = true
		}
		fmt.Fprintf(&input, "%s\t%s\t%s\t%s\n", item.ID, item.Label, item.Detail, preview)
	}

	args := []string{
		"--prompt", prompt + " ",
		"--delimiter", "\t",
		"--with-nth", "2..3",
		"--height", "60%",
		"--reverse",
		"--no-multi",
	}
	if hasPreview {
		args = append(args, "--preview", "echo {4}", "--preview-window", "down:3:wrap")
	}

	cmd := exec.CommandContext(ctx, f.Binary, args...)
	cmd.Stdin = strings.NewReader(input.String())
	cmd.Stderr = os.Stderr

	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			switch exitErr.ExitCode() {
			case fzfExitNoMatch, fzfExitInterrupted:
				return "", ErrCancelled
			}
		}
		return "", fmt.Errorf("running %s: %w", f.Binary, err)
	}

	line := strings.TrimRight(stdout.String(), "\n")
	if line == "" {
		return "", ErrCancelled
	}
	id, _, _ := strings.Cut(line, "\t")
	return id, nil
}
