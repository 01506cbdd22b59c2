// SPDX-License-Identifier: MPL-2.0

package installog

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// Event constants for install log entries.
const (
	EventStarted   Event = "STARTED"
	EventSucceeded Event = "SUCCEEDED"
	EventFailed    Event = "FAILED"
)

const (
	timeLayout = "2006-01-02 15:04:05"

	// outputPrefix marks teed tool output inside the log.
	outputPrefix = "  | "
)

type (
	// Event is the lifecycle stage an entry records.
	Event string

	// Log appends install entries to a history file.
	Log struct {
		path string
		f    *os.File

		// now is swapped in tests for deterministic timestamps.
		now func() time.Time
	}
)

// Open opens (creating if needed) the install log at path for
// appending.
func Open(path string) (*Log, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening install log: %w", err)
	}
	return &Log{path: path, f: f, now: time.Now}, nil
}

// Path returns the log file path.
func (l *Log) Path() string { return l.path }

// Close closes the underlying file.
func (l *Log) Close() error {
	return l.f.Close()
}

// Started records the beginning of an install attempt.
func (l *Log) Started(category, tool string) error {
	return l.writeEntry(EventStarted, category, tool, "")
}

// Succeeded records a completed install.
func (l *Log) Succeeded(category, tool string) error {
	return l.writeEntry(EventSucceeded, category, tool, "")
}

// Failed records a failed install with its exit code.
func (l *Log) Failed(category, tool string, exitCode int) error {
	return l.writeEntry(EventFailed, category, tool, fmt.Sprintf(" (exit %d)", exitCode))
}

func (l *Log) writeEntry(event Event, category, tool, suffix string) error {
	line := fmt.Sprintf("%s INSTALL %s %s/%s%s\n",
		l.now().Format(timeLayout), event, category, tool, suffix)
	if _, err := l.f.WriteString(line); err != nil {
		return fmt.Errorf("writing install log entry: %w", err)
	}
	return nil
}

// OutputWriter returns a writer that tees tool output into the log,
// prefixing every line so output never masquerades as an entry. The
// returned writer must be closed to flush a trailing partial line.
func (l *Log) OutputWriter() io.WriteCloser {
	return &lineWriter{dst: l.f}
}

// lineWriter buffers partial lines and writes them out prefixed.
type lineWriter struct {
	dst io.Writer
	buf []byte
}

func (w *lineWriter) Write(p []byte) (int, error) {
	w.buf = append(w.buf, p...)
	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}
		line := w.buf[:i]
		w.buf = w.buf[i+1:]
		if _, err := fmt.Fprintf(w.dst, "%s%s\n", outputPrefix, line); err != nil {
			return len(p), err
		}
	}
	return len(p), nil
}

func (w *lineWriter) Close() error {
	if len(w.buf) == 0 {
		return nil
	}
	_, err := fmt.Fprintf(w.dst, "%s%s\n", outputPrefix, w.buf)
	w.buf = nil
	return err
}
