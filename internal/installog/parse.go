// SPDX-License-Identifier: MPL-2.0

package installog

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

type (
	// Entry is one parsed install log record.
	Entry struct {
		Time     time.Time
		Event    Event
		Category string
		Tool     string
		// ExitCode is set for FAILED entries, zero otherwise.
		ExitCode int
	}
)

// ReadEntries parses the install log at path. Teed output lines and
// anything else that is not an entry are skipped. A missing file yields
// an empty history, not an error.
func ReadEntries(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening install log: %w", err)
	}
	defer func() { _ = f.Close() }()
	return parseEntries(f)
}

func parseEntries(r io.Reader) ([]Entry, error) {
	var entries []Entry
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, outputPrefix) {
			continue
		}
		entry, ok := parseEntry(line)
		if !ok {
			continue
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading install log: %w", err)
	}
	return entries, nil
}

// parseEntry decodes one "<timestamp> INSTALL <EVENT> <cat>/<tool>"
// line, with an optional " (exit N)" suffix.
func parseEntry(line string) (Entry, bool) {
	if len(line) < len(timeLayout)+1 {
		return Entry{}, false
	}
	ts, err := time.ParseInLocation(timeLayout, line[:len(timeLayout)], time.Local)
	if err != nil {
		return Entry{}, false
	}

	rest, ok := strings.CutPrefix(strings.TrimSpace(line[len(timeLayout):]), "INSTALL ")
	if !ok {
		return Entry{}, false
	}

	eventStr, rest, ok := strings.Cut(rest, " ")
	if !ok {
		return Entry{}, false
	}
	event := Event(eventStr)
	switch event {
	case EventStarted, EventSucceeded, EventFailed:
	default:
		return Entry{}, false
	}

	// The " (exit N)" suffix is stripped before splitting on "/" so
	// tool names containing spaces stay intact.
	exitCode := 0
	if event == EventFailed {
		if idx := strings.LastIndex(rest, " (exit "); idx >= 0 && strings.HasSuffix(rest, ")") {
			code, err := strconv.Atoi(rest[idx+len(" (exit ") : len(rest)-1])
			if err == nil {
				exitCode = code
				rest = rest[:idx]
			}
		}
	}

	category, tool, ok := strings.Cut(rest, "/")
	if !ok || category == "" || tool == "" {
		return Entry{}, false
	}

	return Entry{Time: ts, Event: event, Category: category, Tool: tool, ExitCode: exitCode}, true
}
