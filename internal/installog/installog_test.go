// SPDX-License-Identifier: MPL-2.0

package installog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func openTestLog(t *testing.T) *Log {
	t.Helper()
	l, err := Open(filepath.Join(t.TempDir(), "install.log"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { _ = l.Close() })
	return l
}

func TestEntryLifecycle(t *testing.T) {
	t.Parallel()

	l := openTestLog(t)
	base := time.Date(2026, 8, 31, 14, 30, 0, 0, time.Local)
	tick := 0
	l.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}

	if err := l.Started("editors", "vim"); err != nil {
		t.Fatal(err)
	}
	if err := l.Succeeded("editors", "vim"); err != nil {
		t.Fatal(err)
	}
	if err := l.Started("editors", "emacs"); err != nil {
		t.Fatal(err)
	}
	if err := l.Failed("editors", "emacs", 1); err != nil {
		t.Fatal(err)
	}

	entries, err := ReadEntries(l.Path())
	if err != nil {
		t.Fatalf("ReadEntries() error = %v", err)
	}
	if len(entries) != 4 {
		t.Fatalf("len(entries) = %d, want 4", len(entries))
	}

	want := []struct {
		event Event
		tool  string
		exit  int
	}{
		{EventStarted, "vim", 0},
		{EventSucceeded, "vim", 0},
		{EventStarted, "emacs", 0},
		{EventFailed, "emacs", 1},
	}
	for i, w := range want {
		e := entries[i]
		if e.Event != w.event || e.Tool != w.tool || e.ExitCode != w.exit {
			t.Errorf("entries[%d] = %+v, want event %s tool %s exit %d", i, e, w.event, w.tool, w.exit)
		}
		if e.Category != "editors" {
			t.Errorf("entries[%d].Category = %q, want editors", i, e.Category)
		}
	}

	for i := 1; i < len(entries); i++ {
		if entries[i].Time.Before(entries[i-1].Time) {
			t.Errorf("entries[%d].Time = %v before entries[%d].Time = %v",
				i, entries[i].Time, i-1, entries[i-1].Time)
		}
	}
}

func TestAppendPreservesHistory(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "install.log")

	l, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := l.Started("shells", "zsh"); err != nil {
		t.Fatal(err)
	}
	if err := l.Close(); err != nil {
		t.Fatal(err)
	}

	// A second session must append, never truncate.
	l, err = Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := l.Succeeded("shells", "zsh"); err != nil {
		t.Fatal(err)
	}
	if err := l.Close(); err != nil {
		t.Fatal(err)
	}

	entries, err := ReadEntries(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(entries))
	}
	if entries[0].Event != EventStarted || entries[1].Event != EventSucceeded {
		t.Errorf("events = %s, %s, want STARTED, SUCCEEDED", entries[0].Event, entries[1].Event)
	}
}

func TestOutputWriterPrefixesLines(t *testing.T) {
	t.Parallel()

	l := openTestLog(t)
	w := l.OutputWriter()

	// Chunks split mid-line must still come out as whole prefixed lines.
	if _, err := w.Write([]byte("resolving depen")); err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write([]byte("dencies...\ndownloading vim\ninstal")); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(l.Path())
	if err != nil {
		t.Fatal(err)
	}
	want := "  | resolving dependencies...\n  | downloading vim\n  | instal\n"
	if string(data) != want {
		t.Errorf("log contents = %q, want %q", data, want)
	}
}

func TestOutputLinesSkippedOnParse(t *testing.T) {
	t.Parallel()

	l := openTestLog(t)
	if err := l.Started("editors", "vim"); err != nil {
		t.Fatal(err)
	}
	w := l.OutputWriter()
	// Output that looks like an entry must not parse as one.
	if _, err := w.Write([]byte("2026-01-01 00:00:00 INSTALL SUCCEEDED fake/entry\n")); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if err := l.Succeeded("editors", "vim"); err != nil {
		t.Fatal(err)
	}

	entries, err := ReadEntries(l.Path())
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(entries))
	}
	for _, e := range entries {
		if e.Tool != "vim" {
			t.Errorf("entry for %q leaked from teed output", e.Tool)
		}
	}
}

func TestSpacedToolNameRoundTrip(t *testing.T) {
	t.Parallel()

	l := openTestLog(t)
	if err := l.Started("security", "UFW Firewall"); err != nil {
		t.Fatal(err)
	}
	if err := l.Failed("security", "UFW Firewall", 7); err != nil {
		t.Fatal(err)
	}

	entries, err := ReadEntries(l.Path())
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(entries))
	}
	for i, e := range entries {
		if e.Tool != "UFW Firewall" {
			t.Errorf("entries[%d].Tool = %q, want %q", i, e.Tool, "UFW Firewall")
		}
		if e.Category != "security" {
			t.Errorf("entries[%d].Category = %q, want security", i, e.Category)
		}
	}
	if entries[1].ExitCode != 7 {
		t.Errorf("ExitCode = %d, want 7", entries[1].ExitCode)
	}
}

func TestReadEntriesMissingFile(t *testing.T) {
	t.Parallel()

	entries, err := ReadEntries(filepath.Join(t.TempDir(), "absent.log"))
	if err != nil {
		t.Fatalf("ReadEntries() error = %v, want nil for a missing file", err)
	}
	if entries != nil {
		t.Errorf("entries = %v, want nil", entries)
	}
}

func TestParseEntryMalformed(t *testing.T) {
	t.Parallel()

	lines := []string{
		"",
		"garbage",
		"2026-08-31 14:30:00 UPGRADE STARTED editors/vim",
		"2026-08-31 14:30:00 INSTALL EXPLODED editors/vim",
		"2026-08-31 14:30:00 INSTALL STARTED no-slash",
		"not-a-date INSTALL STARTED editors/vim",
	}
	for _, line := range lines {
		if _, ok := parseEntry(line); ok {
			t.Errorf("parseEntry(%q) ok = true, want false", line)
		}
	}
}

func TestParseEntriesFromReader(t *testing.T) {
	t.Parallel()

	input := strings.Join([]string{
		"2026-08-31 14:30:00 INSTALL STARTED editors/vim",
		"  | downloading...",
		"2026-08-31 14:30:05 INSTALL FAILED editors/vim (exit 127)",
	}, "\n") + "\n"

	entries, err := parseEntries(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(entries))
	}
	if entries[1].ExitCode != 127 {
		t.Errorf("ExitCode = %d, want 127", entries[1].ExitCode)
	}
}
