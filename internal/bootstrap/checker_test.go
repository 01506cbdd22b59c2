// SPDX-License-Identifier: MPL-2.0

package bootstrap

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"archmate-cli/internal/tui"

	"github.com/charmbracelet/log"
)

func testLogger() *log.Logger {
	logger := log.New(os.Stderr)
	logger.SetLevel(log.FatalLevel)
	return logger
}

// fakeHost simulates PATH lookups and pacman installs.
type fakeHost struct {
	present  map[string]bool
	installs []string
	// installFails makes every install attempt return an error.
	installFails bool
	// installNoEffect makes installs succeed without the binary
	// appearing on PATH.
	installNoEffect bool
}

func (h *fakeHost) lookPath(binary string) (string, error) {
	if h.present[binary] {
		return "/usr/bin/" + binary, nil
	}
	return "", errors.New("executable file not found in $PATH")
}

func (h *fakeHost) installPkg(_ context.Context, pkg string) error {
	h.installs = append(h.installs, pkg)
	if h.installFails {
		return errors.New("pacman: target not found")
	}
	if !h.installNoEffect {
		h.present[pkg] = true
	}
	return nil
}

func newTestChecker(h *fakeHost) *Checker {
	c := NewChecker(testLogger())
	c.lookPath = h.lookPath
	c.installPkg = h.installPkg
	c.confirm = func(tui.ConfirmOptions) (bool, error) { return false, nil }
	return c
}

func writeOSRelease(t *testing.T, content string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "os-release")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	orig := osReleasePath
	osReleasePath = path
	t.Cleanup(func() { osReleasePath = orig })
	stubPacmanOnPath(t, false)
}

// stubPacmanOnPath controls the pacman fallback used by DetectArch.
func stubPacmanOnPath(t *testing.T, present bool) {
	t.Helper()
	orig := pacmanLookPath
	pacmanLookPath = func(string) (string, error) {
		if present {
			return "/usr/bin/pacman", nil
		}
		return "", errors.New("executable file not found in $PATH")
	}
	t.Cleanup(func() { pacmanLookPath = orig })
}

func TestDetectArch(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    bool
	}{
		{
			name:    "arch",
			content: "NAME=\"Arch Linux\"\nID=arch\n",
			want:    true,
		},
		{
			name:    "manjaro quoted",
			content: "ID=\"manjaro\"\n",
			want:    true,
		},
		{
			name:    "endeavouros",
			content: "ID=endeavouros\nID_LIKE=arch\n",
			want:    true,
		},
		{
			name:    "derivative via id_like",
			content: "ID=garuda\nID_LIKE=\"arch\"\n",
			want:    true,
		},
		{
			name:    "debian",
			content: "ID=debian\n",
			want:    false,
		},
		{
			name:    "ubuntu id_like debian",
			content: "ID=ubuntu\nID_LIKE=debian\n",
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			writeOSRelease(t, tt.content)
			if got := DetectArch(); got != tt.want {
				t.Errorf("DetectArch() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDetectArchPacmanFallback(t *testing.T) {
	// A non-Arch os-release still counts when pacman is on PATH.
	writeOSRelease(t, "ID=unknown\n")
	stubPacmanOnPath(t, true)
	if !DetectArch() {
		t.Error("DetectArch() = false with pacman on PATH, want true")
	}
}

func TestDetectArchMissingOSRelease(t *testing.T) {
	orig := osReleasePath
	osReleasePath = filepath.Join(t.TempDir(), "absent")
	t.Cleanup(func() { osReleasePath = orig })

	stubPacmanOnPath(t, false)
	if DetectArch() {
		t.Error("DetectArch() = true with no os-release and no pacman, want false")
	}

	stubPacmanOnPath(t, true)
	if !DetectArch() {
		t.Error("DetectArch() = false with pacman on PATH, want true")
	}
}

func TestEnsureAllPresent(t *testing.T) {
	writeOSRelease(t, "ID=arch\n")
	h := &fakeHost{present: map[string]bool{
		"pacman": true, "sudo": true, "fzf": true, "flatpak": true, "yay": true,
	}}

	report, err := newTestChecker(h).Ensure(context.Background())
	if err != nil {
		t.Fatalf("Ensure() error = %v", err)
	}
	if len(h.installs) != 0 {
		t.Errorf("installs = %v, want none", h.installs)
	}
	if report.AURHelper != "yay" {
		t.Errorf("AURHelper = %q, want %q", report.AURHelper, "yay")
	}
	for _, st := range report.Statuses {
		if !st.Present {
			t.Errorf("dependency %s reported absent", st.Dependency.Binary)
		}
	}
}

func TestEnsureInstallsFzf(t *testing.T) {
	writeOSRelease(t, "ID=arch\n")
	h := &fakeHost{present: map[string]bool{"pacman": true, "sudo": true, "flatpak": true}}

	report, err := newTestChecker(h).Ensure(context.Background())
	if err != nil {
		t.Fatalf("Ensure() error = %v", err)
	}
	if len(h.installs) != 1 || h.installs[0] != "fzf" {
		t.Fatalf("installs = %v, want [fzf]", h.installs)
	}
	for _, st := range report.Statuses {
		if st.Dependency.Binary == "fzf" {
			if !st.Present || !st.Installed {
				t.Errorf("fzf status = %+v, want present and installed", st)
			}
		}
	}
}

func TestEnsureFzfInstallFails(t *testing.T) {
	writeOSRelease(t, "ID=arch\n")
	h := &fakeHost{
		present:      map[string]bool{"pacman": true, "sudo": true},
		installFails: true,
	}

	_, err := newTestChecker(h).Ensure(context.Background())
	if !errors.Is(err, ErrDependencyInstall) {
		t.Fatalf("Ensure() error = %v, want ErrDependencyInstall", err)
	}
	var ie *InstallError
	if !errors.As(err, &ie) {
		t.Fatalf("Ensure() error = %v, want *InstallError", err)
	}
	if ie.Dependency != "fzf" {
		t.Errorf("InstallError.Dependency = %q, want %q", ie.Dependency, "fzf")
	}
}

func TestEnsureInstallWithoutBinary(t *testing.T) {
	writeOSRelease(t, "ID=arch\n")
	h := &fakeHost{
		present:         map[string]bool{"pacman": true, "sudo": true},
		installNoEffect: true,
	}

	_, err := newTestChecker(h).Ensure(context.Background())
	var ie *InstallError
	if !errors.As(err, &ie) {
		t.Fatalf("Ensure() error = %v, want *InstallError", err)
	}
	if ie.Cause != nil {
		t.Errorf("InstallError.Cause = %v, want nil for post-install verification failure", ie.Cause)
	}
}

func TestEnsureMissingPacmanNotInstallable(t *testing.T) {
	writeOSRelease(t, "ID=arch\n")
	h := &fakeHost{present: map[string]bool{"sudo": true}}

	_, err := newTestChecker(h).Ensure(context.Background())
	if !errors.Is(err, ErrDependencyInstall) {
		t.Fatalf("Ensure() error = %v, want ErrDependencyInstall", err)
	}
	if len(h.installs) != 0 {
		t.Errorf("installs = %v, want none for pacman itself", h.installs)
	}
}

func TestEnsureOptionalMissingOnlyWarns(t *testing.T) {
	writeOSRelease(t, "ID=arch\n")
	h := &fakeHost{present: map[string]bool{"pacman": true, "sudo": true, "fzf": true}}

	report, err := newTestChecker(h).Ensure(context.Background())
	if err != nil {
		t.Fatalf("Ensure() error = %v", err)
	}
	if len(h.installs) != 0 {
		t.Errorf("installs = %v, want none for optional deps", h.installs)
	}
	for _, st := range report.Statuses {
		if st.Dependency.Binary == "flatpak" && st.Present {
			t.Error("flatpak reported present")
		}
	}
}

func TestEnsureNotArch(t *testing.T) {
	writeOSRelease(t, "ID=fedora\n")
	h := &fakeHost{present: map[string]bool{"pacman": true, "sudo": true, "fzf": true}}

	report, err := newTestChecker(h).Ensure(context.Background())
	if !errors.Is(err, ErrNotArch) {
		t.Fatalf("Ensure() error = %v, want ErrNotArch", err)
	}
	if report.Arch {
		t.Error("report.Arch = true, want false")
	}
	if len(report.Statuses) != 0 {
		t.Errorf("Statuses = %v, want none before distro check passes", report.Statuses)
	}
}

func TestEnsureNotArchConfirmedProceeds(t *testing.T) {
	writeOSRelease(t, "ID=fedora\n")
	h := &fakeHost{present: map[string]bool{"pacman": true, "sudo": true, "fzf": true}}

	c := newTestChecker(h)
	prompted := false
	c.confirm = func(opts tui.ConfirmOptions) (bool, error) {
		prompted = true
		if opts.Default {
			t.Error("continue-anyway prompt defaults to yes, want no")
		}
		return true, nil
	}

	report, err := c.Ensure(context.Background())
	if err != nil {
		t.Fatalf("Ensure() error = %v, want nil after user confirms", err)
	}
	if !prompted {
		t.Error("Ensure() never prompted on a non-Arch host")
	}
	if report.Arch {
		t.Error("report.Arch = true, want false")
	}
	if len(report.Statuses) == 0 {
		t.Error("Statuses empty, want dependency checks to run after confirmation")
	}
}

func TestEnsureNotArchCancelledPromptAborts(t *testing.T) {
	writeOSRelease(t, "ID=fedora\n")
	h := &fakeHost{present: map[string]bool{"pacman": true, "sudo": true, "fzf": true}}

	c := newTestChecker(h)
	c.confirm = func(tui.ConfirmOptions) (bool, error) { return false, tui.ErrCancelled }

	_, err := c.Ensure(context.Background())
	if !errors.Is(err, ErrNotArch) {
		t.Fatalf("Ensure() error = %v, want ErrNotArch", err)
	}
}

func TestAURHelpers(t *testing.T) {
	t.Parallel()

	helpers := AURHelpers()
	if len(helpers) != 2 || helpers[0] != "yay" || helpers[1] != "paru" {
		t.Errorf("AURHelpers() = %v, want [yay paru]", helpers)
	}

	// Callers get their own copy.
	helpers[0] = "mutated"
	if again := AURHelpers(); again[0] != "yay" {
		t.Errorf("AURHelpers() after mutation = %v, want [yay paru]", again)
	}
}

func TestDetectAURHelperPrefersYay(t *testing.T) {
	h := &fakeHost{present: map[string]bool{"yay": true, "paru": true}}
	if got := newTestChecker(h).detectAURHelper(); got != "yay" {
		t.Errorf("detectAURHelper() = %q, want %q", got, "yay")
	}

	h = &fakeHost{present: map[string]bool{"paru": true}}
	if got := newTestChecker(h).detectAURHelper(); got != "paru" {
		t.Errorf("detectAURHelper() = %q, want %q", got, "paru")
	}
}
