// SPDX-License-Identifier: MPL-2.0

package bootstrap

import (
	"bufio"
	"os"
	"os/exec"
	"strings"
)

// osReleasePath is a package var so tests can point detection at a
// synthetic os-release file.
var osReleasePath = "/etc/os-release"

// pacmanLookPath is a seam so tests can control the pacman fallback.
var pacmanLookPath = exec.LookPath

// archIDs lists distribution IDs treated as Arch-based.
var archIDs = map[string]bool{
	"arch":        true,
	"manjaro":     true,
	"endeavouros": true,
	"artix":       true,
}

// DetectArch reports whether the host is an Arch-based distribution,
// judged by the ID and ID_LIKE fields of os-release. A host whose
// os-release says otherwise still counts when pacman is on PATH, which
// covers containers and derivatives with unusual release files.
func DetectArch() bool {
	if detectOSRelease() {
		return true
	}
	_, err := pacmanLookPath("pacman")
	return err == nil
}

func detectOSRelease() bool {
	f, err := os.Open(osReleasePath)
	if err != nil {
		return false
	}
	defer func() { _ = f.Close() }()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		value = strings.Trim(value, `"`)
		switch key {
		case "ID":
			if archIDs[value] {
				return true
			}
		case "ID_LIKE":
			for _, id := range strings.Fields(value) {
				if archIDs[id] {
					return true
				}
			}
		}
	}
	return false
}
