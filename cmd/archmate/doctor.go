// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os/exec"

	"archmate-cli/internal/bootstrap"

	"github.com/spf13/cobra"
)

// doctorCmd reports on the host without installing anything.
var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check host dependencies and distribution support",
	RunE: func(cobraCmd *cobra.Command, _ []string) error {
		stdout := cobraCmd.OutOrStdout()
		healthy := true

		if bootstrap.DetectArch() {
			fmt.Fprintf(stdout, "%s Arch-based distribution detected\n", SuccessStyle.Render("✓"))
		} else {
			fmt.Fprintf(stdout, "%s not an Arch-based distribution\n", ErrorStyle.Render("✗"))
			healthy = false
		}

		for _, dep := range bootstrap.Required() {
			if _, err := exec.LookPath(dep.Binary); err == nil {
				fmt.Fprintf(stdout, "%s %s %s\n",
					SuccessStyle.Render("✓"), dep.Binary, SubtitleStyle.Render("("+dep.Description+")"))
				continue
			}
			if dep.Critical {
				fmt.Fprintf(stdout, "%s %s missing %s\n",
					ErrorStyle.Render("✗"), dep.Binary, SubtitleStyle.Render("("+dep.Description+")"))
				healthy = false
			} else {
				fmt.Fprintf(stdout, "%s %s missing %s\n",
					WarningStyle.Render("!"), dep.Binary, SubtitleStyle.Render("(optional: "+dep.Description+")"))
			}
		}

		helper := ""
		for _, candidate := range bootstrap.AURHelpers() {
			if _, err := exec.LookPath(candidate); err == nil {
				helper = candidate
				break
			}
		}
		if helper != "" {
			fmt.Fprintf(stdout, "%s AUR helper: %s\n", SuccessStyle.Render("✓"), helper)
		} else {
			fmt.Fprintf(stdout, "%s no AUR helper (yay or paru); AUR entries will fail\n", WarningStyle.Render("!"))
		}

		if !healthy {
			return &ExitError{Code: 1, Err: fmt.Errorf("host is missing critical requirements")}
		}
		return nil
	},
}
