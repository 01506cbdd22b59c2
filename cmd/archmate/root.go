// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for archmate.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"archmate-cli/internal/issue"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// verbose enables debug diagnostics
	verbose bool
	// cfgFile allows specifying a custom config file
	cfgFile string
	// catalogOverride points the run at a local catalog file
	catalogOverride string
	// runnerOverride selects the execution backend for this run
	runnerOverride string

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "archmate",
		Short: "An interactive tool installer for Arch-based systems",
		Long: TitleStyle.Render("archmate") + SubtitleStyle.Render(" - An interactive tool installer for Arch-based systems") + `

archmate reads a catalog of categorized tools, lets you browse it
through fuzzy-searchable menus, and installs the tools you pick by
running their install commands through a shell. Every attempt is
recorded in an append-only install log.

Catalogs come from a remote URL (cached locally) or a local file, in
either a line-delimited or a YAML format.

` + SubtitleStyle.Render("Quick Start:") + `
  1. Run archmate on an Arch-based system
  2. Pick a category, then a tool
  3. Confirm the displayed command to install it

` + SubtitleStyle.Render("Examples:") + `
  archmate                     Browse and install interactively
  archmate --catalog tools.yaml   Use a local catalog file
  archmate catalog show        Print the parsed catalog
  archmate log show            Show install history
  archmate doctor              Check host dependencies`,
		SilenceUsage: true,
		RunE: func(cobraCmd *cobra.Command, _ []string) error {
			return runInteractive(cobraCmd.Context())
		},
	}
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/archmate/config.toml)")
	rootCmd.PersistentFlags().StringVar(&catalogOverride, "catalog", "", "local catalog file, bypassing the remote source")
	rootCmd.PersistentFlags().StringVar(&runnerOverride, "runner", "", "execution backend: native or virtual")

	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(logCmd)
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

// formatErrorForDisplay formats an error for user display. Actionable
// errors render their suggestions; verbose mode shows the full chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
