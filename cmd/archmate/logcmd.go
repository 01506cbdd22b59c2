// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"archmate-cli/internal/installog"

	"github.com/spf13/cobra"
)

var (
	logFailedOnly bool
	logTail       int

	logCmd = &cobra.Command{
		Use:   "log",
		Short: "Inspect the install history",
	}

	logShowCmd = &cobra.Command{
		Use:   "show",
		Short: "Show recorded install attempts",
		RunE: func(cobraCmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			path, err := cfg.InstallLogPath()
			if err != nil {
				return err
			}
			entries, err := installog.ReadEntries(path)
			if err != nil {
				return err
			}

			if logFailedOnly {
				filtered := entries[:0]
				for _, e := range entries {
					if e.Event == installog.EventFailed {
						filtered = append(filtered, e)
					}
				}
				entries = filtered
			}
			if logTail > 0 && len(entries) > logTail {
				entries = entries[len(entries)-logTail:]
			}

			stdout := cobraCmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(stdout, SubtitleStyle.Render("no install history yet"))
				return nil
			}
			for _, e := range entries {
				marker := SubtitleStyle.Render("·")
				detail := ""
				switch e.Event {
				case installog.EventSucceeded:
					marker = SuccessStyle.Render("✓")
				case installog.EventFailed:
					marker = ErrorStyle.Render("✗")
					detail = fmt.Sprintf(" (exit %d)", e.ExitCode)
				}
				fmt.Fprintf(stdout, "%s %s %-9s %s/%s%s\n",
					marker, e.Time.Format("2006-01-02 15:04:05"), e.Event, e.Category, e.Tool, detail)
			}
			return nil
		},
	}

	logPathCmd = &cobra.Command{
		Use:   "path",
		Short: "Print the install log location",
		RunE: func(cobraCmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			path, err := cfg.InstallLogPath()
			if err != nil {
				return err
			}
			fmt.Fprintln(cobraCmd.OutOrStdout(), path)
			return nil
		},
	}
)

func init() {
	logShowCmd.Flags().BoolVar(&logFailedOnly, "failed", false, "show only failed installs")
	logShowCmd.Flags().IntVarP(&logTail, "tail", "n", 0, "show only the last N entries")
	logCmd.AddCommand(logShowCmd)
	logCmd.AddCommand(logPathCmd)
}
