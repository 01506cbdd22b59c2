// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"archmate-cli/internal/config"

	"github.com/spf13/cobra"
)

var (
	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Manage archmate configuration",
	}

	configShowCmd = &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		RunE: func(cobraCmd *cobra.Command, _ []string) error {
			cfg, path, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			stdout := cobraCmd.OutOrStdout()
			if path != "" {
				fmt.Fprintln(stdout, SubtitleStyle.Render("# loaded from "+path))
			} else {
				fmt.Fprintln(stdout, SubtitleStyle.Render("# built-in defaults (no config file found)"))
			}
			rendered, err := config.Render(cfg)
			if err != nil {
				return err
			}
			fmt.Fprint(stdout, rendered)
			return nil
		},
	}

	configInitCmd = &cobra.Command{
		Use:   "init",
		Short: "Create a starter config file",
		RunE: func(cobraCmd *cobra.Command, _ []string) error {
			path, err := config.CreateDefault()
			if err != nil {
				return err
			}
			fmt.Fprintf(cobraCmd.OutOrStdout(), "%s wrote %s\n", SuccessStyle.Render("✓"), path)
			return nil
		},
	}
)

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
}
