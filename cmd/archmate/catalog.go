// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"

	"archmate-cli/internal/config"
	"archmate-cli/internal/source"

	"github.com/spf13/cobra"
)

var (
	catalogCmd = &cobra.Command{
		Use:   "catalog",
		Short: "Inspect and refresh the tool catalog",
	}

	catalogShowCmd = &cobra.Command{
		Use:   "show",
		Short: "Print the parsed catalog",
		RunE: func(cobraCmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			logger := newLogger()

			cat, err := loadCatalog(cobraCmd.Context(), cfg, logger)
			if err != nil {
				return failWithIssue(catalogIssueID(err), err)
			}

			stdout := cobraCmd.OutOrStdout()
			for _, category := range cat.Categories() {
				header := category.Name
				if category.Icon != "" {
					header = category.Icon + " " + header
				}
				fmt.Fprintln(stdout, TitleStyle.Render(header))
				if category.Description != "" {
					fmt.Fprintln(stdout, SubtitleStyle.Render("  "+category.Description))
				}
				for _, tool := range category.Tools {
					fmt.Fprintf(stdout, "  %s %s\n", tool.Name, SubtitleStyle.Render("- "+tool.Description))
					fmt.Fprintf(stdout, "    %s\n", CmdStyle.Render(tool.Command))
				}
				fmt.Fprintln(stdout)
			}
			fmt.Fprintf(stdout, "%d categories, %d tools\n", cat.Len(), cat.ToolCount())
			return nil
		},
	}

	catalogUpdateCmd = &cobra.Command{
		Use:   "update",
		Short: "Force a refetch of the remote catalog",
		RunE: func(cobraCmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cfg.Catalog.Path != "" {
				return fmt.Errorf("catalog.path is set to %s; only remote catalogs can be updated", cfg.Catalog.Path)
			}
			logger := newLogger()

			loader, err := newLoader(cfg, logger)
			if err != nil {
				return err
			}
			res, err := loader.Refresh(cobraCmd.Context())
			if err != nil {
				fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, verbose))
				return &ExitError{Code: 1, Err: err}
			}
			fmt.Fprintf(cobraCmd.OutOrStdout(), "%s fetched %d bytes from %s\n",
				SuccessStyle.Render("✓"), len(res.Data), res.URL)
			return nil
		},
	}

	catalogStatusCmd = &cobra.Command{
		Use:   "status",
		Short: "Show the catalog cache state",
		RunE: func(cobraCmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			stdout := cobraCmd.OutOrStdout()

			if cfg.Catalog.Path != "" {
				fmt.Fprintf(stdout, "local catalog: %s\n", cfg.Catalog.Path)
				return nil
			}

			cachePath, err := config.CatalogCachePath()
			if err != nil {
				return err
			}
			loader := source.NewLoader(cfg.Catalog.URL, cachePath)
			sc, ok := loader.Status()
			if !ok {
				fmt.Fprintln(stdout, "no cached catalog; it will be fetched on the next run")
				return nil
			}
			fmt.Fprintf(stdout, "url:        %s\n", sc.URL)
			fmt.Fprintf(stdout, "fetched at: %s\n", sc.FetchedAt.Format("2006-01-02 15:04:05"))
			fmt.Fprintf(stdout, "size:       %d bytes\n", sc.Size)
			fmt.Fprintf(stdout, "sha256:     %s\n", sc.ContentHash)
			return nil
		},
	}
)

func init() {
	catalogCmd.AddCommand(catalogShowCmd)
	catalogCmd.AddCommand(catalogUpdateCmd)
	catalogCmd.AddCommand(catalogStatusCmd)
}
