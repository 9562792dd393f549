// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/arxiv-digest/internal/results"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a report from saved fetch results",
	Long: `Render reads a results file written by "run --save-results" or "fetch --save"
and renders it exactly as run would, using the fetch time as the report date.
No network requests are made.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		from, _ := cmd.Flags().GetString("from")
		if from == "" {
			return fmt.Errorf("--from is required")
		}
		if cmd.Flags().Changed("template") {
			cfg.Template.Path, _ = cmd.Flags().GetString("template")
		}

		f, err := results.Read(from)
		if err != nil {
			return err
		}
		if !cmd.Flags().Changed("window-days") {
			cfg.API.WindowDays = f.WindowDays
		} else {
			cfg.API.WindowDays, _ = cmd.Flags().GetInt("window-days")
		}

		_, err = newDigest().RenderResults(f.Results(), f.Fetched, cmd.OutOrStdout())
		return err
	},
}

func init() {
	renderCmd.Flags().String("from", "", "results file to render (required)")
	renderCmd.Flags().String("template", "", "template path (overrides template.path)")
	renderCmd.Flags().Int("window-days", 0, "window size (default: the value recorded in the results file)")

	rootCmd.AddCommand(renderCmd)
}
