// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/arxiv-digest/internal/digest"
	"github.com/pdiddy/arxiv-digest/internal/fetch"
	"github.com/pdiddy/arxiv-digest/internal/httputil"
	"github.com/pdiddy/arxiv-digest/internal/results"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Fetch, filter and render today's digest",
	Long: `Run fetches every configured category, keeps the papers of the most recent
submission day (or of the last --window-days days), renders the template and
writes the dated report plus latest.tex.

A missing template aborts the run before any request is made. A category
that cannot be fetched contributes no papers; the report is still written.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("window-days") {
			cfg.API.WindowDays, _ = cmd.Flags().GetInt("window-days")
			if cfg.API.WindowDays < 0 {
				return fmt.Errorf("--window-days must not be negative")
			}
		}
		if cmd.Flags().Changed("template") {
			cfg.Template.Path, _ = cmd.Flags().GetString("template")
		}
		savePath, _ := cmd.Flags().GetString("save-results")

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		d := newDigest()
		sum, err := d.Run(ctx, cmd.OutOrStdout())
		if err != nil {
			return err
		}

		if savePath != "" {
			f := results.New(sum.ReportDate, sum.RunID, sum.WindowDays, sum.Results)
			if err := results.Write(savePath, f); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved fetch results to %s\n", savePath)
		}
		return nil
	},
}

// newDigest wires the live arXiv fetcher into a pipeline.
func newDigest() *digest.Digest {
	client := httputil.NewClient(cfg.API, logger)
	return &digest.Digest{
		Config:  cfg,
		Fetcher: fetch.New(cfg.API, client, logger),
		Log:     logger,
		Now:     time.Now,
	}
}

func init() {
	runCmd.Flags().Int("window-days", 0, "keep papers of the last N days instead of the newest day")
	runCmd.Flags().String("template", "", "template path (overrides template.path)")
	runCmd.Flags().String("save-results", "", "also write the raw fetch results to this YAML file")

	rootCmd.AddCommand(runCmd)
}
