// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/arxiv-digest/internal/fetch"
	"github.com/pdiddy/arxiv-digest/internal/results"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch [category...]",
	Short: "Fetch and list the newest papers without rendering",
	Long: `Fetch queries arXiv for the given categories (default: every configured
category) and prints the newest papers as a table or as JSON. Nothing is
filtered by date and no report is written. Use --save to keep the results for
a later "arxiv-digest render --from".`,
	RunE: func(cmd *cobra.Command, args []string) error {
		maxResults, _ := cmd.Flags().GetInt("max-results")
		asJSON, _ := cmd.Flags().GetBool("json")
		savePath, _ := cmd.Flags().GetString("save")
		if maxResults <= 0 {
			return fmt.Errorf("--max-results must be positive")
		}

		cats := args
		if len(cats) == 0 {
			cats = cfg.Categories()
		}
		cfg.API.MaxResults = maxResults

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		rs := newDigest().FetchCategories(ctx, logger, cats)
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("fetch interrupted: %w", err)
		}

		out := cmd.OutOrStdout()
		if savePath != "" {
			if err := results.Write(savePath, results.New(time.Now(), "", cfg.API.WindowDays, rs)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Saved fetch results to %s\n", savePath)
		}
		if asJSON {
			return fetch.FormatJSON(out, rs)
		}
		fetch.FormatTable(out, rs, time.Now())
		return nil
	},
}

func init() {
	fetchCmd.Flags().Int("max-results", 5, "maximum number of papers per category")
	fetchCmd.Flags().Bool("json", false, "output results as JSON")
	fetchCmd.Flags().String("save", "", "write the results to this YAML file")

	rootCmd.AddCommand(fetchCmd)
}
