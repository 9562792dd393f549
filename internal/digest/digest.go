// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package digest runs the report pipeline: fetch every category in turn,
// keep the papers of the target day, render the template and write the
// dated and latest reports.
package digest

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"

	"github.com/pdiddy/arxiv-digest/internal/aggregate"
	"github.com/pdiddy/arxiv-digest/internal/format"
	"github.com/pdiddy/arxiv-digest/internal/output"
	"github.com/pdiddy/arxiv-digest/internal/render"
	"github.com/pdiddy/arxiv-digest/pkg/types"
)

// Fetcher retrieves the newest papers of one category. A non-nil error
// accompanies an empty list when the category could not be fetched.
type Fetcher interface {
	Fetch(ctx context.Context, category string, maxResults int) ([]types.Paper, error)
}

// Digest holds the pipeline dependencies.
type Digest struct {
	Config  types.Config
	Fetcher Fetcher
	Log     *slog.Logger

	// Now returns the current time; defaults to time.Now.
	Now func() time.Time

	// NewRunID returns the run identifier recorded in the provenance block;
	// defaults to a random UUID.
	NewRunID func() string
}

// SectionSummary is the paper count of one rendered section.
type SectionSummary struct {
	Name  string
	Count int
}

// Summary describes a completed run.
type Summary struct {
	RunID      string
	ReportDate time.Time
	TargetDate time.Time
	WindowDays int
	Results    []types.CategoryResult
	Counts     []aggregate.CategoryCount
	Sections   []SectionSummary
	Paths      output.Paths
	Warnings   []string
}

// Total returns the number of papers written across all sections.
func (s *Summary) Total() int {
	n := 0
	for _, sec := range s.Sections {
		n += sec.Count
	}
	return n
}

func (d *Digest) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

func (d *Digest) runID() string {
	if d.NewRunID != nil {
		return d.NewRunID()
	}
	return uuid.NewString()
}

// Run executes the whole pipeline and prints status lines to w. A missing
// template aborts before any request is made or file written. Fetch
// failures only empty the affected category.
func (d *Digest) Run(ctx context.Context, w io.Writer) (*Summary, error) {
	start := d.now()
	runID := d.runID()
	lg := d.Log.With(slog.String("run_id", runID))

	tmpl, err := render.Load(d.Config.Template.Path)
	if err != nil {
		fmt.Fprintf(w, "error: %v\n", err)
		return nil, err
	}

	fmt.Fprintln(w, "Fetching arXiv papers...")
	results := d.FetchAll(ctx, lg)
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("run interrupted: %w", err)
	}
	fmt.Fprintf(w, "Fetched %d categories in %.1fs\n", len(results), d.now().Sub(start).Seconds())

	return d.build(lg, tmpl, runID, start, results, w)
}

// RenderResults renders and writes a report from previously fetched results,
// with reportTime as the run date.
func (d *Digest) RenderResults(results []types.CategoryResult, reportTime time.Time, w io.Writer) (*Summary, error) {
	runID := d.runID()
	lg := d.Log.With(slog.String("run_id", runID))

	tmpl, err := render.Load(d.Config.Template.Path)
	if err != nil {
		fmt.Fprintf(w, "error: %v\n", err)
		return nil, err
	}
	return d.build(lg, tmpl, runID, reportTime, results, w)
}

// FetchAll queries every configured category in order.
func (d *Digest) FetchAll(ctx context.Context, lg *slog.Logger) []types.CategoryResult {
	return d.FetchCategories(ctx, lg, d.Config.Categories())
}

// FetchCategories queries cats in order, pausing API.RequestDelay between
// requests. It stops early if ctx is cancelled.
func (d *Digest) FetchCategories(ctx context.Context, lg *slog.Logger, cats []string) []types.CategoryResult {
	results := make([]types.CategoryResult, 0, len(cats))

	for i, cat := range cats {
		if i > 0 && d.Config.API.RequestDelay > 0 {
			if err := sleep(ctx, d.Config.API.RequestDelay); err != nil {
				lg.Warn("fetching interrupted", slog.String("category", cat), slog.Any("err", err))
				break
			}
		}

		papers, err := d.Fetcher.Fetch(ctx, cat, d.Config.API.MaxResults)
		if papers == nil {
			papers = []types.Paper{}
		}
		results = append(results, types.CategoryResult{Category: cat, Papers: papers, Err: err})
	}
	return results
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// build runs aggregation, formatting, rendering and writing.
func (d *Digest) build(lg *slog.Logger, tmpl, runID string, reportTime time.Time, results []types.CategoryResult, w io.Writer) (*Summary, error) {
	cfg := d.Config
	agg := aggregate.Aggregate(results, cfg.Sections, aggregate.Options{
		Today:      reportTime,
		WindowDays: cfg.API.WindowDays,
	})

	sum := &Summary{
		RunID:      runID,
		ReportDate: types.DateOf(reportTime),
		TargetDate: agg.TargetDate,
		WindowDays: agg.WindowDays,
		Results:    results,
		Counts:     agg.Counts,
	}
	for _, r := range results {
		if r.Err != nil {
			sum.Warnings = append(sum.Warnings, r.Err.Error())
		}
	}

	reportDate := sum.ReportDate.Format(cfg.Template.DateFormat)
	paperDate := d.paperDateLabel(agg)

	fmtOpts := format.OptionsFrom(cfg.Format)
	values := render.Values{DateMacro: cfg.Template.DateMacro, Date: reportDate}
	prov := render.Provenance{
		Generated:  d.now(),
		ReportDate: reportDate,
		PaperDate:  paperDate,
		RunID:      runID,
	}
	for _, s := range agg.Sections {
		values.Sections = append(values.Sections, render.SectionValues{
			Sentinel:         s.Config.Name,
			CountMacro:       s.Config.CountMacro,
			CountPlaceholder: s.Config.CountPlaceholder,
			Count:            len(s.Papers),
			Entries:          format.Entries(s.Papers, fmtOpts),
		})
		prov.Counts = append(prov.Counts, render.SectionCount{Name: s.Config.Name, Count: len(s.Papers)})
		sum.Sections = append(sum.Sections, SectionSummary{Name: s.Config.Name, Count: len(s.Papers)})
	}

	body, warnings := render.Render(tmpl, values)
	for _, msg := range warnings {
		lg.Warn("template substitution skipped", slog.String("detail", msg))
		fmt.Fprintf(w, "warning: %s\n", msg)
	}
	sum.Warnings = append(sum.Warnings, warnings...)

	doc := render.Document(prov, cfg.Template.CommentPrefix, body)

	paths, err := output.Write(doc, cfg.Output, reportTime)
	sum.Paths = paths
	if err != nil {
		lg.Error("writing report", slog.Any("err", err))
		fmt.Fprintf(w, "error: %v\n", err)
	}

	printSummary(w, sum, reportDate, paperDate)
	lg.Info("report generated",
		slog.String("path", paths.Dated),
		slog.Int("papers", sum.Total()),
		slog.Int("warnings", len(sum.Warnings)),
	)
	return sum, err
}

// paperDateLabel describes the selected papers' date for display.
func (d *Digest) paperDateLabel(agg aggregate.Result) string {
	layout := d.Config.Template.DateFormat
	if agg.WindowDays > 0 {
		first := agg.TargetDate.AddDate(0, 0, -(agg.WindowDays - 1))
		return first.Format(layout) + " - " + agg.TargetDate.Format(layout)
	}
	return agg.TargetDate.Format(layout)
}

func printSummary(w io.Writer, sum *Summary, reportDate, paperDate string) {
	fmt.Fprintln(w, "Dates:")
	fmt.Fprintf(w, "  Report date: %s\n", reportDate)
	fmt.Fprintf(w, "  Paper date:  %s\n", paperDate)

	fmt.Fprintln(w, "Papers:")
	for _, c := range sum.Counts {
		fmt.Fprintf(w, "  %s: fetched %d, kept %d\n", c.Category, c.Fetched, c.Kept)
	}
	for _, s := range sum.Sections {
		fmt.Fprintf(w, "  %s total: %d\n", s.Name, s.Count)
	}

	fmt.Fprintln(w, "Wrote:")
	fmt.Fprintf(w, "  %s\n", sum.Paths.Dated)
	fmt.Fprintf(w, "  %s (latest)\n", sum.Paths.Latest)

	if sum.Total() == 0 {
		fmt.Fprintln(w, "note: no papers found. The API may have returned no data, the network")
		fmt.Fprintln(w, "may be unreachable, or the categories had no submissions on that date.")
	}
}
