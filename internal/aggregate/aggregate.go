// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package aggregate selects the papers of the target submission day (or
// recent-day window) and groups them into report sections.
package aggregate

import (
	"sort"
	"time"

	"github.com/samber/lo"

	"github.com/pdiddy/arxiv-digest/pkg/types"
)

// Section is one report section after filtering.
type Section struct {
	Config types.SectionConfig
	Papers []types.Paper
}

// CategoryCount records how many papers a category returned and how many
// survived the date filter.
type CategoryCount struct {
	Category string
	Fetched  int
	Kept     int
}

// Result is the aggregation output.
type Result struct {
	// TargetDate is the selected submission day. In window mode it is the
	// last day of the window.
	TargetDate time.Time

	// WindowDays is the window length used, 0 in latest-date mode.
	WindowDays int

	Sections []Section
	Counts   []CategoryCount
}

// Total returns the number of papers across all sections.
func (r Result) Total() int {
	n := 0
	for _, s := range r.Sections {
		n += len(s.Papers)
	}
	return n
}

// LatestDate returns the most recent PublishedDate across all results, or
// today's calendar date when no paper carries a date.
func LatestDate(results []types.CategoryResult, today time.Time) time.Time {
	var latest time.Time
	for _, r := range results {
		for _, p := range r.Papers {
			if p.PublishedDate.After(latest) {
				latest = p.PublishedDate
			}
		}
	}
	if latest.IsZero() {
		return types.DateOf(today)
	}
	return latest
}

// FilterByDate keeps the papers published on date, compared by calendar day.
func FilterByDate(papers []types.Paper, date time.Time) []types.Paper {
	day := types.DateOf(date)
	return lo.Filter(papers, func(p types.Paper, _ int) bool {
		return !p.PublishedDate.IsZero() && p.PublishedDate.Equal(day)
	})
}

// FilterWindow keeps the papers published within the days calendar days
// ending today, both ends included.
func FilterWindow(papers []types.Paper, today time.Time, days int) []types.Paper {
	last := types.DateOf(today)
	first := last.AddDate(0, 0, -(days - 1))
	return lo.Filter(papers, func(p types.Paper, _ int) bool {
		d := p.PublishedDate
		return !d.IsZero() && !d.Before(first) && !d.After(last)
	})
}

// Merge concatenates lists and sorts the result by Published, newest first.
// Papers with equal timestamps keep their concatenation order.
func Merge(lists ...[]types.Paper) []types.Paper {
	merged := Concat(lists...)
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Published.After(merged[j].Published)
	})
	return merged
}

// Concat joins lists in order into a new slice.
func Concat(lists ...[]types.Paper) []types.Paper {
	out := []types.Paper{}
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}

// Options select the aggregation mode.
type Options struct {
	// Today is the run date used for the window and as the fallback target.
	Today time.Time

	// WindowDays selects the fixed window mode when positive.
	WindowDays int
}

// Aggregate filters every category of results to the target date (or
// window) and assembles the configured sections. Categories absent from
// results contribute nothing.
func Aggregate(results []types.CategoryResult, sections []types.SectionConfig, opts Options) Result {
	res := Result{WindowDays: opts.WindowDays}
	if opts.WindowDays > 0 {
		res.TargetDate = types.DateOf(opts.Today)
	} else {
		res.TargetDate = LatestDate(results, opts.Today)
	}

	filtered := make(map[string][]types.Paper, len(results))
	for _, r := range results {
		var kept []types.Paper
		if opts.WindowDays > 0 {
			kept = FilterWindow(r.Papers, opts.Today, opts.WindowDays)
		} else {
			kept = FilterByDate(r.Papers, res.TargetDate)
		}
		filtered[r.Category] = kept
		res.Counts = append(res.Counts, CategoryCount{
			Category: r.Category,
			Fetched:  len(r.Papers),
			Kept:     len(kept),
		})
	}

	for _, sc := range sections {
		lists := lo.Map(sc.Categories, func(cat string, _ int) []types.Paper {
			return filtered[cat]
		})
		s := Section{Config: sc}
		if sc.Sort {
			s.Papers = Merge(lists...)
		} else {
			s.Papers = Concat(lists...)
		}
		res.Sections = append(res.Sections, s)
	}
	return res
}
