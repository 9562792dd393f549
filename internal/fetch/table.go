// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/pdiddy/arxiv-digest/pkg/types"
)

const titleWidth = 60

// FormatTable writes one block per category listing id, date, age in days
// and title. Titles are truncated by display width, so wide scripts line up.
func FormatTable(w io.Writer, results []types.CategoryResult, now time.Time) {
	for i, r := range results {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s: ", r.Category)
		switch {
		case r.Err != nil:
			fmt.Fprintf(w, "failed: %v\n", r.Err)
			continue
		case len(r.Papers) == 0:
			fmt.Fprintln(w, "no papers found")
			continue
		default:
			fmt.Fprintf(w, "%d papers\n", len(r.Papers))
		}

		fmt.Fprintf(w, "  %-16s  %-10s  %4s  %s\n", "ID", "Date", "Days", "Title")
		fmt.Fprintln(w, "  "+strings.Repeat("-", 16+2+10+2+4+2+titleWidth))
		for _, p := range r.Papers {
			date, age := "", ""
			if !p.PublishedDate.IsZero() {
				date = p.PublishedDate.Format(time.DateOnly)
				age = fmt.Sprintf("%d", int(types.DateOf(now).Sub(p.PublishedDate).Hours()/24))
			}
			fmt.Fprintf(w, "  %-16s  %-10s  %4s  %s\n",
				p.ID, date, age, runewidth.Truncate(p.Title, titleWidth, "..."))
		}
	}
}

// FormatJSON writes the results as indented JSON, keyed by category.
func FormatJSON(w io.Writer, results []types.CategoryResult) error {
	type category struct {
		Category string        `json:"category"`
		Error    string        `json:"error,omitempty"`
		Papers   []types.Paper `json:"papers"`
	}
	out := make([]category, 0, len(results))
	for _, r := range results {
		c := category{Category: r.Category, Papers: r.Papers}
		if r.Err != nil {
			c.Error = r.Err.Error()
		}
		out = append(out, c)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
