// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package digest

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/arxiv-digest/internal/config"
	"github.com/pdiddy/arxiv-digest/internal/logx"
	"github.com/pdiddy/arxiv-digest/internal/render"
	"github.com/pdiddy/arxiv-digest/pkg/types"
)

// --- stub fetcher ---

type stubFetcher struct {
	papers map[string][]types.Paper
	errs   map[string]error
	calls  []string
}

func (s *stubFetcher) Fetch(_ context.Context, category string, _ int) ([]types.Paper, error) {
	s.calls = append(s.calls, category)
	if err := s.errs[category]; err != nil {
		return []types.Paper{}, err
	}
	return s.papers[category], nil
}

var (
	reportTime = time.Date(2026, 10, 14, 9, 30, 0, 0, time.UTC)
	dayD       = time.Date(2026, 10, 13, 0, 0, 0, 0, time.UTC)
)

func paper(id, cat string, hour int) types.Paper {
	published := dayD.Add(time.Duration(hour) * time.Hour)
	return types.Paper{
		ID:            id,
		Title:         "Title " + id,
		Authors:       []string{"A", "B"},
		Published:     published,
		PublishedDate: types.DateOf(published),
		Category:      cat,
	}
}

func newDigest(t *testing.T, f Fetcher, tmpl string) (*Digest, string) {
	t.Helper()
	dir := t.TempDir()

	cfg := config.Default()
	cfg.API.RequestDelay = 0
	cfg.Template.Path = filepath.Join(dir, "template.tex")
	cfg.Output.Dir = filepath.Join(dir, "out")
	cfg.Output.Latest = filepath.Join(dir, "latest.tex")
	cfg.Template.DateFormat = "2006-01-02"

	if tmpl != "" {
		require.NoError(t, os.WriteFile(cfg.Template.Path, []byte(tmpl), 0o644))
	}

	return &Digest{
		Config:   cfg,
		Fetcher:  f,
		Log:      logx.Discard(),
		Now:      func() time.Time { return reportTime },
		NewRunID: func() string { return "run-test" },
	}, dir
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestRunTwoSectionsSameDay(t *testing.T) {
	f := &stubFetcher{papers: map[string][]types.Paper{
		"math.AG": {paper("ag1", "math.AG", 17), paper("ag2", "math.AG", 9)},
		"math.RT": {paper("rt1", "math.RT", 16), paper("rt2", "math.RT", 4)},
		"math.QA": {paper("qa1", "math.QA", 12)},
	}}
	d, _ := newDigest(t, f, render.DefaultTemplate)

	var buf bytes.Buffer
	sum, err := d.Run(context.Background(), &buf)
	require.NoError(t, err)

	assert.Equal(t, []string{"math.AG", "math.RT", "math.QA"}, f.calls)
	assert.True(t, sum.TargetDate.Equal(dayD))
	assert.Equal(t, []SectionSummary{{"AG", 2}, {"RT&QA", 3}}, sum.Sections)
	assert.Empty(t, sum.Warnings)

	doc := readFile(t, sum.Paths.Dated)
	assert.Equal(t, doc, readFile(t, sum.Paths.Latest))
	assert.True(t, strings.HasSuffix(sum.Paths.Dated, "arxiv_20261014.tex"))

	assert.True(t, strings.HasPrefix(doc, "% Generated: 2026-10-14 09:30:00\n"))
	assert.Contains(t, doc, "% Run: run-test\n")
	assert.Contains(t, doc, "% Paper date: 2026-10-13\n")
	assert.Contains(t, doc, `\newcommand{\AGnumber}{2}`)
	assert.Contains(t, doc, `\newcommand{\RTQAnumber}{3}`)
	assert.Contains(t, doc, `\newcommand{\NewestDate}{2026-10-14}`)
	assert.Contains(t, doc, "%AG begin\n\\arxiv{ag1}{Title ag1}{A, B}\n\n\\arxiv{ag2}{Title ag2}{A, B}\n\n%AG end")

	// Secondary section is ordered by timestamp, newest first.
	rt1 := strings.Index(doc, `\arxiv{rt1}`)
	qa1 := strings.Index(doc, `\arxiv{qa1}`)
	rt2 := strings.Index(doc, `\arxiv{rt2}`)
	require.True(t, rt1 > 0 && qa1 > 0 && rt2 > 0)
	assert.Less(t, rt1, qa1)
	assert.Less(t, qa1, rt2)

	out := buf.String()
	assert.Contains(t, out, "math.AG: fetched 2, kept 2")
	assert.Contains(t, out, "RT&QA total: 3")
	assert.NotContains(t, out, "no papers found")
}

func TestRunFailedCategoryContributesNothing(t *testing.T) {
	f := &stubFetcher{
		papers: map[string][]types.Paper{
			"math.AG": {paper("ag1", "math.AG", 17)},
			"math.RT": {paper("rt1", "math.RT", 16)},
		},
		errs: map[string]error{"math.QA": errors.New("fetching math.QA: giving up after 3 attempts")},
	}
	d, _ := newDigest(t, f, render.DefaultTemplate)

	sum, err := d.Run(context.Background(), &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, []SectionSummary{{"AG", 1}, {"RT&QA", 1}}, sum.Sections)
	require.Len(t, sum.Warnings, 1)
	assert.Contains(t, sum.Warnings[0], "math.QA")
	require.Len(t, sum.Results, 3)
	assert.Error(t, sum.Results[2].Err)
	assert.Empty(t, sum.Results[2].Papers)
}

func TestRunNoPapers(t *testing.T) {
	f := &stubFetcher{errs: map[string]error{
		"math.AG": errors.New("down"), "math.RT": errors.New("down"), "math.QA": errors.New("down"),
	}}
	d, _ := newDigest(t, f, render.DefaultTemplate)

	var buf bytes.Buffer
	sum, err := d.Run(context.Background(), &buf)
	require.NoError(t, err)
	assert.Equal(t, 0, sum.Total())
	assert.True(t, sum.TargetDate.Equal(types.DateOf(reportTime)))

	doc := readFile(t, sum.Paths.Latest)
	assert.Contains(t, doc, `\newcommand{\AGnumber}{0}`)
	assert.Contains(t, doc, "%AG begin\n%AG end")
	assert.Contains(t, buf.String(), "no papers found")
}

func TestRunMissingTemplateWritesNothing(t *testing.T) {
	f := &stubFetcher{}
	d, dir := newDigest(t, f, "")

	var buf bytes.Buffer
	sum, err := d.Run(context.Background(), &buf)
	require.Error(t, err)
	assert.Nil(t, sum)

	var te *render.TemplateError
	assert.True(t, errors.As(err, &te))
	assert.Contains(t, buf.String(), "error:")
	assert.Empty(t, f.calls, "no request is made without a template")

	_, statErr := os.Stat(filepath.Join(dir, "latest.tex"))
	assert.True(t, os.IsNotExist(statErr))
	_, statErr = os.Stat(filepath.Join(dir, "out"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestRunMissingSentinelWarns(t *testing.T) {
	tmpl := strings.Replace(render.DefaultTemplate, "%RT&QA begin\n\n%RT&QA end\n", "", 1)
	f := &stubFetcher{papers: map[string][]types.Paper{
		"math.AG": {paper("ag1", "math.AG", 17)},
		"math.RT": {paper("rt1", "math.RT", 16)},
	}}
	d, _ := newDigest(t, f, tmpl)

	var buf bytes.Buffer
	sum, err := d.Run(context.Background(), &buf)
	require.NoError(t, err)
	require.Len(t, sum.Warnings, 1)
	assert.Contains(t, buf.String(), "warning:")

	doc := readFile(t, sum.Paths.Latest)
	assert.Contains(t, doc, `\arxiv{ag1}`)
	assert.NotContains(t, doc, `\arxiv{rt1}`)
	assert.Contains(t, doc, `\newcommand{\RTQAnumber}{1}`)
}

func TestRunCancelledContext(t *testing.T) {
	f := &stubFetcher{}
	d, dir := newDigest(t, f, render.DefaultTemplate)
	d.Config.API.RequestDelay = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := d.Run(ctx, &bytes.Buffer{})
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []string{"math.AG"}, f.calls)
	_, statErr := os.Stat(filepath.Join(dir, "latest.tex"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestRunWindowMode(t *testing.T) {
	older := paper("ag-old", "math.AG", -30) // October 11, outside the window
	f := &stubFetcher{papers: map[string][]types.Paper{
		"math.AG": {paper("ag1", "math.AG", 17), older},
	}}
	d, _ := newDigest(t, f, render.DefaultTemplate)
	d.Config.API.WindowDays = 2

	var buf bytes.Buffer
	sum, err := d.Run(context.Background(), &buf)
	require.NoError(t, err)
	assert.Equal(t, 2, sum.WindowDays)
	assert.Equal(t, []SectionSummary{{"AG", 1}, {"RT&QA", 0}}, sum.Sections)
	assert.Contains(t, buf.String(), "2026-10-13 - 2026-10-14")
}

func TestRenderResults(t *testing.T) {
	d, _ := newDigest(t, &stubFetcher{}, render.DefaultTemplate)
	results := []types.CategoryResult{
		{Category: "math.AG", Papers: []types.Paper{paper("ag1", "math.AG", 3)}},
	}
	when := time.Date(2026, 10, 13, 20, 0, 0, 0, time.UTC)

	sum, err := d.RenderResults(results, when, &bytes.Buffer{})
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(sum.Paths.Dated, "arxiv_20261013.tex"))
	assert.Contains(t, readFile(t, sum.Paths.Dated), `\arxiv{ag1}`)
}
