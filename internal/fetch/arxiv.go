// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch queries the arXiv API for the newest submissions of a
// category and turns the Atom response into paper records.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
	"golang.org/x/exp/slog"

	"github.com/pdiddy/arxiv-digest/internal/httputil"
	"github.com/pdiddy/arxiv-digest/pkg/types"
)

// DefaultBaseURL is the arXiv search endpoint.
const DefaultBaseURL = "https://export.arxiv.org/api/query"

const (
	untitled  = "untitled"
	unknownID = "unknown"

	// submittedDate bounds use minute precision: YYYYMMDDHHMM.
	windowLayout = "20060102"
)

// ErrAPI is returned when the API answers with an error entry instead of results.
var ErrAPI = errors.New("arXiv API error")

// Fetcher queries one category at a time.
type Fetcher struct {
	Client  *http.Client
	BaseURL string
	Policy  httputil.Policy

	// WindowDays restricts the query to the last N days when positive.
	WindowDays int

	// Now returns the current time; defaults to time.Now.
	Now func() time.Time

	Log *slog.Logger
}

// New returns a Fetcher configured from cfg.
func New(cfg types.APIConfig, client *http.Client, lg *slog.Logger) *Fetcher {
	return &Fetcher{
		Client:  client,
		BaseURL: cfg.BaseURL,
		Policy: httputil.Policy{
			MaxAttempts: cfg.MaxAttempts,
			BaseDelay:   cfg.BaseDelay,
			MaxJitter:   cfg.MaxJitter,
		},
		WindowDays: cfg.WindowDays,
		Log:        lg,
	}
}

// Fetch returns up to maxResults of the newest papers of category. Failed
// attempts are retried with backoff; once every attempt has failed Fetch
// logs the failure and returns an empty list together with the last error.
// Callers treat that error as an empty category, never as a fatal one.
func (f *Fetcher) Fetch(ctx context.Context, category string, maxResults int) ([]types.Paper, error) {
	lg := f.Log.With(slog.String("category", category))

	policy := f.Policy
	policy.OnRetry = func(attempt int, err error, wait time.Duration) {
		lg.Warn("fetch attempt failed, retrying",
			slog.Int("attempt", attempt+1),
			slog.Duration("wait", wait.Round(100*time.Millisecond)),
			slog.Any("err", err),
		)
	}

	var papers []types.Paper
	err := httputil.Retry(ctx, policy, func(attempt int) error {
		lg.Info("fetching papers", slog.Int("attempt", attempt+1))
		var err error
		papers, err = f.fetchOnce(ctx, category, maxResults)
		return err
	})
	if err != nil {
		lg.Error("fetch failed, continuing without this category", slog.Any("err", err))
		return []types.Paper{}, fmt.Errorf("fetching %s: %w", category, err)
	}

	lg.Info("fetched papers", slog.Int("count", len(papers)))
	return papers, nil
}

func (f *Fetcher) fetchOnce(ctx context.Context, category string, maxResults int) ([]types.Paper, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.queryURL(category, maxResults), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("arXiv API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("arXiv API returned HTTP %d", resp.StatusCode)
	}

	papers, err := ParseFeed(resp.Body)
	if err != nil {
		return nil, err
	}
	for i := range papers {
		papers[i].Category = category
	}
	return papers, nil
}

// queryURL builds the request URL for category.
func (f *Fetcher) queryURL(category string, maxResults int) string {
	base := f.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}

	v := url.Values{}
	v.Set("search_query", f.searchQuery(category))
	v.Set("start", "0")
	v.Set("max_results", strconv.Itoa(maxResults))
	v.Set("sortBy", "submittedDate")
	v.Set("sortOrder", "descending")
	return base + "?" + v.Encode()
}

// searchQuery scopes the query to category and, when a window is set, to
// submissions of the WindowDays days ending today.
func (f *Fetcher) searchQuery(category string) string {
	q := "cat:" + category
	if f.WindowDays <= 0 {
		return q
	}

	now := time.Now
	if f.Now != nil {
		now = f.Now
	}
	today := now()
	from := today.AddDate(0, 0, -(f.WindowDays - 1))
	return fmt.Sprintf("%s AND submittedDate:[%s0000 TO %s2359]",
		q, from.Format(windowLayout), today.Format(windowLayout))
}

// ParseFeed decodes an arXiv Atom response into papers in document order.
// Missing fields degrade to placeholders; only an undecodable document or
// an API error entry returns an error.
func ParseFeed(r io.Reader) ([]types.Paper, error) {
	feed, err := gofeed.NewParser().Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing arXiv response: %w", err)
	}

	papers := make([]types.Paper, 0, len(feed.Items))
	for _, item := range feed.Items {
		if isErrorEntry(item) {
			return nil, fmt.Errorf("%w: %s", ErrAPI, collapse(item.Description))
		}
		papers = append(papers, paperFromItem(item))
	}
	return papers, nil
}

func paperFromItem(item *gofeed.Item) types.Paper {
	p := types.Paper{
		ID:    entryID(item.GUID),
		Title: collapse(item.Title),
	}
	if p.ID == "" {
		p.ID = unknownID
	}
	if p.Title == "" {
		p.Title = untitled
	}

	p.Authors = []string{}
	for _, a := range item.Authors {
		if a == nil {
			continue
		}
		if name := collapse(a.Name); name != "" {
			p.Authors = append(p.Authors, name)
		}
	}

	if item.PublishedParsed != nil {
		p.Published = item.PublishedParsed.UTC()
		p.PublishedDate = types.DateOf(p.Published)
	}
	return p
}

// entryID returns the trailing path segment of the entry URI
// (e.g. "http://arxiv.org/abs/2410.01234v1" → "2410.01234v1").
func entryID(uri string) string {
	uri = strings.TrimRight(strings.TrimSpace(uri), "/")
	if idx := strings.LastIndex(uri, "/"); idx >= 0 {
		return uri[idx+1:]
	}
	return uri
}

// isErrorEntry reports whether item is the single entry arXiv returns for a
// rejected query (its id points at /api/errors).
func isErrorEntry(item *gofeed.Item) bool {
	return strings.Contains(item.GUID, "/api/errors")
}

// collapse trims s and replaces every whitespace run with a single space.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
