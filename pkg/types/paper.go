// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the arxiv-digest pipeline:
// the paper records produced by the fetcher, per-category results, and the
// configuration consumed by every stage.
package types

import "time"

// Paper holds the metadata of one arXiv submission as returned by the API.
// A Paper is created by the fetcher and never modified afterward.
type Paper struct {
	// ID is the trailing path segment of the entry URI (e.g. "2410.01234v1").
	ID string `json:"id" yaml:"id"`

	// Title is the paper title with whitespace runs collapsed.
	Title string `json:"title" yaml:"title"`

	// Authors lists the author names in document order.
	Authors []string `json:"authors" yaml:"authors"`

	// Published is the submission timestamp of the first version.
	Published time.Time `json:"published" yaml:"published"`

	// PublishedDate is the calendar date of Published (UTC), at midnight UTC.
	PublishedDate time.Time `json:"published_date" yaml:"published_date"`

	// Category is the category the paper was fetched for.
	Category string `json:"category,omitempty" yaml:"category,omitempty"`
}

// CategoryResult is the fetch outcome for one category. Papers keep the API
// order (descending submission time). Err is set when every attempt failed
// and Papers is empty as a consequence.
type CategoryResult struct {
	Category string  `json:"category" yaml:"category"`
	Papers   []Paper `json:"papers" yaml:"papers"`
	Err      error   `json:"-" yaml:"-"`
}

// DateOf truncates t to its calendar date, expressed at midnight UTC.
// The year, month and day are taken in t's own location.
func DateOf(t time.Time) time.Time {
	if t.IsZero() {
		return time.Time{}
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
