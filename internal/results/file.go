// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package results saves fetched category results to YAML and loads them
// back, so a report can be rendered again without querying the API.
package results

import (
	"errors"
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/arxiv-digest/pkg/types"
)

// File is the on-disk representation of one run's fetch results.
type File struct {
	// Fetched is when the results were retrieved; it is the report date
	// used when rendering from this file.
	Fetched    time.Time        `yaml:"fetched"`
	RunID      string           `yaml:"run_id,omitempty"`
	WindowDays int              `yaml:"window_days,omitempty"`
	Categories []CategoryRecord `yaml:"categories"`
}

// CategoryRecord stores the papers of one category and the fetch error, if any.
type CategoryRecord struct {
	Category string        `yaml:"category"`
	Error    string        `yaml:"error,omitempty"`
	Papers   []types.Paper `yaml:"papers"`
}

// New builds a File from in-memory results.
func New(fetched time.Time, runID string, windowDays int, rs []types.CategoryResult) File {
	f := File{Fetched: fetched, RunID: runID, WindowDays: windowDays}
	for _, r := range rs {
		rec := CategoryRecord{Category: r.Category, Papers: r.Papers}
		if r.Err != nil {
			rec.Error = r.Err.Error()
		}
		if rec.Papers == nil {
			rec.Papers = []types.Paper{}
		}
		f.Categories = append(f.Categories, rec)
	}
	return f
}

// Results converts the stored records back into category results. Stored
// errors are restored as opaque errors carrying the original message.
func (f File) Results() []types.CategoryResult {
	out := make([]types.CategoryResult, 0, len(f.Categories))
	for _, rec := range f.Categories {
		r := types.CategoryResult{Category: rec.Category, Papers: rec.Papers}
		if rec.Error != "" {
			r.Err = errors.New(rec.Error)
		}
		if r.Papers == nil {
			r.Papers = []types.Paper{}
		}
		out = append(out, r)
	}
	return out
}

// Write saves f as YAML at path.
func Write(path string, f File) error {
	data, err := yaml.Marshal(&f)
	if err != nil {
		return fmt.Errorf("marshaling results file: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing results file: %w", err)
	}
	return nil
}

// Read loads a results file from disk.
func Read(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading results file: %w", err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing results file: %w", err)
	}
	return &f, nil
}
