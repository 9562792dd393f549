// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package output persists the rendered report.
package output

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pdiddy/arxiv-digest/pkg/types"
)

// fileLayout names the dated report: arxiv_YYYYMMDD.tex.
const fileLayout = "arxiv_20060102.tex"

// Paths are the two files written for a run.
type Paths struct {
	Dated  string
	Latest string
}

// PathsFor returns the output paths for a run on day.
func PathsFor(cfg types.OutputConfig, day time.Time) Paths {
	dir := cfg.Dir
	if cfg.DatedSubdir != "" {
		dir = filepath.Join(dir, day.Format(cfg.DatedSubdir))
	}
	return Paths{
		Dated:  filepath.Join(dir, day.Format(fileLayout)),
		Latest: cfg.Latest,
	}
}

// Write stores doc at the dated path, creating its directory, and
// overwrites the latest path. Both writes are attempted independently; any
// failures are joined in the returned error.
func Write(doc string, cfg types.OutputConfig, day time.Time) (Paths, error) {
	paths := PathsFor(cfg, day)
	return paths, errors.Join(
		writeFile(paths.Dated, doc),
		writeFile(paths.Latest, doc),
	)
}

func writeFile(path, doc string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
