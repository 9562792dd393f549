// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package format renders paper records as LaTeX macro calls.
package format

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/pdiddy/arxiv-digest/pkg/types"
)

// DefaultEtAl is appended to author lists longer than MaxAuthors.
const DefaultEtAl = " et al."

// MaxAuthors is the number of names shown before the et al. suffix.
const MaxAuthors = 3

// Options control entry rendering.
type Options struct {
	// Macro is the entry macro name without backslash.
	Macro string

	// EtAl replaces the authors beyond the first MaxAuthors.
	EtAl string

	// Escape escapes LaTeX special characters in title and authors.
	Escape bool
}

// OptionsFrom converts the configuration block into Options.
func OptionsFrom(cfg types.FormatConfig) Options {
	return Options{Macro: cfg.Macro, EtAl: cfg.EtAl, Escape: cfg.Escape}
}

// Authors joins names with ", ". Lists longer than MaxAuthors keep the first
// MaxAuthors names followed by suffix.
func Authors(names []string, suffix string) string {
	if len(names) > MaxAuthors {
		return strings.Join(names[:MaxAuthors], ", ") + suffix
	}
	return strings.Join(names, ", ")
}

// Entry renders p as \macro{id}{title}{authors} followed by a blank line.
func Entry(p types.Paper, opts Options) string {
	macro := opts.Macro
	if macro == "" {
		macro = "arxiv"
	}

	title := p.Title
	names := p.Authors
	if opts.Escape {
		title = EscapeLaTeX(title)
		names = lo.Map(names, func(n string, _ int) string { return EscapeLaTeX(n) })
	}
	return fmt.Sprintf("\\%s{%s}{%s}{%s}\n\n", macro, p.ID, title, Authors(names, opts.EtAl))
}

// Entries renders papers in order and concatenates the fragments.
func Entries(papers []types.Paper, opts Options) string {
	var b strings.Builder
	for _, p := range papers {
		b.WriteString(Entry(p, opts))
	}
	return b.String()
}
