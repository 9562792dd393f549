// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import _ "embed"

// DefaultTemplate is the starter template written by "arxiv-digest init".
// It carries the macros and sentinel regions of the default sections.
//
//go:embed template.tex
var DefaultTemplate string
