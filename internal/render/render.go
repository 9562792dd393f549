// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render fills the report template: literal macro substitution,
// sentinel region replacement, and the provenance comment header.
package render

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Load reads the template at path.
func Load(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", &TemplateError{Path: path, Cause: fmt.Errorf("template file not found")}
		}
		return "", &TemplateError{Path: path, Cause: err}
	}
	return string(data), nil
}

// MacroDefinition returns the literal \newcommand{\name}{value}.
func MacroDefinition(name, value string) string {
	return fmt.Sprintf("\\newcommand{\\%s}{%s}", name, value)
}

// ReplaceMacro replaces every literal \newcommand{\name}{placeholder} in doc
// with \newcommand{\name}{value}. It reports whether the literal was found.
func ReplaceMacro(doc, name, placeholder, value string) (string, bool) {
	old := MacroDefinition(name, placeholder)
	if !strings.Contains(doc, old) {
		return doc, false
	}
	return strings.ReplaceAll(doc, old, MacroDefinition(name, value)), true
}

// BeginMarker and EndMarker return the sentinel comments delimiting a region.
func BeginMarker(sentinel string) string { return "%" + sentinel + " begin" }
func EndMarker(sentinel string) string   { return "%" + sentinel + " end" }

// ReplaceRegion replaces everything between the first begin marker of
// sentinel and the end marker that follows it with a newline plus content.
// The markers themselves are kept. If either marker is missing doc is
// returned unchanged and false.
func ReplaceRegion(doc, sentinel, content string) (string, bool) {
	begin, end := BeginMarker(sentinel), EndMarker(sentinel)

	bi := strings.Index(doc, begin)
	if bi < 0 {
		return doc, false
	}
	bodyStart := bi + len(begin)

	ei := strings.Index(doc[bodyStart:], end)
	if ei < 0 {
		return doc, false
	}
	bodyEnd := bodyStart + ei

	return doc[:bodyStart] + "\n" + content + doc[bodyEnd:], true
}

// SectionValues carries the computed values of one report section.
type SectionValues struct {
	Sentinel         string
	CountMacro       string
	CountPlaceholder string
	Count            int
	Entries          string
}

// Values are the substitutions applied by Render.
type Values struct {
	Sections []SectionValues

	// DateMacro receives Date; its template placeholder is empty.
	DateMacro string
	Date      string
}

// Render applies values to tmpl. Every macro literal or sentinel pair that
// is missing from tmpl is skipped and reported in warnings; the remaining
// substitutions still apply.
func Render(tmpl string, v Values) (doc string, warnings []string) {
	doc = tmpl
	var ok bool

	for _, s := range v.Sections {
		if s.CountMacro == "" {
			continue
		}
		if doc, ok = ReplaceMacro(doc, s.CountMacro, s.CountPlaceholder, fmt.Sprint(s.Count)); !ok {
			warnings = append(warnings, fmt.Sprintf("macro %s not found in template", MacroDefinition(s.CountMacro, s.CountPlaceholder)))
		}
	}

	if v.DateMacro != "" {
		if doc, ok = ReplaceMacro(doc, v.DateMacro, "", v.Date); !ok {
			warnings = append(warnings, fmt.Sprintf("macro %s not found in template", MacroDefinition(v.DateMacro, "")))
		}
	}

	for _, s := range v.Sections {
		if doc, ok = ReplaceRegion(doc, s.Sentinel, s.Entries); !ok {
			warnings = append(warnings, fmt.Sprintf("placeholder %s ... %s not found in template",
				BeginMarker(s.Sentinel), EndMarker(s.Sentinel)))
		}
	}
	return doc, warnings
}

// SectionCount is one count line of the provenance block.
type SectionCount struct {
	Name  string
	Count int
}

// Provenance records when and from what a document was generated.
type Provenance struct {
	Generated  time.Time
	ReportDate string
	PaperDate  string
	RunID      string
	Counts     []SectionCount
}

// Comment renders p as comment lines starting with prefix, followed by a
// blank line.
func (p Provenance) Comment(prefix string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s Generated: %s\n", prefix, p.Generated.Format(time.DateTime))
	fmt.Fprintf(&b, "%s Report date: %s\n", prefix, p.ReportDate)
	fmt.Fprintf(&b, "%s Paper date: %s\n", prefix, p.PaperDate)
	if p.RunID != "" {
		fmt.Fprintf(&b, "%s Run: %s\n", prefix, p.RunID)
	}
	for _, c := range p.Counts {
		fmt.Fprintf(&b, "%s %s papers: %d\n", prefix, c.Name, c.Count)
	}
	b.WriteString("\n")
	return b.String()
}

// Document prepends the provenance comment to body.
func Document(p Provenance, prefix, body string) string {
	return p.Comment(prefix) + body
}
