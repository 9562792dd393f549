// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package format

import "strings"

// EscapeLaTeX escapes the LaTeX special characters \ { } $ & % # ^ _ ~ in text.
// Math in titles ($...$) is escaped too, so enable it only for plain-text sources.
func EscapeLaTeX(text string) string {
	if text == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(text) + len(text)/4)

	for _, r := range text {
		switch r {
		case '\\':
			b.WriteString(`\textbackslash{}`)
		case '^':
			b.WriteString(`\textasciicircum{}`)
		case '~':
			b.WriteString(`\textasciitilde{}`)
		case '{', '}', '$', '&', '%', '#', '_':
			b.WriteByte('\\')
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
