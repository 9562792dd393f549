// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import "fmt"

// TemplateError reports a template that cannot be loaded. It aborts a run
// before any output is written.
type TemplateError struct {
	Path  string
	Cause error
}

func (e *TemplateError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("template error: %s: %v", e.Path, e.Cause)
	}
	return fmt.Sprintf("template error: %s", e.Path)
}

func (e *TemplateError) Unwrap() error {
	return e.Cause
}
