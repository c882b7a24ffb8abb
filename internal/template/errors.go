// Package template renders the token-substitution templates used by
// the OpenTofu and Ansible adapters. It is deliberately thin: plain
// text/template, no third-party template engine, since the token set
// is small and fixed (see DESIGN.md for the stdlib justification).
package template

import (
	"fmt"

	"github.com/torrust/tracker-deployer/internal/traceable"
)

// RenderError wraps a template parse or execute failure with enough
// context to locate the offending template on disk.
type RenderError struct {
	TemplateName string
	SourcePath   string
	Cause        error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("rendering template %s (%s): %s", e.TemplateName, e.SourcePath, e.Cause)
}
func (e *RenderError) Unwrap() error { return e.Cause }
func (e *RenderError) TraceFormat() string {
	return e.Error()
}
func (e *RenderError) TraceSource() (traceable.Traceable, bool) {
	return nil, false
}
func (e *RenderError) ErrorKind() traceable.ErrorKind {
	return traceable.KindTemplateRendering
}
