package template

import (
	"os"
	"path/filepath"
	"text/template"

	"github.com/pkg/errors"
)

// RenderToFile reads the template text at sourcePath, executes it
// against data with missingkey=error so an unresolved token fails the
// render instead of silently emitting "<no value>", and writes the
// result to targetPath.
func RenderToFile(templateName, sourcePath, targetPath string, data any) error {
	raw, err := os.ReadFile(sourcePath)
	if err != nil {
		return &RenderError{TemplateName: templateName, SourcePath: sourcePath, Cause: errors.Wrap(err, "reading template source")}
	}

	tmpl, err := template.New(templateName).Option("missingkey=error").Parse(string(raw))
	if err != nil {
		return &RenderError{TemplateName: templateName, SourcePath: sourcePath, Cause: errors.Wrap(err, "parsing template")}
	}

	if err := os.MkdirAll(filepath.Dir(targetPath), 0o755); err != nil {
		return &RenderError{TemplateName: templateName, SourcePath: sourcePath, Cause: errors.Wrap(err, "creating target directory")}
	}

	f, err := os.OpenFile(targetPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return &RenderError{TemplateName: templateName, SourcePath: sourcePath, Cause: errors.Wrap(err, "opening target file")}
	}
	defer f.Close()

	if err := tmpl.Execute(f, data); err != nil {
		return &RenderError{TemplateName: templateName, SourcePath: sourcePath, Cause: errors.Wrap(err, "executing template")}
	}

	return nil
}

// CopyFile copies a static (non-templated) file verbatim, preserving
// its contents byte for byte.
func CopyFile(sourcePath, targetPath string) error {
	raw, err := os.ReadFile(sourcePath)
	if err != nil {
		return &RenderError{TemplateName: filepath.Base(sourcePath), SourcePath: sourcePath, Cause: errors.Wrap(err, "reading static file")}
	}
	if err := os.MkdirAll(filepath.Dir(targetPath), 0o755); err != nil {
		return &RenderError{TemplateName: filepath.Base(sourcePath), SourcePath: sourcePath, Cause: errors.Wrap(err, "creating target directory")}
	}
	if err := os.WriteFile(targetPath, raw, 0o644); err != nil {
		return &RenderError{TemplateName: filepath.Base(sourcePath), SourcePath: sourcePath, Cause: errors.Wrap(err, "writing static file")}
	}
	return nil
}
