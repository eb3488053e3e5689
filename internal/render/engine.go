// Package render wraps text/template for generated-source rendering.
// Template syntax is passed through untouched; the engine only controls
// loading, the helper FuncMap, and error classification.
package render

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"github.com/spigotdb/spigot/internal/mapping"
)

// TemplateError reports a missing template or a failure while executing
// one. Both abort generation for the current (table, className) pair.
type TemplateError struct {
	Template string
	Err      error
}

func (e *TemplateError) Error() string {
	return fmt.Sprintf("template %q: %v", e.Template, e.Err)
}

func (e *TemplateError) Unwrap() error { return e.Err }

// Engine renders named templates loaded from a template root directory.
type Engine struct {
	templates *template.Template
}

// NewEngine parses every *.tmpl file directly under root into a template
// set. Template names are the file names without the .tmpl extension.
func NewEngine(root string) (*Engine, error) {
	if _, err := os.Stat(root); err != nil {
		return nil, fmt.Errorf("template root %q: %w", root, err)
	}

	matches, err := filepath.Glob(filepath.Join(root, "*.tmpl"))
	if err != nil {
		return nil, fmt.Errorf("scan template root %q: %w", root, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("template root %q contains no *.tmpl files", root)
	}

	// The render context is a map, so undefined references inside a
	// template must fail execution instead of printing "<no value>".
	tmpl := template.New("").Option("missingkey=error").Funcs(template.FuncMap{
		"camelize":     mapping.Camelize,
		"toLowerCamel": mapping.LowerCamel,
		"now": func(layout string) string {
			return time.Now().Format(layout)
		},
	})

	for _, file := range matches {
		content, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read template %q: %w", file, err)
		}

		name := strings.TrimSuffix(filepath.Base(file), ".tmpl")
		tmpl, err = tmpl.New(name).Parse(string(content))
		if err != nil {
			return nil, fmt.Errorf("parse template %q: %w", file, err)
		}
	}

	return &Engine{templates: tmpl}, nil
}

// Render executes the named template with the given context and returns
// the rendered text. The output always ends with exactly one newline.
func (e *Engine) Render(name string, ctx mapping.RenderContext) (string, error) {
	if e.templates.Lookup(name) == nil {
		return "", &TemplateError{Template: name, Err: fmt.Errorf("not found")}
	}

	var buf bytes.Buffer
	if err := e.templates.ExecuteTemplate(&buf, name, ctx); err != nil {
		return "", &TemplateError{Template: name, Err: err}
	}

	return strings.TrimRight(buf.String(), "\n") + "\n", nil
}
