// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package render turns render contexts into text. Each backend ships its
// templates embedded; a template directory may override any of them by id.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"text/template"
)

// Ext is the file extension of template files.
const Ext = ".tmpl"

// Renderer renders the template id with data.
type Renderer interface {
	Render(w io.Writer, id string, data any) error
}

// Engine is a Renderer backed by text/template.
type Engine struct {
	name string
	tmpl *template.Template
}

// New loads every "*.tmpl" file of fsys as the template named after the
// file. When overrideDir is set, "<overrideDir>/<name>/<id>.tmpl" files
// replace the embedded templates of the same id.
func New(name string, fsys fs.FS, overrideDir string) (*Engine, error) {
	root := template.New(name).Funcs(Funcs())

	entries, err := fs.Glob(fsys, "*"+Ext)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s templates: %w", name, err)
	}
	for _, entry := range entries {
		data, err := fs.ReadFile(fsys, entry)
		if err != nil {
			return nil, fmt.Errorf("failed to read template %s: %w", entry, err)
		}
		if err := parse(root, strings.TrimSuffix(path.Base(entry), Ext), string(data)); err != nil {
			return nil, err
		}
	}

	if overrideDir != "" {
		dir := filepath.Join(overrideDir, name)
		matches, err := filepath.Glob(filepath.Join(dir, "*"+Ext))
		if err != nil {
			return nil, fmt.Errorf("failed to list template overrides: %w", err)
		}
		for _, m := range matches {
			data, err := os.ReadFile(m)
			if err != nil {
				return nil, fmt.Errorf("failed to read template override %s: %w", m, err)
			}
			if err := parse(root, strings.TrimSuffix(filepath.Base(m), Ext), string(data)); err != nil {
				return nil, err
			}
		}
	}

	return &Engine{name: name, tmpl: root}, nil
}

func parse(root *template.Template, id, text string) error {
	if _, err := root.New(id).Parse(text); err != nil {
		return fmt.Errorf("failed to parse template %s: %w", id, err)
	}
	return nil
}

// Render executes template id.
func (e *Engine) Render(w io.Writer, id string, data any) error {
	t := e.tmpl.Lookup(id)
	if t == nil {
		return fmt.Errorf("%s: unknown template %q", e.name, id)
	}
	if err := t.Execute(w, data); err != nil {
		return fmt.Errorf("%s: failed to render %s: %w", e.name, id, err)
	}
	return nil
}

// String renders template id into a string.
func String(r Renderer, id string, data any) (string, error) {
	var buf bytes.Buffer
	if err := r.Render(&buf, id, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Buffer accumulates the output of several renders and keeps the first
// error.
type Buffer struct {
	r   Renderer
	buf bytes.Buffer
	err error
}

// NewBuffer returns an empty Buffer rendering with r.
func NewBuffer(r Renderer) *Buffer {
	return &Buffer{r: r}
}

// Render appends the output of template id.
func (b *Buffer) Render(id string, data any) {
	if b.err != nil {
		return
	}
	b.err = b.r.Render(&b.buf, id, data)
}

// WriteString appends s.
func (b *Buffer) WriteString(s string) {
	if b.err == nil {
		b.buf.WriteString(s)
	}
}

// Bytes returns the accumulated output, or the first error.
func (b *Buffer) Bytes() ([]byte, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.buf.Bytes(), nil
}

// Funcs returns the functions available to every template.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"join":     strings.Join,
		"quote":    quote,
		"tsString": tsString,
		"comment":  comment,
		"last":     func(i, n int) bool { return i == n-1 },
	}
}

// quote returns s as a double-quoted Java string literal.
func quote(s string) string {
	return `"` + strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`).Replace(s) + `"`
}

var tsEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`, "\n", `\n`, "\r", `\r`, "\u2028", `\u2028`, "\u2029", `\u2029`)

// tsString returns s as a single-quoted TypeScript string literal.
func tsString(s string) string {
	return "'" + tsEscaper.Replace(s) + "'"
}

// comment prefixes every line of s with prefix.
func comment(prefix, s string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(prefix+l, " ")
	}
	return strings.Join(lines, "\n")
}

// ErrNoTemplates is returned by MustHave when an engine lacks templates.
var ErrNoTemplates = errors.New("missing templates")

// MustHave checks that every id is loaded.
func (e *Engine) MustHave(ids ...string) error {
	var missing []string
	for _, id := range ids {
		if e.tmpl.Lookup(id) == nil {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s: %s", ErrNoTemplates, e.name, strings.Join(missing, ", "))
	}
	return nil
}
