// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package docs renders an API model as a single Markdown document.
package docs

import (
	"embed"
	"fmt"
	"io/fs"

	"go.uber.org/zap"

	"github.com/api2spec/api2model/internal/logging"
	"github.com/api2spec/api2model/internal/model"
	"github.com/api2spec/api2model/internal/output"
	"github.com/api2spec/api2model/internal/render"
	"github.com/api2spec/api2model/internal/traverse"
)

//go:embed templates/*.tmpl
var templates embed.FS

// TemplateIDs are the templates the backend renders.
var TemplateIDs = []string{"document"}

// Options configures the documentation backend.
type Options struct {
	// File is the output file name (default: index.md)
	File string

	// TemplateDir overrides embedded templates from <dir>/docs/<id>.tmpl
	TemplateDir string

	Logger *zap.Logger
}

// Backend generates Markdown documentation.
type Backend struct {
	opts Options
}

// New returns a documentation backend.
func New(opts Options) *Backend {
	if opts.File == "" {
		opts.File = "index.md"
	}
	opts.Logger = logging.OrNop(opts.Logger)
	return &Backend{opts: opts}
}

func (b *Backend) Name() string { return "docs" }

func (b *Backend) Description() string { return "Markdown API reference" }

// Generate writes the document.
func (b *Backend) Generate(m *model.Model, sink output.Sink) error {
	sub, err := fs.Sub(templates, "templates")
	if err != nil {
		return fmt.Errorf("failed to open templates: %w", err)
	}
	engine, err := render.New(b.Name(), sub, b.opts.TemplateDir)
	if err != nil {
		return err
	}
	if err := engine.MustHave(TemplateIDs...); err != nil {
		return err
	}

	v := newBuilder(m)
	if err := traverse.New().Traverse(m.Document(), v); err != nil {
		return err
	}

	content, err := render.String(engine, "document", v.doc)
	if err != nil {
		return err
	}
	b.opts.Logger.Debug("rendered document",
		zap.String("path", b.opts.File),
		zap.Int("types", len(v.doc.Types)),
		zap.Int("groups", len(v.doc.Groups)))
	return sink.Write(output.Artifact{Path: b.opts.File, Content: []byte(content)})
}
