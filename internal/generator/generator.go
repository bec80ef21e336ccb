// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package generator runs backends over loaded API descriptions.
package generator

import (
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/api2spec/api2model/internal/loader"
	"github.com/api2spec/api2model/internal/logging"
	"github.com/api2spec/api2model/internal/model"
	"github.com/api2spec/api2model/internal/output"
)

// Backend turns a model into output artifacts.
type Backend interface {
	// Name returns the backend identifier used in configuration (e.g., "java").
	Name() string

	// Description returns a one-line description for help output.
	Description() string

	// Generate writes every artifact of the model to sink. The sink receives
	// each artifact as soon as it is complete.
	Generate(m *model.Model, sink output.Sink) error
}

// Generator runs backends sequentially.
type Generator struct {
	Backends []Backend
	Logger   *zap.Logger
}

// New returns a Generator for the given backends.
func New(logger *zap.Logger, backends ...Backend) *Generator {
	return &Generator{Backends: backends, Logger: logging.OrNop(logger)}
}

// Generate runs every backend over one model. Each backend writes below a
// directory named after it. The first error aborts the run.
func (g *Generator) Generate(m *model.Model, sink output.Sink) error {
	log := logging.OrNop(g.Logger)
	for _, b := range g.Backends {
		log.Debug("running backend", zap.String("backend", b.Name()))
		if err := b.Generate(m, output.Prefixed{Dir: b.Name(), Sink: sink}); err != nil {
			return fmt.Errorf("%s backend: %w", b.Name(), err)
		}
	}
	return nil
}

// Run loads and generates every source. With more than one source each
// document's artifacts go below a directory named after its file.
func (g *Generator) Run(sources []loader.Source, sink output.Sink) error {
	log := logging.OrNop(g.Logger)
	for _, src := range sources {
		doc, err := loader.Parse(src.Content)
		if err != nil {
			return fmt.Errorf("%s: %w", src.Path, err)
		}
		m, err := model.New(doc)
		if err != nil {
			return fmt.Errorf("%s: %w", src.Path, err)
		}

		target := sink
		if len(sources) > 1 {
			target = output.Prefixed{Dir: DocumentDir(src.Path), Sink: sink}
		}
		log.Info("generating",
			zap.String("input", src.Path),
			zap.Int("types", len(doc.Types)),
			zap.Int("resources", len(doc.Resources)),
		)
		if err := g.Generate(m, target); err != nil {
			return fmt.Errorf("%s: %w", src.Path, err)
		}
	}
	return nil
}

// DocumentDir names the output directory of a source file: its base name
// without extension.
func DocumentDir(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
