// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package openapi generates an OpenAPI 3 document from an API model.
//
// Declared types become component schemas: inheritance is expressed with
// allOf, discriminators carry a mapping of every subtype, unions become
// oneOf and enumerations become string enums. Every method becomes an
// operation on the full path of its resource, tagged with its outer
// resource.
package openapi

import (
	"errors"
	"io/fs"
	"strings"

	"go.uber.org/zap"

	"github.com/api2spec/api2model/internal/logging"
	"github.com/api2spec/api2model/internal/model"
	"github.com/api2spec/api2model/internal/output"
	"github.com/api2spec/api2model/internal/traverse"
	"github.com/api2spec/api2model/pkg/types"
)

// DefaultVersion is the OpenAPI version written when none is configured.
const DefaultVersion = "3.0.3"

// Options configures the OpenAPI backend.
type Options struct {
	// Version is the OpenAPI version (default: 3.0.3)
	Version string

	// Format is "yaml" or "json"; empty infers it from File
	Format string

	// File is the artifact name (default: openapi.yaml)
	File string

	// Servers overrides the servers derived from the base URI
	Servers []types.Server

	// Existing is the path of a previously written document to merge with;
	// a missing file is not an error
	Existing string

	// Merge selects what the existing document contributes
	Merge MergeOptions

	Logger *zap.Logger
}

// Backend generates the OpenAPI document.
type Backend struct {
	opts Options
}

// New returns an OpenAPI backend.
func New(opts Options) *Backend {
	if opts.Version == "" {
		opts.Version = DefaultVersion
	}
	if opts.File == "" {
		opts.File = "openapi.yaml"
	}
	if opts.Format == "" {
		opts.Format = FormatFor(opts.File)
	}
	opts.Logger = logging.OrNop(opts.Logger)
	return &Backend{opts: opts}
}

func (b *Backend) Name() string { return "openapi" }

func (b *Backend) Description() string { return "OpenAPI 3 document" }

// Generate writes the document as a single artifact.
func (b *Backend) Generate(m *model.Model, sink output.Sink) error {
	doc, err := b.Document(m)
	if err != nil {
		return err
	}

	if b.opts.Existing != "" {
		existing, err := ReadFile(b.opts.Existing)
		switch {
		case err == nil:
			b.opts.Logger.Debug("merging existing document", zap.String("path", b.opts.Existing))
			doc = Merge(existing, doc, b.opts.Merge)
		case errors.Is(err, fs.ErrNotExist):
		default:
			return err
		}
	}

	data, err := Encode(doc, b.opts.Format)
	if err != nil {
		return err
	}
	return sink.Write(output.Artifact{Path: b.opts.File, Content: data})
}

// Document builds the OpenAPI document of a model.
func (b *Backend) Document(m *model.Model) (*types.OpenAPI, error) {
	bld := newBuilder(m, b.opts.Version)
	if err := traverse.New().Traverse(m.Document(), bld); err != nil {
		return nil, err
	}

	src := m.Document()
	bld.doc.Info = types.Info{
		Title:       src.Title,
		Description: src.Description,
		Version:     src.Version,
	}
	if bld.doc.Info.Title == "" {
		bld.doc.Info.Title = "API"
	}
	if bld.doc.Info.Version == "" {
		bld.doc.Info.Version = "1.0.0"
	}

	switch {
	case len(b.opts.Servers) > 0:
		bld.doc.Servers = b.opts.Servers
	case src.BaseURI != "":
		bld.doc.Servers = []types.Server{{URL: strings.ReplaceAll(src.BaseURI, "{version}", src.Version)}}
	}
	return bld.doc, nil
}
