// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package java generates a Java class model from an API model: Jackson
// model classes, enums and union wrappers, one JAX-RS interface per outer
// resource and optional delegators of the model classes.
package java

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"

	"go.uber.org/zap"

	"github.com/api2spec/api2model/internal/logging"
	"github.com/api2spec/api2model/internal/model"
	"github.com/api2spec/api2model/internal/naming"
	"github.com/api2spec/api2model/internal/output"
	"github.com/api2spec/api2model/internal/render"
	"github.com/api2spec/api2model/internal/resolve"
	"github.com/api2spec/api2model/internal/traverse"
)

//go:embed templates/*.tmpl
var templates embed.FS

// TemplateIDs are the templates the backend renders.
var TemplateIDs = []string{"header", "members", "class", "enum", "union", "resource", "delegator"}

// Options configures the Java backend.
type Options struct {
	// Package is the root package (default: com.example.api)
	Package string

	// ModelPackage, ResourcePackage and DelegatorPackage are relative to
	// Package
	ModelPackage     string
	ResourcePackage  string
	DelegatorPackage string

	// ResourceSuffix is appended to resource interface names (default: Resource)
	ResourceSuffix string

	// Delegators enables delegator generation
	Delegators        bool
	DelegatorSuffix   string
	DelegateFieldName string

	// TemplateDir overrides embedded templates from <dir>/java/<id>.tmpl
	TemplateDir string

	Logger *zap.Logger
}

// Backend generates Java sources.
type Backend struct {
	opts Options
}

// New returns a Java backend.
func New(opts Options) *Backend {
	if opts.Package == "" {
		opts.Package = "com.example.api"
	}
	if opts.ModelPackage == "" {
		opts.ModelPackage = "model"
	}
	if opts.ResourcePackage == "" {
		opts.ResourcePackage = "resource"
	}
	if opts.DelegatorPackage == "" {
		opts.DelegatorPackage = "delegator"
	}
	if opts.ResourceSuffix == "" {
		opts.ResourceSuffix = "Resource"
	}
	if opts.DelegatorSuffix == "" {
		opts.DelegatorSuffix = "Delegator"
	}
	if opts.DelegateFieldName == "" {
		opts.DelegateFieldName = "delegate"
	}
	opts.Logger = logging.OrNop(opts.Logger)
	return &Backend{opts: opts}
}

func (b *Backend) Name() string { return "java" }

func (b *Backend) Description() string { return "Java model classes and JAX-RS resource interfaces" }

// Generate writes the model classes, the resource interfaces and then the
// delegators.
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

	g := &generation{
		model:   m,
		engine:  engine,
		sink:    sink,
		opts:    b.opts,
		classes: NewRegistry(),
	}
	g.resolver = resolve.New[javaType](m, javaTypes{model: m, modelPackage: g.modelPackage()})
	tr := traverse.New()

	mv := &modelVisitor{gen: g}
	for _, t := range m.Types() {
		if err := tr.TraverseType(t, mv); err != nil {
			return err
		}
	}

	for _, r := range m.Document().Resources {
		c, err := g.resource(tr, r)
		if err != nil {
			return err
		}
		if err := g.writeClass("resource", c, c); err != nil {
			return err
		}
	}

	if !b.opts.Delegators {
		return nil
	}
	d := Delegators{
		Registry:  g.classes,
		Package:   g.pkg(b.opts.DelegatorPackage),
		Suffix:    b.opts.DelegatorSuffix,
		FieldName: b.opts.DelegateFieldName,
	}
	for _, c := range g.classes.Classes() {
		dc := d.Generate(c)
		if err := g.writeClass("delegator", dc, dc); err != nil {
			return err
		}
	}
	return nil
}

// generation is the state shared by the visitors of one run.
type generation struct {
	model    *model.Model
	resolver *resolve.Resolver[javaType]
	engine   render.Renderer
	sink     output.Sink
	policy   naming.Java
	opts     Options
	classes  *Registry
}

func (g *generation) pkg(rel string) string {
	if rel == "" {
		return g.opts.Package
	}
	return g.opts.Package + "." + rel
}

func (g *generation) modelPackage() string    { return g.pkg(g.opts.ModelPackage) }
func (g *generation) resourcePackage() string { return g.pkg(g.opts.ResourcePackage) }

// writeClass renders data with template id and writes it to the source file
// of c.
func (g *generation) writeClass(id string, c *Class, data any) error {
	buf := render.NewBuffer(g.engine)
	buf.Render(id, data)
	content, err := buf.Bytes()
	if err != nil {
		return err
	}
	path := strings.ReplaceAll(c.Package, ".", "/") + "/" + g.policy.FileName(c.Name, "")
	g.opts.Logger.Debug("rendered class", zap.String("path", path))
	return g.sink.Write(output.Artifact{Path: path, Content: content})
}
