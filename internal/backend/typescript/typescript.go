// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package typescript generates TypeScript modules from an API model: one
// module per declared type and one Angular service per outer resource.
package typescript

import (
	"embed"
	"fmt"
	"io/fs"

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
var TemplateIDs = []string{
	"import", "object-start", "property", "object-end", "enum", "type-alias",
	"union", "service-start", "method", "service-end", "base-url",
}

// Options configures the TypeScript backend.
type Options struct {
	// ServiceNameSuffix is appended to service class names (default: Service)
	ServiceNameSuffix string

	// BaseURLToken names the injection token holding the API base URL
	// (default: BASE_URL)
	BaseURLToken string

	// TemplateDir overrides embedded templates from <dir>/typescript/<id>.tmpl
	TemplateDir string

	Logger *zap.Logger
}

// Backend generates TypeScript modules.
type Backend struct {
	opts Options
}

// New returns a TypeScript backend.
func New(opts Options) *Backend {
	if opts.ServiceNameSuffix == "" {
		opts.ServiceNameSuffix = "Service"
	}
	if opts.BaseURLToken == "" {
		opts.BaseURLToken = "BASE_URL"
	}
	opts.Logger = logging.OrNop(opts.Logger)
	return &Backend{opts: opts}
}

func (b *Backend) Name() string { return "typescript" }

func (b *Backend) Description() string { return "TypeScript interfaces and Angular services" }

// Generate writes the type modules, then the services.
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
		model:    m,
		resolver: resolve.New[tsType](m, tsTypes{model: m}),
		engine:   engine,
		sink:     sink,
		opts:     b.opts,
	}
	tr := traverse.New()

	mv := &modelVisitor{gen: g}
	for _, t := range m.Types() {
		if err := tr.TraverseType(t, mv); err != nil {
			return err
		}
	}

	resources := m.Document().Resources
	if len(resources) == 0 {
		return nil
	}
	if err := g.baseURL(); err != nil {
		return err
	}
	for _, r := range resources {
		if err := g.service(tr, r); err != nil {
			return err
		}
	}
	return nil
}

// generation is the state shared by the visitors of one run.
type generation struct {
	model    *model.Model
	resolver *resolve.Resolver[tsType]
	engine   render.Renderer
	sink     output.Sink
	policy   naming.TypeScript
	opts     Options
}

func (g *generation) newBuffer() *render.Buffer {
	return render.NewBuffer(g.engine)
}

func (g *generation) renderImports(buf *render.Buffer, im *imports) {
	list := im.list(g.policy)
	for _, i := range list {
		buf.Render("import", i)
	}
	if len(list) > 0 {
		buf.WriteString("\n")
	}
}

func (g *generation) write(name, suffix string, buf *render.Buffer) error {
	data, err := buf.Bytes()
	if err != nil {
		return err
	}
	path := g.policy.FileName(name, suffix)
	g.opts.Logger.Debug("rendered module", zap.String("path", path))
	return g.sink.Write(output.Artifact{Path: path, Content: data})
}

func (g *generation) baseURL() error {
	buf := g.newBuffer()
	buf.Render("base-url", struct{ Token string }{g.opts.BaseURLToken})
	return g.write(g.opts.BaseURLToken, "", buf)
}
