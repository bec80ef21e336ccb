// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package typescript

import (
	"regexp"

	"github.com/api2spec/api2model/internal/naming"
	"github.com/api2spec/api2model/internal/operation"
	"github.com/api2spec/api2model/internal/render"
	"github.com/api2spec/api2model/internal/traverse"
	"github.com/api2spec/api2model/pkg/types"
)

type serviceStart struct {
	Name         string
	BaseURLToken string
	BaseURLFile  string
	UsesParams   bool
	Imports      []tsImport
}

type param struct {
	Name     string
	Key      string
	Type     string
	Optional bool
}

type method struct {
	Name       string
	Verb       string
	URL        string
	ReturnType string
	Params     []param
	Query      []param
	Body       string
}

// service renders the service of one outer resource. The import pass and
// the body pass walk the resource subtree together.
func (g *generation) service(tr *traverse.Traverser, r *types.Resource) error {
	imp := &serviceImports{gen: g, im: newImports("")}
	body := &serviceBody{gen: g, buf: g.newBuffer(), names: operation.NewNames()}
	if err := tr.TraverseResource(r, traverse.Compose(imp, body)); err != nil {
		return err
	}
	methods, err := body.buf.Bytes()
	if err != nil {
		return err
	}

	name := naming.UpperCamel(operation.TagName(r))
	buf := g.newBuffer()
	buf.Render("service-start", serviceStart{
		Name:         g.policy.TypeName(name + g.opts.ServiceNameSuffix),
		BaseURLToken: g.opts.BaseURLToken,
		BaseURLFile:  moduleName(g.policy, g.opts.BaseURLToken, ""),
		UsesParams:   imp.usesParams,
		Imports:      imp.im.list(g.policy),
	})
	buf.WriteString(string(methods))
	buf.Render("service-end", nil)
	return g.write(name, g.opts.ServiceNameSuffix, buf)
}

func annotationsOf(p operation.Parameter) types.Annotations {
	if p.Body != nil {
		return p.Body.Annotations
	}
	return p.Property.Annotations
}

// serviceImports collects the declared types used by parameters and
// responses of every method below an outer resource.
type serviceImports struct {
	traverse.Base

	gen        *generation
	im         *imports
	usesParams bool
}

func (s *serviceImports) VisitMethodStart(ev traverse.MethodEvent) error {
	for _, p := range operation.Parameters(s.gen.model, ev.Method) {
		t, err := s.gen.resolver.Resolve(p.Type(), annotationsOf(p))
		if err != nil {
			return err
		}
		s.im.add(t.Refs...)
		if p.In == operation.InQuery {
			s.usesParams = true
		}
	}
	for _, o := range operation.Overloads(ev.Method) {
		if o.Response == nil {
			continue
		}
		t, err := s.gen.resolver.Resolve(o.Response.Body.Type, o.Response.Body.Annotations)
		if err != nil {
			return err
		}
		s.im.add(t.Refs...)
	}
	return nil
}

// serviceBody renders one service method per overload of every method.
// Method names are unique within the service.
type serviceBody struct {
	traverse.Base

	gen   *generation
	buf   *render.Buffer
	names *operation.Names
}

var pathParam = regexp.MustCompile(`\{([^}]+)\}`)

func (s *serviceBody) VisitMethodStart(ev traverse.MethodEvent) error {
	verb, err := operation.ParseVerb(ev.Method.Verb)
	if err != nil {
		return err
	}

	m := method{
		Verb: string(verb),
		URL: pathParam.ReplaceAllStringFunc(ev.Path(), func(seg string) string {
			return "${" + s.gen.policy.VariableName(seg[1:len(seg)-1]) + "}"
		}),
	}
	for _, p := range operation.Parameters(s.gen.model, ev.Method) {
		t, err := s.gen.resolver.Resolve(p.Type(), annotationsOf(p))
		if err != nil {
			return err
		}
		mp := param{
			Name:     s.gen.policy.VariableName(p.Name),
			Key:      p.Name,
			Type:     t.Text,
			Optional: !p.Required(),
		}
		m.Params = append(m.Params, mp)
		switch p.In {
		case operation.InQuery:
			m.Query = append(m.Query, mp)
		case operation.InBody:
			m.Body = mp.Name
		}
	}
	trailingOptional(m.Params)

	for _, o := range operation.Overloads(ev.Method) {
		m.Name = s.names.Claim(o.Name)
		m.ReturnType = "void"
		if o.Response != nil {
			t, err := s.gen.resolver.Resolve(o.Response.Body.Type, o.Response.Body.Annotations)
			if err != nil {
				return err
			}
			m.ReturnType = t.Text
		}
		s.buf.Render("method", m)
	}
	return nil
}

// trailingOptional keeps "?" only on the optional parameters after the last
// required one; earlier optional parameters accept undefined instead.
func trailingOptional(params []param) {
	trailing := true
	for i := len(params) - 1; i >= 0; i-- {
		switch {
		case !params[i].Optional:
			trailing = false
		case !trailing:
			params[i].Optional = false
			params[i].Type += " | undefined"
		}
	}
}
