// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package java

import (
	"fmt"
	"strings"

	"github.com/api2spec/api2model/internal/naming"
	"github.com/api2spec/api2model/internal/operation"
	"github.com/api2spec/api2model/internal/traverse"
	"github.com/api2spec/api2model/pkg/types"
)

const jaxrs = "jakarta.ws.rs."

// resource builds the JAX-RS interface of one outer resource. Methods of
// nested resources carry the remainder of their path.
func (g *generation) resource(tr *traverse.Traverser, r *types.Resource) (*Class, error) {
	c := NewClass(g.resourcePackage(), g.policy.TypeName(naming.UpperCamel(operation.TagName(r))+g.opts.ResourceSuffix))
	c.Description = r.Description
	c.Annotations = []string{fmt.Sprintf("@Path(%q)", r.RelativeURI)}
	c.Import(jaxrs + "Path")

	if err := tr.TraverseResource(r, &resourceVisitor{gen: g, class: c, names: operation.NewNames()}); err != nil {
		return nil, err
	}
	return c, nil
}

type resourceVisitor struct {
	traverse.Base

	gen   *generation
	class *Class
	names *operation.Names
}

func (v *resourceVisitor) VisitMethodStart(ev traverse.MethodEvent) error {
	verb, err := operation.ParseVerb(ev.Method.Verb)
	if err != nil {
		return err
	}
	c := v.class

	var annotations []string
	if verb == operation.TRACE {
		annotations = append(annotations, `@HttpMethod("TRACE")`)
		c.Import(jaxrs + "HttpMethod")
	} else {
		annotations = append(annotations, "@"+string(verb))
		c.Import(jaxrs + string(verb))
	}
	if rest := strings.TrimPrefix(ev.Path(), ev.Outer().RelativeURI); rest != "" {
		annotations = append(annotations, fmt.Sprintf("@Path(%q)", rest))
	}
	if b := ev.Method.Body; b != nil && b.MediaType != "" {
		annotations = append(annotations, fmt.Sprintf("@Consumes(%q)", b.MediaType))
		c.Import(jaxrs + "Consumes")
	}

	var params []Param
	for _, p := range operation.Parameters(v.gen.model, ev.Method) {
		t, err := v.gen.resolver.Resolve(p.Type(), annotationsOf(p))
		if err != nil {
			return err
		}
		c.Import(t.Imports...)
		param := Param{Type: t.Text, Name: v.gen.policy.VariableName(p.Name)}
		switch p.In {
		case operation.InPath:
			param.Annotations = []string{fmt.Sprintf("@PathParam(%q)", p.Name)}
			c.Import(jaxrs + "PathParam")
		case operation.InQuery:
			param.Annotations = []string{fmt.Sprintf("@QueryParam(%q)", p.Name)}
			c.Import(jaxrs + "QueryParam")
		}
		params = append(params, param)
	}

	for _, o := range operation.Overloads(ev.Method) {
		m := &Method{
			ReturnType:  "void",
			Name:        v.names.Claim(v.gen.policy.VariableName(o.Name)),
			Params:      params,
			Annotations: annotations,
			Abstract:    true,
		}
		if o.Response != nil {
			t, err := v.gen.resolver.Resolve(o.Response.Body.Type, o.Response.Body.Annotations)
			if err != nil {
				return err
			}
			m.ReturnType = t.Text
			m.Imports = t.Imports
			if mt := o.Response.Body.MediaType; mt != "" {
				m.Annotations = append(append([]string(nil), annotations...), fmt.Sprintf("@Produces(%q)", mt))
				c.Import(jaxrs + "Produces")
			}
		}
		if ev.Method.Description != "" {
			m.Doc = ev.Method.Description
		}
		c.AddMethod(m)
	}
	return nil
}

func annotationsOf(p operation.Parameter) types.Annotations {
	if p.Body != nil {
		return p.Body.Annotations
	}
	return p.Property.Annotations
}
