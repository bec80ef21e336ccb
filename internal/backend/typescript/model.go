// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package typescript

import (
	"github.com/api2spec/api2model/internal/naming"
	"github.com/api2spec/api2model/internal/render"
	"github.com/api2spec/api2model/internal/resolve"
	"github.com/api2spec/api2model/internal/traverse"
	"github.com/api2spec/api2model/pkg/types"
)

type objectStart struct {
	Name        string
	Description string
	TypeVars    []string
	Bases       []string
}

type property struct {
	Name     string
	Type     string
	Optional bool
}

type alias struct {
	Name string
	Type string
}

type union struct {
	Name     string
	Variants []string
}

type enum struct {
	Name   string
	Values []resolve.EnumSymbol
}

// modelVisitor writes one module per declared type. An object is rendered
// across its start, property and end events.
type modelVisitor struct {
	traverse.Base

	gen *generation

	buf    *render.Buffer
	object resolve.Object[tsType]
}

func (v *modelVisitor) VisitObjectTypeStart(t *types.TypeDeclaration) error {
	v.buf = nil
	_, fresh, err := v.gen.resolver.Define(t)
	if err != nil || !fresh {
		return err
	}
	o, err := v.gen.resolver.ResolveObject(t)
	if err != nil {
		return err
	}
	v.object = o

	im := newImports(t.Name)
	start := objectStart{Name: v.gen.policy.TypeName(t.Name), Description: t.Description, TypeVars: o.TypeVars}
	for _, base := range o.Bases {
		im.add(base.Refs...)
		start.Bases = append(start.Bases, base.Text)
	}
	for _, p := range o.Properties {
		im.add(p.Type.Refs...)
	}

	v.buf = v.gen.newBuffer()
	v.gen.renderImports(v.buf, im)
	v.buf.Render("object-start", start)
	return nil
}

func (v *modelVisitor) VisitObjectTypeProperty(_ *types.TypeDeclaration, p *types.Property) error {
	if v.buf == nil {
		return nil
	}
	for _, rp := range v.object.Properties {
		if rp.Source == p {
			v.buf.Render("property", property{
				Name:     naming.PropertyKey(p.Name),
				Type:     rp.Type.Text,
				Optional: !rp.Required,
			})
			break
		}
	}
	return nil
}

func (v *modelVisitor) VisitObjectTypeEnd(t *types.TypeDeclaration) error {
	if v.buf == nil {
		return nil
	}
	v.buf.Render("object-end", nil)
	buf := v.buf
	v.buf = nil
	return v.gen.write(t.Name, "", buf)
}

func (v *modelVisitor) VisitUnionType(t *types.TypeDeclaration) error {
	_, fresh, err := v.gen.resolver.Define(t)
	if err != nil || !fresh {
		return err
	}
	u, err := v.gen.resolver.ResolveUnion(t)
	if err != nil {
		return err
	}

	im := newImports(t.Name)
	data := union{Name: v.gen.policy.TypeName(t.Name)}
	for _, variant := range u.Variants {
		im.add(variant.Refs...)
		data.Variants = append(data.Variants, variant.Text)
	}

	buf := v.gen.newBuffer()
	v.gen.renderImports(buf, im)
	buf.Render("union", data)
	return v.gen.write(t.Name, "", buf)
}

func (v *modelVisitor) VisitEnumTypeEnd(t *types.TypeDeclaration) error {
	_, fresh, err := v.gen.resolver.Define(t)
	if err != nil || !fresh {
		return err
	}
	e, err := v.gen.resolver.ResolveEnum(t)
	if err != nil {
		return err
	}
	buf := v.gen.newBuffer()
	buf.Render("enum", enum{Name: v.gen.policy.TypeName(t.Name), Values: e.Values})
	return v.gen.write(t.Name, "", buf)
}

func (v *modelVisitor) VisitArrayType(t *types.TypeDeclaration) error  { return v.alias(t) }
func (v *modelVisitor) VisitStringType(t *types.TypeDeclaration) error { return v.alias(t) }
func (v *modelVisitor) VisitNumberType(t *types.TypeDeclaration) error { return v.alias(t) }
func (v *modelVisitor) VisitScalarType(t *types.TypeDeclaration) error { return v.alias(t) }

func (v *modelVisitor) alias(t *types.TypeDeclaration) error {
	target, fresh, err := v.gen.resolver.Define(t)
	if err != nil || !fresh {
		return err
	}
	im := newImports(t.Name)
	im.add(target.Refs...)

	buf := v.gen.newBuffer()
	v.gen.renderImports(buf, im)
	buf.Render("type-alias", alias{Name: v.gen.policy.TypeName(t.Name), Type: target.Text})
	return v.gen.write(t.Name, "", buf)
}
