// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package java

import (
	"fmt"
	"strings"

	"github.com/api2spec/api2model/internal/naming"
	"github.com/api2spec/api2model/internal/operation"
	"github.com/api2spec/api2model/internal/resolve"
	"github.com/api2spec/api2model/internal/traverse"
	"github.com/api2spec/api2model/pkg/types"
)

const jackson = "com.fasterxml.jackson.annotation."

type enumData struct {
	Package     string
	Imports     []string
	Name        string
	Description string
	Values      []resolve.EnumSymbol
}

type unionData struct {
	*Class
	Variants []string
}

// modelVisitor builds one class per declared object, one enum per declared
// enumeration and one wrapper class per declared union. Scalar and array
// declarations have no class: their uses are expanded.
type modelVisitor struct {
	traverse.Base

	gen *generation
}

func (v *modelVisitor) VisitObjectTypeStart(t *types.TypeDeclaration) error {
	_, fresh, err := v.gen.resolver.Define(t)
	if err != nil || !fresh {
		return err
	}
	c, err := v.gen.class(t)
	if err != nil {
		return err
	}
	v.gen.classes.Add(c)
	return v.gen.writeClass("class", c, c)
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
	c := NewClass(v.gen.modelPackage(), v.gen.policy.TypeName(t.Name))
	c.Import(jackson+"JsonCreator", jackson+"JsonValue")
	return v.gen.writeClass("enum", c, enumData{
		Package:     c.Package,
		Imports:     c.Imports(),
		Name:        c.Name,
		Description: t.Description,
		Values:      e.Values,
	})
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
	c := v.gen.unionClass(t, u)
	data := unionData{Class: c}
	for _, variant := range u.Variants {
		data.Variants = append(data.Variants, variant.Text)
	}
	return v.gen.writeClass("union", c, data)
}

// class builds the class of a declared object. The class extends its first
// parent; the own properties of further parents outside that chain are
// copied in, since Java has single inheritance.
func (g *generation) class(t *types.TypeDeclaration) (*Class, error) {
	o, err := g.resolver.ResolveObject(t)
	if err != nil {
		return nil, err
	}
	c := NewClass(g.modelPackage(), g.policy.TypeName(t.Name))
	c.Description = t.Description
	c.TypeVars = o.TypeVars

	properties := o.Properties
	if len(o.Bases) > 0 {
		c.Extends = o.Bases[0].Text
		c.Super = g.policy.TypeName(o.BaseNames[0])
		c.ExtendsImports = o.Bases[0].Imports
		c.Import(c.ExtendsImports...)

		extra, err := g.mixins(t)
		if err != nil {
			return nil, err
		}
		properties = append(extra, properties...)
	}

	if o.Discriminator != "" {
		if o.DiscriminatorOwner == t.Name {
			c.Annotations = append(c.Annotations, g.subtypeAnnotations(t, o.Discriminator)...)
			c.Import(jackson+"JsonTypeInfo", jackson+"JsonSubTypes")
		}
		c.Annotations = append(c.Annotations, fmt.Sprintf("@JsonTypeName(%q)", o.DiscriminatorValue))
		c.Import(jackson + "JsonTypeName")
	}

	for _, p := range properties {
		g.addProperty(c, p)
	}
	return c, nil
}

// mixins resolves the own properties of the parents that the extends
// clause does not reach.
func (g *generation) mixins(t *types.TypeDeclaration) ([]resolve.Property[javaType], error) {
	parents, err := g.model.Parents(t)
	if err != nil || len(parents) < 2 {
		return nil, err
	}
	reached := map[*types.TypeDeclaration]bool{parents[0]: true}
	chain, err := g.model.Ancestors(parents[0])
	if err != nil {
		return nil, err
	}
	for _, a := range chain {
		reached[a] = true
	}

	var out []resolve.Property[javaType]
	for _, p := range parents[1:] {
		more, err := g.model.Ancestors(p)
		if err != nil {
			return nil, err
		}
		for _, a := range append([]*types.TypeDeclaration{p}, more...) {
			if reached[a] {
				continue
			}
			reached[a] = true
			o, err := g.resolver.ResolveObject(a)
			if err != nil {
				return nil, err
			}
			out = append(out, o.Properties...)
		}
	}
	return out, nil
}

// subtypeAnnotations returns the Jackson annotations of a discriminator
// owner: every descendant is listed as a named subtype.
func (g *generation) subtypeAnnotations(t *types.TypeDeclaration, discriminator string) []string {
	info := fmt.Sprintf("@JsonTypeInfo(use = JsonTypeInfo.Id.NAME, include = JsonTypeInfo.As.EXISTING_PROPERTY, property = %q, visible = true)", discriminator)

	var subtypes []string
	seen := map[*types.TypeDeclaration]bool{}
	queue := g.model.Subtypes(t)
	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]
		if seen[s] {
			continue
		}
		seen[s] = true
		value := s.DiscriminatorValue
		if value == "" {
			value = s.Name
		}
		subtypes = append(subtypes, fmt.Sprintf("    @JsonSubTypes.Type(value = %s.class, name = %q)", g.policy.TypeName(s.Name), value))
		queue = append(queue, g.model.Subtypes(s)...)
	}
	if len(subtypes) == 0 {
		return []string{info}
	}

	list := "@JsonSubTypes({\n"
	for i, s := range subtypes {
		list += s
		if i < len(subtypes)-1 {
			list += ","
		}
		list += "\n"
	}
	return []string{info, list + "})"}
}

// addProperty adds the field and accessors of p. Required booleans use the
// primitive type and an "is" getter.
func (g *generation) addProperty(c *Class, p resolve.Property[javaType]) {
	typ := p.Type.Text
	boolean := false
	if p.Required && typ == "Boolean" {
		typ, boolean = "boolean", true
	}
	c.Import(p.Type.Imports...)

	name := g.policy.VariableName(p.Name)
	f := &Field{Modifiers: "private", Type: typ, Name: name}
	if name != p.Name {
		f.Annotations = []string{fmt.Sprintf("@JsonProperty(%q)", p.Name)}
		c.Import(jackson + "JsonProperty")
	}
	c.Fields = append(c.Fields, f)

	c.AddMethod(&Method{
		Modifiers:  "public",
		ReturnType: typ,
		Name:       naming.GetterName(p.Name, boolean),
		Body:       []string{"return " + name + ";"},
		Imports:    p.Type.Imports,
	})
	c.AddMethod(&Method{
		Modifiers:  "public",
		ReturnType: "void",
		Name:       naming.SetterName(p.Name),
		Params:     []Param{{Type: typ, Name: name}},
		Body:       []string{"this." + name + " = " + name + ";"},
		Imports:    p.Type.Imports,
	})
}

// unionClass builds the wrapper of a declared union: it holds one value and
// has a constructor and typed accessors per variant.
func (g *generation) unionClass(t *types.TypeDeclaration, u resolve.Union[javaType]) *Class {
	c := NewClass(g.modelPackage(), g.policy.TypeName(t.Name))
	c.Description = t.Description
	c.Import(jackson + "JsonValue")
	c.Fields = []*Field{{Modifiers: "private", Type: "Object", Name: "value"}}

	c.AddMethod(&Method{
		Modifiers: "public",
		Name:      c.Name,
		Params:    []Param{{Type: "Object", Name: "value"}},
		Body:      []string{"this.value = value;"},
	})
	c.AddMethod(&Method{
		Modifiers:   "public",
		ReturnType:  "Object",
		Name:        "getValue",
		Annotations: []string{"@JsonValue"},
		Body:        []string{"return value;"},
	})

	suffixes := operation.NewNames()
	for i, variant := range u.Variants {
		suffix := suffixes.Claim(variantSuffix(u.VariantNames[i]))
		c.AddMethod(&Method{
			Modifiers:  "public",
			ReturnType: "boolean",
			Name:       "is" + suffix,
			Body:       []string{"return value instanceof " + erasure(variant.Text) + ";"},
			Imports:    variant.Imports,
		})
		c.AddMethod(&Method{
			Modifiers:  "public",
			ReturnType: variant.Text,
			Name:       "get" + suffix,
			Body:       []string{"return (" + variant.Text + ") value;"},
			Imports:    variant.Imports,
		})
		c.AddMethod(&Method{
			Modifiers:  "public",
			ReturnType: "void",
			Name:       "set" + suffix,
			Params:     []Param{{Type: variant.Text, Name: "value"}},
			Body:       []string{"this.value = value;"},
			Imports:    variant.Imports,
		})
	}
	return c
}

// variantSuffix names the accessors of a union variant: "City" for City and
// "CityList" for City[].
func variantSuffix(name string) string {
	var lists int
	for strings.HasSuffix(name, "[]") {
		name = strings.TrimSuffix(name, "[]")
		lists++
	}
	return naming.UpperCamel(name) + strings.Repeat("List", lists)
}
