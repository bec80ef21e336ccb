// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package openapi

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/api2spec/api2model/internal/model"
	"github.com/api2spec/api2model/internal/resolve"
	"github.com/api2spec/api2model/pkg/types"
)

// RefPrefix prefixes references to named component schemas.
const RefPrefix = "#/components/schemas/"

// schemas maps resolved types to OpenAPI schemas. Inheritance becomes allOf,
// unions become oneOf and discriminators carry a mapping of every subtype.
type schemas struct {
	model *model.Model
}

var _ resolve.Backend[*types.Schema] = schemas{}

// Ref returns a schema referencing the named component.
func Ref(name string) *types.Schema {
	return &types.Schema{Ref: RefPrefix + name}
}

func (s schemas) Primitive(base string) *types.Schema {
	switch base {
	case "string":
		return &types.Schema{Type: "string"}
	case "integer":
		return &types.Schema{Type: "integer"}
	case "number":
		return &types.Schema{Type: "number"}
	case "boolean":
		return &types.Schema{Type: "boolean"}
	case "date-only":
		return &types.Schema{Type: "string", Format: "date"}
	case "time-only":
		return &types.Schema{Type: "string", Format: "time"}
	case "datetime-only", "datetime":
		return &types.Schema{Type: "string", Format: "date-time"}
	case "file":
		return &types.Schema{Type: "string", Format: "binary"}
	case "nil":
		return &types.Schema{Nullable: true}
	case "object":
		return &types.Schema{Type: "object"}
	default:
		return &types.Schema{}
	}
}

// Reference ignores type arguments: OpenAPI schemas have no generics.
func (s schemas) Reference(name string, _ []string) *types.Schema {
	return Ref(name)
}

// TypeVariable admits any value.
func (s schemas) TypeVariable(string) *types.Schema {
	return &types.Schema{}
}

func (s schemas) Object(o resolve.Object[*types.Schema]) *types.Schema {
	own := &types.Schema{Type: "object"}
	if len(o.Properties) > 0 {
		own.Properties = orderedmap.New[string, *types.Schema]()
	}
	for _, p := range o.Properties {
		prop := p.Type
		if p.Source != nil && p.Source.Description != "" && prop.Ref == "" {
			prop.Description = p.Source.Description
		}
		own.Properties.Set(p.Name, prop)
		if p.Required {
			own.Required = append(own.Required, p.Name)
		}
	}
	if o.Discriminator != "" && o.DiscriminatorOwner == o.Name {
		own.Discriminator = s.discriminator(o)
	}

	var out *types.Schema
	if len(o.Bases) == 0 {
		out = own
	} else {
		out = &types.Schema{AllOf: append(append([]*types.Schema{}, o.Bases...), own)}
	}
	if o.Declaration != nil {
		out.Description = o.Declaration.Description
	}
	return out
}

// discriminator maps the discriminator value of the owner and of every type
// inheriting from it to its schema.
func (s schemas) discriminator(o resolve.Object[*types.Schema]) *types.Discriminator {
	d := &types.Discriminator{PropertyName: o.Discriminator, Mapping: map[string]string{}}
	owner, ok := s.model.Lookup(o.Name)
	if !ok {
		return d
	}
	d.Mapping[o.DiscriminatorValue] = RefPrefix + o.Name
	for _, t := range s.model.Types() {
		if t == owner || t.Kind != types.KindObject {
			continue
		}
		ancestors, err := s.model.Ancestors(t)
		if err != nil {
			continue
		}
		for _, a := range ancestors {
			if a == owner {
				value := t.DiscriminatorValue
				if value == "" {
					value = t.Name
				}
				d.Mapping[value] = RefPrefix + t.Name
				break
			}
		}
	}
	return d
}

func (s schemas) Array(item *types.Schema) *types.Schema {
	return &types.Schema{Type: "array", Items: item}
}

func (s schemas) Union(u resolve.Union[*types.Schema]) *types.Schema {
	out := &types.Schema{OneOf: u.Variants}
	if u.Declaration != nil {
		out.Description = u.Declaration.Description
	}
	return out
}

func (s schemas) Enum(e resolve.Enum) *types.Schema {
	out := &types.Schema{Type: "string"}
	for _, v := range e.Values {
		out.Enum = append(out.Enum, v.Literal)
	}
	if e.Declaration != nil {
		out.Description = e.Declaration.Description
	}
	return out
}
