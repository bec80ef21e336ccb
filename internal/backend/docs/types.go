// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package docs

import (
	"strconv"
	"strings"

	"github.com/api2spec/api2model/internal/model"
	"github.com/api2spec/api2model/internal/naming"
	"github.com/api2spec/api2model/internal/resolve"
)

// mdType is a type rendered as Markdown text, with declared types linked to
// their section.
type mdType string

type mdTypes struct {
	model  *model.Model
	policy naming.Markdown
}

var _ resolve.Backend[mdType] = mdTypes{}

func (b mdTypes) link(name string) string {
	return "[" + b.policy.TypeName(name) + "](#" + b.policy.Anchor(name) + ")"
}

func (b mdTypes) Primitive(base string) mdType { return mdType(base) }

func (b mdTypes) Reference(name string, typeArgs []string) mdType {
	text := b.link(name)
	if len(typeArgs) == 0 {
		return mdType(text)
	}
	args := make([]string, len(typeArgs))
	for i, arg := range typeArgs {
		if _, ok := b.model.Lookup(arg); ok {
			args[i] = b.link(arg)
		} else {
			args[i] = arg
		}
	}
	return mdType(text + " of " + strings.Join(args, ", "))
}

func (b mdTypes) TypeVariable(name string) mdType { return mdType(name) }

func (b mdTypes) Object(resolve.Object[mdType]) mdType { return "object" }

func (b mdTypes) Array(item mdType) mdType { return "array of " + item }

func (b mdTypes) Union(u resolve.Union[mdType]) mdType {
	variants := make([]string, len(u.Variants))
	for i, v := range u.Variants {
		variants[i] = string(v)
	}
	return mdType(strings.Join(variants, " or "))
}

func (b mdTypes) Enum(e resolve.Enum) mdType {
	values := make([]string, len(e.Values))
	for i, v := range e.Values {
		values[i] = strconv.Quote(v.Literal)
	}
	return mdType("one of " + strings.Join(values, ", "))
}
