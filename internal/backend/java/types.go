// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package java

import (
	"strings"

	"github.com/api2spec/api2model/internal/model"
	"github.com/api2spec/api2model/internal/naming"
	"github.com/api2spec/api2model/internal/resolve"
)

// javaType is a Java type expression with the fully qualified names it needs
// imported.
type javaType struct {
	Text    string
	Imports []string
}

// javaTypes maps resolved types to Java types. Java has no type aliases, so
// uses of declared scalar and array types are expanded.
type javaTypes struct {
	model        *model.Model
	policy       naming.Java
	modelPackage string
}

var (
	_ resolve.Backend[javaType] = javaTypes{}
	_ resolve.AliasExpander     = javaTypes{}
)

func (b javaTypes) ExpandAliases() bool { return true }

var primitives = map[string]javaType{
	"string":        {Text: "String"},
	"integer":       {Text: "Integer"},
	"number":        {Text: "BigDecimal", Imports: []string{"java.math.BigDecimal"}},
	"boolean":       {Text: "Boolean"},
	"date-only":     {Text: "LocalDate", Imports: []string{"java.time.LocalDate"}},
	"time-only":     {Text: "LocalTime", Imports: []string{"java.time.LocalTime"}},
	"datetime-only": {Text: "LocalDateTime", Imports: []string{"java.time.LocalDateTime"}},
	"datetime":      {Text: "OffsetDateTime", Imports: []string{"java.time.OffsetDateTime"}},
	"file":          {Text: "byte[]"},
	"nil":           {Text: "Void"},
	"object":        {Text: "Map<String, Object>", Imports: []string{"java.util.Map"}},
}

func (b javaTypes) Primitive(base string) javaType {
	if t, ok := primitives[base]; ok {
		return t
	}
	return javaType{Text: "Object"}
}

func (b javaTypes) qualified(name string) string {
	return b.modelPackage + "." + b.policy.TypeName(name)
}

func (b javaTypes) Reference(name string, typeArgs []string) javaType {
	t := javaType{Text: b.policy.TypeName(name), Imports: []string{b.qualified(name)}}
	if len(typeArgs) == 0 {
		return t
	}
	args := make([]string, len(typeArgs))
	for i, arg := range typeArgs {
		if _, ok := b.model.Lookup(arg); ok {
			args[i] = b.policy.TypeName(arg)
			t.Imports = append(t.Imports, b.qualified(arg))
			continue
		}
		p := b.Primitive(arg)
		args[i] = p.Text
		t.Imports = append(t.Imports, p.Imports...)
	}
	t.Text += "<" + strings.Join(args, ", ") + ">"
	return t
}

func (b javaTypes) TypeVariable(name string) javaType {
	return javaType{Text: name}
}

// Object maps anonymous objects to a generic map. Declared objects become
// classes.
func (b javaTypes) Object(resolve.Object[javaType]) javaType {
	return javaType{Text: "Map<String, Object>", Imports: []string{"java.util.Map"}}
}

func (b javaTypes) Array(item javaType) javaType {
	return javaType{
		Text:    "List<" + item.Text + ">",
		Imports: append([]string{"java.util.List"}, item.Imports...),
	}
}

// Union maps anonymous unions to Object. Declared unions become wrapper
// classes.
func (b javaTypes) Union(resolve.Union[javaType]) javaType {
	return javaType{Text: "Object"}
}

// Enum maps anonymous enumerations to String. Declared enumerations become
// enum classes.
func (b javaTypes) Enum(resolve.Enum) javaType {
	return javaType{Text: "String"}
}

// erasure strips type arguments: List<User> becomes List.
func erasure(text string) string {
	if i := strings.IndexByte(text, '<'); i >= 0 {
		return text[:i]
	}
	return text
}
