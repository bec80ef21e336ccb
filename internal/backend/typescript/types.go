// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package typescript

import (
	"strings"

	"github.com/api2spec/api2model/internal/model"
	"github.com/api2spec/api2model/internal/naming"
	"github.com/api2spec/api2model/internal/resolve"
)

// tsType is a TypeScript type expression together with the declared types it
// mentions, which the enclosing module has to import.
type tsType struct {
	Text string
	Refs []string
}

func (t tsType) String() string { return t.Text }

// tsTypes maps resolved types to TypeScript type expressions.
type tsTypes struct {
	model  *model.Model
	policy naming.TypeScript
}

var _ resolve.Backend[tsType] = tsTypes{}

var primitives = map[string]string{
	"string":        "string",
	"integer":       "number",
	"number":        "number",
	"boolean":       "boolean",
	"date-only":     "string",
	"time-only":     "string",
	"datetime-only": "string",
	"datetime":      "string",
	"file":          "Blob",
	"nil":           "null",
	"object":        "object",
}

func (b tsTypes) Primitive(base string) tsType {
	if ts, ok := primitives[base]; ok {
		return tsType{Text: ts}
	}
	return tsType{Text: "any"}
}

func (b tsTypes) Reference(name string, typeArgs []string) tsType {
	t := tsType{Text: b.policy.TypeName(name), Refs: []string{name}}
	if len(typeArgs) == 0 {
		return t
	}
	args := make([]string, len(typeArgs))
	for i, arg := range typeArgs {
		if _, ok := b.model.Lookup(arg); ok {
			args[i] = b.policy.TypeName(arg)
			t.Refs = append(t.Refs, arg)
		} else {
			args[i] = b.Primitive(arg).Text
		}
	}
	t.Text += "<" + strings.Join(args, ", ") + ">"
	return t
}

func (b tsTypes) TypeVariable(name string) tsType {
	return tsType{Text: name}
}

// Object renders an anonymous object as a type literal. Declared objects are
// rendered as interfaces by the model visitor.
func (b tsTypes) Object(o resolve.Object[tsType]) tsType {
	var t tsType
	members := make([]string, 0, len(o.Properties))
	for _, p := range o.Properties {
		optional := ""
		if !p.Required {
			optional = "?"
		}
		members = append(members, naming.PropertyKey(p.Name)+optional+": "+p.Type.Text)
		t.Refs = append(t.Refs, p.Type.Refs...)
	}
	for _, base := range o.Bases {
		t.Refs = append(t.Refs, base.Refs...)
	}
	if len(members) == 0 {
		t.Text = "object"
	} else {
		t.Text = "{ " + strings.Join(members, "; ") + " }"
	}
	for _, base := range o.Bases {
		t.Text = base.Text + " & " + t.Text
	}
	return t
}

func (b tsTypes) Array(item tsType) tsType {
	text := item.Text
	if strings.Contains(text, " | ") || strings.Contains(text, " & ") {
		text = "(" + text + ")"
	}
	return tsType{Text: text + "[]", Refs: item.Refs}
}

func (b tsTypes) Union(u resolve.Union[tsType]) tsType {
	var t tsType
	texts := make([]string, len(u.Variants))
	for i, v := range u.Variants {
		texts[i] = v.Text
		t.Refs = append(t.Refs, v.Refs...)
	}
	t.Text = strings.Join(texts, " | ")
	return t
}

// Enum renders an anonymous enumeration as a union of string literals.
func (b tsTypes) Enum(e resolve.Enum) tsType {
	literals := make([]string, len(e.Values))
	for i, v := range e.Values {
		literals[i] = "'" + strings.ReplaceAll(v.Literal, "'", `\'`) + "'"
	}
	return tsType{Text: strings.Join(literals, " | ")}
}

// imports collects the declared types a module refers to, in first-use
// order, excluding the module's own type.
type imports struct {
	self  string
	names []string
	seen  map[string]bool
}

func newImports(self string) *imports {
	return &imports{self: self, seen: map[string]bool{}}
}

func (im *imports) add(refs ...string) {
	for _, r := range refs {
		if r == im.self || im.seen[r] {
			continue
		}
		im.seen[r] = true
		im.names = append(im.names, r)
	}
}

// tsImport is the render context of the import template.
type tsImport struct {
	Type string
	File string
}

func (im *imports) list(policy naming.TypeScript) []tsImport {
	out := make([]tsImport, len(im.names))
	for i, n := range im.names {
		out[i] = tsImport{Type: policy.TypeName(n), File: moduleName(policy, n, "")}
	}
	return out
}

// moduleName is the import path of a module file without "./" and ".ts".
func moduleName(policy naming.TypeScript, name, suffix string) string {
	return strings.TrimSuffix(policy.FileName(name, suffix), ".ts")
}
