// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package java

import (
	"regexp"
	"strings"
)

var (
	getterPattern = regexp.MustCompile(`^(get|is)[A-Z]\w*$`)
	setterPattern = regexp.MustCompile(`^set[A-Z]\w*$`)
)

// Delegators builds wrapper classes that own an instance of a model class
// and forward its accessors.
type Delegators struct {
	// Registry resolves superclasses by simple name
	Registry *Registry

	Package   string
	Suffix    string
	FieldName string
}

// Generate returns the delegator of c. Accessors declared by c and by every
// superclass found in the registry are forwarded, nearest first; an accessor
// whose signature is already present is skipped.
func (d Delegators) Generate(c *Class) *Class {
	out := NewClass(d.Package, c.Name+d.Suffix)
	out.TypeVars = c.TypeVars
	out.Description = "Delegates to " + c.Name + "."
	out.Import(c.Package + "." + c.Name)

	delegate := c.Name
	if len(c.TypeVars) > 0 {
		delegate += "<" + strings.Join(c.TypeVars, ", ") + ">"
	}
	out.Fields = []*Field{{
		Modifiers: "protected",
		Type:      delegate,
		Name:      d.FieldName,
		Init:      "new " + delegate + "()",
	}}
	out.AddMethod(&Method{Modifiers: "public", Name: out.Name})
	out.AddMethod(&Method{
		Modifiers: "public",
		Name:      out.Name,
		Params:    []Param{{Type: delegate, Name: d.FieldName}},
		Body:      []string{"this." + d.FieldName + " = " + d.FieldName + ";"},
	})

	bindings := map[string]string{}
	seen := map[string]bool{}
	for cls := c; cls != nil && !seen[cls.Name]; cls = d.Registry.Get(cls.Super) {
		seen[cls.Name] = true
		for _, m := range cls.Methods {
			if f := d.forward(m, bindings); f != nil && out.Method(f.Signature()) == nil {
				out.AddMethod(f)
			}
		}
		if parent := d.Registry.Get(cls.Super); parent != nil {
			bindings = bind(parent.TypeVars, cls.Extends, bindings)
			if len(bindings) > 0 {
				out.Import(cls.ExtendsImports...)
			}
		}
	}
	return out
}

// forward returns the forwarding method of a getter or setter, or nil.
func (d Delegators) forward(m *Method, bindings map[string]string) *Method {
	f := &Method{
		Modifiers:  "public",
		ReturnType: substitute(m.ReturnType, bindings),
		Name:       m.Name,
		Imports:    m.Imports,
	}
	switch {
	case len(m.Params) == 0 && getterPattern.MatchString(m.Name):
		f.Body = []string{"return " + d.FieldName + "." + m.Name + "();"}
	case len(m.Params) == 1 && setterPattern.MatchString(m.Name):
		p := m.Params[0]
		f.Params = []Param{{Type: substitute(p.Type, bindings), Name: p.Name}}
		f.Body = []string{d.FieldName + "." + m.Name + "(" + p.Name + ");"}
	default:
		return nil
	}
	return f
}

// bind maps the type variables of a superclass to the arguments of the
// extends clause, themselves expressed through the current bindings.
func bind(vars []string, extends string, current map[string]string) map[string]string {
	args := typeArgs(extends)
	out := make(map[string]string, len(vars))
	for i, v := range vars {
		if i < len(args) {
			out[v] = substitute(args[i], current)
		}
	}
	return out
}

// typeArgs splits the top-level type arguments of a type expression:
// "Page<Map<String, Object>, User>" yields "Map<String, Object>" and "User".
func typeArgs(text string) []string {
	open := strings.IndexByte(text, '<')
	if open < 0 || !strings.HasSuffix(text, ">") {
		return nil
	}
	var (
		args  []string
		depth int
		start = open + 1
	)
	for i := start; i < len(text)-1; i++ {
		switch text[i] {
		case '<':
			depth++
		case '>':
			depth--
		case ',':
			if depth == 0 {
				args = append(args, strings.TrimSpace(text[start:i]))
				start = i + 1
			}
		}
	}
	return append(args, strings.TrimSpace(text[start:len(text)-1]))
}

var identifier = regexp.MustCompile(`\w+`)

func substitute(text string, bindings map[string]string) string {
	if len(bindings) == 0 {
		return text
	}
	return identifier.ReplaceAllStringFunc(text, func(id string) string {
		if b, ok := bindings[id]; ok {
			return b
		}
		return id
	})
}
