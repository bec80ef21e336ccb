// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package model builds queryable views over a parsed API description:
// declared-name lookup, built-in recognition, inheritance chains and the
// URI parameters of nested resources.
//
// A Model is built once per run and is read-only afterwards.
package model

import (
	"github.com/api2spec/api2model/internal/generr"
	"github.com/api2spec/api2model/pkg/types"
)

// ObjectBase is the built-in root of every object type. It is never emitted
// as a parent.
const ObjectBase = "object"

var builtIns = map[string]bool{
	"any":           true,
	"array":         true,
	"object":        true,
	"union":         true,
	"string":        true,
	"number":        true,
	"integer":       true,
	"boolean":       true,
	"date-only":     true,
	"time-only":     true,
	"datetime-only": true,
	"datetime":      true,
	"file":          true,
	"nil":           true,
}

// IsBuiltIn reports whether name is a built-in type name.
func IsBuiltIn(name string) bool {
	return builtIns[name]
}

// Model indexes a document.
type Model struct {
	doc      *types.Document
	byName   map[string]*types.TypeDeclaration
	names    map[*types.TypeDeclaration]string
	subtypes map[string][]*types.TypeDeclaration
	parents  map[*types.Resource]*types.Resource
	owners   map[*types.Method]*types.Resource
}

// New indexes doc. Duplicate declared names are rejected.
func New(doc *types.Document) (*Model, error) {
	m := &Model{
		doc:      doc,
		byName:   make(map[string]*types.TypeDeclaration, len(doc.Types)),
		names:    make(map[*types.TypeDeclaration]string, len(doc.Types)),
		subtypes: make(map[string][]*types.TypeDeclaration),
		parents:  make(map[*types.Resource]*types.Resource),
		owners:   make(map[*types.Method]*types.Resource),
	}

	for _, t := range doc.Types {
		if t.Name == "" {
			return nil, generr.Newf(generr.ErrInvalidInput, "declared type without a name")
		}
		if _, dup := m.byName[t.Name]; dup {
			return nil, generr.Newf(generr.ErrInvalidInput, "duplicate type name %q", t.Name)
		}
		m.byName[t.Name] = t
		m.names[t] = t.Name
	}

	for _, t := range doc.Types {
		for _, p := range t.Parents {
			if p == ObjectBase {
				continue
			}
			m.subtypes[p] = append(m.subtypes[p], t)
		}
	}

	var index func(parent *types.Resource, rs []*types.Resource)
	index = func(parent *types.Resource, rs []*types.Resource) {
		for _, r := range rs {
			if parent != nil {
				m.parents[r] = parent
			}
			for _, meth := range r.Methods {
				m.owners[meth] = r
			}
			index(r, r.Resources)
		}
	}
	index(nil, doc.Resources)

	return m, nil
}

// Document returns the indexed document.
func (m *Model) Document() *types.Document {
	return m.doc
}

// Types returns the declared types in declaration order.
func (m *Model) Types() []*types.TypeDeclaration {
	return m.doc.Types
}

// Lookup returns the declaration with the given name.
func (m *Model) Lookup(name string) (*types.TypeDeclaration, bool) {
	t, ok := m.byName[name]
	return t, ok
}

// DeclaredName returns the declared name of t, or "" when t is an inline
// type.
func (m *Model) DeclaredName(t *types.TypeDeclaration) string {
	return m.names[t]
}

// TypeName returns the name a use of t refers to: the declared name, "X[]"
// for inline arrays, or the built-in base otherwise.
func (m *Model) TypeName(t *types.TypeDeclaration) string {
	if t == nil {
		return "any"
	}
	if name := m.DeclaredName(t); name != "" {
		return name
	}
	if t.Kind == types.KindArray {
		return m.TypeName(t.Items) + "[]"
	}
	if t.Base != "" {
		return t.Base
	}
	return string(t.Kind)
}

// Parents returns the direct declared parents of t. The built-in object root
// is skipped.
func (m *Model) Parents(t *types.TypeDeclaration) ([]*types.TypeDeclaration, error) {
	var parents []*types.TypeDeclaration
	for _, name := range t.Parents {
		if name == ObjectBase || IsBuiltIn(name) {
			continue
		}
		p, ok := m.byName[name]
		if !ok {
			return nil, generr.Newf(generr.ErrInvalidInput, "type %q extends unknown type %q", m.label(t), name)
		}
		parents = append(parents, p)
	}
	return parents, nil
}

// Ancestors returns the full parent chain of t, nearest first. Each ancestor
// appears once. A cycle is an internal-consistency error.
func (m *Model) Ancestors(t *types.TypeDeclaration) ([]*types.TypeDeclaration, error) {
	var (
		out     []*types.TypeDeclaration
		seen    = map[*types.TypeDeclaration]bool{}
		onStack = map[*types.TypeDeclaration]bool{t: true}
	)

	var walk func(t *types.TypeDeclaration) error
	walk = func(t *types.TypeDeclaration) error {
		parents, err := m.Parents(t)
		if err != nil {
			return err
		}
		for _, p := range parents {
			if onStack[p] {
				return generr.Internalf("inheritance cycle through type %q", p.Name)
			}
			if !seen[p] {
				seen[p] = true
				out = append(out, p)
			}
		}
		for _, p := range parents {
			onStack[p] = true
			if err := walk(p); err != nil {
				return err
			}
			delete(onStack, p)
		}
		return nil
	}

	if err := walk(t); err != nil {
		return nil, err
	}
	return out, nil
}

// Subtypes returns the declared types naming t as a direct parent, in
// declaration order.
func (m *Model) Subtypes(t *types.TypeDeclaration) []*types.TypeDeclaration {
	if !t.IsDeclared() {
		return nil
	}
	return m.subtypes[t.Name]
}

// Discriminator returns the nearest discriminator property declared on t or
// one of its ancestors and the type declaring it. prop is "" when there is
// none. A discriminator must name a string property of the declaring type
// or one of its ancestors.
func (m *Model) Discriminator(t *types.TypeDeclaration) (prop string, owner *types.TypeDeclaration, err error) {
	if t.Kind != types.KindObject {
		if t.Discriminator != "" {
			return "", nil, generr.Internalf("discriminator %q on non-object type %q", t.Discriminator, m.label(t))
		}
		return "", nil, nil
	}

	owner = t
	if t.Discriminator == "" {
		ancestors, err := m.Ancestors(t)
		if err != nil {
			return "", nil, err
		}
		owner = nil
		for _, a := range ancestors {
			if a.Discriminator != "" {
				owner = a
				break
			}
		}
		if owner == nil {
			return "", nil, nil
		}
	}

	p, err := m.FindProperty(owner, owner.Discriminator)
	if err != nil {
		return "", nil, err
	}
	if p == nil {
		return "", nil, generr.Internalf("discriminator %q of type %q names no property", owner.Discriminator, m.label(owner))
	}
	if !isString(p.Type) {
		return "", nil, generr.Internalf("discriminator %q of type %q is not a string property", owner.Discriminator, m.label(owner))
	}
	return owner.Discriminator, owner, nil
}

// FindProperty returns the property with the given name declared on t or on
// the nearest ancestor declaring it.
func (m *Model) FindProperty(t *types.TypeDeclaration, name string) (*types.Property, error) {
	if p := t.Property(name); p != nil {
		return p, nil
	}
	ancestors, err := m.Ancestors(t)
	if err != nil {
		return nil, err
	}
	for _, a := range ancestors {
		if p := a.Property(name); p != nil {
			return p, nil
		}
	}
	return nil, nil
}

// ResourceChain returns the resources from the outermost one down to the
// resource owning method.
func (m *Model) ResourceChain(method *types.Method) []*types.Resource {
	r, ok := m.owners[method]
	if !ok {
		return nil
	}
	return m.chain(r)
}

func (m *Model) chain(r *types.Resource) []*types.Resource {
	var out []*types.Resource
	for ; r != nil; r = m.parents[r] {
		out = append([]*types.Resource{r}, out...)
	}
	return out
}

// ResourcePath returns the full path of r, composed from every enclosing
// resource.
func (m *Model) ResourcePath(r *types.Resource) string {
	var path string
	for _, c := range m.chain(r) {
		path += c.RelativeURI
	}
	return path
}

// AllURIParameters returns the path parameters of every resource enclosing
// method, outermost first, followed by those of the method's own resource.
func (m *Model) AllURIParameters(method *types.Method) []*types.Property {
	var params []*types.Property
	for _, r := range m.ResourceChain(method) {
		params = append(params, r.URIParameters...)
	}
	return params
}

func isString(t *types.TypeDeclaration) bool {
	if t == nil {
		return false
	}
	return t.Kind == types.KindEnum || (t.Kind == types.KindScalar && t.Base == "string")
}

func (m *Model) label(t *types.TypeDeclaration) string {
	if t.Name != "" {
		return t.Name
	}
	return "<inline " + string(t.Kind) + ">"
}
