// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package resolve converts type declarations into a backend's structural
// representation. One algorithm serves every backend: built-in scalars map to
// primitives, declared types are referenced by name and defined once, objects
// keep their parent chain as bases, union variants resolve independently and
// enum values get constant-style symbols next to their literals.
package resolve

import (
	"github.com/api2spec/api2model/internal/annotation"
	"github.com/api2spec/api2model/internal/generr"
	"github.com/api2spec/api2model/internal/model"
	"github.com/api2spec/api2model/internal/naming"
	"github.com/api2spec/api2model/pkg/types"
)

// Resolver resolves types for one backend during one run.
type Resolver[T any] struct {
	model   *model.Model
	backend Backend[T]
	expand  bool

	defined    map[*types.TypeDeclaration]bool
	inProgress map[*types.TypeDeclaration]bool
}

// New returns a Resolver producing values of backend b.
func New[T any](m *model.Model, b Backend[T]) *Resolver[T] {
	r := &Resolver[T]{
		model:      m,
		backend:    b,
		defined:    make(map[*types.TypeDeclaration]bool),
		inProgress: make(map[*types.TypeDeclaration]bool),
	}
	if e, ok := b.(AliasExpander); ok {
		r.expand = e.ExpandAliases()
	}
	return r
}

// Model returns the model the resolver reads.
func (r *Resolver[T]) Model() *model.Model {
	return r.model
}

// Resolve resolves a use of t, such as a property, parameter or body type.
// annotations are those of the use site: a typeVar annotation substitutes
// the type variable for t (or for its items when t is an inline array) and
// typeArgs bind the variables of a referenced generic type.
func (r *Resolver[T]) Resolve(t *types.TypeDeclaration, annotations types.Annotations) (T, error) {
	if tv := annotation.FindTypeVar(annotations); tv != "" {
		if t != nil && t.Kind == types.KindArray && !t.IsDeclared() {
			return r.backend.Array(r.backend.TypeVariable(tv)), nil
		}
		return r.backend.TypeVariable(tv), nil
	}
	return r.resolve(t, annotation.TypeArgNames(annotations))
}

func (r *Resolver[T]) resolve(t *types.TypeDeclaration, typeArgs []string) (T, error) {
	var zero T
	if t == nil {
		return r.backend.Primitive("any"), nil
	}

	if name := r.model.DeclaredName(t); name != "" {
		if r.expand && (t.Kind == types.KindScalar || t.Kind == types.KindArray) {
			return r.structure(t, typeArgs)
		}
		return r.backend.Reference(name, typeArgs), nil
	}
	if t.Name != "" {
		return zero, generr.Newf(generr.ErrInvalidInput, "unknown type %q", t.Name)
	}
	return r.structure(t, typeArgs)
}

// structure resolves t by its shape, ignoring its declared name.
func (r *Resolver[T]) structure(t *types.TypeDeclaration, typeArgs []string) (T, error) {
	var zero T
	switch t.Kind {
	case types.KindScalar:
		return r.backend.Primitive(t.Base), nil
	case types.KindArray:
		item, err := r.resolve(t.Items, typeArgs)
		if err != nil {
			return zero, err
		}
		return r.backend.Array(item), nil
	case types.KindUnion:
		u, err := r.union(t)
		if err != nil {
			return zero, err
		}
		return r.backend.Union(u), nil
	case types.KindEnum:
		e, err := r.enum(t)
		if err != nil {
			return zero, err
		}
		return r.backend.Enum(e), nil
	case types.KindObject:
		o, err := r.object(t)
		if err != nil {
			return zero, err
		}
		return r.backend.Object(o), nil
	default:
		return zero, generr.Internalf("type %q has unknown kind %q", t.Name, t.Kind)
	}
}

// Define resolves the top-level definition of a declared type. A type is
// defined once per Resolver: later calls return a Reference and false.
func (r *Resolver[T]) Define(t *types.TypeDeclaration) (T, bool, error) {
	var zero T
	name := r.model.DeclaredName(t)
	if name == "" {
		return zero, false, generr.Internalf("cannot define undeclared type %q", t.Name)
	}
	if r.defined[t] {
		return r.backend.Reference(name, nil), false, nil
	}

	r.defined[t] = true
	v, err := r.structure(t, nil)
	if err != nil {
		delete(r.defined, t)
		return zero, false, err
	}
	return v, true, nil
}

// Defined reports whether t has been defined.
func (r *Resolver[T]) Defined(t *types.TypeDeclaration) bool {
	return r.defined[t]
}

// ResolveObject returns the object structure of t without handing it to the
// backend.
func (r *Resolver[T]) ResolveObject(t *types.TypeDeclaration) (Object[T], error) {
	return r.object(t)
}

// ResolveUnion returns the union structure of t without handing it to the
// backend.
func (r *Resolver[T]) ResolveUnion(t *types.TypeDeclaration) (Union[T], error) {
	return r.union(t)
}

// ResolveEnum returns the enumeration structure of t without handing it to
// the backend.
func (r *Resolver[T]) ResolveEnum(t *types.TypeDeclaration) (Enum, error) {
	return r.enum(t)
}

func (r *Resolver[T]) object(t *types.TypeDeclaration) (Object[T], error) {
	if t.Kind != types.KindObject {
		return Object[T]{}, generr.Internalf("type %q is a %s, not an object", t.Name, t.Kind)
	}
	if r.inProgress[t] {
		return Object[T]{}, generr.Internalf("type %q contains itself", t.Name)
	}
	r.inProgress[t] = true
	defer delete(r.inProgress, t)

	// Walk the whole chain once so that cycles surface here.
	if _, err := r.model.Ancestors(t); err != nil {
		return Object[T]{}, err
	}
	parents, err := r.model.Parents(t)
	if err != nil {
		return Object[T]{}, err
	}

	o := Object[T]{
		Name:        r.model.DeclaredName(t),
		TypeVars:    annotation.TypeVarNames(t.Annotations),
		Declaration: t,
	}

	typeArgs := annotation.TypeArgNames(t.Annotations)
	for _, p := range parents {
		o.Bases = append(o.Bases, r.backend.Reference(p.Name, typeArgs))
		o.BaseNames = append(o.BaseNames, p.Name)
	}

	disc, owner, err := r.model.Discriminator(t)
	if err != nil {
		return Object[T]{}, err
	}
	if disc != "" {
		o.Discriminator = disc
		o.DiscriminatorOwner = owner.Name
		o.DiscriminatorValue = t.DiscriminatorValue
		if o.DiscriminatorValue == "" {
			o.DiscriminatorValue = t.Name
		}
	}

	for _, p := range t.Properties {
		typ, err := r.Resolve(p.Type, p.Annotations)
		if err != nil {
			return Object[T]{}, err
		}
		o.Properties = append(o.Properties, Property[T]{
			Name:          p.Name,
			Type:          typ,
			Required:      p.Required,
			Discriminator: disc != "" && owner == t && p.Name == disc,
			TypeVariable:  annotation.FindTypeVar(p.Annotations),
			Array:         p.Type != nil && p.Type.Kind == types.KindArray,
			Source:        p,
		})
	}
	return o, nil
}

func (r *Resolver[T]) union(t *types.TypeDeclaration) (Union[T], error) {
	label := t.Name
	if label == "" {
		label = "<inline>"
	}
	if len(t.Variants) == 0 {
		return Union[T]{}, generr.Newf(generr.ErrUnresolvableVariant, "union %s has no variants", label)
	}
	if r.inProgress[t] {
		return Union[T]{}, generr.Internalf("union %s contains itself", label)
	}
	r.inProgress[t] = true
	defer delete(r.inProgress, t)

	u := Union[T]{Name: r.model.DeclaredName(t), Declaration: t}
	for i, variant := range t.Variants {
		if variant == nil {
			return Union[T]{}, generr.Newf(generr.ErrUnresolvableVariant, "union %s: variant %d has no type", label, i+1)
		}
		v, err := r.resolve(variant, nil)
		if err != nil {
			return Union[T]{}, generr.Wrapf(generr.ErrUnresolvableVariant, err, "union %s: variant %d", label, i+1)
		}
		u.Variants = append(u.Variants, v)
		u.VariantNames = append(u.VariantNames, r.model.TypeName(variant))
	}
	return u, nil
}

func (r *Resolver[T]) enum(t *types.TypeDeclaration) (Enum, error) {
	e := Enum{Name: r.model.DeclaredName(t), Declaration: t}
	seen := make(map[string]string, len(t.EnumValues))
	for _, v := range t.EnumValues {
		symbol := naming.ConstantName(v.Name)
		if prev, dup := seen[symbol]; dup {
			return Enum{}, generr.Newf(generr.ErrInvalidInput,
				"enum %s: values %q and %q map to the same symbol %s", t.Name, prev, v.Name, symbol)
		}
		seen[symbol] = v.Name
		e.Values = append(e.Values, EnumSymbol{Symbol: symbol, Literal: v.Literal()})
	}
	return e, nil
}
