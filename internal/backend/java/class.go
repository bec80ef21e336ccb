// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package java

import (
	"sort"
	"strings"
)

// Class is a generated Java class or interface.
type Class struct {
	Package     string
	Name        string
	Description string
	TypeVars    []string

	// Extends is the superclass type expression, including type arguments
	Extends string

	// Super is the simple name of the superclass when it is a generated
	// model class
	Super string

	// ExtendsImports are the qualified names the extends clause needs
	ExtendsImports []string

	Annotations []string
	Fields      []*Field
	Methods     []*Method

	imports map[string]bool
}

// Field is a class field.
type Field struct {
	Modifiers   string
	Type        string
	Name        string
	Init        string
	Annotations []string
}

// Method is a class or interface method. Interface methods have no body.
type Method struct {
	Modifiers   string
	ReturnType  string
	Name        string
	Params      []Param
	Body        []string
	Annotations []string

	// Abstract methods have no body
	Abstract bool

	// Doc is the Javadoc text
	Doc string

	// Imports are the qualified names the signature needs
	Imports []string
}

// Param is a method parameter.
type Param struct {
	Annotations []string
	Type        string
	Name        string
}

// Signature identifies a method by its name and parameter types.
func (m *Method) Signature() string {
	types := make([]string, len(m.Params))
	for i, p := range m.Params {
		types[i] = p.Type
	}
	return m.Name + "(" + strings.Join(types, ",") + ")"
}

// NewClass returns an empty class.
func NewClass(pkg, name string) *Class {
	return &Class{Package: pkg, Name: name, imports: map[string]bool{}}
}

// Import records qualified names used by the class.
func (c *Class) Import(names ...string) {
	for _, n := range names {
		c.imports[n] = true
	}
}

// Imports returns the sorted imports, without java.lang and the class's own
// package.
func (c *Class) Imports() []string {
	var out []string
	for n := range c.imports {
		i := strings.LastIndexByte(n, '.')
		if i < 0 || n[:i] == c.Package || n[:i] == "java.lang" {
			continue
		}
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Method returns the method with the given signature, or nil.
func (c *Class) Method(signature string) *Method {
	for _, m := range c.Methods {
		if m.Signature() == signature {
			return m
		}
	}
	return nil
}

// AddMethod appends m and records its imports.
func (c *Class) AddMethod(m *Method) {
	c.Methods = append(c.Methods, m)
	c.Import(m.Imports...)
}

// Registry keeps the generated model classes by simple name.
type Registry struct {
	classes map[string]*Class
	order   []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{classes: map[string]*Class{}}
}

// Add registers c.
func (r *Registry) Add(c *Class) {
	if _, ok := r.classes[c.Name]; !ok {
		r.order = append(r.order, c.Name)
	}
	r.classes[c.Name] = c
}

// Get returns the class with the given simple name, or nil.
func (r *Registry) Get(name string) *Class {
	return r.classes[name]
}

// Classes returns the registered classes in registration order.
func (r *Registry) Classes() []*Class {
	out := make([]*Class, len(r.order))
	for i, n := range r.order {
		out[i] = r.classes[n]
	}
	return out
}
