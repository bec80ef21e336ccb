// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package types

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Schema is an OpenAPI schema object.
type Schema struct {
	// Ref is a reference to a named schema ($ref)
	Ref string `json:"$ref,omitempty" yaml:"$ref,omitempty"`

	// Type is the data type (string, number, integer, boolean, array, object)
	Type string `json:"type,omitempty" yaml:"type,omitempty"`

	// Format is the data format (date, date-time, binary, ...)
	Format string `json:"format,omitempty" yaml:"format,omitempty"`

	// Title is the declared name of the type
	Title string `json:"title,omitempty" yaml:"title,omitempty"`

	// Description is a description of the schema
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Enum lists the allowed literal values
	Enum []any `json:"enum,omitempty" yaml:"enum,omitempty"`

	// Nullable indicates if the value can be null
	Nullable bool `json:"nullable,omitempty" yaml:"nullable,omitempty"`

	// Items is the schema of array items
	Items *Schema `json:"items,omitempty" yaml:"items,omitempty"`

	// Properties are the object's own properties in declaration order
	Properties *orderedmap.OrderedMap[string, *Schema] `json:"properties,omitempty" yaml:"properties,omitempty"`

	// Required lists the required property names
	Required []string `json:"required,omitempty" yaml:"required,omitempty"`

	// AllOf composes this schema from parent schemas
	AllOf []*Schema `json:"allOf,omitempty" yaml:"allOf,omitempty"`

	// OneOf lists union variants
	OneOf []*Schema `json:"oneOf,omitempty" yaml:"oneOf,omitempty"`

	// Discriminator selects the concrete subtype of a polymorphic object
	Discriminator *Discriminator `json:"discriminator,omitempty" yaml:"discriminator,omitempty"`
}

// Discriminator is used for polymorphic schemas.
type Discriminator struct {
	// PropertyName is the name of the discriminating property
	PropertyName string `json:"propertyName" yaml:"propertyName"`

	// Mapping maps discriminator values to schema references
	Mapping map[string]string `json:"mapping,omitempty" yaml:"mapping,omitempty"`
}

// PropertyNames returns the names of the schema's own properties in order.
func (s *Schema) PropertyNames() []string {
	if s == nil || s.Properties == nil {
		return nil
	}
	names := make([]string, 0, s.Properties.Len())
	for pair := s.Properties.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names
}

// Property returns the schema of the named own property, or nil.
func (s *Schema) Property(name string) *Schema {
	if s == nil || s.Properties == nil {
		return nil
	}
	prop, _ := s.Properties.Get(name)
	return prop
}
