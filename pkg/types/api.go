// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package types provides the core data structures shared by the generators:
// the parsed API description tree and the OpenAPI output model.
package types

// Kind classifies a type declaration.
type Kind string

const (
	// KindScalar is a built-in scalar or an alias of one.
	KindScalar Kind = "scalar"

	// KindObject is an object type with properties and parent types.
	KindObject Kind = "object"

	// KindArray is a sequence of an item type.
	KindArray Kind = "array"

	// KindUnion is exactly one of a fixed list of variant types.
	KindUnion Kind = "union"

	// KindEnum is a string type restricted to an enumeration of values.
	KindEnum Kind = "enum"
)

// Document is the root of a parsed API description.
type Document struct {
	// Title is the API title
	Title string

	// Version is the API version
	Version string

	// BaseURI is the base URI of the API
	BaseURI string

	// Description is a description of the API
	Description string

	// MediaType is the default media type of bodies
	MediaType string

	// Types are the declared types in declaration order
	Types []*TypeDeclaration

	// Resources are the top-level resources in declaration order
	Resources []*Resource
}

// TypeDeclaration describes a data type.
//
// A use of a declared type elsewhere in the tree points at the same
// TypeDeclaration as the top-level declaration. Inline types have no Name.
type TypeDeclaration struct {
	// Name is the declared name, empty for anonymous inline types
	Name string

	// Kind classifies the declaration
	Kind Kind

	// Base is the built-in type this declaration is rooted at (string, integer, object, ...)
	Base string

	// Parents are the names of the declared parent types, in order
	Parents []string

	// Properties are the object's own properties in declaration order
	Properties []*Property

	// Items is the item type of an array
	Items *TypeDeclaration

	// Variants are the alternatives of a union, in declared order
	Variants []*TypeDeclaration

	// EnumValues are the values of an enumeration, in declared order
	EnumValues []EnumValue

	// Discriminator names the property selecting the concrete subtype
	Discriminator string

	// DiscriminatorValue is the discriminator value identifying this type
	DiscriminatorValue string

	// Description is a description of the type
	Description string

	// Annotations are the annotations attached to the declaration
	Annotations Annotations
}

// IsDeclared reports whether the declaration carries a declared name.
func (t *TypeDeclaration) IsDeclared() bool {
	return t != nil && t.Name != ""
}

// Property returns the own property with the given name, or nil.
func (t *TypeDeclaration) Property(name string) *Property {
	for _, p := range t.Properties {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// Property is a named, typed member of an object. It also describes URI and
// query parameters.
type Property struct {
	// Name is the property name
	Name string

	// Type is the property type
	Type *TypeDeclaration

	// Required indicates if the property is required
	Required bool

	// Description is a description of the property
	Description string

	// Annotations are the annotations attached to the property
	Annotations Annotations
}

// EnumValue is one value of an enumeration.
type EnumValue struct {
	// Name is the symbolic name of the value
	Name string

	// Value is the literal wire value; empty means the same as Name
	Value string
}

// Literal returns the serialized form of the value.
func (v EnumValue) Literal() string {
	if v.Value != "" {
		return v.Value
	}
	return v.Name
}

// Annotations maps annotation names to a string or a list of strings.
type Annotations map[string]any

// Resource is a URL path segment with methods and nested resources.
type Resource struct {
	// RelativeURI is the path segment relative to the parent resource (e.g., "/{id}")
	RelativeURI string

	// DisplayName is a human readable name of the resource
	DisplayName string

	// Description is a description of the resource
	Description string

	// URIParameters are the path parameters of this segment
	URIParameters []*Property

	// Methods are the HTTP methods in declaration order
	Methods []*Method

	// Resources are the nested resources in declaration order
	Resources []*Resource

	// Annotations are the annotations attached to the resource
	Annotations Annotations
}

// Method is an HTTP method on a resource.
type Method struct {
	// Verb is the HTTP verb as written in the description (case-insensitive)
	Verb string

	// DisplayName is a human readable name of the method
	DisplayName string

	// Description is a description of the method
	Description string

	// QueryParameters are the query parameters in declaration order
	QueryParameters []*Property

	// Body is the request body, if any
	Body *Body

	// Responses are the responses in declaration order
	Responses []*Response

	// Annotations are the annotations attached to the method
	Annotations Annotations
}

// Body is a request or response body.
type Body struct {
	// MediaType is the media type of the body (e.g., "application/json")
	MediaType string

	// Type is the body type
	Type *TypeDeclaration

	// Required indicates if the body is required
	Required bool

	// Annotations are the annotations attached to the body
	Annotations Annotations
}

// Response is one response of a method.
type Response struct {
	// Code is the HTTP status code
	Code string

	// Description is a description of the response
	Description string

	// Body is the response body, if any
	Body *Body
}
