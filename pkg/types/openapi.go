// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package types

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// OpenAPI is an OpenAPI 3.0/3.1 document. Paths, schemas, properties and
// responses keep the order in which the generator added them.
type OpenAPI struct {
	// OpenAPI is the specification version (e.g., "3.0.3")
	OpenAPI string `json:"openapi" yaml:"openapi"`

	// Info is the API metadata
	Info Info `json:"info" yaml:"info"`

	// Servers are the API servers
	Servers []Server `json:"servers,omitempty" yaml:"servers,omitempty"`

	// Tags group operations; one tag per outer resource
	Tags []Tag `json:"tags,omitempty" yaml:"tags,omitempty"`

	// Paths maps full resource paths to path items
	Paths *orderedmap.OrderedMap[string, *PathItem] `json:"paths,omitempty" yaml:"paths,omitempty"`

	// Components holds the named schemas
	Components *Components `json:"components,omitempty" yaml:"components,omitempty"`
}

// Info is the API metadata.
type Info struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Version     string `json:"version" yaml:"version"`
}

// Server is an API server.
type Server struct {
	URL         string `json:"url" yaml:"url"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Tag is a named operation group.
type Tag struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// PathItem holds the operations of one path.
type PathItem struct {
	Summary     string     `json:"summary,omitempty" yaml:"summary,omitempty"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
	Get         *Operation `json:"get,omitempty" yaml:"get,omitempty"`
	Put         *Operation `json:"put,omitempty" yaml:"put,omitempty"`
	Post        *Operation `json:"post,omitempty" yaml:"post,omitempty"`
	Delete      *Operation `json:"delete,omitempty" yaml:"delete,omitempty"`
	Options     *Operation `json:"options,omitempty" yaml:"options,omitempty"`
	Head        *Operation `json:"head,omitempty" yaml:"head,omitempty"`
	Patch       *Operation `json:"patch,omitempty" yaml:"patch,omitempty"`
	Trace       *Operation `json:"trace,omitempty" yaml:"trace,omitempty"`
}

// Operation is one HTTP operation.
type Operation struct {
	Tags        []string                                           `json:"tags,omitempty" yaml:"tags,omitempty"`
	Summary     string                                             `json:"summary,omitempty" yaml:"summary,omitempty"`
	Description string                                             `json:"description,omitempty" yaml:"description,omitempty"`
	OperationID string                                             `json:"operationId,omitempty" yaml:"operationId,omitempty"`
	Parameters  []Parameter                                        `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	RequestBody *RequestBody                                       `json:"requestBody,omitempty" yaml:"requestBody,omitempty"`
	Responses   *orderedmap.OrderedMap[string, *OperationResponse] `json:"responses,omitempty" yaml:"responses,omitempty"`
}

// Parameter is a path or query parameter.
type Parameter struct {
	Name        string  `json:"name" yaml:"name"`
	In          string  `json:"in" yaml:"in"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
	Required    bool    `json:"required,omitempty" yaml:"required,omitempty"`
	Schema      *Schema `json:"schema,omitempty" yaml:"schema,omitempty"`
}

// RequestBody is an operation's request body.
type RequestBody struct {
	Description string               `json:"description,omitempty" yaml:"description,omitempty"`
	Required    bool                 `json:"required,omitempty" yaml:"required,omitempty"`
	Content     map[string]MediaType `json:"content,omitempty" yaml:"content,omitempty"`
}

// OperationResponse is one response of an operation.
type OperationResponse struct {
	// Description is required by OpenAPI; generators substitute a placeholder when unset
	Description string               `json:"description" yaml:"description"`
	Content     map[string]MediaType `json:"content,omitempty" yaml:"content,omitempty"`
}

// MediaType binds a schema to a media type.
type MediaType struct {
	Schema *Schema `json:"schema,omitempty" yaml:"schema,omitempty"`
}

// Components holds reusable schemas.
type Components struct {
	Schemas *orderedmap.OrderedMap[string, *Schema] `json:"schemas,omitempty" yaml:"schemas,omitempty"`
}

// NewOpenAPI returns an empty document with initialized ordered maps.
func NewOpenAPI(version string) *OpenAPI {
	return &OpenAPI{
		OpenAPI: version,
		Paths:   orderedmap.New[string, *PathItem](),
		Components: &Components{
			Schemas: orderedmap.New[string, *Schema](),
		},
	}
}

// Operations returns the operations of a path item keyed by upper-case verb,
// in the fixed order GET, PUT, POST, DELETE, OPTIONS, HEAD, PATCH, TRACE.
func (p *PathItem) Operations() []VerbOperation {
	all := []VerbOperation{
		{"GET", p.Get},
		{"PUT", p.Put},
		{"POST", p.Post},
		{"DELETE", p.Delete},
		{"OPTIONS", p.Options},
		{"HEAD", p.Head},
		{"PATCH", p.Patch},
		{"TRACE", p.Trace},
	}
	ops := all[:0]
	for _, op := range all {
		if op.Operation != nil {
			ops = append(ops, op)
		}
	}
	return ops
}

// VerbOperation pairs an operation with its verb.
type VerbOperation struct {
	Verb      string
	Operation *Operation
}
