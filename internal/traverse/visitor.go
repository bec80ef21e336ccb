// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package traverse

import "github.com/api2spec/api2model/pkg/types"

// ResourceEvent describes a resource together with its enclosing resources.
type ResourceEvent struct {
	// Resource is the visited resource
	Resource *types.Resource

	// Ancestors are the enclosing resources, outermost first
	Ancestors []*types.Resource
}

// Outer returns the outermost resource of the event.
func (e ResourceEvent) Outer() *types.Resource {
	if len(e.Ancestors) > 0 {
		return e.Ancestors[0]
	}
	return e.Resource
}

// Nested reports whether the resource is enclosed by another one.
func (e ResourceEvent) Nested() bool {
	return len(e.Ancestors) > 0
}

// Chain returns the ancestors followed by the resource itself.
func (e ResourceEvent) Chain() []*types.Resource {
	chain := make([]*types.Resource, 0, len(e.Ancestors)+1)
	chain = append(chain, e.Ancestors...)
	return append(chain, e.Resource)
}

// Path returns the full path of the resource.
func (e ResourceEvent) Path() string {
	var path string
	for _, r := range e.Chain() {
		path += r.RelativeURI
	}
	return path
}

// MethodEvent describes a method and the resources enclosing it.
type MethodEvent struct {
	// Method is the visited method
	Method *types.Method

	// Resource is the resource owning the method
	Resource *types.Resource

	// Ancestors are the resources enclosing Resource, outermost first
	Ancestors []*types.Resource
}

// ResourceEvent returns the event of the resource owning the method.
func (e MethodEvent) ResourceEvent() ResourceEvent {
	return ResourceEvent{Resource: e.Resource, Ancestors: e.Ancestors}
}

// Outer returns the outermost resource enclosing the method.
func (e MethodEvent) Outer() *types.Resource {
	return e.ResourceEvent().Outer()
}

// Chain returns every resource enclosing the method, outermost first.
func (e MethodEvent) Chain() []*types.Resource {
	return e.ResourceEvent().Chain()
}

// Path returns the full path of the method's resource.
func (e MethodEvent) Path() string {
	return e.ResourceEvent().Path()
}

// Visitor receives traversal events. Every hook may abort the traversal by
// returning an error. Embed Base to implement only the hooks you need.
type Visitor interface {
	VisitResourceStart(ev ResourceEvent) error
	VisitResourceEnd(ev ResourceEvent) error

	VisitMethodStart(ev MethodEvent) error
	VisitMethodBody(ev MethodEvent, body *types.Body) error
	VisitQueryParameter(ev MethodEvent, param *types.Property) error
	VisitResponse(ev MethodEvent, response *types.Response) error
	VisitResponseBody(ev MethodEvent, response *types.Response, body *types.Body) error
	VisitMethodEnd(ev MethodEvent) error

	VisitObjectTypeStart(t *types.TypeDeclaration) error
	VisitObjectTypeProperty(t *types.TypeDeclaration, p *types.Property) error
	VisitArrayProperty(t *types.TypeDeclaration, p *types.Property) error
	VisitScalarProperty(t *types.TypeDeclaration, p *types.Property) error
	VisitObjectTypeEnd(t *types.TypeDeclaration) error

	VisitArrayType(t *types.TypeDeclaration) error
	VisitUnionType(t *types.TypeDeclaration) error
	VisitEnumValue(t *types.TypeDeclaration, v types.EnumValue) error
	VisitEnumTypeEnd(t *types.TypeDeclaration) error
	VisitStringType(t *types.TypeDeclaration) error
	VisitNumberType(t *types.TypeDeclaration) error
	VisitScalarType(t *types.TypeDeclaration) error
}

// Base implements every Visitor hook as a no-op.
type Base struct{}

func (Base) VisitResourceStart(ResourceEvent) error { return nil }
func (Base) VisitResourceEnd(ResourceEvent) error   { return nil }

func (Base) VisitMethodStart(MethodEvent) error                                    { return nil }
func (Base) VisitMethodBody(MethodEvent, *types.Body) error                        { return nil }
func (Base) VisitQueryParameter(MethodEvent, *types.Property) error                { return nil }
func (Base) VisitResponse(MethodEvent, *types.Response) error                      { return nil }
func (Base) VisitResponseBody(MethodEvent, *types.Response, *types.Body) error     { return nil }
func (Base) VisitMethodEnd(MethodEvent) error                                      { return nil }
func (Base) VisitObjectTypeStart(*types.TypeDeclaration) error                     { return nil }
func (Base) VisitObjectTypeProperty(*types.TypeDeclaration, *types.Property) error { return nil }
func (Base) VisitArrayProperty(*types.TypeDeclaration, *types.Property) error      { return nil }
func (Base) VisitScalarProperty(*types.TypeDeclaration, *types.Property) error     { return nil }
func (Base) VisitObjectTypeEnd(*types.TypeDeclaration) error                       { return nil }
func (Base) VisitArrayType(*types.TypeDeclaration) error                           { return nil }
func (Base) VisitUnionType(*types.TypeDeclaration) error                           { return nil }
func (Base) VisitEnumValue(*types.TypeDeclaration, types.EnumValue) error          { return nil }
func (Base) VisitEnumTypeEnd(*types.TypeDeclaration) error                         { return nil }
func (Base) VisitStringType(*types.TypeDeclaration) error                          { return nil }
func (Base) VisitNumberType(*types.TypeDeclaration) error                          { return nil }
func (Base) VisitScalarType(*types.TypeDeclaration) error                          { return nil }

var _ Visitor = Base{}
