// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package traverse walks a parsed API description in a fixed order and
// dispatches events to visitors.
//
// Declared types are visited first, in declaration order, then top-level
// resources. A resource emits its start event, one event group per method,
// its nested resources and finally its end event. Each event carries the
// enclosing resources explicitly; the Traverser keeps no walk state, so a
// single Traverser may be reused and events may be replayed.
package traverse

import (
	"github.com/api2spec/api2model/internal/generr"
	"github.com/api2spec/api2model/pkg/types"
)

// DefaultMaxDepth allows an outer resource and one level of nesting.
const DefaultMaxDepth = 2

// Traverser walks documents.
type Traverser struct {
	maxDepth int
}

// New returns a Traverser enforcing DefaultMaxDepth.
func New() *Traverser {
	return &Traverser{maxDepth: DefaultMaxDepth}
}

// Traverse visits every declared type and then every resource of doc.
func (tr *Traverser) Traverse(doc *types.Document, v Visitor) error {
	for _, t := range doc.Types {
		if err := tr.TraverseType(t, v); err != nil {
			return err
		}
	}
	for _, r := range doc.Resources {
		if err := tr.TraverseResource(r, v); err != nil {
			return err
		}
	}
	return nil
}

// TraverseType visits one declared type.
func (tr *Traverser) TraverseType(t *types.TypeDeclaration, v Visitor) error {
	switch t.Kind {
	case types.KindObject:
		return traverseObject(t, v)
	case types.KindArray:
		return v.VisitArrayType(t)
	case types.KindUnion:
		return v.VisitUnionType(t)
	case types.KindEnum:
		for _, value := range t.EnumValues {
			if err := v.VisitEnumValue(t, value); err != nil {
				return err
			}
		}
		return v.VisitEnumTypeEnd(t)
	case types.KindScalar:
		switch t.Base {
		case "string":
			return v.VisitStringType(t)
		case "integer", "number":
			return v.VisitNumberType(t)
		default:
			return v.VisitScalarType(t)
		}
	default:
		return generr.Internalf("type %q has unknown kind %q", t.Name, t.Kind)
	}
}

func traverseObject(t *types.TypeDeclaration, v Visitor) error {
	if err := v.VisitObjectTypeStart(t); err != nil {
		return err
	}
	for _, p := range t.Properties {
		if err := v.VisitObjectTypeProperty(t, p); err != nil {
			return err
		}
		var err error
		if p.Type != nil && p.Type.Kind == types.KindArray {
			err = v.VisitArrayProperty(t, p)
		} else {
			err = v.VisitScalarProperty(t, p)
		}
		if err != nil {
			return err
		}
	}
	return v.VisitObjectTypeEnd(t)
}

// TraverseResource visits a top-level resource and its nested resources. The
// whole subtree is checked against the nesting limit before the first event
// is emitted.
func (tr *Traverser) TraverseResource(r *types.Resource, v Visitor) error {
	if err := tr.checkDepth(r, "", 1); err != nil {
		return err
	}
	return tr.traverseResource(ResourceEvent{Resource: r}, v)
}

func (tr *Traverser) checkDepth(r *types.Resource, prefix string, depth int) error {
	path := prefix + r.RelativeURI
	if depth > tr.maxDepth {
		return generr.Newf(generr.ErrUnsupportedNesting,
			"resource %s is nested %d levels deep, at most %d are supported", path, depth, tr.maxDepth)
	}
	for _, child := range r.Resources {
		if err := tr.checkDepth(child, path, depth+1); err != nil {
			return err
		}
	}
	return nil
}

func (tr *Traverser) traverseResource(ev ResourceEvent, v Visitor) error {
	if err := v.VisitResourceStart(ev); err != nil {
		return err
	}
	for _, m := range ev.Resource.Methods {
		mev := MethodEvent{Method: m, Resource: ev.Resource, Ancestors: ev.Ancestors}
		if err := tr.TraverseMethod(mev, v); err != nil {
			return err
		}
	}

	chain := ev.Chain()
	for _, child := range ev.Resource.Resources {
		if err := tr.traverseResource(ResourceEvent{Resource: child, Ancestors: chain}, v); err != nil {
			return err
		}
	}
	return v.VisitResourceEnd(ev)
}

// TraverseMethod emits the events of one method: start, body, query
// parameters, responses with their bodies, end.
func (tr *Traverser) TraverseMethod(ev MethodEvent, v Visitor) error {
	m := ev.Method
	if err := v.VisitMethodStart(ev); err != nil {
		return err
	}
	if m.Body != nil {
		if err := v.VisitMethodBody(ev, m.Body); err != nil {
			return err
		}
	}
	for _, p := range m.QueryParameters {
		if err := v.VisitQueryParameter(ev, p); err != nil {
			return err
		}
	}
	for _, r := range m.Responses {
		if err := v.VisitResponse(ev, r); err != nil {
			return err
		}
		if r.Body != nil {
			if err := v.VisitResponseBody(ev, r, r.Body); err != nil {
				return err
			}
		}
	}
	return v.VisitMethodEnd(ev)
}
