// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package traverse

import "github.com/api2spec/api2model/pkg/types"

// Composite forwards every event to each of its visitors in order. The first
// error stops the forwarding.
type Composite []Visitor

// Compose returns a visitor forwarding every event to vs in order.
func Compose(vs ...Visitor) Composite {
	return Composite(vs)
}

func (c Composite) each(fn func(Visitor) error) error {
	for _, v := range c {
		if err := fn(v); err != nil {
			return err
		}
	}
	return nil
}

func (c Composite) VisitResourceStart(ev ResourceEvent) error {
	return c.each(func(v Visitor) error { return v.VisitResourceStart(ev) })
}

func (c Composite) VisitResourceEnd(ev ResourceEvent) error {
	return c.each(func(v Visitor) error { return v.VisitResourceEnd(ev) })
}

func (c Composite) VisitMethodStart(ev MethodEvent) error {
	return c.each(func(v Visitor) error { return v.VisitMethodStart(ev) })
}

func (c Composite) VisitMethodBody(ev MethodEvent, body *types.Body) error {
	return c.each(func(v Visitor) error { return v.VisitMethodBody(ev, body) })
}

func (c Composite) VisitQueryParameter(ev MethodEvent, param *types.Property) error {
	return c.each(func(v Visitor) error { return v.VisitQueryParameter(ev, param) })
}

func (c Composite) VisitResponse(ev MethodEvent, response *types.Response) error {
	return c.each(func(v Visitor) error { return v.VisitResponse(ev, response) })
}

func (c Composite) VisitResponseBody(ev MethodEvent, response *types.Response, body *types.Body) error {
	return c.each(func(v Visitor) error { return v.VisitResponseBody(ev, response, body) })
}

func (c Composite) VisitMethodEnd(ev MethodEvent) error {
	return c.each(func(v Visitor) error { return v.VisitMethodEnd(ev) })
}

func (c Composite) VisitObjectTypeStart(t *types.TypeDeclaration) error {
	return c.each(func(v Visitor) error { return v.VisitObjectTypeStart(t) })
}

func (c Composite) VisitObjectTypeProperty(t *types.TypeDeclaration, p *types.Property) error {
	return c.each(func(v Visitor) error { return v.VisitObjectTypeProperty(t, p) })
}

func (c Composite) VisitArrayProperty(t *types.TypeDeclaration, p *types.Property) error {
	return c.each(func(v Visitor) error { return v.VisitArrayProperty(t, p) })
}

func (c Composite) VisitScalarProperty(t *types.TypeDeclaration, p *types.Property) error {
	return c.each(func(v Visitor) error { return v.VisitScalarProperty(t, p) })
}

func (c Composite) VisitObjectTypeEnd(t *types.TypeDeclaration) error {
	return c.each(func(v Visitor) error { return v.VisitObjectTypeEnd(t) })
}

func (c Composite) VisitArrayType(t *types.TypeDeclaration) error {
	return c.each(func(v Visitor) error { return v.VisitArrayType(t) })
}

func (c Composite) VisitUnionType(t *types.TypeDeclaration) error {
	return c.each(func(v Visitor) error { return v.VisitUnionType(t) })
}

func (c Composite) VisitEnumValue(t *types.TypeDeclaration, value types.EnumValue) error {
	return c.each(func(v Visitor) error { return v.VisitEnumValue(t, value) })
}

func (c Composite) VisitEnumTypeEnd(t *types.TypeDeclaration) error {
	return c.each(func(v Visitor) error { return v.VisitEnumTypeEnd(t) })
}

func (c Composite) VisitStringType(t *types.TypeDeclaration) error {
	return c.each(func(v Visitor) error { return v.VisitStringType(t) })
}

func (c Composite) VisitNumberType(t *types.TypeDeclaration) error {
	return c.each(func(v Visitor) error { return v.VisitNumberType(t) })
}

func (c Composite) VisitScalarType(t *types.TypeDeclaration) error {
	return c.each(func(v Visitor) error { return v.VisitScalarType(t) })
}

var _ Visitor = Composite(nil)
