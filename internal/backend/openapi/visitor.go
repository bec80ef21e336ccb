// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package openapi

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/api2spec/api2model/internal/model"
	"github.com/api2spec/api2model/internal/operation"
	"github.com/api2spec/api2model/internal/resolve"
	"github.com/api2spec/api2model/internal/traverse"
	"github.com/api2spec/api2model/pkg/types"
)

// builder collects the OpenAPI document while the traverser walks the model.
type builder struct {
	traverse.Base

	model    *model.Model
	resolver *resolve.Resolver[*types.Schema]
	doc      *types.OpenAPI
	ids      *operation.Names

	// current is the operation of the method being visited
	current *types.Operation
}

func newBuilder(m *model.Model, version string) *builder {
	return &builder{
		model:    m,
		resolver: resolve.New[*types.Schema](m, schemas{model: m}),
		doc:      types.NewOpenAPI(version),
		ids:      operation.NewNames(),
	}
}

func (b *builder) define(t *types.TypeDeclaration) error {
	s, fresh, err := b.resolver.Define(t)
	if err != nil || !fresh {
		return err
	}
	if s.Description == "" {
		s.Description = t.Description
	}
	b.doc.Components.Schemas.Set(t.Name, s)
	return nil
}

func (b *builder) VisitObjectTypeStart(t *types.TypeDeclaration) error { return b.define(t) }
func (b *builder) VisitArrayType(t *types.TypeDeclaration) error       { return b.define(t) }
func (b *builder) VisitUnionType(t *types.TypeDeclaration) error       { return b.define(t) }
func (b *builder) VisitEnumTypeEnd(t *types.TypeDeclaration) error     { return b.define(t) }
func (b *builder) VisitStringType(t *types.TypeDeclaration) error      { return b.define(t) }
func (b *builder) VisitNumberType(t *types.TypeDeclaration) error      { return b.define(t) }
func (b *builder) VisitScalarType(t *types.TypeDeclaration) error      { return b.define(t) }

// VisitResourceStart adds one tag per outer resource.
func (b *builder) VisitResourceStart(ev traverse.ResourceEvent) error {
	if ev.Nested() {
		return nil
	}
	b.doc.Tags = append(b.doc.Tags, types.Tag{
		Name:        operation.TagName(ev.Resource),
		Description: ev.Resource.Description,
	})
	return nil
}

func (b *builder) VisitMethodStart(ev traverse.MethodEvent) error {
	m := ev.Method
	if _, err := operation.ParseVerb(m.Verb); err != nil {
		return err
	}

	op := &types.Operation{
		Tags:        []string{operation.OuterTag(ev.Chain())},
		Summary:     m.DisplayName,
		Description: m.Description,
		OperationID: b.ids.Claim(operation.OperationID(b.model, m)),
		Responses:   orderedmap.New[string, *types.OperationResponse](),
	}

	for _, p := range operation.Parameters(b.model, m) {
		schema, err := b.resolver.Resolve(p.Type(), annotationsOf(p))
		if err != nil {
			return err
		}
		if p.In == operation.InBody {
			op.RequestBody = &types.RequestBody{
				Required: p.Body.Required,
				Content:  map[string]types.MediaType{p.Body.MediaType: {Schema: schema}},
			}
			continue
		}
		op.Parameters = append(op.Parameters, types.Parameter{
			Name:        p.Name,
			In:          string(p.In),
			Description: p.Property.Description,
			Required:    p.Required(),
			Schema:      schema,
		})
	}

	b.current = op
	return nil
}

func annotationsOf(p operation.Parameter) types.Annotations {
	if p.Body != nil {
		return p.Body.Annotations
	}
	return p.Property.Annotations
}

func (b *builder) VisitResponse(_ traverse.MethodEvent, r *types.Response) error {
	b.current.Responses.Set(r.Code, &types.OperationResponse{Description: operation.ResponseDescription(r)})
	return nil
}

func (b *builder) VisitResponseBody(_ traverse.MethodEvent, r *types.Response, body *types.Body) error {
	schema, err := b.resolver.Resolve(body.Type, body.Annotations)
	if err != nil {
		return err
	}
	resp, _ := b.current.Responses.Get(r.Code)
	if resp.Content == nil {
		resp.Content = map[string]types.MediaType{}
	}
	resp.Content[body.MediaType] = types.MediaType{Schema: schema}
	return nil
}

func (b *builder) VisitMethodEnd(ev traverse.MethodEvent) error {
	op := b.current
	b.current = nil
	if op.Responses.Len() == 0 {
		op.Responses.Set("default", &types.OperationResponse{Description: operation.NoDescription})
	}

	verb, err := operation.ParseVerb(ev.Method.Verb)
	if err != nil {
		return err
	}
	path := ev.Path()
	item, ok := b.doc.Paths.Get(path)
	if !ok {
		item = &types.PathItem{}
		b.doc.Paths.Set(path, item)
	}
	switch verb {
	case operation.GET:
		item.Get = op
	case operation.PUT:
		item.Put = op
	case operation.POST:
		item.Post = op
	case operation.DELETE:
		item.Delete = op
	case operation.OPTIONS:
		item.Options = op
	case operation.HEAD:
		item.Head = op
	case operation.PATCH:
		item.Patch = op
	case operation.TRACE:
		item.Trace = op
	}
	return nil
}
