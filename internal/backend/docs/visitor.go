// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package docs

import (
	"strings"

	"github.com/api2spec/api2model/internal/model"
	"github.com/api2spec/api2model/internal/naming"
	"github.com/api2spec/api2model/internal/operation"
	"github.com/api2spec/api2model/internal/resolve"
	"github.com/api2spec/api2model/internal/traverse"
	"github.com/api2spec/api2model/pkg/types"
)

type document struct {
	Title       string
	Version     string
	BaseURI     string
	Description string
	Groups      []*group
	Types       []*typeDoc
}

type group struct {
	Tag         string
	Description string
	Operations  []*operationDoc
}

type operationDoc struct {
	Verb        string
	Path        string
	Name        string
	Description string
	Parameters  []paramDoc
	Responses   []*responseDoc
}

type paramDoc struct {
	Name        string
	In          string
	Type        string
	Required    string
	Description string
}

type responseDoc struct {
	Code        string
	Description string
	Body        string
}

type typeDoc struct {
	Name               string
	Anchor             string
	Description        string
	TypeVars           []string
	Parents            []string
	Discriminator      string
	DiscriminatorValue string
	Alias              string
	Variants           []string
	Properties         []paramDoc
	Values             []resolve.EnumSymbol
}

// builder collects the document in traversal order: declared types first,
// then one group per outer resource.
type builder struct {
	traverse.Base

	model    *model.Model
	resolver *resolve.Resolver[mdType]
	policy   naming.Markdown
	doc      document
}

func newBuilder(m *model.Model) *builder {
	d := m.Document()
	b := &builder{
		model: m,
		doc: document{
			Title:       d.Title,
			Version:     d.Version,
			BaseURI:     d.BaseURI,
			Description: d.Description,
		},
	}
	if b.doc.Title == "" {
		b.doc.Title = "API"
	}
	b.resolver = resolve.New[mdType](m, mdTypes{model: m})
	return b
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// cell makes s safe for a table cell.
func cell(s string) string {
	s = strings.ReplaceAll(strings.TrimSpace(s), "|", `\|`)
	return strings.Join(strings.Fields(strings.ReplaceAll(s, "\n", " ")), " ")
}

func (b *builder) declare(t *types.TypeDeclaration) (*typeDoc, mdType, error) {
	target, fresh, err := b.resolver.Define(t)
	if err != nil || !fresh {
		return nil, "", err
	}
	td := &typeDoc{
		Name:        b.policy.TypeName(t.Name),
		Anchor:      b.policy.Anchor(t.Name),
		Description: strings.TrimSpace(t.Description),
	}
	b.doc.Types = append(b.doc.Types, td)
	return td, target, nil
}

func (b *builder) VisitObjectTypeStart(t *types.TypeDeclaration) error {
	td, _, err := b.declare(t)
	if td == nil {
		return err
	}
	o, err := b.resolver.ResolveObject(t)
	if err != nil {
		return err
	}
	td.TypeVars = o.TypeVars
	for _, base := range o.Bases {
		td.Parents = append(td.Parents, string(base))
	}
	td.Discriminator = o.Discriminator
	td.DiscriminatorValue = o.DiscriminatorValue
	for _, p := range o.Properties {
		td.Properties = append(td.Properties, paramDoc{
			Name:        p.Name,
			Type:        cell(string(p.Type)),
			Required:    yesNo(p.Required),
			Description: cell(p.Source.Description),
		})
	}
	return nil
}

func (b *builder) VisitUnionType(t *types.TypeDeclaration) error {
	td, _, err := b.declare(t)
	if td == nil {
		return err
	}
	u, err := b.resolver.ResolveUnion(t)
	if err != nil {
		return err
	}
	for _, v := range u.Variants {
		td.Variants = append(td.Variants, string(v))
	}
	return nil
}

func (b *builder) VisitEnumTypeEnd(t *types.TypeDeclaration) error {
	td, _, err := b.declare(t)
	if td == nil {
		return err
	}
	e, err := b.resolver.ResolveEnum(t)
	if err != nil {
		return err
	}
	td.Values = e.Values
	return nil
}

func (b *builder) VisitArrayType(t *types.TypeDeclaration) error  { return b.alias(t) }
func (b *builder) VisitStringType(t *types.TypeDeclaration) error { return b.alias(t) }
func (b *builder) VisitNumberType(t *types.TypeDeclaration) error { return b.alias(t) }
func (b *builder) VisitScalarType(t *types.TypeDeclaration) error { return b.alias(t) }

func (b *builder) alias(t *types.TypeDeclaration) error {
	td, target, err := b.declare(t)
	if td != nil {
		td.Alias = string(target)
	}
	return err
}

func (b *builder) VisitResourceStart(ev traverse.ResourceEvent) error {
	if !ev.Nested() {
		b.doc.Groups = append(b.doc.Groups, &group{
			Tag:         operation.TagName(ev.Resource),
			Description: strings.TrimSpace(ev.Resource.Description),
		})
	}
	return nil
}

func (b *builder) currentGroup() *group {
	return b.doc.Groups[len(b.doc.Groups)-1]
}

func (b *builder) currentOperation() *operationDoc {
	ops := b.currentGroup().Operations
	return ops[len(ops)-1]
}

func (b *builder) VisitMethodStart(ev traverse.MethodEvent) error {
	verb, err := operation.ParseVerb(ev.Method.Verb)
	if err != nil {
		return err
	}
	op := &operationDoc{
		Verb:        string(verb),
		Path:        ev.Path(),
		Name:        operation.MethodName(ev.Method),
		Description: strings.TrimSpace(ev.Method.Description),
	}
	for _, p := range operation.Parameters(b.model, ev.Method) {
		var (
			annotations types.Annotations
			description string
		)
		if p.Body != nil {
			annotations = p.Body.Annotations
			if p.Body.MediaType != "" {
				description = "`" + p.Body.MediaType + "`"
			}
		} else {
			annotations = p.Property.Annotations
			description = p.Property.Description
		}
		t, err := b.resolver.Resolve(p.Type(), annotations)
		if err != nil {
			return err
		}
		op.Parameters = append(op.Parameters, paramDoc{
			Name:        p.Name,
			In:          string(p.In),
			Type:        cell(string(t)),
			Required:    yesNo(p.Required()),
			Description: cell(description),
		})
	}
	g := b.currentGroup()
	g.Operations = append(g.Operations, op)
	return nil
}

func (b *builder) VisitResponse(_ traverse.MethodEvent, r *types.Response) error {
	op := b.currentOperation()
	op.Responses = append(op.Responses, &responseDoc{
		Code:        r.Code,
		Description: cell(operation.ResponseDescription(r)),
	})
	return nil
}

func (b *builder) VisitResponseBody(_ traverse.MethodEvent, _ *types.Response, body *types.Body) error {
	t, err := b.resolver.Resolve(body.Type, body.Annotations)
	if err != nil {
		return err
	}
	op := b.currentOperation()
	op.Responses[len(op.Responses)-1].Body = cell(string(t))
	return nil
}
