// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package loader decodes API description documents into the types tree and
// discovers input documents on disk.
//
// Documents use a RAML-like YAML (or JSON) layout. Type expressions are a
// declared or built-in name, "X[]" for arrays and "A | B" for unions. Keys
// in parentheses such as "(typeVar)" are annotations. Keys starting with "/"
// are resources; every other key of a resource is a method. Properties are
// required unless their name ends in "?" or they set required: false.
//
// Every use of a declared type points at the declaration itself.
package loader

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/api2spec/api2model/internal/generr"
	"github.com/api2spec/api2model/internal/model"
	"github.com/api2spec/api2model/pkg/types"
)

// DefaultMediaType applies to bodies when the document declares none.
const DefaultMediaType = "application/json"

// shapeKeys are the type facets that make a use site an inline declaration.
var shapeKeys = []string{"properties", "items", "enum", "discriminator", "discriminatorValue"}

// ignoredResourceKeys are resource facets without a counterpart in the tree.
var ignoredResourceKeys = map[string]bool{"type": true, "is": true, "securedBy": true}

var uriParam = regexp.MustCompile(`\{([^{}/]+)\}`)

// Load reads and decodes the document at path.
func Load(path string) (*types.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Parse decodes a document.
func Parse(data []byte) (*types.Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, generr.Wrapf(generr.ErrInvalidInput, err, "failed to parse document")
	}
	node := deref(&root)
	if node == nil || node.Kind != yaml.MappingNode {
		return nil, generr.Newf(generr.ErrInvalidInput, "document root must be a mapping")
	}

	l := &loader{
		doc:   &types.Document{MediaType: DefaultMediaType},
		decls: make(map[string]*types.TypeDeclaration),
		nodes: make(map[string]*yaml.Node),
		state: make(map[string]fillState),
	}
	if err := l.document(node); err != nil {
		return nil, err
	}
	return l.doc, nil
}

type fillState int

const (
	unfilled fillState = iota
	filling
	filled
)

type loader struct {
	doc   *types.Document
	decls map[string]*types.TypeDeclaration
	nodes map[string]*yaml.Node
	state map[string]fillState
}

func errorf(node *yaml.Node, format string, args ...interface{}) error {
	if node != nil && node.Line > 0 {
		return generr.Newf(generr.ErrInvalidInput, "line %d: %s", node.Line, fmt.Sprintf(format, args...))
	}
	return generr.Newf(generr.ErrInvalidInput, format, args...)
}

func (l *loader) document(node *yaml.Node) error {
	var resources []*yaml.Node
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], deref(node.Content[i+1])
		switch k := key.Value; {
		case k == "title":
			l.doc.Title = scalar(value)
		case k == "version":
			l.doc.Version = scalar(value)
		case k == "baseUri":
			l.doc.BaseURI = scalar(value)
		case k == "description":
			l.doc.Description = scalar(value)
		case k == "mediaType":
			if mt := first(value); mt != "" {
				l.doc.MediaType = mt
			}
		case k == "types" || k == "schemas":
			if err := l.declare(value); err != nil {
				return err
			}
		case strings.HasPrefix(k, "/"):
			resources = append(resources, key, value)
		}
	}

	for _, decl := range l.doc.Types {
		if err := l.fill(decl.Name); err != nil {
			return err
		}
	}

	for i := 0; i < len(resources); i += 2 {
		r, err := l.resource(resources[i].Value, resources[i+1])
		if err != nil {
			return err
		}
		l.doc.Resources = append(l.doc.Resources, r)
	}
	return nil
}

// declare allocates every declaration before any is filled, so that
// declarations may refer to each other in any order.
func (l *loader) declare(node *yaml.Node) error {
	if isNull(node) {
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return errorf(node, "types must be a mapping")
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i]
		name := key.Value
		if model.IsBuiltIn(name) {
			return errorf(key, "type %q redefines a built-in type", name)
		}
		if _, dup := l.decls[name]; dup {
			return errorf(key, "duplicate type name %q", name)
		}
		decl := &types.TypeDeclaration{Name: name}
		l.decls[name] = decl
		l.nodes[name] = deref(node.Content[i+1])
		l.doc.Types = append(l.doc.Types, decl)
	}
	return nil
}

// fill completes a declaration, filling the declarations it derives from
// first. A declaration deriving from itself is an input error.
func (l *loader) fill(name string) error {
	switch l.state[name] {
	case filled:
		return nil
	case filling:
		return errorf(l.nodes[name], "type %q is defined in terms of itself", name)
	}
	l.state[name] = filling
	if err := l.define(l.decls[name], l.nodes[name]); err != nil {
		return err
	}
	l.state[name] = filled
	return nil
}

// define fills decl from a type declaration node.
func (l *loader) define(decl *types.TypeDeclaration, node *yaml.Node) error {
	node = deref(node)
	switch {
	case isNull(node):
		return l.derive(decl, "string", node)
	case node.Kind == yaml.ScalarNode:
		return l.derive(decl, node.Value, node)
	case node.Kind == yaml.SequenceNode:
		return l.inherit(decl, node)
	case node.Kind != yaml.MappingNode:
		return errorf(node, "invalid type declaration")
	}

	typeNode := get(node, "type")
	if typeNode == nil {
		typeNode = get(node, "schema")
	}
	switch {
	case typeNode != nil && typeNode.Kind == yaml.SequenceNode:
		if err := l.inherit(decl, typeNode); err != nil {
			return err
		}
	default:
		expr := scalar(typeNode)
		if expr == "" {
			expr = implicitType(node)
		}
		if err := l.derive(decl, expr, node); err != nil {
			return err
		}
	}

	if enum := get(node, "enum"); enum != nil {
		if decl.Kind != types.KindEnum && !(decl.Kind == types.KindScalar && decl.Base == "string") {
			return errorf(enum, "enum facet on non-string type")
		}
		if enum.Kind != yaml.SequenceNode {
			return errorf(enum, "enum must be a list")
		}
		decl.Kind = types.KindEnum
		decl.Base = "string"
		decl.EnumValues = nil
		for _, v := range enum.Content {
			decl.EnumValues = append(decl.EnumValues, types.EnumValue{Name: scalar(deref(v))})
		}
	}

	if items := get(node, "items"); items != nil {
		if decl.Kind != types.KindArray {
			return errorf(items, "items facet on non-array type")
		}
		t, err := l.use(items)
		if err != nil {
			return err
		}
		decl.Items = t
	}

	if props := deref(get(node, "properties")); props != nil && !isNull(props) {
		if decl.Kind != types.KindObject {
			return errorf(props, "properties facet on non-object type")
		}
		if props.Kind != yaml.MappingNode {
			return errorf(props, "properties must be a mapping")
		}
		for i := 0; i+1 < len(props.Content); i += 2 {
			p, err := l.property(props.Content[i], props.Content[i+1])
			if err != nil {
				return err
			}
			if decl.Property(p.Name) != nil {
				return errorf(props.Content[i], "duplicate property %q", p.Name)
			}
			decl.Properties = append(decl.Properties, p)
		}
	}

	decl.Discriminator = scalar(get(node, "discriminator"))
	decl.DiscriminatorValue = scalar(get(node, "discriminatorValue"))
	decl.Description = scalar(get(node, "description"))
	decl.Annotations = annotations(node)
	return nil
}

// derive fills decl from a type expression.
func (l *loader) derive(decl *types.TypeDeclaration, expr string, node *yaml.Node) error {
	e, err := parseExpr(expr)
	if err != nil {
		return errorf(node, "%v", err)
	}

	switch {
	case len(e.union) > 0:
		decl.Kind = types.KindUnion
		decl.Base = "union"
		for _, part := range e.union {
			v, err := l.fromExpr(part, node)
			if err != nil {
				return generr.Wrapf(generr.ErrUnresolvableVariant, err, "union variant %s", part)
			}
			decl.Variants = append(decl.Variants, v)
		}
	case e.item != nil:
		item, err := l.fromExpr(*e.item, node)
		if err != nil {
			return err
		}
		decl.Kind = types.KindArray
		decl.Base = "array"
		decl.Items = item
	case model.IsBuiltIn(e.name):
		builtIn(decl, e.name)
	default:
		parent, ok := l.decls[e.name]
		if !ok {
			return errorf(node, "unknown type %q", e.name)
		}
		if err := l.fill(e.name); err != nil {
			return err
		}
		decl.Kind = parent.Kind
		decl.Base = parent.Base
		switch parent.Kind {
		case types.KindObject:
			decl.Parents = []string{e.name}
		case types.KindArray:
			decl.Items = parent.Items
		case types.KindUnion:
			decl.Variants = parent.Variants
		case types.KindEnum:
			decl.EnumValues = parent.EnumValues
		}
	}
	return nil
}

// inherit fills decl as an object extending every listed parent.
func (l *loader) inherit(decl *types.TypeDeclaration, list *yaml.Node) error {
	decl.Kind = types.KindObject
	decl.Base = model.ObjectBase
	for _, item := range list.Content {
		name := scalar(deref(item))
		parent, ok := l.decls[name]
		if !ok {
			return errorf(item, "unknown parent type %q", name)
		}
		if err := l.fill(name); err != nil {
			return err
		}
		if parent.Kind != types.KindObject {
			return errorf(item, "parent type %q is not an object", name)
		}
		decl.Parents = append(decl.Parents, name)
	}
	return nil
}

func builtIn(decl *types.TypeDeclaration, name string) {
	switch name {
	case "object":
		decl.Kind = types.KindObject
		decl.Base = model.ObjectBase
		decl.Parents = []string{model.ObjectBase}
	case "array":
		decl.Kind = types.KindArray
		decl.Base = "array"
		decl.Items = &types.TypeDeclaration{Kind: types.KindScalar, Base: "any"}
	default:
		decl.Kind = types.KindScalar
		decl.Base = name
	}
}

// fromExpr returns the type a use of e refers to.
func (l *loader) fromExpr(e expr, node *yaml.Node) (*types.TypeDeclaration, error) {
	if len(e.union) == 0 && e.item == nil && !model.IsBuiltIn(e.name) {
		decl, ok := l.decls[e.name]
		if !ok {
			return nil, errorf(node, "unknown type %q", e.name)
		}
		return decl, nil
	}
	inline := &types.TypeDeclaration{}
	if err := l.derive(inline, e.String(), node); err != nil {
		return nil, err
	}
	return inline, nil
}

// use returns the type of a property, parameter, items or body node.
// Plain references return the declaration itself.
func (l *loader) use(node *yaml.Node) (*types.TypeDeclaration, error) {
	node = deref(node)
	switch {
	case isNull(node):
		return l.useExpr("string", node)
	case node.Kind == yaml.ScalarNode:
		return l.useExpr(node.Value, node)
	case node.Kind == yaml.MappingNode && !hasAny(node, shapeKeys):
		typeNode := get(node, "type")
		if typeNode == nil {
			typeNode = get(node, "schema")
		}
		if typeNode == nil || typeNode.Kind == yaml.ScalarNode {
			return l.useExpr(orDefault(scalar(typeNode), "string"), node)
		}
	}
	inline := &types.TypeDeclaration{}
	if err := l.define(inline, node); err != nil {
		return nil, err
	}
	return inline, nil
}

func (l *loader) useExpr(s string, node *yaml.Node) (*types.TypeDeclaration, error) {
	e, err := parseExpr(s)
	if err != nil {
		return nil, errorf(node, "%v", err)
	}
	return l.fromExpr(e, node)
}

func (l *loader) property(key, value *yaml.Node) (*types.Property, error) {
	name := key.Value
	p := &types.Property{Name: name, Required: true}
	if strings.HasSuffix(name, "?") {
		p.Name = strings.TrimSuffix(name, "?")
		p.Required = false
	}

	value = deref(value)
	if value != nil && value.Kind == yaml.MappingNode {
		if r := get(value, "required"); r != nil {
			b, err := boolean(r)
			if err != nil {
				return nil, err
			}
			p.Required = b
		}
		p.Description = scalar(get(value, "description"))
		p.Annotations = annotations(value)
	}

	t, err := l.use(value)
	if err != nil {
		return nil, err
	}
	p.Type = t
	return p, nil
}

func (l *loader) properties(node *yaml.Node) ([]*types.Property, error) {
	node = deref(node)
	if isNull(node) {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, errorf(node, "parameters must be a mapping")
	}
	var props []*types.Property
	for i := 0; i+1 < len(node.Content); i += 2 {
		p, err := l.property(node.Content[i], node.Content[i+1])
		if err != nil {
			return nil, err
		}
		props = append(props, p)
	}
	return props, nil
}

func (l *loader) resource(uri string, node *yaml.Node) (*types.Resource, error) {
	r := &types.Resource{RelativeURI: uri}
	node = deref(node)
	if !isNull(node) {
		if node.Kind != yaml.MappingNode {
			return nil, errorf(node, "resource %s must be a mapping", uri)
		}
		for i := 0; i+1 < len(node.Content); i += 2 {
			key, value := node.Content[i], node.Content[i+1]
			switch k := key.Value; {
			case strings.HasPrefix(k, "/"):
				child, err := l.resource(k, value)
				if err != nil {
					return nil, err
				}
				r.Resources = append(r.Resources, child)
			case k == "displayName":
				r.DisplayName = scalar(deref(value))
			case k == "description":
				r.Description = scalar(deref(value))
			case k == "uriParameters":
				params, err := l.properties(value)
				if err != nil {
					return nil, err
				}
				r.URIParameters = params
			case isAnnotation(k), ignoredResourceKeys[k]:
			default:
				m, err := l.method(k, value)
				if err != nil {
					return nil, err
				}
				r.Methods = append(r.Methods, m)
			}
		}
		r.Annotations = annotations(node)
	}

	for _, p := range r.URIParameters {
		p.Required = true
	}
	for _, match := range uriParam.FindAllStringSubmatch(uri, -1) {
		name := match[1]
		if !hasProperty(r.URIParameters, name) {
			r.URIParameters = append(r.URIParameters, &types.Property{
				Name:     name,
				Type:     &types.TypeDeclaration{Kind: types.KindScalar, Base: "string"},
				Required: true,
			})
		}
	}
	return r, nil
}

func (l *loader) method(verb string, node *yaml.Node) (*types.Method, error) {
	m := &types.Method{Verb: verb}
	node = deref(node)
	if isNull(node) {
		return m, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, errorf(node, "method %s must be a mapping", verb)
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		switch key.Value {
		case "displayName":
			m.DisplayName = scalar(deref(value))
		case "description":
			m.Description = scalar(deref(value))
		case "queryParameters":
			params, err := l.properties(value)
			if err != nil {
				return nil, err
			}
			m.QueryParameters = params
		case "body":
			b, err := l.body(value, true)
			if err != nil {
				return nil, err
			}
			m.Body = b
		case "responses":
			responses, err := l.responses(value)
			if err != nil {
				return nil, err
			}
			m.Responses = responses
		}
	}
	m.Annotations = annotations(node)
	return m, nil
}

func (l *loader) body(node *yaml.Node, required bool) (*types.Body, error) {
	node = deref(node)
	if isNull(node) {
		return nil, nil
	}
	b := &types.Body{MediaType: l.doc.MediaType, Required: required}

	if node.Kind == yaml.MappingNode && len(node.Content) >= 2 && strings.Contains(node.Content[0].Value, "/") {
		b.MediaType = node.Content[0].Value
		node = deref(node.Content[1])
	}
	if node != nil && node.Kind == yaml.MappingNode {
		if r := get(node, "required"); r != nil {
			v, err := boolean(r)
			if err != nil {
				return nil, err
			}
			b.Required = v
		}
		b.Annotations = annotations(node)
	}

	t, err := l.use(node)
	if err != nil {
		return nil, err
	}
	b.Type = t
	return b, nil
}

func (l *loader) responses(node *yaml.Node) ([]*types.Response, error) {
	node = deref(node)
	if isNull(node) {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, errorf(node, "responses must be a mapping")
	}
	var out []*types.Response
	for i := 0; i+1 < len(node.Content); i += 2 {
		resp := &types.Response{Code: node.Content[i].Value}
		value := deref(node.Content[i+1])
		if !isNull(value) && value.Kind == yaml.MappingNode {
			resp.Description = scalar(get(value, "description"))
			if bodyNode := get(value, "body"); bodyNode != nil {
				b, err := l.body(bodyNode, false)
				if err != nil {
					return nil, err
				}
				resp.Body = b
			}
		}
		out = append(out, resp)
	}
	return out, nil
}

// implicitType infers the type of a declaration without a type facet.
func implicitType(node *yaml.Node) string {
	switch {
	case get(node, "properties") != nil, get(node, "discriminator") != nil:
		return "object"
	case get(node, "items") != nil:
		return "array"
	default:
		return "string"
	}
}

func annotations(node *yaml.Node) types.Annotations {
	var a types.Annotations
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		if !isAnnotation(key) {
			continue
		}
		if a == nil {
			a = types.Annotations{}
		}
		name := key[1 : len(key)-1]
		value := deref(node.Content[i+1])
		switch {
		case isNull(value):
			a[name] = ""
		case value.Kind == yaml.SequenceNode:
			list := make([]string, 0, len(value.Content))
			for _, item := range value.Content {
				list = append(list, scalar(deref(item)))
			}
			a[name] = list
		default:
			a[name] = scalar(value)
		}
	}
	return a
}

func isAnnotation(key string) bool {
	return len(key) > 2 && strings.HasPrefix(key, "(") && strings.HasSuffix(key, ")")
}

func hasProperty(props []*types.Property, name string) bool {
	for _, p := range props {
		if p.Name == name {
			return true
		}
	}
	return false
}

func deref(node *yaml.Node) *yaml.Node {
	for node != nil {
		switch {
		case node.Kind == yaml.DocumentNode && len(node.Content) > 0:
			node = node.Content[0]
		case node.Kind == yaml.AliasNode:
			node = node.Alias
		default:
			return node
		}
	}
	return nil
}

func isNull(node *yaml.Node) bool {
	return node == nil || (node.Kind == yaml.ScalarNode && node.Tag == "!!null")
}

func get(node *yaml.Node, key string) *yaml.Node {
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return deref(node.Content[i+1])
		}
	}
	return nil
}

func hasAny(node *yaml.Node, keys []string) bool {
	for _, k := range keys {
		if get(node, k) != nil {
			return true
		}
	}
	return false
}

func scalar(node *yaml.Node) string {
	if isNull(node) || node.Kind != yaml.ScalarNode {
		return ""
	}
	return node.Value
}

// first returns a scalar value or the first element of a list.
func first(node *yaml.Node) string {
	if node != nil && node.Kind == yaml.SequenceNode && len(node.Content) > 0 {
		return scalar(deref(node.Content[0]))
	}
	return scalar(node)
}

func boolean(node *yaml.Node) (bool, error) {
	var b bool
	if err := node.Decode(&b); err != nil {
		return false, errorf(node, "expected true or false")
	}
	return b, nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
