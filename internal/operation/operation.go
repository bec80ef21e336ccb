// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package operation holds the rules every backend applies to HTTP methods:
// verb mapping, parameter ordering, tag derivation and naming.
package operation

import (
	"strconv"
	"strings"

	"github.com/api2spec/api2model/internal/annotation"
	"github.com/api2spec/api2model/internal/generr"
	"github.com/api2spec/api2model/internal/model"
	"github.com/api2spec/api2model/internal/naming"
	"github.com/api2spec/api2model/pkg/types"
)

// NoDescription replaces a missing response description.
const NoDescription = "No description"

// Verb is a standard HTTP verb.
type Verb string

// Supported verbs.
const (
	GET     Verb = "GET"
	PUT     Verb = "PUT"
	POST    Verb = "POST"
	DELETE  Verb = "DELETE"
	OPTIONS Verb = "OPTIONS"
	HEAD    Verb = "HEAD"
	PATCH   Verb = "PATCH"
	TRACE   Verb = "TRACE"
)

// Verbs lists the supported verbs in their canonical order.
var Verbs = []Verb{GET, PUT, POST, DELETE, OPTIONS, HEAD, PATCH, TRACE}

// ParseVerb maps s to a verb, ignoring case. Any other token is an
// ErrUnsupportedMethod.
func ParseVerb(s string) (Verb, error) {
	upper := strings.ToUpper(strings.TrimSpace(s))
	for _, v := range Verbs {
		if string(v) == upper {
			return v, nil
		}
	}
	return "", generr.Newf(generr.ErrUnsupportedMethod, "unsupported HTTP method: %s", s)
}

// Lower returns the verb in lower case, as used by OpenAPI path items and
// client libraries.
func (v Verb) Lower() string {
	return strings.ToLower(string(v))
}

// In tells where a parameter travels.
type In string

// Parameter locations.
const (
	InPath  In = "path"
	InQuery In = "query"
	InBody  In = "body"
)

// Parameter is one entry of an operation's parameter list. Exactly one of
// Property and Body is set.
type Parameter struct {
	Name     string
	In       In
	Property *types.Property
	Body     *types.Body
}

// Type returns the parameter type.
func (p Parameter) Type() *types.TypeDeclaration {
	if p.Body != nil {
		return p.Body.Type
	}
	return p.Property.Type
}

// Required reports whether the parameter must be supplied. Path parameters
// always are.
func (p Parameter) Required() bool {
	switch {
	case p.In == InPath:
		return true
	case p.Body != nil:
		return p.Body.Required
	default:
		return p.Property.Required
	}
}

// BodyParameterName names the request body parameter.
const BodyParameterName = "body"

// Parameters returns the parameters of method in their fixed order: the path
// parameters of every enclosing resource (outermost first), the path
// parameters of the method's own resource, the query parameters in declared
// order, then the body when there is one.
func Parameters(m *model.Model, method *types.Method) []Parameter {
	uri := m.AllURIParameters(method)
	params := make([]Parameter, 0, len(uri)+len(method.QueryParameters)+1)

	for _, p := range uri {
		params = append(params, Parameter{Name: p.Name, In: InPath, Property: p})
	}
	for _, p := range method.QueryParameters {
		params = append(params, Parameter{Name: p.Name, In: InQuery, Property: p})
	}
	if method.Body != nil {
		params = append(params, Parameter{Name: BodyParameterName, In: InBody, Body: method.Body})
	}
	return params
}

// TagName derives the group name of an outer resource: its relative URI
// without the leading "/" and with the first rune upper-cased.
func TagName(outer *types.Resource) string {
	return naming.UpperFirst(strings.TrimPrefix(outer.RelativeURI, "/"))
}

// OuterTag returns the tag of the outermost resource of chain.
func OuterTag(chain []*types.Resource) string {
	if len(chain) == 0 {
		return ""
	}
	return TagName(chain[0])
}

// ResponseDescription returns the response description, or NoDescription.
func ResponseDescription(r *types.Response) string {
	if strings.TrimSpace(r.Description) == "" {
		return NoDescription
	}
	return r.Description
}

// MethodName names the generated method or operation: the codeName
// annotation wins over the display name, which wins over the verb.
func MethodName(method *types.Method) string {
	if name := annotation.FindCodeName(method.Annotations); name != "" {
		return naming.LowerCamel(name)
	}
	if method.DisplayName != "" {
		return naming.LowerCamel(method.DisplayName)
	}
	return strings.ToLower(method.Verb)
}

// OperationID identifies method within a whole document. An explicit name
// (codeName or display name) is kept; otherwise the lower-case verb is
// followed by the resource path in UpperCamelCase, so GET /users/{id}
// becomes getUsersId.
func OperationID(m *model.Model, method *types.Method) string {
	if annotation.FindCodeName(method.Annotations) != "" || method.DisplayName != "" {
		return MethodName(method)
	}
	verb, err := ParseVerb(method.Verb)
	if err != nil {
		return MethodName(method)
	}
	chain := m.ResourceChain(method)
	if len(chain) == 0 {
		return verb.Lower()
	}
	return verb.Lower() + naming.UpperCamel(m.ResourcePath(chain[len(chain)-1]))
}

// Names hands out names that are unique within one scope, such as the
// methods of a generated service or the operation ids of a document. A name
// already taken gets the smallest free numeric suffix, starting at 2.
type Names struct {
	taken map[string]bool
}

// NewNames returns an empty scope.
func NewNames() *Names {
	return &Names{taken: make(map[string]bool)}
}

// Claim reserves name, or the first free suffixed variant of it, and returns
// the reserved name.
func (n *Names) Claim(name string) string {
	candidate := name
	for i := 2; n.taken[candidate]; i++ {
		candidate = name + strconv.Itoa(i)
	}
	n.taken[candidate] = true
	return candidate
}

// Overload is one generated client method of an HTTP method.
type Overload struct {
	// Name is the method name
	Name string

	// Response is the successful response whose body the method returns;
	// nil when the method returns nothing
	Response *types.Response
}

// Overloads returns one method per successful response carrying a body. The
// first keeps MethodName; each further one takes the codeName of its body or
// else MethodName with its index appended. A method without such a response
// yields a single overload returning nothing.
func Overloads(method *types.Method) []Overload {
	name := MethodName(method)
	var out []Overload
	for _, r := range method.Responses {
		if !strings.HasPrefix(r.Code, "2") || r.Body == nil {
			continue
		}
		o := Overload{Name: name, Response: r}
		if i := len(out); i > 0 {
			if codeName := annotation.FindCodeName(r.Body.Annotations); codeName != "" {
				o.Name = naming.LowerCamel(codeName)
			} else {
				o.Name = name + strconv.Itoa(i)
			}
		}
		out = append(out, o)
	}
	if len(out) == 0 {
		out = append(out, Overload{Name: name})
	}
	return out
}
