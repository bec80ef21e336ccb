// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package resolve

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/api2spec/api2model/internal/fixture"
	"github.com/api2spec/api2model/internal/generr"
	"github.com/api2spec/api2model/internal/model"
	"github.com/api2spec/api2model/pkg/types"
)

// text renders resolved types as compact strings.
type text struct {
	expand bool
}

func (text) Primitive(base string) string { return base }

func (text) Reference(name string, typeArgs []string) string {
	if len(typeArgs) == 0 {
		return name
	}
	return name + "<" + strings.Join(typeArgs, ",") + ">"
}

func (text) TypeVariable(name string) string { return "$" + name }

func (text) Object(o Object[string]) string {
	props := make([]string, 0, len(o.Properties))
	for _, p := range o.Properties {
		props = append(props, p.Name+":"+p.Type)
	}
	return fmt.Sprintf("%s(%s){%s}", o.Name, strings.Join(o.Bases, ","), strings.Join(props, ","))
}

func (text) Array(item string) string { return item + "[]" }

func (text) Union(u Union[string]) string { return strings.Join(u.Variants, " | ") }

func (text) Enum(e Enum) string {
	values := make([]string, 0, len(e.Values))
	for _, v := range e.Values {
		values = append(values, v.Symbol+"="+v.Literal)
	}
	return "enum(" + strings.Join(values, ",") + ")"
}

func (t text) ExpandAliases() bool { return t.expand }

func newResolver(t *testing.T, doc *types.Document) *Resolver[string] {
	t.Helper()
	m, err := model.New(doc)
	require.NoError(t, err)
	return New[string](m, text{})
}

func lookup(t *testing.T, r *Resolver[string], name string) *types.TypeDeclaration {
	t.Helper()
	decl, ok := r.Model().Lookup(name)
	require.True(t, ok, name)
	return decl
}

func propertyNames(o Object[string]) []string {
	var out []string
	for _, p := range o.Properties {
		out = append(out, p.Name)
	}
	return out
}

func TestResolve_Inheritance(t *testing.T) {
	r := newResolver(t, fixture.Document())

	person, err := r.ResolveObject(lookup(t, r, "Person"))
	require.NoError(t, err)
	assert.Equal(t, []string{"objectType", "firstname", "lastname"}, propertyNames(person))
	assert.Empty(t, person.Bases)
	assert.Equal(t, "objectType", person.Discriminator)
	assert.Equal(t, "Person", person.DiscriminatorValue)
	assert.True(t, person.Properties[0].Discriminator)
	assert.False(t, person.Properties[1].Discriminator)

	employee, err := r.ResolveObject(lookup(t, r, "Employee"))
	require.NoError(t, err)
	assert.Equal(t, []string{"department"}, propertyNames(employee))
	assert.Equal(t, []string{"Person"}, employee.Bases)
	assert.Equal(t, "objectType", employee.Discriminator)
	assert.Equal(t, "Person", employee.DiscriminatorOwner)
	assert.Equal(t, "Employee", employee.DiscriminatorValue)

	manager, err := r.ResolveObject(lookup(t, r, "Manager"))
	require.NoError(t, err)
	assert.Equal(t, []string{"numEmployees"}, propertyNames(manager))
	assert.Equal(t, []string{"Employee"}, manager.BaseNames)
	assert.Equal(t, "integer", manager.Properties[0].Type)
}

func TestResolve_UnionVariantsIndependent(t *testing.T) {
	r := newResolver(t, fixture.Document())
	favourite := lookup(t, r, "Favourite")

	u, err := r.ResolveUnion(favourite)
	require.NoError(t, err)
	assert.Equal(t, []string{"City", "Dog"}, u.Variants)
	assert.Equal(t, []string{"City", "Dog"}, u.VariantNames)

	city, err := r.ResolveObject(favourite.Variants[0])
	require.NoError(t, err)
	dog, err := r.ResolveObject(favourite.Variants[1])
	require.NoError(t, err)

	assert.Equal(t, "City(){name:string,population:integer}", text{}.Object(city))
	assert.Equal(t, "Dog(){name:string,furColour:string}", text{}.Object(dog))
	assert.Empty(t, city.Discriminator)
	assert.Empty(t, dog.Discriminator)
}

func TestResolve_UnionErrors(t *testing.T) {
	tests := []struct {
		name   string
		union  *types.TypeDeclaration
		reason error
	}{
		{
			name:  "empty",
			union: &types.TypeDeclaration{Name: "Nothing", Kind: types.KindUnion},
		},
		{
			name:   "unknown variant",
			union:  &types.TypeDeclaration{Name: "Ghostly", Kind: types.KindUnion, Variants: []*types.TypeDeclaration{fixture.Scalar("string"), {Name: "Ghost", Kind: types.KindObject}}},
			reason: generr.ErrInvalidInput,
		},
		{
			name:  "nil variant",
			union: &types.TypeDeclaration{Name: "Holey", Kind: types.KindUnion, Variants: []*types.TypeDeclaration{nil}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newResolver(t, &types.Document{Types: []*types.TypeDeclaration{tt.union}})

			_, _, err := r.Define(tt.union)
			require.Error(t, err)
			assert.True(t, generr.Is(err, generr.ErrUnresolvableVariant))
			assert.True(t, generr.IsGenerator(err))
			if tt.reason != nil {
				assert.True(t, generr.Is(err, tt.reason))
			}
			assert.False(t, r.Defined(tt.union))
		})
	}
}

func TestResolve_Enum(t *testing.T) {
	r := newResolver(t, fixture.Document())
	status := lookup(t, r, "Status")

	e, err := r.ResolveEnum(status)
	require.NoError(t, err)
	require.Len(t, e.Values, 2)
	assert.Equal(t, EnumSymbol{Symbol: "IN_PROGRESS", Literal: "in-progress"}, e.Values[0])
	assert.Equal(t, EnumSymbol{Symbol: "DONE", Literal: "done"}, e.Values[1])

	again, err := r.ResolveEnum(status)
	require.NoError(t, err)
	assert.Equal(t, e, again)
}

func TestResolve_EnumExplicitLiteral(t *testing.T) {
	decl := &types.TypeDeclaration{Name: "Level", Kind: types.KindEnum, Base: "string", EnumValues: []types.EnumValue{
		{Name: "high", Value: "HIGH-PRIORITY"},
	}}
	r := newResolver(t, &types.Document{Types: []*types.TypeDeclaration{decl}})

	v, _, err := r.Define(decl)
	require.NoError(t, err)
	assert.Equal(t, "enum(HIGH=HIGH-PRIORITY)", v)
}

func TestResolve_EnumSymbolClash(t *testing.T) {
	decl := &types.TypeDeclaration{Name: "State", Kind: types.KindEnum, Base: "string", EnumValues: []types.EnumValue{
		{Name: "in-progress"}, {Name: "in_progress"},
	}}
	r := newResolver(t, &types.Document{Types: []*types.TypeDeclaration{decl}})

	_, _, err := r.Define(decl)
	assert.True(t, generr.Is(err, generr.ErrInvalidInput))
}

func TestResolve_Generics(t *testing.T) {
	r := newResolver(t, fixture.Document())

	page, err := r.ResolveObject(lookup(t, r, "Page"))
	require.NoError(t, err)
	assert.Equal(t, []string{"T"}, page.TypeVars)
	require.Len(t, page.Properties, 2)
	assert.Equal(t, "$T[]", page.Properties[0].Type)
	assert.Equal(t, "T", page.Properties[0].TypeVariable)
	assert.True(t, page.Properties[0].Array)
	assert.Equal(t, "integer", page.Properties[1].Type)

	list, err := r.ResolveObject(lookup(t, r, "UserList"))
	require.NoError(t, err)
	assert.Equal(t, "Page<User>", list.Properties[0].Type)
}

func TestResolve_ScalarTypeVariable(t *testing.T) {
	r := newResolver(t, fixture.Document())

	v, err := r.Resolve(fixture.Scalar("any"), types.Annotations{"typeVar": "V"})
	require.NoError(t, err)
	assert.Equal(t, "$V", v)
}

func TestResolve_UseSites(t *testing.T) {
	r := newResolver(t, fixture.Document())
	user := lookup(t, r, "User")

	tests := []struct {
		name     string
		decl     *types.TypeDeclaration
		expected string
	}{
		{"built-in", fixture.Scalar("boolean"), "boolean"},
		{"declared", user, "User"},
		{"array of declared", fixture.Array(user), "User[]"},
		{"nested arrays", fixture.Array(fixture.Array(fixture.Scalar("string"))), "string[][]"},
		{"missing", nil, "any"},
		{"inline object", fixture.Object("", nil, fixture.Prop("x", fixture.Scalar("number"), true)), "(){x:number}"},
		{"inline union", &types.TypeDeclaration{Kind: types.KindUnion, Variants: []*types.TypeDeclaration{user, fixture.Scalar("nil")}}, "User | nil"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := r.Resolve(tt.decl, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, v)
		})
	}
}

func TestDefine_OnlyOnce(t *testing.T) {
	r := newResolver(t, fixture.Document())
	employee := lookup(t, r, "Employee")

	v, fresh, err := r.Define(employee)
	require.NoError(t, err)
	assert.True(t, fresh)
	assert.Equal(t, "Employee(Person){department:string}", v)

	v, fresh, err = r.Define(employee)
	require.NoError(t, err)
	assert.False(t, fresh)
	assert.Equal(t, "Employee", v)
}

func TestDefine_EveryTypeOnce(t *testing.T) {
	r := newResolver(t, fixture.Document())

	for _, decl := range r.Model().Types() {
		_, fresh, err := r.Define(decl)
		require.NoError(t, err, decl.Name)
		assert.True(t, fresh, decl.Name)
	}
	for _, decl := range r.Model().Types() {
		assert.True(t, r.Defined(decl), decl.Name)
	}
}

func TestDefine_Undeclared(t *testing.T) {
	r := newResolver(t, fixture.Document())

	_, _, err := r.Define(fixture.Scalar("string"))
	assert.True(t, generr.IsInternal(err))
}

func TestResolve_InheritanceCycle(t *testing.T) {
	a := fixture.Object("A", []string{"B"})
	b := fixture.Object("B", []string{"A"})
	r := newResolver(t, &types.Document{Types: []*types.TypeDeclaration{a, b}})

	_, _, err := r.Define(a)
	require.Error(t, err)
	assert.True(t, generr.IsInternal(err))
}

func TestResolve_StructuralCycle(t *testing.T) {
	inline := fixture.Object("", nil)
	inline.Properties = []*types.Property{fixture.Prop("self", inline, false)}
	r := newResolver(t, &types.Document{})

	_, err := r.Resolve(inline, nil)
	require.Error(t, err)
	assert.True(t, generr.IsInternal(err))
}

func TestResolve_UnknownKind(t *testing.T) {
	r := newResolver(t, &types.Document{})

	_, err := r.Resolve(&types.TypeDeclaration{Kind: "tuple"}, nil)
	assert.True(t, generr.IsInternal(err))
}

func TestResolve_ExpandAliases(t *testing.T) {
	email := &types.TypeDeclaration{Name: "Email", Kind: types.KindScalar, Base: "string"}
	tags := &types.TypeDeclaration{Name: "Tags", Kind: types.KindArray, Base: "array", Items: email}
	doc := &types.Document{Types: []*types.TypeDeclaration{email, tags}}
	m, err := model.New(doc)
	require.NoError(t, err)

	plain := New[string](m, text{})
	v, err := plain.Resolve(tags, nil)
	require.NoError(t, err)
	assert.Equal(t, "Tags", v)

	expanding := New[string](m, text{expand: true})
	v, err = expanding.Resolve(tags, nil)
	require.NoError(t, err)
	assert.Equal(t, "string[]", v)
}
