// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package loader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/api2spec/api2model/internal/generr"
	"github.com/api2spec/api2model/pkg/types"
)

func loadExample(t *testing.T) *types.Document {
	t.Helper()
	doc, err := Load(filepath.Join("testdata", "api.yaml"))
	require.NoError(t, err)
	return doc
}

func declared(t *testing.T, doc *types.Document, name string) *types.TypeDeclaration {
	t.Helper()
	for _, decl := range doc.Types {
		if decl.Name == name {
			return decl
		}
	}
	t.Fatalf("type %s not declared", name)
	return nil
}

func TestLoad_Document(t *testing.T) {
	doc := loadExample(t)

	assert.Equal(t, "Example", doc.Title)
	assert.Equal(t, "v1", doc.Version)
	assert.Equal(t, "https://api.example.com/{version}", doc.BaseURI)
	assert.Equal(t, "application/json", doc.MediaType)

	var names []string
	for _, decl := range doc.Types {
		names = append(names, decl.Name)
	}
	assert.Equal(t, []string{"Person", "Employee", "Manager", "City", "Dog", "Favourite", "Status", "User", "Page", "UserList"}, names)
}

func TestLoad_Inheritance(t *testing.T) {
	doc := loadExample(t)

	person := declared(t, doc, "Person")
	assert.Equal(t, types.KindObject, person.Kind)
	assert.Equal(t, []string{"object"}, person.Parents)
	assert.Equal(t, "objectType", person.Discriminator)
	assert.Len(t, person.Properties, 3)

	employee := declared(t, doc, "Employee")
	assert.Equal(t, types.KindObject, employee.Kind)
	assert.Equal(t, []string{"Person"}, employee.Parents)
	require.Len(t, employee.Properties, 1)
	assert.Equal(t, "department", employee.Properties[0].Name)
	assert.Equal(t, "Employee", employee.DiscriminatorValue)

	manager := declared(t, doc, "Manager")
	assert.Equal(t, []string{"Employee"}, manager.Parents)
	assert.Equal(t, "integer", manager.Properties[0].Type.Base)
}

func TestLoad_UnionAndEnum(t *testing.T) {
	doc := loadExample(t)

	favourite := declared(t, doc, "Favourite")
	assert.Equal(t, types.KindUnion, favourite.Kind)
	require.Len(t, favourite.Variants, 2)
	assert.Same(t, declared(t, doc, "City"), favourite.Variants[0])
	assert.Same(t, declared(t, doc, "Dog"), favourite.Variants[1])

	status := declared(t, doc, "Status")
	assert.Equal(t, types.KindEnum, status.Kind)
	assert.Equal(t, "string", status.Base)
	assert.Equal(t, []types.EnumValue{{Name: "in-progress"}, {Name: "done"}}, status.EnumValues)
}

func TestLoad_UsesShareDeclarations(t *testing.T) {
	doc := loadExample(t)
	user := declared(t, doc, "User")

	status := user.Property("status")
	require.NotNil(t, status)
	assert.False(t, status.Required)
	assert.Same(t, declared(t, doc, "Status"), status.Type)

	tags := user.Property("tags")
	require.NotNil(t, tags)
	assert.Equal(t, types.KindArray, tags.Type.Kind)
	assert.Equal(t, "string", tags.Type.Items.Base)

	assert.True(t, user.Property("id").Required)
	assert.Equal(t, "A registered user", user.Description)

	post := doc.Resources[0].Methods[1]
	assert.Same(t, user, post.Body.Type)
}

func TestLoad_Annotations(t *testing.T) {
	doc := loadExample(t)

	page := declared(t, doc, "Page")
	assert.Equal(t, []string{"T"}, page.Annotations["typeVars"])
	items := page.Property("items")
	require.NotNil(t, items)
	assert.Equal(t, "T", items.Annotations["typeVar"])
	assert.Equal(t, types.KindArray, items.Type.Kind)

	content := declared(t, doc, "UserList").Property("content")
	require.NotNil(t, content)
	assert.Same(t, page, content.Type)
	assert.Equal(t, []string{"User"}, content.Annotations["typeArgs"])
}

func TestLoad_Resources(t *testing.T) {
	doc := loadExample(t)
	require.Len(t, doc.Resources, 2)

	users := doc.Resources[0]
	assert.Equal(t, "/users", users.RelativeURI)
	assert.Equal(t, "User management", users.Description)
	require.Len(t, users.Methods, 2)

	list := users.Methods[0]
	assert.Equal(t, "get", list.Verb)
	assert.Equal(t, "listUsers", list.DisplayName)
	require.Len(t, list.QueryParameters, 2)
	assert.False(t, list.QueryParameters[0].Required)
	require.Len(t, list.Responses, 1)
	assert.Equal(t, "200", list.Responses[0].Code)
	assert.Equal(t, "application/json", list.Responses[0].Body.MediaType)
	assert.Equal(t, types.KindArray, list.Responses[0].Body.Type.Kind)

	byID := users.Resources[0]
	assert.Equal(t, "/{userId}", byID.RelativeURI)
	require.Len(t, byID.URIParameters, 1)
	assert.Equal(t, "integer", byID.URIParameters[0].Type.Base)
	assert.True(t, byID.URIParameters[0].Required)
	require.Len(t, byID.Methods, 3)
	assert.Nil(t, byID.Methods[1].Responses[0].Body)

	members := doc.Resources[1].Resources[0]
	assert.Equal(t, "PATCH", members.Methods[0].Verb)
	require.Len(t, doc.Resources[1].URIParameters, 1)
	assert.Equal(t, "orgId", doc.Resources[1].URIParameters[0].Name)
	assert.Equal(t, "memberId", members.URIParameters[0].Name)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		contains string
	}{
		{"not a mapping", "- a\n- b\n", "document root must be a mapping"},
		{"unknown type", "types:\n  A:\n    properties:\n      b: Missing\n", `unknown type "Missing"`},
		{"self derivation", "types:\n  A: B\n  B: A\n", "defined in terms of itself"},
		{"duplicate property", "types:\n  A:\n    properties:\n      b: string\n      b?: string\n", `duplicate property "b"`},
		{"built-in redefinition", "types:\n  string: integer\n", "redefines a built-in type"},
		{"properties on scalar", "types:\n  A:\n    type: integer\n    properties:\n      b: string\n", "properties facet on non-object type"},
		{"enum on integer", "types:\n  A:\n    type: integer\n    enum: [1, 2]\n", "enum facet on non-string type"},
		{"bad expression", "types:\n  A: B & C\n", "invalid type expression"},
		{"bad yaml", "types: [\n", "failed to parse document"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input))
			require.Error(t, err)
			assert.True(t, generr.Is(err, generr.ErrInvalidInput))
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestParse_UnknownUnionVariant(t *testing.T) {
	_, err := Parse([]byte("types:\n  City:\n    properties:\n      name: string\n  Place: City | Village\n"))
	require.Error(t, err)

	assert.True(t, generr.Is(err, generr.ErrUnresolvableVariant))
	assert.True(t, generr.Is(err, generr.ErrInvalidInput))
	assert.Contains(t, err.Error(), "union variant Village")
	assert.Contains(t, err.Error(), `unknown type "Village"`)
}

func TestParse_UnknownVerbIsKept(t *testing.T) {
	doc, err := Parse([]byte("/users:\n  fetch:\n    description: nope\n"))
	require.NoError(t, err)
	require.Len(t, doc.Resources[0].Methods, 1)
	assert.Equal(t, "fetch", doc.Resources[0].Methods[0].Verb)
}

func TestParse_ImplicitURIParameters(t *testing.T) {
	doc, err := Parse([]byte("/items/{itemId}:\n  get:\n"))
	require.NoError(t, err)

	r := doc.Resources[0]
	require.Len(t, r.URIParameters, 1)
	assert.Equal(t, "itemId", r.URIParameters[0].Name)
	assert.Equal(t, "string", r.URIParameters[0].Type.Base)
	assert.True(t, r.URIParameters[0].Required)
}

func TestParse_InlineTypes(t *testing.T) {
	input := `
types:
  Address:
    properties:
      geo:
        properties:
          lat: number
          lng: number
      kind:
        enum: [home, work]
      lines: (string | integer)[]
`
	doc, err := Parse([]byte(input))
	require.NoError(t, err)

	address := doc.Types[0]
	geo := address.Property("geo").Type
	assert.Equal(t, types.KindObject, geo.Kind)
	assert.Empty(t, geo.Name)
	assert.Len(t, geo.Properties, 2)

	kind := address.Property("kind").Type
	assert.Equal(t, types.KindEnum, kind.Kind)

	lines := address.Property("lines").Type
	assert.Equal(t, types.KindArray, lines.Kind)
	assert.Equal(t, types.KindUnion, lines.Items.Kind)
	assert.Len(t, lines.Items.Variants, 2)
}

func TestParse_JSON(t *testing.T) {
	doc, err := Parse([]byte(`{"title": "J", "types": {"Id": "integer"}}`))
	require.NoError(t, err)
	assert.Equal(t, "J", doc.Title)
	assert.Equal(t, types.KindScalar, doc.Types[0].Kind)
	assert.Equal(t, "integer", doc.Types[0].Base)
}

func TestParseExpr(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"User", "User"},
		{" User[] ", "User[]"},
		{"City | Dog", "City | Dog"},
		{"(City | Dog)[]", "(City | Dog)[]"},
		{"string[][]", "string[][]"},
		{"A | (B | C)", "A | B | C"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			e, err := parseExpr(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, e.String())
		})
	}

	for _, bad := range []string{"", "(A", "A)", "A & B"} {
		_, err := parseExpr(bad)
		assert.Error(t, err, bad)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
