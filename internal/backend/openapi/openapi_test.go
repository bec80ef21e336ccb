// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package openapi

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/api2spec/api2model/internal/fixture"
	"github.com/api2spec/api2model/internal/generr"
	"github.com/api2spec/api2model/internal/model"
	"github.com/api2spec/api2model/internal/output"
	"github.com/api2spec/api2model/pkg/types"
)

func buildDocument(t *testing.T, doc *types.Document, opts Options) *types.OpenAPI {
	t.Helper()
	m, err := model.New(doc)
	require.NoError(t, err)
	out, err := New(opts).Document(m)
	require.NoError(t, err)
	return out
}

func schemaNamesOf(doc *types.OpenAPI) []string {
	var names []string
	for pair := doc.Components.Schemas.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names
}

func pathsOf(doc *types.OpenAPI) []string {
	var paths []string
	for pair := doc.Paths.Oldest(); pair != nil; pair = pair.Next() {
		paths = append(paths, pair.Key)
	}
	return paths
}

func TestDocument_Header(t *testing.T) {
	doc := buildDocument(t, fixture.Document(), Options{})

	assert.Equal(t, DefaultVersion, doc.OpenAPI)
	assert.Equal(t, "Example", doc.Info.Title)
	assert.Equal(t, "v1", doc.Info.Version)
	require.Len(t, doc.Servers, 1)
	assert.Equal(t, "https://api.example.com/v1", doc.Servers[0].URL)
}

func TestDocument_ConfiguredServers(t *testing.T) {
	servers := []types.Server{{URL: "http://localhost:8080"}}
	doc := buildDocument(t, fixture.Document(), Options{Servers: servers})

	assert.Equal(t, servers, doc.Servers)
}

func TestDocument_ComponentsInDeclarationOrder(t *testing.T) {
	doc := buildDocument(t, fixture.Document(), Options{})

	assert.Equal(t, []string{
		"Person", "Employee", "Manager", "City", "Dog", "Favourite",
		"Status", "User", "Page", "UserList",
	}, schemaNamesOf(doc))
}

func TestDocument_Inheritance(t *testing.T) {
	doc := buildDocument(t, fixture.Document(), Options{})

	person, _ := doc.Components.Schemas.Get("Person")
	assert.Equal(t, "object", person.Type)
	assert.Equal(t, []string{"objectType", "firstname", "lastname"}, person.PropertyNames())
	assert.Equal(t, []string{"objectType", "firstname", "lastname"}, person.Required)
	require.NotNil(t, person.Discriminator)
	assert.Equal(t, "objectType", person.Discriminator.PropertyName)
	assert.Equal(t, map[string]string{
		"Person":   "#/components/schemas/Person",
		"Employee": "#/components/schemas/Employee",
		"Manager":  "#/components/schemas/Manager",
	}, person.Discriminator.Mapping)

	employee, _ := doc.Components.Schemas.Get("Employee")
	require.Len(t, employee.AllOf, 2)
	assert.Equal(t, "#/components/schemas/Person", employee.AllOf[0].Ref)
	assert.Equal(t, []string{"department"}, employee.AllOf[1].PropertyNames())
	assert.Nil(t, employee.AllOf[1].Discriminator)

	manager, _ := doc.Components.Schemas.Get("Manager")
	require.Len(t, manager.AllOf, 2)
	assert.Equal(t, "#/components/schemas/Employee", manager.AllOf[0].Ref)
	assert.Equal(t, "integer", manager.AllOf[1].Property("numEmployees").Type)
}

func TestDocument_UnionEnumAndGenerics(t *testing.T) {
	doc := buildDocument(t, fixture.Document(), Options{})

	favourite, _ := doc.Components.Schemas.Get("Favourite")
	require.Len(t, favourite.OneOf, 2)
	assert.Equal(t, "#/components/schemas/City", favourite.OneOf[0].Ref)
	assert.Equal(t, "#/components/schemas/Dog", favourite.OneOf[1].Ref)
	assert.Nil(t, favourite.Discriminator)

	status, _ := doc.Components.Schemas.Get("Status")
	assert.Equal(t, "string", status.Type)
	assert.Equal(t, []any{"in-progress", "done"}, status.Enum)

	user, _ := doc.Components.Schemas.Get("User")
	assert.Equal(t, []string{"id", "name"}, user.Required)
	assert.Equal(t, "#/components/schemas/Status", user.Property("status").Ref)
	tags := user.Property("tags")
	assert.Equal(t, "array", tags.Type)
	assert.Equal(t, "string", tags.Items.Type)

	page, _ := doc.Components.Schemas.Get("Page")
	items := page.Property("items")
	assert.Equal(t, "array", items.Type)
	assert.Equal(t, &types.Schema{}, items.Items)

	list, _ := doc.Components.Schemas.Get("UserList")
	assert.Equal(t, "#/components/schemas/Page", list.Property("content").Ref)
}

func TestDocument_TagsFromOuterResources(t *testing.T) {
	doc := buildDocument(t, fixture.Document(), Options{})

	assert.Equal(t, []types.Tag{
		{Name: "Users", Description: "User management"},
		{Name: "Orgs/{orgId}"},
	}, doc.Tags)
}

func TestDocument_Paths(t *testing.T) {
	doc := buildDocument(t, fixture.Document(), Options{})

	assert.Equal(t, []string{"/users", "/users/{userId}", "/orgs/{orgId}/members/{memberId}"}, pathsOf(doc))

	users, _ := doc.Paths.Get("/users")
	require.NotNil(t, users.Get)
	assert.Equal(t, "listUsers", users.Get.OperationID)
	assert.Equal(t, []string{"Users"}, users.Get.Tags)
	require.Len(t, users.Get.Parameters, 2)
	assert.Equal(t, "limit", users.Get.Parameters[0].Name)
	assert.Equal(t, "query", users.Get.Parameters[0].In)
	assert.False(t, users.Get.Parameters[0].Required)

	list, ok := users.Get.Responses.Get("200")
	require.True(t, ok)
	assert.Equal(t, "The users", list.Description)
	assert.Equal(t, "array", list.Content["application/json"].Schema.Type)
	assert.Equal(t, "#/components/schemas/User", list.Content["application/json"].Schema.Items.Ref)

	require.NotNil(t, users.Post)
	created, _ := users.Post.Responses.Get("201")
	assert.Equal(t, "No description", created.Description)
	require.NotNil(t, users.Post.RequestBody)
	assert.True(t, users.Post.RequestBody.Required)
}

func TestDocument_NestedOperation(t *testing.T) {
	doc := buildDocument(t, fixture.Document(), Options{})

	item, ok := doc.Paths.Get("/users/{userId}")
	require.True(t, ok)
	require.NotNil(t, item.Get)
	require.NotNil(t, item.Put)
	require.NotNil(t, item.Delete)
	assert.Equal(t, []string{"Users"}, item.Get.Tags)

	require.Len(t, item.Get.Parameters, 1)
	assert.Equal(t, types.Parameter{
		Name: "userId", In: "path", Required: true, Schema: &types.Schema{Type: "integer"},
	}, item.Get.Parameters[0])

	notFound, _ := item.Get.Responses.Get("404")
	assert.Equal(t, "Not found", notFound.Description)
	assert.Nil(t, notFound.Content)
}

func TestDocument_ParameterOrder(t *testing.T) {
	doc := buildDocument(t, fixture.Document(), Options{})

	item, ok := doc.Paths.Get("/orgs/{orgId}/members/{memberId}")
	require.True(t, ok)
	op := item.Patch
	require.NotNil(t, op)

	var names []string
	for _, p := range op.Parameters {
		names = append(names, p.In+":"+p.Name)
	}
	assert.Equal(t, []string{"path:orgId", "path:memberId", "query:notify", "query:reason"}, names)
	require.NotNil(t, op.RequestBody)
	assert.Equal(t, "#/components/schemas/Employee", op.RequestBody.Content["application/json"].Schema.Ref)
	assert.Equal(t, []string{"Orgs/{orgId}"}, op.Tags)
}

func TestDocument_OperationIDsAreUnique(t *testing.T) {
	doc := &types.Document{Title: "Directory", Resources: []*types.Resource{
		{
			RelativeURI: "/users",
			Methods:     []*types.Method{{Verb: "get"}, {Verb: "post"}},
			Resources: []*types.Resource{{
				RelativeURI:   "/{id}",
				URIParameters: []*types.Property{fixture.Prop("id", fixture.Scalar("string"), true)},
				Methods:       []*types.Method{{Verb: "get"}, {Verb: "delete"}},
			}},
		},
		{
			RelativeURI: "/groups",
			Methods:     []*types.Method{{Verb: "get", DisplayName: "list"}},
		},
		{
			RelativeURI: "/teams",
			Methods:     []*types.Method{{Verb: "get", DisplayName: "list"}},
		},
	}}
	out := buildDocument(t, doc, Options{})

	owners := map[string]string{}
	for pair := out.Paths.Oldest(); pair != nil; pair = pair.Next() {
		item := pair.Value
		for verb, op := range map[string]*types.Operation{
			"GET": item.Get, "POST": item.Post, "PUT": item.Put, "DELETE": item.Delete,
		} {
			if op == nil {
				continue
			}
			where := verb + " " + pair.Key
			prev, taken := owners[op.OperationID]
			assert.False(t, taken, "operationId %q used by %s and %s", op.OperationID, prev, where)
			owners[op.OperationID] = where
		}
	}

	assert.Equal(t, map[string]string{
		"getUsers":      "GET /users",
		"postUsers":     "POST /users",
		"getUsersId":    "GET /users/{id}",
		"deleteUsersId": "DELETE /users/{id}",
		"list":          "GET /groups",
		"list2":         "GET /teams",
	}, owners)
}

func TestDocument_DefaultResponse(t *testing.T) {
	doc := fixture.Document()
	doc.Resources = []*types.Resource{{
		RelativeURI: "/ping",
		Methods:     []*types.Method{{Verb: "head"}},
	}}
	out := buildDocument(t, doc, Options{})

	item, _ := out.Paths.Get("/ping")
	require.NotNil(t, item.Head)
	assert.Equal(t, "headPing", item.Head.OperationID)
	resp, ok := item.Head.Responses.Get("default")
	require.True(t, ok)
	assert.Equal(t, "No description", resp.Description)
}

func TestDocument_Errors(t *testing.T) {
	t.Run("unsupported method", func(t *testing.T) {
		doc := fixture.Document()
		doc.Resources = []*types.Resource{{
			RelativeURI: "/things",
			Methods:     []*types.Method{{Verb: "fetch"}},
		}}
		m, err := model.New(doc)
		require.NoError(t, err)

		_, err = New(Options{}).Document(m)
		require.Error(t, err)
		assert.True(t, errors.Is(err, generr.ErrUnsupportedMethod))
	})

	t.Run("nesting too deep", func(t *testing.T) {
		doc := fixture.Document()
		doc.Resources = []*types.Resource{{
			RelativeURI: "/a",
			Resources: []*types.Resource{{
				RelativeURI: "/b",
				Resources: []*types.Resource{{
					RelativeURI: "/c",
					Methods:     []*types.Method{{Verb: "get"}},
				}},
			}},
		}}
		m, err := model.New(doc)
		require.NoError(t, err)

		_, err = New(Options{}).Document(m)
		require.Error(t, err)
		assert.True(t, errors.Is(err, generr.ErrUnsupportedNesting))
	})

	t.Run("empty union", func(t *testing.T) {
		doc := fixture.Document()
		doc.Types = append(doc.Types, &types.TypeDeclaration{Name: "Nothing", Kind: types.KindUnion, Base: "union"})
		m, err := model.New(doc)
		require.NoError(t, err)

		_, err = New(Options{}).Document(m)
		require.Error(t, err)
		assert.True(t, errors.Is(err, generr.ErrUnresolvableVariant))
	})
}

func TestGenerate_WritesSingleArtifact(t *testing.T) {
	m, err := model.New(fixture.Document())
	require.NoError(t, err)

	sink := output.NewMemorySink()
	require.NoError(t, New(Options{}).Generate(m, sink))

	assert.Equal(t, []string{"openapi.yaml"}, sink.Paths())
	content, _ := sink.Get("openapi.yaml")
	assert.True(t, strings.HasPrefix(content, "openapi: 3.0.3\n"))

	decoded, err := Decode([]byte(content), FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, []string{"/users", "/users/{userId}", "/orgs/{orgId}/members/{memberId}"}, pathsOf(decoded))
	assert.Equal(t, "Example", decoded.Info.Title)
}

func TestGenerate_JSON(t *testing.T) {
	m, err := model.New(fixture.Document())
	require.NoError(t, err)

	sink := output.NewMemorySink()
	require.NoError(t, New(Options{File: "api.json"}).Generate(m, sink))

	content, ok := sink.Get("api.json")
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(content, "{"))
	assert.Contains(t, content, `"openapi": "3.0.3"`)
}

func TestGenerate_MergesExisting(t *testing.T) {
	existing := filepath.Join(t.TempDir(), "openapi.yaml")
	require.NoError(t, os.WriteFile(existing, []byte(`openapi: 3.0.3
info:
  title: Hand written
  version: 2.0.0
servers:
  - url: https://prod.example.com
paths: {}
`), 0o644))

	m, err := model.New(fixture.Document())
	require.NoError(t, err)

	sink := output.NewMemorySink()
	b := New(Options{Existing: existing, Merge: DefaultMergeOptions()})
	require.NoError(t, b.Generate(m, sink))

	content, _ := sink.Get("openapi.yaml")
	decoded, err := Decode([]byte(content), FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, "Hand written", decoded.Info.Title)
	require.Len(t, decoded.Servers, 1)
	assert.Equal(t, "https://prod.example.com", decoded.Servers[0].URL)
}

func TestGenerate_MissingExistingIsIgnored(t *testing.T) {
	m, err := model.New(fixture.Document())
	require.NoError(t, err)

	b := New(Options{Existing: filepath.Join(t.TempDir(), "none.yaml"), Merge: DefaultMergeOptions()})
	assert.NoError(t, b.Generate(m, output.NewMemorySink()))
}
