// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package java

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

func generate(t *testing.T, doc *types.Document, opts Options) *output.MemorySink {
	t.Helper()
	m, err := model.New(doc)
	require.NoError(t, err)
	sink := output.NewMemorySink()
	require.NoError(t, New(opts).Generate(m, sink))
	return sink
}

func file(t *testing.T, sink *output.MemorySink, path string) string {
	t.Helper()
	content, ok := sink.Get(path)
	require.True(t, ok, "missing %s (have %v)", path, sink.Paths())
	return content
}

const (
	modelDir     = "com/example/api/model/"
	resourceDir  = "com/example/api/resource/"
	delegatorDir = "com/example/api/delegator/"
)

func TestGenerate_Files(t *testing.T) {
	sink := generate(t, fixture.Document(), Options{Delegators: true})

	assert.Equal(t, []string{
		modelDir + "Person.java", modelDir + "Employee.java", modelDir + "Manager.java",
		modelDir + "City.java", modelDir + "Dog.java", modelDir + "Favourite.java",
		modelDir + "Status.java", modelDir + "User.java", modelDir + "Page.java",
		modelDir + "UserList.java",
		resourceDir + "UsersResource.java", resourceDir + "OrgsOrgIdResource.java",
		delegatorDir + "PersonDelegator.java", delegatorDir + "EmployeeDelegator.java",
		delegatorDir + "ManagerDelegator.java", delegatorDir + "CityDelegator.java",
		delegatorDir + "DogDelegator.java", delegatorDir + "UserDelegator.java",
		delegatorDir + "PageDelegator.java", delegatorDir + "UserListDelegator.java",
	}, sink.Paths())
}

func TestGenerate_WithoutDelegators(t *testing.T) {
	sink := generate(t, fixture.Document(), Options{})

	for _, p := range sink.Paths() {
		assert.NotContains(t, p, "delegator/")
	}
}

func TestGenerate_Inheritance(t *testing.T) {
	sink := generate(t, fixture.Document(), Options{})

	person := file(t, sink, modelDir+"Person.java")
	assert.Contains(t, person, `package com.example.api.model;

import com.fasterxml.jackson.annotation.JsonSubTypes;
import com.fasterxml.jackson.annotation.JsonTypeInfo;
import com.fasterxml.jackson.annotation.JsonTypeName;

@JsonTypeInfo(use = JsonTypeInfo.Id.NAME, include = JsonTypeInfo.As.EXISTING_PROPERTY, property = "objectType", visible = true)
@JsonSubTypes({
    @JsonSubTypes.Type(value = Employee.class, name = "Employee"),
    @JsonSubTypes.Type(value = Manager.class, name = "Manager")
})
@JsonTypeName("Person")
public class Person {

    private String objectType;
    private String firstname;
    private String lastname;

    public String getObjectType() {
        return objectType;
    }
`)

	assert.Equal(t, `package com.example.api.model;

import com.fasterxml.jackson.annotation.JsonTypeName;

@JsonTypeName("Employee")
public class Employee extends Person {

    private String department;

    public String getDepartment() {
        return department;
    }

    public void setDepartment(String department) {
        this.department = department;
    }
}
`, file(t, sink, modelDir+"Employee.java"))

	manager := file(t, sink, modelDir+"Manager.java")
	assert.Contains(t, manager, "public class Manager extends Employee {\n")
	assert.Contains(t, manager, "    private Integer numEmployees;\n")
	assert.NotContains(t, manager, "department")
}

func TestGenerate_MultipleParents(t *testing.T) {
	named := fixture.Object("Named", nil, fixture.Prop("name", fixture.Scalar("string"), true))
	audited := fixture.Object("Audited", nil, fixture.Prop("createdAt", fixture.Scalar("datetime"), false))
	stamped := fixture.Object("Stamped", []string{"Audited"}, fixture.Prop("stamp", fixture.Scalar("string"), false))
	item := fixture.Object("Item", []string{"Named", "Stamped"}, fixture.Prop("active", fixture.Scalar("boolean"), true))
	doc := &types.Document{Types: []*types.TypeDeclaration{named, audited, stamped, item}}

	sink := generate(t, doc, Options{})
	content := file(t, sink, modelDir+"Item.java")

	assert.Contains(t, content, "import java.time.OffsetDateTime;\n")
	assert.Contains(t, content, "public class Item extends Named {\n")
	assert.Contains(t, content, `
    private String stamp;
    private OffsetDateTime createdAt;
    private boolean active;
`)
	assert.Contains(t, content, "    public boolean isActive() {\n")
	assert.NotContains(t, content, "private String name;")
}

func TestGenerate_PropertyNames(t *testing.T) {
	doc := &types.Document{Types: []*types.TypeDeclaration{
		fixture.Object("Address", nil,
			fixture.Prop("zip code", fixture.Scalar("string"), false),
			fixture.Prop("class", fixture.Scalar("string"), false),
		),
	}}

	content := file(t, generate(t, doc, Options{}), modelDir+"Address.java")

	assert.Contains(t, content, "import com.fasterxml.jackson.annotation.JsonProperty;\n")
	assert.Contains(t, content, "    @JsonProperty(\"zip code\")\n    private String zipCode;\n")
	assert.Contains(t, content, "    @JsonProperty(\"class\")\n    private String class_;\n")
	assert.Contains(t, content, "    public String getZipCode() {\n")
	assert.Contains(t, content, "    public void setClass(String class_) {\n        this.class_ = class_;\n    }\n")
}

func TestGenerate_Generics(t *testing.T) {
	sink := generate(t, fixture.Document(), Options{})

	page := file(t, sink, modelDir+"Page.java")
	assert.Contains(t, page, "import java.util.List;\n")
	assert.Contains(t, page, "public class Page<T> {\n")
	assert.Contains(t, page, "    private List<T> items;\n")
	assert.Contains(t, page, "    public List<T> getItems() {\n")

	list := file(t, sink, modelDir+"UserList.java")
	assert.Contains(t, list, "    private Page<User> content;\n")
	assert.NotContains(t, list, "import com.example.api.model")
}

func TestGenerate_User(t *testing.T) {
	sink := generate(t, fixture.Document(), Options{})

	user := file(t, sink, modelDir+"User.java")
	assert.Contains(t, user, `package com.example.api.model;

import java.util.List;

public class User {

    private Integer id;
    private String name;
    private Status status;
    private List<String> tags;
    private Favourite favourite;
`)
}

func TestGenerate_Enum(t *testing.T) {
	sink := generate(t, fixture.Document(), Options{})

	status := file(t, sink, modelDir+"Status.java")
	assert.Contains(t, status, `package com.example.api.model;

import com.fasterxml.jackson.annotation.JsonCreator;
import com.fasterxml.jackson.annotation.JsonValue;

public enum Status {
    IN_PROGRESS("in-progress"),
    DONE("done");

    private final String value;
`)
	assert.Contains(t, status, "    public static Status fromValue(String value) {\n")
}

func TestGenerate_Union(t *testing.T) {
	sink := generate(t, fixture.Document(), Options{})

	fav := file(t, sink, modelDir+"Favourite.java")
	assert.Contains(t, fav, `import com.fasterxml.jackson.annotation.JsonValue;

/**
 * One of City, Dog.
 */
public final class Favourite {

    private Object value;

    public Favourite(Object value) {
        this.value = value;
    }

    @JsonValue
    public Object getValue() {
        return value;
    }

    public boolean isCity() {
        return value instanceof City;
    }

    public City getCity() {
        return (City) value;
    }

    public void setCity(City value) {
        this.value = value;
    }
`)
	assert.Contains(t, fav, "    public Dog getDog() {\n")
}

func TestGenerate_UnionOfItemAndList(t *testing.T) {
	city, _, _ := fixture.Favourites()
	places := &types.TypeDeclaration{Name: "Places", Kind: types.KindUnion, Base: "union", Variants: []*types.TypeDeclaration{
		city, fixture.Array(city),
	}}
	doc := &types.Document{Types: []*types.TypeDeclaration{city, places}}

	content := file(t, generate(t, doc, Options{}), modelDir+"Places.java")

	assert.Contains(t, content, "    public boolean isCity() {\n        return value instanceof City;\n    }\n")
	assert.Contains(t, content, "    public boolean isCityList() {\n        return value instanceof List;\n    }\n")
	assert.Contains(t, content, "    public List<City> getCityList() {\n")
	assert.Equal(t, 1, strings.Count(content, "public City getCity()"))
}

func TestGenerate_Resources(t *testing.T) {
	sink := generate(t, fixture.Document(), Options{})

	users := file(t, sink, resourceDir+"UsersResource.java")
	assert.Contains(t, users, "package com.example.api.resource;\n\nimport com.example.api.model.User;\n")
	assert.Contains(t, users, "import jakarta.ws.rs.QueryParam;\nimport java.util.List;\n")
	assert.Contains(t, users, `/**
 * User management
 */
@Path("/users")
public interface UsersResource {

    @GET
    @Produces("application/json")
    List<User> listUsers(@QueryParam("limit") Integer limit, @QueryParam("offset") Integer offset);

    @POST
    @Consumes("application/json")
    @Produces("application/json")
    User createUser(User body);

    @GET
    @Path("/{userId}")
    @Produces("application/json")
    User getUser(@PathParam("userId") Integer userId);

    @PUT
    @Path("/{userId}")
    @Consumes("application/json")
    void updateUser(@PathParam("userId") Integer userId, User body);

    @DELETE
    @Path("/{userId}")
    void deleteUser(@PathParam("userId") Integer userId);
}
`)

	orgs := file(t, sink, resourceDir+"OrgsOrgIdResource.java")
	assert.Contains(t, orgs, "@Path(\"/orgs/{orgId}\")\npublic interface OrgsOrgIdResource {\n")
	assert.Contains(t, orgs, `    @PATCH
    @Path("/members/{memberId}")
    @Consumes("application/json")
    @Produces("application/json")
    Employee updateMember(@PathParam("orgId") String orgId, @PathParam("memberId") String memberId, @QueryParam("notify") Boolean notify, @QueryParam("reason") String reason, Employee body);
`)
}

func TestGenerate_ResourceMethodNamesAreUnique(t *testing.T) {
	doc := fixture.Document()
	doc.Resources = []*types.Resource{{
		RelativeURI: "/users",
		Methods:     []*types.Method{{Verb: "get"}},
		Resources: []*types.Resource{
			{RelativeURI: "/active", Methods: []*types.Method{{Verb: "get"}}},
			{RelativeURI: "/blocked", Methods: []*types.Method{{Verb: "get"}}},
		},
	}}

	users := file(t, generate(t, doc, Options{}), resourceDir+"UsersResource.java")

	assert.Contains(t, users, "    @GET\n    void get();\n")
	assert.Contains(t, users, "    @GET\n    @Path(\"/active\")\n    void get2();\n")
	assert.Contains(t, users, "    @GET\n    @Path(\"/blocked\")\n    void get3();\n")
}

func TestGenerate_ResourceOverloads(t *testing.T) {
	doc := fixture.Document()
	doc.Resources = []*types.Resource{{
		RelativeURI: "/things",
		Methods: []*types.Method{{
			Verb:        "trace",
			DisplayName: "traceThings",
			Responses: []*types.Response{
				{Code: "200", Body: &types.Body{MediaType: "application/json", Type: fixture.Scalar("string")}},
				{Code: "202", Body: &types.Body{MediaType: "text/plain", Type: fixture.Scalar("integer")}},
			},
		}},
	}}

	things := file(t, generate(t, doc, Options{}), resourceDir+"ThingsResource.java")
	assert.Contains(t, things, "import jakarta.ws.rs.HttpMethod;\n")
	assert.Contains(t, things, "    @HttpMethod(\"TRACE\")\n    @Produces(\"application/json\")\n    String traceThings();\n")
	assert.Contains(t, things, "    @HttpMethod(\"TRACE\")\n    @Produces(\"text/plain\")\n    Integer traceThings1();\n")
}

func TestGenerate_Options(t *testing.T) {
	sink := generate(t, fixture.Document(), Options{
		Package:        "org.acme",
		ModelPackage:   "dto",
		ResourceSuffix: "Api",
	})

	assert.Contains(t, file(t, sink, "org/acme/dto/User.java"), "package org.acme.dto;\n")
	assert.Contains(t, file(t, sink, "org/acme/resource/UsersApi.java"), "import org.acme.dto.User;\n")
}

func TestGenerate_TemplateOverride(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "java"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "java", "enum.tmpl"), []byte("enum {{.Name}}\n"), 0o644))

	sink := generate(t, fixture.Document(), Options{TemplateDir: dir})

	assert.Equal(t, "enum Status\n", file(t, sink, modelDir+"Status.java"))
}

func TestGenerate_Errors(t *testing.T) {
	t.Run("nesting", func(t *testing.T) {
		doc := fixture.Document()
		doc.Resources = []*types.Resource{{
			RelativeURI: "/a",
			Resources: []*types.Resource{{
				RelativeURI: "/b",
				Resources:   []*types.Resource{{RelativeURI: "/c", Methods: []*types.Method{{Verb: "get"}}}},
			}},
		}}
		m, err := model.New(doc)
		require.NoError(t, err)

		sink := output.NewMemorySink()
		err = New(Options{}).Generate(m, sink)
		require.Error(t, err)
		assert.True(t, errors.Is(err, generr.ErrUnsupportedNesting))
		assert.Contains(t, sink.Paths(), modelDir+"Person.java")
		assert.NotContains(t, sink.Paths(), resourceDir+"AResource.java")
	})

	t.Run("verb", func(t *testing.T) {
		doc := fixture.Document()
		doc.Resources = []*types.Resource{{RelativeURI: "/a", Methods: []*types.Method{{Verb: "connect"}}}}
		m, err := model.New(doc)
		require.NoError(t, err)

		err = New(Options{}).Generate(m, output.NewMemorySink())
		assert.True(t, errors.Is(err, generr.ErrUnsupportedMethod))
	})

	t.Run("empty union", func(t *testing.T) {
		doc := &types.Document{Types: []*types.TypeDeclaration{
			{Name: "Nothing", Kind: types.KindUnion, Base: "union"},
		}}
		m, err := model.New(doc)
		require.NoError(t, err)

		err = New(Options{}).Generate(m, output.NewMemorySink())
		assert.True(t, errors.Is(err, generr.ErrUnresolvableVariant))
	})
}
