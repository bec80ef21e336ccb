// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package fixture builds small in-memory API descriptions for tests.
package fixture

import "github.com/api2spec/api2model/pkg/types"

// Scalar returns an inline built-in scalar type.
func Scalar(base string) *types.TypeDeclaration {
	return &types.TypeDeclaration{Kind: types.KindScalar, Base: base}
}

// Array returns an inline array of items.
func Array(items *types.TypeDeclaration) *types.TypeDeclaration {
	return &types.TypeDeclaration{Kind: types.KindArray, Base: "array", Items: items}
}

// Prop returns a property.
func Prop(name string, t *types.TypeDeclaration, required bool) *types.Property {
	return &types.Property{Name: name, Type: t, Required: required}
}

// Object returns a declared object type.
func Object(name string, parents []string, props ...*types.Property) *types.TypeDeclaration {
	if len(parents) == 0 {
		parents = []string{"object"}
	}
	return &types.TypeDeclaration{
		Name:       name,
		Kind:       types.KindObject,
		Base:       "object",
		Parents:    parents,
		Properties: props,
	}
}

// Persons declares Person, Employee extends Person and Manager extends
// Employee, discriminated by objectType.
func Persons() (person, employee, manager *types.TypeDeclaration) {
	person = Object("Person", nil,
		Prop("objectType", Scalar("string"), true),
		Prop("firstname", Scalar("string"), true),
		Prop("lastname", Scalar("string"), true),
	)
	person.Discriminator = "objectType"
	person.DiscriminatorValue = "Person"

	employee = Object("Employee", []string{"Person"},
		Prop("department", Scalar("string"), true),
	)
	employee.DiscriminatorValue = "Employee"

	manager = Object("Manager", []string{"Employee"},
		Prop("numEmployees", Scalar("integer"), true),
	)
	manager.DiscriminatorValue = "Manager"
	return person, employee, manager
}

// Favourites declares City, Dog and the union Favourite = City | Dog.
func Favourites() (city, dog, favourite *types.TypeDeclaration) {
	city = Object("City", nil,
		Prop("name", Scalar("string"), true),
		Prop("population", Scalar("integer"), true),
	)
	dog = Object("Dog", nil,
		Prop("name", Scalar("string"), true),
		Prop("furColour", Scalar("string"), true),
	)
	favourite = &types.TypeDeclaration{
		Name:     "Favourite",
		Kind:     types.KindUnion,
		Base:     "union",
		Variants: []*types.TypeDeclaration{city, dog},
	}
	return city, dog, favourite
}

// Status declares an enumeration with a kebab-case value.
func Status() *types.TypeDeclaration {
	return &types.TypeDeclaration{
		Name: "Status",
		Kind: types.KindEnum,
		Base: "string",
		EnumValues: []types.EnumValue{
			{Name: "in-progress"},
			{Name: "done"},
		},
	}
}

// Pages declares the generic Page<T> and a UserList using Page<User>.
func Pages(user *types.TypeDeclaration) (page, list *types.TypeDeclaration) {
	items := Prop("items", Array(Scalar("any")), true)
	items.Annotations = types.Annotations{"typeVar": "T"}
	page = Object("Page", nil,
		items,
		Prop("total", Scalar("integer"), true),
	)
	page.Annotations = types.Annotations{"typeVars": []string{"T"}}

	content := Prop("content", page, true)
	content.Annotations = types.Annotations{"typeArgs": []string{user.Name}}
	list = Object("UserList", nil, content)
	return page, list
}

// Document returns a document declaring every fixture type and a two-level
// resource tree.
//
//	/users           GET (limit, offset) POST User
//	/users/{userId}  GET, PUT User, DELETE
//	/orgs/{orgId}/members/{memberId} PATCH (notify, reason) Employee
func Document() *types.Document {
	person, employee, manager := Persons()
	city, dog, favourite := Favourites()
	status := Status()
	user := Object("User", nil,
		Prop("id", Scalar("integer"), true),
		Prop("name", Scalar("string"), true),
		Prop("status", status, false),
		Prop("tags", Array(Scalar("string")), false),
		Prop("favourite", favourite, false),
	)
	page, list := Pages(user)

	return &types.Document{
		Title:     "Example",
		Version:   "v1",
		BaseURI:   "https://api.example.com/{version}",
		MediaType: "application/json",
		Types:     []*types.TypeDeclaration{person, employee, manager, city, dog, favourite, status, user, page, list},
		Resources: []*types.Resource{Users(user), Orgs(employee)},
	}
}

// Users returns the /users resource tree.
func Users(user *types.TypeDeclaration) *types.Resource {
	return &types.Resource{
		RelativeURI: "/users",
		Description: "User management",
		Methods: []*types.Method{
			{
				Verb:        "get",
				DisplayName: "listUsers",
				QueryParameters: []*types.Property{
					Prop("limit", Scalar("integer"), false),
					Prop("offset", Scalar("integer"), false),
				},
				Responses: []*types.Response{
					{Code: "200", Description: "The users", Body: &types.Body{MediaType: "application/json", Type: Array(user)}},
				},
			},
			{
				Verb:        "post",
				DisplayName: "createUser",
				Body:        &types.Body{MediaType: "application/json", Type: user, Required: true},
				Responses:   []*types.Response{{Code: "201", Body: &types.Body{MediaType: "application/json", Type: user}}},
			},
		},
		Resources: []*types.Resource{
			{
				RelativeURI:   "/{userId}",
				URIParameters: []*types.Property{Prop("userId", Scalar("integer"), true)},
				Methods: []*types.Method{
					{
						Verb:        "get",
						DisplayName: "getUser",
						Responses: []*types.Response{
							{Code: "200", Description: "The user", Body: &types.Body{MediaType: "application/json", Type: user}},
							{Code: "404", Description: "Not found"},
						},
					},
					{
						Verb:        "put",
						DisplayName: "updateUser",
						Body:        &types.Body{MediaType: "application/json", Type: user, Required: true},
						Responses:   []*types.Response{{Code: "204"}},
					},
					{
						Verb:        "delete",
						DisplayName: "deleteUser",
						Responses:   []*types.Response{{Code: "204"}},
					},
				},
			},
		},
	}
}

// Orgs returns a two-level resource with one path parameter per level, two
// query parameters and a request body.
func Orgs(employee *types.TypeDeclaration) *types.Resource {
	return &types.Resource{
		RelativeURI:   "/orgs/{orgId}",
		URIParameters: []*types.Property{Prop("orgId", Scalar("string"), true)},
		Resources: []*types.Resource{
			{
				RelativeURI:   "/members/{memberId}",
				URIParameters: []*types.Property{Prop("memberId", Scalar("string"), true)},
				Methods: []*types.Method{
					{
						Verb:        "PATCH",
						DisplayName: "updateMember",
						QueryParameters: []*types.Property{
							Prop("notify", Scalar("boolean"), false),
							Prop("reason", Scalar("string"), false),
						},
						Body:      &types.Body{MediaType: "application/json", Type: employee, Required: true},
						Responses: []*types.Response{{Code: "200", Body: &types.Body{MediaType: "application/json", Type: employee}}},
					},
				},
			},
		},
	}
}
