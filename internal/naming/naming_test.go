// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstantName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"kebab value", "in-progress", "IN_PROGRESS"},
		{"single word", "done", "DONE"},
		{"camel case", "inProgress", "IN_PROGRESS"},
		{"spaces", "on hold", "ON_HOLD"},
		{"punctuation", "waiting!", "WAITING"},
		{"leading digit", "404", "_404"},
		{"nothing usable", "--", "VALUE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ConstantName(tt.input))
		})
	}
}

func TestConstantName_IsStable(t *testing.T) {
	assert.Equal(t, ConstantName("in-progress"), ConstantName("in-progress"))
}

func TestCamelCase(t *testing.T) {
	assert.Equal(t, "FirstName", UpperCamel("first-name"))
	assert.Equal(t, "Person", UpperCamel("person"))
	assert.Equal(t, "UserGroups", UpperCamel("userGroups"))
	assert.Equal(t, "firstName", LowerCamel("first_name"))
	assert.Equal(t, "firstName", LowerCamel("FirstName"))
	assert.Equal(t, "numEmployees", LowerCamel("numEmployees"))
}

func TestKebabCase(t *testing.T) {
	assert.Equal(t, "user-group", KebabCase("UserGroup"))
	assert.Equal(t, "person", KebabCase("Person"))
}

func TestUpperFirst(t *testing.T) {
	assert.Equal(t, "Users", UpperFirst("users"))
	assert.Equal(t, "UserGroups", UpperFirst("userGroups"))
	assert.Equal(t, "", UpperFirst(""))
}

func TestAccessorNames(t *testing.T) {
	assert.Equal(t, "getFirstname", GetterName("firstname", false))
	assert.Equal(t, "isActive", GetterName("active", true))
	assert.Equal(t, "setNumEmployees", SetterName("numEmployees"))
}

func TestPolicies(t *testing.T) {
	tests := []struct {
		name     string
		policy   Policy
		typeName string
		variable string
		file     string
		service  string
	}{
		{"java", Java{}, "UserGroup", "userGroup", "UserGroup.java", "UserGroupService.java"},
		{"typescript", TypeScript{}, "UserGroup", "userGroup", "user-group.ts", "user-group.service.ts"},
		{"markdown", Markdown{}, "user-group", "user-group", "user-group.md", "user-group.service.md"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := "user-group"
			if tt.name == "java" || tt.name == "typescript" {
				input = "UserGroup"
			}
			assert.Equal(t, tt.typeName, tt.policy.TypeName(input))
			assert.Equal(t, tt.variable, tt.policy.VariableName(input))
			assert.Equal(t, tt.file, tt.policy.FileName(input, ""))
			assert.Equal(t, tt.service, tt.policy.FileName(input, "service"))
		})
	}
}

func TestKeywordEscaping(t *testing.T) {
	assert.Equal(t, "class_", Java{}.VariableName("class"))
	assert.Equal(t, "default_", TypeScript{}.VariableName("default"))
	assert.Equal(t, "name", TypeScript{}.VariableName("name"))
}

func TestTypeNamesKeepIdentifiers(t *testing.T) {
	assert.Equal(t, "URL", Java{}.TypeName("URL"))
	assert.Equal(t, "Person", TypeScript{}.TypeName("person"))
	assert.Equal(t, "UserGroup", Java{}.TypeName("user-group"))
}

func TestPropertyKey(t *testing.T) {
	assert.True(t, IsIdentifier("firstName"))
	assert.False(t, IsIdentifier("first-name"))
	assert.False(t, IsIdentifier("1st"))
	assert.Equal(t, "firstName", PropertyKey("firstName"))
	assert.Equal(t, "'first-name'", PropertyKey("first-name"))
}
