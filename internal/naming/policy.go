// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package naming

// Java names types in UpperCamelCase, members in lowerCamelCase and writes
// one <Type>.java file per type.
type Java struct{}

func (Java) TypeName(name string) string { return typeName(name) }

func (Java) VariableName(name string) string {
	v := LowerCamel(name)
	if javaKeywords[v] {
		return v + "_"
	}
	return v
}

func (Java) ConstantName(name string) string { return ConstantName(name) }

func (Java) FileName(name, suffix string) string {
	return UpperCamel(name) + UpperCamel(suffix) + ".java"
}

// TypeScript names types in UpperCamelCase, members in lowerCamelCase and
// writes kebab-case module files such as user-group.ts or users.service.ts.
type TypeScript struct{}

func (TypeScript) TypeName(name string) string { return typeName(name) }

func (TypeScript) VariableName(name string) string {
	v := LowerCamel(name)
	if typeScriptKeywords[v] {
		return v + "_"
	}
	return v
}

func (TypeScript) ConstantName(name string) string { return ConstantName(name) }

func (TypeScript) FileName(name, suffix string) string {
	if suffix == "" {
		return KebabCase(name) + ".ts"
	}
	return KebabCase(name) + "." + KebabCase(suffix) + ".ts"
}

// Markdown names documentation files and anchors in kebab-case.
type Markdown struct{}

func (Markdown) TypeName(name string) string { return name }

func (Markdown) VariableName(name string) string { return name }

func (Markdown) ConstantName(name string) string { return name }

func (Markdown) FileName(name, suffix string) string {
	if suffix == "" {
		return KebabCase(name) + ".md"
	}
	return KebabCase(name) + "." + KebabCase(suffix) + ".md"
}

// Anchor returns the in-page anchor of a heading.
func (Markdown) Anchor(name string) string { return KebabCase(name) }

// typeName keeps declared names that are already identifiers, so that
// acronyms such as "URL" survive.
func typeName(name string) string {
	if IsIdentifier(name) {
		return UpperFirst(name)
	}
	return UpperCamel(name)
}

var javaKeywords = map[string]bool{
	"abstract": true, "assert": true, "boolean": true, "break": true, "byte": true,
	"case": true, "catch": true, "char": true, "class": true, "const": true,
	"continue": true, "default": true, "do": true, "double": true, "else": true,
	"enum": true, "extends": true, "final": true, "finally": true, "float": true,
	"for": true, "goto": true, "if": true, "implements": true, "import": true,
	"instanceof": true, "int": true, "interface": true, "long": true, "native": true,
	"new": true, "package": true, "private": true, "protected": true, "public": true,
	"return": true, "short": true, "static": true, "strictfp": true, "super": true,
	"switch": true, "synchronized": true, "this": true, "throw": true, "throws": true,
	"transient": true, "try": true, "void": true, "volatile": true, "while": true,
}

var typeScriptKeywords = map[string]bool{
	"break": true, "case": true, "catch": true, "class": true, "const": true,
	"continue": true, "debugger": true, "default": true, "delete": true, "do": true,
	"else": true, "enum": true, "export": true, "extends": true, "false": true,
	"finally": true, "for": true, "function": true, "if": true, "import": true,
	"in": true, "instanceof": true, "new": true, "null": true, "return": true,
	"super": true, "switch": true, "this": true, "throw": true, "true": true,
	"try": true, "typeof": true, "var": true, "void": true, "while": true, "with": true,
}
