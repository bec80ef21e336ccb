// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package naming holds the identifier casing and file naming rules of each
// backend. The rules are independent of traversal order.
package naming

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/iancoleman/strcase"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Policy turns declared names into backend identifiers and file names.
type Policy interface {
	// TypeName returns the identifier of a generated type.
	TypeName(name string) string

	// VariableName returns the identifier of a field, parameter or method.
	VariableName(name string) string

	// ConstantName returns the identifier of an enum constant.
	ConstantName(name string) string

	// FileName returns the artifact file name of a declaration. suffix is an
	// optional qualifier such as "service".
	FileName(name, suffix string) string
}

// ConstantName converts a value into an upper-case, identifier-safe constant
// name: "in-progress" becomes "IN_PROGRESS". Names starting with a digit get a
// leading underscore.
func ConstantName(s string) string {
	c := strcase.ToScreamingSnake(words(s))
	if c == "" {
		return "VALUE"
	}
	if r, _ := utf8.DecodeRuneInString(c); unicode.IsDigit(r) {
		c = "_" + c
	}
	return c
}

// UpperCamel converts a name to UpperCamelCase.
func UpperCamel(s string) string {
	c := strcase.ToCamel(words(s))
	if r, _ := utf8.DecodeRuneInString(c); unicode.IsDigit(r) {
		c = "_" + c
	}
	return c
}

// LowerCamel converts a name to lowerCamelCase.
func LowerCamel(s string) string {
	c := strcase.ToLowerCamel(words(s))
	if r, _ := utf8.DecodeRuneInString(c); unicode.IsDigit(r) {
		c = "_" + c
	}
	return c
}

// KebabCase converts a name to lower-kebab-case.
func KebabCase(s string) string {
	return strcase.ToKebab(words(s))
}

// UpperFirst upper-cases the first rune and leaves the rest untouched.
func UpperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return cases.Upper(language.Und).String(string(r)) + s[size:]
}

// GetterName returns the accessor name of a property.
func GetterName(property string, boolean bool) string {
	if boolean {
		return "is" + UpperCamel(property)
	}
	return "get" + UpperCamel(property)
}

// SetterName returns the mutator name of a property.
func SetterName(property string) string {
	return "set" + UpperCamel(property)
}

// IsIdentifier reports whether s is a valid identifier in the generated
// languages: letters, digits and underscores, not starting with a digit.
func IsIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || r == '$' || unicode.IsLetter(r):
		case unicode.IsDigit(r) && i > 0:
		default:
			return false
		}
	}
	return true
}

// PropertyKey returns a property name usable as an object key: the name
// itself when it is an identifier, a quoted string otherwise.
func PropertyKey(s string) string {
	if IsIdentifier(s) {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", "\\'") + "'"
}

// words replaces every rune that is neither a letter nor a digit with a
// space, so that the casing functions see clean word boundaries.
func words(s string) string {
	return strings.TrimSpace(strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return ' '
	}, s))
}
