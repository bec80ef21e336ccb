// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package annotation reads the backend-agnostic annotations attached to
// declarations: generic type variables, type arguments and name overrides.
package annotation

import (
	"fmt"

	"github.com/api2spec/api2model/pkg/types"
)

// Recognized annotation names.
const (
	// TypeVar replaces a property's type with a type variable of the owning type.
	TypeVar = "typeVar"

	// TypeVars declares the type variables of a generic type.
	TypeVars = "typeVars"

	// TypeArgs binds type arguments at the point of use of a generic type.
	TypeArgs = "typeArgs"

	// CodeName overrides the generated identifier of a declaration.
	CodeName = "codeName"
)

// String returns a single string annotation value.
// A list value yields its first element.
func String(a types.Annotations, key string) (string, bool) {
	v, ok := a[key]
	if !ok {
		return "", false
	}
	switch val := v.(type) {
	case string:
		return val, true
	case []string:
		if len(val) == 0 {
			return "", false
		}
		return val[0], true
	case []any:
		if len(val) == 0 {
			return "", false
		}
		return fmt.Sprint(val[0]), true
	default:
		return fmt.Sprint(val), true
	}
}

// Strings returns a list annotation value. A plain string is a one-element list.
func Strings(a types.Annotations, key string) []string {
	v, ok := a[key]
	if !ok {
		return nil
	}
	switch val := v.(type) {
	case string:
		return []string{val}
	case []string:
		out := make([]string, len(val))
		copy(out, val)
		return out
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			out = append(out, fmt.Sprint(item))
		}
		return out
	default:
		return []string{fmt.Sprint(val)}
	}
}

// FindTypeVar returns the type variable bound to a property, or "".
func FindTypeVar(a types.Annotations) string {
	v, _ := String(a, TypeVar)
	return v
}

// TypeVarNames returns the type variables declared by a generic type.
func TypeVarNames(a types.Annotations) []string {
	return Strings(a, TypeVars)
}

// TypeArgNames returns the type arguments bound at a use site.
func TypeArgNames(a types.Annotations) []string {
	return Strings(a, TypeArgs)
}

// FindCodeName returns the name override, or "".
func FindCodeName(a types.Annotations) string {
	v, _ := String(a, CodeName)
	return v
}
