// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package resolve

import "github.com/api2spec/api2model/pkg/types"

// Backend builds the structural representation T of one output model. The
// Resolver calls it bottom-up: the arguments of every call are already
// resolved.
type Backend[T any] interface {
	// Primitive maps a built-in type name (string, integer, date-only, ...).
	Primitive(base string) T

	// Reference refers to a declared type by name. typeArgs are the declared
	// or built-in names bound to the type's variables, if any.
	Reference(name string, typeArgs []string) T

	// TypeVariable refers to a generic parameter of the enclosing type.
	TypeVariable(name string) T

	// Object represents an object type with its direct bases and its own
	// properties.
	Object(o Object[T]) T

	// Array represents a sequence of item.
	Array(item T) T

	// Union represents exactly one of the variants.
	Union(u Union[T]) T

	// Enum represents a string enumeration.
	Enum(e Enum) T
}

// AliasExpander is implemented by backends that cannot declare aliases of
// scalar and array types. A use of such a declaration resolves to its
// structure instead of a Reference.
type AliasExpander interface {
	ExpandAliases() bool
}

// Object is a resolved object type. Inherited properties are not repeated;
// they are reachable through Bases.
type Object[T any] struct {
	// Name is the declared name, empty for inline objects
	Name string

	// TypeVars are the generic parameters declared on the type
	TypeVars []string

	// Bases are the direct parents, in declared order
	Bases []T

	// BaseNames are the declared names of the direct parents
	BaseNames []string

	// Properties are the type's own properties in declaration order
	Properties []Property[T]

	// Discriminator names the discriminator property, declared here or
	// inherited
	Discriminator string

	// DiscriminatorOwner is the declared name of the type declaring the
	// discriminator
	DiscriminatorOwner string

	// DiscriminatorValue identifies this type among its siblings
	DiscriminatorValue string

	// Declaration is the source declaration
	Declaration *types.TypeDeclaration
}

// Property is a resolved own property.
type Property[T any] struct {
	Name          string
	Type          T
	Required      bool
	Discriminator bool

	// TypeVariable is set when the property type is a generic parameter
	TypeVariable string

	// Array reports whether the property holds a sequence
	Array bool

	Source *types.Property
}

// Union is a resolved union. Variants are resolved independently, in
// declared order; no discriminator is inferred.
type Union[T any] struct {
	Name         string
	Variants     []T
	VariantNames []string
	Declaration  *types.TypeDeclaration
}

// Enum is a resolved enumeration.
type Enum struct {
	Name        string
	Values      []EnumSymbol
	Declaration *types.TypeDeclaration
}

// EnumSymbol pairs the identifier-safe symbol of a value with its literal
// wire form.
type EnumSymbol struct {
	Symbol  string
	Literal string
}
