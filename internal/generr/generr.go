// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package generr defines the error categories of a generation run.
//
// Input-shape errors (nesting too deep, unknown verb, unresolvable union
// variant, malformed input) belong to the generator category and carry a
// descriptive message. Internal-consistency errors are assertion failures:
// they are unreachable for input from a correct parser.
package generr

import (
	"github.com/cockroachdb/errors"
)

// Generator error kinds. Use Is to test for a specific kind and IsGenerator
// to test for the category.
var (
	ErrUnsupportedNesting  = errors.New("unsupported resource nesting")
	ErrUnsupportedMethod   = errors.New("unsupported HTTP method")
	ErrUnresolvableVariant = errors.New("unresolvable union variant")
	ErrInvalidInput        = errors.New("invalid input")
)

// kinds lists every generator error kind.
var kinds = []error{ErrUnsupportedNesting, ErrUnsupportedMethod, ErrUnresolvableVariant, ErrInvalidInput}

// Newf returns a generator error of the given kind with a formatted message.
func Newf(kind error, format string, args ...interface{}) error {
	return errors.Mark(errors.Newf(format, args...), kind)
}

// Wrapf wraps cause as a generator error of the given kind.
func Wrapf(kind error, cause error, format string, args ...interface{}) error {
	return errors.Mark(errors.Wrapf(cause, format, args...), kind)
}

// Is reports whether err carries the given kind anywhere in its chain.
func Is(err, kind error) bool {
	return errors.Is(err, kind)
}

// Internalf returns an internal-consistency error.
func Internalf(format string, args ...interface{}) error {
	return errors.AssertionFailedf(format, args...)
}

// IsGenerator reports whether err belongs to the generator error category.
func IsGenerator(err error) bool {
	return err != nil && errors.IsAny(err, kinds...)
}

// IsInternal reports whether err is an internal-consistency error.
func IsInternal(err error) bool {
	return err != nil && errors.IsAssertionFailure(err)
}
