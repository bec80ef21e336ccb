// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package loader

import (
	"fmt"
	"strings"
	"unicode"
)

// expr is a parsed type expression. Exactly one of name, item and union is
// set.
type expr struct {
	name  string
	item  *expr
	union []expr
}

func (e expr) String() string {
	switch {
	case len(e.union) > 0:
		parts := make([]string, len(e.union))
		for i, u := range e.union {
			parts[i] = u.String()
		}
		return strings.Join(parts, " | ")
	case e.item != nil:
		if len(e.item.union) > 0 {
			return "(" + e.item.String() + ")[]"
		}
		return e.item.String() + "[]"
	default:
		return e.name
	}
}

// parseExpr parses "Name", "X[]", "A | B" and parenthesized groups such as
// "(A | B)[]".
func parseExpr(s string) (expr, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return expr{}, fmt.Errorf("empty type expression")
	}

	parts, err := splitUnion(s)
	if err != nil {
		return expr{}, err
	}
	if len(parts) > 1 {
		e := expr{}
		for _, p := range parts {
			v, err := parseExpr(p)
			if err != nil {
				return expr{}, err
			}
			if len(v.union) > 0 {
				e.union = append(e.union, v.union...)
			} else {
				e.union = append(e.union, v)
			}
		}
		return e, nil
	}

	if strings.HasSuffix(s, "[]") {
		item, err := parseExpr(strings.TrimSuffix(s, "[]"))
		if err != nil {
			return expr{}, err
		}
		return expr{item: &item}, nil
	}
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		return parseExpr(s[1 : len(s)-1])
	}

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && !strings.ContainsRune("_-.", r) {
			return expr{}, fmt.Errorf("invalid type expression %q", s)
		}
	}
	return expr{name: s}, nil
}

// splitUnion splits s at every "|" outside parentheses.
func splitUnion(s string) ([]string, error) {
	var (
		parts []string
		depth int
		start int
	)
	for i, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				return nil, fmt.Errorf("unbalanced parentheses in %q", s)
			}
		case '|':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	if depth != 0 {
		return nil, fmt.Errorf("unbalanced parentheses in %q", s)
	}
	return append(parts, s[start:]), nil
}
