// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package openapi

import (
	"fmt"
	"slices"
	"strings"

	"github.com/api2spec/api2model/pkg/types"
)

// ChangeType classifies a difference between two documents.
type ChangeType string

const (
	Added    ChangeType = "added"
	Removed  ChangeType = "removed"
	Modified ChangeType = "modified"
)

func (c ChangeType) symbol() string {
	switch c {
	case Added:
		return "+ "
	case Removed:
		return "- "
	case Modified:
		return "~ "
	}
	return "  "
}

// PathChange is a change to one operation.
type PathChange struct {
	Type   ChangeType
	Path   string
	Method string
}

// SchemaChange is a change to one component schema.
type SchemaChange struct {
	Type ChangeType
	Name string
}

// DiffResult lists the differences from an old document to a new one.
// Changes appear in the order of the document that holds them.
type DiffResult struct {
	PathChanges   []PathChange
	SchemaChanges []SchemaChange
}

// IsEmpty reports whether the documents are equivalent.
func (d *DiffResult) IsEmpty() bool {
	return len(d.PathChanges) == 0 && len(d.SchemaChanges) == 0
}

// Breaking reports whether an operation or schema was removed.
func (d *DiffResult) Breaking() bool {
	for _, c := range d.PathChanges {
		if c.Type == Removed {
			return true
		}
	}
	for _, c := range d.SchemaChanges {
		if c.Type == Removed {
			return true
		}
	}
	return false
}

// Diff compares two OpenAPI documents.
func Diff(oldDoc, newDoc *types.OpenAPI) *DiffResult {
	result := &DiffResult{}
	diffPaths(oldDoc, newDoc, result)
	diffSchemas(oldDoc, newDoc, result)
	return result
}

func pathItems(doc *types.OpenAPI) map[string]*types.PathItem {
	items := map[string]*types.PathItem{}
	if doc == nil || doc.Paths == nil {
		return items
	}
	for pair := doc.Paths.Oldest(); pair != nil; pair = pair.Next() {
		items[pair.Key] = pair.Value
	}
	return items
}

func pathKeys(doc *types.OpenAPI) []string {
	if doc == nil || doc.Paths == nil {
		return nil
	}
	var keys []string
	for pair := doc.Paths.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

func diffPaths(oldDoc, newDoc *types.OpenAPI, result *DiffResult) {
	oldItems, newItems := pathItems(oldDoc), pathItems(newDoc)

	for _, path := range pathKeys(oldDoc) {
		before := operations(oldItems[path])
		after := operations(newItems[path])
		for _, verb := range verbOrder {
			a, b := before[verb], after[verb]
			switch {
			case a != nil && b == nil:
				result.PathChanges = append(result.PathChanges, PathChange{Removed, path, verb})
			case a != nil && b != nil && operationModified(a, b):
				result.PathChanges = append(result.PathChanges, PathChange{Modified, path, verb})
			case a == nil && b != nil:
				result.PathChanges = append(result.PathChanges, PathChange{Added, path, verb})
			}
		}
	}
	for _, path := range pathKeys(newDoc) {
		if _, ok := oldItems[path]; ok {
			continue
		}
		for _, op := range newItems[path].Operations() {
			result.PathChanges = append(result.PathChanges, PathChange{Added, path, op.Verb})
		}
	}
}

var verbOrder = []string{"GET", "PUT", "POST", "DELETE", "OPTIONS", "HEAD", "PATCH", "TRACE"}

func operations(item *types.PathItem) map[string]*types.Operation {
	ops := map[string]*types.Operation{}
	if item == nil {
		return ops
	}
	for _, op := range item.Operations() {
		ops[op.Verb] = op.Operation
	}
	return ops
}

func operationModified(a, b *types.Operation) bool {
	if a.Summary != b.Summary ||
		a.Description != b.Description ||
		a.OperationID != b.OperationID {
		return true
	}
	if !slices.Equal(a.Tags, b.Tags) {
		return true
	}
	if len(a.Parameters) != len(b.Parameters) {
		return true
	}
	for i := range a.Parameters {
		pa, pb := a.Parameters[i], b.Parameters[i]
		if pa.Name != pb.Name || pa.In != pb.In || pa.Required != pb.Required || schemaModified(pa.Schema, pb.Schema) {
			return true
		}
	}
	if (a.RequestBody == nil) != (b.RequestBody == nil) {
		return true
	}
	return !slices.Equal(responseCodes(a), responseCodes(b))
}

func responseCodes(op *types.Operation) []string {
	if op.Responses == nil {
		return nil
	}
	var codes []string
	for pair := op.Responses.Oldest(); pair != nil; pair = pair.Next() {
		codes = append(codes, pair.Key)
	}
	return codes
}

func diffSchemas(oldDoc, newDoc *types.OpenAPI, result *DiffResult) {
	before, after := componentSchemas(oldDoc), componentSchemas(newDoc)
	for _, name := range schemaNames(oldDoc) {
		b, ok := after[name]
		switch {
		case !ok:
			result.SchemaChanges = append(result.SchemaChanges, SchemaChange{Removed, name})
		case schemaModified(before[name], b):
			result.SchemaChanges = append(result.SchemaChanges, SchemaChange{Modified, name})
		}
	}
	for _, name := range schemaNames(newDoc) {
		if _, ok := before[name]; !ok {
			result.SchemaChanges = append(result.SchemaChanges, SchemaChange{Added, name})
		}
	}
}

func schemaNames(doc *types.OpenAPI) []string {
	if doc == nil || doc.Components == nil || doc.Components.Schemas == nil {
		return nil
	}
	var names []string
	for pair := doc.Components.Schemas.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names
}

func componentSchemas(doc *types.OpenAPI) map[string]*types.Schema {
	out := map[string]*types.Schema{}
	if doc == nil || doc.Components == nil || doc.Components.Schemas == nil {
		return out
	}
	for pair := doc.Components.Schemas.Oldest(); pair != nil; pair = pair.Next() {
		out[pair.Key] = pair.Value
	}
	return out
}

// schemaModified compares two schemas structurally, descending into
// properties, items and compositions.
func schemaModified(a, b *types.Schema) bool {
	if a == nil || b == nil {
		return a != b
	}
	if a.Ref != b.Ref ||
		a.Type != b.Type ||
		a.Format != b.Format ||
		a.Description != b.Description ||
		a.Nullable != b.Nullable {
		return true
	}
	if !slices.Equal(a.Required, b.Required) || !slices.Equal(a.PropertyNames(), b.PropertyNames()) {
		return true
	}
	if len(a.Enum) != len(b.Enum) {
		return true
	}
	for i := range a.Enum {
		if fmt.Sprint(a.Enum[i]) != fmt.Sprint(b.Enum[i]) {
			return true
		}
	}
	for _, name := range a.PropertyNames() {
		if schemaModified(a.Property(name), b.Property(name)) {
			return true
		}
	}
	if schemaModified(a.Items, b.Items) {
		return true
	}
	if len(a.AllOf) != len(b.AllOf) || len(a.OneOf) != len(b.OneOf) {
		return true
	}
	for i := range a.AllOf {
		if schemaModified(a.AllOf[i], b.AllOf[i]) {
			return true
		}
	}
	for i := range a.OneOf {
		if schemaModified(a.OneOf[i], b.OneOf[i]) {
			return true
		}
	}
	return (a.Discriminator == nil) != (b.Discriminator == nil)
}

// Summary returns a one-line count of the changes.
func (d *DiffResult) Summary() string {
	if d.IsEmpty() {
		return "No changes detected"
	}

	count := func(kind ChangeType, what string, n int) string {
		if n == 0 {
			return ""
		}
		return fmt.Sprintf("%d %s(s) %s", n, what, kind)
	}
	ops, comps := map[ChangeType]int{}, map[ChangeType]int{}
	for _, c := range d.PathChanges {
		ops[c.Type]++
	}
	for _, c := range d.SchemaChanges {
		comps[c.Type]++
	}

	var parts []string
	for _, kind := range []ChangeType{Added, Removed, Modified} {
		if s := count(kind, "operation", ops[kind]); s != "" {
			parts = append(parts, s)
		}
	}
	for _, kind := range []ChangeType{Added, Removed, Modified} {
		if s := count(kind, "schema", comps[kind]); s != "" {
			parts = append(parts, s)
		}
	}

	summary := strings.Join(parts, ", ")
	if d.Breaking() {
		summary += " [BREAKING CHANGES DETECTED]"
	}
	return summary
}

// Format renders the diff for terminal output.
func (d *DiffResult) Format() string {
	if d.IsEmpty() {
		return "No differences found."
	}

	var sb strings.Builder
	sb.WriteString("=== OpenAPI Diff ===\n\n")
	sb.WriteString(d.Summary())
	sb.WriteString("\n\n")

	if len(d.PathChanges) > 0 {
		sb.WriteString("--- Operation Changes ---\n")
		for _, c := range d.PathChanges {
			fmt.Fprintf(&sb, "%s%s %s\n", c.Type.symbol(), c.Method, c.Path)
		}
		sb.WriteString("\n")
	}

	if len(d.SchemaChanges) > 0 {
		sb.WriteString("--- Schema Changes ---\n")
		for _, c := range d.SchemaChanges {
			fmt.Fprintf(&sb, "%s%s\n", c.Type.symbol(), c.Name)
		}
	}
	return sb.String()
}
